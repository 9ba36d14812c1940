// Package recommend produces weekly savings advice for a goal.
package recommend

import (
	"context"

	"github.com/iwvelando/savings-orbit/internal/goal"
	"github.com/iwvelando/savings-orbit/pkg/mathutil"
	"go.uber.org/zap"
)

// Item is a single piece of advice.
type Item struct {
	Area   string `json:"area"`
	Advice string `json:"advice"`
}

// Result is one week's recommendations.
type Result struct {
	Intro                 string  `json:"intro"`
	Items                 []Item  `json:"recommendations"`
	WeeklyReductionTarget float64 `json:"weeklySpendingReductionTarget"`
}

// Request describes what to advise on.
type Request struct {
	Goal goal.Goal
	// Completed holds advice the user has already acted on.
	Completed   []string
	CurrentWeek int
	// Symbol is the currency symbol used in prompts; empty means the default.
	Symbol string
}

// Provider returns recommendations for a request.
type Provider interface {
	Recommend(ctx context.Context, req Request) (Result, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, req Request) (Result, error)

// Recommend calls f.
func (f ProviderFunc) Recommend(ctx context.Context, req Request) (Result, error) {
	return f(ctx, req)
}

// NewWeeklySpendTarget returns the weekly spending the user should aim for
// once the suggested reduction is applied. ok is false when there is no
// positive reduction or the result would not be positive.
func NewWeeklySpendTarget(currentWeekly float64, r Result) (float64, bool) {
	if r.WeeklyReductionTarget <= 0 || currentWeekly <= 0 {
		return 0, false
	}
	target := currentWeekly - r.WeeklyReductionTarget
	if !mathutil.IsPositive(target) {
		return 0, false
	}
	return target, true
}

// Provider names accepted by New.
const (
	ProviderGemini = "gemini"
	ProviderStatic = "static"
)

// Options selects and configures a provider.
type Options struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// New builds the configured provider wrapped WithFallback. A Gemini provider
// without an API key degrades to StaticProvider.
func New(opts Options, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch opts.Provider {
	case ProviderStatic:
		return WithFallback(StaticProvider{}, logger)
	default:
		client := NewGeminiClient(opts.APIKey, opts.Model, opts.BaseURL)
		if client == nil {
			logger.Warn("no recommendation API key configured, using general tips",
				zap.String("op", "recommend.New"),
			)
			return WithFallback(StaticProvider{}, logger)
		}
		return WithFallback(client, logger)
	}
}
