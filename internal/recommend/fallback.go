package recommend

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// WithFallback wraps p so that it never fails. A malformed answer becomes
// GeneralTips and any other error becomes Unavailable. A nil p always
// answers with GeneralTips.
func WithFallback(p Provider, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return ProviderFunc(func(ctx context.Context, req Request) (Result, error) {
		if p == nil {
			return GeneralTips, nil
		}

		result, err := p.Recommend(ctx, req)
		switch {
		case err == nil && len(result.Items) > 0:
			return result, nil
		case err == nil, errors.Is(err, ErrMalformedResponse):
			logger.Warn("recommendation response malformed, using general tips",
				zap.String("op", "recommend.WithFallback"),
				zap.Error(err),
			)
			return GeneralTips, nil
		default:
			logger.Error("failed to fetch recommendations",
				zap.String("op", "recommend.WithFallback"),
				zap.Int("week", req.CurrentWeek),
				zap.Error(err),
			)
			return Unavailable, nil
		}
	})
}
