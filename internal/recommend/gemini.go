package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iwvelando/savings-orbit/pkg/constants"
)

const (
	requestTimeout = 30 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
)

var (
	// ErrUnauthorized indicates the API key was rejected.
	ErrUnauthorized = errors.New("recommend: unauthorized (API key invalid)")
	// ErrRateLimited indicates the API rate limit was hit.
	ErrRateLimited = errors.New("recommend: rate limited")
	// ErrMalformedResponse indicates the model answered with something other
	// than the requested JSON shape.
	ErrMalformedResponse = errors.New("recommend: malformed model response")
)

// GeminiClient requests recommendations from the Gemini generateContent API.
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

// NewGeminiClient creates a client for the given API key. Empty model and
// baseURL fall back to the defaults. Returns nil if the key is empty.
func NewGeminiClient(apiKey, model, baseURL string) *GeminiClient {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil
	}
	if model == "" {
		model = constants.DefaultRecommendationModel
	}
	if baseURL == "" {
		baseURL = constants.DefaultRecommendationBaseURL
	}
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType"`
	ResponseSchema   *schema `json:"responseSchema,omitempty"`
}

type schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*schema `json:"properties,omitempty"`
	Items       *schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
	MinItems    int                `json:"minItems,omitempty"`
	MaxItems    int                `json:"maxItems,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// resultSchema constrains the model to the Result JSON shape.
var resultSchema = &schema{
	Type: "OBJECT",
	Properties: map[string]*schema{
		"intro": {
			Type:        "STRING",
			Description: "A short, encouraging introductory sentence about this week's savings plan, tailored to the user's accuracy level and progress.",
		},
		"recommendations": {
			Type:        "ARRAY",
			Description: "A list of exactly 3 new, actionable saving recommendations for the current week.",
			Items: &schema{
				Type: "OBJECT",
				Properties: map[string]*schema{
					"area":   {Type: "STRING", Description: "The category or area for the saving tip (e.g., 'Groceries', 'Spending Trend')."},
					"advice": {Type: "STRING", Description: "The specific advice or target (e.g., 'Reduce by £10 per week', 'Review weekend spending')."},
				},
				Required: []string{"area", "advice"},
			},
			MinItems: constants.RecommendationCount,
			MaxItems: constants.RecommendationCount,
		},
		"weeklySpendingReductionTarget": {
			Type:        "NUMBER",
			Description: "The total recommended reduction in weekly spending, as a single number (e.g., 15.50).",
		},
	},
	Required: []string{"intro", "recommendations", "weeklySpendingReductionTarget"},
}

// Recommend sends the prompt for req and decodes the structured answer.
func (c *GeminiClient) Recommend(ctx context.Context, req Request) (Result, error) {
	payload := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: BuildPrompt(req)}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   resultSchema,
		},
	}

	body, err := c.post(ctx, fmt.Sprintf("/models/%s:generateContent", url.PathEscape(c.model)), payload)
	if err != nil {
		return Result{}, err
	}

	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Result{}, fmt.Errorf("recommend: parsing response: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return Result{}, fmt.Errorf("%w: no candidates", ErrMalformedResponse)
	}

	text := strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text)
	var result Result
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(result.Items) == 0 {
		return Result{}, fmt.Errorf("%w: no recommendations", ErrMalformedResponse)
	}
	return result, nil
}

// post performs an authenticated JSON POST and returns the response body.
func (c *GeminiClient) post(ctx context.Context, path string, payload any) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("recommend: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("recommend: creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recommend: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("recommend: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("recommend: reading response: %w", err)
	}
	return body, nil
}
