package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iwvelando/savings-orbit/internal/goal"
)

func geminiReply(t *testing.T, text string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"role": "model", "parts": []map[string]string{{"text": text}}}},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return body
}

func TestNewGeminiClient(t *testing.T) {
	if NewGeminiClient("  ", "", "") != nil {
		t.Error("expected nil client for empty key")
	}
	c := NewGeminiClient("key", "", "http://example.test/")
	if c == nil {
		t.Fatal("expected client")
	}
	if c.model != "gemini-2.5-flash" || c.baseURL != "http://example.test" {
		t.Errorf("unexpected defaults: model=%s baseURL=%s", c.model, c.baseURL)
	}
}

func TestGeminiRecommend(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(geminiReply(t, `{
			"intro": "Great start!",
			"recommendations": [
				{"area": "Groceries", "advice": "Cut £5"},
				{"area": "Transport", "advice": "Cycle twice"},
				{"area": "Dining Out", "advice": "Cook on Friday"}
			],
			"weeklySpendingReductionTarget": 12.5
		}`))
	}))
	defer server.Close()

	client := NewGeminiClient("secret", "test-model", server.URL)
	result, err := client.Recommend(context.Background(), Request{Goal: baseGoal(goal.AccuracyBasic), CurrentWeek: 1})
	if err != nil {
		t.Fatalf("Recommend() unexpected error: %v", err)
	}

	if gotPath != "/models/test-model:generateContent" {
		t.Errorf("path = %s", gotPath)
	}
	if gotKey != "secret" {
		t.Errorf("api key header = %q", gotKey)
	}
	if gotBody.GenerationConfig.ResponseMimeType != "application/json" || gotBody.GenerationConfig.ResponseSchema == nil {
		t.Errorf("generation config = %+v", gotBody.GenerationConfig)
	}
	if len(gotBody.Contents) != 1 || !strings.Contains(gotBody.Contents[0].Parts[0].Text, "week 1") {
		t.Errorf("unexpected contents: %+v", gotBody.Contents)
	}

	if result.Intro != "Great start!" || len(result.Items) != 3 || result.WeeklyReductionTarget != 12.5 {
		t.Errorf("result = %+v", result)
	}
}

func TestGeminiErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"Unauthorized", http.StatusUnauthorized, "", ErrUnauthorized},
		{"Forbidden", http.StatusForbidden, "", ErrUnauthorized},
		{"Rate limited", http.StatusTooManyRequests, "", ErrRateLimited},
		{"No candidates", http.StatusOK, `{"candidates": []}`, ErrMalformedResponse},
		{"Not JSON text", http.StatusOK, string(geminiReply(t, "sorry, I can't")), ErrMalformedResponse},
		{"No recommendations", http.StatusOK, string(geminiReply(t, `{"intro": "hi"}`)), ErrMalformedResponse},
		{"Server error", http.StatusInternalServerError, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewGeminiClient("key", "", server.URL).Recommend(context.Background(), Request{Goal: baseGoal(goal.AccuracyBasic)})
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, expected %v", err, tt.wantErr)
			}
		})
	}
}

func TestGeminiHonorsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewGeminiClient("key", "", server.URL).Recommend(ctx, Request{Goal: baseGoal(goal.AccuracyBasic)}); err == nil {
		t.Error("expected error for cancelled context")
	}
}
