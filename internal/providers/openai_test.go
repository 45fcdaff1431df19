package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAIProvider_Chat(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("auth header = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"choices": [{"message": {"content": "hello there"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 3, "total_tokens": 13}
		}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("openai", "test-key", srv.URL, "gpt-4o-mini")
	resp, err := p.Chat(context.Background(), ChatRequest{
		Messages:    []Message{{Role: "user", Content: "hi"}},
		Temperature: 0.5,
		MaxTokens:   450,
	})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	if resp.Content != "hello there" {
		t.Errorf("Content = %q", resp.Content)
	}
	if resp.Usage == nil || resp.Usage.TotalTokens != 13 {
		t.Errorf("Usage = %+v", resp.Usage)
	}
	if gotBody["model"] != "gpt-4o-mini" {
		t.Errorf("request model = %v, want default model", gotBody["model"])
	}
	if gotBody["temperature"] != 0.5 {
		t.Errorf("request temperature = %v", gotBody["temperature"])
	}
	if gotBody["max_tokens"] != float64(450) {
		t.Errorf("request max_tokens = %v", gotBody["max_tokens"])
	}
}

func TestOpenAIProvider_ChatModelOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		if body["model"] != "gpt-4o" {
			t.Errorf("model = %v, want override gpt-4o", body["model"])
		}
		w.Write([]byte(`{"choices": [{"message": {"content": "ok"}}]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("openai", "k", srv.URL, "gpt-4o-mini")
	if _, err := p.Chat(context.Background(), ChatRequest{Model: "gpt-4o"}); err != nil {
		t.Fatal(err)
	}
}

func TestOpenAIProvider_NonOKStatusIsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": "rate limited"}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("openai", "k", srv.URL, "gpt-4o-mini")
	_, err := p.Chat(context.Background(), ChatRequest{})

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("error = %v, want *HTTPError", err)
	}
	if httpErr.Status != http.StatusTooManyRequests {
		t.Errorf("Status = %d, want 429", httpErr.Status)
	}
}

func TestNewOpenAIProvider_DefaultBase(t *testing.T) {
	p := NewOpenAIProvider("openai", "k", "", "gpt-4o-mini")
	if p.apiBase != "https://api.openai.com/v1" {
		t.Errorf("apiBase = %q", p.apiBase)
	}

	p = NewOpenAIProvider("openai", "k", "https://example.com/v1/", "gpt-4o-mini")
	if p.apiBase != "https://example.com/v1" {
		t.Errorf("apiBase = %q, want trailing slash trimmed", p.apiBase)
	}
}
