package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCompleteSendsPromptsAndTrims(t *testing.T) {
	var got chatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "  Acme\nGlobex  \n"}},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", "gpt-4o-mini")
	out, err := c.Complete(context.Background(), "sys", "user", CompleteOptions{Temperature: 0.3, MaxTokens: 500})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if out != "Acme\nGlobex" {
		t.Fatalf("output not trimmed: %q", out)
	}
	if got.Model != "gpt-4o-mini" || len(got.Messages) != 2 || got.Messages[0].Role != "system" {
		t.Fatalf("bad request body: %+v", got)
	}
	if got.ResponseFormat != nil {
		t.Fatal("response_format set without ForceJSON")
	}
}

func TestCompleteForceJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		rf, ok := req["response_format"].(map[string]any)
		if !ok || rf["type"] != "json_object" {
			t.Errorf("expected json_object response_format, got %v", req["response_format"])
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": `{"leads":[]}`}},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "k", "m")
	if _, err := c.Complete(context.Background(), "s", "u", CompleteOptions{ForceJSON: true}); err != nil {
		t.Fatalf("complete: %v", err)
	}
}

func TestCompleteErrorPaths(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(srv.URL, "k", "m")
	if _, err := c.Complete(context.Background(), "s", "u", CompleteOptions{}); err == nil {
		t.Fatal("expected error on 429")
	}

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer empty.Close()

	c2 := New(empty.URL, "k", "m")
	if _, err := c2.Complete(context.Background(), "s", "u", CompleteOptions{}); err == nil {
		t.Fatal("expected error on empty choices")
	}
}
