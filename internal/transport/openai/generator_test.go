package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/catalograg/internal/domain"
	"github.com/kailas-cloud/catalograg/internal/metrics"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	MaxTokens int `json:"max_tokens"`
}

func TestGenerator_Generate(t *testing.T) {
	var got chatRequest
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		writeCompletion(w, `["A","B"]`)
	})

	cfg := testConfig(srv.URL)
	cfg.Model = "test-chat"
	cfg.MaxTokens = 512
	gen := NewGenerator(cfg)

	before := testutil.ToFloat64(metrics.GenerationRequestsTotal.WithLabelValues("test", "test-chat", "success"))

	res, err := gen.Generate(context.Background(), domain.GenerationRequest{
		Context: "[1]\n_id: A",
		Prompt:  "Return a JSON array of product_ids",
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Text != `["A","B"]` {
		t.Errorf("unexpected text: %q", res.Text)
	}
	if res.PromptTokens != 120 || res.CompletionTokens != 8 || res.TotalTokens != 128 {
		t.Errorf("unexpected usage: %+v", res)
	}

	if got.Model != "test-chat" || got.MaxTokens != 512 {
		t.Errorf("unexpected request: %+v", got)
	}
	if len(got.Messages) != 2 {
		t.Fatalf("expected system and user messages, got %d", len(got.Messages))
	}
	if got.Messages[0].Role != "system" || got.Messages[0].Content != "[1]\n_id: A" {
		t.Errorf("unexpected system message: %+v", got.Messages[0])
	}
	if got.Messages[1].Role != "user" || got.Messages[1].Content != "Return a JSON array of product_ids" {
		t.Errorf("unexpected user message: %+v", got.Messages[1])
	}

	after := testutil.ToFloat64(metrics.GenerationRequestsTotal.WithLabelValues("test", "test-chat", "success"))
	if after-before != 1 {
		t.Errorf("expected success counter to grow by 1, got %v", after-before)
	}
}

func TestGenerator_NoContextSendsOnlyPrompt(t *testing.T) {
	var got chatRequest
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		writeCompletion(w, `{"answer":"I don't know"}`)
	})

	gen := NewGenerator(testConfig(srv.URL))
	if _, err := gen.Generate(context.Background(), domain.GenerationRequest{Prompt: "q"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != "user" {
		t.Errorf("expected only a user message, got %+v", got.Messages)
	}
}

func TestGenerator_APIError(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		writeAPIError(w, http.StatusServiceUnavailable, "overloaded")
	})

	gen := NewGenerator(testConfig(srv.URL))
	_, err := gen.Generate(context.Background(), domain.GenerationRequest{Prompt: "q"})
	if !errors.Is(err, domain.ErrGenerationProviderError) {
		t.Fatalf("expected ErrGenerationProviderError, got %v", err)
	}
}

func TestGenerator_EmptyChoices(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[]}`))
	})

	gen := NewGenerator(testConfig(srv.URL))
	_, err := gen.Generate(context.Background(), domain.GenerationRequest{Prompt: "q"})
	if !errors.Is(err, domain.ErrGenerationProviderError) {
		t.Fatalf("expected ErrGenerationProviderError, got %v", err)
	}
}
