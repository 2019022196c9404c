package domain

import (
	"context"
	"sync"
)

type usageKey struct{}

// Usage collects token usage for a single request.
// The handler puts a pointer into the context before calling the service;
// embedders and the generator add to it; the handler reads it for response headers.
type Usage struct {
	mu               sync.Mutex
	embeddingTokens  int
	generationTokens int
}

// NewContextWithUsage returns a context carrying a fresh usage collector.
func NewContextWithUsage(ctx context.Context) (context.Context, *Usage) {
	u := &Usage{}
	return context.WithValue(ctx, usageKey{}, u), u
}

// UsageFromContext extracts the collector. Returns nil if not set;
// all methods are safe on a nil receiver.
func UsageFromContext(ctx context.Context) *Usage {
	u, _ := ctx.Value(usageKey{}).(*Usage)
	return u
}

// AddEmbeddingTokens records embedding tokens.
func (u *Usage) AddEmbeddingTokens(n int) {
	if u == nil {
		return
	}
	u.mu.Lock()
	u.embeddingTokens += n
	u.mu.Unlock()
}

// AddGenerationTokens records completion call tokens.
func (u *Usage) AddGenerationTokens(n int) {
	if u == nil {
		return
	}
	u.mu.Lock()
	u.generationTokens += n
	u.mu.Unlock()
}

// EmbeddingTokens returns the embedding token total.
func (u *Usage) EmbeddingTokens() int {
	if u == nil {
		return 0
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.embeddingTokens
}

// GenerationTokens returns the generation token total.
func (u *Usage) GenerationTokens() int {
	if u == nil {
		return 0
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.generationTokens
}
