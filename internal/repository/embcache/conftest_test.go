package embcache

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/catalograg/internal/db"
	"github.com/kailas-cloud/catalograg/internal/domain"
)

// fixedEmbedder returns the same vector for every text.
type fixedEmbedder struct {
	vec       []float32
	tokens    int
	err       error
	calls     int
	lastBatch []string
}

func (f *fixedEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	f.calls++
	if f.err != nil {
		return domain.EmbeddingResult{}, f.err
	}
	return domain.EmbeddingResult{Embedding: f.vec, PromptTokens: f.tokens, TotalTokens: f.tokens}, nil
}

// batchingEmbedder adds native batch support on top of fixedEmbedder.
type batchingEmbedder struct {
	fixedEmbedder
	batchCalls int
}

func (b *batchingEmbedder) BatchEmbed(_ context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	b.batchCalls++
	b.lastBatch = texts
	if b.err != nil {
		return domain.BatchEmbeddingResult{}, b.err
	}
	out := domain.BatchEmbeddingResult{Embeddings: make([][]float32, len(texts))}
	for i := range texts {
		out.Embeddings[i] = b.vec
	}
	out.PromptTokens = b.tokens * len(texts)
	out.TotalTokens = b.tokens * len(texts)
	return out, nil
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn        func(ctx context.Context, key string) ([]byte, error)
	setFn        func(ctx context.Context, key string, value []byte) error
	setWithTTLFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	return nil
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setWithTTLFn != nil {
		return m.setWithTTLFn(ctx, key, value, ttl)
	}
	return nil
}

func newCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "test_embedding_cache_total",
	}, []string{"result"})
}

func newTestCache(t *testing.T, inner domain.Embedder, cfg Config) (*CachedEmbedder, *mockKVStore, *prometheus.CounterVec) {
	t.Helper()
	ms := &mockKVStore{}
	counter := newCounter()
	return New(inner, ms, cfg, counter, zap.NewNop()), ms, counter
}
