package query

import (
	"context"

	"github.com/kailas-cloud/catalograg/internal/domain"
	"github.com/kailas-cloud/catalograg/internal/domain/tags"
)

// TagFinder looks up a single product projection (used for seed tags).
type TagFinder interface {
	FindOne(ctx context.Context, collection, id string, fields []string) (domain.Document, error)
}

// CatalogReader reads catalog projections.
type CatalogReader interface {
	TagFinder
	Load(ctx context.Context, collection string, fields []string) ([]domain.Document, error)
}

// IndexBuilder turns a loaded catalog into a searchable index.
// Tests substitute a deterministic builder.
type IndexBuilder interface {
	Build(ctx context.Context, docs []domain.Document) (Index, error)
}

// Index returns the k documents nearest to a prompt.
type Index interface {
	Retrieve(ctx context.Context, prompt string, k int) ([]domain.ScoredDocument, error)
	Len() int
}

// ResponseSynthesizer produces one raw answer from retrieved documents.
type ResponseSynthesizer interface {
	Synthesize(ctx context.Context, retrieved []domain.ScoredDocument, prompt string) (string, error)
}

// RecommendFallback picks products when the generation service returned no usable list.
type RecommendFallback interface {
	Pick(seedTags tags.Set, retrieved []domain.ScoredDocument, seedIDs []string) []string
}
