package query

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/kailas-cloud/catalograg/internal/domain"
)

// VectorIndexBuilder embeds every document and keeps the vectors in memory.
// Each Build starts from scratch; nothing is shared between requests.
type VectorIndexBuilder struct {
	embedder domain.Embedder
}

// NewVectorIndexBuilder creates a builder backed by the given embedder.
func NewVectorIndexBuilder(e domain.Embedder) *VectorIndexBuilder {
	return &VectorIndexBuilder{embedder: e}
}

// Build batch-embeds the document texts.
func (b *VectorIndexBuilder) Build(ctx context.Context, docs []domain.Document) (Index, error) {
	idx := &vectorIndex{embedder: b.embedder, docs: docs}
	if len(docs) == 0 {
		return idx, nil
	}

	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text()
	}

	res, err := domain.EmbedAll(ctx, b.embedder, texts)
	if err != nil {
		return nil, fmt.Errorf("embed catalog: %w", err)
	}

	idx.vectors = make([][]float32, len(docs))
	idx.norms = make([]float64, len(docs))
	for i, v := range res.Embeddings {
		if i > 0 && len(v) != len(idx.vectors[0]) {
			return nil, fmt.Errorf("document %s has %d dimensions, want %d: %w",
				docs[i].ID, len(v), len(idx.vectors[0]), domain.ErrVectorDimMismatch)
		}
		idx.vectors[i] = v
		idx.norms[i] = norm(v)
	}
	return idx, nil
}

// vectorIndex is a brute-force cosine similarity index.
type vectorIndex struct {
	embedder domain.Embedder
	docs     []domain.Document
	vectors  [][]float32
	norms    []float64
}

func (x *vectorIndex) Len() int { return len(x.docs) }

// Retrieve embeds the prompt and returns the top min(k, Len) documents
// by descending cosine similarity. Ties keep catalog order.
func (x *vectorIndex) Retrieve(ctx context.Context, prompt string, k int) ([]domain.ScoredDocument, error) {
	if k <= 0 || len(x.docs) == 0 {
		return []domain.ScoredDocument{}, nil
	}

	res, err := x.embedder.Embed(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("embed prompt: %w", err)
	}
	q := res.Embedding
	if len(q) != len(x.vectors[0]) {
		return nil, fmt.Errorf("prompt has %d dimensions, index has %d: %w",
			len(q), len(x.vectors[0]), domain.ErrVectorDimMismatch)
	}
	qn := norm(q)

	hits := make([]domain.ScoredDocument, len(x.docs))
	for i := range x.docs {
		hits[i] = domain.ScoredDocument{Document: x.docs[i], Score: cosine(q, qn, x.vectors[i], x.norms[i])}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })

	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

func norm(v []float32) float64 {
	var s float64
	for _, f := range v {
		s += float64(f) * float64(f)
	}
	return math.Sqrt(s)
}

// cosine returns 0 when either vector has zero length.
func cosine(a []float32, an float64, b []float32, bn float64) float64 {
	if an == 0 || bn == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot / (an * bn)
}
