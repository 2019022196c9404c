package query

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"testing"

	"github.com/kailas-cloud/catalograg/internal/domain"
	"github.com/kailas-cloud/catalograg/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterPipelineMetrics()
	os.Exit(m.Run())
}

// mockCatalog serves products from memory and counts calls.
type mockCatalog struct {
	products   map[string]map[string]any
	findErr    error
	loadErr    error
	findCalls  int
	loadCalls  int
	lastFields []string
}

func (m *mockCatalog) FindOne(_ context.Context, _, id string, fields []string) (domain.Document, error) {
	m.findCalls++
	if m.findErr != nil {
		return domain.Document{}, m.findErr
	}
	p, ok := m.products[id]
	if !ok {
		return domain.Document{}, domain.ErrProductNotFound
	}
	return project(id, p, fields), nil
}

func (m *mockCatalog) Load(_ context.Context, _ string, fields []string) ([]domain.Document, error) {
	m.loadCalls++
	m.lastFields = fields
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	docs := make([]domain.Document, 0, len(m.products))
	for _, id := range sortedKeys(m.products) {
		docs = append(docs, project(id, m.products[id], fields))
	}
	return docs, nil
}

func project(id string, p map[string]any, fields []string) domain.Document {
	values := make(map[string]json.RawMessage, len(fields))
	for _, f := range fields {
		if f == domain.FieldID {
			values[f], _ = json.Marshal(id)
			continue
		}
		if v, ok := p[f]; ok {
			values[f], _ = json.Marshal(v)
		}
	}
	return domain.Document{ID: id, Fields: values, Order: fields}
}

func sortedKeys(m map[string]map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// tableEmbedder maps texts to fixed vectors; unknown texts get fallback.
type tableEmbedder struct {
	table    map[string][]float32
	fallback []float32
	err      error
	calls    int
}

func (e *tableEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	e.calls++
	if e.err != nil {
		return domain.EmbeddingResult{}, e.err
	}
	if v, ok := e.table[text]; ok {
		return domain.EmbeddingResult{Embedding: v, TotalTokens: 1}, nil
	}
	return domain.EmbeddingResult{Embedding: e.fallback, TotalTokens: 1}, nil
}

// fixedIndexBuilder returns every document with score 1 in catalog order.
type fixedIndexBuilder struct {
	err     error
	calls   int
	lastK   int
	prompts []string
}

func (b *fixedIndexBuilder) Build(_ context.Context, docs []domain.Document) (Index, error) {
	b.calls++
	if b.err != nil {
		return nil, b.err
	}
	return &fixedIndex{builder: b, docs: docs}, nil
}

type fixedIndex struct {
	builder *fixedIndexBuilder
	docs    []domain.Document
}

func (x *fixedIndex) Len() int { return len(x.docs) }

func (x *fixedIndex) Retrieve(_ context.Context, prompt string, k int) ([]domain.ScoredDocument, error) {
	x.builder.lastK = k
	x.builder.prompts = append(x.builder.prompts, prompt)
	out := make([]domain.ScoredDocument, 0, min(k, len(x.docs)))
	for i := 0; i < len(x.docs) && i < k; i++ {
		out = append(out, domain.ScoredDocument{Document: x.docs[i], Score: 1})
	}
	return out, nil
}

// mockSynth returns a canned answer.
type mockSynth struct {
	answer    string
	err       error
	calls     int
	prompt    string
	retrieved []domain.ScoredDocument
}

func (m *mockSynth) Synthesize(_ context.Context, retrieved []domain.ScoredDocument, prompt string) (string, error) {
	m.calls++
	m.prompt = prompt
	m.retrieved = retrieved
	return m.answer, m.err
}

// mockGenerator records the request.
type mockGenerator struct {
	text  string
	err   error
	calls int
	req   domain.GenerationRequest
}

func (m *mockGenerator) Generate(_ context.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
	m.calls++
	m.req = req
	if m.err != nil {
		return domain.GenerationResult{}, m.err
	}
	return domain.GenerationResult{Text: m.text, TotalTokens: 50}, nil
}

// catalogOf builds n products with ids p000..p(n-1).
func catalogOf(n int) map[string]map[string]any {
	out := make(map[string]map[string]any, n)
	for i := 0; i < n; i++ {
		out[fmt.Sprintf("p%03d", i)] = map[string]any{
			domain.FieldProductName: fmt.Sprintf("Product %d", i),
			domain.FieldTags:        "misc",
		}
	}
	return out
}
