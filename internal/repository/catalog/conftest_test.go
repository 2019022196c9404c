package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/kailas-cloud/catalograg/internal/db"
	"github.com/kailas-cloud/catalograg/internal/domain"
)

const testPrefix = "catalog:"

// mockStore implements the consumer interface for tests.
type mockStore struct {
	jsonGetFn      func(ctx context.Context, key string, paths ...string) ([]byte, error)
	jsonGetMultiFn func(ctx context.Context, keys []string, paths ...string) ([][]byte, error)
	scanFn         func(ctx context.Context, pattern string) ([]string, error)
}

func (m *mockStore) JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error) {
	if m.jsonGetFn != nil {
		return m.jsonGetFn(ctx, key, paths...)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) JSONGetMulti(ctx context.Context, keys []string, paths ...string) ([][]byte, error) {
	if m.jsonGetMultiFn != nil {
		return m.jsonGetMultiFn(ctx, keys, paths...)
	}
	return make([][]byte, len(keys)), nil
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, testPrefix), ms
}

// projectionReply renders the multi-path JSON.GET reply for a stored product.
func projectionReply(t *testing.T, p domain.Product, fields []string) []byte {
	t.Helper()
	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal product: %v", err)
	}
	var stored map[string]json.RawMessage
	if err := json.Unmarshal(raw, &stored); err != nil {
		t.Fatalf("unmarshal product: %v", err)
	}
	reply := make(map[string][]json.RawMessage, len(fields))
	for _, f := range fields {
		if v, ok := stored[f]; ok {
			reply["$."+f] = []json.RawMessage{v}
		}
	}
	out, err := json.Marshal(reply)
	if err != nil {
		t.Fatalf("marshal reply: %v", err)
	}
	return out
}
