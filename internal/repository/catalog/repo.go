package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/kailas-cloud/catalograg/internal/db"
	"github.com/kailas-cloud/catalograg/internal/domain"
)

// store is the consumer interface for catalog reads (ISP).
type store interface {
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	JSONGetMulti(ctx context.Context, keys []string, paths ...string) ([][]byte, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo reads catalog products stored as JSON documents under
// <prefix><collection>:<id>. It never writes.
type Repo struct {
	store  store
	prefix string
}

// New creates a catalog repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, prefix: keyPrefix}
}

// FindOne returns the projection of a single product.
// Returns domain.ErrProductNotFound when the key does not exist.
func (r *Repo) FindOne(ctx context.Context, collection, id string, fields []string) (domain.Document, error) {
	if len(fields) == 0 {
		return domain.Document{}, fmt.Errorf("projection is empty")
	}
	key := productKey(r.prefix, collection, id)

	raw, err := r.store.JSONGet(ctx, key, fieldPaths(fields)...)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.Document{}, domain.ErrProductNotFound
		}
		return domain.Document{}, fmt.Errorf("json.get %s: %w", key, err)
	}

	values, err := parseProjection(raw, fields)
	if err != nil {
		return domain.Document{}, fmt.Errorf("product %s: %w", id, err)
	}
	return buildDocument(id, fields, values), nil
}

// Load reads the whole collection restricted to fields in one pass:
// a SCAN for the keys, then a single pipelined JSON.GET round-trip.
// Documents are returned in key order. Records that vanish between the two
// steps are skipped.
func (r *Repo) Load(ctx context.Context, collection string, fields []string) ([]domain.Document, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("projection is empty")
	}

	keys, err := r.store.Scan(ctx, collectionPattern(r.prefix, collection))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", collection, err)
	}
	if len(keys) == 0 {
		return nil, nil
	}
	sort.Strings(keys)

	raws, err := r.store.JSONGetMulti(ctx, keys, fieldPaths(fields)...)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", collection, err)
	}

	docs := make([]domain.Document, 0, len(keys))
	for i, raw := range raws {
		if raw == nil {
			continue
		}
		id := extractID(keys[i], r.prefix, collection)
		values, err := parseProjection(raw, fields)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", id, err)
		}
		docs = append(docs, buildDocument(id, fields, values))
	}
	return docs, nil
}
