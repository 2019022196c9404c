package redis

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/catalograg/internal/db"
)

// JSONGet retrieves a JSON document by key, projected to the given paths.
func (s *Store) JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error) {
	raw, err := s.do(ctx, s.jsonGetCmd(key, paths)).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpJSONGet, Err: err}
	}
	if raw == "" {
		return nil, db.ErrKeyNotFound
	}
	return []byte(raw), nil
}

// JSONGetMulti issues one JSON.GET per key in a single DoMulti round-trip.
// Missing keys produce nil entries, any other error fails the whole call.
func (s *Store) JSONGetMulti(ctx context.Context, keys []string, paths ...string) ([][]byte, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	cmds := make([]rueidis.Completed, len(keys))
	for i, key := range keys {
		cmds[i] = s.jsonGetCmd(key, paths)
	}

	results := s.client.DoMulti(ctx, cmds...)
	out := make([][]byte, len(results))
	for i, res := range results {
		raw, err := res.ToString()
		if err != nil {
			if rueidis.IsRedisNil(err) {
				continue
			}
			return nil, &db.Error{Op: db.OpJSONGet, Err: fmt.Errorf("key %s: %w", keys[i], err)}
		}
		if raw != "" {
			out[i] = []byte(raw)
		}
	}
	return out, nil
}

func (s *Store) jsonGetCmd(key string, paths []string) rueidis.Completed {
	args := make([]string, len(paths))
	copy(args, paths)
	return s.b().Arbitrary("JSON.GET").Keys(key).Args(args...).Build()
}
