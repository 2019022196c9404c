package db

import (
	"context"
	"time"
)

// Store is the database facade the service is wired with.
// Consumers depend on the narrow sub-interfaces below.
type Store interface {
	Pinger
	JSONReader
	KVStore
	KeyScanner
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// JSONReader reads JSON documents, optionally projected to a set of JSONPaths.
type JSONReader interface {
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	// JSONGetMulti reads many keys in one round-trip. A missing key yields a nil entry.
	JSONGetMulti(ctx context.Context, keys []string, paths ...string) ([][]byte, error)
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// KeyScanner lists keys by glob pattern.
type KeyScanner interface {
	Scan(ctx context.Context, pattern string) ([]string, error)
}
