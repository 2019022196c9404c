package query

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/catalograg/internal/domain"
)

// Mode is the query pattern.
type Mode string

// Query modes.
const (
	// Recommend finds products similar to a set of seed products.
	Recommend Mode = "recommend"
	// Ask answers a free-form question over the whole catalog.
	Ask Mode = "ask"
)

// IsValid checks if the mode is supported.
func (m Mode) IsValid() bool {
	return m == Recommend || m == Ask
}

// Query is a single request against the catalog. Never persisted.
type Query struct {
	mode    Mode
	seedIDs []string
	text    string
}

// NewRecommend creates a recommend query. Blank ids are dropped;
// at least one id must remain.
func NewRecommend(seedIDs []string) (Query, error) {
	ids := make([]string, 0, len(seedIDs))
	seen := make(map[string]struct{}, len(seedIDs))
	for _, id := range seedIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return Query{}, fmt.Errorf("no product ids received: %w", domain.ErrInput)
	}
	return Query{mode: Recommend, seedIDs: ids}, nil
}

// NewAsk creates an ask query. The text must not be blank.
func NewAsk(text string) (Query, error) {
	if strings.TrimSpace(text) == "" {
		return Query{}, fmt.Errorf("query text is required: %w", domain.ErrInput)
	}
	return Query{mode: Ask, text: text}, nil
}

// Mode returns the query mode.
func (q Query) Mode() Mode { return q.mode }

// SeedIDs returns the deduplicated seed product ids (recommend only).
func (q Query) SeedIDs() []string { return q.seedIDs }

// Text returns the literal question (ask only).
func (q Query) Text() string { return q.text }
