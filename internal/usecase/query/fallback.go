package query

import (
	"github.com/kailas-cloud/catalograg/internal/domain"
	"github.com/kailas-cloud/catalograg/internal/domain/tags"
)

// TagIntersectionFallback recommends retrieved products whose tags share at
// least one tag with the seeds. Seeds themselves are excluded.
// Order follows retrieval order.
type TagIntersectionFallback struct{}

// Pick implements RecommendFallback.
func (TagIntersectionFallback) Pick(seedTags tags.Set, retrieved []domain.ScoredDocument, seedIDs []string) []string {
	seeds := make(map[string]struct{}, len(seedIDs))
	for _, id := range seedIDs {
		seeds[id] = struct{}{}
	}

	out := []string{}
	for _, hit := range retrieved {
		id := hit.Document.ID
		if _, isSeed := seeds[id]; isSeed {
			continue
		}
		field, ok := hit.Document.Field(domain.FieldTags)
		if !ok {
			continue
		}
		if tags.Parse(field).Intersects(seedTags) {
			out = append(out, id)
		}
	}
	return out
}
