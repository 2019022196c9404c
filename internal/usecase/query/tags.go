package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/catalograg/internal/domain"
	"github.com/kailas-cloud/catalograg/internal/domain/tags"
)

var tagProjection = []string{domain.FieldTags}

// AggregateTags unions the tags of every seed product.
// A missing product or an empty tags field contributes nothing.
// Store failures are returned as domain.ErrUpstream.
func AggregateTags(ctx context.Context, finder TagFinder, collection string, seedIDs []string) (tags.Set, error) {
	var out tags.Set
	for _, id := range seedIDs {
		doc, err := finder.FindOne(ctx, collection, id, tagProjection)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				continue
			}
			return tags.Set{}, fmt.Errorf("%w: lookup tags of %s: %w", domain.ErrUpstream, id, err)
		}
		field, ok := doc.Field(domain.FieldTags)
		if !ok {
			continue
		}
		out.Union(tags.Parse(field))
	}
	return out, nil
}
