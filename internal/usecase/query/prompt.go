package query

import (
	"fmt"

	"github.com/kailas-cloud/catalograg/internal/domain"
	domquery "github.com/kailas-cloud/catalograg/internal/domain/query"
	"github.com/kailas-cloud/catalograg/internal/domain/tags"
)

// JSONOnlyDirective is appended to every prompt.
const JSONOnlyDirective = "Respond with JSON only, no prose and no markdown code fences."

const (
	recommendTemplate = "Return a JSON array of product_ids where the tags match any of these: %s. " +
		"Only include the product_ids in the response."
	askTemplate = `Return a JSON response with key as "answer" to the question after retrieving: %s. ` +
		`If you don't know, reply "I don't know".`
)

// RenderPrompt builds the instruction for the generation service.
// Tags are only used in recommend mode and are rendered in sorted order.
func RenderPrompt(q domquery.Query, t tags.Set) (string, error) {
	switch q.Mode() {
	case domquery.Recommend:
		if t.IsEmpty() {
			return "", domain.ErrNoTags
		}
		return fmt.Sprintf(recommendTemplate, t.Join(", ")) + " " + JSONOnlyDirective, nil
	case domquery.Ask:
		return fmt.Sprintf(askTemplate, q.Text()) + " " + JSONOnlyDirective, nil
	default:
		return "", fmt.Errorf("unsupported query mode %q: %w", q.Mode(), domain.ErrInput)
	}
}
