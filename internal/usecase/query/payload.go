package query

import (
	"github.com/kailas-cloud/catalograg/internal/domain"
)

// RecommendationPayload shapes a recommend result for callers:
// {"recommendedProducts": [...]} or {"error": "..."}.
func RecommendationPayload(rec Recommendation, err error) domain.Response {
	if err != nil {
		return domain.Response{Error: err.Error()}
	}
	ids := rec.ProductIDs
	if ids == nil {
		ids = []string{}
	}
	return domain.Response{RecommendedProducts: ids}
}

// AnswerPayload shapes an ask result: {"answer": <json>}, {} when the
// generation output was not JSON, or {"error": "..."}.
func AnswerPayload(ans Answer, err error) domain.Response {
	if err != nil {
		return domain.Response{Error: err.Error()}
	}
	if !ans.OK {
		return domain.Response{}
	}
	return domain.Response{Answer: ans.Value}
}
