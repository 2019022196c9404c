package domain

import "encoding/json"

// Response is the payload shape exposed to callers.
// Exactly one of the success keys or Error is set.
type Response struct {
	RecommendedProducts []string        `json:"recommendedProducts,omitempty"`
	Answer              json.RawMessage `json:"answer,omitempty"`
	Error               string          `json:"error,omitempty"`
}

// MarshalJSON keeps an empty recommendation list visible as [] instead of
// dropping the key, so callers can tell "no matches" from an error.
func (r Response) MarshalJSON() ([]byte, error) {
	if r.Error != "" {
		return json.Marshal(struct {
			Error string `json:"error"`
		}{r.Error})
	}
	if r.RecommendedProducts != nil {
		return json.Marshal(struct {
			RecommendedProducts []string `json:"recommendedProducts"`
		}{r.RecommendedProducts})
	}
	type plain Response
	return json.Marshal(plain(r))
}
