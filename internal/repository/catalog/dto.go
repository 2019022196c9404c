package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kailas-cloud/catalograg/internal/domain"
)

// fieldPaths maps field names to the JSONPaths passed to JSON.GET.
func fieldPaths(fields []string) []string {
	paths := make([]string, len(fields))
	for i, f := range fields {
		paths[i] = "$." + f
	}
	return paths
}

// parseProjection decodes a JSON.GET reply.
// With one path the reply is a JSON array of matches, with several it is an
// object keyed by path. A path with no match leaves its field absent.
func parseProjection(raw []byte, fields []string) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage, len(fields))
	if len(fields) == 0 {
		return out, nil
	}

	if len(fields) == 1 {
		var matches []json.RawMessage
		if err := json.Unmarshal(raw, &matches); err != nil {
			return nil, fmt.Errorf("unmarshal projection: %w", err)
		}
		if len(matches) > 0 {
			out[fields[0]] = matches[0]
		}
		return out, nil
	}

	var byPath map[string][]json.RawMessage
	if err := json.Unmarshal(raw, &byPath); err != nil {
		return nil, fmt.Errorf("unmarshal projection: %w", err)
	}
	for _, f := range fields {
		if matches := byPath["$."+f]; len(matches) > 0 {
			out[f] = matches[0]
		}
	}
	return out, nil
}

// buildDocument assembles a domain.Document. The identifier always comes from
// the key, so a record without a stored _id still has one.
func buildDocument(id string, fields []string, values map[string]json.RawMessage) domain.Document {
	if hasField(fields, domain.FieldID) {
		if v, ok := values[domain.FieldID]; !ok || string(v) == "null" {
			quoted, _ := json.Marshal(id)
			values[domain.FieldID] = quoted
		}
	}
	order := make([]string, len(fields))
	copy(order, fields)
	return domain.Document{ID: id, Fields: values, Order: order}
}

func hasField(fields []string, name string) bool {
	for _, f := range fields {
		if f == name {
			return true
		}
	}
	return false
}

func productKey(prefix, collection, id string) string {
	return fmt.Sprintf("%s%s:%s", prefix, collection, id)
}

func collectionPattern(prefix, collection string) string {
	return fmt.Sprintf("%s%s:*", prefix, collection)
}

func extractID(key, prefix, collection string) string {
	return strings.TrimPrefix(key, fmt.Sprintf("%s%s:", prefix, collection))
}
