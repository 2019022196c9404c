// Package answer coerces unreliable generation output into well-typed results.
package answer

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Shape is the structure a caller expects from the generation service.
type Shape int

const (
	// List expects a JSON array of strings (product ids).
	List Shape = iota
	// Any accepts any valid JSON value.
	Any
)

func (s Shape) String() string {
	switch s {
	case List:
		return "list"
	case Any:
		return "any"
	default:
		return "unknown"
	}
}

// Failure describes why coercion fell back to the default.
type Failure string

// Failure reasons. Empty means the answer passed through.
const (
	FailureNone     Failure = ""
	FailureParse    Failure = "parse"
	FailureShape    Failure = "shape"
	FailureElements Failure = "elements"
)

// Result is a coerced answer.
// For List, IDs is never nil. For Any, Value is set only when OK.
type Result struct {
	IDs     []string
	Value   json.RawMessage
	OK      bool
	Failure Failure
}

// Coerce parses text as JSON and enforces shape. It never fails:
// on any violation it returns the shape's default (an empty list, or no value).
func Coerce(text string, shape Shape) Result {
	raw := []byte(stripFence(text))

	switch shape {
	case List:
		return coerceList(raw)
	default:
		return coerceAny(raw)
	}
}

func coerceList(raw []byte) Result {
	empty := Result{IDs: []string{}}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		empty.Failure = FailureParse
		return empty
	}
	items, ok := v.([]any)
	if !ok {
		empty.Failure = FailureShape
		return empty
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		s, ok := it.(string)
		if !ok {
			empty.Failure = FailureElements
			return empty
		}
		ids = append(ids, s)
	}
	return Result{IDs: ids, OK: true}
}

func coerceAny(raw []byte) Result {
	if !json.Valid(raw) {
		return Result{Failure: FailureParse}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return Result{Failure: FailureParse}
	}
	return Result{Value: json.RawMessage(buf.Bytes()), OK: true}
}

// stripFence trims whitespace and one enclosing markdown code fence
// (``` or ```json), which generation services add despite instructions.
func stripFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		lang := strings.TrimSpace(s[:nl])
		if lang == "" || isWord(lang) {
			s = s[nl+1:]
		}
	}
	return strings.TrimSpace(s)
}

func isWord(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
