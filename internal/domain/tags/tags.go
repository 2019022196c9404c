package tags

import (
	"sort"
	"strings"
)

// Delimiter separates tags inside a product's tag field.
const Delimiter = ","

// Set is a set of trimmed, case-preserving tags.
// The zero value is an empty set ready for use.
type Set struct {
	m map[string]struct{}
}

// New builds a set from raw tag strings, trimming each one.
func New(values ...string) Set {
	var s Set
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Parse splits a delimited tag field into a set.
func Parse(field string) Set {
	return New(strings.Split(field, Delimiter)...)
}

// Add inserts a tag after trimming surrounding whitespace. Empty tags are ignored.
func (s *Set) Add(tag string) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return
	}
	if s.m == nil {
		s.m = make(map[string]struct{})
	}
	s.m[tag] = struct{}{}
}

// Union adds every tag of other to s.
func (s *Set) Union(other Set) {
	for t := range other.m {
		s.Add(t)
	}
}

// Has reports whether tag is in the set. The lookup is trimmed, case-sensitive.
func (s Set) Has(tag string) bool {
	_, ok := s.m[strings.TrimSpace(tag)]
	return ok
}

// Intersects reports whether s and other share at least one tag.
func (s Set) Intersects(other Set) bool {
	small, big := s, other
	if len(small.m) > len(big.m) {
		small, big = big, small
	}
	for t := range small.m {
		if _, ok := big.m[t]; ok {
			return true
		}
	}
	return false
}

// Len returns the number of tags.
func (s Set) Len() int { return len(s.m) }

// IsEmpty reports whether the set has no tags.
func (s Set) IsEmpty() bool { return len(s.m) == 0 }

// Sorted returns the tags in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s.m))
	for t := range s.m {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Join renders the tags sorted and joined by sep.
func (s Set) Join(sep string) string {
	return strings.Join(s.Sorted(), sep)
}
