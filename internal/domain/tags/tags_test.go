package tags

import (
	"reflect"
	"testing"
)

func TestParse_TrimsAndDeduplicates(t *testing.T) {
	s := Parse("red, blue,red")
	s.Union(Parse("blue , green"))

	want := []string{"blue", "green", "red"}
	if got := s.Sorted(); !reflect.DeepEqual(got, want) {
		t.Errorf("Sorted() = %v, want %v", got, want)
	}
}

func TestParse_DropsEmptyEntries(t *testing.T) {
	tests := []struct {
		field string
		want  int
	}{
		{"", 0},
		{"   ", 0},
		{",,", 0},
		{" a , , b ,", 2},
		{"shoe", 1},
	}
	for _, tc := range tests {
		if got := Parse(tc.field).Len(); got != tc.want {
			t.Errorf("Parse(%q).Len() = %d, want %d", tc.field, got, tc.want)
		}
	}
}

func TestSet_CasePreserving(t *testing.T) {
	s := New("Shoe", "shoe")
	if s.Len() != 2 {
		t.Fatalf("expected case-distinct tags to be kept, got %v", s.Sorted())
	}
	if !s.Has(" Shoe ") {
		t.Error("expected trimmed lookup to match")
	}
	if s.Has("SHOE") {
		t.Error("lookup must be case-sensitive")
	}
}

func TestSet_NoSurroundingWhitespace(t *testing.T) {
	s := New("  a", "b  ", "\tc\n")
	for _, tag := range s.Sorted() {
		if tag == "" || tag[0] == ' ' || tag[len(tag)-1] == ' ' || tag[0] == '\t' || tag[len(tag)-1] == '\n' {
			t.Errorf("tag %q has surrounding whitespace", tag)
		}
	}
}

func TestSet_ZeroValue(t *testing.T) {
	var s Set
	if !s.IsEmpty() {
		t.Error("zero value should be empty")
	}
	if got := s.Sorted(); len(got) != 0 {
		t.Errorf("expected no tags, got %v", got)
	}
	s.Add("x")
	if !s.Has("x") {
		t.Error("expected Add on zero value to work")
	}
}

func TestSet_Intersects(t *testing.T) {
	a := New("shoe", "sport")
	if !a.Intersects(Parse("sport,outdoor")) {
		t.Error("expected intersection on sport")
	}
	if a.Intersects(Parse("kitchen")) {
		t.Error("unexpected intersection")
	}
	if a.Intersects(Set{}) {
		t.Error("empty set intersects nothing")
	}
}

func TestSet_Join(t *testing.T) {
	s := New("sport", "shoe")
	if got := s.Join(", "); got != "shoe, sport" {
		t.Errorf("Join = %q", got)
	}
}
