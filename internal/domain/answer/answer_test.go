package answer

import (
	"reflect"
	"testing"
)

func TestCoerce_List(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    []string
		failure Failure
	}{
		{"not json", "not json", []string{}, FailureParse},
		{"object instead of array", `{"a": 1}`, []string{}, FailureShape},
		{"string instead of array", `"p1"`, []string{}, FailureShape},
		{"array of strings", `["p1","p2"]`, []string{"p1", "p2"}, FailureNone},
		{"empty array", `[]`, []string{}, FailureNone},
		{"mixed elements", `["p1", 2]`, []string{}, FailureElements},
		{"partial json", `["p1", "p2"`, []string{}, FailureParse},
		{"empty text", "", []string{}, FailureParse},
		{"prose around json", `Here you go: ["p1"]`, []string{}, FailureParse},
		{"fenced", "```json\n[\"p1\"]\n```", []string{"p1"}, FailureNone},
		{"bare fence", "```\n[\"p1\", \"p3\"]\n```", []string{"p1", "p3"}, FailureNone},
		{"whitespace", "  \n[\"id3\",\"id5\"]\n ", []string{"id3", "id5"}, FailureNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Coerce(tc.text, List)
			if got.IDs == nil {
				t.Fatal("IDs must never be nil for List shape")
			}
			if !reflect.DeepEqual(got.IDs, tc.want) {
				t.Errorf("IDs = %v, want %v", got.IDs, tc.want)
			}
			if got.Failure != tc.failure {
				t.Errorf("Failure = %q, want %q", got.Failure, tc.failure)
			}
			if got.OK != (tc.failure == FailureNone) {
				t.Errorf("OK = %v with failure %q", got.OK, tc.failure)
			}
		})
	}
}

func TestCoerce_Any(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"object", `{"answer": "We sell shoes"}`, `{"answer":"We sell shoes"}`, true},
		{"string", `"i dont know"`, `"i dont know"`, true},
		{"number", `42`, `42`, true},
		{"array", `[1, 2]`, `[1,2]`, true},
		{"null", `null`, `null`, true},
		{"prose", `I don't know`, "", false},
		{"empty", "", "", false},
		{"fenced object", "```json\n{\"answer\": 1}\n```", `{"answer":1}`, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Coerce(tc.text, Any)
			if got.OK != tc.ok {
				t.Fatalf("OK = %v, want %v", got.OK, tc.ok)
			}
			if string(got.Value) != tc.want {
				t.Errorf("Value = %s, want %s", got.Value, tc.want)
			}
			if got.IDs != nil {
				t.Errorf("IDs should be unset for Any shape, got %v", got.IDs)
			}
		})
	}
}

func TestStripFence(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"[1]", "[1]"},
		{"```[1]```", "[1]"},
		{"```json\n[1]\n```", "[1]"},
		{"```", "```"},
		{"``` not closed", "``` not closed"},
	}
	for _, tc := range tests {
		if got := stripFence(tc.in); got != tc.want {
			t.Errorf("stripFence(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestShapeString(t *testing.T) {
	if List.String() != "list" || Any.String() != "any" || Shape(9).String() != "unknown" {
		t.Error("unexpected shape names")
	}
}
