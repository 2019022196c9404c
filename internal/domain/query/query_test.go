package query

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kailas-cloud/catalograg/internal/domain"
)

func TestIsValid(t *testing.T) {
	for _, m := range []Mode{Recommend, Ask} {
		if !m.IsValid() {
			t.Errorf("%q.IsValid() = false, want true", m)
		}
	}
	for _, m := range []Mode{"", "search", "ASK"} {
		if m.IsValid() {
			t.Errorf("%q.IsValid() = true, want false", m)
		}
	}
}

func TestNewRecommend_Empty(t *testing.T) {
	for _, ids := range [][]string{nil, {}, {"", "  "}} {
		_, err := NewRecommend(ids)
		if !errors.Is(err, domain.ErrInput) {
			t.Errorf("NewRecommend(%q): expected ErrInput, got %v", ids, err)
		}
	}
}

func TestNewRecommend_NormalizesIDs(t *testing.T) {
	q, err := NewRecommend([]string{" id1", "id2", "id1", ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Mode() != Recommend {
		t.Errorf("mode = %q", q.Mode())
	}
	if want := []string{"id1", "id2"}; !reflect.DeepEqual(q.SeedIDs(), want) {
		t.Errorf("SeedIDs() = %v, want %v", q.SeedIDs(), want)
	}
}

func TestNewAsk(t *testing.T) {
	if _, err := NewAsk(""); !errors.Is(err, domain.ErrInput) {
		t.Errorf("expected ErrInput for empty text, got %v", err)
	}
	if _, err := NewAsk(" \n"); !errors.Is(err, domain.ErrInput) {
		t.Errorf("expected ErrInput for blank text, got %v", err)
	}

	q, err := NewAsk("do you sell shoes?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Mode() != Ask || q.Text() != "do you sell shoes?" {
		t.Errorf("unexpected query: %+v", q)
	}
}
