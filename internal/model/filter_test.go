package model

import "testing"

func TestNormalizeDropsAllSentinel(t *testing.T) {
	f := PostFilter{
		Authors: []string{"All", "bob"},
		Tags:    []string{"python"},
	}.Normalize()

	if f.HasAuthorPredicate() {
		t.Errorf("got authors %v, want the predicate disabled", f.Authors)
	}
	if !f.HasTagPredicate() {
		t.Error("tag predicate should stay active")
	}
}

func TestNormalizeDefaultsModeAndLimit(t *testing.T) {
	f := PostFilter{Mode: "bogus"}.Normalize()

	if f.Mode != FilterModeAnd {
		t.Errorf("got mode %q, want %q", f.Mode, FilterModeAnd)
	}
	if f.Limit != DefaultFilterLimit {
		t.Errorf("got limit %d, want %d", f.Limit, DefaultFilterLimit)
	}
}

func TestNormalizeKeepsLargeLimit(t *testing.T) {
	// The upper cap depends on the post count, so it lives in the service.
	f := PostFilter{Limit: 9000}.Normalize()
	if f.Limit != 9000 {
		t.Errorf("got limit %d, want 9000", f.Limit)
	}

	f = PostFilter{Limit: -3}.Normalize()
	if f.Limit != DefaultFilterLimit {
		t.Errorf("got limit %d, want %d", f.Limit, DefaultFilterLimit)
	}
}

func TestNormalizeKeepsOrMode(t *testing.T) {
	f := PostFilter{Mode: FilterModeOr}.Normalize()
	if f.Mode != FilterModeOr {
		t.Errorf("got mode %q, want %q", f.Mode, FilterModeOr)
	}
}
