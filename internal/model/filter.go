package model

import (
	"time"
)

const (
	// FilterModeAnd requires posts to satisfy both the author and the tag
	// predicate.
	FilterModeAnd = "and"
	// FilterModeOr accepts posts satisfying either predicate when both
	// selections are active; with a single active selection it behaves
	// like FilterModeAnd.
	FilterModeOr = "or"

	// FilterAll is the sentinel selection that disables a predicate.
	FilterAll = "All"

	DefaultFilterLimit = 20
)

// PostFilter describes the Data-tab predicates. Zero values disable the
// corresponding predicate.
type PostFilter struct {
	Authors []string
	Tags    []string
	Mode    string
	From    time.Time
	To      time.Time
	Limit   int
}

// Normalize strips "All" sentinels and defaults the mode and the limit.
// The upper bound on the limit is the total post count, which the service
// layer applies.
func (f PostFilter) Normalize() PostFilter {
	f.Authors = dropAll(f.Authors)
	f.Tags = dropAll(f.Tags)
	if f.Mode != FilterModeOr {
		f.Mode = FilterModeAnd
	}
	if f.Limit <= 0 {
		f.Limit = DefaultFilterLimit
	}
	return f
}

// HasAuthorPredicate reports whether an author selection is active.
func (f PostFilter) HasAuthorPredicate() bool {
	return len(f.Authors) > 0
}

// HasTagPredicate reports whether a tag selection is active.
func (f PostFilter) HasTagPredicate() bool {
	return len(f.Tags) > 0
}

func dropAll(values []string) []string {
	for _, v := range values {
		if v == FilterAll {
			return nil
		}
	}
	return values
}
