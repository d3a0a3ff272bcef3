package repository

import (
	"testing"
	"time"

	"github.com/pybites/insights/internal/model"
)

func TestUpsertRawDeduplicatesVersions(t *testing.T) {
	posts := NewPostRepository(newTestDB(t))

	raw := rawPost("first-steps", "bob", day(2023, time.March, 1), "python")

	inserted, err := posts.UpsertRaw(raw)
	if err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if !inserted {
		t.Error("first insert: got false, want true")
	}

	inserted, err = posts.UpsertRaw(raw)
	if err != nil {
		t.Fatalf("duplicate insert failed: %v", err)
	}
	if inserted {
		t.Error("duplicate insert: got true, want false")
	}

	revised := *raw
	revised.DateModified = day(2023, time.March, 10)
	inserted, err = posts.UpsertRaw(&revised)
	if err != nil {
		t.Fatalf("revised insert failed: %v", err)
	}
	if !inserted {
		t.Error("revised insert: got false, want true")
	}
}

func TestRefinePicksNewestVersion(t *testing.T) {
	posts := NewPostRepository(newTestDB(t))

	first := rawPost("decorators", "ann", day(2023, time.January, 5), "python")
	revised := *first
	revised.Title = "Title of decorators, revised"
	revised.DateModified = day(2023, time.January, 15)

	seed(t, posts, first, &revised)

	got, err := posts.ByURL(first.URL)
	if err != nil {
		t.Fatalf("ByURL failed: %v", err)
	}

	if got.Title != revised.Title {
		t.Errorf("got title %q, want %q", got.Title, revised.Title)
	}
	if got.RevisionDays != 10 {
		t.Errorf("got revision days %d, want 10", got.RevisionDays)
	}
	if got.Domain != "https://pybit.es" {
		t.Errorf("got domain %q, want %q", got.Domain, "https://pybit.es")
	}
	if got.Category != "articles" {
		t.Errorf("got category %q, want %q", got.Category, "articles")
	}
	if got.Slug != "decorators" {
		t.Errorf("got slug %q, want %q", got.Slug, "decorators")
	}
	if got.ParagraphCount != 2 {
		t.Errorf("got paragraph count %d, want 2", got.ParagraphCount)
	}
	if got.WordCount != 6 {
		t.Errorf("got word count %d, want 6", got.WordCount)
	}
	if got.PubYear != 2023 || got.PubMonth != 1 {
		t.Errorf("got pub year/month %d-%d, want 2023-1", got.PubYear, got.PubMonth)
	}

	count, err := posts.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("got %d posts, want 1", count)
	}
}

func TestRefineIsIdempotent(t *testing.T) {
	posts := NewPostRepository(newTestDB(t))
	seed(t, posts, rawPost("testing-101", "bob", day(2023, time.May, 1), "testing"))

	changed, err := posts.Refine()
	if err != nil {
		t.Fatalf("second refine failed: %v", err)
	}
	if changed != 0 {
		t.Errorf("second refine changed %d rows, want 0", changed)
	}

	got, err := posts.ByURL("https://pybit.es/articles/testing-101/")
	if err != nil {
		t.Fatalf("ByURL failed: %v", err)
	}
	if !equalStrings(got.Tags, []string{"testing"}) {
		t.Errorf("got tags %v, want [testing]", got.Tags)
	}
}

// seedCatalog builds a small catalog with known authors, tags and dates,
// newest first: d, c, b, a.
func seedCatalog(t *testing.T, posts PostRepository) {
	t.Helper()
	seed(t, posts,
		rawPost("a-basics", "bob", day(2023, time.January, 10), "python", "django"),
		rawPost("b-tips", "ann", day(2023, time.February, 10), "python"),
		rawPost("c-tour", "bob", day(2023, time.March, 10), "golang"),
		rawPost("d-forms", "ann", day(2023, time.April, 10), "django", "flask"),
	)
}

func TestPostsNoFilterReturnsNewestFirst(t *testing.T) {
	posts := NewPostRepository(newTestDB(t))
	seedCatalog(t, posts)

	got, err := posts.Posts(model.PostFilter{})
	if err != nil {
		t.Fatalf("Posts failed: %v", err)
	}

	want := []string{
		"https://pybit.es/articles/d-forms/",
		"https://pybit.es/articles/c-tour/",
		"https://pybit.es/articles/b-tips/",
		"https://pybit.es/articles/a-basics/",
	}
	if !equalStrings(urls(got), want) {
		t.Errorf("got order %v, want %v", urls(got), want)
	}
}

func TestPostsFilterByAuthor(t *testing.T) {
	posts := NewPostRepository(newTestDB(t))
	seedCatalog(t, posts)

	got, err := posts.Posts(model.PostFilter{Authors: []string{"ann"}})
	if err != nil {
		t.Fatalf("Posts failed: %v", err)
	}

	want := []string{
		"https://pybit.es/articles/d-forms/",
		"https://pybit.es/articles/b-tips/",
	}
	if !equalStrings(urls(got), want) {
		t.Errorf("got %v, want %v", urls(got), want)
	}
}

func TestPostsFilterByTagsRequiresAll(t *testing.T) {
	posts := NewPostRepository(newTestDB(t))
	seedCatalog(t, posts)

	got, err := posts.Posts(model.PostFilter{Tags: []string{"python", "django"}})
	if err != nil {
		t.Fatalf("Posts failed: %v", err)
	}

	want := []string{"https://pybit.es/articles/a-basics/"}
	if !equalStrings(urls(got), want) {
		t.Errorf("got %v, want %v", urls(got), want)
	}
}

func TestPostsOrModeCombinesPredicates(t *testing.T) {
	posts := NewPostRepository(newTestDB(t))
	seedCatalog(t, posts)

	got, err := posts.Posts(model.PostFilter{
		Authors: []string{"ann"},
		Tags:    []string{"golang"},
		Mode:    model.FilterModeOr,
	})
	if err != nil {
		t.Fatalf("Posts failed: %v", err)
	}

	want := []string{
		"https://pybit.es/articles/d-forms/",
		"https://pybit.es/articles/c-tour/",
		"https://pybit.es/articles/b-tips/",
	}
	if !equalStrings(urls(got), want) {
		t.Errorf("got %v, want %v", urls(got), want)
	}
}

func TestPostsAndModeIntersectsPredicates(t *testing.T) {
	posts := NewPostRepository(newTestDB(t))
	seedCatalog(t, posts)

	got, err := posts.Posts(model.PostFilter{
		Authors: []string{"bob"},
		Tags:    []string{"django"},
		Mode:    model.FilterModeAnd,
	})
	if err != nil {
		t.Fatalf("Posts failed: %v", err)
	}

	want := []string{"https://pybit.es/articles/a-basics/"}
	if !equalStrings(urls(got), want) {
		t.Errorf("got %v, want %v", urls(got), want)
	}
}

func TestPostsAllSentinelDisablesPredicate(t *testing.T) {
	posts := NewPostRepository(newTestDB(t))
	seedCatalog(t, posts)

	got, err := posts.Posts(model.PostFilter{Authors: []string{model.FilterAll}})
	if err != nil {
		t.Fatalf("Posts failed: %v", err)
	}
	if len(got) != 4 {
		t.Errorf("got %d posts, want 4", len(got))
	}
}

func TestPostsDateRangeIsInclusive(t *testing.T) {
	posts := NewPostRepository(newTestDB(t))
	seedCatalog(t, posts)

	got, err := posts.Posts(model.PostFilter{
		From: day(2023, time.February, 10),
		To:   day(2023, time.March, 10),
	})
	if err != nil {
		t.Fatalf("Posts failed: %v", err)
	}

	want := []string{
		"https://pybit.es/articles/c-tour/",
		"https://pybit.es/articles/b-tips/",
	}
	if !equalStrings(urls(got), want) {
		t.Errorf("got %v, want %v", urls(got), want)
	}
}

func TestPostsLimitTruncatesNewestFirst(t *testing.T) {
	posts := NewPostRepository(newTestDB(t))
	seedCatalog(t, posts)

	got, err := posts.Posts(model.PostFilter{Limit: 2})
	if err != nil {
		t.Fatalf("Posts failed: %v", err)
	}

	want := []string{
		"https://pybit.es/articles/d-forms/",
		"https://pybit.es/articles/c-tour/",
	}
	if !equalStrings(urls(got), want) {
		t.Errorf("got %v, want %v", urls(got), want)
	}
}

// A filtered result keeps the relative order of the unfiltered listing.
func TestPostsFilterPreservesRelativeOrder(t *testing.T) {
	posts := NewPostRepository(newTestDB(t))
	seedCatalog(t, posts)

	all, err := posts.Posts(model.PostFilter{})
	if err != nil {
		t.Fatalf("Posts failed: %v", err)
	}
	filtered, err := posts.Posts(model.PostFilter{Authors: []string{"bob"}})
	if err != nil {
		t.Fatalf("Posts failed: %v", err)
	}

	positions := make(map[string]int, len(all))
	for i, p := range all {
		positions[p.URL] = i
	}
	for i := 1; i < len(filtered); i++ {
		if positions[filtered[i-1].URL] > positions[filtered[i].URL] {
			t.Errorf("filtered order %v does not follow unfiltered order %v",
				urls(filtered), urls(all))
		}
	}
}

func TestPostsSameFilterIsStable(t *testing.T) {
	posts := NewPostRepository(newTestDB(t))
	seedCatalog(t, posts)

	filter := model.PostFilter{Tags: []string{"python"}}
	first, err := posts.Posts(filter)
	if err != nil {
		t.Fatalf("Posts failed: %v", err)
	}
	second, err := posts.Posts(filter)
	if err != nil {
		t.Fatalf("Posts failed: %v", err)
	}

	if !equalStrings(urls(first), urls(second)) {
		t.Errorf("same filter gave %v then %v", urls(first), urls(second))
	}
}

func TestPostsEmptyResultIsNotAnError(t *testing.T) {
	posts := NewPostRepository(newTestDB(t))
	seedCatalog(t, posts)

	got, err := posts.Posts(model.PostFilter{Authors: []string{"nobody"}})
	if err != nil {
		t.Fatalf("Posts failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d posts, want 0", len(got))
	}
}

func TestSearchMatchesTitleAndContent(t *testing.T) {
	posts := NewPostRepository(newTestDB(t))
	seedCatalog(t, posts)

	got, err := posts.Search("B-TIPS", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 1 || got[0].Slug != "b-tips" {
		t.Errorf("got %v, want the b-tips post", urls(got))
	}

	got, err = posts.Search("opening paragraph", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 4 {
		t.Errorf("content search got %d posts, want 4", len(got))
	}
}

func TestByURLNotFound(t *testing.T) {
	posts := NewPostRepository(newTestDB(t))

	_, err := posts.ByURL("https://pybit.es/articles/missing/")
	if err != ErrPostNotFound {
		t.Errorf("got error %v, want ErrPostNotFound", err)
	}
}
