package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pybites/insights/internal/db"
	"github.com/pybites/insights/internal/model"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Connect("sqlite", filepath.Join(t.TempDir(), "insights.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	err = db.RunMigrations(database.DB, "sqlite")
	if err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return database
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func rawPost(slug, author string, published time.Time, tags ...string) *model.RawPost {
	return &model.RawPost{
		URL:           "https://pybit.es/articles/" + slug + "/",
		Title:         "Title of " + slug,
		Author:        author,
		DatePublished: published,
		DateModified:  published,
		Tags:          tags,
		ContentLinks:  []model.Link{},
		Content:       []string{"Opening paragraph of " + slug, "Second paragraph"},
		Year:          published.Year(),
		Month:         int(published.Month()),
	}
}

// seed stores the raw versions and refines them into queryable posts.
func seed(t *testing.T, posts PostRepository, raws ...*model.RawPost) {
	t.Helper()
	for _, raw := range raws {
		_, err := posts.UpsertRaw(raw)
		if err != nil {
			t.Fatalf("failed to store %s: %v", raw.URL, err)
		}
	}
	_, err := posts.Refine()
	if err != nil {
		t.Fatalf("failed to refine: %v", err)
	}
}

func urls(posts []*model.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.URL
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
