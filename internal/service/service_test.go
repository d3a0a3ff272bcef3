package service

import (
	"time"

	"github.com/pybites/insights/internal/model"
)

// fakePostRepo returns canned data so service tests need no database.
type fakePostRepo struct {
	posts       []*model.Post
	lastFilter  model.PostFilter
	searchQuery string
	searchLimit int
}

func (f *fakePostRepo) UpsertRaw(raw *model.RawPost) (bool, error) { return true, nil }
func (f *fakePostRepo) Refine() (int, error)                       { return 0, nil }

func (f *fakePostRepo) Posts(filter model.PostFilter) ([]*model.Post, error) {
	f.lastFilter = filter
	return f.posts, nil
}

func (f *fakePostRepo) ByURL(url string) (*model.Post, error) {
	for _, p := range f.posts {
		if p.URL == url {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePostRepo) Recent(limit int) ([]*model.Post, error) {
	if limit > len(f.posts) {
		limit = len(f.posts)
	}
	return f.posts[:limit], nil
}

func (f *fakePostRepo) Search(query string, limit int) ([]*model.Post, error) {
	f.searchQuery = query
	f.searchLimit = limit
	return f.posts, nil
}

func (f *fakePostRepo) Count() (int, error) { return len(f.posts), nil }

type fakeStatsRepo struct {
	counts     []model.MonthCount
	allCounts  []model.MonthCount
	rangedFrom time.Time
	rangedTo   time.Time
	usedAll    bool
}

func (f *fakeStatsRepo) RebuildAggregates() error { return nil }

func (f *fakeStatsRepo) Overview(sixMonthStart time.Time) (*model.Metrics, error) {
	return &model.Metrics{}, nil
}

func (f *fakeStatsRepo) MonthlyCounts(from, to time.Time) ([]model.MonthCount, error) {
	f.rangedFrom, f.rangedTo = from, to
	return f.counts, nil
}

func (f *fakeStatsRepo) AllMonthlyCounts() ([]model.MonthCount, error) {
	f.usedAll = true
	return f.allCounts, nil
}

func (f *fakeStatsRepo) TopAuthors(limit int) ([]model.AuthorCount, error) {
	return []model.AuthorCount{{Author: "bob", Posts: 3}}, nil
}

func (f *fakeStatsRepo) Authors() ([]string, error) { return []string{"ann", "bob"}, nil }
func (f *fakeStatsRepo) Tags() ([]string, error)    { return []string{"django", "python"}, nil }

func samplePost(slug, author string, published time.Time, tags ...string) *model.Post {
	return &model.Post{
		URL:           "https://pybit.es/articles/" + slug + "/",
		Slug:          slug,
		Title:         "Title of " + slug,
		Author:        author,
		DatePublished: published,
		DateModified:  published.AddDate(0, 0, 2),
		Tags:          tags,
		Content:       []string{"Opening paragraph of " + slug},
	}
}
