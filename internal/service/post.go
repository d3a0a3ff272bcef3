package service

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/pybites/insights/internal/model"
	"github.com/pybites/insights/internal/repository"
)

type PostService struct {
	posts repository.PostRepository
}

func NewPostService(posts repository.PostRepository) *PostService {
	return &PostService{posts: posts}
}

// Filtered returns the posts matching the given predicates, newest first.
// The limit is capped at the total post count, so no request can ask the
// database for more rows than exist. An empty result is a valid answer,
// not an error.
func (s *PostService) Filtered(filter model.PostFilter) ([]*model.Post, error) {
	total, err := s.posts.Count()
	if err != nil {
		return nil, err
	}
	if total > 0 && filter.Limit > total {
		filter.Limit = total
	}
	return s.posts.Posts(filter)
}

func (s *PostService) Recent(limit int) ([]*model.Post, error) {
	return s.posts.Recent(limit)
}

func (s *PostService) Total() (int, error) {
	return s.posts.Count()
}

// csvHeader matches the Data-tab table columns.
var csvHeader = []string{"Title", "Author", "Tags", "Published", "Modified"}

// WriteCSV streams posts as the Data-tab download.
func (s *PostService) WriteCSV(w io.Writer, posts []*model.Post) error {
	writer := csv.NewWriter(w)

	err := writer.Write(csvHeader)
	if err != nil {
		return err
	}

	for _, post := range posts {
		record := []string{
			post.Title,
			post.Author,
			strings.Join(post.Tags, "; "),
			post.DatePublished.Format("2006-01-02"),
			post.DateModified.Format("2006-01-02"),
		}
		err = writer.Write(record)
		if err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
