package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pybites/insights/internal/model"
)

var (
	ErrPostNotFound = errors.New("post not found")
)

type PostRepository interface {
	// UpsertRaw stores a scraped article version. Returns false when the
	// same (url, date_modified) version is already present.
	UpsertRaw(raw *model.RawPost) (bool, error)

	// Refine rebuilds the refined posts from the newest raw version of
	// each URL and returns the number of rows created or updated.
	Refine() (int, error)

	Posts(filter model.PostFilter) ([]*model.Post, error)
	ByURL(url string) (*model.Post, error)
	Recent(limit int) ([]*model.Post, error)
	Search(query string, limit int) ([]*model.Post, error)
	Count() (int, error)
}

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `p.id, p.url, p.domain, p.category, p.slug, p.title, p.author,
	p.date_published, p.date_modified, p.revision_days, p.content_links, p.content,
	p.paragraph_count, p.word_count, p.pub_year, p.pub_month, p.year, p.month,
	p.created_at, p.updated_at`

// postRow carries the JSON columns as text; toPost decodes them.
type postRow struct {
	ID            string    `db:"id"`
	URL           string    `db:"url"`
	Domain        string    `db:"domain"`
	Category      string    `db:"category"`
	Slug          string    `db:"slug"`
	Title         string    `db:"title"`
	Author        string    `db:"author"`
	DatePublished time.Time `db:"date_published"`
	DateModified  time.Time `db:"date_modified"`
	RevisionDays  int       `db:"revision_days"`
	ContentLinks  string    `db:"content_links"`
	Content       string    `db:"content"`
	Paragraphs    int       `db:"paragraph_count"`
	Words         int       `db:"word_count"`
	PubYear       int       `db:"pub_year"`
	PubMonth      int       `db:"pub_month"`
	Year          int       `db:"year"`
	Month         int       `db:"month"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (row postRow) toPost() (*model.Post, error) {
	post := &model.Post{
		ID:             row.ID,
		URL:            row.URL,
		Domain:         row.Domain,
		Category:       row.Category,
		Slug:           row.Slug,
		Title:          row.Title,
		Author:         row.Author,
		DatePublished:  row.DatePublished,
		DateModified:   row.DateModified,
		RevisionDays:   row.RevisionDays,
		ParagraphCount: row.Paragraphs,
		WordCount:      row.Words,
		PubYear:        row.PubYear,
		PubMonth:       row.PubMonth,
		Year:           row.Year,
		Month:          row.Month,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}

	err := json.Unmarshal([]byte(row.ContentLinks), &post.ContentLinks)
	if err != nil {
		return nil, fmt.Errorf("post %s has invalid content_links: %w", row.URL, err)
	}
	err = json.Unmarshal([]byte(row.Content), &post.Content)
	if err != nil {
		return nil, fmt.Errorf("post %s has invalid content: %w", row.URL, err)
	}
	return post, nil
}

func (r *postRepository) UpsertRaw(raw *model.RawPost) (bool, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM raw_posts WHERE url = $1 AND date_modified = $2`,
		raw.URL, raw.DateModified.UTC(),
	).Scan(&count)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	tags, err := json.Marshal(raw.Tags)
	if err != nil {
		return false, err
	}
	links, err := json.Marshal(raw.ContentLinks)
	if err != nil {
		return false, err
	}
	content, err := json.Marshal(raw.Content)
	if err != nil {
		return false, err
	}

	fetched := raw.FetchedAt
	if fetched.IsZero() {
		fetched = time.Now()
	}

	// Timestamps are stored in UTC so range comparisons are stable across
	// drivers.
	_, err = r.db.Exec(
		`INSERT INTO raw_posts (id, url, title, author, date_published, date_modified,
		   tags, content_links, content, year, month, fetched_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		uuid.NewString(),
		raw.URL,
		raw.Title,
		raw.Author,
		raw.DatePublished.UTC(),
		raw.DateModified.UTC(),
		string(tags),
		string(links),
		string(content),
		raw.Year,
		raw.Month,
		fetched.UTC(),
	)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *postRepository) Posts(filter model.PostFilter) ([]*model.Post, error) {
	f := filter.Normalize()

	var conds []string
	var args []any

	if !f.From.IsZero() {
		conds = append(conds, "p.date_published >= ?")
		args = append(args, f.From.UTC())
	}
	if !f.To.IsZero() {
		conds = append(conds, "p.date_published <= ?")
		args = append(args, f.To.UTC())
	}

	authorCond := "p.author IN (?)"
	tagCond := `p.id IN (
		SELECT post_id FROM post_tags WHERE tag IN (?)
		GROUP BY post_id HAVING COUNT(DISTINCT tag) = ?
	)`

	switch {
	case f.HasAuthorPredicate() && f.HasTagPredicate() && f.Mode == model.FilterModeOr:
		conds = append(conds, "("+authorCond+" OR "+tagCond+")")
		args = append(args, f.Authors, f.Tags, len(f.Tags))
	default:
		if f.HasAuthorPredicate() {
			conds = append(conds, authorCond)
			args = append(args, f.Authors)
		}
		if f.HasTagPredicate() {
			conds = append(conds, tagCond)
			args = append(args, f.Tags, len(f.Tags))
		}
	}

	query := `SELECT ` + postColumns + ` FROM posts p`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY p.date_published DESC LIMIT ?"
	args = append(args, f.Limit)

	query, expanded, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to build filter query: %w", err)
	}
	query = r.db.Rebind(query)

	var rows []postRow
	err = r.db.Select(&rows, query, expanded...)
	if err != nil {
		return nil, err
	}
	return r.withTags(rows)
}

func (r *postRepository) ByURL(url string) (*model.Post, error) {
	var row postRow
	err := r.db.Get(&row,
		`SELECT `+postColumns+` FROM posts p WHERE p.url = $1`, url)
	if err == sql.ErrNoRows {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}

	posts, err := r.withTags([]postRow{row})
	if err != nil {
		return nil, err
	}
	return posts[0], nil
}

func (r *postRepository) Recent(limit int) ([]*model.Post, error) {
	var rows []postRow
	err := r.db.Select(&rows,
		`SELECT `+postColumns+` FROM posts p ORDER BY p.date_published DESC LIMIT $1`,
		limit)
	if err != nil {
		return nil, err
	}
	return r.withTags(rows)
}

func (r *postRepository) Search(query string, limit int) ([]*model.Post, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"

	var rows []postRow
	err := r.db.Select(&rows,
		`SELECT `+postColumns+` FROM posts p
		 WHERE LOWER(p.title) LIKE $1 OR LOWER(p.content) LIKE $2
		 ORDER BY p.date_published DESC LIMIT $3`,
		pattern, pattern, limit)
	if err != nil {
		return nil, err
	}
	return r.withTags(rows)
}

func (r *postRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&count)
	return count, err
}

// withTags converts rows to posts and attaches their tag sets with a single
// lookup, preserving row order.
func (r *postRepository) withTags(rows []postRow) ([]*model.Post, error) {
	posts := make([]*model.Post, 0, len(rows))
	if len(rows) == 0 {
		return posts, nil
	}

	byID := make(map[string]*model.Post, len(rows))
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		post, err := row.toPost()
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
		byID[post.ID] = post
		ids = append(ids, post.ID)
	}

	query, args, err := sqlx.In(
		`SELECT post_id, tag FROM post_tags WHERE post_id IN (?) ORDER BY tag`, ids)
	if err != nil {
		return nil, err
	}
	query = r.db.Rebind(query)

	var tagRows []struct {
		PostID string `db:"post_id"`
		Tag    string `db:"tag"`
	}
	err = r.db.Select(&tagRows, query, args...)
	if err != nil {
		return nil, err
	}

	for _, tr := range tagRows {
		post, ok := byID[tr.PostID]
		if ok {
			post.Tags = append(post.Tags, tr.Tag)
		}
	}
	return posts, nil
}
