package repository

import (
	"database/sql"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

type rawRow struct {
	URL           string    `db:"url"`
	Title         string    `db:"title"`
	Author        string    `db:"author"`
	DatePublished time.Time `db:"date_published"`
	DateModified  time.Time `db:"date_modified"`
	Tags          string    `db:"tags"`
	ContentLinks  string    `db:"content_links"`
	Content       string    `db:"content"`
}

// Refine promotes the newest raw version of each URL into the refined posts
// table, computes the derived columns, replaces the tag set and rebuilds the
// aggregate tables. Everything runs in one transaction so dashboard readers
// never see refreshed posts next to stale stats.
func (r *postRepository) Refine() (int, error) {
	var rows []rawRow
	err := r.db.Select(&rows,
		`SELECT url, title, author, date_published, date_modified, tags, content_links, content
		 FROM raw_posts ORDER BY url`)
	if err != nil {
		return 0, err
	}

	// Newest version per URL wins.
	latest := make(map[string]rawRow)
	for _, row := range rows {
		prev, seen := latest[row.URL]
		if !seen || row.DateModified.After(prev.DateModified) {
			latest[row.URL] = row
		}
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	changed := 0
	for _, row := range latest {
		n, err := refineOne(tx, row)
		if err != nil {
			return 0, err
		}
		changed += n
	}

	err = rebuildAggregates(tx)
	if err != nil {
		return 0, err
	}

	err = tx.Commit()
	if err != nil {
		return 0, err
	}
	return changed, nil
}

type refineTx interface {
	Get(dest any, query string, args ...any) error
	Exec(query string, args ...any) (sql.Result, error)
}

func refineOne(tx refineTx, row rawRow) (int, error) {
	var tags []string
	err := json.Unmarshal([]byte(row.Tags), &tags)
	if err != nil {
		return 0, err
	}
	var content []string
	err = json.Unmarshal([]byte(row.Content), &content)
	if err != nil {
		return 0, err
	}

	domain, category, slug := splitArticleURL(row.URL)
	now := time.Now().UTC()

	var existing struct {
		ID           string    `db:"id"`
		DateModified time.Time `db:"date_modified"`
	}
	err = tx.Get(&existing, `SELECT id, date_modified FROM posts WHERE url = $1`, row.URL)
	switch {
	case err == sql.ErrNoRows:
		existing.ID = uuid.NewString()
		_, err = tx.Exec(
			`INSERT INTO posts (id, url, domain, category, slug, title, author,
			   date_published, date_modified, revision_days, content_links, content,
			   paragraph_count, word_count, pub_year, pub_month, year, month,
			   created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
			existing.ID, row.URL, domain, category, slug, row.Title, row.Author,
			row.DatePublished.UTC(), row.DateModified.UTC(),
			revisionDays(row.DatePublished, row.DateModified),
			row.ContentLinks, row.Content,
			len(content), wordCount(content),
			row.DatePublished.Year(), int(row.DatePublished.Month()),
			row.DateModified.Year(), int(row.DateModified.Month()),
			now, now,
		)
		if err != nil {
			return 0, err
		}
	case err != nil:
		return 0, err
	case existing.DateModified.Equal(row.DateModified.UTC()):
		return 0, nil
	default:
		_, err = tx.Exec(
			`UPDATE posts SET title = $1, author = $2, date_published = $3,
			   date_modified = $4, revision_days = $5, content_links = $6, content = $7,
			   paragraph_count = $8, word_count = $9, pub_year = $10, pub_month = $11,
			   year = $12, month = $13, updated_at = $14
			 WHERE id = $15`,
			row.Title, row.Author, row.DatePublished.UTC(), row.DateModified.UTC(),
			revisionDays(row.DatePublished, row.DateModified),
			row.ContentLinks, row.Content,
			len(content), wordCount(content),
			row.DatePublished.Year(), int(row.DatePublished.Month()),
			row.DateModified.Year(), int(row.DateModified.Month()),
			now, existing.ID,
		)
		if err != nil {
			return 0, err
		}
		_, err = tx.Exec(`DELETE FROM post_tags WHERE post_id = $1`, existing.ID)
		if err != nil {
			return 0, err
		}
	}

	for _, tag := range uniqueTags(tags) {
		_, err = tx.Exec(
			`INSERT INTO post_tags (post_id, tag) VALUES ($1, $2)`,
			existing.ID, tag)
		if err != nil {
			return 0, err
		}
	}
	return 1, nil
}

// splitArticleURL derives (scheme://host, first path segment, last path
// segment) from an article URL like
// https://pybit.es/articles/some-post-title/.
func splitArticleURL(raw string) (domain, category, slug string) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", "", ""
	}
	domain = u.Scheme + "://" + u.Host

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) > 0 && segments[0] != "" {
		category = segments[0]
		slug = segments[len(segments)-1]
	}
	return domain, category, slug
}

func revisionDays(published, modified time.Time) int {
	if published.IsZero() || modified.IsZero() || modified.Before(published) {
		return 0
	}
	return int(modified.Sub(published).Hours() / 24)
}

func wordCount(paragraphs []string) int {
	total := 0
	for _, p := range paragraphs {
		total += len(strings.Fields(p))
	}
	return total
}

func uniqueTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
