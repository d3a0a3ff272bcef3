package repository

import (
	"database/sql"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pybites/insights/internal/model"
)

// UnknownAuthor is shown when an aggregate has no data yet.
const UnknownAuthor = "N/A"

type StatsRepository interface {
	// RebuildAggregates recomputes the aggregate tables from the refined
	// posts. Refine already does this in its own transaction; this method
	// exists for rebuilding the stats on their own.
	RebuildAggregates() error

	Overview(sixMonthStart time.Time) (*model.Metrics, error)
	MonthlyCounts(from, to time.Time) ([]model.MonthCount, error)
	AllMonthlyCounts() ([]model.MonthCount, error)
	TopAuthors(limit int) ([]model.AuthorCount, error)
	Authors() ([]string, error)
	Tags() ([]string, error)
}

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) RebuildAggregates() error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = rebuildAggregates(tx)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// aggregateStatements recompute the stats tables from scratch. Delete plus
// reinsert keeps the set exact when posts disappear from the source.
var aggregateStatements = []string{
	`DELETE FROM author_stats`,
	`INSERT INTO author_stats (author, n_posts)
	 SELECT author, COUNT(*) FROM posts GROUP BY author`,
	`DELETE FROM tag_stats`,
	`INSERT INTO tag_stats (tag, n_posts)
	 SELECT tag, COUNT(*) FROM post_tags GROUP BY tag`,
	`DELETE FROM monthly_stats`,
	`INSERT INTO monthly_stats (year, month, n_posts)
	 SELECT pub_year, pub_month, COUNT(*) FROM posts GROUP BY pub_year, pub_month`,
}

// rebuildAggregates runs the aggregate rebuild inside the caller's
// transaction, so Refine can commit posts and stats together.
func rebuildAggregates(tx sqlx.Execer) error {
	for _, stmt := range aggregateStatements {
		_, err := tx.Exec(stmt)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *statsRepository) Overview(sixMonthStart time.Time) (*model.Metrics, error) {
	metrics := &model.Metrics{
		TopAuthor: UnknownAuthor,
		TopTag:    UnknownAuthor,
	}

	err := r.db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&metrics.TotalPosts)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(
		`SELECT COUNT(*) FROM posts WHERE date_published >= $1`,
		sixMonthStart.UTC(),
	).Scan(&metrics.LastSixMonths)
	if err != nil {
		return nil, err
	}

	var top model.AuthorCount
	err = r.db.Get(&top,
		`SELECT author, n_posts FROM author_stats ORDER BY n_posts DESC, author LIMIT 1`)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if top.Author != "" {
		metrics.TopAuthor = top.Author
	}

	var topTag model.TagCount
	err = r.db.Get(&topTag,
		`SELECT tag, n_posts FROM tag_stats ORDER BY n_posts DESC, tag LIMIT 1`)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if topTag.Tag != "" {
		metrics.TopTag = topTag.Tag
	}

	return metrics, nil
}

// MonthlyCounts groups posts per publication month within the given range.
// A zero bound is open-ended, mirroring the post filter.
func (r *statsRepository) MonthlyCounts(from, to time.Time) ([]model.MonthCount, error) {
	var conds []string
	var args []any

	if !from.IsZero() {
		conds = append(conds, "date_published >= ?")
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		conds = append(conds, "date_published <= ?")
		args = append(args, to.UTC())
	}

	query := `SELECT pub_year AS year, pub_month AS month, COUNT(*) AS n_posts FROM posts`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " GROUP BY pub_year, pub_month ORDER BY pub_year, pub_month"
	query = r.db.Rebind(query)

	var counts []model.MonthCount
	err := r.db.Select(&counts, query, args...)
	return counts, err
}

func (r *statsRepository) AllMonthlyCounts() ([]model.MonthCount, error) {
	var counts []model.MonthCount
	err := r.db.Select(&counts,
		`SELECT year, month, n_posts FROM monthly_stats ORDER BY year, month`)
	return counts, err
}

func (r *statsRepository) TopAuthors(limit int) ([]model.AuthorCount, error) {
	var authors []model.AuthorCount
	err := r.db.Select(&authors,
		`SELECT author, n_posts FROM author_stats
		 ORDER BY n_posts DESC, author LIMIT $1`, limit)
	return authors, err
}

func (r *statsRepository) Authors() ([]string, error) {
	var authors []string
	err := r.db.Select(&authors, `SELECT author FROM author_stats ORDER BY author`)
	return authors, err
}

func (r *statsRepository) Tags() ([]string, error) {
	var tags []string
	err := r.db.Select(&tags, `SELECT tag FROM tag_stats ORDER BY tag`)
	return tags, err
}
