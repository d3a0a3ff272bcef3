package model

import "fmt"

// Metrics are the Overview-tab headline numbers.
type Metrics struct {
	TotalPosts    int    `json:"total_posts"`
	LastSixMonths int    `json:"last_six_months"`
	TopAuthor     string `json:"top_author"`
	TopTag        string `json:"top_tag"`
}

type AuthorCount struct {
	Author string `db:"author" json:"author"`
	Posts  int    `db:"n_posts" json:"n_posts"`
}

type TagCount struct {
	Tag   string `db:"tag" json:"tag"`
	Posts int    `db:"n_posts" json:"n_posts"`
}

// MonthCount is one point on the articles-per-month trend line. Months with
// no publications appear with Posts == 0.
type MonthCount struct {
	Year  int `db:"year" json:"year"`
	Month int `db:"month" json:"month"`
	Posts int `db:"n_posts" json:"n_posts"`
}

// Label renders the point as "YYYY-MM" for chart axes.
func (m MonthCount) Label() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}
