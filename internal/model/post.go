package model

import (
	"time"
)

// Link is a hyperlink extracted from an article body.
// JSON keys match the raw archive layout.
type Link struct {
	Text string `json:"text"`
	Href string `json:"link"`
}

// RawPost is one scraped version of an article, exactly as parsed from the
// page. A page appears once per distinct date_modified.
type RawPost struct {
	URL           string    `json:"url"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	DatePublished time.Time `json:"date_published"`
	DateModified  time.Time `json:"date_modified"`
	Tags          []string  `json:"tags"`
	ContentLinks  []Link    `json:"content_links"`
	Content       []string  `json:"content"`
	Year          int       `json:"year"`
	Month         int       `json:"month"`
	FetchedAt     time.Time `json:"fetched_at"`
}

// Post is the refined record the dashboard reads: the newest version of each
// URL plus fields derived during refinement. Immutable for a session.
type Post struct {
	ID            string    `db:"id" json:"id"`
	URL           string    `db:"url" json:"url"`
	Domain        string    `db:"domain" json:"domain"`
	Category      string    `db:"category" json:"category"`
	Slug          string    `db:"slug" json:"slug"`
	Title         string    `db:"title" json:"title"`
	Author        string    `db:"author" json:"author"`
	DatePublished time.Time `db:"date_published" json:"date_published"`
	DateModified  time.Time `db:"date_modified" json:"date_modified"`

	// RevisionDays is the number of days between publication and the last
	// modification.
	RevisionDays int `db:"revision_days" json:"revision_days"`

	Tags         []string `json:"tags"`
	ContentLinks []Link   `json:"content_links"`
	Content      []string `json:"content"`

	ParagraphCount int `db:"paragraph_count" json:"paragraph_count"`
	WordCount      int `db:"word_count" json:"word_count"`

	// PubYear/PubMonth come from date_published, Year/Month from
	// date_modified (the archive partition key).
	PubYear  int `db:"pub_year" json:"pub_year"`
	PubMonth int `db:"pub_month" json:"pub_month"`
	Year     int `db:"year" json:"year"`
	Month    int `db:"month" json:"month"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// HasTag reports whether the post carries the given tag (case-insensitive
// match is the caller's concern; tags are stored trimmed).
func (p *Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
