package scraper

import (
	"context"
	"encoding/xml"
	"fmt"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/pybites/insights/internal/model"
)

var lastModFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Sitemap fetches and parses a sitemap index into entries, most recent
// last-modified timestamps preserved as given.
func (s *Scraper) Sitemap(ctx context.Context, url string) ([]model.SitemapEntry, error) {
	resp, err := s.get(ctx, url, "application/xml,text/xml;q=0.9,*/*;q=0.8")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var index model.SitemapIndex
	decoder := xml.NewDecoder(resp.Body)
	decoder.CharsetReader = charset.NewReaderLabel
	err = decoder.Decode(&index)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sitemap %s: %w", url, err)
	}

	entries := make([]model.SitemapEntry, 0, len(index.URLs))
	for _, u := range index.URLs {
		if u.Loc == "" {
			continue
		}
		entries = append(entries, model.SitemapEntry{
			URL:          u.Loc,
			LastModified: parseLastMod(u.LastMod),
		})
	}
	return entries, nil
}

func parseLastMod(value string) time.Time {
	for _, format := range lastModFormats {
		t, err := time.Parse(format, value)
		if err == nil {
			return t
		}
	}
	return time.Time{}
}
