package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/pybites/insights/internal/archive"
	"github.com/pybites/insights/internal/model"
	"github.com/pybites/insights/internal/repository"
	"github.com/pybites/insights/internal/scraper"
)

// IngestReport summarizes one ingest pass.
type IngestReport struct {
	SitemapEntries int
	Scraped        int
	NewVersions    int
	Refined        int
}

// IngestService runs the scrape -> raw -> refine chain. Refine commits the
// refreshed posts and the rebuilt aggregates in one transaction.
type IngestService struct {
	scraper    *scraper.Scraper
	posts      repository.PostRepository
	archive    archive.Store
	sitemapURL string
	delay      time.Duration
}

func NewIngestService(
	sc *scraper.Scraper,
	posts repository.PostRepository,
	store archive.Store,
	sitemapURL string,
	delay time.Duration,
) *IngestService {
	return &IngestService{
		scraper:    sc,
		posts:      posts,
		archive:    store,
		sitemapURL: sitemapURL,
		delay:      delay,
	}
}

// Run performs a full ingest pass. Individual article failures are logged
// and skipped so one broken page cannot sink a backfill; sitemap failures
// abort the pass.
func (s *IngestService) Run(ctx context.Context) (*IngestReport, error) {
	entries, err := s.scraper.Sitemap(ctx, s.sitemapURL)
	if err != nil {
		return nil, fmt.Errorf("failed to load sitemap: %w", err)
	}

	report := &IngestReport{SitemapEntries: len(entries)}

	for _, entry := range entries {
		if s.scraper.ShouldSkip(entry.URL) {
			continue
		}

		raw, err := s.scraper.Article(ctx, entry.URL)
		if err != nil {
			slog.Warn("skipping article", "url", entry.URL, "error", err)
			continue
		}
		report.Scraped++

		inserted, err := s.posts.UpsertRaw(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to store raw post %s: %w", raw.URL, err)
		}
		if inserted {
			report.NewVersions++
			s.snapshot(ctx, raw)
		}

		if s.delay > 0 {
			select {
			case <-time.After(s.delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	refined, err := s.posts.Refine()
	if err != nil {
		return nil, fmt.Errorf("failed to refine posts: %w", err)
	}
	report.Refined = refined

	slog.Info("ingest pass complete",
		"sitemap_entries", report.SitemapEntries,
		"scraped", report.Scraped,
		"new_versions", report.NewVersions,
		"refined", report.Refined,
	)
	return report, nil
}

// RunEvery re-runs ingest on a ticker until the context is cancelled.
func (s *IngestService) RunEvery(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_, err := s.Run(ctx)
			if err != nil {
				slog.Error("scheduled ingest failed", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

// snapshot archives the raw article version. Best effort: a failed upload
// is logged, the row is already stored.
func (s *IngestService) snapshot(ctx context.Context, raw *model.RawPost) {
	if s.archive == nil {
		return
	}

	slug := articleSlug(raw.URL)
	data, err := json.Marshal(raw)
	if err != nil {
		slog.Warn("failed to encode raw snapshot", "url", raw.URL, "error", err)
		return
	}

	key := archive.SnapshotKey(raw.Year, raw.Month, slug)
	err = s.archive.Put(ctx, key, bytes.NewReader(data))
	if err != nil {
		slog.Warn("failed to archive raw snapshot", "url", raw.URL, "key", key, "error", err)
	}
}

// articleSlug is the last path segment of an article URL, ignoring the
// trailing slash.
func articleSlug(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	return segments[len(segments)-1]
}
