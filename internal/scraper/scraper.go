package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36"

// skipSuffixes are sitemap entries that point at images, not articles.
var skipSuffixes = []string{".png", ".jpeg", ".jpg"}

// Scraper fetches and parses pybit.es article pages.
type Scraper struct {
	client  *http.Client
	baseURL string
}

// New creates a scraper. baseURL is the articles index page, which the
// sitemap lists but which is not itself an article.
func New(baseURL string) *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
	}
}

// ShouldSkip reports whether a sitemap URL is not an article page.
func (s *Scraper) ShouldSkip(url string) bool {
	if url == s.baseURL {
		return true
	}
	for _, suffix := range skipSuffixes {
		if strings.HasSuffix(url, suffix) {
			return true
		}
	}
	return false
}

// get performs a request with the headers the site expects.
func (s *Scraper) get(ctx context.Context, url, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", accept)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s for %s", resp.Status, url)
	}
	return resp, nil
}

// document fetches a page and parses it into a goquery document, decoding
// the declared charset first.
func (s *Scraper) document(ctx context.Context, url string) (*goquery.Document, error) {
	resp, err := s.get(ctx, url, "text/html,application/xhtml+xml")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", url, err)
	}

	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", url, err)
	}
	return doc, nil
}
