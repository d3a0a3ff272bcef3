package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pybites/insights/internal/markdown"
)

// InfoPage is a markdown-backed static page such as the dashboard usage
// guide.
type InfoPage struct {
	Title       string
	Slug        string
	Content     string
	LastUpdated string
}

type InfoService struct {
	contentDir string
	parser     *markdown.Parser
}

func NewInfoService(contentDir string) *InfoService {
	return &InfoService{
		contentDir: contentDir,
		parser:     markdown.NewParser(),
	}
}

// Page loads a page by slug. Pages are re-read on every call so content
// edits show up without a restart.
func (s *InfoService) Page(slug string) (*InfoPage, error) {
	path := filepath.Join(s.contentDir, slug+".md")
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("page not found: %s", slug)
	}

	html, meta, err := s.parser.ParseWithFrontmatter(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse markdown: %w", err)
	}

	title, _ := meta["title"].(string)
	if title == "" {
		// Generate title from slug
		title = cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
	}

	var lastUpdated string
	dateValue, ok := meta["lastUpdated"]
	if ok {
		lastUpdated = parseDate(dateValue)
	}
	if lastUpdated == "" {
		info, err := os.Stat(path)
		if err == nil {
			lastUpdated = info.ModTime().Format("January 2, 2006")
		}
	}

	return &InfoPage{
		Title:       title,
		Slug:        slug,
		Content:     string(html),
		LastUpdated: lastUpdated,
	}, nil
}

// parseDate tries common frontmatter date formats and returns a display
// date.
func parseDate(value any) string {
	var dateStr string

	switch v := value.(type) {
	case string:
		dateStr = v
	case time.Time:
		return v.Format("January 2, 2006")
	default:
		return ""
	}

	formats := []string{
		"2006-01-02",
		"2006/01/02",
		"Jan 2, 2006",
		"January 2, 2006",
		time.RFC3339,
	}

	for _, format := range formats {
		t, err := time.Parse(format, dateStr)
		if err == nil {
			return t.Format("January 2, 2006")
		}
	}

	return dateStr
}
