package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pybites/insights/internal/model"
)

// ErrNoMetadata means the page has no usable ld+json schema block.
var ErrNoMetadata = errors.New("article metadata block not found")

// ldSchema is the rank-math ld+json document embedded in every article.
type ldSchema struct {
	Graph []ldNode `json:"@graph"`
}

type ldNode struct {
	Type          json.RawMessage `json:"@type"`
	URL           string          `json:"url"`
	Name          json.RawMessage `json:"name"`
	DatePublished string          `json:"datePublished"`
	DateModified  string          `json:"dateModified"`
}

// Article fetches and parses a single article page.
func (s *Scraper) Article(ctx context.Context, url string) (*model.RawPost, error) {
	doc, err := s.document(ctx, url)
	if err != nil {
		return nil, err
	}

	post, err := ParseArticle(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse article %s: %w", url, err)
	}
	if post.URL == "" {
		post.URL = url
	}
	return post, nil
}

// ParseArticle extracts metadata and content from an article document.
// Metadata comes from the rank-math ld+json block, tags from the category
// header, content links and paragraphs from the entry body.
func ParseArticle(doc *goquery.Document) (*model.RawPost, error) {
	post := &model.RawPost{
		Tags:         []string{},
		ContentLinks: []model.Link{},
		Content:      []string{},
		FetchedAt:    time.Now().UTC(),
	}

	raw := doc.Find(`script.rank-math-schema[type="application/ld+json"]`).First().Text()
	if raw == "" {
		return nil, ErrNoMetadata
	}

	var schema ldSchema
	err := json.Unmarshal([]byte(raw), &schema)
	if err != nil {
		return nil, fmt.Errorf("invalid ld+json block: %w", err)
	}

	for _, node := range schema.Graph {
		switch {
		case nodeHasType(node, "WebPage"):
			post.URL = node.URL
			post.Title = nodeName(node)
			post.DatePublished = parseISODate(node.DatePublished)
			post.DateModified = parseISODate(node.DateModified)
		case nodeHasType(node, "Person"):
			post.Author = nodeName(node)
		}
	}

	tagText := strings.TrimSpace(doc.Find("div.entry-category-header").First().Text())
	if tagText != "" {
		for _, tag := range strings.Split(tagText, ",") {
			tag = strings.TrimSpace(tag)
			if tag != "" {
				post.Tags = append(post.Tags, tag)
			}
		}
	}

	content := doc.Find("div.entry-content").First()
	content.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		post.ContentLinks = append(post.ContentLinks, model.Link{
			Text: strings.TrimSpace(a.Text()),
			Href: href,
		})
	})
	content.Children().Each(func(_ int, el *goquery.Selection) {
		text := strings.TrimSpace(el.Text())
		if text != "" {
			post.Content = append(post.Content, text)
		}
	})

	// Partition key follows the last modification, like the raw archive.
	if !post.DateModified.IsZero() {
		post.Year = post.DateModified.Year()
		post.Month = int(post.DateModified.Month())
	}

	return post, nil
}

// nodeHasType matches @type values that are either a string or an array.
func nodeHasType(node ldNode, want string) bool {
	var single string
	if json.Unmarshal(node.Type, &single) == nil {
		return single == want
	}
	var multi []string
	if json.Unmarshal(node.Type, &multi) == nil {
		for _, t := range multi {
			if t == want {
				return true
			}
		}
	}
	return false
}

// nodeName handles name values that are either a plain string or an object
// with a "text" field, both of which appear in the wild.
func nodeName(node ldNode) string {
	var s string
	if json.Unmarshal(node.Name, &s) == nil {
		return s
	}
	var obj struct {
		Text string `json:"text"`
	}
	if json.Unmarshal(node.Name, &obj) == nil {
		return obj.Text
	}
	return ""
}

func parseISODate(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, format := range lastModFormats {
		t, err := time.Parse(format, value)
		if err == nil {
			return t
		}
	}
	return time.Time{}
}
