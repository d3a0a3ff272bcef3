package pages

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/pybites/insights/internal/model"
)

// SearchLocked renders the password prompt, with an optional error line
// from a failed unlock attempt.
func SearchLocked(errMsg string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<h2>Search</h2>\n")
		b.WriteString("<p class=\"muted\">Search is password protected. Enter the shared password to continue.</p>\n")
		if errMsg != "" {
			b.WriteString("<p class=\"error\">")
			b.WriteString(templ.EscapeString(errMsg))
			b.WriteString("</p>\n")
		}
		b.WriteString("<form class=\"filters\" method=\"post\" action=\"/search/unlock\">\n")
		b.WriteString("<div><label for=\"password\">Password</label><input type=\"password\" id=\"password\" name=\"password\" required></div>\n")
		b.WriteString("<button type=\"submit\">Unlock</button>\n</form>\n")
		_, err := io.WriteString(w, b.String())
		return err
	})
	return Layout("Search", body)
}

// SearchDisabled renders the notice shown when no search password is
// configured.
func SearchDisabled() templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<h2>Search</h2>\n<p class=\"muted\">Search is not enabled on this deployment.</p>\n")
		return err
	})
	return Layout("Search", body)
}

// SearchResults renders the query form and, when a query was submitted,
// the matching posts.
func SearchResults(query string, posts []*model.Post, errMsg string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<h2>Search</h2>\n")
		b.WriteString("<form class=\"filters\" method=\"get\" action=\"/search\">\n")
		b.WriteString("<div><label for=\"q\">Query</label><input type=\"search\" id=\"q\" name=\"q\" value=\"")
		b.WriteString(templ.EscapeString(query))
		b.WriteString("\"></div>\n")
		b.WriteString("<button type=\"submit\">Search</button>\n</form>\n")

		if errMsg != "" {
			b.WriteString("<p class=\"error\">")
			b.WriteString(templ.EscapeString(errMsg))
			b.WriteString("</p>\n")
		} else if query != "" {
			if len(posts) == 0 {
				b.WriteString("<p class=\"muted\">No posts matched your query.</p>\n")
			} else {
				writePostTable(&b, posts)
			}
		}

		_, err := io.WriteString(w, b.String())
		return err
	})
	return Layout("Search", body)
}
