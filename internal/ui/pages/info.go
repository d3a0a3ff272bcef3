package pages

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/pybites/insights/internal/service"
)

// Info renders a markdown-backed page such as the usage guide.
func Info(page *service.InfoPage) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<article class=\"page\">\n<h2>")
		b.WriteString(templ.EscapeString(page.Title))
		b.WriteString("</h2>\n")
		b.WriteString(page.Content)
		if page.LastUpdated != "" {
			b.WriteString("\n<p class=\"muted\">Last updated ")
			b.WriteString(templ.EscapeString(page.LastUpdated))
			b.WriteString("</p>")
		}
		b.WriteString("\n</article>\n")
		_, err := io.WriteString(w, b.String())
		return err
	})
	return Layout(page.Title, body)
}

// NotFound is the shared 404 page.
func NotFound() templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<h2>Page not found</h2>\n<p class=\"muted\">The page you are looking for does not exist. <a href=\"/\">Back to the dashboard</a>.</p>\n")
		return err
	})
	return Layout("Not Found", body)
}
