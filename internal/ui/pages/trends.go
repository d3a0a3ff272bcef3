package pages

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/pybites/insights/internal/model"
)

// Trends renders the posts-per-month chart with a date range form. The
// from/to values are the raw query strings so the form round-trips.
func Trends(from, to string, counts []model.MonthCount) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<h2>Trends</h2>\n")

		b.WriteString("<form class=\"filters\" method=\"get\" action=\"/trends\">\n")
		b.WriteString("<div><label for=\"from\">From</label><input type=\"date\" id=\"from\" name=\"from\" value=\"")
		b.WriteString(templ.EscapeString(from))
		b.WriteString("\"></div>\n")
		b.WriteString("<div><label for=\"to\">To</label><input type=\"date\" id=\"to\" name=\"to\" value=\"")
		b.WriteString(templ.EscapeString(to))
		b.WriteString("\"></div>\n")
		b.WriteString("<button type=\"submit\">Apply</button>\n</form>\n")

		if len(counts) == 0 {
			b.WriteString("<p class=\"muted\">No posts in the selected range.</p>\n")
		} else {
			writeMonthChart(&b, "trend", "Posts per month", counts)
			b.WriteString("<table>\n<thead><tr><th>Month</th><th>Posts</th></tr></thead>\n<tbody>\n")
			for _, c := range counts {
				b.WriteString("<tr><td>")
				b.WriteString(templ.EscapeString(c.Label()))
				b.WriteString("</td><td>")
				b.WriteString(templ.EscapeString(itoa(c.Posts)))
				b.WriteString("</td></tr>\n")
			}
			b.WriteString("</tbody>\n</table>\n")
		}

		_, err := io.WriteString(w, b.String())
		return err
	})
	return Layout("Trends", body)
}
