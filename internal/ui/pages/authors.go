package pages

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/pybites/insights/internal/model"
)

// Authors renders the top-authors ranking as a bar chart plus a table.
func Authors(top []model.AuthorCount) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<h2>Top authors</h2>\n")

		if len(top) == 0 {
			b.WriteString("<p class=\"muted\">No author data yet. Run an ingest first.</p>\n")
		} else {
			writeAuthorChart(&b, "top-authors", "Posts", top)
			b.WriteString("<table>\n<thead><tr><th>#</th><th>Author</th><th>Posts</th></tr></thead>\n<tbody>\n")
			for i, a := range top {
				b.WriteString("<tr><td>")
				b.WriteString(strconv.Itoa(i + 1))
				b.WriteString("</td><td>")
				b.WriteString(templ.EscapeString(a.Author))
				b.WriteString("</td><td>")
				b.WriteString(strconv.Itoa(a.Posts))
				b.WriteString("</td></tr>\n")
			}
			b.WriteString("</tbody>\n</table>\n")
		}

		_, err := io.WriteString(w, b.String())
		return err
	})
	return Layout("Authors", body)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
