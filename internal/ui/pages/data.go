package pages

import (
	"context"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/pybites/insights/internal/model"
)

// DataProps carries the Data-tab state: the option lists, the current
// selection as submitted, and the matching posts.
type DataProps struct {
	Posts       []*model.Post
	Authors     []string
	Tags        []string
	SelAuthors  []string
	SelTags     []string
	Mode        string
	From        string
	To          string
	Limit       int
	Total       int
	ExportQuery string
}

// Data renders the filterable post table with a CSV download link.
func Data(props DataProps) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<h2>Data</h2>\n")

		b.WriteString("<form class=\"filters\" method=\"get\" action=\"/data\">\n")
		writeMultiSelect(&b, "author", "Authors", props.Authors, props.SelAuthors)
		writeMultiSelect(&b, "tag", "Tags", props.Tags, props.SelTags)

		b.WriteString("<div><label>Combine</label>")
		writeModeRadio(&b, model.FilterModeAnd, "And", props.Mode != model.FilterModeOr)
		writeModeRadio(&b, model.FilterModeOr, "Or", props.Mode == model.FilterModeOr)
		b.WriteString("</div>\n")

		b.WriteString("<div><label for=\"from\">From</label><input type=\"date\" id=\"from\" name=\"from\" value=\"")
		b.WriteString(templ.EscapeString(props.From))
		b.WriteString("\"></div>\n")
		b.WriteString("<div><label for=\"to\">To</label><input type=\"date\" id=\"to\" name=\"to\" value=\"")
		b.WriteString(templ.EscapeString(props.To))
		b.WriteString("\"></div>\n")

		b.WriteString("<div><label for=\"limit\">Rows</label><input type=\"number\" id=\"limit\" name=\"limit\" min=\"1\"")
		if props.Total > 0 {
			b.WriteString(" max=\"")
			b.WriteString(strconv.Itoa(props.Total))
			b.WriteString("\"")
		}
		b.WriteString(" value=\"")
		b.WriteString(strconv.Itoa(props.Limit))
		b.WriteString("\"></div>\n")

		b.WriteString("<button type=\"submit\">Filter</button>\n")
		b.WriteString("<a class=\"button\" href=\"/data/export")
		if props.ExportQuery != "" {
			b.WriteString("?")
			b.WriteString(templ.EscapeString(props.ExportQuery))
		}
		b.WriteString("\">Download CSV</a>\n</form>\n")

		if len(props.Posts) == 0 {
			b.WriteString("<p class=\"muted\">No posts match the current filters.</p>\n")
		} else {
			writePostTable(&b, props.Posts)
		}

		_, err := io.WriteString(w, b.String())
		return err
	})
	return Layout("Data", body)
}

func writeMultiSelect(b *strings.Builder, name, label string, options, selected []string) {
	b.WriteString("<div><label for=\"")
	b.WriteString(name)
	b.WriteString("\">")
	b.WriteString(templ.EscapeString(label))
	b.WriteString("</label><select multiple id=\"")
	b.WriteString(name)
	b.WriteString("\" name=\"")
	b.WriteString(name)
	b.WriteString("\">\n")

	writeOption(b, model.FilterAll, len(selected) == 0 || slices.Contains(selected, model.FilterAll))
	for _, opt := range options {
		writeOption(b, opt, slices.Contains(selected, opt))
	}
	b.WriteString("</select></div>\n")
}

func writeOption(b *strings.Builder, value string, selected bool) {
	b.WriteString("<option value=\"")
	b.WriteString(templ.EscapeString(value))
	b.WriteString("\"")
	if selected {
		b.WriteString(" selected")
	}
	b.WriteString(">")
	b.WriteString(templ.EscapeString(value))
	b.WriteString("</option>\n")
}

func writeModeRadio(b *strings.Builder, value, label string, checked bool) {
	b.WriteString("<label><input type=\"radio\" name=\"mode\" value=\"")
	b.WriteString(value)
	b.WriteString("\"")
	if checked {
		b.WriteString(" checked")
	}
	b.WriteString("> ")
	b.WriteString(label)
	b.WriteString("</label> ")
}

func writePostTable(b *strings.Builder, posts []*model.Post) {
	b.WriteString("<table>\n<thead><tr><th>Title</th><th>Author</th><th>Tags</th><th>Published</th></tr></thead>\n<tbody>\n")
	for _, post := range posts {
		b.WriteString("<tr><td><a href=\"")
		b.WriteString(templ.EscapeString(post.URL))
		b.WriteString("\">")
		b.WriteString(templ.EscapeString(post.Title))
		b.WriteString("</a></td><td>")
		b.WriteString(templ.EscapeString(post.Author))
		b.WriteString("</td><td>")
		b.WriteString(templ.EscapeString(strings.Join(post.Tags, ", ")))
		b.WriteString("</td><td>")
		b.WriteString(post.DatePublished.Format("2006-01-02"))
		b.WriteString("</td></tr>\n")
	}
	b.WriteString("</tbody>\n</table>\n")
}
