package pages

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/pybites/insights/internal/model"
)

// Overview renders the headline metric cards and the recent activity chart.
func Overview(metrics *model.Metrics, recent []model.MonthCount) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<h2>Overview</h2>\n<div class=\"cards\">\n")
		writeCard(&b, "Total posts", strconv.Itoa(metrics.TotalPosts))
		writeCard(&b, "Posts, last 6 months", strconv.Itoa(metrics.LastSixMonths))
		writeCard(&b, "Most prolific author", metrics.TopAuthor)
		writeCard(&b, "Most used tag", metrics.TopTag)
		b.WriteString("</div>\n")

		if len(recent) > 0 {
			b.WriteString("<h3>Recent activity</h3>\n")
			writeMonthChart(&b, "recent-activity", "Posts per month", recent)
		}

		_, err := io.WriteString(w, b.String())
		return err
	})
	return Layout("Overview", body)
}

func writeCard(b *strings.Builder, label, value string) {
	b.WriteString("<div class=\"card\"><div class=\"value\">")
	b.WriteString(templ.EscapeString(value))
	b.WriteString("</div><div class=\"label\">")
	b.WriteString(templ.EscapeString(label))
	b.WriteString("</div></div>\n")
}
