package pages

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/pybites/insights/internal/ctxkeys"
)

type navItem struct {
	Label string
	Path  string
}

var navItems = []navItem{
	{Label: "Info", Path: "/"},
	{Label: "Overview", Path: "/overview"},
	{Label: "Trends", Path: "/trends"},
	{Label: "Authors", Path: "/authors"},
	{Label: "Data", Path: "/data"},
	{Label: "Search", Path: "/search"},
}

// Layout wraps a page body with the document shell and the tab bar. The
// active tab comes from the request path stored on the context.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		appName := "Blog Insights"
		cfg := ctxkeys.Config(ctx)
		if cfg != nil {
			appName = cfg.AppName
		}
		current := ctxkeys.URLPath(ctx)

		var b strings.Builder
		b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
		b.WriteString("<meta charset=\"utf-8\">\n")
		b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
		b.WriteString("<title>")
		b.WriteString(templ.EscapeString(title))
		b.WriteString(" | ")
		b.WriteString(templ.EscapeString(appName))
		b.WriteString("</title>\n")
		b.WriteString("<link rel=\"alternate\" type=\"application/rss+xml\" href=\"/feed.rss\">\n")
		b.WriteString("<script src=\"https://cdn.jsdelivr.net/npm/chart.js@4\"></script>\n")
		b.WriteString("<style>")
		b.WriteString(baseCSS)
		b.WriteString("</style>\n</head>\n<body>\n")

		b.WriteString("<header>\n<h1><a href=\"/\">")
		b.WriteString(templ.EscapeString(appName))
		b.WriteString("</a></h1>\n<nav>\n")
		for _, item := range navItems {
			class := ""
			if isActive(current, item.Path) {
				class = " class=\"active\""
			}
			b.WriteString("<a href=\"")
			b.WriteString(item.Path)
			b.WriteString("\"")
			b.WriteString(class)
			b.WriteString(">")
			b.WriteString(item.Label)
			b.WriteString("</a>\n")
		}
		b.WriteString("</nav>\n</header>\n<main>\n")

		_, err := io.WriteString(w, b.String())
		if err != nil {
			return err
		}

		err = body.Render(ctx, w)
		if err != nil {
			return err
		}

		_, err = io.WriteString(w, "</main>\n<footer><p>Data refreshed from the blog sitemap. <a href=\"/feed.rss\">RSS</a></p></footer>\n</body>\n</html>\n")
		return err
	})
}

func isActive(current, path string) bool {
	if path == "/" {
		return current == "/"
	}
	return current == path || strings.HasPrefix(current, path+"/")
}

const baseCSS = `
body{font-family:system-ui,sans-serif;margin:0;color:#1f2933;background:#f8fafc}
header{display:flex;align-items:center;gap:2rem;padding:0.75rem 1.5rem;background:#0f172a;color:#fff}
header h1{font-size:1.1rem;margin:0}
header h1 a{color:#fff;text-decoration:none}
nav{display:flex;gap:1rem}
nav a{color:#cbd5e1;text-decoration:none;padding:0.25rem 0}
nav a.active{color:#fff;border-bottom:2px solid #38bdf8}
main{max-width:64rem;margin:0 auto;padding:1.5rem}
footer{max-width:64rem;margin:0 auto;padding:1rem 1.5rem;color:#64748b;font-size:0.85rem}
table{border-collapse:collapse;width:100%;background:#fff}
th,td{text-align:left;padding:0.5rem 0.75rem;border-bottom:1px solid #e2e8f0}
th{background:#f1f5f9}
.cards{display:grid;grid-template-columns:repeat(auto-fit,minmax(12rem,1fr));gap:1rem;margin-bottom:1.5rem}
.card{background:#fff;border:1px solid #e2e8f0;border-radius:0.5rem;padding:1rem}
.card .value{font-size:1.6rem;font-weight:600}
.card .label{color:#64748b;font-size:0.85rem}
form.filters{background:#fff;border:1px solid #e2e8f0;border-radius:0.5rem;padding:1rem;margin-bottom:1.5rem;display:flex;flex-wrap:wrap;gap:1rem;align-items:flex-end}
form.filters label{display:block;font-size:0.85rem;color:#475569;margin-bottom:0.25rem}
form.filters select[multiple]{min-width:12rem;height:7rem}
button,.button{background:#0ea5e9;color:#fff;border:none;border-radius:0.375rem;padding:0.5rem 1rem;cursor:pointer;text-decoration:none;display:inline-block}
.error{color:#b91c1c}
.muted{color:#64748b}
.chart{background:#fff;border:1px solid #e2e8f0;border-radius:0.5rem;padding:1rem;margin-bottom:1.5rem}
article.page{background:#fff;border:1px solid #e2e8f0;border-radius:0.5rem;padding:1.5rem}
`
