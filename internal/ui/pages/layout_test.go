package pages

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/pybites/insights/internal/config"
	"github.com/pybites/insights/internal/ctxkeys"
)

func renderToString(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var out strings.Builder
	err := c.Render(ctx, &out)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return out.String()
}

func TestLayoutMarksActiveTab(t *testing.T) {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>hello</p>")
		return err
	})

	ctx := ctxkeys.WithURLPath(context.Background(), "/trends")
	html := renderToString(t, ctx, Layout("Trends", body))

	if !strings.Contains(html, `<a href="/trends" class="active">`) {
		t.Error("trends tab should carry the active class")
	}
	if strings.Contains(html, `<a href="/data" class="active">`) {
		t.Error("data tab must not be active")
	}
	if !strings.Contains(html, "<p>hello</p>") {
		t.Error("body was not rendered")
	}
}

func TestLayoutUsesConfiguredAppName(t *testing.T) {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return nil
	})

	ctx := ctxkeys.WithConfig(context.Background(), &config.Config{AppName: "PyBites Insights"})
	html := renderToString(t, ctx, Layout("Overview", body))

	if !strings.Contains(html, "PyBites Insights") {
		t.Error("configured app name should appear in the shell")
	}
	if !strings.Contains(html, "<title>Overview | PyBites Insights</title>") {
		t.Errorf("unexpected title in %q", html[:200])
	}
}

func TestLayoutEscapesTitle(t *testing.T) {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return nil
	})

	html := renderToString(t, context.Background(), Layout("<script>", body))
	if strings.Contains(html, "<title><script>") {
		t.Error("title must be escaped")
	}
}

func TestDataPageMarksSelection(t *testing.T) {
	html := renderToString(t, context.Background(), Data(DataProps{
		Authors:    []string{"ann", "bob"},
		Tags:       []string{"python"},
		SelAuthors: []string{"bob"},
		Mode:       "and",
		Limit:      20,
	}))

	if !strings.Contains(html, `<option value="bob" selected>`) {
		t.Error("selected author should be marked")
	}
	if !strings.Contains(html, `<option value="All">`) {
		t.Error("the All sentinel option should be present")
	}
	if !strings.Contains(html, "No posts match the current filters.") {
		t.Error("empty result notice missing")
	}
}
