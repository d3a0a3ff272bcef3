package routes

import (
	"net/http"

	"github.com/pybites/insights/internal/app"
	"github.com/pybites/insights/internal/handler"
	"github.com/pybites/insights/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	info := handler.NewInfoHandler(app.InfoService)
	dashboard := handler.NewDashboardHandler(app.StatsService)
	data := handler.NewDataHandler(app.PostService, app.StatsService)
	search := handler.NewSearchHandler(app.SearchService, app.Cfg.IsProduction())
	api := handler.NewAPIHandler(app.PostService, app.StatsService, app.SearchService)
	feed := handler.NewFeedHandler(app.FeedService)

	mux := http.NewServeMux()

	// ============================================================================
	// PAGES
	// ============================================================================

	mux.HandleFunc("GET /{$}", info.InfoPage)
	mux.HandleFunc("GET /overview", dashboard.OverviewPage)
	mux.HandleFunc("GET /trends", dashboard.TrendsPage)
	mux.HandleFunc("GET /authors", dashboard.AuthorsPage)
	mux.HandleFunc("GET /data", data.DataPage)
	mux.HandleFunc("GET /data/export", data.ExportCSV)

	// Search - unlock is rate limited
	rateLimiter := middleware.RateLimitUnlock()
	mux.HandleFunc("GET /search", search.SearchPage)
	mux.HandleFunc("POST /search/unlock", rateLimiter(search.Unlock))

	// Feed
	mux.HandleFunc("GET /feed.rss", feed.RSS)

	// ============================================================================
	// JSON API
	// ============================================================================

	mux.HandleFunc("GET /api/metrics", api.Metrics)
	mux.HandleFunc("GET /api/trends", api.Trends)
	mux.HandleFunc("GET /api/authors/top", api.TopAuthors)
	mux.HandleFunc("GET /api/posts", api.Posts)
	mux.HandleFunc("GET /api/filters", api.Filters)
	mux.HandleFunc("GET /api/search", middleware.RequireSearch(api.Search))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	// 404
	mux.HandleFunc("/{path...}", info.NotFoundPage)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg), // Config must be first (pages read it for the app name)
		middleware.RequestLogging,
		middleware.SearchGate(app.SearchService),
		middleware.WithURLPath,
	)

	return handler
}
