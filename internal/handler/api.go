package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pybites/insights/internal/model"
	"github.com/pybites/insights/internal/service"
)

// APIHandler exposes the dashboard data as JSON for scripted access.
type APIHandler struct {
	postService   *service.PostService
	statsService  *service.StatsService
	searchService *service.SearchService
}

func NewAPIHandler(
	postService *service.PostService,
	statsService *service.StatsService,
	searchService *service.SearchService,
) *APIHandler {
	return &APIHandler{
		postService:   postService,
		statsService:  statsService,
		searchService: searchService,
	}
}

func (h *APIHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.statsService.Overview()
	if err != nil {
		slog.Error("failed to load metrics", "error", err)
		http.Error(w, "Failed to load metrics", http.StatusInternalServerError)
		return
	}
	writeJSON(w, metrics)
}

func (h *APIHandler) Trends(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		http.Error(w, "Invalid date range", http.StatusBadRequest)
		return
	}

	counts, err := h.statsService.Trend(from, to)
	if err != nil {
		slog.Error("failed to load trend data", "error", err)
		http.Error(w, "Failed to load trend data", http.StatusInternalServerError)
		return
	}
	if counts == nil {
		counts = []model.MonthCount{}
	}
	writeJSON(w, counts)
}

func (h *APIHandler) TopAuthors(w http.ResponseWriter, r *http.Request) {
	top, err := h.statsService.TopAuthors()
	if err != nil {
		slog.Error("failed to load author ranking", "error", err)
		http.Error(w, "Failed to load author ranking", http.StatusInternalServerError)
		return
	}
	if top == nil {
		top = []model.AuthorCount{}
	}
	writeJSON(w, top)
}

func (h *APIHandler) Posts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		http.Error(w, "Invalid filter parameters", http.StatusBadRequest)
		return
	}

	posts, err := h.postService.Filtered(filter)
	if err != nil {
		slog.Error("failed to load posts", "error", err)
		http.Error(w, "Failed to load posts", http.StatusInternalServerError)
		return
	}
	if posts == nil {
		posts = []*model.Post{}
	}
	writeJSON(w, posts)
}

func (h *APIHandler) Filters(w http.ResponseWriter, r *http.Request) {
	authors, tags, err := h.statsService.FilterOptions()
	if err != nil {
		slog.Error("failed to load filter options", "error", err)
		http.Error(w, "Failed to load filter options", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string][]string{
		"authors": authors,
		"tags":    tags,
	})
}

// Search serves search results as JSON. The route is guarded by the
// search token middleware.
func (h *APIHandler) Search(w http.ResponseWriter, r *http.Request) {
	posts, err := h.searchService.Search(r.URL.Query().Get("q"))
	if err != nil {
		if errors.Is(err, service.ErrQueryTooShort) {
			http.Error(w, "Query must be at least two characters", http.StatusBadRequest)
			return
		}
		slog.Error("search failed", "error", err)
		http.Error(w, "Search failed", http.StatusInternalServerError)
		return
	}
	if posts == nil {
		posts = []*model.Post{}
	}
	writeJSON(w, posts)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
