package handler

import (
	"net/http"
	"strconv"

	"github.com/pybites/insights/internal/model"
	"github.com/pybites/insights/internal/service"
	"github.com/pybites/insights/internal/ui"
	"github.com/pybites/insights/internal/ui/pages"
)

type DataHandler struct {
	postService  *service.PostService
	statsService *service.StatsService
}

func NewDataHandler(postService *service.PostService, statsService *service.StatsService) *DataHandler {
	return &DataHandler{
		postService:  postService,
		statsService: statsService,
	}
}

// DataPage shows the filterable post table.
func (h *DataHandler) DataPage(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		http.Error(w, "Invalid filter parameters", http.StatusBadRequest)
		return
	}

	posts, err := h.postService.Filtered(filter)
	if err != nil {
		http.Error(w, "Failed to load posts", http.StatusInternalServerError)
		return
	}

	authors, tags, err := h.statsService.FilterOptions()
	if err != nil {
		http.Error(w, "Failed to load filter options", http.StatusInternalServerError)
		return
	}

	total, err := h.postService.Total()
	if err != nil {
		http.Error(w, "Failed to load post count", http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	ui.Render(w, r, pages.Data(pages.DataProps{
		Posts:       posts,
		Authors:     authors,
		Tags:        tags,
		SelAuthors:  query["author"],
		SelTags:     query["tag"],
		Mode:        filter.Mode,
		From:        query.Get("from"),
		To:          query.Get("to"),
		Limit:       filter.Limit,
		Total:       total,
		ExportQuery: r.URL.RawQuery,
	}))
}

// ExportCSV downloads the current filter result as CSV.
func (h *DataHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		http.Error(w, "Invalid filter parameters", http.StatusBadRequest)
		return
	}

	posts, err := h.postService.Filtered(filter)
	if err != nil {
		http.Error(w, "Failed to load posts", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="posts.csv"`)

	err = h.postService.WriteCSV(w, posts)
	if err != nil {
		http.Error(w, "Failed to write CSV", http.StatusInternalServerError)
	}
}

// parseFilter builds a normalized post filter from query parameters.
func parseFilter(r *http.Request) (model.PostFilter, error) {
	query := r.URL.Query()

	from, to, err := parseDateRange(query.Get("from"), query.Get("to"))
	if err != nil {
		return model.PostFilter{}, err
	}

	limit := 0
	if raw := query.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return model.PostFilter{}, err
		}
	}

	filter := model.PostFilter{
		Authors: query["author"],
		Tags:    query["tag"],
		Mode:    query.Get("mode"),
		From:    from,
		To:      to,
		Limit:   limit,
	}
	return filter.Normalize(), nil
}
