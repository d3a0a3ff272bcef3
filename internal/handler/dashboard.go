package handler

import (
	"net/http"
	"time"

	"github.com/pybites/insights/internal/service"
	"github.com/pybites/insights/internal/ui"
	"github.com/pybites/insights/internal/ui/pages"
)

type DashboardHandler struct {
	statsService *service.StatsService
}

func NewDashboardHandler(statsService *service.StatsService) *DashboardHandler {
	return &DashboardHandler{
		statsService: statsService,
	}
}

// OverviewPage shows the headline metrics and the last-six-months chart.
func (h *DashboardHandler) OverviewPage(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.statsService.Overview()
	if err != nil {
		http.Error(w, "Failed to load metrics", http.StatusInternalServerError)
		return
	}

	recent, err := h.statsService.Trend(h.statsService.SixMonthStart(), time.Now().UTC())
	if err != nil {
		http.Error(w, "Failed to load recent activity", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.Overview(metrics, recent))
}

// TrendsPage shows posts per month over a selectable date range.
func (h *DashboardHandler) TrendsPage(w http.ResponseWriter, r *http.Request) {
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")

	from, to, err := parseDateRange(fromStr, toStr)
	if err != nil {
		http.Error(w, "Invalid date range", http.StatusBadRequest)
		return
	}

	counts, err := h.statsService.Trend(from, to)
	if err != nil {
		http.Error(w, "Failed to load trend data", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.Trends(fromStr, toStr, counts))
}

// AuthorsPage shows the top-ten author ranking.
func (h *DashboardHandler) AuthorsPage(w http.ResponseWriter, r *http.Request) {
	top, err := h.statsService.TopAuthors()
	if err != nil {
		http.Error(w, "Failed to load author ranking", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.Authors(top))
}

// parseDateRange parses optional YYYY-MM-DD bounds. The "to" bound is
// inclusive of the whole day.
func parseDateRange(fromStr, toStr string) (from, to time.Time, err error) {
	if fromStr != "" {
		from, err = time.ParseInLocation("2006-01-02", fromStr, time.UTC)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if toStr != "" {
		to, err = time.ParseInLocation("2006-01-02", toStr, time.UTC)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = to.Add(24*time.Hour - time.Second)
	}
	return from, to, nil
}
