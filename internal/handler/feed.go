package handler

import (
	"log/slog"
	"net/http"

	"github.com/pybites/insights/internal/service"
)

type FeedHandler struct {
	feedService *service.FeedService
}

func NewFeedHandler(feedService *service.FeedService) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
	}
}

// RSS serves the latest refined posts as an RSS 2.0 feed.
func (h *FeedHandler) RSS(w http.ResponseWriter, r *http.Request) {
	feed, err := h.feedService.Feed()
	if err != nil {
		slog.Error("failed to build feed", "error", err)
		http.Error(w, "Failed to build feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	err = feed.WriteRss(w)
	if err != nil {
		slog.Error("failed to write feed", "error", err)
	}
}
