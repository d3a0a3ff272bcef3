package handler

import (
	"net/http"

	"github.com/pybites/insights/internal/service"
	"github.com/pybites/insights/internal/ui"
	"github.com/pybites/insights/internal/ui/pages"
)

const infoSlug = "info"

type InfoHandler struct {
	infoService *service.InfoService
}

func NewInfoHandler(infoService *service.InfoService) *InfoHandler {
	return &InfoHandler{
		infoService: infoService,
	}
}

// InfoPage serves the markdown usage guide as the landing page.
func (h *InfoHandler) InfoPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.infoService.Page(infoSlug)
	if err != nil {
		http.Error(w, "Failed to load info page", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.Info(page))
}

func (h *InfoHandler) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	ui.Render(w, r, pages.NotFound())
}
