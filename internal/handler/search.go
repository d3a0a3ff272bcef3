package handler

import (
	"errors"
	"net/http"

	"github.com/pybites/insights/internal/ctxkeys"
	"github.com/pybites/insights/internal/middleware"
	"github.com/pybites/insights/internal/service"
	"github.com/pybites/insights/internal/ui"
	"github.com/pybites/insights/internal/ui/pages"
)

type SearchHandler struct {
	searchService *service.SearchService
	secureCookies bool
}

func NewSearchHandler(searchService *service.SearchService, secureCookies bool) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		secureCookies: secureCookies,
	}
}

// SearchPage renders the password prompt when locked and the query form
// plus results when unlocked.
func (h *SearchHandler) SearchPage(w http.ResponseWriter, r *http.Request) {
	if !h.searchService.Enabled() {
		ui.Render(w, r, pages.SearchDisabled())
		return
	}

	if !ctxkeys.SearchUnlocked(r.Context()) {
		ui.Render(w, r, pages.SearchLocked(""))
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		ui.Render(w, r, pages.SearchResults("", nil, ""))
		return
	}

	posts, err := h.searchService.Search(query)
	if err != nil {
		if errors.Is(err, service.ErrQueryTooShort) {
			ui.Render(w, r, pages.SearchResults(query, nil, "Query must be at least two characters."))
			return
		}
		http.Error(w, "Search failed", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.SearchResults(query, posts, ""))
}

// Unlock verifies the shared password and sets the search token cookie.
func (h *SearchHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	if !h.searchService.Enabled() {
		ui.Render(w, r, pages.SearchDisabled())
		return
	}

	err := r.ParseForm()
	if err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	token, err := h.searchService.Unlock(r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			w.WriteHeader(http.StatusUnauthorized)
			ui.Render(w, r, pages.SearchLocked("Wrong password, try again."))
			return
		}
		http.Error(w, "Unlock failed", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SearchCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.searchService.TokenExpiry().Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/search", http.StatusSeeOther)
}
