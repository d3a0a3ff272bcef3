package middleware

import (
	"net/http"

	"github.com/pybites/insights/internal/ctxkeys"
	"github.com/pybites/insights/internal/service"
)

// SearchCookieName carries the signed search token.
const SearchCookieName = "search_token"

// SearchGate marks requests that carry a valid search token. Handlers
// decide whether to show the unlock form or the search UI.
func SearchGate(search *service.SearchService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			unlocked := false
			cookie, err := r.Cookie(SearchCookieName)
			if err == nil {
				unlocked = search.ValidateToken(cookie.Value) == nil
			}

			ctx := ctxkeys.WithSearchUnlocked(r.Context(), unlocked)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSearch rejects requests without a valid search token.
func RequireSearch(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !ctxkeys.SearchUnlocked(r.Context()) {
			http.Error(w, "Search is locked. Enter the search password first.", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}
