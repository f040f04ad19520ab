package state

import (
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/qonuniy/api/internal/platform/requestctx"
)

// viewerCookie identifies the anonymous viewer device so view ledgers and
// analytics events share a stable scope.
const viewerCookie = "viewerId"

const viewerCookieMaxAge = int(2 * 365 * 24 * time.Hour / time.Second)

// EnsureViewer returns the viewer id from the request cookie, minting and
// setting a fresh ULID when absent.
func EnsureViewer(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(viewerCookie); err == nil {
		if id := strings.TrimSpace(cookie.Value); id != "" {
			return id
		}
	}

	id := ulid.Make().String()
	http.SetCookie(w, &http.Cookie{
		Name:     viewerCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   viewerCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// ViewerContextMiddleware stores a returning viewer's id on the request
// context for log correlation. It never mints; first-time viewers get an id
// only when a detail view needs one.
func ViewerContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(viewerCookie); err == nil {
			if id := strings.TrimSpace(cookie.Value); id != "" {
				r = r.WithContext(requestctx.WithViewer(r.Context(), id))
			}
		}
		next.ServeHTTP(w, r)
	})
}
