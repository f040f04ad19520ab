package state

import (
	"net/http"
	"strings"
	"time"

	"github.com/qonuniy/api/internal/i18n"
)

// prefCookie persists the last explicitly chosen locale across sessions,
// scoped to the viewer's browser profile.
const prefCookie = "selectedLanguage"

const prefCookieMaxAge = int(365 * 24 * time.Hour / time.Second)

// SavedLocale returns the previously saved canonical locale, if one exists
// and still names a known locale.
func SavedLocale(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(prefCookie)
	if err != nil || strings.TrimSpace(cookie.Value) == "" {
		return "", false
	}
	canonical := i18n.Resolve(cookie.Value)
	if !i18n.Supported(canonical) {
		return "", false
	}
	return canonical, true
}

// SaveLocale persists the canonical locale code, overwriting any previous
// value. Unknown codes are not saved.
func SaveLocale(w http.ResponseWriter, code string) {
	canonical := i18n.Resolve(code)
	if !i18n.Supported(canonical) {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     prefCookie,
		Value:    canonical,
		Path:     "/",
		MaxAge:   prefCookieMaxAge,
		SameSite: http.SameSiteLaxMode,
	})
}
