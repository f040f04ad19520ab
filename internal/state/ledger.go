package state

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/qonuniy/api/internal/domain"
)

const ledgerCookieMaxAge = int(365 * 24 * time.Hour / time.Second)

// Ledger records which item ids have already been counted for this viewer.
// Articles and projects use independent ledgers.
type Ledger map[string]bool

// Counted reports whether the item id has already been counted.
func (l Ledger) Counted(id string) bool {
	return l[id]
}

// MarkCounted records the item id as counted.
func (l Ledger) MarkCounted(id string) {
	l[id] = true
}

// ReadLedger decodes the per-kind view ledger cookie. Missing or malformed
// cookies yield an empty ledger; the worst case is one extra count.
func ReadLedger(r *http.Request, kind domain.Kind) Ledger {
	cookie, err := r.Cookie(kind.LedgerCookie())
	if err != nil || cookie.Value == "" {
		return Ledger{}
	}
	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return Ledger{}
	}
	ledger := Ledger{}
	if err := json.Unmarshal(raw, &ledger); err != nil {
		return Ledger{}
	}
	return ledger
}

// WriteLedger persists the ledger back to its per-kind cookie.
func WriteLedger(w http.ResponseWriter, kind domain.Kind, ledger Ledger) {
	raw, err := json.Marshal(ledger)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     kind.LedgerCookie(),
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		MaxAge:   ledgerCookieMaxAge,
		SameSite: http.SameSiteLaxMode,
	})
}
