package state

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/qonuniy/api/internal/domain"
)

func responseCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestSaveLocaleRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	SaveLocale(rec, "ru")

	cookie := responseCookie(t, rec, "selectedLanguage")
	if cookie == nil {
		t.Fatal("expected preference cookie")
	}
	if cookie.Value != "rus" {
		t.Fatalf("expected canonical code saved, got %q", cookie.Value)
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookie)
	saved, ok := SavedLocale(r)
	if !ok || saved != "rus" {
		t.Fatalf("expected saved locale rus, got %q ok=%v", saved, ok)
	}
}

func TestSaveLocaleIgnoresUnknownCodes(t *testing.T) {
	rec := httptest.NewRecorder()
	SaveLocale(rec, "fr")
	if cookie := responseCookie(t, rec, "selectedLanguage"); cookie != nil {
		t.Fatalf("unknown code must not be saved, got %q", cookie.Value)
	}
}

func TestSavedLocaleRejectsUnknownCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "selectedLanguage", Value: "fr"})
	if _, ok := SavedLocale(r); ok {
		t.Fatal("unknown saved code must be ignored")
	}
}

func TestLedgerRoundTrip(t *testing.T) {
	ledger := Ledger{}
	ledger.MarkCounted("doc-1")
	ledger.MarkCounted("doc-2")

	rec := httptest.NewRecorder()
	WriteLedger(rec, domain.KindArticle, ledger)

	cookie := responseCookie(t, rec, domain.KindArticle.LedgerCookie())
	if cookie == nil {
		t.Fatal("expected ledger cookie")
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookie)
	decoded := ReadLedger(r, domain.KindArticle)
	if !decoded.Counted("doc-1") || !decoded.Counted("doc-2") {
		t.Fatalf("expected both ids counted, got %v", decoded)
	}
	if decoded.Counted("doc-3") {
		t.Fatal("unseen id must not be counted")
	}
}

func TestReadLedgerToleratesMalformedCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: domain.KindProject.LedgerCookie(), Value: "%%%not-base64%%%"})
	ledger := ReadLedger(r, domain.KindProject)
	if len(ledger) != 0 {
		t.Fatalf("malformed cookie must yield an empty ledger, got %v", ledger)
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	if ledger := ReadLedger(r, domain.KindProject); len(ledger) != 0 {
		t.Fatalf("missing cookie must yield an empty ledger, got %v", ledger)
	}
}

func TestLedgersAreIndependentPerKind(t *testing.T) {
	ledger := Ledger{}
	ledger.MarkCounted("doc-1")

	rec := httptest.NewRecorder()
	WriteLedger(rec, domain.KindArticle, ledger)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(responseCookie(t, rec, domain.KindArticle.LedgerCookie()))
	if projects := ReadLedger(r, domain.KindProject); projects.Counted("doc-1") {
		t.Fatal("article ledger must not leak into the project ledger")
	}
}

func TestEnsureViewerMintsAndReuses(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	id := EnsureViewer(rec, r)
	if id == "" {
		t.Fatal("expected minted viewer id")
	}
	cookie := responseCookie(t, rec, "viewerId")
	if cookie == nil || cookie.Value != id {
		t.Fatalf("expected viewer cookie %q, got %+v", id, cookie)
	}

	again := httptest.NewRequest(http.MethodGet, "/", nil)
	again.AddCookie(cookie)
	rec2 := httptest.NewRecorder()
	if got := EnsureViewer(rec2, again); got != id {
		t.Fatalf("expected existing id %q reused, got %q", id, got)
	}
	if extra := responseCookie(t, rec2, "viewerId"); extra != nil {
		t.Fatal("existing viewer must not be re-minted")
	}
}
