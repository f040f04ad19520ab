package state

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return parsed
}

func TestReadParams(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/articles?lang=ru&search=soliq", nil)
	params := ReadParams(r)
	if !params.LangSet || params.Lang != "ru" {
		t.Fatalf("expected lang ru, got %+v", params)
	}
	if !params.SearchSet || params.Search != "soliq" {
		t.Fatalf("expected search soliq, got %+v", params)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/v1/articles?lang=&search=%20%20", nil)
	params = ReadParams(r)
	if params.LangSet {
		t.Fatal("blank lang must not count as set")
	}
	if params.SearchSet {
		t.Fatal("whitespace search must not count as set")
	}
}

func TestWithLocaleNeverWritesDefault(t *testing.T) {
	current := mustURL(t, "/api/v1/articles?lang=rus&search=x")

	if got := WithLocale(current, "uzb"); got != "/api/v1/articles?search=x" {
		t.Fatalf("default locale must be removed, got %q", got)
	}
	if got := WithLocale(current, "uz"); got != "/api/v1/articles?search=x" {
		t.Fatalf("default locale alias must be removed, got %q", got)
	}
}

func TestWithLocaleWritesCanonicalCode(t *testing.T) {
	current := mustURL(t, "/api/v1/articles?search=x")
	got := WithLocale(current, "ru")
	parsed := mustURL(t, got)
	if parsed.Query().Get("lang") != "rus" {
		t.Fatalf("expected canonical rus, got %q", got)
	}
	if parsed.Query().Get("search") != "x" {
		t.Fatalf("search must be preserved, got %q", got)
	}
}

func TestWithSearchRemovesEmptyQuery(t *testing.T) {
	current := mustURL(t, "/api/v1/articles?lang=rus&search=old")
	got := WithSearch(current, "   ")
	parsed := mustURL(t, got)
	if _, ok := parsed.Query()["search"]; ok {
		t.Fatalf("empty search must remove the parameter, got %q", got)
	}
	if parsed.Query().Get("lang") != "rus" {
		t.Fatalf("non-default locale must be preserved, got %q", got)
	}
}

func TestWithSearchStripsDefaultLocaleParam(t *testing.T) {
	current := mustURL(t, "/api/v1/articles?lang=uzb")
	got := WithSearch(current, "soliq")
	parsed := mustURL(t, got)
	if _, ok := parsed.Query()["lang"]; ok {
		t.Fatalf("default locale param must be stripped, got %q", got)
	}
	if parsed.Query().Get("search") != "soliq" {
		t.Fatalf("expected search written, got %q", got)
	}
}

func TestRedirectTargetFiresOnceForSavedPreference(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/articles", nil)
	r.AddCookie(&http.Cookie{Name: "selectedLanguage", Value: "rus"})

	target, ok := RedirectTarget(r)
	if !ok {
		t.Fatal("expected redirect for saved non-default locale")
	}
	if mustURL(t, target).Query().Get("lang") != "rus" {
		t.Fatalf("expected lang=rus in target, got %q", target)
	}

	// Following the redirect carries the parameter, so the rule cannot fire again.
	followUp := httptest.NewRequest(http.MethodGet, target, nil)
	followUp.AddCookie(&http.Cookie{Name: "selectedLanguage", Value: "rus"})
	if _, ok := RedirectTarget(followUp); ok {
		t.Fatal("redirect must not loop")
	}
}

func TestRedirectTargetSkipsWhenParamsPresent(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/articles?search=soliq", nil)
	r.AddCookie(&http.Cookie{Name: "selectedLanguage", Value: "rus"})
	if _, ok := RedirectTarget(r); ok {
		t.Fatal("explicit URL state must win over the saved preference")
	}
}

func TestRedirectTargetSkipsDefaultAndUnknownPreference(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/articles", nil)
	r.AddCookie(&http.Cookie{Name: "selectedLanguage", Value: "uzb"})
	if _, ok := RedirectTarget(r); ok {
		t.Fatal("default preference must not redirect")
	}

	r = httptest.NewRequest(http.MethodGet, "/api/v1/articles", nil)
	r.AddCookie(&http.Cookie{Name: "selectedLanguage", Value: "fr"})
	if _, ok := RedirectTarget(r); ok {
		t.Fatal("unknown preference must not redirect")
	}

	r = httptest.NewRequest(http.MethodGet, "/api/v1/articles", nil)
	if _, ok := RedirectTarget(r); ok {
		t.Fatal("missing preference must not redirect")
	}
}
