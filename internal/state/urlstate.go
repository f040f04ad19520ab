// Package state synchronises display state between URL query parameters and
// the viewer's persisted cookies: chosen locale, search query, view ledger.
package state

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/qonuniy/api/internal/i18n"
)

const (
	// ParamLang is the locale query parameter; short or canonical alias forms
	// are accepted.
	ParamLang = "lang"
	// ParamSearch is the title search query parameter.
	ParamSearch = "search"
)

// Params is the navigation state carried by the current URL.
type Params struct {
	Lang      string
	LangSet   bool
	Search    string
	SearchSet bool
}

// ReadParams extracts locale and search state from the request URL.
func ReadParams(r *http.Request) Params {
	query := r.URL.Query()
	params := Params{}
	if values, ok := query[ParamLang]; ok && len(values) > 0 {
		params.Lang = strings.TrimSpace(values[0])
		params.LangSet = params.Lang != ""
	}
	if values, ok := query[ParamSearch]; ok && len(values) > 0 {
		params.Search = values[0]
		params.SearchSet = strings.TrimSpace(params.Search) != ""
	}
	return params
}

// WithLocale returns the URL with the locale parameter set to the canonical
// code, preserving the search parameter and everything else. The default
// locale is never written, keeping default URLs clean.
func WithLocale(current *url.URL, code string) string {
	canonical := i18n.Resolve(code)
	next := *current
	query := next.Query()
	if canonical == "" || canonical == i18n.DefaultLocale {
		query.Del(ParamLang)
	} else {
		query.Set(ParamLang, canonical)
	}
	next.RawQuery = query.Encode()
	return next.String()
}

// WithSearch returns the URL with the search parameter updated. An empty
// query removes the parameter entirely rather than writing an empty string;
// a non-default locale parameter already present is preserved.
func WithSearch(current *url.URL, query string) string {
	next := *current
	values := next.Query()
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		values.Del(ParamSearch)
	} else {
		values.Set(ParamSearch, trimmed)
	}
	if lang := values.Get(ParamLang); lang != "" && i18n.Resolve(lang) == i18n.DefaultLocale {
		values.Del(ParamLang)
	}
	next.RawQuery = values.Encode()
	return next.String()
}

// RedirectTarget implements the load-time precedence rule: when neither
// locale nor search parameters are present and a saved non-default preference
// exists, the response should redirect once to attach the saved locale. Once
// the parameter is attached the rule cannot fire again, so no loop occurs.
func RedirectTarget(r *http.Request) (string, bool) {
	params := ReadParams(r)
	if params.LangSet || params.SearchSet {
		return "", false
	}
	saved, ok := SavedLocale(r)
	if !ok || saved == i18n.DefaultLocale {
		return "", false
	}
	return WithLocale(r.URL, saved), true
}
