// Package i18n holds the closed set of locales the site publishes in and the
// alias resolution rules used when matching stored content languages.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLocale is the canonical code used when nothing else is known.
const DefaultLocale = "uzb"

// Locale describes one supported display language.
type Locale struct {
	Code     string
	FullName string
	Abbr     string
}

// Locales lists every supported display language, default first. The Cyrillic
// variant is a distinct locale, not an alias of the Latin one.
var Locales = []Locale{
	{Code: "uzb", FullName: "O'zbekiston", Abbr: "UZB"},
	{Code: "rus", FullName: "Русский", Abbr: "РУС"},
	{Code: "eng", FullName: "English", Abbr: "ENG"},
	{Code: "uzb_cyr", FullName: "Ўзбекистон", Abbr: "ЎЗБ"},
}

// aliasToCanonical maps short forms onto canonical codes.
var aliasToCanonical = map[string]string{
	"uz":     "uzb",
	"ru":     "rus",
	"en":     "eng",
	"uz_cyr": "uzb_cyr",
}

// canonicalAliases enumerates every code treated as equivalent when matching
// a stored item language, canonical form first.
var canonicalAliases = map[string][]string{
	"uzb":     {"uzb", "uz"},
	"rus":     {"rus", "ru"},
	"eng":     {"eng", "en"},
	"uzb_cyr": {"uzb_cyr", "uz_cyr"},
}

// Resolve maps any known alias to its canonical locale code. Unknown codes
// pass through unchanged so future codes degrade gracefully downstream.
func Resolve(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return trimmed
	}
	if canonical, ok := aliasToCanonical[trimmed]; ok {
		return canonical
	}
	return trimmed
}

// AliasesFor returns every code equivalent to the given one, including itself.
// For unknown codes the identity set is returned.
func AliasesFor(code string) []string {
	canonical := Resolve(code)
	if aliases, ok := canonicalAliases[canonical]; ok {
		out := make([]string, len(aliases))
		copy(out, aliases)
		return out
	}
	return []string{canonical}
}

// Supported reports whether the code (or one of its aliases) names a locale
// from the closed set.
func Supported(code string) bool {
	_, ok := canonicalAliases[Resolve(code)]
	return ok
}

// ByCode returns the Locale for a canonical code or alias.
func ByCode(code string) (Locale, bool) {
	canonical := Resolve(code)
	for _, locale := range Locales {
		if locale.Code == canonical {
			return locale, true
		}
	}
	return Locale{}, false
}

var acceptLanguageTags = []language.Tag{
	language.MustParse("uz"),      // uzb (default, Latin script)
	language.MustParse("ru"),      // rus
	language.MustParse("en"),      // eng
	language.MustParse("uz-Cyrl"), // uzb_cyr
}

var acceptLanguageCodes = []string{"uzb", "rus", "eng", "uzb_cyr"}

var acceptLanguageMatcher = language.NewMatcher(acceptLanguageTags)

// ResolveAcceptLanguage maps an Accept-Language header onto a canonical locale
// code, falling back to the default locale.
func ResolveAcceptLanguage(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return DefaultLocale
	}
	_, index := language.MatchStrings(acceptLanguageMatcher, header)
	if index < 0 || index >= len(acceptLanguageCodes) {
		return DefaultLocale
	}
	return acceptLanguageCodes[index]
}
