// Package content implements the locale/search reconciliation applied to
// live collection snapshots before they are shown.
package content

import (
	"sort"
	"strings"

	"github.com/qonuniy/api/internal/domain"
	"github.com/qonuniy/api/internal/i18n"
)

// DisplayState is the derived result of reconciling a snapshot with the
// requested locale and search query. It is recomputed per request, never
// persisted.
type DisplayState struct {
	RequestedLocale  string
	SearchQuery      string
	LocaleHasContent bool
	Items            []domain.ContentItem
	Featured         *domain.ContentItem
	Secondary        []domain.ContentItem
}

// Reconcile filters a sorted snapshot by locale and search query.
//
// Locale matching compares the stored item language against the full alias
// set of the requested locale. When no item matches, the full snapshot is
// shown instead with LocaleHasContent=false so the page is never empty just
// because a translation is missing. An empty snapshot reports
// LocaleHasContent=true: an empty collection is not a locale gap.
//
// The search query is matched verbatim (lowercased, not trimmed) as a title
// substring.
func Reconcile(items []domain.ContentItem, locale, search string) DisplayState {
	state := DisplayState{
		RequestedLocale:  i18n.Resolve(locale),
		SearchQuery:      search,
		LocaleHasContent: true,
	}
	if len(items) == 0 {
		return state
	}

	aliasSet := make(map[string]struct{})
	for _, alias := range i18n.AliasesFor(state.RequestedLocale) {
		aliasSet[alias] = struct{}{}
	}

	matched := make([]domain.ContentItem, 0, len(items))
	for _, item := range items {
		if _, ok := aliasSet[item.Language]; ok {
			matched = append(matched, item)
		}
	}

	working := matched
	if len(matched) == 0 {
		state.LocaleHasContent = false
		working = items
	}

	if query := strings.ToLower(search); query != "" {
		refined := make([]domain.ContentItem, 0, len(working))
		for _, item := range working {
			if strings.Contains(strings.ToLower(item.Title), query) {
				refined = append(refined, item)
			}
		}
		working = refined
	}

	state.Items = working
	if len(working) > 0 {
		featured := working[0]
		state.Featured = &featured
		state.Secondary = working[1:]
	}
	return state
}

// SortSnapshot orders items newest-first by published date. The sort is
// stable so equal or unparseable dates keep their original relative order.
func SortSnapshot(items []domain.ContentItem) []domain.ContentItem {
	sorted := make([]domain.ContentItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PublishedAt().After(sorted[j].PublishedAt())
	})
	return sorted
}
