package content

import (
	"testing"

	"github.com/qonuniy/api/internal/domain"
)

func item(id, title, language, date string) domain.ContentItem {
	return domain.ContentItem{ID: id, Title: title, Language: language, Date: date}
}

func ids(items []domain.ContentItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestReconcileFiltersByLocaleAliasSet(t *testing.T) {
	snapshot := []domain.ContentItem{
		item("a", "One", "rus", "2024-05-03"),
		item("b", "Two", "ru", "2024-05-02"),
		item("c", "Three", "eng", "2024-05-01"),
	}

	state := Reconcile(snapshot, "ru", "")
	if !state.LocaleHasContent {
		t.Fatal("expected locale content")
	}
	if state.RequestedLocale != "rus" {
		t.Fatalf("expected canonical locale rus, got %q", state.RequestedLocale)
	}
	got := ids(state.Items)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("expected items a,b; got %v", got)
	}
}

func TestReconcileFallsBackToFullSnapshot(t *testing.T) {
	snapshot := []domain.ContentItem{
		item("a", "One", "rus", "2024-05-03"),
		item("b", "Two", "eng", "2024-05-02"),
	}

	state := Reconcile(snapshot, "uzb_cyr", "")
	if state.LocaleHasContent {
		t.Fatal("expected LocaleHasContent=false when no translation exists")
	}
	if len(state.Items) != 2 {
		t.Fatalf("fallback must show the full snapshot, got %v", ids(state.Items))
	}
}

func TestReconcileCyrillicDoesNotMatchLatin(t *testing.T) {
	snapshot := []domain.ContentItem{
		item("a", "One", "uz", "2024-05-03"),
		item("b", "Two", "uz_cyr", "2024-05-02"),
	}

	state := Reconcile(snapshot, "uzb_cyr", "")
	if !state.LocaleHasContent {
		t.Fatal("expected cyrillic content")
	}
	if got := ids(state.Items); len(got) != 1 || got[0] != "b" {
		t.Fatalf("expected only cyrillic item, got %v", got)
	}
}

func TestReconcileSearchRefinesLocaleMatches(t *testing.T) {
	snapshot := []domain.ContentItem{
		item("a", "Soliq yangiliklari", "uzb", "2024-05-03"),
		item("b", "Mehnat kodeksi", "uzb", "2024-05-02"),
		item("c", "Tax news", "eng", "2024-05-01"),
	}

	state := Reconcile(snapshot, "uzb", "SOLIQ")
	if got := ids(state.Items); len(got) != 1 || got[0] != "a" {
		t.Fatalf("expected case-insensitive title match, got %v", got)
	}
	if !state.LocaleHasContent {
		t.Fatal("search must not flip LocaleHasContent")
	}
}

func TestReconcileSearchAppliesAfterFallback(t *testing.T) {
	snapshot := []domain.ContentItem{
		item("a", "Tax news", "eng", "2024-05-03"),
		item("b", "Labour code", "eng", "2024-05-02"),
	}

	state := Reconcile(snapshot, "rus", "tax")
	if state.LocaleHasContent {
		t.Fatal("expected fallback state")
	}
	if got := ids(state.Items); len(got) != 1 || got[0] != "a" {
		t.Fatalf("search must refine the fallback set, got %v", got)
	}
}

func TestReconcileSearchMatchesRawQueryText(t *testing.T) {
	snapshot := []domain.ContentItem{
		item("a", "Income tax law", "eng", "2024-05-03"),
		item("b", "Taxation basics", "eng", "2024-05-02"),
	}

	// The query text is matched as-is; surrounding whitespace is part of it.
	state := Reconcile(snapshot, "eng", " tax ")
	if got := ids(state.Items); len(got) != 1 || got[0] != "a" {
		t.Fatalf("expected only the title containing %q, got %v", " tax ", got)
	}

	state = Reconcile(snapshot, "eng", "tax")
	if got := ids(state.Items); len(got) != 2 {
		t.Fatalf("expected both titles to match, got %v", got)
	}
}

func TestReconcileSearchMayYieldEmpty(t *testing.T) {
	snapshot := []domain.ContentItem{
		item("a", "One", "uzb", "2024-05-03"),
	}

	state := Reconcile(snapshot, "uzb", "zzz")
	if len(state.Items) != 0 {
		t.Fatalf("expected no matches, got %v", ids(state.Items))
	}
	if state.Featured != nil {
		t.Fatal("no featured item expected for empty result")
	}
}

func TestReconcileEmptySnapshotReportsLocaleContent(t *testing.T) {
	state := Reconcile(nil, "rus", "")
	if !state.LocaleHasContent {
		t.Fatal("an empty collection is not a locale gap")
	}
	if len(state.Items) != 0 || state.Featured != nil {
		t.Fatal("empty snapshot must yield empty display")
	}
}

func TestReconcileSplitsFeaturedAndSecondary(t *testing.T) {
	snapshot := []domain.ContentItem{
		item("a", "One", "uzb", "2024-05-03"),
		item("b", "Two", "uzb", "2024-05-02"),
		item("c", "Three", "uzb", "2024-05-01"),
	}

	state := Reconcile(snapshot, "uzb", "")
	if state.Featured == nil || state.Featured.ID != "a" {
		t.Fatalf("expected first item featured, got %+v", state.Featured)
	}
	if got := ids(state.Secondary); len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Fatalf("expected secondary b,c; got %v", got)
	}
}

func TestSortSnapshotNewestFirst(t *testing.T) {
	snapshot := []domain.ContentItem{
		item("old", "Old", "uzb", "2023-01-01"),
		item("new", "New", "uzb", "2024-06-01"),
		item("mid", "Mid", "uzb", "2024-01-01"),
	}

	sorted := SortSnapshot(snapshot)
	if got := ids(sorted); got[0] != "new" || got[1] != "mid" || got[2] != "old" {
		t.Fatalf("expected newest-first order, got %v", got)
	}
	// Input order preserved.
	if snapshot[0].ID != "old" {
		t.Fatal("SortSnapshot must not mutate its input")
	}
}

func TestSortSnapshotKeepsOrderForUnparseableDates(t *testing.T) {
	snapshot := []domain.ContentItem{
		item("a", "A", "uzb", "not-a-date"),
		item("b", "B", "uzb", ""),
		item("c", "C", "uzb", "2024-06-01"),
	}

	sorted := SortSnapshot(snapshot)
	if got := ids(sorted); got[0] != "c" || got[1] != "a" || got[2] != "b" {
		t.Fatalf("dated item first, then stable original order; got %v", got)
	}
}
