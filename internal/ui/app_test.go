package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/spinner"

	"larder/internal/catalog"
	"larder/internal/favorites"
	"larder/internal/filter"
	"larder/internal/off"
)

func testModel(t *testing.T) Model {
	t.Helper()
	return New(Options{
		Store:     &catalog.Store{},
		Favorites: favorites.Open(t.TempDir() + "/favorites.json"),
		PrefsPath: t.TempDir() + "/prefs.toml",
	})
}

func TestCycleGradeTab(t *testing.T) {
	m := testModel(t)

	want := []string{"a", "b", "c", "d", "e", ""}
	for _, g := range want {
		m.cycleGradeTab()
		if got := m.filters.Grade(); got != g {
			t.Fatalf("grade tab = %q, want %q", got, g)
		}
	}
}

func TestToggleCategoryPreservesSelectionOrder(t *testing.T) {
	m := testModel(t)

	m.toggleCategory("en:snacks")
	m.toggleCategory("en:dairy")
	m.toggleCategory("en:beverages")
	if len(m.catSelected) != 3 || m.catSelected[0] != "en:snacks" || m.catSelected[2] != "en:beverages" {
		t.Fatalf("catSelected = %v, want pick order preserved", m.catSelected)
	}

	// Toggling again removes without disturbing the rest.
	m.toggleCategory("en:dairy")
	if len(m.catSelected) != 2 || m.catSelected[0] != "en:snacks" || m.catSelected[1] != "en:beverages" {
		t.Fatalf("catSelected after removal = %v", m.catSelected)
	}
}

func TestCategoriesQueryFor(t *testing.T) {
	q := categoriesQueryFor([]string{"en:snacks"})
	if q.Kind != catalog.QueryCategory || q.Category != "en:snacks" {
		t.Fatalf("single selection should browse one category, got %+v", q)
	}

	q = categoriesQueryFor([]string{"en:snacks", "en:dairy"})
	if q.Kind != catalog.QueryCategories || len(q.Categories) != 2 {
		t.Fatalf("multi selection should fan out, got %+v", q)
	}
}

func TestParseBound(t *testing.T) {
	if got := parseBound("  "); got != nil {
		t.Fatalf("parseBound blank = %v, want nil", got)
	}
	if got := parseBound("abc"); got != nil {
		t.Fatalf("parseBound garbage = %v, want nil", got)
	}
	got := parseBound(" 12.5 ")
	if got == nil || *got != 12.5 {
		t.Fatalf("parseBound 12.5 = %v", got)
	}
}

func TestVisibleWindowKeepsSelectionInView(t *testing.T) {
	m := testModel(t)
	m.height = 16 // listHeight = 10

	// Everything fits: full range.
	start, end := m.visibleWindow(5)
	if start != 0 || end != 5 {
		t.Fatalf("window = [%d,%d), want [0,5)", start, end)
	}

	// Selection deep in a long list: window follows it.
	m.selectedRow = 50
	start, end = m.visibleWindow(100)
	if m.selectedRow < start || m.selectedRow >= end {
		t.Fatalf("selection %d outside window [%d,%d)", m.selectedRow, start, end)
	}
	if end-start != m.listHeight() {
		t.Fatalf("window size = %d, want %d", end-start, m.listHeight())
	}

	// Selection at the end: window clamps to the tail.
	m.selectedRow = 99
	start, end = m.visibleWindow(100)
	if end != 100 {
		t.Fatalf("window end = %d, want 100", end)
	}
}

func TestStalenessGuardIgnoresOldDebounce(t *testing.T) {
	m := testModel(t)
	m.initInputs()
	m.searchInput.SetValue("nutella")
	m.searchSeq = 5

	// An old timer firing must not trigger a fetch.
	next, cmd := m.handleDebounce(debounceMsg{seq: 3})
	if cmd != nil {
		t.Fatalf("stale debounce issued a command")
	}
	m = next.(Model)
	if m.snapshot.Loading {
		t.Fatalf("stale debounce started a fetch")
	}

	// The current timer does.
	_, cmd = m.handleDebounce(debounceMsg{seq: 5})
	if cmd == nil {
		t.Fatalf("live debounce issued no command")
	}
}

func TestDebounceWithEmptyQueryClearsCollection(t *testing.T) {
	m := testModel(t)
	m.initInputs()

	// Seed the store with a completed search.
	ticket := m.store.Begin(catalog.SearchQuery("pasta"), 1)
	m.store.Complete(ticket, searchResultOf("p1", "p2"), nil)
	m.refreshSnapshot()
	if len(m.snapshot.Products) != 2 {
		t.Fatalf("seed failed, products = %d", len(m.snapshot.Products))
	}

	m.searchInput.SetValue("   ")
	m.searchSeq = 1
	next, cmd := m.handleDebounce(debounceMsg{seq: 1})
	if cmd != nil {
		t.Fatalf("empty query should not fetch")
	}
	m = next.(Model)
	if len(m.snapshot.Products) != 0 || m.snapshot.Query.Active() {
		t.Fatalf("empty query should clear the collection, got %d products", len(m.snapshot.Products))
	}
}

func TestVisibleProductsHonorsGradeTab(t *testing.T) {
	m := testModel(t)

	ticket := m.store.Begin(catalog.SearchQuery("cereal"), 1)
	res := searchResultOf("p1", "p2", "p3")
	res.Products[0].NutriscoreGrade = "a"
	res.Products[1].NutriscoreGrade = "e"
	res.Products[2].NutriscoreGrade = "a"
	m.store.Complete(ticket, res, nil)
	m.refreshSnapshot()

	m.filters.SetGrade("a")
	visible := m.visibleProducts()
	if len(visible) != 2 {
		t.Fatalf("visible = %d, want 2 grade-a products", len(visible))
	}

	m.filters.SetGrade("")
	if got := len(m.visibleProducts()); got != 3 {
		t.Fatalf("visible after clearing tab = %d, want 3", got)
	}

	m.filters.SetSort(filter.SortGrade, filter.Asc)
	visible = m.visibleProducts()
	if visible[len(visible)-1].Grade() != "e" {
		t.Fatalf("grade sort should put e last, got %q", visible[len(visible)-1].Grade())
	}
}

func TestSpinnerTicksOnlyWhileLoading(t *testing.T) {
	m := testModel(t)

	// Idle: the tick loop is allowed to die.
	next, cmd := m.Update(spinner.TickMsg{ID: m.spinner.ID()})
	if cmd != nil {
		t.Fatalf("idle spinner tick re-armed itself")
	}
	m = next.(Model)

	// A fetch in flight keeps the loop alive.
	m.store.Begin(catalog.SearchQuery("chocolate"), 1)
	m.refreshSnapshot()
	if !m.snapshot.Loading {
		t.Fatalf("expected a fetch in flight")
	}
	_, cmd = m.Update(spinner.TickMsg{ID: m.spinner.ID()})
	if cmd == nil {
		t.Fatalf("spinner stopped while a fetch was in flight")
	}
}

func searchResultOf(keys ...string) off.SearchResult {
	items := make([]off.Product, len(keys))
	for i, k := range keys {
		items[i] = off.Product{ID: k, ProductName: "Product " + k}
	}
	return off.SearchResult{Count: len(keys), Page: 1, Products: items}
}
