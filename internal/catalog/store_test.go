package catalog

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"larder/internal/off"
)

func products(keys ...string) []off.Product {
	out := make([]off.Product, len(keys))
	for i, k := range keys {
		out[i] = off.Product{ID: k, ProductName: "product " + k}
	}
	return out
}

func TestStore_SearchPageOneThenLoadMore(t *testing.T) {
	var s Store

	ticket := s.Begin(SearchQuery("chocolate"), 1)
	snap := s.Snapshot()
	require.True(t, snap.Loading)
	require.Empty(t, snap.Products)

	page1 := make([]off.Product, 0, 24)
	for i := 0; i < 24; i++ {
		page1 = append(page1, off.Product{ID: fmt.Sprintf("p%d", i)})
	}
	require.True(t, s.Complete(ticket, off.SearchResult{Count: 120, Products: page1}, nil))

	snap = s.Snapshot()
	require.Len(t, snap.Products, 24)
	require.Equal(t, 120, snap.Total)
	require.Equal(t, 1, snap.Page)
	require.Equal(t, QuerySearch, snap.Query.Kind)
	require.True(t, snap.HasMore())
	require.False(t, snap.Loading)

	ticket, ok := s.LoadMore()
	require.True(t, ok)
	require.Equal(t, 2, ticket.Page)
	require.Equal(t, "chocolate", ticket.Query.Text)

	page2 := make([]off.Product, 0, 24)
	for i := 24; i < 48; i++ {
		page2 = append(page2, off.Product{ID: fmt.Sprintf("p%d", i)})
	}
	require.True(t, s.Complete(ticket, off.SearchResult{Count: 120, Products: page2}, nil))

	snap = s.Snapshot()
	require.Len(t, snap.Products, 48)
	require.Equal(t, 2, snap.Page)
	require.Equal(t, "p0", snap.Products[0].ID, "append must preserve arrival order")
}

func TestStore_LoadMoreGuards(t *testing.T) {
	var s Store

	// No active descriptor: no-op.
	_, ok := s.LoadMore()
	require.False(t, ok)

	// In-flight fetch: no-op.
	ticket := s.Begin(SearchQuery("pasta"), 1)
	_, ok = s.LoadMore()
	require.False(t, ok)

	// Once the fetch completes the descriptor is active and load-more works.
	require.True(t, s.Complete(ticket, off.SearchResult{Count: 40, Products: products("a", "b")}, nil))
	next, ok := s.LoadMore()
	require.True(t, ok)
	require.Equal(t, 2, next.Page)
	require.Equal(t, "pasta", next.Query.Text)
}

func TestStore_StaleCompletionDiscarded(t *testing.T) {
	var s Store

	stale := s.Begin(SearchQuery("a"), 1)
	fresh := s.Begin(SearchQuery("b"), 1)

	require.True(t, s.Complete(fresh, off.SearchResult{Count: 1, Products: products("b1")}, nil))
	require.False(t, s.Complete(stale, off.SearchResult{Count: 9, Products: products("a1")}, nil))

	snap := s.Snapshot()
	require.Equal(t, "b", snap.Query.Text)
	require.Equal(t, []off.Product{{ID: "b1", ProductName: "product b1"}}, snap.Products)
	require.Equal(t, 1, snap.Total)
}

func TestStore_FailureKeepsDisplayedList(t *testing.T) {
	var s Store

	ticket := s.Begin(CategoryQuery("en:snacks"), 1)
	require.True(t, s.Complete(ticket, off.SearchResult{Count: 2, Products: products("a", "b")}, nil))

	ticket, ok := s.LoadMore()
	require.True(t, ok)
	require.True(t, s.Complete(ticket, off.SearchResult{}, errors.New("boom")))

	snap := s.Snapshot()
	require.Error(t, snap.Err)
	require.Len(t, snap.Products, 2, "failure must not roll back displayed items")
	require.Equal(t, 1, snap.Page, "failed page must not advance the cursor")
	require.False(t, snap.Loading)

	// The next successful fetch clears the error.
	ticket = s.Begin(CategoryQuery("en:snacks"), 1)
	require.True(t, s.Complete(ticket, off.SearchResult{Count: 2, Products: products("a", "b")}, nil))
	require.NoError(t, s.Snapshot().Err)
}

func TestStore_PageOneReplacesEntirely(t *testing.T) {
	var s Store

	ticket := s.Begin(SearchQuery("milk"), 1)
	require.True(t, s.Complete(ticket, off.SearchResult{Count: 3, Products: products("a", "b", "c")}, nil))

	ticket = s.Begin(SearchQuery("yogurt"), 1)
	snap := s.Snapshot()
	require.Empty(t, snap.Products, "page-1 start optimistically clears the list")

	require.True(t, s.Complete(ticket, off.SearchResult{Count: 1, Products: products("z")}, nil))
	snap = s.Snapshot()
	require.Equal(t, []string{"z"}, keysOf(snap.Products))
	require.Equal(t, "yogurt", snap.Query.Text)
}

func TestStore_MultiCategoryAppendDedups(t *testing.T) {
	var s Store

	q := CategoriesQuery([]string{"en:dairy", "en:snacks"})
	ticket := s.Begin(q, 1)
	require.True(t, s.Complete(ticket, off.SearchResult{Count: 80, Products: products("p1", "p2", "p3")}, nil))

	ticket, ok := s.LoadMore()
	require.True(t, ok)
	require.Equal(t, QueryCategories, ticket.Query.Kind)
	require.True(t, s.Complete(ticket, off.SearchResult{Count: 80, Products: products("p3", "p4")}, nil))

	snap := s.Snapshot()
	require.Equal(t, []string{"p1", "p2", "p3", "p4"}, keysOf(snap.Products))
}

func TestStore_SingleFlowsAppendWithoutDedup(t *testing.T) {
	var s Store

	ticket := s.Begin(SearchQuery("tea"), 1)
	require.True(t, s.Complete(ticket, off.SearchResult{Count: 4, Products: products("a", "b")}, nil))

	ticket, ok := s.LoadMore()
	require.True(t, ok)
	require.True(t, s.Complete(ticket, off.SearchResult{Count: 4, Products: products("b", "c")}, nil))

	// Search pages are assumed distinct; a repeated key is kept as-is.
	require.Equal(t, []string{"a", "b", "b", "c"}, keysOf(s.Snapshot().Products))
}

func TestStore_ClearResetsEverything(t *testing.T) {
	var s Store

	ticket := s.Begin(SearchQuery("tea"), 1)
	require.True(t, s.Complete(ticket, off.SearchResult{Count: 2, Products: products("a", "b")}, nil))

	s.Clear()
	snap := s.Snapshot()
	require.Empty(t, snap.Products)
	require.Equal(t, 0, snap.Total)
	require.Equal(t, 1, snap.Page)
	require.False(t, snap.Query.Active())

	// Completions from before the clear are stale.
	require.False(t, s.Complete(ticket, off.SearchResult{Count: 2, Products: products("a")}, nil))
}

func TestStore_SnapshotIsIndependent(t *testing.T) {
	var s Store

	ticket := s.Begin(SearchQuery("tea"), 1)
	require.True(t, s.Complete(ticket, off.SearchResult{Count: 1, Products: products("a")}, nil))

	snap := s.Snapshot()
	snap.Products[0].ID = "mutated"
	require.Equal(t, "a", s.Snapshot().Products[0].ID)
}

func keysOf(items []off.Product) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.Key()
	}
	return out
}
