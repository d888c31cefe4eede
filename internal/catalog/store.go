package catalog

import (
	"fmt"
	"sync"

	"larder/internal/off"
)

// Snapshot is the collection state handed to the UI: the accumulated
// product list, the source-reported total (which may exceed what is held
// locally), the 1-based page cursor, and the active query descriptor.
type Snapshot struct {
	Products []off.Product
	Total    int
	Page     int
	Query    Query
	Loading  bool
	Err      error
}

// HasMore reports whether the source holds pages beyond what has been
// accumulated locally.
func (s Snapshot) HasMore() bool {
	return len(s.Products) < s.Total
}

// Ticket identifies one issued fetch. Completions carrying a stale ticket
// are discarded, so an old page-1 response can never overwrite the results
// of a query started after it.
type Ticket struct {
	Epoch uint64
	Query Query
	Page  int
}

// Store coordinates fetch lifecycles for the product collection. All
// mutation goes through Begin/Complete/Clear; reads get defensive copies.
type Store struct {
	mu    sync.RWMutex
	snap  Snapshot
	epoch uint64
}

// Begin records the start of a fetch: the loading flag is set, the prior
// error cleared, and for the search and single-category flows a page-1
// fetch optimistically clears the displayed list. The returned Ticket must
// be passed back to Complete.
func (s *Store) Begin(q Query, page int) Ticket {
	if page < 1 {
		page = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.epoch++
	s.snap = beginFetch(s.snap, q, page)
	return Ticket{Epoch: s.epoch, Query: q.clone(), Page: page}
}

// Complete finishes the fetch identified by t. It returns false without
// touching state when a newer fetch has been issued since t (the
// request-epoch guard). On success page 1 replaces the list and later
// pages append, de-duplicated by product key for the multi-category
// flow. On failure the error is recorded and the already-displayed list
// is left untouched.
func (s *Store) Complete(t Ticket, res off.SearchResult, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.Epoch != s.epoch {
		return false
	}
	s.snap = completeFetch(s.snap, t, res, err)
	return true
}

// LoadMore issues the next page for whichever query descriptor is active.
// It reports false, and issues nothing, while a fetch is in flight or
// when no descriptor is active.
func (s *Store) LoadMore() (Ticket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap.Loading || !s.snap.Query.Active() {
		return Ticket{}, false
	}
	page := s.snap.Page + 1
	s.epoch++
	s.snap = beginFetch(s.snap, s.snap.Query, page)
	return Ticket{Epoch: s.epoch, Query: s.snap.Query.clone(), Page: page}, true
}

// Clear resets the store to its initial state: empty list, no query
// descriptor, cursor 1, total 0. An in-flight fetch is implicitly
// invalidated because its ticket goes stale.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.epoch++
	s.snap = Snapshot{Page: 1}
}

// Snapshot returns an independent copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snap
	snap.Products = cloneProducts(s.snap.Products)
	snap.Query = s.snap.Query.clone()
	if s.snap.Err != nil {
		snap.Err = fmt.Errorf("%w", s.snap.Err)
	}
	return snap
}

// beginFetch and completeFetch are the pure transition functions behind
// the store; they take the current state plus an intent and return the
// next state, so the collection lifecycle is testable without a UI.

func beginFetch(s Snapshot, q Query, page int) Snapshot {
	s.Loading = true
	s.Err = nil
	if page == 1 && (q.Kind == QuerySearch || q.Kind == QueryCategory) {
		s.Products = nil
	}
	return s
}

func completeFetch(s Snapshot, t Ticket, res off.SearchResult, err error) Snapshot {
	s.Loading = false
	if err != nil {
		s.Err = err
		return s
	}

	if t.Page == 1 {
		s.Products = cloneProducts(res.Products)
	} else if t.Query.Kind == QueryCategories {
		s.Products = appendDedup(s.Products, res.Products)
	} else {
		s.Products = append(cloneProducts(s.Products), res.Products...)
	}
	s.Total = res.Count
	s.Page = t.Page
	s.Query = t.Query
	s.Err = nil
	return s
}

// appendDedup appends items whose key is not already present, preserving
// arrival order.
func appendDedup(existing, incoming []off.Product) []off.Product {
	seen := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		seen[p.Key()] = struct{}{}
	}
	out := cloneProducts(existing)
	for _, p := range incoming {
		if _, dup := seen[p.Key()]; dup {
			continue
		}
		seen[p.Key()] = struct{}{}
		out = append(out, p)
	}
	return out
}

func cloneProducts(items []off.Product) []off.Product {
	if len(items) == 0 {
		return nil
	}
	dup := make([]off.Product, len(items))
	copy(dup, items)
	return dup
}
