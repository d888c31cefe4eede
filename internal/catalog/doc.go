// Package catalog holds the product collection state shared by the
// search, single-category, and multi-category browse flows.
//
// # Overview
//
// The Store is an explicit state container: every fetch runs through a
// Begin → Complete lifecycle, and the actual state transitions are pure
// functions (beginFetch, completeFetch) that take the current Snapshot
// plus an intent and return the next Snapshot. That keeps the pagination
// and merge rules unit-testable without a UI or a network.
//
// # Collection lifecycle
//
//	Begin(query, 1)      Loading, error cleared, list optimistically
//	                     cleared for the search/single-category flows
//	Complete(ticket, ok) page 1 replaces the list, page>1 appends;
//	                     the multi-category flow de-duplicates appends
//	                     by product key, the others append as-is
//	Complete(ticket, err) error recorded, displayed list untouched
//	LoadMore()           next page for the active descriptor; no-op while
//	                     loading or when nothing is active
//	Clear()              back to the initial empty state
//
// # Stale completions
//
// Fetches are not cancelled when a new one starts, so a slow page-1
// response for query A could otherwise land after the user has moved on
// to query B. Every Begin bumps a monotonic epoch and Complete discards
// tickets that are no longer current. A single store-wide epoch is enough
// because the query descriptors are mutually exclusive: starting any flow
// supersedes whatever was in flight.
//
// # Multi-category fan-out
//
// FetchCategories issues one request per selected category concurrently
// via errgroup and waits for all of them; any failure fails the composite
// fetch (all-or-nothing, matching the source behavior this app mirrors).
// Result sets are unioned by product key and the aggregate total is the
// sum of per-category counts, an approximation rather than a distinct
// count.
package catalog
