// Package ui provides the terminal user interface for Larder.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program: a single root Model holds all view
// state, Update folds messages into the next state, and View renders the
// whole screen from scratch every frame. All network work happens in
// tea.Cmd closures so the event loop never blocks.
//
// # Package Structure
//
// The package is organized into focused modules:
//
//   - app.go: Root Model, Options, message/command plumbing, and Run
//   - search.go: Search bar input handling and the debounce wiring
//   - results.go: Result list rendering, grade tabs, and navigation
//   - categories.go: Multi-select category browser
//   - detail.go: Product detail view backed by a scrollable viewport
//   - favorites.go: Saved products list
//   - barcode.go: Barcode lookup modal with pre-request validation
//   - filterpanel.go: Nutrient range / sort / direction overlay
//   - header.go: Status bar and per-view command hints
//   - theme.go: Color themes and pre-built lipgloss styles
//
// # View Types
//
// Four main views are available:
//
//   - Results: The fetched product collection after client-side
//     filtering and sorting, with a search bar and Nutri-Score tabs
//   - Categories: Curated category list with multi-select; selections
//     are fetched concurrently and merged without duplicates
//   - Detail: Nutrition table, scores, ingredients, and allergens for
//     one product
//   - Favorites: Locally persisted saved products
//
// # Debounced Search
//
// Every keystroke in the search bar bumps a sequence counter and arms a
// tea.Tick carrying that sequence. When the tick fires, it is compared
// against the current counter; only the latest timer triggers a fetch,
// so a fetch fires once typing has settled. Enter bypasses the timer.
//
// # Fetch Lifecycle
//
// The model never mutates the product collection directly. It asks the
// catalog.Store to Begin a fetch, runs the request in a command, and
// Completes the store with the outcome. Stale completions are rejected
// by the store, so the UI simply re-reads a Snapshot whenever a
// fetchDoneMsg arrives.
//
// # Key Bindings
//
//   - /: Focus the search bar (enter searches immediately, esc cancels)
//   - c: Category browser (Space toggles, Enter browses the selection)
//   - v: Favorites view
//   - b: Barcode lookup modal
//   - F: Filter and sort panel
//   - t: Cycle the Nutri-Score grade tab
//   - s: Toggle favorite for the selected product
//   - m: Load the next page of results
//   - Enter: Open details for the selected product
//   - T: Cycle theme
//   - esc: Back to results
//   - e or Ctrl+C: Exit
//
// # Design Principles
//
//   - The store owns collection state; the UI owns presentation state
//   - Filtering and sorting never re-fetch: they re-derive the visible
//     list from already-fetched products
//   - Preferences (theme, last categories) persist across sessions,
//     and failures to persist are never fatal
package ui
