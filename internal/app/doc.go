// Package app provides the orchestration layer for the Larder application.
//
// # Overview
//
// This package wires together configuration, the Open Food Facts client,
// the product collection store, favorites persistence, and the UI to
// create the complete Larder TUI experience. It is the composition root
// where all dependencies are initialized and connected.
//
// # Architecture
//
// The app package follows a simple initialization pattern:
//
//  1. Load configuration from ~/.config/larder/config.toml
//  2. Redirect standard-library logging to the configured log file
//  3. Load user preferences (theme, last category selection)
//  4. Initialize the Open Food Facts HTTP client
//  5. Create the shared catalog.Store and open the favorites file
//  6. Start the TUI and block until the user exits or the context cancels
//
// # Data Flow
//
//	Run()
//	  ├─> config.Load()        Read larder config
//	  ├─> prefs.Load()         Read theme + last categories
//	  ├─> off.NewClient()      Create API client
//	  ├─> catalog.Store{}      Shared collection state
//	  ├─> favorites.Open()     Load saved products from disk
//	  └─> ui.Run()             Start TUI (blocks)
//
// Unlike daemon monitors there is no background poller: every fetch is
// user-initiated (a search keystroke settling, a category selection, a
// load-more request, a barcode lookup) and runs as a Bubble Tea command.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration file present but invalid
//   - API client initialization failure (malformed base URL)
//
// Recoverable conditions (logged or surfaced in the UI, never fatal):
//   - Missing config or prefs files (defaults apply)
//   - Fetch failures (shown in the header, previous results kept)
//   - Corrupt favorites file (starts empty)
//   - Unwritable log file (diagnostics discarded)
//
// # Configuration
//
// The Options struct allows callers to customize:
//
//   - ConfigPath: Path to config.toml (default: ~/.config/larder/config.toml)
//   - PrefsPath: Path to prefs.toml (default: ~/.config/larder/prefs.toml)
//   - BaseURL: Override the Open Food Facts base URL from the command line
//
// # Design Rationale
//
// This package intentionally keeps orchestration logic minimal and
// focused. Business logic lives in domain packages (off, catalog,
// filter, favorites, ui). The app package simply connects these pieces
// with sensible defaults for the single-user, read-mostly explorer use
// case.
package app
