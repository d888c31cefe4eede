// Package config loads and parses the Larder configuration file.
//
// # Overview
//
// Larder is configured through a single optional TOML file. The config
// controls where the app talks to (the Open Food Facts base URL), how it
// pages and debounces, and where its local data lives. Every field has a
// sensible default, so the app works with no config file at all.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/larder/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/larder/config.toml
//   - API base URL: https://world.openfoodfacts.org
//   - Page size: 24 products per fetch
//   - Search debounce: 500 ms
//   - Favorites file: ~/.local/share/larder/favorites.json
//   - Log file: ~/.local/share/larder/larder.log
//
// # TOML Format
//
// Example config.toml:
//
//	base_url = "https://world.openfoodfacts.org"
//	page_size = 24
//	debounce_ms = 500
//	favorites_path = "~/.local/share/larder/favorites.json"
//	log_path = "~/.local/share/larder/larder.log"
//
// All fields are optional. Zero or negative page_size and debounce_ms
// values are treated as unset and keep their defaults.
//
// # Path Expansion
//
// The package handles several path formats:
//
//   - Absolute paths: Used as-is ("/var/lib/larder/favorites.json")
//   - Tilde paths: Expanded to home directory ("~/.config/larder")
//   - Relative paths: Converted to absolute based on current directory
//
// Path expansion is performed for the config file location and for the
// favorites_path and log_path fields.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//
// Missing config files are NOT an error - defaults are used instead.
// This allows Larder to work out-of-the-box without configuration.
//
// # Usage Example
//
//	// Use default config path
//	cfg, err := config.Load("")
//	if err != nil {
//		return fmt.Errorf("load config: %w", err)
//	}
//
//	// Use explicit config path
//	cfg, err := config.Load("/etc/larder/config.toml")
//	if err != nil {
//		return fmt.Errorf("load config: %w", err)
//	}
//
//	// Access configuration
//	client, err := off.NewClient(cfg.BaseURL, cfg.PageSize)
//	favs := favorites.Open(cfg.FavoritesPath)
//
// # Design Philosophy
//
// This package follows the principle of sensible defaults. Larder talks
// to the public Open Food Facts instance and stores its data under the
// user's home directory without requiring any configuration file to
// exist; the file only overrides what the user wants changed.
//
// The config package is read-only and stateless - it loads configuration
// once at startup and returns an immutable Config struct. No global state
// or singleton patterns are used.
//
// # Testing Considerations
//
// When testing code that uses this package:
//   - Provide explicit config paths to avoid dependency on user's home directory
//   - Use Config struct directly rather than Load() for unit tests
//   - Test path expansion edge cases (missing home dir, relative paths)
package config
