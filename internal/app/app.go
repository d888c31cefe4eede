package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"larder/internal/catalog"
	"larder/internal/config"
	"larder/internal/favorites"
	"larder/internal/off"
	"larder/internal/prefs"
	"larder/internal/ui"
)

// Options configure the Larder application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/larder/prefs.toml
	BaseURL    string // overrides the configured API base URL
}

// Run boots the Larder TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	// The terminal belongs to the TUI, so diagnostics go to a file.
	closeLog := redirectLog(cfg.LogPath)
	defer closeLog()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	client, err := off.NewClient(cfg.BaseURL, cfg.PageSize)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	store := &catalog.Store{}
	favs := favorites.Open(cfg.FavoritesPath)

	uiOpts := ui.Options{
		Context:        ctx,
		Source:         client,
		Store:          store,
		Favorites:      favs,
		Debounce:       cfg.Debounce,
		ThemeName:      userPrefs.Theme,
		PrefsPath:      opts.PrefsPath,
		LastCategories: userPrefs.LastCategories,
	}
	return ui.Run(uiOpts)
}

// redirectLog sends the standard logger to the configured log file and
// returns a cleanup func. When the file cannot be opened the output is
// discarded instead; diagnostics must never write to the TUI's terminal.
func redirectLog(path string) func() {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(f)
	return func() { _ = f.Close() }
}
