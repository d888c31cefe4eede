package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields Larder reads from its config file.
type Config struct {
	BaseURL       string
	PageSize      int
	Debounce      time.Duration
	FavoritesPath string
	LogPath       string
}

const (
	defaultConfigPath    = "~/.config/larder/config.toml"
	defaultBaseURL       = "https://world.openfoodfacts.org"
	defaultPageSize      = 24
	defaultDebounceMS    = 500
	defaultFavoritesPath = "~/.local/share/larder/favorites.json"
	defaultLogPath       = "~/.local/share/larder/larder.log"
)

// Load locates and parses the Larder config, falling back to defaults when
// the file is missing or a field is unset.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL       string `toml:"base_url"`
		PageSize      int    `toml:"page_size"`
		DebounceMS    int    `toml:"debounce_ms"`
		FavoritesPath string `toml:"favorites_path"`
		LogPath       string `toml:"log_path"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.BaseURL); v != "" {
		cfg.BaseURL = v
	}
	if raw.PageSize > 0 {
		cfg.PageSize = raw.PageSize
	}
	if raw.DebounceMS > 0 {
		cfg.Debounce = time.Duration(raw.DebounceMS) * time.Millisecond
	}
	if v := strings.TrimSpace(raw.FavoritesPath); v != "" {
		cfg.FavoritesPath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogPath); v != "" {
		cfg.LogPath = mustExpand(v)
	}

	return cfg, nil
}

func defaults() Config {
	return Config{
		BaseURL:       defaultBaseURL,
		PageSize:      defaultPageSize,
		Debounce:      defaultDebounceMS * time.Millisecond,
		FavoritesPath: mustExpand(defaultFavoritesPath),
		LogPath:       mustExpand(defaultLogPath),
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
