// Package favorites persists the user's favorite products as a JSON array
// on disk. The in-memory set is authoritative for the session: mutations
// apply immediately and the rewrite of the backing file is best-effort:
// a persistence failure is logged, never surfaced, and never rolls back
// the mutation. Corrupt or unreadable stored data loads as an empty list.
package favorites

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"larder/internal/off"
)

const defaultStorePath = "~/.local/share/larder/favorites.json"

// DefaultPath returns the default favorites file path.
func DefaultPath() string {
	return defaultStorePath
}

// Store is the persisted favorite-product set, keyed by product key.
type Store struct {
	mu    sync.Mutex
	path  string
	items []off.Product
}

// Open loads the favorites file at path (empty uses the default). Missing
// or unreadable data degrades to an empty set; Open never fails.
func Open(path string) *Store {
	s := &Store{}

	resolved, err := resolvePath(path)
	if err != nil {
		return s
	}
	s.path = resolved

	raw, err := os.ReadFile(resolved)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("favorites: read %s: %v", resolved, err)
		}
		return s
	}
	var items []off.Product
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Printf("favorites: corrupt store at %s, starting empty: %v", resolved, err)
		return s
	}
	s.items = items
	return s
}

// Add inserts p unless a product with the same key is already present.
// It reports whether the set changed.
func (s *Store) Add(p off.Product) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(p.Key()) >= 0 {
		return false
	}
	s.items = append(s.items, p)
	s.persist()
	return true
}

// Remove deletes the product with the given key, reporting whether it was
// present.
func (s *Store) Remove(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(key)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.persist()
	return true
}

// Toggle adds p when absent and removes it when present, reporting whether
// p is a favorite afterwards.
func (s *Store) Toggle(p off.Product) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(p.Key()); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
		s.persist()
		return false
	}
	s.items = append(s.items, p)
	s.persist()
	return true
}

// Contains reports membership by product key.
func (s *Store) Contains(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(key) >= 0
}

// List returns the favorites in insertion order.
func (s *Store) List() []off.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	dup := make([]off.Product, len(s.items))
	copy(dup, s.items)
	return dup
}

// Len returns the number of favorites.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) indexOf(key string) int {
	for i, p := range s.items {
		if p.Key() == key {
			return i
		}
	}
	return -1
}

// persist rewrites the backing file. Callers hold the lock.
func (s *Store) persist() {
	if s.path == "" {
		return
	}
	raw, err := json.Marshal(s.items)
	if err != nil {
		log.Printf("favorites: marshal: %v", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		log.Printf("favorites: create dir: %v", err)
		return
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		log.Printf("favorites: write %s: %v", s.path, err)
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultStorePath
	}
	return expandPath(path)
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
