package favorites

import (
	"os"
	"path/filepath"
	"testing"

	"larder/internal/off"
)

func TestStore_RoundTripThroughDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.json")

	s := Open(path)
	p := off.Product{ID: "3088543506255", ProductName: "Skyr", NutriscoreGrade: "a"}
	if !s.Add(p) {
		t.Fatal("Add returned false for a new product")
	}
	if s.Add(p) {
		t.Fatal("Add returned true for a duplicate")
	}

	reloaded := Open(path)
	if !reloaded.Contains("3088543506255") {
		t.Fatal("persisted favorite missing after reload")
	}
	got := reloaded.List()
	if len(got) != 1 || got[0].ProductName != "Skyr" {
		t.Fatalf("List = %#v, want the persisted product", got)
	}

	if !reloaded.Remove("3088543506255") {
		t.Fatal("Remove returned false for a present product")
	}
	if Open(path).Contains("3088543506255") {
		t.Fatal("removed favorite still present after reload")
	}
}

func TestStore_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.json")
	if err := os.WriteFile(path, []byte(`{"not":"an array`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s := Open(path)
	if s.Len() != 0 {
		t.Fatalf("Len = %d, want 0 for corrupt data", s.Len())
	}

	// The store stays usable and overwrites the corrupt file.
	s.Add(off.Product{ID: "1"})
	if !Open(path).Contains("1") {
		t.Fatal("store did not recover after corrupt load")
	}
}

func TestStore_MissingFileStartsEmpty(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "nope", "favorites.json"))
	if s.Len() != 0 {
		t.Fatalf("Len = %d, want 0", s.Len())
	}
}

func TestStore_PersistFailureKeepsMemoryAuthoritative(t *testing.T) {
	dir := t.TempDir()
	// Make the parent path a file so MkdirAll/WriteFile must fail.
	blocker := filepath.Join(dir, "blocked")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s := Open(filepath.Join(blocker, "favorites.json"))
	if !s.Add(off.Product{ID: "1"}) {
		t.Fatal("Add failed; persistence problems must not block the mutation")
	}
	if !s.Contains("1") {
		t.Fatal("in-memory state lost after persistence failure")
	}
}

func TestStore_Toggle(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "favorites.json"))
	p := off.Product{Code: "12345678"}

	if !s.Toggle(p) {
		t.Fatal("first Toggle should add")
	}
	if s.Toggle(p) {
		t.Fatal("second Toggle should remove")
	}
	if s.Len() != 0 {
		t.Fatalf("Len = %d, want 0 after toggle off", s.Len())
	}
}

func TestDefaultPath(t *testing.T) {
	if DefaultPath() == "" {
		t.Fatal("DefaultPath returned empty string")
	}
}
