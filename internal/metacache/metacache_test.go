package metacache

import (
	"path/filepath"
	"testing"
)

func TestKeyIsDeterministic(t *testing.T) {
	a := Key([]byte("module-a"), []byte("module-b"))
	b := Key([]byte("module-a"), []byte("module-b"))
	if a != b {
		t.Fatalf("Key is not deterministic: %q vs %q", a, b)
	}
	c := Key([]byte("module-a"), []byte("module-c"))
	if a == c {
		t.Fatalf("different inputs produced the same key")
	}
}

func TestStoreThenLookupRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.db")
	cache, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer cache.Close()

	key := Key([]byte("std::io"), []byte("std::random"))
	if _, found, err := cache.Lookup(key); err != nil || found {
		t.Fatalf("Lookup before Store = %v, %v", found, err)
	}

	if err := cache.Store(key, "functions=2 types=0"); err != nil {
		t.Fatalf("Store: %v", err)
	}

	meta, found, err := cache.Lookup(key)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !found || meta.Summary != "functions=2 types=0" {
		t.Fatalf("Lookup() = %+v, %v", meta, found)
	}
}

func TestCleanRemovesEveryEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.db")
	cache, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer cache.Close()

	key := Key([]byte("x"))
	if err := cache.Store(key, "x"); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := cache.Clean(); err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if _, found, _ := cache.Lookup(key); found {
		t.Fatalf("entry survived Clean")
	}
}
