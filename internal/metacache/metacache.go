// Package metacache persists a content-hash-keyed cache of completed
// Context installations, so a host that repeatedly boots the same
// standard-library Context (a language server restarting per workspace, a
// REPL reloading the same stdlib modules) can skip re-running Install for
// a module set it has already seen. This mirrors the teacher's
// internal/ext.Cache, which skips a redundant `go build` of a host binary
// by keying on a sha256 of funxy.yaml plus target platform; here the key
// is a hash of the installed modules' own content, and the cached payload
// is a Context's metadata summary rather than a binary.
package metacache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Meta is the cached shape of one completed Install: enough to tell a host
// "nothing has changed, skip re-installing" without re-walking every
// Module.
type Meta struct {
	Key         string
	Summary     string // Context.DebugSummary() at install time
	InstalledAt time.Time
}

// Cache wraps a SQLite-backed table of installed Context metadata.
type Cache struct {
	db *sql.DB
}

// Open opens (creating if necessary) a metadata cache at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("metacache: opening %s: %w", path, err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS context_meta (
	key TEXT PRIMARY KEY,
	summary TEXT NOT NULL,
	installed_at INTEGER NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("metacache: creating schema: %w", err)
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error { return c.db.Close() }

// Key computes the cache key for a set of module content blobs: a plain
// sha256 over their concatenation, the same "hash the inputs, reuse the
// hash as a filename/lookup key" shape as the teacher's own Cache.
func Key(moduleContents ...[]byte) string {
	h := sha256.New()
	for _, c := range moduleContents {
		h.Write(c)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Lookup returns the cached Meta for key, if present.
func (c *Cache) Lookup(key string) (*Meta, bool, error) {
	row := c.db.QueryRow(`SELECT summary, installed_at FROM context_meta WHERE key = ?`, key)
	var summary string
	var installedAtUnix int64
	if err := row.Scan(&summary, &installedAtUnix); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("metacache: lookup %s: %w", key, err)
	}
	return &Meta{Key: key, Summary: summary, InstalledAt: time.Unix(installedAtUnix, 0)}, true, nil
}

// Store records a completed installation's metadata under key, overwriting
// any previous entry for the same key.
func (c *Cache) Store(key, summary string) error {
	_, err := c.db.Exec(
		`INSERT INTO context_meta (key, summary, installed_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET summary = excluded.summary, installed_at = excluded.installed_at`,
		key, summary, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("metacache: storing %s: %w", key, err)
	}
	return nil
}

// Clean removes every cached entry, mirroring the teacher's Cache.Clean.
func (c *Cache) Clean() error {
	_, err := c.db.Exec(`DELETE FROM context_meta`)
	return err
}
