// Package cache persists picker lists between invocations, one flat text
// file per mode, one entry per line. A file is served only while it is
// younger than the TTL and younger than MPD's last database update.
package cache

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

const appName = "fzmp"

type Cache struct {
	dir string
	ttl time.Duration
}

// Open returns a cache rooted at the XDG cache directory
// ($XDG_CACHE_HOME/fzmp, with the usual HOME fallback).
func Open(ttl time.Duration) *Cache {
	return New(filepath.Join(xdg.CacheHome, appName), ttl)
}

// New returns a cache rooted at dir. The directory is created on first
// write.
func New(dir string, ttl time.Duration) *Cache {
	return &Cache{dir: dir, ttl: ttl}
}

// Get returns the cached entries for mode along with the file's write
// time. A missing, expired, or superseded file (older than dbUpdated)
// reports a miss so the caller re-queries.
func (c *Cache) Get(mode string, dbUpdated time.Time) ([]string, time.Time, bool) {
	path := c.path(mode)

	info, err := os.Stat(path)
	if err != nil {
		return nil, time.Time{}, false
	}
	if c.expired(info.ModTime(), dbUpdated) {
		return nil, info.ModTime(), false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, info.ModTime(), false
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil, info.ModTime(), false
	}
	return lines, info.ModTime(), true
}

// Put writes the entries for mode, replacing any previous file.
func (c *Cache) Put(mode string, entries []string) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}

	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e)
		b.WriteByte('\n')
	}
	return os.WriteFile(c.path(mode), []byte(b.String()), 0o644)
}

// Clear removes every mode file.
func (c *Cache) Clear() error {
	dirents, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, d := range dirents {
		if d.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, d.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

func (c *Cache) path(mode string) string {
	return filepath.Join(c.dir, mode)
}

// expired reports whether a file written at mtime is no longer usable.
// Either clock can invalidate it: the TTL elapsing, or the MPD database
// being updated after the file was written.
func (c *Cache) expired(mtime, dbUpdated time.Time) bool {
	if time.Since(mtime) > c.ttl {
		return true
	}
	return !dbUpdated.IsZero() && mtime.Before(dbUpdated)
}
