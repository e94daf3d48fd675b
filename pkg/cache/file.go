package cache

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileCache keeps one JSON file per entry under dir/<hh>/<hash>.json,
// where hh is the first byte of the key hash in hex.
type FileCache struct {
	dir string
}

// NewFileCache opens or creates a file cache rooted at dir.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

type fileEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

func (e fileEntry) live(now time.Time) bool {
	return e.ExpiresAt.IsZero() || !now.After(e.ExpiresAt)
}

// Dir returns the cache root.
func (c *FileCache) Dir() string { return c.dir }

// readEntry loads the entry at path. ok is false when the file holds
// no decodable entry.
func readEntry(path string) (e fileEntry, ok bool, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return e, false, err
	}
	return e, json.Unmarshal(raw, &e) == nil, nil
}

func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	e, ok, err := readEntry(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	case !ok || !e.live(time.Now()):
		_ = os.Remove(path)
		return nil, false, nil
	}
	return e.Data, true, nil
}

// Set writes the entry to a temporary file and renames it into place, so
// concurrent readers never see a partial entry.
func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	e := fileEntry{Data: data}
	if ttl > 0 {
		e.ExpiresAt = time.Now().Add(ttl)
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".entry-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (c *FileCache) Delete(_ context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Prune removes expired and undecodable entries.
func (c *FileCache) Prune(ctx context.Context) (int, error) {
	now := time.Now()
	return c.removeWhere(ctx, func(path string) bool {
		e, ok, err := readEntry(path)
		return err == nil && (!ok || !e.live(now))
	})
}

// Clear removes every entry along with the emptied shard directories.
func (c *FileCache) Clear(ctx context.Context) (int, error) {
	n, err := c.removeWhere(ctx, func(string) bool { return true })
	if err != nil {
		return n, err
	}
	shards, err := os.ReadDir(c.dir)
	if err != nil {
		return n, err
	}
	for _, s := range shards {
		if s.IsDir() {
			_ = os.Remove(filepath.Join(c.dir, s.Name()))
		}
	}
	return n, nil
}

// removeWhere deletes the entry files matching pred. Unreadable
// directories are skipped.
func (c *FileCache) removeWhere(ctx context.Context, pred func(path string) bool) (int, error) {
	removed := 0
	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		switch {
		case err != nil:
			return nil
		case ctx.Err() != nil:
			return ctx.Err()
		case d.IsDir() || filepath.Ext(path) != ".json":
			return nil
		}
		if pred(path) && os.Remove(path) == nil {
			removed++
		}
		return nil
	})
	return removed, err
}

func (c *FileCache) Close() error { return nil }

func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+".json")
}

var (
	_ Cache  = (*FileCache)(nil)
	_ Pruner = (*FileCache)(nil)
)
