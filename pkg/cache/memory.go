package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tidwall/buntdb"
)

// MemoryCache keeps entries in an in-process buntdb database. Expiry is
// handled by buntdb itself.
type MemoryCache struct {
	db *buntdb.DB
}

// NewMemoryCache opens an in-memory cache.
func NewMemoryCache() (*MemoryCache, error) {
	db, err := buntdb.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("open buntdb: %w", err)
	}
	if err := db.SetConfig(buntdb.Config{SyncPolicy: buntdb.Never}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure buntdb: %w", err)
	}
	return &MemoryCache{db: db}, nil
}

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	var val string
	err := c.db.View(func(tx *buntdb.Tx) error {
		var err error
		val, err = tx.Get(key)
		return err
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(val), true, nil
}

// Set stores a value in the cache.
func (c *MemoryCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	var opts *buntdb.SetOptions
	if ttl > 0 {
		opts = &buntdb.SetOptions{Expires: true, TTL: ttl}
	}
	return c.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(key, string(data), opts)
		return err
	})
}

// Delete removes a value from the cache.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	err := c.db.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(key)
		return err
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return nil
	}
	return err
}

// Len returns the number of live entries.
func (c *MemoryCache) Len() int {
	n := 0
	_ = c.db.View(func(tx *buntdb.Tx) error {
		var err error
		n, err = tx.Len()
		return err
	})
	return n
}

// Close releases the database.
func (c *MemoryCache) Close() error {
	return c.db.Close()
}

var _ Cache = (*MemoryCache)(nil)
