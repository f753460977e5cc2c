package models

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"
)

// Database wraps the bolthold store holding the enrichment cache
type Database struct {
	store *bolthold.Store
}

// NewDatabase creates a new database connection
func NewDatabase(path string) (*Database, error) {
	store, err := bolthold.Open(path, 0600, &bolthold.Options{
		Options: &bbolt.Options{
			Timeout: 1 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Database{store: store}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	return db.store.Close()
}

// GetCacheEntry retrieves the cache entry for a Media Key.
// A missing entry returns (nil, nil), not an error.
func (db *Database) GetCacheEntry(key MediaKey) (*CacheEntry, error) {
	var entry CacheEntry
	err := db.store.Get(key, &entry)
	if errors.Is(err, bolthold.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpsertCacheEntry inserts or replaces the entry for its Media Key. The
// whole read-union-write runs inside one bbolt write transaction so that
// concurrent callers cannot create duplicate entries: metadata and
// watermark are last-writer-wins, request-id sets are unioned.
func (db *Database) UpsertCacheEntry(entry *CacheEntry) error {
	key := entry.Key()
	return db.store.Bolt().Update(func(tx *bbolt.Tx) error {
		var existing CacheEntry
		err := db.store.TxGet(tx, key, &existing)
		if err == nil {
			entry.RequestIDs = unionIDs(existing.RequestIDs, entry.RequestIDs)
		} else if !errors.Is(err, bolthold.ErrNotFound) {
			return err
		}
		return db.store.TxUpsert(tx, key, entry)
	})
}

// TouchCacheEntry updates an existing entry's bookkeeping without touching
// its metadata: the observed request ids are unioned in and the watermark
// is bumped if the observed one is newer. Missing entries are left alone.
func (db *Database) TouchCacheEntry(key MediaKey, watermark time.Time, requestIDs []int) error {
	return db.store.Bolt().Update(func(tx *bbolt.Tx) error {
		var entry CacheEntry
		err := db.store.TxGet(tx, key, &entry)
		if errors.Is(err, bolthold.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		merged := unionIDs(entry.RequestIDs, requestIDs)
		bumped := watermark.After(entry.LastRequestUpdatedAt)
		if !bumped && len(merged) == len(entry.RequestIDs) {
			return nil
		}

		entry.RequestIDs = merged
		if bumped {
			entry.LastRequestUpdatedAt = watermark
		}
		return db.store.TxUpsert(tx, key, &entry)
	})
}

// CacheEntryCount returns the number of cached Media Keys
func (db *Database) CacheEntryCount() (int, error) {
	count, err := db.store.Count(&CacheEntry{}, nil)
	return count, err
}

func unionIDs(a, b []int) []int {
	seen := make(map[int]struct{}, len(a)+len(b))
	merged := make([]int, 0, len(a)+len(b))
	for _, id := range a {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			merged = append(merged, id)
		}
	}
	for _, id := range b {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			merged = append(merged, id)
		}
	}
	sort.Ints(merged)
	return merged
}
