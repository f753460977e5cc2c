package models

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGetCacheEntryMissing(t *testing.T) {
	db := openTestDatabase(t)

	entry, err := db.GetCacheEntry(MediaKey{TmdbID: 42, MediaType: MediaTypeTV})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if entry != nil {
		t.Errorf("Expected nil entry for missing key, got %+v", entry)
	}
}

func TestUpsertCacheEntryCreatesAndUpdates(t *testing.T) {
	db := openTestDatabase(t)
	key := MediaKey{TmdbID: 42, MediaType: MediaTypeTV}

	t1 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	first := &CacheEntry{
		TmdbID:               42,
		MediaType:            MediaTypeTV,
		Details:              MediaDetails{Name: "Test Show"},
		LastFetchedAt:        t1,
		LastRequestUpdatedAt: t1,
		RequestIDs:           []int{1, 2},
	}
	if err := db.UpsertCacheEntry(first); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	t2 := t1.Add(time.Hour)
	second := &CacheEntry{
		TmdbID:               42,
		MediaType:            MediaTypeTV,
		Details:              MediaDetails{Name: "Test Show Renamed"},
		LastFetchedAt:        t2,
		LastRequestUpdatedAt: t2,
		RequestIDs:           []int{2, 3},
	}
	if err := db.UpsertCacheEntry(second); err != nil {
		t.Fatalf("Second upsert failed: %v", err)
	}

	entry, err := db.GetCacheEntry(key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if entry == nil {
		t.Fatal("Expected entry after upsert")
	}
	if entry.Details.Name != "Test Show Renamed" {
		t.Errorf("Metadata should be last-writer-wins, got %q", entry.Details.Name)
	}
	if !entry.LastRequestUpdatedAt.Equal(t2) {
		t.Errorf("Watermark mismatch: %v", entry.LastRequestUpdatedAt)
	}
	if len(entry.RequestIDs) != 3 {
		t.Fatalf("Request ids should be unioned, got %v", entry.RequestIDs)
	}
	for i, want := range []int{1, 2, 3} {
		if entry.RequestIDs[i] != want {
			t.Errorf("RequestIDs[%d] = %d, want %d", i, entry.RequestIDs[i], want)
		}
	}

	count, err := db.CacheEntryCount()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected exactly one entry per key, got %d", count)
	}
}

func TestTouchCacheEntry(t *testing.T) {
	db := openTestDatabase(t)
	key := MediaKey{TmdbID: 7, MediaType: MediaTypeMovie}

	t1 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	if err := db.UpsertCacheEntry(&CacheEntry{
		TmdbID:               7,
		MediaType:            MediaTypeMovie,
		Details:              MediaDetails{Title: "Test Movie"},
		LastFetchedAt:        t1,
		LastRequestUpdatedAt: t1,
		RequestIDs:           []int{10},
	}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	t2 := t1.Add(30 * time.Minute)
	if err := db.TouchCacheEntry(key, t2, []int{10, 11}); err != nil {
		t.Fatalf("Touch failed: %v", err)
	}

	entry, err := db.GetCacheEntry(key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if entry.Details.Title != "Test Movie" {
		t.Errorf("Touch must preserve metadata, got %q", entry.Details.Title)
	}
	if !entry.LastRequestUpdatedAt.Equal(t2) {
		t.Errorf("Touch should bump watermark, got %v", entry.LastRequestUpdatedAt)
	}
	if !entry.LastFetchedAt.Equal(t1) {
		t.Errorf("Touch must not change last fetch time, got %v", entry.LastFetchedAt)
	}
	if len(entry.RequestIDs) != 2 {
		t.Errorf("Touch should union ids, got %v", entry.RequestIDs)
	}

	// An older watermark never moves the entry backwards
	if err := db.TouchCacheEntry(key, t1, []int{10}); err != nil {
		t.Fatalf("Touch failed: %v", err)
	}
	entry, _ = db.GetCacheEntry(key)
	if !entry.LastRequestUpdatedAt.Equal(t2) {
		t.Errorf("Watermark regressed to %v", entry.LastRequestUpdatedAt)
	}
}

func TestTouchMissingEntryIsNoop(t *testing.T) {
	db := openTestDatabase(t)

	key := MediaKey{TmdbID: 99, MediaType: MediaTypeTV}
	if err := db.TouchCacheEntry(key, time.Now(), []int{1}); err != nil {
		t.Fatalf("Touch of missing entry should not fail: %v", err)
	}
	entry, err := db.GetCacheEntry(key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if entry != nil {
		t.Errorf("Touch must not create entries, got %+v", entry)
	}
}
