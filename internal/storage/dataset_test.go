package storage_test

import (
	"testing"
	"time"

	"github.com/BrandonCANalytics/burritoShackAnalytics/internal/domain"
	"github.com/BrandonCANalytics/burritoShackAnalytics/internal/storage"
)

func TestDatasetStore_StartsEmpty(t *testing.T) {
	store := storage.NewDatasetStore()

	snap := store.Snapshot()
	if snap == nil {
		t.Fatal("expected non-nil snapshot from a fresh store")
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d records", store.Len())
	}
}

func TestDatasetStore_ReplaceSwapsSnapshot(t *testing.T) {
	store := storage.NewDatasetStore()

	old := store.Snapshot()
	store.Replace(&storage.Snapshot{
		Records: []domain.Record{
			{Date: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), City: "Austin", State: "TX"},
		},
		Source:   "test",
		LoadedAt: time.Now(),
	})

	if store.Len() != 1 {
		t.Fatalf("expected 1 record after replace, got %d", store.Len())
	}
	if store.Snapshot() == old {
		t.Fatal("expected a new snapshot pointer after replace")
	}
	// The old snapshot stays intact for readers holding it.
	if len(old.Records) != 0 {
		t.Fatalf("old snapshot mutated: %d records", len(old.Records))
	}
}
