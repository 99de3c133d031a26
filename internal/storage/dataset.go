// Package storage holds the in-memory dataset snapshot and the PostgreSQL
// dataset loader. Computation never reads a mutating dataset: replacements
// swap in a whole new immutable snapshot.
package storage

import (
	"sync/atomic"
	"time"

	"github.com/BrandonCANalytics/burritoShackAnalytics/internal/domain"
)

// Snapshot is one immutable version of the loaded dataset. The record slice
// must not be mutated after the snapshot is published.
type Snapshot struct {
	Records  []domain.Record
	Source   string
	LoadedAt time.Time
}

// DatasetStore publishes dataset snapshots to concurrent readers. Readers
// always observe a complete snapshot; Replace swaps atomically.
type DatasetStore struct {
	snap atomic.Pointer[Snapshot]
}

// NewDatasetStore creates a store holding an empty snapshot.
func NewDatasetStore() *DatasetStore {
	s := &DatasetStore{}
	s.snap.Store(&Snapshot{})
	return s
}

// Replace publishes a new snapshot.
func (s *DatasetStore) Replace(snap *Snapshot) {
	s.snap.Store(snap)
}

// Snapshot returns the current snapshot. Never nil.
func (s *DatasetStore) Snapshot() *Snapshot {
	return s.snap.Load()
}

// Len returns the record count of the current snapshot.
func (s *DatasetStore) Len() int {
	return len(s.Snapshot().Records)
}
