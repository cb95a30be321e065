package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/gridview/internal/dataset"
	"github.com/five82/gridview/internal/grid"
)

// Snapshot is the latest dataset available to the UI.
type Snapshot struct {
	Records             []grid.Record
	Source              string // file path, empty for the demo dataset
	Fingerprint         dataset.Fingerprint
	Version             uint64 // increments on every successful load
	LastLoaded          time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsStale returns true when reloading has failed more than once in a row.
func (s Snapshot) IsStale() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates the reloader goroutine and the UI.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// SetSource records where the dataset comes from.
func (s *Store) SetSource(source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Source = source
}

// Update replaces the stored records. When err is non-nil the previous
// records are kept and the error is recorded.
func (s *Store) Update(records []grid.Record, fp dataset.Fingerprint, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Records = cloneRecords(records)
	s.snapshot.Fingerprint = fp
	s.snapshot.Version++
	s.snapshot.LastLoaded = time.Now()
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot. Records themselves are
// shared; they are never modified after loading.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Records = cloneRecords(s.snapshot.Records)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneRecords(records []grid.Record) []grid.Record {
	if len(records) == 0 {
		return nil
	}
	dup := make([]grid.Record, len(records))
	copy(dup, records)
	return dup
}

// Fingerprint returns the fingerprint of the last successful load.
func (s *Store) Fingerprint() dataset.Fingerprint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Fingerprint
}

// Recover clears the error state after the source turned out to be
// unchanged since the last good load.
func (s *Store) Recover() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}
