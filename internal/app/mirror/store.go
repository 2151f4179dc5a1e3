/*
Package mirror holds the local in-memory copy of the remote user list.

The mirror is replaced once at load time and thereafter mutated only by the
session workflows, and only after the corresponding remote call has succeeded.
It can go stale if the directory changes out-of-band; there is no subscription.
*/
package mirror

import (
	"sync"

	"userdeck/internal/app/user"
)

// Store is an ordered, mutex-guarded sequence of user records.
type Store struct {
	mu      sync.RWMutex
	records []user.Record
}

// NewStore returns an empty mirror.
func NewStore() *Store {
	return &Store{}
}

// Replace swaps the full contents of the mirror, preserving the given order.
func (s *Store) Replace(records []user.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make([]user.Record, len(records))
	copy(s.records, records)
}

// Append adds a record to the end of the mirror.
func (s *Store) Append(record user.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
}

// Remove deletes the record with the given id, if present. It reports whether
// a record was removed.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the record with the given id and whether it exists.
func (s *Store) Get(id string) (user.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}
	return user.Record{}, false
}

// Snapshot returns a copy of the current records in order.
func (s *Store) Snapshot() []user.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]user.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records currently mirrored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
