// Package store owns the application state: every entity collection plus
// settings. All mutations go through typed methods that hold a single write
// lock, so the logical model stays single-writer even under a concurrent
// HTTP surface. Reads hand out deep-copied snapshots.
package store

import (
	"context"
	"sync"

	"github.com/mehdi559/poe/internal/model"
)

// Persister saves and loads full ledger snapshots. The store does not care
// which backend sits behind it.
type Persister interface {
	Load(ctx context.Context) (*model.Ledger, error)
	Save(ctx context.Context, ledger model.Ledger) error
}

// Store is the canonical owner of the ledger.
type Store struct {
	mu       sync.RWMutex
	ledger   *model.Ledger
	onChange func(model.Ledger)
}

// New creates a store seeded with the given ledger. A nil ledger starts from
// the default state.
func New(ledger *model.Ledger) *Store {
	if ledger == nil {
		ledger = model.DefaultLedger()
	}
	return &Store{ledger: ledger}
}

// Subscribe registers a callback invoked with a deep-copied snapshot after
// every successful mutation. Only one subscriber is supported; the last
// registration wins.
func (s *Store) Subscribe(fn func(model.Ledger)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Snapshot returns a deep copy of the current state, safe for the
// computation layer to read while mutations continue.
func (s *Store) Snapshot() *model.Ledger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Clone()
}

// mutate runs fn under the write lock. If fn returns an error the state is
// assumed untouched and the subscriber is not notified.
func (s *Store) mutate(fn func(l *model.Ledger) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.ledger); err != nil {
		return err
	}

	if s.onChange != nil {
		s.onChange(*s.ledger.Clone())
	}
	return nil
}

// ReplaceAll swaps in a complete new ledger. Used by import; all-or-nothing.
func (s *Store) ReplaceAll(ledger *model.Ledger) {
	_ = s.mutate(func(l *model.Ledger) error {
		*l = *ledger.Clone()
		return nil
	})
}

// Reset restores the default state, discarding all data.
func (s *Store) Reset() {
	_ = s.mutate(func(l *model.Ledger) error {
		*l = *model.DefaultLedger()
		return nil
	})
}

// UpdateSettings applies the given settings.
func (s *Store) UpdateSettings(settings model.Settings) {
	_ = s.mutate(func(l *model.Ledger) error {
		l.Settings = settings
		return nil
	})
}
