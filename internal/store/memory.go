// internal/store/memory.go
//
// In-memory implementation of the Store interface for live rounds.
//
// Characteristics:
//   - Stores *game.Round objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Rounds whose deadline is more than the retention window ago are pruned
//     on Save, whether or not they were finished.
//   - State is lost when the process restarts; finished rounds are also
//     written to SQLite by the HTTP layer.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/boggle/internal/game"
)

// ErrNotFound is returned by Get for unknown round IDs.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for live rounds.
type Store interface {
	// Save persists or updates a round.
	Save(ctx context.Context, r *game.Round) error

	// Get retrieves a round by ID.
	Get(ctx context.Context, id string) (*game.Round, error)

	// Len reports how many rounds are held.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu        sync.RWMutex           // guards rounds
	rounds    map[string]*game.Round // keyed by Round.ID
	retention time.Duration          // how long past its deadline a round is kept
	now       func() time.Time
}

// NewMemoryStore constructs an in-memory Store. Rounds are dropped once they
// are more than retention past their deadline; zero keeps them forever.
func NewMemoryStore(retention time.Duration) Store {
	return &memory{rounds: make(map[string]*game.Round), retention: retention, now: time.Now}
}

// Save adds or updates the round in the map.
func (m *memory) Save(ctx context.Context, r *game.Round) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rounds[r.ID] = r
	m.pruneLocked()
	return nil
}

// Get looks up a round by ID.
func (m *memory) Get(ctx context.Context, id string) (*game.Round, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.rounds[id]; ok {
		return r, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rounds)
}

func (m *memory) pruneLocked() {
	if m.retention <= 0 {
		return
	}
	cutoff := m.now().Add(-m.retention)
	for id, r := range m.rounds {
		if r.Deadline.Before(cutoff) {
			delete(m.rounds, id)
		}
	}
}
