// Package snapshot persists the single last-known roster grid between diff
// cycles. Exactly one snapshot is retained: Replace overwrites, nothing is
// versioned. The store is the only shared mutable state in the system, so
// it is an explicit object injected into the watch loop rather than a
// package-level variable.
package snapshot

import (
	"context"
	"sync"

	"github.com/St3r30X/any-bot/grid"
)

// Store holds exactly one previous grid snapshot.
//
// Load returns a nil grid and no error when nothing has been stored yet
// (first run). Replace overwrites the stored value atomically; a failed
// Replace leaves the previous value intact.
type Store interface {
	Load(ctx context.Context) (grid.Grid, error)
	Replace(ctx context.Context, g grid.Grid) error
}

// Memory is an in-process Store used by tests and one-shot runs.
type Memory struct {
	mu   sync.Mutex
	grid grid.Grid
	set  bool
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Load(ctx context.Context) (grid.Grid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return nil, nil
	}
	return m.grid, nil
}

func (m *Memory) Replace(ctx context.Context, g grid.Grid) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.grid = g
	m.set = true
	return nil
}
