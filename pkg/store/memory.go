package store

import (
	"context"
	"slices"
	"sync"

	"github.com/mhartmann/schemap/pkg/errors"
)

// MemoryStore keeps snapshots in process memory. Safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	snaps map[string]*Snapshot
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snaps: make(map[string]*Snapshot)}
}

// Put stores a snapshot.
func (s *MemoryStore) Put(ctx context.Context, snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[snap.ID] = snap
	return nil
}

// Get returns the snapshot with the given ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snaps[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeSnapshotNotFound, "snapshot %s", id)
	}
	return snap, nil
}

// List returns snapshot metadata, newest first.
func (s *MemoryStore) List(ctx context.Context) ([]*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Snapshot, 0, len(s.snaps))
	for _, snap := range s.snaps {
		out = append(out, &Snapshot{ID: snap.ID, Name: snap.Name, CreatedAt: snap.CreatedAt})
	}
	slices.SortFunc(out, func(a, b *Snapshot) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

// Delete removes a snapshot.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snaps, id)
	return nil
}

// Close does nothing for a memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }
