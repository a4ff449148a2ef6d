// Package store persists named layout snapshots for the HTTP API.
//
// A snapshot bundles the input schema with the computed layout so a diagram
// can be reloaded exactly as it was. The layout engine itself never persists
// anything; this package is one of its callers.
//
// Two backends exist: an in-memory store for development and tests, and a
// MongoDB store for deployments that need snapshots to survive restarts.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mhartmann/schemap/pkg/layout"
	"github.com/mhartmann/schemap/pkg/schema"
)

// Snapshot is a saved diagram: the schema, the computed layout, and naming
// metadata.
type Snapshot struct {
	ID        string         `json:"id" bson:"_id"`
	Name      string         `json:"name,omitempty" bson:"name,omitempty"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
	Schema    *schema.Schema `json:"schema" bson:"schema"`
	Result    *layout.Result `json:"result" bson:"result"`
}

// NewSnapshot builds a snapshot with a fresh ID and the current time.
func NewSnapshot(name string, s *schema.Schema, r *layout.Result) *Snapshot {
	return &Snapshot{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Schema:    s,
		Result:    r,
	}
}

// Store is the snapshot persistence interface.
type Store interface {
	// Put stores a snapshot, replacing any existing one with the same ID.
	Put(ctx context.Context, snap *Snapshot) error
	// Get returns the snapshot with the given ID, or an error carrying
	// errors.ErrCodeSnapshotNotFound.
	Get(ctx context.Context, id string) (*Snapshot, error)
	// List returns all snapshots, newest first, without schema/result
	// payloads.
	List(ctx context.Context) ([]*Snapshot, error)
	// Delete removes a snapshot; deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error
	// Close releases backend resources.
	Close(ctx context.Context) error
}
