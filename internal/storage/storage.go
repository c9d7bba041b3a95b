// Package storage defines the backend-agnostic persistence contract shared by
// the document and relational store implementations. Domain models always
// cross this boundary as structured values; any string-encoding of nested
// fields is an implementation detail of the relational adapter.
package storage

import (
	"context"

	"github.com/google/uuid"
)

// Entity is the minimal shape every persisted record exposes.
type Entity interface {
	EntityID() uuid.UUID
	Tenant() string
}

// Store is the CRUD contract one entity collection exposes, scoped to a single
// tenant. Implementations are chosen once at construction; callers never
// branch on the physical backend.
//
// Semantics differ deliberately between backends where the contract says so:
// Update on the document backend merges (fields absent from the supplied
// entity's JSON form are preserved), while the relational backend replaces the
// whole row. Batch operations on the document backend run as independent
// concurrent writes with no atomicity across items.
type Store[E Entity] interface {
	// List returns all entities of the tenant. A relational collection whose
	// table has not been provisioned yet yields an empty result, not an error.
	List(ctx context.Context) ([]E, error)

	// Get returns the entity with the given id, or ErrNotFound.
	Get(ctx context.Context, id uuid.UUID) (*E, error)

	// Add persists a new entity.
	Add(ctx context.Context, entity E) error

	// AddBatch persists many entities. Partial failure is possible; the
	// returned error joins the per-item failures without rolling back the
	// writes that succeeded.
	AddBatch(ctx context.Context, entities []E) error

	// Update writes the supplied entity back (merge or replace per backend).
	Update(ctx context.Context, entity E) error

	// UpdateBatch applies the same partial field set to many entities. Field
	// names are the JSON names of the entity's fields.
	UpdateBatch(ctx context.Context, ids []uuid.UUID, fields map[string]any) error

	// Delete removes the entity. Hard delete, no tombstone.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteBatch removes many entities, with AddBatch's partial-failure
	// semantics.
	DeleteBatch(ctx context.Context, ids []uuid.UUID) error
}
