// Package repositories is the per-entity CRUD façade over the pluggable
// storage backends. A repository is constructed once per tenant with its
// backend already chosen; callers never see which physical store serves them.
package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/assetdesk/backend/internal/events"
	"github.com/assetdesk/backend/internal/storage"
)

// Repo carries the backend-agnostic operations shared by every entity
// repository. Entity-specific Add/Update/append methods live on the embedding
// repo types, where the audit trail is stamped.
type Repo[E storage.Entity] struct {
	store    storage.Store[E]
	tenantID string
	kind     string
	pub      events.Publisher
	log      *zap.Logger
}

func newRepo[E storage.Entity](store storage.Store[E], tenantID, kind string, pub events.Publisher, log *zap.Logger) Repo[E] {
	return Repo[E]{store: store, tenantID: tenantID, kind: kind, pub: pub, log: log}
}

func (r *Repo[E]) List(ctx context.Context) ([]E, error) {
	return r.store.List(ctx)
}

func (r *Repo[E]) Get(ctx context.Context, id uuid.UUID) (*E, error) {
	return r.store.Get(ctx, id)
}

// UpdateBatch applies the same partial field set to many entities. Field
// names are JSON field names; no audit entry is stamped for partial updates.
func (r *Repo[E]) UpdateBatch(ctx context.Context, ids []uuid.UUID, fields map[string]any) error {
	if err := r.store.UpdateBatch(ctx, ids, fields); err != nil {
		return err
	}
	for _, id := range ids {
		r.publish(ctx, events.EventEntityUpdated, id, "")
	}
	return nil
}

func (r *Repo[E]) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.store.Delete(ctx, id); err != nil {
		return err
	}
	r.publish(ctx, events.EventEntityDeleted, id, "")
	return nil
}

func (r *Repo[E]) DeleteBatch(ctx context.Context, ids []uuid.UUID) error {
	if err := r.store.DeleteBatch(ctx, ids); err != nil {
		return err
	}
	for _, id := range ids {
		r.publish(ctx, events.EventEntityDeleted, id, "")
	}
	return nil
}

// publish is best-effort: a failed event never fails the write it describes.
func (r *Repo[E]) publish(ctx context.Context, eventType string, id uuid.UUID, actor string) {
	if r.pub == nil {
		return
	}
	err := r.pub.Publish(ctx, events.Event{
		Type:     eventType,
		TenantID: r.tenantID,
		Kind:     r.kind,
		EntityID: id,
		Actor:    actor,
		At:       time.Now().UTC(),
	})
	if err != nil {
		r.log.Warn("event publish failed", zap.String("kind", r.kind), zap.Error(err))
	}
}
