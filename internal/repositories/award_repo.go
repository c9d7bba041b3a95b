package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/assetdesk/backend/internal/events"
	"github.com/assetdesk/backend/internal/models"
	"github.com/assetdesk/backend/internal/storage"
)

// AwardActions flip the lock flag on an award, recording the change in its
// audit log.
type AwardActions interface {
	Lock(ctx context.Context, id uuid.UUID, actor string) error
	Unlock(ctx context.Context, id uuid.UUID, actor string) error
}

type AwardRepo struct {
	Repo[models.Award]
	actions AwardActions
}

func NewAwardRepo(store storage.Store[models.Award], actions AwardActions, tenantID string, pub events.Publisher, log *zap.Logger) *AwardRepo {
	return &AwardRepo{
		Repo:    newRepo(store, tenantID, "awards", pub, log),
		actions: actions,
	}
}

func (r *AwardRepo) Add(ctx context.Context, a *models.Award, actor string) error {
	stampNew(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	a.IsLocked = false
	a.AuditLog = append(a.AuditLog, models.NewAuditEntry(models.AuditActionCreated, actor, ""))

	if err := r.store.Add(ctx, *a); err != nil {
		return err
	}
	r.publish(ctx, events.EventEntityCreated, a.ID, actor)
	return nil
}

func (r *AwardRepo) AddBatch(ctx context.Context, awards []models.Award, actor string) error {
	for i := range awards {
		stampNew(&awards[i].ID, &awards[i].CreatedAt, &awards[i].UpdatedAt)
		awards[i].IsLocked = false
		awards[i].AuditLog = append(awards[i].AuditLog, models.NewAuditEntry(models.AuditActionCreated, actor, ""))
	}
	if err := r.store.AddBatch(ctx, awards); err != nil {
		return err
	}
	for i := range awards {
		r.publish(ctx, events.EventEntityCreated, awards[i].ID, actor)
	}
	return nil
}

// Update rejects writes to a locked award with ErrLocked. The relational
// backend guards the row again server-side; the check here covers the
// document backend and fails fast for both.
func (r *AwardRepo) Update(ctx context.Context, a *models.Award, actor string) error {
	current, err := r.store.Get(ctx, a.ID)
	if err != nil {
		return err
	}
	if current.IsLocked {
		return storage.ErrLocked
	}
	a.IsLocked = false
	a.UpdatedAt = time.Now().UTC()
	a.AuditLog = append(a.AuditLog, models.NewAuditEntry(models.AuditActionUpdated, actor, ""))

	if err := r.store.Update(ctx, *a); err != nil {
		return err
	}
	r.publish(ctx, events.EventEntityUpdated, a.ID, actor)
	return nil
}

// UpdateBatch refuses partial updates that touch a locked award, and never
// lets the lock flag itself change outside Lock/Unlock.
func (r *AwardRepo) UpdateBatch(ctx context.Context, ids []uuid.UUID, fields map[string]any) error {
	if _, ok := fields["is_locked"]; ok {
		return fmt.Errorf("is_locked only changes through lock and unlock")
	}
	for _, id := range ids {
		current, err := r.store.Get(ctx, id)
		if err != nil {
			return err
		}
		if current.IsLocked {
			return fmt.Errorf("award %s: %w", id, storage.ErrLocked)
		}
	}
	return r.Repo.UpdateBatch(ctx, ids, fields)
}

// Delete refuses to remove a locked award.
func (r *AwardRepo) Delete(ctx context.Context, id uuid.UUID) error {
	current, err := r.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.IsLocked {
		return storage.ErrLocked
	}
	return r.Repo.Delete(ctx, id)
}

// DeleteBatch checks every target's lock before anything is removed.
func (r *AwardRepo) DeleteBatch(ctx context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		current, err := r.store.Get(ctx, id)
		if err != nil {
			return err
		}
		if current.IsLocked {
			return fmt.Errorf("award %s: %w", id, storage.ErrLocked)
		}
	}
	return r.Repo.DeleteBatch(ctx, ids)
}

func (r *AwardRepo) Lock(ctx context.Context, id uuid.UUID, actor string) error {
	if err := r.actions.Lock(ctx, id, actor); err != nil {
		return err
	}
	r.publish(ctx, events.EventLogAppended, id, actor)
	return nil
}

func (r *AwardRepo) Unlock(ctx context.Context, id uuid.UUID, actor string) error {
	if err := r.actions.Unlock(ctx, id, actor); err != nil {
		return err
	}
	r.publish(ctx, events.EventLogAppended, id, actor)
	return nil
}
