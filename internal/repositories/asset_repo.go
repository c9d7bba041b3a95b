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

// AssetActions are the backend-specific append operations on assets.
type AssetActions interface {
	AddComment(ctx context.Context, id uuid.UUID, comment models.Comment, audit models.AuditEntry) error
}

type AssetRepo struct {
	Repo[models.Asset]
	actions AssetActions
}

func NewAssetRepo(store storage.Store[models.Asset], actions AssetActions, tenantID string, pub events.Publisher, log *zap.Logger) *AssetRepo {
	return &AssetRepo{
		Repo:    newRepo(store, tenantID, "assets", pub, log),
		actions: actions,
	}
}

// Add persists a new asset: id and timestamps are assigned here, and exactly
// one Created audit entry is appended to whatever history the caller supplied.
func (r *AssetRepo) Add(ctx context.Context, a *models.Asset, actor string) error {
	stampNew(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if a.Status == "" {
		a.Status = models.AssetStatusAvailable
	}
	a.AuditLog = append(a.AuditLog, models.NewAuditEntry(models.AuditActionCreated, actor, ""))

	if err := r.store.Add(ctx, *a); err != nil {
		return err
	}
	r.publish(ctx, events.EventEntityCreated, a.ID, actor)
	return nil
}

func (r *AssetRepo) AddBatch(ctx context.Context, assets []models.Asset, actor string) error {
	for i := range assets {
		stampNew(&assets[i].ID, &assets[i].CreatedAt, &assets[i].UpdatedAt)
		if assets[i].Status == "" {
			assets[i].Status = models.AssetStatusAvailable
		}
		assets[i].AuditLog = append(assets[i].AuditLog, models.NewAuditEntry(models.AuditActionCreated, actor, ""))
	}
	if err := r.store.AddBatch(ctx, assets); err != nil {
		return err
	}
	for i := range assets {
		r.publish(ctx, events.EventEntityCreated, assets[i].ID, actor)
	}
	return nil
}

// Update writes the supplied asset back, appending an Updated audit entry.
// A status change must follow the lifecycle graph in models.ValidAssetTransitions.
// The caller is expected to pass the full entity as previously loaded: the
// document backend merges, the relational backend replaces the whole row.
func (r *AssetRepo) Update(ctx context.Context, a *models.Asset, actor string) error {
	current, err := r.store.Get(ctx, a.ID)
	if err != nil {
		return err
	}
	if current.Status != a.Status && !models.IsValidAssetTransition(current.Status, a.Status) {
		return fmt.Errorf("asset status cannot move from %s to %s", current.Status, a.Status)
	}

	a.UpdatedAt = time.Now().UTC()
	a.AuditLog = append(a.AuditLog, models.NewAuditEntry(models.AuditActionUpdated, actor, ""))

	if err := r.store.Update(ctx, *a); err != nil {
		return err
	}
	r.publish(ctx, events.EventEntityUpdated, a.ID, actor)
	return nil
}

func (r *AssetRepo) AddComment(ctx context.Context, id uuid.UUID, text, author string) error {
	comment := models.Comment{
		ID:     uuid.New(),
		Text:   text,
		Author: author,
		Date:   time.Now().UTC(),
	}
	audit := models.NewAuditEntry(models.AuditActionCommented, author, "")

	if err := r.actions.AddComment(ctx, id, comment, audit); err != nil {
		return err
	}
	r.publish(ctx, events.EventLogAppended, id, author)
	return nil
}

// stampNew assigns an id when the caller left it zero and sets both
// timestamps to now.
func stampNew(id *uuid.UUID, createdAt, updatedAt *time.Time) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	now := time.Now().UTC()
	*createdAt = now
	*updatedAt = now
}
