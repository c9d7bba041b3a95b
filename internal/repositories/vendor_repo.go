package repositories

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/assetdesk/backend/internal/events"
	"github.com/assetdesk/backend/internal/models"
	"github.com/assetdesk/backend/internal/storage"
)

type VendorRepo struct {
	Repo[models.Vendor]
}

func NewVendorRepo(store storage.Store[models.Vendor], tenantID string, pub events.Publisher, log *zap.Logger) *VendorRepo {
	return &VendorRepo{Repo: newRepo(store, tenantID, "vendors", pub, log)}
}

func (r *VendorRepo) Add(ctx context.Context, v *models.Vendor, actor string) error {
	stampNew(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	v.AuditLog = append(v.AuditLog, models.NewAuditEntry(models.AuditActionCreated, actor, ""))

	if err := r.store.Add(ctx, *v); err != nil {
		return err
	}
	r.publish(ctx, events.EventEntityCreated, v.ID, actor)
	return nil
}

func (r *VendorRepo) AddBatch(ctx context.Context, vendors []models.Vendor, actor string) error {
	for i := range vendors {
		stampNew(&vendors[i].ID, &vendors[i].CreatedAt, &vendors[i].UpdatedAt)
		vendors[i].AuditLog = append(vendors[i].AuditLog, models.NewAuditEntry(models.AuditActionCreated, actor, ""))
	}
	if err := r.store.AddBatch(ctx, vendors); err != nil {
		return err
	}
	for i := range vendors {
		r.publish(ctx, events.EventEntityCreated, vendors[i].ID, actor)
	}
	return nil
}

func (r *VendorRepo) Update(ctx context.Context, v *models.Vendor, actor string) error {
	v.UpdatedAt = time.Now().UTC()
	v.AuditLog = append(v.AuditLog, models.NewAuditEntry(models.AuditActionUpdated, actor, ""))

	if err := r.store.Update(ctx, *v); err != nil {
		return err
	}
	r.publish(ctx, events.EventEntityUpdated, v.ID, actor)
	return nil
}
