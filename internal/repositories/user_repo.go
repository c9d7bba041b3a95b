package repositories

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/assetdesk/backend/internal/events"
	"github.com/assetdesk/backend/internal/models"
	"github.com/assetdesk/backend/internal/storage"
)

type UserRepo struct {
	Repo[models.User]
}

func NewUserRepo(store storage.Store[models.User], tenantID string, pub events.Publisher, log *zap.Logger) *UserRepo {
	return &UserRepo{Repo: newRepo(store, tenantID, "users", pub, log)}
}

func (r *UserRepo) Add(ctx context.Context, u *models.User, actor string) error {
	stampNew(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if u.Role == "" {
		u.Role = models.RoleViewer
	}
	u.AuditLog = append(u.AuditLog, models.NewAuditEntry(models.AuditActionCreated, actor, ""))

	if err := r.store.Add(ctx, *u); err != nil {
		return err
	}
	r.publish(ctx, events.EventEntityCreated, u.ID, actor)
	return nil
}

func (r *UserRepo) AddBatch(ctx context.Context, users []models.User, actor string) error {
	for i := range users {
		stampNew(&users[i].ID, &users[i].CreatedAt, &users[i].UpdatedAt)
		if users[i].Role == "" {
			users[i].Role = models.RoleViewer
		}
		users[i].AuditLog = append(users[i].AuditLog, models.NewAuditEntry(models.AuditActionCreated, actor, ""))
	}
	if err := r.store.AddBatch(ctx, users); err != nil {
		return err
	}
	for i := range users {
		r.publish(ctx, events.EventEntityCreated, users[i].ID, actor)
	}
	return nil
}

func (r *UserRepo) Update(ctx context.Context, u *models.User, actor string) error {
	u.UpdatedAt = time.Now().UTC()
	u.AuditLog = append(u.AuditLog, models.NewAuditEntry(models.AuditActionUpdated, actor, ""))

	if err := r.store.Update(ctx, *u); err != nil {
		return err
	}
	r.publish(ctx, events.EventEntityUpdated, u.ID, actor)
	return nil
}
