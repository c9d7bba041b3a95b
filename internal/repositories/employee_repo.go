package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/assetdesk/backend/internal/events"
	"github.com/assetdesk/backend/internal/models"
	"github.com/assetdesk/backend/internal/storage"
)

type EmployeeActions interface {
	AddComment(ctx context.Context, id uuid.UUID, comment models.Comment, audit models.AuditEntry) error
}

type EmployeeRepo struct {
	Repo[models.Employee]
	actions EmployeeActions
}

func NewEmployeeRepo(store storage.Store[models.Employee], actions EmployeeActions, tenantID string, pub events.Publisher, log *zap.Logger) *EmployeeRepo {
	return &EmployeeRepo{
		Repo:    newRepo(store, tenantID, "employees", pub, log),
		actions: actions,
	}
}

func (r *EmployeeRepo) Add(ctx context.Context, e *models.Employee, actor string) error {
	stampNew(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if e.Status == "" {
		e.Status = "active"
	}
	e.AuditLog = append(e.AuditLog, models.NewAuditEntry(models.AuditActionCreated, actor, ""))

	if err := r.store.Add(ctx, *e); err != nil {
		return err
	}
	r.publish(ctx, events.EventEntityCreated, e.ID, actor)
	return nil
}

func (r *EmployeeRepo) AddBatch(ctx context.Context, employees []models.Employee, actor string) error {
	for i := range employees {
		stampNew(&employees[i].ID, &employees[i].CreatedAt, &employees[i].UpdatedAt)
		if employees[i].Status == "" {
			employees[i].Status = "active"
		}
		employees[i].AuditLog = append(employees[i].AuditLog, models.NewAuditEntry(models.AuditActionCreated, actor, ""))
	}
	if err := r.store.AddBatch(ctx, employees); err != nil {
		return err
	}
	for i := range employees {
		r.publish(ctx, events.EventEntityCreated, employees[i].ID, actor)
	}
	return nil
}

func (r *EmployeeRepo) Update(ctx context.Context, e *models.Employee, actor string) error {
	e.UpdatedAt = time.Now().UTC()
	e.AuditLog = append(e.AuditLog, models.NewAuditEntry(models.AuditActionUpdated, actor, ""))

	if err := r.store.Update(ctx, *e); err != nil {
		return err
	}
	r.publish(ctx, events.EventEntityUpdated, e.ID, actor)
	return nil
}

func (r *EmployeeRepo) AddComment(ctx context.Context, id uuid.UUID, text, author string) error {
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
