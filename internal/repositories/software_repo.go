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

// SoftwareActions are the backend-specific seat operations on software
// licenses. Both implementations enforce the seat limit atomically.
type SoftwareActions interface {
	Assign(ctx context.Context, id uuid.UUID, assignment models.SoftwareAssignment, actor string) error
	Unassign(ctx context.Context, id uuid.UUID, employeeID uuid.UUID, actor string) error
}

type SoftwareRepo struct {
	Repo[models.Software]
	actions SoftwareActions
}

func NewSoftwareRepo(store storage.Store[models.Software], actions SoftwareActions, tenantID string, pub events.Publisher, log *zap.Logger) *SoftwareRepo {
	return &SoftwareRepo{
		Repo:    newRepo(store, tenantID, "software", pub, log),
		actions: actions,
	}
}

func (r *SoftwareRepo) Add(ctx context.Context, s *models.Software, actor string) error {
	stampNew(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	s.AuditLog = append(s.AuditLog, models.NewAuditEntry(models.AuditActionCreated, actor, ""))

	if err := r.store.Add(ctx, *s); err != nil {
		return err
	}
	r.publish(ctx, events.EventEntityCreated, s.ID, actor)
	return nil
}

func (r *SoftwareRepo) AddBatch(ctx context.Context, licenses []models.Software, actor string) error {
	for i := range licenses {
		stampNew(&licenses[i].ID, &licenses[i].CreatedAt, &licenses[i].UpdatedAt)
		licenses[i].AuditLog = append(licenses[i].AuditLog, models.NewAuditEntry(models.AuditActionCreated, actor, ""))
	}
	if err := r.store.AddBatch(ctx, licenses); err != nil {
		return err
	}
	for i := range licenses {
		r.publish(ctx, events.EventEntityCreated, licenses[i].ID, actor)
	}
	return nil
}

func (r *SoftwareRepo) Update(ctx context.Context, s *models.Software, actor string) error {
	s.UpdatedAt = time.Now().UTC()
	s.AuditLog = append(s.AuditLog, models.NewAuditEntry(models.AuditActionUpdated, actor, ""))

	if err := r.store.Update(ctx, *s); err != nil {
		return err
	}
	r.publish(ctx, events.EventEntityUpdated, s.ID, actor)
	return nil
}

// Assign hands one license seat to an employee. Fails with ErrNoSeats when
// every seat is taken.
func (r *SoftwareRepo) Assign(ctx context.Context, id, employeeID uuid.UUID, actor string) error {
	assignment := models.SoftwareAssignment{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Date:       time.Now().UTC(),
	}
	if err := r.actions.Assign(ctx, id, assignment, actor); err != nil {
		return err
	}
	r.publish(ctx, events.EventLogAppended, id, actor)
	return nil
}

func (r *SoftwareRepo) Unassign(ctx context.Context, id, employeeID uuid.UUID, actor string) error {
	if err := r.actions.Unassign(ctx, id, employeeID, actor); err != nil {
		return err
	}
	r.publish(ctx, events.EventLogAppended, id, actor)
	return nil
}
