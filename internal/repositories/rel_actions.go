package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/assetdesk/backend/internal/models"
	"github.com/assetdesk/backend/internal/storage/relstore"
)

// Relational-backend action implementations. Each call maps to one named
// gateway action that runs the whole check-and-append inside a single
// transaction server-side.

type relAssetActions struct {
	col *relstore.Collection[models.Asset]
}

func (a relAssetActions) AddComment(ctx context.Context, id uuid.UUID, comment models.Comment, audit models.AuditEntry) error {
	return a.col.Do(ctx, "addAssetComment", map[string]any{
		"id":      id.String(),
		"comment": comment,
		"audit":   audit,
	})
}

type relEmployeeActions struct {
	col *relstore.Collection[models.Employee]
}

func (a relEmployeeActions) AddComment(ctx context.Context, id uuid.UUID, comment models.Comment, audit models.AuditEntry) error {
	return a.col.Do(ctx, "addEmployeeComment", map[string]any{
		"id":      id.String(),
		"comment": comment,
		"audit":   audit,
	})
}

type relSoftwareActions struct {
	col *relstore.Collection[models.Software]
}

func (a relSoftwareActions) Assign(ctx context.Context, id uuid.UUID, assignment models.SoftwareAssignment, actor string) error {
	return a.col.Do(ctx, "assignSoftware", map[string]any{
		"id":         id.String(),
		"assignment": assignment,
		"actor":      actor,
	})
}

func (a relSoftwareActions) Unassign(ctx context.Context, id uuid.UUID, employeeID uuid.UUID, actor string) error {
	return a.col.Do(ctx, "unassignSoftware", map[string]any{
		"id":          id.String(),
		"employee_id": employeeID.String(),
		"actor":       actor,
	})
}

type relConsumableActions struct {
	col *relstore.Collection[models.Consumable]
}

func (a relConsumableActions) Issue(ctx context.Context, id uuid.UUID, entry models.IssueEntry, actor string) error {
	return a.col.Do(ctx, "issueConsumable", map[string]any{
		"id":    id.String(),
		"entry": entry,
		"actor": actor,
	})
}

func (a relConsumableActions) Revoke(ctx context.Context, id uuid.UUID, entryID uuid.UUID, actor string) error {
	return a.col.Do(ctx, "revokeIssuedConsumable", map[string]any{
		"id":       id.String(),
		"entry_id": entryID.String(),
		"actor":    actor,
	})
}

type relAwardActions struct {
	col *relstore.Collection[models.Award]
}

func (a relAwardActions) Lock(ctx context.Context, id uuid.UUID, actor string) error {
	return a.col.Do(ctx, "lockAward", map[string]any{
		"id":    id.String(),
		"actor": actor,
	})
}

func (a relAwardActions) Unlock(ctx context.Context, id uuid.UUID, actor string) error {
	return a.col.Do(ctx, "unlockAward", map[string]any{
		"id":    id.String(),
		"actor": actor,
	})
}
