package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/assetdesk/backend/internal/models"
	"github.com/assetdesk/backend/internal/storage"
	"github.com/assetdesk/backend/internal/storage/docstore"
)

// Document-backend action implementations. Every operation is a
// read-modify-write on the entity's single document, retried under Redis
// WATCH so the stock and seat checks hold against concurrent writers.

type docAssetActions struct {
	col *docstore.Collection[models.Asset]
}

func (a docAssetActions) AddComment(ctx context.Context, id uuid.UUID, comment models.Comment, audit models.AuditEntry) error {
	return a.col.Mutate(ctx, id, func(asset *models.Asset) error {
		asset.Comments = append(asset.Comments, comment)
		asset.AuditLog = append(asset.AuditLog, audit)
		asset.UpdatedAt = time.Now().UTC()
		return nil
	})
}

type docEmployeeActions struct {
	col *docstore.Collection[models.Employee]
}

func (a docEmployeeActions) AddComment(ctx context.Context, id uuid.UUID, comment models.Comment, audit models.AuditEntry) error {
	return a.col.Mutate(ctx, id, func(employee *models.Employee) error {
		employee.Comments = append(employee.Comments, comment)
		employee.AuditLog = append(employee.AuditLog, audit)
		employee.UpdatedAt = time.Now().UTC()
		return nil
	})
}

type docSoftwareActions struct {
	col *docstore.Collection[models.Software]
}

func (a docSoftwareActions) Assign(ctx context.Context, id uuid.UUID, assignment models.SoftwareAssignment, actor string) error {
	return a.col.Mutate(ctx, id, func(s *models.Software) error {
		if s.FindAssignment(assignment.EmployeeID) >= 0 {
			return fmt.Errorf("employee %s already holds a seat", assignment.EmployeeID)
		}
		if s.SeatsLeft() <= 0 {
			return storage.ErrNoSeats
		}
		s.AssignedTo = append(s.AssignedTo, assignment)
		s.AuditLog = append(s.AuditLog, models.NewAuditEntry(models.AuditActionAssigned, actor,
			fmt.Sprintf("assigned to employee %s", assignment.EmployeeID)))
		s.UpdatedAt = time.Now().UTC()
		return nil
	})
}

func (a docSoftwareActions) Unassign(ctx context.Context, id uuid.UUID, employeeID uuid.UUID, actor string) error {
	return a.col.Mutate(ctx, id, func(s *models.Software) error {
		i := s.FindAssignment(employeeID)
		if i < 0 {
			return fmt.Errorf("employee %s holds no seat", employeeID)
		}
		s.AssignedTo = append(s.AssignedTo[:i], s.AssignedTo[i+1:]...)
		s.AuditLog = append(s.AuditLog, models.NewAuditEntry(models.AuditActionUnassigned, actor,
			fmt.Sprintf("unassigned from employee %s", employeeID)))
		s.UpdatedAt = time.Now().UTC()
		return nil
	})
}

type docConsumableActions struct {
	col *docstore.Collection[models.Consumable]
}

func (a docConsumableActions) Issue(ctx context.Context, id uuid.UUID, entry models.IssueEntry, actor string) error {
	return a.col.Mutate(ctx, id, func(c *models.Consumable) error {
		if entry.Quantity > c.Quantity {
			return storage.ErrInsufficientStock
		}
		entry.Status = models.IssueStatusIssued
		c.Quantity -= entry.Quantity
		c.IssueLog = append(c.IssueLog, entry)
		c.AuditLog = append(c.AuditLog, models.NewAuditEntry(models.AuditActionIssued, actor,
			models.IssueDetails(entry.Quantity, entry.EmployeeID)))
		c.UpdatedAt = time.Now().UTC()
		return nil
	})
}

func (a docConsumableActions) Revoke(ctx context.Context, id uuid.UUID, entryID uuid.UUID, actor string) error {
	return a.col.Mutate(ctx, id, func(c *models.Consumable) error {
		i := c.FindIssueEntry(entryID)
		if i < 0 {
			return storage.ErrNotFound
		}
		if c.IssueLog[i].Status == models.IssueStatusReversed {
			return fmt.Errorf("issue entry %s already reversed", entryID)
		}
		c.IssueLog[i].Status = models.IssueStatusReversed
		c.Quantity += c.IssueLog[i].Quantity
		c.AuditLog = append(c.AuditLog, models.NewAuditEntry(models.AuditActionIssueRevoked, actor,
			models.RevokeDetails(c.IssueLog[i].Quantity, c.IssueLog[i].EmployeeID)))
		c.UpdatedAt = time.Now().UTC()
		return nil
	})
}

type docAwardActions struct {
	col *docstore.Collection[models.Award]
}

func (a docAwardActions) Lock(ctx context.Context, id uuid.UUID, actor string) error {
	return a.col.Mutate(ctx, id, func(award *models.Award) error {
		award.IsLocked = true
		award.AuditLog = append(award.AuditLog, models.NewAuditEntry(models.AuditActionLocked, actor, ""))
		award.UpdatedAt = time.Now().UTC()
		return nil
	})
}

func (a docAwardActions) Unlock(ctx context.Context, id uuid.UUID, actor string) error {
	return a.col.Mutate(ctx, id, func(award *models.Award) error {
		award.IsLocked = false
		award.AuditLog = append(award.AuditLog, models.NewAuditEntry(models.AuditActionUnlocked, actor, ""))
		award.UpdatedAt = time.Now().UTC()
		return nil
	})
}
