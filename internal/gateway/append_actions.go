package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/assetdesk/backend/internal/models"
	"github.com/assetdesk/backend/internal/storage"
)

// appendCommentHandler builds the addAssetComment / addEmployeeComment
// actions: splice the comment and its audit entry into the serialized log
// columns inside one transaction.
func (d *Dispatcher) appendCommentHandler(t table) Handler {
	return func(ctx context.Context, req Request) (any, error) {
		var p struct {
			ID      string            `json:"id"`
			Comment models.Comment    `json:"comment"`
			Audit   models.AuditEntry `json:"audit"`
		}
		if err := req.Decode(&p); err != nil || p.ID == "" {
			return nil, invalidf("id and comment are required")
		}
		if p.Comment.Text == "" {
			return nil, invalidf("comment text is required")
		}

		tx, err := d.pool.Begin(ctx)
		if err != nil {
			return nil, err
		}
		defer tx.Rollback(ctx)

		qualified := t.qualified(req.Schema)

		var commentsRaw, auditRaw *string
		err = tx.QueryRow(ctx,
			fmt.Sprintf(`SELECT comments, audit_log FROM %s WHERE tenant_id = $1 AND id = $2 FOR UPDATE`, qualified),
			req.TenantID, p.ID).Scan(&commentsRaw, &auditRaw)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		if err != nil {
			return nil, err
		}

		comments, err := parseLog[models.Comment](commentsRaw)
		if err != nil {
			return nil, err
		}
		auditLog, err := parseLog[models.AuditEntry](auditRaw)
		if err != nil {
			return nil, err
		}

		comments = append(comments, p.Comment)
		auditLog = append(auditLog, p.Audit)

		commentsText, err := encodeLog(comments)
		if err != nil {
			return nil, err
		}
		auditText, err := encodeLog(auditLog)
		if err != nil {
			return nil, err
		}

		_, err = tx.Exec(ctx,
			fmt.Sprintf(`UPDATE %s SET comments = $1, audit_log = $2, updated_at = $3 WHERE tenant_id = $4 AND id = $5`, qualified),
			commentsText, auditText, time.Now().UTC().Format(time.RFC3339Nano), req.TenantID, p.ID)
		if err != nil {
			return nil, err
		}
		return nil, tx.Commit(ctx)
	}
}

// assignSoftware hands one license seat to an employee, rejecting the call
// when no seats are left or the employee already holds one.
func (d *Dispatcher) assignSoftware(ctx context.Context, req Request) (any, error) {
	var p struct {
		ID         string                    `json:"id"`
		Assignment models.SoftwareAssignment `json:"assignment"`
		Actor      string                    `json:"actor"`
	}
	if err := req.Decode(&p); err != nil || p.ID == "" {
		return nil, invalidf("id and assignment are required")
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	qualified := softwareTable.qualified(req.Schema)

	var (
		seats                 int
		assignedRaw, auditRaw *string
	)
	err = tx.QueryRow(ctx,
		fmt.Sprintf(`SELECT seats, assigned_to, audit_log FROM %s WHERE tenant_id = $1 AND id = $2 FOR UPDATE`, qualified),
		req.TenantID, p.ID).Scan(&seats, &assignedRaw, &auditRaw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	assigned, err := parseLog[models.SoftwareAssignment](assignedRaw)
	if err != nil {
		return nil, err
	}
	auditLog, err := parseLog[models.AuditEntry](auditRaw)
	if err != nil {
		return nil, err
	}

	for _, a := range assigned {
		if a.EmployeeID == p.Assignment.EmployeeID {
			return nil, invalidf("employee %s already holds a seat", a.EmployeeID)
		}
	}
	if len(assigned) >= seats {
		return nil, storage.ErrNoSeats
	}

	assigned = append(assigned, p.Assignment)
	auditLog = append(auditLog, models.NewAuditEntry(models.AuditActionAssigned, p.Actor,
		fmt.Sprintf("assigned seat to employee %s", p.Assignment.EmployeeID)))

	assignedText, err := encodeLog(assigned)
	if err != nil {
		return nil, err
	}
	auditText, err := encodeLog(auditLog)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx,
		fmt.Sprintf(`UPDATE %s SET assigned_to = $1, audit_log = $2, updated_at = $3 WHERE tenant_id = $4 AND id = $5`, qualified),
		assignedText, auditText, time.Now().UTC().Format(time.RFC3339Nano), req.TenantID, p.ID)
	if err != nil {
		return nil, err
	}
	return nil, tx.Commit(ctx)
}

func (d *Dispatcher) unassignSoftware(ctx context.Context, req Request) (any, error) {
	var p struct {
		ID         string `json:"id"`
		EmployeeID string `json:"employee_id"`
		Actor      string `json:"actor"`
	}
	if err := req.Decode(&p); err != nil || p.ID == "" || p.EmployeeID == "" {
		return nil, invalidf("id and employee_id are required")
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	qualified := softwareTable.qualified(req.Schema)

	var assignedRaw, auditRaw *string
	err = tx.QueryRow(ctx,
		fmt.Sprintf(`SELECT assigned_to, audit_log FROM %s WHERE tenant_id = $1 AND id = $2 FOR UPDATE`, qualified),
		req.TenantID, p.ID).Scan(&assignedRaw, &auditRaw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	assigned, err := parseLog[models.SoftwareAssignment](assignedRaw)
	if err != nil {
		return nil, err
	}
	auditLog, err := parseLog[models.AuditEntry](auditRaw)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, a := range assigned {
		if a.EmployeeID.String() == p.EmployeeID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("assignment for employee %s: %w", p.EmployeeID, storage.ErrNotFound)
	}

	assigned = append(assigned[:idx], assigned[idx+1:]...)
	auditLog = append(auditLog, models.NewAuditEntry(models.AuditActionUnassigned, p.Actor,
		fmt.Sprintf("released seat of employee %s", p.EmployeeID)))

	assignedText, err := encodeLog(assigned)
	if err != nil {
		return nil, err
	}
	auditText, err := encodeLog(auditLog)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx,
		fmt.Sprintf(`UPDATE %s SET assigned_to = $1, audit_log = $2, updated_at = $3 WHERE tenant_id = $4 AND id = $5`, qualified),
		assignedText, auditText, time.Now().UTC().Format(time.RFC3339Nano), req.TenantID, p.ID)
	if err != nil {
		return nil, err
	}
	return nil, tx.Commit(ctx)
}
