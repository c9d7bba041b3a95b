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

// issueConsumable decrements stock and appends to the issue log in one
// transaction. Issuing beyond the current stock is rejected outright, leaving
// quantity and both logs untouched.
func (d *Dispatcher) issueConsumable(ctx context.Context, req Request) (any, error) {
	var p struct {
		ID    string            `json:"id"`
		Entry models.IssueEntry `json:"entry"`
		Actor string            `json:"actor"`
	}
	if err := req.Decode(&p); err != nil || p.ID == "" {
		return nil, invalidf("id and entry are required")
	}
	if p.Entry.Quantity <= 0 {
		return nil, invalidf("issue quantity must be positive")
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	table := consumableTable.qualified(req.Schema)

	var (
		quantity           int
		issueRaw, auditRaw *string
	)
	err = tx.QueryRow(ctx,
		fmt.Sprintf(`SELECT quantity, issue_log, audit_log FROM %s WHERE tenant_id = $1 AND id = $2 FOR UPDATE`, table),
		req.TenantID, p.ID).Scan(&quantity, &issueRaw, &auditRaw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if p.Entry.Quantity > quantity {
		return nil, storage.ErrInsufficientStock
	}

	issueLog, err := parseLog[models.IssueEntry](issueRaw)
	if err != nil {
		return nil, err
	}
	auditLog, err := parseLog[models.AuditEntry](auditRaw)
	if err != nil {
		return nil, err
	}

	p.Entry.Status = models.IssueStatusIssued
	issueLog = append(issueLog, p.Entry)
	auditLog = append(auditLog, models.NewAuditEntry(models.AuditActionIssued, p.Actor,
		models.IssueDetails(p.Entry.Quantity, p.Entry.EmployeeID)))

	issueText, err := encodeLog(issueLog)
	if err != nil {
		return nil, err
	}
	auditText, err := encodeLog(auditLog)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx,
		fmt.Sprintf(`UPDATE %s SET quantity = $1, issue_log = $2, audit_log = $3, updated_at = $4 WHERE tenant_id = $5 AND id = $6`, table),
		quantity-p.Entry.Quantity, issueText, auditText, time.Now().UTC().Format(time.RFC3339Nano), req.TenantID, p.ID)
	if err != nil {
		return nil, err
	}
	return nil, tx.Commit(ctx)
}

// revokeIssuedConsumable restores the stock taken by one issue entry and flips
// that entry's status to Reversed. The entry itself is never removed.
func (d *Dispatcher) revokeIssuedConsumable(ctx context.Context, req Request) (any, error) {
	var p struct {
		ID      string `json:"id"`
		EntryID string `json:"entry_id"`
		Actor   string `json:"actor"`
	}
	if err := req.Decode(&p); err != nil || p.ID == "" || p.EntryID == "" {
		return nil, invalidf("id and entry_id are required")
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	table := consumableTable.qualified(req.Schema)

	var (
		quantity           int
		issueRaw, auditRaw *string
	)
	err = tx.QueryRow(ctx,
		fmt.Sprintf(`SELECT quantity, issue_log, audit_log FROM %s WHERE tenant_id = $1 AND id = $2 FOR UPDATE`, table),
		req.TenantID, p.ID).Scan(&quantity, &issueRaw, &auditRaw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	issueLog, err := parseLog[models.IssueEntry](issueRaw)
	if err != nil {
		return nil, err
	}
	auditLog, err := parseLog[models.AuditEntry](auditRaw)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, e := range issueLog {
		if e.ID.String() == p.EntryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("issue entry %s: %w", p.EntryID, storage.ErrNotFound)
	}
	if issueLog[idx].Status != models.IssueStatusIssued {
		return nil, invalidf("issue entry %s is already reversed", p.EntryID)
	}

	issueLog[idx].Status = models.IssueStatusReversed
	auditLog = append(auditLog, models.NewAuditEntry(models.AuditActionIssueRevoked, p.Actor,
		models.RevokeDetails(issueLog[idx].Quantity, issueLog[idx].EmployeeID)))

	issueText, err := encodeLog(issueLog)
	if err != nil {
		return nil, err
	}
	auditText, err := encodeLog(auditLog)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx,
		fmt.Sprintf(`UPDATE %s SET quantity = $1, issue_log = $2, audit_log = $3, updated_at = $4 WHERE tenant_id = $5 AND id = $6`, table),
		quantity+issueLog[idx].Quantity, issueText, auditText, time.Now().UTC().Format(time.RFC3339Nano), req.TenantID, p.ID)
	if err != nil {
		return nil, err
	}
	return nil, tx.Commit(ctx)
}
