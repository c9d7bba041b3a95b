package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/assetdesk/backend/internal/models"
	"github.com/assetdesk/backend/internal/storage"
)

// Award edits and deletes honor the lock server-side: a locked record is
// rejected, not silently skipped.

func (d *Dispatcher) updateAwardLocked(ctx context.Context, req Request) (any, error) {
	res, err := d.replaceRow(ctx, awardTable, req, "is_locked = FALSE")
	if errors.Is(err, storage.ErrNotFound) {
		return nil, d.classifyAwardMiss(ctx, req)
	}
	return res, err
}

func (d *Dispatcher) deleteAwardLocked(ctx context.Context, req Request) (any, error) {
	var p idRequest
	if err := req.Decode(&p); err != nil || p.ID == "" {
		return nil, invalidf("id is required")
	}

	tag, err := d.pool.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE tenant_id = $1 AND id = $2 AND is_locked = FALSE`, awardTable.qualified(req.Schema)),
		req.TenantID, p.ID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, d.classifyAwardMiss(ctx, req)
	}
	return nil, nil
}

// Batch award actions replace the generic registrations: updates must not
// touch locked rows or the lock flag itself, and deletes skip nothing
// silently.

func (d *Dispatcher) updateAwardsLocked(ctx context.Context, req Request) (any, error) {
	var p struct {
		IDs    []string       `json:"ids"`
		Fields map[string]any `json:"fields"`
	}
	if err := req.Decode(&p); err != nil || len(p.IDs) == 0 || len(p.Fields) == 0 {
		return nil, invalidf("ids and fields are required")
	}
	if err := awardBatchFields(p.Fields); err != nil {
		return nil, err
	}
	if err := d.rejectLockedAwards(ctx, req, p.IDs); err != nil {
		return nil, err
	}

	var (
		sets []string
		args []any
	)
	for _, c := range awardTable.columns {
		if c.name == "id" || c.name == "tenant_id" || c.name == "is_locked" {
			continue
		}
		v, ok := p.Fields[c.name]
		if !ok {
			continue
		}
		coerced, err := coerce(c, v)
		if err != nil {
			return nil, err
		}
		args = append(args, coerced)
		sets = append(sets, fmt.Sprintf("%s = $%d", c.name, len(args)))
	}
	if len(sets) == 0 {
		return nil, invalidf("no recognized fields")
	}

	args = append(args, req.TenantID, p.IDs)
	_, err := d.pool.Exec(ctx, fmt.Sprintf(`UPDATE %s SET %s WHERE tenant_id = $%d AND id = ANY($%d) AND is_locked = FALSE`,
		awardTable.qualified(req.Schema), strings.Join(sets, ", "), len(args)-1, len(args)), args...)
	return nil, err
}

func (d *Dispatcher) deleteAwardsLocked(ctx context.Context, req Request) (any, error) {
	var p idsRequest
	if err := req.Decode(&p); err != nil || len(p.IDs) == 0 {
		return nil, invalidf("ids are required")
	}
	if err := d.rejectLockedAwards(ctx, req, p.IDs); err != nil {
		return nil, err
	}
	_, err := d.pool.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE tenant_id = $1 AND id = ANY($2) AND is_locked = FALSE`, awardTable.qualified(req.Schema)),
		req.TenantID, p.IDs)
	return nil, err
}

// awardBatchFields rejects partial field sets that would change the lock flag
// outside the dedicated lock and unlock actions.
func awardBatchFields(fields map[string]any) error {
	if _, ok := fields["is_locked"]; ok {
		return invalidf("is_locked only changes through lockAward and unlockAward")
	}
	return nil
}

func (d *Dispatcher) rejectLockedAwards(ctx context.Context, req Request, ids []string) error {
	var locked int
	err := d.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT count(*) FROM %s WHERE tenant_id = $1 AND id = ANY($2) AND is_locked = TRUE`, awardTable.qualified(req.Schema)),
		req.TenantID, ids).Scan(&locked)
	if err != nil {
		return err
	}
	if locked > 0 {
		return fmt.Errorf("%d locked awards in batch: %w", locked, storage.ErrLocked)
	}
	return nil
}

// classifyAwardMiss distinguishes "row is locked" from "row does not exist"
// after a guarded update or delete matched nothing.
func (d *Dispatcher) classifyAwardMiss(ctx context.Context, req Request) error {
	var p idRequest
	if err := req.Decode(&p); err != nil {
		return storage.ErrNotFound
	}

	var locked bool
	err := d.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT is_locked FROM %s WHERE tenant_id = $1 AND id = $2`, awardTable.qualified(req.Schema)),
		req.TenantID, p.ID).Scan(&locked)
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	if err != nil {
		return err
	}
	if locked {
		return fmt.Errorf("award %s: %w", p.ID, storage.ErrLocked)
	}
	return storage.ErrNotFound
}

func (d *Dispatcher) setAwardLock(lock bool) Handler {
	action := models.AuditActionUnlocked
	if lock {
		action = models.AuditActionLocked
	}

	return func(ctx context.Context, req Request) (any, error) {
		var p struct {
			ID    string `json:"id"`
			Actor string `json:"actor"`
		}
		if err := req.Decode(&p); err != nil || p.ID == "" {
			return nil, invalidf("id is required")
		}

		tx, err := d.pool.Begin(ctx)
		if err != nil {
			return nil, err
		}
		defer tx.Rollback(ctx)

		qualified := awardTable.qualified(req.Schema)

		var auditRaw *string
		err = tx.QueryRow(ctx,
			fmt.Sprintf(`SELECT audit_log FROM %s WHERE tenant_id = $1 AND id = $2 FOR UPDATE`, qualified),
			req.TenantID, p.ID).Scan(&auditRaw)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		if err != nil {
			return nil, err
		}

		auditLog, err := parseLog[models.AuditEntry](auditRaw)
		if err != nil {
			return nil, err
		}
		auditLog = append(auditLog, models.NewAuditEntry(action, p.Actor, ""))
		auditText, err := encodeLog(auditLog)
		if err != nil {
			return nil, err
		}

		_, err = tx.Exec(ctx,
			fmt.Sprintf(`UPDATE %s SET is_locked = $1, audit_log = $2, updated_at = $3 WHERE tenant_id = $4 AND id = $5`, qualified),
			lock, auditText, time.Now().UTC().Format(time.RFC3339Nano), req.TenantID, p.ID)
		if err != nil {
			return nil, err
		}
		return nil, tx.Commit(ctx)
	}
}
