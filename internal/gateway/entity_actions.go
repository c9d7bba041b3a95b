package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/assetdesk/backend/internal/storage"
)

func (d *Dispatcher) registerEntity(t table) {
	d.handlers["get"+t.plural] = d.listHandler(t)
	d.handlers["get"+t.singular] = d.getHandler(t)
	d.handlers["add"+t.singular] = d.addHandler(t)
	d.handlers["add"+t.plural] = d.addBatchHandler(t)
	d.handlers["update"+t.singular] = d.updateHandler(t)
	d.handlers["update"+t.plural] = d.updateBatchHandler(t)
	d.handlers["delete"+t.singular] = d.deleteHandler(t)
	d.handlers["delete"+t.plural] = d.deleteBatchHandler(t)
}

// coerce converts a JSON-decoded value to the column's parameter type.
func coerce(c column, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch c.kind {
	case kindInt:
		f, ok := v.(float64)
		if !ok {
			return nil, invalidf("field %s must be a number", c.name)
		}
		return int64(f), nil
	case kindBool:
		b, ok := v.(bool)
		if !ok {
			return nil, invalidf("field %s must be a boolean", c.name)
		}
		return b, nil
	default:
		s, ok := v.(string)
		if !ok {
			return nil, invalidf("field %s must be a string", c.name)
		}
		return s, nil
	}
}

func (d *Dispatcher) listHandler(t table) Handler {
	return func(ctx context.Context, req Request) (any, error) {
		rows, err := d.pool.Query(ctx,
			fmt.Sprintf(`SELECT * FROM %s WHERE tenant_id = $1 ORDER BY created_at`, t.qualified(req.Schema)),
			req.TenantID)
		if err != nil {
			return nil, err
		}
		result, err := pgx.CollectRows(rows, pgx.RowToMap)
		if err != nil {
			return nil, err
		}
		if result == nil {
			result = []map[string]any{}
		}
		return result, nil
	}
}

type idRequest struct {
	ID string `json:"id"`
}

type idsRequest struct {
	IDs []string `json:"ids"`
}

func (d *Dispatcher) getHandler(t table) Handler {
	return func(ctx context.Context, req Request) (any, error) {
		var p idRequest
		if err := req.Decode(&p); err != nil || p.ID == "" {
			return nil, invalidf("id is required")
		}

		rows, err := d.pool.Query(ctx,
			fmt.Sprintf(`SELECT * FROM %s WHERE tenant_id = $1 AND id = $2`, t.qualified(req.Schema)),
			req.TenantID, p.ID)
		if err != nil {
			return nil, err
		}
		row, err := pgx.CollectOneRow(rows, pgx.RowToMap)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		return row, nil
	}
}

type rowValues struct {
	cols         []string
	placeholders []string
	args         []any
}

// insertValues collects the whitelisted columns present in the payload.
func insertValues(t table, payload map[string]any, tenantID string) (rowValues, error) {
	var rv rowValues
	payload["tenant_id"] = tenantID
	for _, c := range t.columns {
		v, ok := payload[c.name]
		if !ok {
			continue
		}
		coerced, err := coerce(c, v)
		if err != nil {
			return rv, err
		}
		rv.cols = append(rv.cols, c.name)
		rv.placeholders = append(rv.placeholders, fmt.Sprintf("$%d", len(rv.args)+1))
		rv.args = append(rv.args, coerced)
	}
	return rv, nil
}

func (d *Dispatcher) addHandler(t table) Handler {
	return func(ctx context.Context, req Request) (any, error) {
		var payload map[string]any
		if err := req.Decode(&payload); err != nil {
			return nil, invalidf("invalid payload")
		}
		if id, _ := payload["id"].(string); id == "" {
			return nil, invalidf("id is required")
		}

		rv, err := insertValues(t, payload, req.TenantID)
		if err != nil {
			return nil, err
		}

		_, err = d.pool.Exec(ctx, fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
			t.qualified(req.Schema),
			strings.Join(rv.cols, ", "),
			strings.Join(rv.placeholders, ", ")), rv.args...)
		return nil, err
	}
}

func (d *Dispatcher) addBatchHandler(t table) Handler {
	return func(ctx context.Context, req Request) (any, error) {
		var p struct {
			Items []map[string]any `json:"items"`
		}
		if err := req.Decode(&p); err != nil {
			return nil, invalidf("invalid payload")
		}

		tx, err := d.pool.Begin(ctx)
		if err != nil {
			return nil, err
		}
		defer tx.Rollback(ctx)

		for _, item := range p.Items {
			if id, _ := item["id"].(string); id == "" {
				return nil, invalidf("every item needs an id")
			}
			rv, err := insertValues(t, item, req.TenantID)
			if err != nil {
				return nil, err
			}
			if _, err := tx.Exec(ctx, fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
				t.qualified(req.Schema),
				strings.Join(rv.cols, ", "),
				strings.Join(rv.placeholders, ", ")), rv.args...); err != nil {
				return nil, err
			}
		}
		return nil, tx.Commit(ctx)
	}
}

// updateHandler performs a full row replace: every updatable column is set,
// to NULL when absent from the payload. This is deliberately not the merge
// the document backend does.
func (d *Dispatcher) updateHandler(t table) Handler {
	return func(ctx context.Context, req Request) (any, error) {
		return d.replaceRow(ctx, t, req, "")
	}
}

func (d *Dispatcher) replaceRow(ctx context.Context, t table, req Request, extraCond string) (any, error) {
	var payload map[string]any
	if err := req.Decode(&payload); err != nil {
		return nil, invalidf("invalid payload")
	}
	id, _ := payload["id"].(string)
	if id == "" {
		return nil, invalidf("id is required")
	}

	var (
		sets []string
		args []any
	)
	for _, c := range t.columns {
		if c.name == "id" || c.name == "tenant_id" {
			continue
		}
		coerced, err := coerce(c, payload[c.name])
		if err != nil {
			return nil, err
		}
		args = append(args, coerced)
		sets = append(sets, fmt.Sprintf("%s = $%d", c.name, len(args)))
	}

	args = append(args, req.TenantID, id)
	query := fmt.Sprintf(`UPDATE %s SET %s WHERE tenant_id = $%d AND id = $%d`,
		t.qualified(req.Schema), strings.Join(sets, ", "), len(args)-1, len(args))
	if extraCond != "" {
		query += " AND " + extraCond
	}

	tag, err := d.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, storage.ErrNotFound
	}
	return nil, nil
}

func (d *Dispatcher) updateBatchHandler(t table) Handler {
	return func(ctx context.Context, req Request) (any, error) {
		var p struct {
			IDs    []string       `json:"ids"`
			Fields map[string]any `json:"fields"`
		}
		if err := req.Decode(&p); err != nil {
			return nil, invalidf("invalid payload")
		}
		if len(p.IDs) == 0 || len(p.Fields) == 0 {
			return nil, invalidf("ids and fields are required")
		}

		var (
			sets []string
			args []any
		)
		for _, c := range t.columns {
			if c.name == "id" || c.name == "tenant_id" {
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
		_, err := d.pool.Exec(ctx, fmt.Sprintf(`UPDATE %s SET %s WHERE tenant_id = $%d AND id = ANY($%d)`,
			t.qualified(req.Schema), strings.Join(sets, ", "), len(args)-1, len(args)), args...)
		return nil, err
	}
}

func (d *Dispatcher) deleteHandler(t table) Handler {
	return func(ctx context.Context, req Request) (any, error) {
		var p idRequest
		if err := req.Decode(&p); err != nil || p.ID == "" {
			return nil, invalidf("id is required")
		}
		_, err := d.pool.Exec(ctx,
			fmt.Sprintf(`DELETE FROM %s WHERE tenant_id = $1 AND id = $2`, t.qualified(req.Schema)),
			req.TenantID, p.ID)
		return nil, err
	}
}

func (d *Dispatcher) deleteBatchHandler(t table) Handler {
	return func(ctx context.Context, req Request) (any, error) {
		var p idsRequest
		if err := req.Decode(&p); err != nil || len(p.IDs) == 0 {
			return nil, invalidf("ids are required")
		}
		_, err := d.pool.Exec(ctx,
			fmt.Sprintf(`DELETE FROM %s WHERE tenant_id = $1 AND id = ANY($2)`, t.qualified(req.Schema)),
			req.TenantID, p.IDs)
		return nil, err
	}
}

// used by bespoke actions that re-decode JSON text columns
func parseLog[T any](raw *string) ([]T, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	var entries []T
	if err := json.Unmarshal([]byte(*raw), &entries); err != nil {
		return nil, fmt.Errorf("corrupt log column: %w", err)
	}
	return entries, nil
}

func encodeLog[T any](entries []T) (string, error) {
	data, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
