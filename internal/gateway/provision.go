package gateway

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// provisionTenant creates the tenant's schema and entity tables. Until this
// runs, every List against the tenant reports the collection as empty via the
// table_not_found code.
func (d *Dispatcher) provisionTenant(ctx context.Context, req Request) (any, error) {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %q`, req.Schema)); err != nil {
		return nil, err
	}
	for _, t := range entityTables {
		if _, err := tx.Exec(ctx, t.ddl(req.Schema)); err != nil {
			return nil, fmt.Errorf("create %s: %w", t.name, err)
		}
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO tenants (tenant_id, schema_name) VALUES ($1, $2)
		ON CONFLICT (tenant_id) DO NOTHING
	`, req.TenantID, req.Schema); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	d.log.Info("tenant provisioned",
		zap.String("tenant_id", req.TenantID),
		zap.String("schema", req.Schema))
	return fiber.Map{"ok": true, "schema": req.Schema}, nil
}
