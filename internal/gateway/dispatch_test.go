package gateway

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/assetdesk/backend/internal/storage"
)

func TestAllEntityActionsRegistered(t *testing.T) {
	d := NewDispatcher(nil, nil)

	verbs := []string{"get", "add", "update", "delete"}
	for _, tbl := range entityTables {
		for _, v := range verbs {
			for _, suffix := range []string{tbl.singular, tbl.plural} {
				if _, ok := d.handlers[v+suffix]; !ok {
					t.Errorf("action %s%s not registered", v, suffix)
				}
			}
		}
	}

	special := []string{
		"addAssetComment", "addEmployeeComment",
		"issueConsumable", "revokeIssuedConsumable",
		"assignSoftware", "unassignSoftware",
		"lockAward", "unlockAward",
		"provisionTenant",
	}
	for _, name := range special {
		if _, ok := d.handlers[name]; !ok {
			t.Errorf("action %s not registered", name)
		}
	}
}

func TestAwardBatchFieldsGuardLockFlag(t *testing.T) {
	if err := awardBatchFields(map[string]any{"is_locked": false}); err == nil {
		t.Error("is_locked in a batch field set should be rejected")
	}
	if err := awardBatchFields(map[string]any{"title": "renamed"}); err != nil {
		t.Errorf("title-only field set should pass, got %v", err)
	}
}

func TestMapPgErrorTranslatesUndefinedTable(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "42P01", Message: `relation "tenant_acme.assets" does not exist`}
	err := mapPgError(fmt.Errorf("query: %w", pgErr))
	if !errors.Is(err, storage.ErrNotProvisioned) {
		t.Errorf("42P01 should map to ErrNotProvisioned, got %v", err)
	}

	other := &pgconn.PgError{Code: "23505", Message: "duplicate key"}
	if errors.Is(mapPgError(other), storage.ErrNotProvisioned) {
		t.Error("non-42P01 errors must not map to ErrNotProvisioned")
	}
}

func TestTableDDLQuotesSchema(t *testing.T) {
	ddl := assetTable.ddl("tenant_acme")
	want := `CREATE TABLE IF NOT EXISTS "tenant_acme"."assets"`
	if len(ddl) < len(want) || ddl[:len(want)] != want {
		t.Errorf("ddl should start with %q, got %q", want, ddl)
	}
}

func TestCoerceRejectsWrongTypes(t *testing.T) {
	if _, err := coerce(column{name: "quantity", kind: kindInt}, "ten"); err == nil {
		t.Error("string into int column should be rejected")
	}
	if _, err := coerce(column{name: "is_locked", kind: kindBool}, 1.0); err == nil {
		t.Error("number into bool column should be rejected")
	}
	if v, err := coerce(column{name: "quantity", kind: kindInt}, 7.0); err != nil || v != int64(7) {
		t.Errorf("coerce(7.0) = %v, %v; want 7", v, err)
	}
	if v, err := coerce(column{name: "name", kind: kindText}, nil); err != nil || v != nil {
		t.Errorf("nil should pass through, got %v, %v", v, err)
	}
}
