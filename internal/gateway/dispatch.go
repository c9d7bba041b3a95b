// Package gateway implements the relational gateway: one HTTP endpoint that
// receives {action, tenant_id, config, ...payload} and executes the named
// server-side operation against the tenant's Postgres schema. Unknown actions
// and handler failures come back as {message, code} with a non-2xx status;
// successful results are returned raw for the calling repository to reshape.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/assetdesk/backend/internal/storage"
)

// envelope is the fixed part of every gateway request; action-specific fields
// sit next to it in the same JSON object and are re-decoded by the handler.
type envelope struct {
	Action   string                   `json:"action"`
	TenantID string                   `json:"tenant_id"`
	Config   storage.RelationalConfig `json:"config"`
}

// Request is what a handler sees: the tenant scope plus the raw body to
// decode its own fields from.
type Request struct {
	TenantID string
	Schema   string
	Body     []byte
}

func (r Request) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}

type Handler func(ctx context.Context, req Request) (any, error)

// invalidError marks a malformed or rule-violating payload; it maps to a 400.
type invalidError struct {
	msg string
}

func (e invalidError) Error() string { return e.msg }

func invalidf(format string, args ...any) error {
	return invalidError{msg: fmt.Sprintf(format, args...)}
}

type Dispatcher struct {
	pool     *pgxpool.Pool
	log      *zap.Logger
	handlers map[string]Handler
}

func NewDispatcher(pool *pgxpool.Pool, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		pool:     pool,
		log:      log,
		handlers: make(map[string]Handler),
	}

	for _, t := range entityTables {
		d.registerEntity(t)
	}

	// Entity-specific actions executed server-side in one step.
	d.handlers["addAssetComment"] = d.appendCommentHandler(assetTable)
	d.handlers["addEmployeeComment"] = d.appendCommentHandler(employeeTable)
	d.handlers["issueConsumable"] = d.issueConsumable
	d.handlers["revokeIssuedConsumable"] = d.revokeIssuedConsumable
	d.handlers["assignSoftware"] = d.assignSoftware
	d.handlers["unassignSoftware"] = d.unassignSoftware
	d.handlers["lockAward"] = d.setAwardLock(true)
	d.handlers["unlockAward"] = d.setAwardLock(false)
	d.handlers["provisionTenant"] = d.provisionTenant

	// Award update/delete enforce the lock server-side, replacing the
	// generic handlers registered above. The batch verbs are guarded too.
	d.handlers["updateAward"] = d.updateAwardLocked
	d.handlers["deleteAward"] = d.deleteAwardLocked
	d.handlers["updateAwards"] = d.updateAwardsLocked
	d.handlers["deleteAwards"] = d.deleteAwardsLocked

	return d
}

// Actions reports the registered action names, for startup logging.
func (d *Dispatcher) Actions() int { return len(d.handlers) }

// Handle is the fiber endpoint behind POST /rpc.
func (d *Dispatcher) Handle(c *fiber.Ctx) error {
	var env envelope
	if err := json.Unmarshal(c.Body(), &env); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "invalid request body", storage.CodeInternal)
	}
	if env.Action == "" || env.TenantID == "" {
		return errorResponse(c, fiber.StatusBadRequest, "action and tenant_id are required", storage.CodeInternal)
	}
	if err := env.Config.Validate(); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error(), storage.CodeInternal)
	}

	handler, ok := d.handlers[env.Action]
	if !ok {
		return errorResponse(c, fiber.StatusBadRequest, fmt.Sprintf("unknown action %q", env.Action), storage.CodeUnknownAction)
	}

	res, err := handler(c.Context(), Request{
		TenantID: env.TenantID,
		Schema:   env.Config.Schema,
		Body:     c.Body(),
	})
	if err != nil {
		return d.errorFor(c, env, err)
	}

	if res == nil {
		res = fiber.Map{"ok": true}
	}
	return c.JSON(res)
}

func (d *Dispatcher) errorFor(c *fiber.Ctx, env envelope, err error) error {
	err = mapPgError(err)

	var invalid invalidError
	if errors.As(err, &invalid) {
		return errorResponse(c, fiber.StatusBadRequest, invalid.msg, storage.CodeInternal)
	}

	code := storage.ErrorToCode(err)
	switch code {
	case storage.CodeNotFound, storage.CodeTableNotFound:
		return errorResponse(c, fiber.StatusNotFound, err.Error(), code)
	case storage.CodeInsufficientStock, storage.CodeRecordLocked, storage.CodeNoSeats:
		return errorResponse(c, fiber.StatusConflict, err.Error(), code)
	default:
		d.log.Error("action failed",
			zap.String("action", env.Action),
			zap.String("tenant_id", env.TenantID),
			zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, err.Error(), storage.CodeInternal)
	}
}

func errorResponse(c *fiber.Ctx, status int, message, code string) error {
	return c.Status(status).JSON(fiber.Map{"message": message, "code": code})
}

// mapPgError translates Postgres's structured SQLSTATE for a missing relation
// into the not-provisioned sentinel. No message matching is involved.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "42P01" {
		return fmt.Errorf("%s: %w", pgErr.Message, storage.ErrNotProvisioned)
	}
	return err
}
