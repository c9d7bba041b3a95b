package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/assetdesk/backend/internal/config"
	"github.com/assetdesk/backend/internal/storage"
	"github.com/assetdesk/backend/internal/storage/relstore"
)

type AdminHandler struct {
	cfg *config.Config
	gw  *relstore.Client
	log *zap.Logger
}

func NewAdminHandler(cfg *config.Config, gw *relstore.Client, log *zap.Logger) *AdminHandler {
	return &AdminHandler{cfg: cfg, gw: gw, log: log}
}

// ProvisionTenant creates the per-tenant schema and tables on the relational
// backend. Safe to call repeatedly. Document tenants need no provisioning and
// are rejected here.
func (h *AdminHandler) ProvisionTenant(c *fiber.Ctx) error {
	tenantID := c.Params("id")
	if tenantID == "" {
		return badRequest(c, "tenant id is required")
	}

	tc, err := h.cfg.TenantConfig(tenantID)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if tc.Provider != storage.ProviderRelational {
		return badRequest(c, "tenant does not use the relational backend")
	}

	var result map[string]any
	if err := h.gw.Call(c.Context(), "provisionTenant", tenantID, tc.Relational, nil, &result); err != nil {
		return respondError(c, h.log, err)
	}

	h.log.Info("tenant provisioned",
		zap.String("tenant_id", tenantID),
		zap.String("schema", tc.Relational.Schema))
	return ok(c, result)
}
