package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/assetdesk/backend/internal/http/dto"
	"github.com/assetdesk/backend/internal/middleware"
	"github.com/assetdesk/backend/internal/models"
	"github.com/assetdesk/backend/internal/repositories"
)

type VendorHandler struct {
	repos *repositories.Manager
	log   *zap.Logger
}

func NewVendorHandler(repos *repositories.Manager, log *zap.Logger) *VendorHandler {
	return &VendorHandler{repos: repos, log: log}
}

func (h *VendorHandler) List(c *fiber.Ctx) error {
	repos, err := h.repos.For(middleware.GetTenantID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	vendors, err := repos.Vendors.List(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, vendors)
}

func (h *VendorHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid vendor id")
	}
	repos, err := h.repos.For(middleware.GetTenantID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	vendor, err := repos.Vendors.Get(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, vendor)
}

func (h *VendorHandler) Create(c *fiber.Ctx) error {
	var vendor models.Vendor
	if err := c.BodyParser(&vendor); err != nil {
		return badRequest(c, "invalid request")
	}
	if vendor.Name == "" {
		return badRequest(c, "name is required")
	}
	vendor.TenantID = middleware.GetTenantID(c)

	repos, err := h.repos.For(vendor.TenantID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Vendors.Add(c.Context(), &vendor, middleware.GetActor(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return created(c, vendor)
}

func (h *VendorHandler) CreateBatch(c *fiber.Ctx) error {
	var vendors []models.Vendor
	if err := c.BodyParser(&vendors); err != nil {
		return badRequest(c, "invalid request")
	}
	tenantID := middleware.GetTenantID(c)
	for i := range vendors {
		if vendors[i].Name == "" {
			return badRequest(c, "name is required")
		}
		vendors[i].TenantID = tenantID
	}
	repos, err := h.repos.For(tenantID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Vendors.AddBatch(c.Context(), vendors, middleware.GetActor(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return created(c, vendors)
}

func (h *VendorHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid vendor id")
	}
	var vendor models.Vendor
	if err := c.BodyParser(&vendor); err != nil {
		return badRequest(c, "invalid request")
	}
	vendor.ID = id
	vendor.TenantID = middleware.GetTenantID(c)

	repos, err := h.repos.For(vendor.TenantID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Vendors.Update(c.Context(), &vendor, middleware.GetActor(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, vendor)
}

func (h *VendorHandler) UpdateBatch(c *fiber.Ctx) error {
	var req dto.BatchUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	if len(req.IDs) == 0 || len(req.Fields) == 0 {
		return badRequest(c, "ids and fields are required")
	}
	repos, err := h.repos.For(middleware.GetTenantID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Vendors.UpdateBatch(c.Context(), req.IDs, req.Fields); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, nil)
}

func (h *VendorHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid vendor id")
	}
	repos, err := h.repos.For(middleware.GetTenantID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Vendors.Delete(c.Context(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, nil)
}

func (h *VendorHandler) DeleteBatch(c *fiber.Ctx) error {
	var req dto.BatchDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	if len(req.IDs) == 0 {
		return badRequest(c, "ids are required")
	}
	repos, err := h.repos.For(middleware.GetTenantID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Vendors.DeleteBatch(c.Context(), req.IDs); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, nil)
}
