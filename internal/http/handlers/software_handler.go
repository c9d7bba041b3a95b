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

type SoftwareHandler struct {
	repos *repositories.Manager
	log   *zap.Logger
}

func NewSoftwareHandler(repos *repositories.Manager, log *zap.Logger) *SoftwareHandler {
	return &SoftwareHandler{repos: repos, log: log}
}

func (h *SoftwareHandler) List(c *fiber.Ctx) error {
	repos, err := h.repos.For(middleware.GetTenantID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	licenses, err := repos.Software.List(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, licenses)
}

func (h *SoftwareHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid software id")
	}
	repos, err := h.repos.For(middleware.GetTenantID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	license, err := repos.Software.Get(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, license)
}

func (h *SoftwareHandler) Create(c *fiber.Ctx) error {
	var license models.Software
	if err := c.BodyParser(&license); err != nil {
		return badRequest(c, "invalid request")
	}
	if license.Name == "" {
		return badRequest(c, "name is required")
	}
	if license.Seats < 0 {
		return badRequest(c, "seats must not be negative")
	}
	license.TenantID = middleware.GetTenantID(c)

	repos, err := h.repos.For(license.TenantID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Software.Add(c.Context(), &license, middleware.GetActor(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return created(c, license)
}

func (h *SoftwareHandler) CreateBatch(c *fiber.Ctx) error {
	var licenses []models.Software
	if err := c.BodyParser(&licenses); err != nil {
		return badRequest(c, "invalid request")
	}
	tenantID := middleware.GetTenantID(c)
	for i := range licenses {
		if licenses[i].Name == "" {
			return badRequest(c, "name is required")
		}
		licenses[i].TenantID = tenantID
	}
	repos, err := h.repos.For(tenantID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Software.AddBatch(c.Context(), licenses, middleware.GetActor(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return created(c, licenses)
}

func (h *SoftwareHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid software id")
	}
	var license models.Software
	if err := c.BodyParser(&license); err != nil {
		return badRequest(c, "invalid request")
	}
	license.ID = id
	license.TenantID = middleware.GetTenantID(c)

	repos, err := h.repos.For(license.TenantID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Software.Update(c.Context(), &license, middleware.GetActor(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, license)
}

func (h *SoftwareHandler) UpdateBatch(c *fiber.Ctx) error {
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
	if err := repos.Software.UpdateBatch(c.Context(), req.IDs, req.Fields); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, nil)
}

func (h *SoftwareHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid software id")
	}
	repos, err := h.repos.For(middleware.GetTenantID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Software.Delete(c.Context(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, nil)
}

func (h *SoftwareHandler) DeleteBatch(c *fiber.Ctx) error {
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
	if err := repos.Software.DeleteBatch(c.Context(), req.IDs); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, nil)
}

func (h *SoftwareHandler) Assign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid software id")
	}
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	if req.EmployeeID == uuid.Nil {
		return badRequest(c, "employee_id is required")
	}
	repos, err := h.repos.For(middleware.GetTenantID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Software.Assign(c.Context(), id, req.EmployeeID, middleware.GetActor(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, nil)
}

func (h *SoftwareHandler) Unassign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid software id")
	}
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	if req.EmployeeID == uuid.Nil {
		return badRequest(c, "employee_id is required")
	}
	repos, err := h.repos.For(middleware.GetTenantID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Software.Unassign(c.Context(), id, req.EmployeeID, middleware.GetActor(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, nil)
}
