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

type ConsumableHandler struct {
	repos *repositories.Manager
	log   *zap.Logger
}

func NewConsumableHandler(repos *repositories.Manager, log *zap.Logger) *ConsumableHandler {
	return &ConsumableHandler{repos: repos, log: log}
}

func (h *ConsumableHandler) List(c *fiber.Ctx) error {
	repos, err := h.repos.For(middleware.GetTenantID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	consumables, err := repos.Consumables.List(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, consumables)
}

func (h *ConsumableHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid consumable id")
	}
	repos, err := h.repos.For(middleware.GetTenantID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	consumable, err := repos.Consumables.Get(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, consumable)
}

func (h *ConsumableHandler) Create(c *fiber.Ctx) error {
	var consumable models.Consumable
	if err := c.BodyParser(&consumable); err != nil {
		return badRequest(c, "invalid request")
	}
	if consumable.Name == "" {
		return badRequest(c, "name is required")
	}
	consumable.TenantID = middleware.GetTenantID(c)

	repos, err := h.repos.For(consumable.TenantID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Consumables.Add(c.Context(), &consumable, middleware.GetActor(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return created(c, consumable)
}

func (h *ConsumableHandler) CreateBatch(c *fiber.Ctx) error {
	var consumables []models.Consumable
	if err := c.BodyParser(&consumables); err != nil {
		return badRequest(c, "invalid request")
	}
	tenantID := middleware.GetTenantID(c)
	for i := range consumables {
		if consumables[i].Name == "" {
			return badRequest(c, "name is required")
		}
		consumables[i].TenantID = tenantID
	}
	repos, err := h.repos.For(tenantID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Consumables.AddBatch(c.Context(), consumables, middleware.GetActor(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return created(c, consumables)
}

func (h *ConsumableHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid consumable id")
	}
	var consumable models.Consumable
	if err := c.BodyParser(&consumable); err != nil {
		return badRequest(c, "invalid request")
	}
	consumable.ID = id
	consumable.TenantID = middleware.GetTenantID(c)

	repos, err := h.repos.For(consumable.TenantID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Consumables.Update(c.Context(), &consumable, middleware.GetActor(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, consumable)
}

func (h *ConsumableHandler) UpdateBatch(c *fiber.Ctx) error {
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
	if err := repos.Consumables.UpdateBatch(c.Context(), req.IDs, req.Fields); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, nil)
}

func (h *ConsumableHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid consumable id")
	}
	repos, err := h.repos.For(middleware.GetTenantID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Consumables.Delete(c.Context(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, nil)
}

func (h *ConsumableHandler) DeleteBatch(c *fiber.Ctx) error {
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
	if err := repos.Consumables.DeleteBatch(c.Context(), req.IDs); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, nil)
}

func (h *ConsumableHandler) Issue(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid consumable id")
	}
	var req dto.IssueRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	if req.Quantity <= 0 {
		return badRequest(c, "quantity must be positive")
	}
	if req.EmployeeID == uuid.Nil {
		return badRequest(c, "employee_id is required")
	}
	repos, err := h.repos.For(middleware.GetTenantID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Consumables.Issue(c.Context(), id, req.Quantity, req.EmployeeID, middleware.GetActor(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, nil)
}

func (h *ConsumableHandler) Revoke(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid consumable id")
	}
	var req dto.RevokeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	if req.EntryID == uuid.Nil {
		return badRequest(c, "entry_id is required")
	}
	repos, err := h.repos.For(middleware.GetTenantID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Consumables.Revoke(c.Context(), id, req.EntryID, middleware.GetActor(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, nil)
}

func (h *ConsumableHandler) StockSummary(c *fiber.Ctx) error {
	repos, err := h.repos.For(middleware.GetTenantID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	summary, err := repos.Consumables.StockSummary(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, summary)
}
