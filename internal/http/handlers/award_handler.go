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

type AwardHandler struct {
	repos *repositories.Manager
	log   *zap.Logger
}

func NewAwardHandler(repos *repositories.Manager, log *zap.Logger) *AwardHandler {
	return &AwardHandler{repos: repos, log: log}
}

func (h *AwardHandler) List(c *fiber.Ctx) error {
	repos, err := h.repos.For(middleware.GetTenantID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	awards, err := repos.Awards.List(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, awards)
}

func (h *AwardHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid award id")
	}
	repos, err := h.repos.For(middleware.GetTenantID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	award, err := repos.Awards.Get(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, award)
}

func (h *AwardHandler) Create(c *fiber.Ctx) error {
	var award models.Award
	if err := c.BodyParser(&award); err != nil {
		return badRequest(c, "invalid request")
	}
	if award.Title == "" {
		return badRequest(c, "title is required")
	}
	award.TenantID = middleware.GetTenantID(c)

	repos, err := h.repos.For(award.TenantID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Awards.Add(c.Context(), &award, middleware.GetActor(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return created(c, award)
}

func (h *AwardHandler) CreateBatch(c *fiber.Ctx) error {
	var awards []models.Award
	if err := c.BodyParser(&awards); err != nil {
		return badRequest(c, "invalid request")
	}
	tenantID := middleware.GetTenantID(c)
	for i := range awards {
		if awards[i].Title == "" {
			return badRequest(c, "title is required")
		}
		awards[i].TenantID = tenantID
	}
	repos, err := h.repos.For(tenantID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Awards.AddBatch(c.Context(), awards, middleware.GetActor(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return created(c, awards)
}

func (h *AwardHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid award id")
	}
	var award models.Award
	if err := c.BodyParser(&award); err != nil {
		return badRequest(c, "invalid request")
	}
	award.ID = id
	award.TenantID = middleware.GetTenantID(c)

	repos, err := h.repos.For(award.TenantID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Awards.Update(c.Context(), &award, middleware.GetActor(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, award)
}

func (h *AwardHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid award id")
	}
	repos, err := h.repos.For(middleware.GetTenantID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Awards.Delete(c.Context(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, nil)
}

func (h *AwardHandler) DeleteBatch(c *fiber.Ctx) error {
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
	for _, id := range req.IDs {
		if err := repos.Awards.Delete(c.Context(), id); err != nil {
			return respondError(c, h.log, err)
		}
	}
	return ok(c, nil)
}

func (h *AwardHandler) Lock(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid award id")
	}
	repos, err := h.repos.For(middleware.GetTenantID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Awards.Lock(c.Context(), id, middleware.GetActor(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, nil)
}

func (h *AwardHandler) Unlock(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid award id")
	}
	repos, err := h.repos.For(middleware.GetTenantID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Awards.Unlock(c.Context(), id, middleware.GetActor(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, nil)
}
