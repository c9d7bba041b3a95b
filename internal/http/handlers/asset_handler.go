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

type AssetHandler struct {
	repos *repositories.Manager
	log   *zap.Logger
}

func NewAssetHandler(repos *repositories.Manager, log *zap.Logger) *AssetHandler {
	return &AssetHandler{repos: repos, log: log}
}

func (h *AssetHandler) List(c *fiber.Ctx) error {
	repos, err := h.repos.For(middleware.GetTenantID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	assets, err := repos.Assets.List(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, assets)
}

func (h *AssetHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid asset id")
	}
	repos, err := h.repos.For(middleware.GetTenantID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	asset, err := repos.Assets.Get(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, asset)
}

func (h *AssetHandler) Create(c *fiber.Ctx) error {
	var asset models.Asset
	if err := c.BodyParser(&asset); err != nil {
		return badRequest(c, "invalid request")
	}
	if asset.Name == "" {
		return badRequest(c, "name is required")
	}
	asset.TenantID = middleware.GetTenantID(c)

	repos, err := h.repos.For(asset.TenantID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Assets.Add(c.Context(), &asset, middleware.GetActor(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return created(c, asset)
}

func (h *AssetHandler) CreateBatch(c *fiber.Ctx) error {
	var assets []models.Asset
	if err := c.BodyParser(&assets); err != nil {
		return badRequest(c, "invalid request")
	}
	tenantID := middleware.GetTenantID(c)
	for i := range assets {
		if assets[i].Name == "" {
			return badRequest(c, "name is required")
		}
		assets[i].TenantID = tenantID
	}
	repos, err := h.repos.For(tenantID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Assets.AddBatch(c.Context(), assets, middleware.GetActor(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return created(c, assets)
}

func (h *AssetHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid asset id")
	}
	var asset models.Asset
	if err := c.BodyParser(&asset); err != nil {
		return badRequest(c, "invalid request")
	}
	asset.ID = id
	asset.TenantID = middleware.GetTenantID(c)

	repos, err := h.repos.For(asset.TenantID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Assets.Update(c.Context(), &asset, middleware.GetActor(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, asset)
}

func (h *AssetHandler) UpdateBatch(c *fiber.Ctx) error {
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
	if err := repos.Assets.UpdateBatch(c.Context(), req.IDs, req.Fields); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, nil)
}

func (h *AssetHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid asset id")
	}
	repos, err := h.repos.For(middleware.GetTenantID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Assets.Delete(c.Context(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, nil)
}

func (h *AssetHandler) DeleteBatch(c *fiber.Ctx) error {
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
	if err := repos.Assets.DeleteBatch(c.Context(), req.IDs); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, nil)
}

func (h *AssetHandler) AddComment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid asset id")
	}
	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	if req.Text == "" {
		return badRequest(c, "text is required")
	}
	repos, err := h.repos.For(middleware.GetTenantID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Assets.AddComment(c.Context(), id, req.Text, middleware.GetActor(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, nil)
}
