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

type UserHandler struct {
	repos *repositories.Manager
	log   *zap.Logger
}

func NewUserHandler(repos *repositories.Manager, log *zap.Logger) *UserHandler {
	return &UserHandler{repos: repos, log: log}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	repos, err := h.repos.For(middleware.GetTenantID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	users, err := repos.Users.List(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, users)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid user id")
	}
	repos, err := h.repos.For(middleware.GetTenantID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	user, err := repos.Users.Get(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, user)
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		return badRequest(c, "invalid request")
	}
	if user.Email == "" {
		return badRequest(c, "email is required")
	}
	if user.Role != "" {
		if user.Role != models.RoleAdmin && user.Role != models.RoleEditor && user.Role != models.RoleViewer {
			return badRequest(c, "unknown role")
		}
	}
	user.TenantID = middleware.GetTenantID(c)

	repos, err := h.repos.For(user.TenantID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Users.Add(c.Context(), &user, middleware.GetActor(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return created(c, user)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid user id")
	}
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		return badRequest(c, "invalid request")
	}
	user.ID = id
	user.TenantID = middleware.GetTenantID(c)

	repos, err := h.repos.For(user.TenantID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Users.Update(c.Context(), &user, middleware.GetActor(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, user)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid user id")
	}
	repos, err := h.repos.For(middleware.GetTenantID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := repos.Users.Delete(c.Context(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, nil)
}

func (h *UserHandler) DeleteBatch(c *fiber.Ctx) error {
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
	if err := repos.Users.DeleteBatch(c.Context(), req.IDs); err != nil {
		return respondError(c, h.log, err)
	}
	return ok(c, nil)
}
