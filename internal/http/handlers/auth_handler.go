package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/assetdesk/backend/internal/auth"
	"github.com/assetdesk/backend/internal/config"
	"github.com/assetdesk/backend/internal/http/dto"
	"github.com/assetdesk/backend/internal/repositories"
)

type AuthHandler struct {
	cfg   *config.Config
	repos *repositories.Manager
	log   *zap.Logger
}

func NewAuthHandler(cfg *config.Config, repos *repositories.Manager, log *zap.Logger) *AuthHandler {
	return &AuthHandler{cfg: cfg, repos: repos, log: log}
}

// Login exchanges a tenant user's email for a JWT. Identity is asserted by
// the caller; the SSO layer in front of this service is expected to have
// verified it already.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	if req.TenantID == "" || req.Email == "" {
		return badRequest(c, "tenant_id and email are required")
	}

	repos, err := h.repos.For(req.TenantID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	users, err := repos.Users.List(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}

	for i := range users {
		if !strings.EqualFold(users[i].Email, req.Email) {
			continue
		}
		if users[i].Disabled {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "account disabled"})
		}

		actor := users[i].Email
		if users[i].Name != nil && *users[i].Name != "" {
			actor = *users[i].Name
		}

		token, err := auth.GenerateJWT(h.cfg.JWTSecret, req.TenantID, actor, users[i].Role, h.cfg.JWTExpiration)
		if err != nil {
			return respondError(c, h.log, err)
		}

		now := time.Now().UTC()
		users[i].LastLoginAt = &now
		if err := repos.Users.Update(c.Context(), &users[i], actor); err != nil {
			h.log.Warn("last login update failed", zap.Error(err))
		}

		return c.JSON(dto.AuthResponse{Token: token, User: users[i]})
	}

	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "unknown user"})
}
