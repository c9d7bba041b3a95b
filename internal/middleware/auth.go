package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/assetdesk/backend/internal/auth"
	"github.com/assetdesk/backend/internal/config"
	"github.com/assetdesk/backend/internal/models"
)

const (
	CtxTenantID = "tenant_id"
	CtxActor    = "actor"
	CtxRole     = "role"
)

func AuthMiddleware(cfg *config.Config, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
		}

		claims, err := auth.ParseJWT(cfg.JWTSecret, tokenStr)
		if err != nil {
			log.Debug("jwt parse error", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		c.Locals(CtxTenantID, claims.TenantID)
		c.Locals(CtxActor, claims.Actor)
		c.Locals(CtxRole, claims.Role)

		return c.Next()
	}
}

func GetTenantID(c *fiber.Ctx) string {
	id, _ := c.Locals(CtxTenantID).(string)
	return id
}

func GetActor(c *fiber.Ctx) string {
	actor, _ := c.Locals(CtxActor).(string)
	return actor
}

func GetRole(c *fiber.Ctx) string {
	role, _ := c.Locals(CtxRole).(string)
	return role
}

// RequireWriter rejects viewers on mutating routes.
func RequireWriter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch GetRole(c) {
		case models.RoleAdmin, models.RoleEditor:
			return c.Next()
		default:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "write access required"})
		}
	}
}

// RequireAdmin guards tenant administration routes.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetRole(c) != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin access required"})
		}
		return c.Next()
	}
}
