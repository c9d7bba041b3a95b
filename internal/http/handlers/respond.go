package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/assetdesk/backend/internal/http/dto"
	"github.com/assetdesk/backend/internal/storage"
)

// respondError maps storage sentinels to HTTP statuses. Anything unmapped is
// logged and reported as a plain 500 without leaking internals.
func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "not found"})
	case errors.Is(err, storage.ErrNotProvisioned):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "tenant storage not provisioned"})
	case errors.Is(err, storage.ErrLocked):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: "record is locked"})
	case errors.Is(err, storage.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: "insufficient stock"})
	case errors.Is(err, storage.ErrNoSeats):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: "no license seats left"})
	case errors.Is(err, storage.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: "concurrent modification, retry"})
	case errors.Is(err, storage.ErrTenantMismatch):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "entity belongs to another tenant"})
	default:
		log.Error("request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg})
}

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: data})
}

func created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: data})
}
