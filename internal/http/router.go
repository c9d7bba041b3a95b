package http

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/assetdesk/backend/internal/config"
	"github.com/assetdesk/backend/internal/http/handlers"
	"github.com/assetdesk/backend/internal/middleware"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	authHandler *handlers.AuthHandler,
	assetHandler *handlers.AssetHandler,
	employeeHandler *handlers.EmployeeHandler,
	vendorHandler *handlers.VendorHandler,
	softwareHandler *handlers.SoftwareHandler,
	consumableHandler *handlers.ConsumableHandler,
	awardHandler *handlers.AwardHandler,
	userHandler *handlers.UserHandler,
	adminHandler *handlers.AdminHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	// Auth (public)
	api.Post("/auth/login", authHandler.Login)

	api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))

	// Everything below is tenant-scoped
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))
	write := middleware.RequireWriter()

	// Assets
	assets := protected.Group("/assets")
	assets.Get("/", assetHandler.List)
	assets.Get("/:id", assetHandler.Get)
	assets.Post("/", write, assetHandler.Create)
	assets.Post("/batch", write, assetHandler.CreateBatch)
	assets.Put("/:id", write, assetHandler.Update)
	assets.Patch("/batch", write, assetHandler.UpdateBatch)
	assets.Delete("/batch", write, assetHandler.DeleteBatch)
	assets.Delete("/:id", write, assetHandler.Delete)
	assets.Post("/:id/comments", write, assetHandler.AddComment)

	// Employees
	employees := protected.Group("/employees")
	employees.Get("/", employeeHandler.List)
	employees.Get("/:id", employeeHandler.Get)
	employees.Post("/", write, employeeHandler.Create)
	employees.Post("/batch", write, employeeHandler.CreateBatch)
	employees.Put("/:id", write, employeeHandler.Update)
	employees.Patch("/batch", write, employeeHandler.UpdateBatch)
	employees.Delete("/batch", write, employeeHandler.DeleteBatch)
	employees.Delete("/:id", write, employeeHandler.Delete)
	employees.Post("/:id/comments", write, employeeHandler.AddComment)

	// Vendors
	vendors := protected.Group("/vendors")
	vendors.Get("/", vendorHandler.List)
	vendors.Get("/:id", vendorHandler.Get)
	vendors.Post("/", write, vendorHandler.Create)
	vendors.Post("/batch", write, vendorHandler.CreateBatch)
	vendors.Put("/:id", write, vendorHandler.Update)
	vendors.Patch("/batch", write, vendorHandler.UpdateBatch)
	vendors.Delete("/batch", write, vendorHandler.DeleteBatch)
	vendors.Delete("/:id", write, vendorHandler.Delete)

	// Software licenses
	software := protected.Group("/software")
	software.Get("/", softwareHandler.List)
	software.Get("/:id", softwareHandler.Get)
	software.Post("/", write, softwareHandler.Create)
	software.Post("/batch", write, softwareHandler.CreateBatch)
	software.Put("/:id", write, softwareHandler.Update)
	software.Patch("/batch", write, softwareHandler.UpdateBatch)
	software.Delete("/batch", write, softwareHandler.DeleteBatch)
	software.Delete("/:id", write, softwareHandler.Delete)
	software.Post("/:id/assign", write, softwareHandler.Assign)
	software.Post("/:id/unassign", write, softwareHandler.Unassign)

	// Consumables
	consumables := protected.Group("/consumables")
	consumables.Get("/", consumableHandler.List)
	consumables.Get("/reports/stock", consumableHandler.StockSummary)
	consumables.Get("/:id", consumableHandler.Get)
	consumables.Post("/", write, consumableHandler.Create)
	consumables.Post("/batch", write, consumableHandler.CreateBatch)
	consumables.Put("/:id", write, consumableHandler.Update)
	consumables.Patch("/batch", write, consumableHandler.UpdateBatch)
	consumables.Delete("/batch", write, consumableHandler.DeleteBatch)
	consumables.Delete("/:id", write, consumableHandler.Delete)
	consumables.Post("/:id/issue", write, consumableHandler.Issue)
	consumables.Post("/:id/revoke", write, consumableHandler.Revoke)

	// Awards
	awards := protected.Group("/awards")
	awards.Get("/", awardHandler.List)
	awards.Get("/:id", awardHandler.Get)
	awards.Post("/", write, awardHandler.Create)
	awards.Post("/batch", write, awardHandler.CreateBatch)
	awards.Put("/:id", write, awardHandler.Update)
	awards.Delete("/batch", write, awardHandler.DeleteBatch)
	awards.Delete("/:id", write, awardHandler.Delete)
	awards.Post("/:id/lock", write, awardHandler.Lock)
	awards.Post("/:id/unlock", write, awardHandler.Unlock)

	// Users (tenant administration)
	users := protected.Group("/users", middleware.RequireAdmin())
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.Get)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/batch", userHandler.DeleteBatch)
	users.Delete("/:id", userHandler.Delete)

	// Tenant provisioning
	admin := protected.Group("/admin", middleware.RequireAdmin())
	admin.Post("/tenants/:id/provision", adminHandler.ProvisionTenant)

	// Activity feed
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws/activity", websocket.New(wsHub.HandleWS))
}
