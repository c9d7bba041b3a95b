package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/assetdesk/backend/internal/config"
	"github.com/assetdesk/backend/internal/db"
	"github.com/assetdesk/backend/internal/events"
	apphttp "github.com/assetdesk/backend/internal/http"
	"github.com/assetdesk/backend/internal/http/handlers"
	"github.com/assetdesk/backend/internal/repositories"
	"github.com/assetdesk/backend/internal/storage"
	"github.com/assetdesk/backend/internal/storage/relstore"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	if err := cfg.Validate(log); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis (document store + event bus)
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Relational gateway client
	gw := relstore.NewClient(cfg.GatewayURL, log)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Repositories
	manager := repositories.NewManager(rdb, gw, publisher, log, func(tenantID string) (storage.TenantConfig, error) {
		return cfg.TenantConfig(tenantID)
	})

	// Handlers
	authHandler := handlers.NewAuthHandler(cfg, manager, log)
	assetHandler := handlers.NewAssetHandler(manager, log)
	employeeHandler := handlers.NewEmployeeHandler(manager, log)
	vendorHandler := handlers.NewVendorHandler(manager, log)
	softwareHandler := handlers.NewSoftwareHandler(manager, log)
	consumableHandler := handlers.NewConsumableHandler(manager, log)
	awardHandler := handlers.NewAwardHandler(manager, log)
	userHandler := handlers.NewUserHandler(manager, log)
	adminHandler := handlers.NewAdminHandler(cfg, gw, log)
	wsHub := handlers.NewWSHub(cfg, subscriber, log)

	// Start WS hub
	wsHub.Start(ctx)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb,
		authHandler, assetHandler, employeeHandler, vendorHandler,
		softwareHandler, consumableHandler, awardHandler, userHandler,
		adminHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
