package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"smartchama/internal/adapters/http/middleware"
	"smartchama/internal/adapters/http/routes"
	"smartchama/internal/adapters/persistence/memory"
	"smartchama/internal/config"
	"smartchama/internal/core/services"
	"smartchama/internal/logger"
	"smartchama/internal/pkg/idgen"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// @title SmartChama API
// @version 1.0
// @description Savings-group (chama) management API: members, contributions, payouts, penalties and M-Pesa payments.

// @contact.name API Support
// @contact.email support@smartchama.co.ke

// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}

	log := logger.New(os.Stdout, cfg.IsProd())

	// In-memory store; every entity draws ids from one shared counter
	store := memory.NewStore(idgen.NewCounter(1))

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "SmartChama API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (wires repositories, services and handlers)
	sweeper := routes.Setup(app, store, cfg, log)

	// Seed the development dataset (state does not survive restarts)
	seeder := config.NewSeeder(
		memory.NewUserRepository(store),
		memory.NewChamaRepository(store),
		memory.NewMemberRepository(store),
		memory.NewContributionRepository(store),
		log,
	)
	if err := seeder.Run(context.Background()); err != nil {
		log.WithError(err).Fatal("failed to seed data")
	}

	// Background jobs: overdue reminders + payment expiry
	if err := sweeper.Start(); err != nil {
		log.WithError(err).Fatal("failed to start sweeper")
	}

	// Graceful shutdown
	go gracefulShutdown(app, sweeper, log)

	log.WithFields(logrus.Fields{
		"port": cfg.Port,
		"mode": cfg.AppMode,
	}).Info("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App, sweeper *services.SweeperService, log *logrus.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	sweeper.Stop()
	if err := app.Shutdown(); err != nil {
		log.WithError(err).Error("error during shutdown")
	}
	log.Info("server stopped gracefully")
}
