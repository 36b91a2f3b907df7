package routes

import (
	"time"

	"smartchama/internal/adapters/http/handlers"
	"smartchama/internal/adapters/http/middleware"
	"smartchama/internal/adapters/persistence/memory"
	"smartchama/internal/config"
	"smartchama/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Setup wires repositories, services and handlers onto the app
func Setup(app *fiber.App, store *memory.Store, cfg *config.Config, log *logrus.Logger) *services.SweeperService {
	// Repositories
	userRepo := memory.NewUserRepository(store)
	chamaRepo := memory.NewChamaRepository(store)
	memberRepo := memory.NewMemberRepository(store)
	contributionRepo := memory.NewContributionRepository(store)
	payoutRepo := memory.NewPayoutRepository(store)
	penaltyRepo := memory.NewPenaltyRepository(store)
	notificationRepo := memory.NewNotificationRepository(store)
	paymentRepo := memory.NewPaymentRequestRepository(store)
	statsRepo := memory.NewStatsRepository(store)

	// Services
	authService := services.NewAuthService(userRepo, cfg)
	overdueService := services.NewOverdueService(memberRepo, contributionRepo, notificationRepo, log)
	mpesaService := services.NewMpesaService(cfg.Mpesa, memberRepo, contributionRepo, notificationRepo, paymentRepo, log)
	sweeperService := services.NewSweeperService(cfg.Sweep, userRepo, overdueService, mpesaService, log)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	dashboardHandler := handlers.NewDashboardHandler(statsRepo)
	chamaHandler := handlers.NewChamaHandler(chamaRepo, memberRepo, contributionRepo)
	memberHandler := handlers.NewMemberHandler(memberRepo)
	contributionHandler := handlers.NewContributionHandler(contributionRepo, overdueService)
	payoutHandler := handlers.NewPayoutHandler(payoutRepo)
	penaltyHandler := handlers.NewPenaltyHandler(penaltyRepo)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	mpesaHandler := handlers.NewMpesaHandler(mpesaService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.Check)

	api := app.Group("/api")

	// Auth routes (public, stricter rate limit)
	authRoutes := api.Group("/auth", middleware.NoCacheHeaders())
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/signup", middleware.AuthRateLimiter(), authHandler.Signup)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)

	// Dashboard (stats tolerate a short browser-side cache)
	api.Get("/dashboard/stats", middleware.PrivateCacheHeaders(30*time.Second), dashboardHandler.GetStats)

	// Chamas
	chamaRoutes := api.Group("/chamas")
	chamaRoutes.Get("/", chamaHandler.List)
	chamaRoutes.Post("/", chamaHandler.Create)
	chamaRoutes.Get("/:id", chamaHandler.Get)
	chamaRoutes.Put("/:id", chamaHandler.Update)
	chamaRoutes.Delete("/:id", chamaHandler.Delete)
	chamaRoutes.Get("/:id/members", chamaHandler.ListMembers)
	chamaRoutes.Get("/:id/contributions", chamaHandler.ListContributions)

	// Members
	memberRoutes := api.Group("/members")
	memberRoutes.Get("/", memberHandler.List)
	memberRoutes.Post("/", memberHandler.Create)
	memberRoutes.Get("/:id", memberHandler.Get)
	memberRoutes.Put("/:id", memberHandler.Update)
	memberRoutes.Delete("/:id", memberHandler.Delete)

	// Contributions (overdue first so "overdue" is not taken as an :id)
	contributionRoutes := api.Group("/contributions")
	contributionRoutes.Get("/overdue/:userId", contributionHandler.CheckOverdue)
	contributionRoutes.Get("/", contributionHandler.List)
	contributionRoutes.Post("/", contributionHandler.Create)
	contributionRoutes.Get("/:id", contributionHandler.Get)
	contributionRoutes.Put("/:id", contributionHandler.Update)
	contributionRoutes.Delete("/:id", contributionHandler.Delete)

	// Payouts
	payoutRoutes := api.Group("/payouts")
	payoutRoutes.Get("/", payoutHandler.List)
	payoutRoutes.Post("/", payoutHandler.Create)
	payoutRoutes.Get("/:id", payoutHandler.Get)
	payoutRoutes.Put("/:id", payoutHandler.Update)
	payoutRoutes.Delete("/:id", payoutHandler.Delete)

	// Penalties
	penaltyRoutes := api.Group("/penalties")
	penaltyRoutes.Get("/", penaltyHandler.List)
	penaltyRoutes.Post("/", penaltyHandler.Create)
	penaltyRoutes.Get("/:id", penaltyHandler.Get)
	penaltyRoutes.Put("/:id", penaltyHandler.Update)
	penaltyRoutes.Delete("/:id", penaltyHandler.Delete)

	// Notifications
	notificationRoutes := api.Group("/notifications", middleware.NoCacheHeaders())
	notificationRoutes.Post("/", notificationHandler.Create)
	notificationRoutes.Get("/:userId", notificationHandler.ListByUser)
	notificationRoutes.Put("/:id/read", notificationHandler.MarkRead)

	// M-Pesa
	mpesaRoutes := api.Group("/mpesa")
	mpesaRoutes.Post("/stkpush", mpesaHandler.STKPush)
	mpesaRoutes.Post("/callback", mpesaHandler.Callback)

	return sweeperService
}
