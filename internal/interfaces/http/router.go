package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/lm-inventario/internal/application/activity"
	"github.com/jhoicas/lm-inventario/internal/application/auth"
	"github.com/jhoicas/lm-inventario/internal/application/inventory"
	"github.com/jhoicas/lm-inventario/internal/application/notification"
	"github.com/jhoicas/lm-inventario/internal/application/report"
	"github.com/jhoicas/lm-inventario/internal/application/usecase"
	"github.com/jhoicas/lm-inventario/internal/domain/entity"
	"github.com/jhoicas/lm-inventario/internal/infrastructure/ratelimit"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RecordMovement *inventory.RecordMovementUseCase
	MovementQuery  *inventory.QueryUseCase
	Replenishment  *inventory.ReplenishmentUseCase
	ProductUC      *usecase.ProductUseCase
	CategoryUC     *usecase.CategoryUseCase
	UserUC         *usecase.UserUseCase
	AuthUC         *auth.AuthUseCase
	NotificationUC *notification.UseCase
	ActivityUC     *activity.UseCase
	ReportUC       *report.UseCase
	JWTSecret      string

	// RateLimitStore nil desactiva el límite de peticiones.
	RateLimitStore  ratelimit.Store
	RateLimitMax    int
	RateLimitWindow time.Duration

	Logger zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger.With().Str("component", "http").Logger()
	limit := func(scope string) fiber.Handler {
		return RateLimit(RateLimitConfig{
			Store:  deps.RateLimitStore,
			Max:    deps.RateLimitMax,
			Window: deps.RateLimitWindow,
			Scope:  scope,
			Logger: log,
		})
	}
	adminOnly := RequireRole(entity.RoleAdmin)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleOperador)

	api := app.Group("/api")

	// Auth: login público; registro solo admin
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC, log)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", limit("login"), authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), adminOnly, authHandler.Register)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), anyRole)

	// Libro de movimientos
	inventoryHandler := NewInventoryHandler(deps.RecordMovement, deps.MovementQuery, deps.Replenishment, log)
	movements := protected.Group("/movements")
	movements.Post("/", limit("movements"), inventoryHandler.RecordMovement)
	movements.Get("/", inventoryHandler.ListMovements)
	movements.Get("/verify/:productId", adminOnly, inventoryHandler.VerifyLedger)
	movements.Get("/:id", inventoryHandler.GetMovement)
	protected.Get("/inventory/replenishment-list", inventoryHandler.GetReplenishmentList)

	// Productos: lectura para todos, escritura solo admin
	productHandler := NewProductHandler(deps.ProductUC, log)
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	categoryHandler := NewCategoryHandler(deps.CategoryUC, log)
	categories := protected.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Get("/:name/products-count", categoryHandler.ProductsCount)
	categories.Get("/:name", categoryHandler.Get)
	categories.Post("/", adminOnly, categoryHandler.Create)
	categories.Put("/:name", adminOnly, categoryHandler.Rename)
	categories.Delete("/:name", adminOnly, categoryHandler.Delete)

	notificationHandler := NewNotificationHandler(deps.NotificationUC, log)
	notifications := protected.Group("/notifications")
	notifications.Get("/", notificationHandler.List)
	notifications.Put("/read-all", notificationHandler.MarkAllRead)
	notifications.Put("/:id/read", notificationHandler.MarkRead)

	reportHandler := NewReportHandler(deps.ReportUC, log)
	reports := protected.Group("/reports")
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/low-stock/pdf", reportHandler.LowStockPDF)
	reports.Get("/valuation", reportHandler.Valuation)
	reports.Get("/valuation/pdf", reportHandler.ValuationPDF)
	reports.Get("/movements/pdf", reportHandler.MovementsPDF)
	reports.Get("/movement-stats", inventoryHandler.MovementStats)

	// Administración
	protected.Get("/logs", adminOnly, NewActivityHandler(deps.ActivityUC, log).List)

	userHandler := NewUserHandler(deps.UserUC, log)
	users := protected.Group("/users", adminOnly)
	users.Get("/", userHandler.List)
	users.Put("/:id/role", userHandler.UpdateRole)
	users.Put("/:id/status", userHandler.UpdateStatus)
}
