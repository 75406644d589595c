// @title           LM Inventario API
// @version         1.0
// @description     Libro de movimientos de stock, catálogo, alertas de stock bajo y reportes.
// @BasePath        /
// @securityDefinitions.apikey Bearer
// @in              header
// @name            Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/lm-inventario/docs"
	"github.com/jhoicas/lm-inventario/internal/application/activity"
	"github.com/jhoicas/lm-inventario/internal/application/auth"
	"github.com/jhoicas/lm-inventario/internal/application/inventory"
	"github.com/jhoicas/lm-inventario/internal/application/notification"
	"github.com/jhoicas/lm-inventario/internal/application/report"
	"github.com/jhoicas/lm-inventario/internal/application/usecase"
	"github.com/jhoicas/lm-inventario/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/lm-inventario/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/lm-inventario/internal/interfaces/http"
	"github.com/jhoicas/lm-inventario/pkg/config"
	"github.com/jhoicas/lm-inventario/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	st, err := openStorage(ctx, cfg, reg, log.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	limiter, closeLimiter := newRateLimitStore(ctx, cfg, log.Component("ratelimit"))
	defer closeLimiter()

	loc := cfg.App.Location()
	activityUC := activity.NewUseCase(st.activity, loc)
	notificationUC := notification.NewUseCase(st.notifications)
	recordMovementUC := inventory.NewRecordMovementUseCase(
		st.txRunner,
		notificationUC,
		activityUC,
		metrics.NewLedgerMetrics(reg),
		log.Component("ledger"),
		inventory.Config{
			MaxAttempts:       cfg.Ledger.MaxAttempts,
			BaseBackoff:       time.Duration(cfg.Ledger.BackoffMS) * time.Millisecond,
			SideEffectTimeout: time.Duration(cfg.Ledger.SideEffectTimeoutMS) * time.Millisecond,
			AlertUserID:       cfg.Ledger.AlertUserID,
		},
	)
	authUC := auth.NewAuthUseCase(st.users, activityUC, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Component("auth"))

	httpLog := log.Component("http")
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(httpLog),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(httpLog, metrics.NewHTTPMetrics(reg)))

	// Swagger UI en local: http://localhost:<port>/docs (requiere `swag init`)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "LM Inventario API",
		}))
	}
	app.Get("/docs/doc.json", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(docs.SwaggerInfo.ReadDoc())
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		pingCtx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := st.ping(pingCtx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		RecordMovement:  recordMovementUC,
		MovementQuery:   inventory.NewQueryUseCase(st.movements, st.products, loc),
		Replenishment:   inventory.NewReplenishmentUseCase(st.products, st.movements),
		ProductUC:       usecase.NewProductUseCase(st.products, activityUC, log.Component("products")),
		CategoryUC:      usecase.NewCategoryUseCase(st.categories, st.products, activityUC, log.Component("categories")),
		UserUC:          usecase.NewUserUseCase(st.users, activityUC, log.Component("users")),
		AuthUC:          authUC,
		NotificationUC:  notificationUC,
		ActivityUC:      activityUC,
		ReportUC:        report.NewUseCase(st.products, st.movements, infrapdf.NewMarotoReportGenerator(cfg.App.Name), loc),
		JWTSecret:       cfg.JWT.Secret,
		RateLimitStore:  limiter,
		RateLimitMax:    cfg.RateLimit.Max,
		RateLimitWindow: cfg.RateLimit.Window(),
		Logger:          log.Zerolog(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
