package http

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/lm-inventario/internal/application/dto"
	"github.com/jhoicas/lm-inventario/internal/infrastructure/metrics"
	"github.com/jhoicas/lm-inventario/internal/infrastructure/ratelimit"
)

const msgRateLimited = "Demasiadas solicitudes. Intente nuevamente más tarde."

// RateLimitConfig parámetros del middleware de límite de peticiones.
type RateLimitConfig struct {
	Store  ratelimit.Store
	Max    int
	Window time.Duration
	// Scope separa contadores de rutas distintas que comparten el mismo store (ej. "login").
	Scope  string
	Logger zerolog.Logger
}

// RateLimit limita peticiones por IP. Si el store falla, deja pasar la petición y registra un warning.
func RateLimit(cfg RateLimitConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.Store == nil || cfg.Max <= 0 {
			return c.Next()
		}
		key := cfg.Scope + ":" + c.IP()
		ctx, cancel := context.WithTimeout(c.UserContext(), 500*time.Millisecond)
		allowed, err := cfg.Store.Allow(ctx, key, cfg.Max, cfg.Window)
		cancel()
		if err != nil {
			cfg.Logger.Warn().Err(err).Str("key", key).Msg("rate limit no disponible, se permite la petición")
			return c.Next()
		}
		if !allowed {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(cfg.Window.Seconds())))
			return respondError(c, fiber.StatusTooManyRequests, dto.CodeRateLimited, msgRateLimited)
		}
		return c.Next()
	}
}

// RequestLogger registra cada petición (método, ruta, status, latencia) y, si m no es nil,
// alimenta las métricas HTTP con la ruta registrada.
func RequestLogger(logger zerolog.Logger, m *metrics.HTTPMetrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		var done func(method, path string, status int)
		if m != nil {
			done = m.Start()
		}

		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			// el ErrorHandler todavía no escribió la respuesta
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		route := c.Route().Path
		if done != nil {
			done(c.Method(), route, status)
		}

		ev := logger.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = logger.Error()
		case status >= fiber.StatusBadRequest:
			ev = logger.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("http request")
		return err
	}
}
