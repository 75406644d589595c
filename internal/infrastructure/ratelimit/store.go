// Package ratelimit limita peticiones por clave (normalmente la IP del cliente).
package ratelimit

import (
	"context"
	"time"
)

// Store decide si una petición más para key cabe en limit peticiones por window.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}
