package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

var _ Store = (*MemoryStore)(nil)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryStore token bucket por clave, local al proceso. Se reponen limit fichas por window
// y la ráfaga máxima es limit. Las claves inactivas más de una ventana se descartan.
type MemoryStore struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
	nowFunc   func() time.Time
}

// NewMemoryStore construye el store vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{visitors: make(map[string]*visitor), nowFunc: time.Now}
}

func (s *MemoryStore) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	if limit <= 0 || window <= 0 {
		return true, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFunc()
	s.sweep(now, window)

	v, ok := s.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Every(window/time.Duration(limit)), limit)}
		s.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1), nil
}

// sweep elimina visitantes sin actividad en la última ventana; corre a lo sumo una vez por ventana.
func (s *MemoryStore) sweep(now time.Time, window time.Duration) {
	if now.Sub(s.lastSweep) < window {
		return
	}
	s.lastSweep = now
	for key, v := range s.visitors {
		if now.Sub(v.lastSeen) > window {
			delete(s.visitors, key)
		}
	}
}

func (s *MemoryStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.visitors)
}
