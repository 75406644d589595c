// Package memory implementa los repositorios en memoria del proceso.
// Sirve para desarrollo (DB_DRIVER=memory) y como doble realista en pruebas: las transacciones
// son optimistas, como en un almacén de documentos; cada producto lleva una versión que se
// verifica al confirmar y, si cambió, la transacción se aborta con domain.ErrConflict.
package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/lm-inventario/internal/domain/entity"
)

type productRecord struct {
	product entity.Product
	version uint64
}

// Store contiene todas las colecciones. Es seguro para uso concurrente.
type Store struct {
	mu            sync.RWMutex
	products      map[string]*productRecord
	movements     map[string]*entity.Movement
	movementOrder []string // orden de inserción
	byIdemKey     map[string]string
	notifications map[string]*entity.Notification
	logs          []*entity.ActivityLog
	users         map[string]*entity.User
	categories    map[string]*entity.Category

	// beforeCommit se invoca (sin el lock tomado) justo antes de validar una transacción.
	beforeCommit func()
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		products:      make(map[string]*productRecord),
		movements:     make(map[string]*entity.Movement),
		byIdemKey:     make(map[string]string),
		notifications: make(map[string]*entity.Notification),
		users:         make(map[string]*entity.User),
		categories:    make(map[string]*entity.Category),
	}
}

func copyProduct(p entity.Product) *entity.Product {
	if p.FechaUltimoMovimiento != nil {
		t := *p.FechaUltimoMovimiento
		p.FechaUltimoMovimiento = &t
	}
	return &p
}

func copyMovement(m *entity.Movement) *entity.Movement {
	c := *m
	return &c
}

// page aplica offset/limit sobre n elementos y devuelve el rango [from, to).
func page(n, limit, offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		return n, n
	}
	to := n
	if limit > 0 && offset+limit < n {
		to = offset + limit
	}
	return offset, to
}

func sortMovementsDesc(list []*entity.Movement) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
}
