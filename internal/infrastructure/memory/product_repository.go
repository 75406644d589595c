package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/lm-inventario/internal/domain"
	"github.com/jhoicas/lm-inventario/internal/domain/entity"
	"github.com/jhoicas/lm-inventario/internal/domain/repository"
)

// ProductRepository implementa repository.ProductRepository.
type ProductRepository struct {
	store *Store
}

// NewProductRepository construye el repositorio.
func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{store: store}
}

func (r *ProductRepository) Create(_ context.Context, p *entity.Product) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.products[p.ID]; exists {
		return fmt.Errorf("%w: producto %s", domain.ErrDuplicate, p.ID)
	}
	for _, rec := range s.products {
		if strings.EqualFold(rec.product.SKU, p.SKU) {
			return fmt.Errorf("%w: el SKU %s ya existe", domain.ErrDuplicate, p.SKU)
		}
	}
	s.products[p.ID] = &productRecord{product: *copyProduct(*p), version: 1}
	return nil
}

func (r *ProductRepository) GetByID(_ context.Context, id string) (*entity.Product, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	return copyProduct(rec.product), nil
}

// Update conserva stock.actual y fechaUltimoMovimiento almacenados. Incrementa la versión,
// así que una transacción del libro que haya leído el producto antes se reintentará.
func (r *ProductRepository) Update(_ context.Context, p *entity.Product) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.products[p.ID]
	if !ok {
		return domain.NotFound("Producto no encontrado.")
	}
	updated := *copyProduct(*p)
	updated.Stock.Actual = rec.product.Stock.Actual
	updated.FechaUltimoMovimiento = rec.product.FechaUltimoMovimiento
	updated.CreatedAt = rec.product.CreatedAt
	rec.product = updated
	rec.version++
	return nil
}

func (r *ProductRepository) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	all := r.filter(func(p *entity.Product) bool {
		if f.Category != "" && p.Category != f.Category {
			return false
		}
		if f.Estado != "" && p.Estado != f.Estado {
			return false
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) && !strings.Contains(strings.ToLower(p.SKU), search) {
			return false
		}
		return true
	})
	from, to := page(len(all), f.Limit, f.Offset)
	return all[from:to], nil
}

func (r *ProductRepository) ListLowStock(_ context.Context) ([]*entity.Product, error) {
	return r.filter(func(p *entity.Product) bool { return p.IsLowStock() }), nil
}

func (r *ProductRepository) ListAll(_ context.Context) ([]*entity.Product, error) {
	return r.filter(func(*entity.Product) bool { return true }), nil
}

func (r *ProductRepository) Delete(_ context.Context, id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return domain.NotFound("Producto no encontrado.")
	}
	delete(s.products, id)
	return nil
}

// filter devuelve copias de los productos que cumplen keep, ordenados por nombre.
func (r *ProductRepository) filter(keep func(*entity.Product) bool) []*entity.Product {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Product, 0, len(s.products))
	for _, rec := range s.products {
		p := copyProduct(rec.product)
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}
