package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/lm-inventario/internal/domain"
	"github.com/jhoicas/lm-inventario/internal/domain/entity"
	"github.com/jhoicas/lm-inventario/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepository)(nil)

// CategoryRepository implementa repository.CategoryRepository.
type CategoryRepository struct {
	store *Store
}

// NewCategoryRepository construye el repositorio.
func NewCategoryRepository(store *Store) *CategoryRepository {
	return &CategoryRepository{store: store}
}

func (r *CategoryRepository) Create(_ context.Context, c *entity.Category) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.categories[c.Name]; exists {
		return fmt.Errorf("%w: categoría %s", domain.ErrDuplicate, c.Name)
	}
	cp := *c
	s.categories[c.Name] = &cp
	return nil
}

func (r *CategoryRepository) Get(_ context.Context, name string) (*entity.Category, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[name]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *CategoryRepository) List(_ context.Context) ([]*entity.Category, error) {
	s := r.store
	s.mu.RLock()
	out := make([]*entity.Category, 0, len(s.categories))
	for _, c := range s.categories {
		cp := *c
		out = append(out, &cp)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Rename mueve el registro y reetiqueta los productos. Sube la versión de cada producto tocado.
func (r *CategoryRepository) Rename(_ context.Context, oldName, newName string, at time.Time) (int, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[oldName]
	if !ok {
		c = &entity.Category{CreatedAt: at}
	}
	if _, taken := s.categories[newName]; !taken || oldName == newName {
		delete(s.categories, oldName)
		cp := *c
		cp.Name = newName
		s.categories[newName] = &cp
	}
	n := 0
	for _, rec := range s.products {
		if rec.product.Category == oldName {
			rec.product.Category = newName
			rec.product.UpdatedAt = at
			rec.version++
			n++
		}
	}
	return n, nil
}

func (r *CategoryRepository) Delete(_ context.Context, name string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[name]; !ok {
		return domain.NotFound("Categoría no encontrada")
	}
	delete(s.categories, name)
	return nil
}
