package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/lm-inventario/internal/application/dto"
	"github.com/jhoicas/lm-inventario/internal/domain"
	"github.com/jhoicas/lm-inventario/internal/domain/entity"
	"github.com/jhoicas/lm-inventario/internal/domain/repository"
)

// CategoryUseCase administra las categorías del catálogo. Una categoría existe si está
// registrada o si algún producto la usa; los totales salen siempre de los productos.
type CategoryUseCase struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	activity   ActivityLogger
	logger     zerolog.Logger
	now        func() time.Time
}

// NewCategoryUseCase construye el caso de uso. activity puede ser nil.
func NewCategoryUseCase(categories repository.CategoryRepository, products repository.ProductRepository, activity ActivityLogger, logger zerolog.Logger) *CategoryUseCase {
	return &CategoryUseCase{categories: categories, products: products, activity: activity, logger: logger, now: time.Now}
}

// List devuelve todas las categorías en orden alfabético (español).
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	registered, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	products, err := uc.products.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*dto.CategoryResponse, len(registered))
	for _, c := range registered {
		byName[c.Name] = newCategoryResponse(c.Name, c.Description)
	}
	for _, p := range products {
		name := strings.TrimSpace(p.Category)
		if name == "" {
			continue
		}
		cr, ok := byName[name]
		if !ok {
			cr = newCategoryResponse(name, "")
			byName[name] = cr
		}
		addProduct(cr, p)
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	collate.New(language.Spanish, collate.IgnoreCase).SortStrings(names)
	out := make([]dto.CategoryResponse, 0, len(names))
	for _, name := range names {
		out = append(out, *byName[name])
	}
	return out, nil
}

// Get devuelve la categoría con sus productos.
func (uc *CategoryUseCase) Get(ctx context.Context, name string) (*dto.CategoryDetailResponse, error) {
	name = strings.TrimSpace(name)
	reg, err := uc.categories.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	products, err := uc.products.List(ctx, repository.ProductFilter{Category: name})
	if err != nil {
		return nil, err
	}
	if reg == nil && len(products) == 0 {
		return nil, domain.NotFound("Categoría no encontrada")
	}
	desc := ""
	if reg != nil {
		desc = reg.Description
	}
	out := &dto.CategoryDetailResponse{CategoryResponse: *newCategoryResponse(name, desc), Products: make([]dto.ProductResponse, 0, len(products))}
	for _, p := range products {
		addProduct(&out.CategoryResponse, p)
		out.Products = append(out.Products, *ToProductResponse(p))
	}
	return out, nil
}

// Create registra una categoría nueva. Falla con domain.ErrDuplicate si ya existe.
func (uc *CategoryUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Nombre)
	if name == "" {
		return nil, domain.InvalidInput("El nombre de la categoría es requerido")
	}
	exists, err := uc.exists(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: Ya existe una categoría con ese nombre", domain.ErrDuplicate)
	}
	c := &entity.Category{Name: name, Description: strings.TrimSpace(in.Descripcion), CreatedAt: uc.now()}
	if err := uc.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	uc.log(ctx, actor, entity.ActionCrearCategoria, fmt.Sprintf("Categoría: %q", name))
	return newCategoryResponse(c.Name, c.Description), nil
}

// Rename cambia el nombre de la categoría y lo propaga a sus productos.
func (uc *CategoryUseCase) Rename(ctx context.Context, actor entity.Actor, oldName string, in dto.RenameCategoryRequest) (*dto.RenameCategoryResponse, error) {
	oldName = strings.TrimSpace(oldName)
	newName := strings.TrimSpace(in.Nombre)
	if newName == "" {
		return nil, domain.InvalidInput("El nuevo nombre de la categoría es requerido")
	}
	exists, err := uc.exists(ctx, oldName)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NotFound("Categoría no encontrada")
	}
	if newName != oldName {
		taken, err := uc.exists(ctx, newName)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: Ya existe una categoría con ese nombre", domain.ErrDuplicate)
		}
	}
	n, err := uc.categories.Rename(ctx, oldName, newName, uc.now())
	if err != nil {
		return nil, err
	}
	uc.log(ctx, actor, entity.ActionRenombrarCategoria, fmt.Sprintf("Categoría: %q → %q, productos: %d", oldName, newName, n))
	return &dto.RenameCategoryResponse{Nombre: newName, UpdatedProducts: n}, nil
}

// Delete elimina una categoría registrada que ningún producto usa.
func (uc *CategoryUseCase) Delete(ctx context.Context, actor entity.Actor, name string) error {
	name = strings.TrimSpace(name)
	n, err := uc.ProductsCount(ctx, name)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.InvalidInput(fmt.Sprintf(
			"No se puede eliminar la categoría porque está siendo utilizada por %d producto(s)", n))
	}
	if err := uc.categories.Delete(ctx, name); err != nil {
		return err
	}
	uc.log(ctx, actor, entity.ActionEliminarCategoria, fmt.Sprintf("Categoría: %q", name))
	return nil
}

// ProductsCount cantidad de productos de la categoría.
func (uc *CategoryUseCase) ProductsCount(ctx context.Context, name string) (int, error) {
	list, err := uc.products.List(ctx, repository.ProductFilter{Category: strings.TrimSpace(name)})
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

func (uc *CategoryUseCase) exists(ctx context.Context, name string) (bool, error) {
	reg, err := uc.categories.Get(ctx, name)
	if err != nil {
		return false, err
	}
	if reg != nil {
		return true, nil
	}
	n, err := uc.ProductsCount(ctx, name)
	return n > 0, err
}

func (uc *CategoryUseCase) log(ctx context.Context, actor entity.Actor, action, details string) {
	if uc.activity == nil {
		return
	}
	if err := uc.activity.Log(ctx, actor.LogName(), action, details); err != nil {
		uc.logger.Warn().Err(err).Str("action", action).Msg("no se pudo registrar la actividad")
	}
}

func newCategoryResponse(name, description string) *dto.CategoryResponse {
	return &dto.CategoryResponse{ID: name, Nombre: name, Descripcion: description, TotalValue: decimal.Zero, Activa: true}
}

func addProduct(cr *dto.CategoryResponse, p *entity.Product) {
	cr.ProductCount++
	cr.TotalStock += p.Stock.Actual
	cr.TotalValue = cr.TotalValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Stock.Actual))))
}
