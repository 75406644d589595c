package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/lm-inventario/internal/application/dto"
	"github.com/jhoicas/lm-inventario/internal/domain"
	"github.com/jhoicas/lm-inventario/internal/domain/entity"
	ledger "github.com/jhoicas/lm-inventario/internal/domain/inventory"
	"github.com/jhoicas/lm-inventario/internal/domain/repository"
)

// ActivityLogger escribe en la bitácora. Lo implementa activity.UseCase.
type ActivityLogger interface {
	Log(ctx context.Context, actor, action, details string) error
}

// ProductUseCase casos de uso CRUD para productos. stock.actual se maneja vía movimientos.
type ProductUseCase struct {
	repo     repository.ProductRepository
	activity ActivityLogger
	logger   zerolog.Logger
}

// NewProductUseCase construye el caso de uso. activity puede ser nil.
func NewProductUseCase(repo repository.ProductRepository, activity ActivityLogger, logger zerolog.Logger) *ProductUseCase {
	return &ProductUseCase{repo: repo, activity: activity, logger: logger}
}

// Create crea un nuevo producto con su saldo inicial. Estado inicial: activo, o sin-stock si el saldo es 0.
func (uc *ProductUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	if in.SKU == "" || in.Name == "" {
		return nil, domain.InvalidInput("sku y nombre son requeridos")
	}
	if in.Stock.Actual < 0 || in.Stock.Minimo < 0 || in.Stock.Maximo < 0 {
		return nil, domain.InvalidInput("los niveles de stock no pueden ser negativos")
	}
	if in.Stock.Actual > ledger.MaxStock || in.Stock.Minimo > ledger.MaxStock || in.Stock.Maximo > ledger.MaxStock {
		return nil, domain.InvalidInput(fmt.Sprintf("los niveles de stock no pueden superar %d", ledger.MaxStock))
	}
	if in.Price.LessThan(decimal.Zero) {
		return nil, domain.InvalidInput("el precio no puede ser negativo")
	}
	now := time.Now()
	estado := entity.EstadoActivo
	if in.Stock.Actual == 0 {
		estado = entity.EstadoSinStock
	}
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
		Stock: entity.Stock{
			Actual: in.Stock.Actual,
			Minimo: in.Stock.Minimo,
			Maximo: in.Stock.Maximo,
		},
		Estado:    estado,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.log(ctx, actor, entity.ActionCrearProducto, fmt.Sprintf("Producto: %q, SKU: %s", product.Name, product.SKU))
	return ToProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("Producto no encontrado.")
	}
	return ToProductResponse(product), nil
}

// Update actualiza datos del catálogo, niveles mínimo/máximo y el estado manual.
// No permite modificar stock.actual (se maneja vía movimientos).
func (uc *ProductUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("Producto no encontrado.")
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.InvalidInput("el nombre no puede quedar vacío")
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, domain.InvalidInput("el precio no puede ser negativo")
		}
		product.Price = *in.Price
	}
	if in.Minimo != nil {
		if *in.Minimo < 0 || *in.Minimo > ledger.MaxStock {
			return nil, domain.InvalidInput("el stock mínimo está fuera de rango")
		}
		product.Stock.Minimo = *in.Minimo
	}
	if in.Maximo != nil {
		if *in.Maximo < 0 || *in.Maximo > ledger.MaxStock {
			return nil, domain.InvalidInput("el stock máximo está fuera de rango")
		}
		product.Stock.Maximo = *in.Maximo
	}
	if in.Estado != nil {
		if !entity.IsValidEstado(*in.Estado) {
			return nil, domain.InvalidInput("estado de producto inválido")
		}
		product.Estado = *in.Estado
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.log(ctx, actor, entity.ActionActualizarProducto, fmt.Sprintf("Producto: %q, ID: %s", product.Name, product.ID))
	return ToProductResponse(product), nil
}

// List lista productos con filtros y paginación.
func (uc *ProductUseCase) List(ctx context.Context, filter repository.ProductFilter) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset, Total: len(items)},
	}, nil
}

// Delete elimina un producto por ID. Sus movimientos se conservan con la copia de nombre y SKU.
func (uc *ProductUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.NotFound("Producto no encontrado.")
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log(ctx, actor, entity.ActionEliminarProducto, fmt.Sprintf("Producto: %q, SKU: %s", product.Name, product.SKU))
	return nil
}

func (uc *ProductUseCase) log(ctx context.Context, actor entity.Actor, action, details string) {
	if uc.activity == nil {
		return
	}
	if err := uc.activity.Log(ctx, actor.LogName(), action, details); err != nil {
		uc.logger.Warn().Err(err).Str("action", action).Msg("no se pudo registrar la actividad")
	}
}

// ToProductResponse convierte la entidad al DTO de salida.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Stock: dto.StockDTO{
			Actual: p.Stock.Actual,
			Minimo: p.Stock.Minimo,
			Maximo: p.Stock.Maximo,
		},
		Estado:                p.Estado,
		FechaUltimoMovimiento: p.FechaUltimoMovimiento,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}
