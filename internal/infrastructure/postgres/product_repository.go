package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/lm-inventario/internal/domain"
	"github.com/jhoicas/lm-inventario/internal/domain/entity"
	"github.com/jhoicas/lm-inventario/internal/domain/repository"
)

var (
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.ProductTxRepository = (*ProductRepo)(nil)
)

const productColumns = `id, sku, nombre, descripcion, categoria, precio,
	stock_actual, stock_minimo, stock_maximo, estado, fecha_ultimo_movimiento, created_at, updated_at`

// ProductRepo implementación de ProductRepository y ProductTxRepository sobre PostgreSQL.
type ProductRepo struct {
	db DBTX
}

// NewProductRepository construye el repositorio. db puede ser el pool o una pgx.Tx.
func NewProductRepository(db DBTX) *ProductRepo {
	return &ProductRepo{db: db}
}

// Create persiste un nuevo producto. SKU repetido: domain.ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.SKU, p.Name, p.Description, p.Category, p.Price,
		p.Stock.Actual, p.Stock.Minimo, p.Stock.Maximo, p.Estado, p.FechaUltimoMovimiento,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetForUpdate lee el producto bloqueando la fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) getOne(ctx context.Context, query, id string) (*entity.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update modifica datos de catálogo, niveles y estado. No toca stock_actual ni fecha_ultimo_movimiento.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET nombre = $2, descripcion = $3, categoria = $4, precio = $5,
			stock_minimo = $6, stock_maximo = $7, estado = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Category, p.Price,
		p.Stock.Minimo, p.Stock.Maximo, p.Estado, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("Producto no encontrado.")
	}
	return nil
}

// UpdateStock escribe el nuevo saldo, el estado y la fecha del último movimiento.
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, actual int, estado string, at time.Time) error {
	query := `
		UPDATE products
		SET stock_actual = $2, estado = $3, fecha_ultimo_movimiento = $4, updated_at = $4
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, actual, estado, at)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("Producto no encontrado.")
	}
	return nil
}

// List busca por SKU/nombre (ILIKE), categoría y estado; ordena por nombre.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var w whereBuilder
	if f.Search != "" {
		w.add("(sku ILIKE $%[1]d OR nombre ILIKE $%[1]d)", "%"+f.Search+"%")
	}
	if f.Category != "" {
		w.add("categoria = $%d", f.Category)
	}
	if f.Estado != "" {
		w.add("estado = $%d", f.Estado)
	}
	query := `SELECT ` + productColumns + ` FROM products` + w.sql() + ` ORDER BY nombre, id`
	query += w.page(f.Limit, f.Offset)
	return r.query(ctx, query, w.args...)
}

// ListLowStock devuelve los productos con stock_actual <= stock_minimo.
func (r *ProductRepo) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products WHERE stock_actual <= stock_minimo ORDER BY sku`)
}

// ListAll devuelve el catálogo completo ordenado por SKU.
func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products ORDER BY sku`)
}

// Delete elimina el producto. Sus movimientos permanecen.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("Producto no encontrado.")
	}
	return nil
}

func (r *ProductRepo) query(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.Category, &p.Price,
		&p.Stock.Actual, &p.Stock.Minimo, &p.Stock.Maximo, &p.Estado, &p.FechaUltimoMovimiento,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
