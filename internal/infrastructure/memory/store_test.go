package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lm-inventario/internal/domain"
	"github.com/jhoicas/lm-inventario/internal/domain/entity"
	"github.com/jhoicas/lm-inventario/internal/domain/repository"
)

func seedProduct(t *testing.T, s *Store, id string, actual, minimo int) {
	t.Helper()
	err := NewProductRepository(s).Create(context.Background(), &entity.Product{
		ID: id, SKU: "SKU-" + id, Name: "Producto " + id,
		Stock: entity.Stock{Actual: actual, Minimo: minimo}, Estado: entity.EstadoActivo,
	})
	require.NoError(t, err)
}

// descontar es una transacción mínima: lee, resta qty y agrega un movimiento.
func descontar(id string, qty int, key string) func(context.Context, repository.ProductTxRepository, repository.MovementTxRepository) error {
	return func(ctx context.Context, products repository.ProductTxRepository, movements repository.MovementTxRepository) error {
		p, err := products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		at := time.Now()
		if err := products.UpdateStock(ctx, id, p.Stock.Actual-qty, p.Estado, at); err != nil {
			return err
		}
		return movements.Create(ctx, &entity.Movement{
			ID: "mov-" + key, ProductID: id, Type: entity.MovementTypeSalida, Quantity: qty,
			StockBefore: p.Stock.Actual, StockAfter: p.Stock.Actual - qty, Date: at, IdempotencyKey: key,
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner
// ──────────────────────────────────────────────────────────────────────────────

func TestTxRunner_CommitAplicaStockYMovimiento(t *testing.T) {
	s := NewStore()
	seedProduct(t, s, "p1", 10, 2)

	err := NewTxRunner(s).Run(context.Background(), descontar("p1", 4, "k1"))
	require.NoError(t, err)

	p, _ := NewProductRepository(s).GetByID(context.Background(), "p1")
	assert.Equal(t, 6, p.Stock.Actual)
	require.NotNil(t, p.FechaUltimoMovimiento)

	movs, _ := NewMovementRepository(s).ListByProduct(context.Background(), "p1")
	require.Len(t, movs, 1)
	assert.Equal(t, 10, movs[0].StockBefore)
	assert.Equal(t, 6, movs[0].StockAfter)
}

func TestTxRunner_EscrituraConcurrenteProvocaConflicto(t *testing.T) {
	s := NewStore()
	seedProduct(t, s, "p1", 10, 2)
	products := NewProductRepository(s)

	// Otra escritura llega entre la lectura y el commit.
	s.beforeCommit = func() {
		s.beforeCommit = nil
		p, _ := products.GetByID(context.Background(), "p1")
		p.Name = "Renombrado"
		require.NoError(t, products.Update(context.Background(), p))
	}

	err := NewTxRunner(s).Run(context.Background(), descontar("p1", 4, "k1"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	p, _ := products.GetByID(context.Background(), "p1")
	assert.Equal(t, 10, p.Stock.Actual, "el conflicto no deja escrituras parciales")
	movs, _ := NewMovementRepository(s).ListByProduct(context.Background(), "p1")
	assert.Empty(t, movs)
}

func TestTxRunner_ErrorEnFnDescartaTodo(t *testing.T) {
	s := NewStore()
	seedProduct(t, s, "p1", 10, 2)
	boom := errors.New("boom")

	err := NewTxRunner(s).Run(context.Background(), func(ctx context.Context, products repository.ProductTxRepository, movements repository.MovementTxRepository) error {
		require.NoError(t, descontar("p1", 4, "k1")(ctx, products, movements))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p, _ := NewProductRepository(s).GetByID(context.Background(), "p1")
	assert.Equal(t, 10, p.Stock.Actual)
}

func TestTxRunner_ContextoCanceladoAntesDelCommit(t *testing.T) {
	s := NewStore()
	seedProduct(t, s, "p1", 10, 2)
	ctx, cancel := context.WithCancel(context.Background())

	err := NewTxRunner(s).Run(ctx, func(ctx context.Context, products repository.ProductTxRepository, movements repository.MovementTxRepository) error {
		err := descontar("p1", 4, "k1")(ctx, products, movements)
		cancel()
		return err
	})
	assert.ErrorIs(t, err, context.Canceled)

	p, _ := NewProductRepository(s).GetByID(context.Background(), "p1")
	assert.Equal(t, 10, p.Stock.Actual)
}

func TestTxRunner_ClaveDeIdempotenciaDuplicada(t *testing.T) {
	s := NewStore()
	seedProduct(t, s, "p1", 10, 2)
	runner := NewTxRunner(s)

	require.NoError(t, runner.Run(context.Background(), descontar("p1", 1, "k1")))

	err := runner.Run(context.Background(), func(ctx context.Context, products repository.ProductTxRepository, movements repository.MovementTxRepository) error {
		existing, err := movements.GetByIdempotencyKey(ctx, "k1")
		require.NoError(t, err)
		require.NotNil(t, existing)
		return movements.Create(ctx, &entity.Movement{ID: "otro", ProductID: "p1", IdempotencyKey: "k1"})
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios
// ──────────────────────────────────────────────────────────────────────────────

func TestProductRepository_UpdateNoTocaStockActual(t *testing.T) {
	s := NewStore()
	seedProduct(t, s, "p1", 10, 2)
	repo := NewProductRepository(s)

	p, _ := repo.GetByID(context.Background(), "p1")
	p.Stock.Actual = 999
	p.Stock.Minimo = 5
	require.NoError(t, repo.Update(context.Background(), p))

	got, _ := repo.GetByID(context.Background(), "p1")
	assert.Equal(t, 10, got.Stock.Actual)
	assert.Equal(t, 5, got.Stock.Minimo)
}

func TestProductRepository_SKUDuplicado(t *testing.T) {
	s := NewStore()
	seedProduct(t, s, "p1", 10, 2)
	err := NewProductRepository(s).Create(context.Background(), &entity.Product{ID: "p2", SKU: "sku-p1", Name: "x"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductRepository_ListLowStock(t *testing.T) {
	s := NewStore()
	seedProduct(t, s, "a", 10, 2)
	seedProduct(t, s, "b", 2, 2)
	seedProduct(t, s, "c", 0, 1)

	low, err := NewProductRepository(s).ListLowStock(context.Background())
	require.NoError(t, err)
	ids := []string{}
	for _, p := range low {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []string{"b", "c"}, ids)
}

func TestMovementRepository_ListFiltraYOrdenaDesc(t *testing.T) {
	s := NewStore()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, typ := range []string{entity.MovementTypeEntrada, entity.MovementTypeSalida, entity.MovementTypeSalida} {
		m := &entity.Movement{ID: string(rune('a' + i)), ProductID: "p1", Type: typ, Quantity: 1, Date: base.Add(time.Duration(i) * 24 * time.Hour)}
		s.movements[m.ID] = m
		s.movementOrder = append(s.movementOrder, m.ID)
	}
	repo := NewMovementRepository(s)

	all, err := repo.List(context.Background(), repository.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].ID)

	from := base.Add(12 * time.Hour)
	salidas, err := repo.List(context.Background(), repository.MovementFilter{Type: entity.MovementTypeSalida, From: &from, Limit: 1})
	require.NoError(t, err)
	require.Len(t, salidas, 1)
	assert.Equal(t, "c", salidas[0].ID)
}

func TestNotificationRepository_MarkReadSoloDelDestinatario(t *testing.T) {
	s := NewStore()
	repo := NewNotificationRepository(s)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &entity.Notification{ID: "n1", TargetUserID: "u1", Message: "hola", CreatedAt: time.Now()}))

	assert.ErrorIs(t, repo.MarkRead(ctx, "n1", "u2"), domain.ErrNotFound)
	require.NoError(t, repo.MarkRead(ctx, "n1", "u1"))

	unread, _ := repo.CountUnread(ctx, "u1")
	assert.Equal(t, 0, unread)
}

func TestPage(t *testing.T) {
	from, to := page(10, 3, 8)
	assert.Equal(t, 8, from)
	assert.Equal(t, 10, to)

	from, to = page(2, 0, 5)
	assert.Equal(t, 2, from)
	assert.Equal(t, 2, to)
}
