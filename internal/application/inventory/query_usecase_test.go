package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lm-inventario/internal/application/inventory"
	"github.com/jhoicas/lm-inventario/internal/domain"
	"github.com/jhoicas/lm-inventario/internal/domain/entity"
	"github.com/jhoicas/lm-inventario/internal/domain/repository"
	"github.com/jhoicas/lm-inventario/internal/infrastructure/memory"
)

func TestDayRange_DiasCompletosLocales(t *testing.T) {
	loc := time.FixedZone("COT", -5*3600)
	from, to, err := inventory.DayRange("2025-03-01", "2025-03-02", loc)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, loc), *from)
	assert.Equal(t, time.Date(2025, 3, 2, 23, 59, 59, int(999*time.Millisecond), loc), *to)
}

func TestDayRange_Errores(t *testing.T) {
	_, _, err := inventory.DayRange("01/03/2025", "", time.UTC)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = inventory.DayRange("2025-03-05", "2025-03-01", time.UTC)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	from, to, err := inventory.DayRange("", "", time.UTC)
	require.NoError(t, err)
	assert.Nil(t, from)
	assert.Nil(t, to)
}

func TestQuery_ListMovementsYVerifyLedger(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", 10, 2, entity.EstadoActivo)
	f.seed(t, "p2", 10, 2, entity.EstadoActivo)
	ctx := context.Background()

	for _, in := range []inventory.RecordMovementInput{
		input("p1", entity.MovementTypeSalida, 4),
		input("p1", entity.MovementTypeEntrada, 1),
		input("p2", entity.MovementTypeSalida, 1),
	} {
		_, err := f.uc.RecordMovement(ctx, in)
		require.NoError(t, err)
	}

	q := inventory.NewQueryUseCase(f.movements, f.products, time.UTC)

	list, err := q.ListMovements(ctx, inventory.ListMovementsInput{ProductID: "p1"})
	require.NoError(t, err)
	require.Len(t, list, 2)

	salidas, err := q.ListMovements(ctx, inventory.ListMovementsInput{Type: entity.MovementTypeSalida})
	require.NoError(t, err)
	assert.Len(t, salidas, 2)

	_, err = q.ListMovements(ctx, inventory.ListMovementsInput{Type: "traslado"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := q.GetMovement(ctx, list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, list[0].ID, got.ID)

	_, err = q.GetMovement(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	report, err := q.VerifyLedger(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, report.Consistent())
	assert.Equal(t, 10, report.InitialStock)
	assert.Equal(t, 7, report.ComputedStock)

	_, err = q.VerifyLedger(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuery_MovementStats(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", 10, 2, entity.EstadoActivo)
	ctx := context.Background()

	for _, in := range []inventory.RecordMovementInput{
		input("p1", entity.MovementTypeSalida, 4),
		input("p1", entity.MovementTypeEntrada, 1),
		input("p1", entity.MovementTypeSalida, 2),
	} {
		_, err := f.uc.RecordMovement(ctx, in)
		require.NoError(t, err)
	}
	// movimiento fuera de la ventana de siete días
	old := &entity.Movement{
		ID: "m-viejo", ProductID: "p1", Type: entity.MovementTypeEntrada, Quantity: 3,
		Reason: "Compra", ActorID: operador.ID, Date: time.Now().Add(-10 * 24 * time.Hour),
	}
	require.NoError(t, memory.NewTxRunner(f.store).Run(ctx,
		func(ctx context.Context, _ repository.ProductTxRepository, movements repository.MovementTxRepository) error {
			return movements.Create(ctx, old)
		}))

	st, err := inventory.NewQueryUseCase(f.movements, f.products, time.UTC).MovementStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, repository.MovementStats{Total: 4, Entradas: 2, Salidas: 2, Recent: 3}, st)
}
