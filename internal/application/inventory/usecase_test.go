package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lm-inventario/internal/application/activity"
	"github.com/jhoicas/lm-inventario/internal/application/inventory"
	"github.com/jhoicas/lm-inventario/internal/application/notification"
	"github.com/jhoicas/lm-inventario/internal/domain"
	"github.com/jhoicas/lm-inventario/internal/domain/entity"
	domaininv "github.com/jhoicas/lm-inventario/internal/domain/inventory"
	"github.com/jhoicas/lm-inventario/internal/domain/repository"
	"github.com/jhoicas/lm-inventario/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de prueba
// ──────────────────────────────────────────────────────────────────────────────

type spyMetrics struct {
	mu          sync.Mutex
	recorded    map[string]int
	retries     int
	crossings   int
	sideEffects map[string]int
	rejections  map[string]int
}

func newSpyMetrics() *spyMetrics {
	return &spyMetrics{recorded: map[string]int{}, sideEffects: map[string]int{}, rejections: map[string]int{}}
}

func (m *spyMetrics) MovementRecorded(t string) { m.mu.Lock(); m.recorded[t]++; m.mu.Unlock() }
func (m *spyMetrics) ConflictRetry()            { m.mu.Lock(); m.retries++; m.mu.Unlock() }
func (m *spyMetrics) ThresholdCrossed()         { m.mu.Lock(); m.crossings++; m.mu.Unlock() }
func (m *spyMetrics) SideEffectFailed(k string) { m.mu.Lock(); m.sideEffects[k]++; m.mu.Unlock() }
func (m *spyMetrics) Rejected(r string)         { m.mu.Lock(); m.rejections[r]++; m.mu.Unlock() }

type failingNotifier struct{}

func (failingNotifier) Notify(context.Context, string, string, string, string) (*entity.Notification, error) {
	return nil, errors.New("almacén de notificaciones caído")
}

type failingActivity struct{}

func (failingActivity) Log(context.Context, string, string, string) error {
	return errors.New("bitácora caída")
}

// untouchableRunner falla la prueba si alguien abre una transacción.
type untouchableRunner struct{ t *testing.T }

func (r untouchableRunner) Run(context.Context, func(context.Context, repository.ProductTxRepository, repository.MovementTxRepository) error) error {
	r.t.Fatal("no se esperaba acceso al almacén")
	return nil
}

// flakyRunner devuelve conflicto en las primeras n transacciones y luego delega.
type flakyRunner struct {
	inner     inventory.TxRunner
	conflicts int
	calls     int
}

func (r *flakyRunner) Run(ctx context.Context, fn func(context.Context, repository.ProductTxRepository, repository.MovementTxRepository) error) error {
	r.calls++
	if r.calls <= r.conflicts {
		return fmt.Errorf("%w: simulado", domain.ErrConflict)
	}
	return r.inner.Run(ctx, fn)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store         *memory.Store
	products      *memory.ProductRepository
	movements     *memory.MovementRepository
	notifications *memory.NotificationRepository
	logs          *memory.ActivityLogRepository
	metrics       *spyMetrics
	uc            *inventory.RecordMovementUseCase
}

var operador = entity.Actor{ID: "u-ana", DisplayName: "Ana", Email: "ana@lm.co", Role: entity.RoleOperador}

func newFixture(t *testing.T, opts ...func(*fixtureOptions)) *fixture {
	t.Helper()
	o := fixtureOptions{cfg: inventory.Config{MaxAttempts: 50, BaseBackoff: time.Microsecond}}
	for _, opt := range opts {
		opt(&o)
	}
	f := &fixture{store: memory.NewStore(), metrics: newSpyMetrics()}
	f.products = memory.NewProductRepository(f.store)
	f.movements = memory.NewMovementRepository(f.store)
	f.notifications = memory.NewNotificationRepository(f.store)
	f.logs = memory.NewActivityLogRepository(f.store)

	var runner inventory.TxRunner = memory.NewTxRunner(f.store)
	if o.wrapRunner != nil {
		runner = o.wrapRunner(runner)
	}
	var notifier inventory.Notifier = notification.NewUseCase(f.notifications)
	if o.notifier != nil {
		notifier = o.notifier
	}
	var logger inventory.ActivityLogger = activity.NewUseCase(f.logs, time.UTC)
	if o.activity != nil {
		logger = o.activity
	}
	f.uc = inventory.NewRecordMovementUseCase(runner, notifier, logger, f.metrics, zerolog.Nop(), o.cfg)
	return f
}

type fixtureOptions struct {
	cfg        inventory.Config
	wrapRunner func(inventory.TxRunner) inventory.TxRunner
	notifier   inventory.Notifier
	activity   inventory.ActivityLogger
}

func (f *fixture) seed(t *testing.T, id string, actual, minimo int, estado string) {
	t.Helper()
	require.NoError(t, f.products.Create(context.Background(), &entity.Product{
		ID: id, SKU: "SKU-" + id, Name: "Producto " + id,
		Stock: entity.Stock{Actual: actual, Minimo: minimo}, Estado: estado,
	}))
}

func (f *fixture) stock(t *testing.T, id string) *entity.Product {
	t.Helper()
	p, err := f.products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}

func input(productID, typ string, qty int) inventory.RecordMovementInput {
	return inventory.RecordMovementInput{
		ProductID: productID, Type: typ, Quantity: qty, Reason: "Ajuste", Actor: operador,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_SalidaTotal_SinStockYAlerta(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", 50, 10, entity.EstadoActivo)

	res, err := f.uc.RecordMovement(context.Background(), input("p1", entity.MovementTypeSalida, 50))
	require.NoError(t, err)

	assert.True(t, res.AlertRaised)
	assert.False(t, res.Replayed)
	m := res.Movement
	assert.Equal(t, 50, m.StockBefore)
	assert.Equal(t, 0, m.StockAfter)
	assert.Equal(t, "u-ana", m.ActorID)
	assert.Equal(t, "Ana", m.ActorName)
	assert.Equal(t, entity.ProductSnapshot{Name: "Producto p1", SKU: "SKU-p1"}, m.ProductSnapshot)

	p := f.stock(t, "p1")
	assert.Equal(t, 0, p.Stock.Actual)
	assert.Equal(t, entity.EstadoSinStock, p.Estado)
	require.NotNil(t, p.FechaUltimoMovimiento)

	notes, _ := f.notifications.ListByUser(context.Background(), "u-ana", false, 0, 0)
	require.Len(t, notes, 1)
	assert.Equal(t, entity.NotificationKindStockAlert, notes[0].Kind)
	assert.Contains(t, notes[0].Message, "Producto p1")
	assert.Contains(t, notes[0].Message, "Stock actual: 0")
	assert.Equal(t, "/products/edit/p1", notes[0].Link)

	logs, _ := f.logs.List(context.Background(), repository.ActivityLogFilter{})
	require.Len(t, logs, 1)
	assert.Equal(t, entity.ActionRegistrarMovimiento, logs[0].Action)
	assert.Equal(t, "ana@lm.co", logs[0].Actor)

	assert.Equal(t, 1, f.metrics.recorded[entity.MovementTypeSalida])
	assert.Equal(t, 1, f.metrics.crossings)
}

func TestRecordMovement_StockInsuficiente_NoEscribeNada(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", 50, 10, entity.EstadoActivo)

	_, err := f.uc.RecordMovement(context.Background(), input("p1", entity.MovementTypeSalida, 51))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "stock")
	assert.Contains(t, err.Error(), "50")

	assert.Equal(t, 50, f.stock(t, "p1").Stock.Actual)
	movs, _ := f.movements.ListByProduct(context.Background(), "p1")
	assert.Empty(t, movs)
	notes, _ := f.notifications.ListByUser(context.Background(), "u-ana", false, 0, 0)
	assert.Empty(t, notes)
	assert.Equal(t, 1, f.metrics.rejections[inventory.RejectInsufficientStock])
}

func TestRecordMovement_EntradaDesdeSinStock_ReactivaSinAlerta(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", 0, 5, entity.EstadoSinStock)

	res, err := f.uc.RecordMovement(context.Background(), input("p1", entity.MovementTypeEntrada, 3))
	require.NoError(t, err)
	assert.False(t, res.AlertRaised)

	p := f.stock(t, "p1")
	assert.Equal(t, 3, p.Stock.Actual)
	assert.Equal(t, entity.EstadoActivo, p.Estado)
	notes, _ := f.notifications.ListByUser(context.Background(), "u-ana", false, 0, 0)
	assert.Empty(t, notes)
}

func TestRecordMovement_ProductoDanadoConservaEstado(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", 2, 0, entity.EstadoDanado)

	_, err := f.uc.RecordMovement(context.Background(), input("p1", entity.MovementTypeSalida, 2))
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoDanado, f.stock(t, "p1").Estado)
}

func TestRecordMovement_ProductoInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.RecordMovement(context.Background(), input("nope", entity.MovementTypeEntrada, 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "Producto no encontrado")
	assert.Equal(t, 1, f.metrics.rejections[inventory.RejectNotFound])
}

func TestRecordMovement_ValidacionSinTocarAlmacen(t *testing.T) {
	uc := inventory.NewRecordMovementUseCase(untouchableRunner{t}, nil, nil, nil, zerolog.Nop(), inventory.Config{})
	cases := map[string]inventory.RecordMovementInput{
		"cantidad cero":     input("p1", entity.MovementTypeSalida, 0),
		"cantidad negativa": input("p1", entity.MovementTypeEntrada, -3),
		"tipo inválido":     input("p1", "ajuste", 1),
		"cantidad enorme":   input("p1", entity.MovementTypeEntrada, math.MaxInt),
		"sobre int32":       input("p1", entity.MovementTypeEntrada, domaininv.MaxStock+10),
		"sin producto":      input("  ", entity.MovementTypeEntrada, 1),
		"sin razón": func() inventory.RecordMovementInput {
			in := input("p1", entity.MovementTypeEntrada, 1)
			in.Reason = "   "
			return in
		}(),
		"sin actor": func() inventory.RecordMovementInput {
			in := input("p1", entity.MovementTypeEntrada, 1)
			in.Actor = entity.Actor{}
			return in
		}(),
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.RecordMovement(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRecordMovement_EntradaQueDesbordaElSaldo_EsValidacion(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", domaininv.MaxStock-5, 0, entity.EstadoActivo)

	_, err := f.uc.RecordMovement(context.Background(), input("p1", entity.MovementTypeEntrada, 6))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NotErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, domaininv.MaxStock-5, f.stock(t, "p1").Stock.Actual)
	assert.Equal(t, 1, f.metrics.rejections[inventory.RejectValidation])

	res, err := f.uc.RecordMovement(context.Background(), input("p1", entity.MovementTypeEntrada, 5))
	require.NoError(t, err)
	assert.Equal(t, domaininv.MaxStock, res.Movement.StockAfter)
}

func TestRecordMovement_AlertaSoloAlCruzarElMinimo(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", 15, 10, entity.EstadoActivo)

	steps := []struct {
		typ string
		qty int
	}{
		{entity.MovementTypeSalida, 7},  // 15 → 8: cruza
		{entity.MovementTypeSalida, 3},  // 8 → 5: ya estaba abajo
		{entity.MovementTypeEntrada, 7}, // 5 → 12
		{entity.MovementTypeSalida, 5},  // 12 → 7: cruza de nuevo
	}
	alerts := 0
	for _, s := range steps {
		res, err := f.uc.RecordMovement(context.Background(), input("p1", s.typ, s.qty))
		require.NoError(t, err)
		if res.AlertRaised {
			alerts++
		}
	}

	assert.Equal(t, 2, alerts)
	notes, _ := f.notifications.ListByUser(context.Background(), "u-ana", false, 0, 0)
	assert.Len(t, notes, 2)
	assert.Equal(t, 7, f.stock(t, "p1").Stock.Actual)
}

func TestRecordMovement_AlertaAlResponsableConfigurado(t *testing.T) {
	f := newFixture(t, func(o *fixtureOptions) { o.cfg.AlertUserID = "u-bodega" })
	f.seed(t, "p1", 11, 10, entity.EstadoActivo)

	_, err := f.uc.RecordMovement(context.Background(), input("p1", entity.MovementTypeSalida, 1))
	require.NoError(t, err)

	unread, _ := f.notifications.CountUnread(context.Background(), "u-bodega")
	assert.Equal(t, 1, unread)
	unread, _ = f.notifications.CountUnread(context.Background(), "u-ana")
	assert.Equal(t, 0, unread)
}

func TestRecordMovement_FalloDeEfectosSecundariosNoRevierte(t *testing.T) {
	f := newFixture(t, func(o *fixtureOptions) {
		o.notifier = failingNotifier{}
		o.activity = failingActivity{}
	})
	f.seed(t, "p1", 20, 10, entity.EstadoActivo)

	res, err := f.uc.RecordMovement(context.Background(), input("p1", entity.MovementTypeSalida, 15))
	require.NoError(t, err)
	assert.True(t, res.AlertRaised)

	assert.Equal(t, 5, f.stock(t, "p1").Stock.Actual)
	movs, _ := f.movements.ListByProduct(context.Background(), "p1")
	assert.Len(t, movs, 1)
	assert.Equal(t, 1, f.metrics.sideEffects[inventory.SideEffectNotification])
	assert.Equal(t, 1, f.metrics.sideEffects[inventory.SideEffectActivityLog])
}

func TestRecordMovement_ReintentaConflictos(t *testing.T) {
	var flaky *flakyRunner
	f := newFixture(t, func(o *fixtureOptions) {
		o.wrapRunner = func(inner inventory.TxRunner) inventory.TxRunner {
			flaky = &flakyRunner{inner: inner, conflicts: 2}
			return flaky
		}
	})
	f.seed(t, "p1", 10, 0, entity.EstadoActivo)

	_, err := f.uc.RecordMovement(context.Background(), input("p1", entity.MovementTypeEntrada, 5))
	require.NoError(t, err)
	assert.Equal(t, 3, flaky.calls)
	assert.Equal(t, 2, f.metrics.retries)
	assert.Equal(t, 15, f.stock(t, "p1").Stock.Actual)
}

func TestRecordMovement_ConflictoPersistenteDevuelveConflict(t *testing.T) {
	f := newFixture(t, func(o *fixtureOptions) {
		o.cfg.MaxAttempts = 3
		o.wrapRunner = func(inner inventory.TxRunner) inventory.TxRunner {
			return &flakyRunner{inner: inner, conflicts: 100}
		}
	})
	f.seed(t, "p1", 10, 0, entity.EstadoActivo)

	_, err := f.uc.RecordMovement(context.Background(), input("p1", entity.MovementTypeEntrada, 5))
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 10, f.stock(t, "p1").Stock.Actual)
	assert.Equal(t, 1, f.metrics.rejections[inventory.RejectConflict])
}

func TestRecordMovement_ClaveDeIdempotenciaNoDuplica(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", 20, 10, entity.EstadoActivo)
	in := input("p1", entity.MovementTypeSalida, 15)
	in.IdempotencyKey = "req-123"

	first, err := f.uc.RecordMovement(context.Background(), in)
	require.NoError(t, err)
	second, err := f.uc.RecordMovement(context.Background(), in)
	require.NoError(t, err)

	assert.True(t, second.Replayed)
	assert.Equal(t, first.Movement.ID, second.Movement.ID)
	assert.Equal(t, 5, f.stock(t, "p1").Stock.Actual)
	notes, _ := f.notifications.ListByUser(context.Background(), "u-ana", false, 0, 0)
	assert.Len(t, notes, 1, "la repetición no vuelve a notificar")

	other := in
	other.Quantity = 1
	_, err = f.uc.RecordMovement(context.Background(), other)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordMovement_ContextoCancelado(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "p1", 20, 10, entity.EstadoActivo)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.uc.RecordMovement(ctx, input("p1", entity.MovementTypeSalida, 1))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 20, f.stock(t, "p1").Stock.Actual)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_SalidasConcurrentesNuncaDejanStockNegativo(t *testing.T) {
	f := newFixture(t, func(o *fixtureOptions) { o.cfg.MaxAttempts = 200 })
	f.seed(t, "p1", 10, 3, entity.EstadoActivo)

	const workers = 20
	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		ok, rejected int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.RecordMovement(context.Background(), input("p1", entity.MovementTypeSalida, 1))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrInsufficientStock):
				rejected++
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	assert.Equal(t, 10, rejected)
	p := f.stock(t, "p1")
	assert.Equal(t, 0, p.Stock.Actual)
	assert.Equal(t, entity.EstadoSinStock, p.Estado)

	movs, _ := f.movements.ListByProduct(context.Background(), "p1")
	require.Len(t, movs, 10)
	report := domaininv.Replay(movs, p.Stock.Actual)
	assert.True(t, report.Consistent(), "%+v", report.Discrepancies)

	notes, _ := f.notifications.ListByUser(context.Background(), "u-ana", false, 0, 0)
	assert.Len(t, notes, 1, "un solo cruce del mínimo 3")
}

func TestRecordMovement_ProductosDistintosEnParalelo(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 5; i++ {
		f.seed(t, fmt.Sprintf("p%d", i), 0, 0, entity.EstadoSinStock)
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		for j := 0; j < 4; j++ {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				_, err := f.uc.RecordMovement(context.Background(), input(id, entity.MovementTypeEntrada, 2))
				assert.NoError(t, err)
			}(fmt.Sprintf("p%d", i))
		}
	}
	wg.Wait()

	for i := 0; i < 5; i++ {
		assert.Equal(t, 8, f.stock(t, fmt.Sprintf("p%d", i)).Stock.Actual)
	}
}
