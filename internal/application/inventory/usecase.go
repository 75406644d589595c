package inventory

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/lm-inventario/internal/domain"
	"github.com/jhoicas/lm-inventario/internal/domain/entity"
	"github.com/jhoicas/lm-inventario/internal/domain/inventory"
	"github.com/jhoicas/lm-inventario/internal/domain/repository"
)

// Valores por defecto del libro de movimientos.
const (
	DefaultMaxAttempts       = 5
	DefaultBaseBackoff       = 25 * time.Millisecond
	DefaultSideEffectTimeout = 5 * time.Second

	maxBackoff          = 2 * time.Second
	backoffJitterFactor = 0.5
)

// Config ajusta reintentos y efectos secundarios del registro de movimientos.
type Config struct {
	MaxAttempts       int
	BaseBackoff       time.Duration
	SideEffectTimeout time.Duration
	// AlertUserID recibe las alertas de stock bajo. Vacío: se notifica al usuario que registró el movimiento.
	AlertUserID string
}

func (c Config) withDefaults() Config {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.BaseBackoff <= 0 {
		c.BaseBackoff = DefaultBaseBackoff
	}
	if c.SideEffectTimeout <= 0 {
		c.SideEffectTimeout = DefaultSideEffectTimeout
	}
	return c
}

// RecordMovementInput datos de un movimiento. Actor llega ya verificado por la capa HTTP.
type RecordMovementInput struct {
	ProductID      string
	Type           string
	Quantity       int
	Reason         string
	Observations   string
	Actor          entity.Actor
	IdempotencyKey string
}

// RecordMovementResult resultado de RecordMovement.
// Replayed indica que la clave de idempotencia ya estaba registrada y se devolvió el movimiento existente.
type RecordMovementResult struct {
	Movement    *entity.Movement
	AlertRaised bool
	Replayed    bool
}

// RecordMovementUseCase registra entradas y salidas de stock de forma transaccional:
// lee el producto bloqueándolo, valida el saldo, actualiza stock y estado, y agrega el movimiento
// al libro. Tras el commit dispara la alerta de stock bajo y la entrada de bitácora.
type RecordMovementUseCase struct {
	txRunner TxRunner
	notifier Notifier
	activity ActivityLogger
	metrics  Metrics
	logger   zerolog.Logger
	cfg      Config

	now   func() time.Time
	newID func() string
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRecordMovementUseCase construye el caso de uso. metrics puede ser nil.
func NewRecordMovementUseCase(
	txRunner TxRunner,
	notifier Notifier,
	activity ActivityLogger,
	metrics Metrics,
	logger zerolog.Logger,
	cfg Config,
) *RecordMovementUseCase {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &RecordMovementUseCase{
		txRunner: txRunner,
		notifier: notifier,
		activity: activity,
		metrics:  metrics,
		logger:   logger,
		cfg:      cfg.withDefaults(),
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
		sleep:    sleepContext,
	}
}

// RecordMovement valida la entrada, ejecuta la transacción (reintentando conflictos con backoff
// exponencial y jitter) y, si hubo commit, espera los efectos secundarios antes de volver.
func (uc *RecordMovementUseCase) RecordMovement(ctx context.Context, in RecordMovementInput) (*RecordMovementResult, error) {
	in.ProductID = strings.TrimSpace(in.ProductID)
	in.Reason = strings.TrimSpace(in.Reason)
	in.IdempotencyKey = strings.TrimSpace(in.IdempotencyKey)
	if err := validateInput(in); err != nil {
		uc.metrics.Rejected(RejectValidation)
		return nil, err
	}

	var (
		res     *RecordMovementResult
		crossed bool
		err     error
	)
	for attempt := 0; attempt < uc.cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			uc.metrics.ConflictRetry()
			if werr := uc.sleep(ctx, uc.backoff(attempt-1)); werr != nil {
				return nil, werr
			}
		}
		res, crossed, err = uc.attempt(ctx, in)
		if err == nil || !errors.Is(err, domain.ErrConflict) {
			break
		}
		uc.logger.Debug().
			Str("product_id", in.ProductID).
			Int("attempt", attempt+1).
			Err(err).
			Msg("conflicto al registrar movimiento, reintentando")
	}
	if err != nil {
		uc.metrics.Rejected(rejectReason(err))
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%w: no se pudo registrar el movimiento tras %d intentos", domain.ErrConflict, uc.cfg.MaxAttempts)
		}
		return nil, err
	}

	if res.Replayed {
		return res, nil
	}
	uc.metrics.MovementRecorded(res.Movement.Type)
	if crossed {
		uc.metrics.ThresholdCrossed()
	}
	res.AlertRaised = crossed
	uc.runSideEffects(ctx, res.Movement, in.Actor, crossed)
	return res, nil
}

// attempt ejecuta una sola transacción. Todo el estado del intento vive en variables locales
// para que un reintento empiece siempre desde cero.
func (uc *RecordMovementUseCase) attempt(ctx context.Context, in RecordMovementInput) (*RecordMovementResult, bool, error) {
	var (
		res     *RecordMovementResult
		crossed bool
	)
	err := uc.txRunner.Run(ctx, func(ctx context.Context, products repository.ProductTxRepository, movements repository.MovementTxRepository) error {
		if in.IdempotencyKey != "" {
			existing, err := movements.GetByIdempotencyKey(ctx, in.IdempotencyKey)
			if err != nil {
				return err
			}
			if existing != nil {
				if existing.ProductID != in.ProductID || existing.Type != in.Type || existing.Quantity != in.Quantity {
					return domain.InvalidInput("la clave de idempotencia ya se usó para otro movimiento")
				}
				res = &RecordMovementResult{Movement: existing, Replayed: true}
				return nil
			}
		}

		product, err := products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NotFound("Producto no encontrado.")
		}

		out, err := inventory.Apply(inventory.BalanceOf(product), in.Type, in.Quantity)
		if err != nil {
			return err
		}

		now := uc.now()
		if err := products.UpdateStock(ctx, product.ID, out.StockAfter, out.NewEstado, now); err != nil {
			return err
		}
		mov := &entity.Movement{
			ID:           uc.newID(),
			ProductID:    product.ID,
			Type:         in.Type,
			Quantity:     in.Quantity,
			Reason:       in.Reason,
			Observations: in.Observations,
			ActorID:      in.Actor.ID,
			ActorName:    in.Actor.DisplayName,
			Date:         now,
			StockBefore:  out.StockBefore,
			StockAfter:   out.StockAfter,
			ProductSnapshot: entity.ProductSnapshot{
				Name: product.Name,
				SKU:  product.SKU,
			},
			IdempotencyKey: in.IdempotencyKey,
		}
		if err := movements.Create(ctx, mov); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				// Otra petición con la misma clave confirmó primero: el reintento la encontrará.
				return fmt.Errorf("%w: %v", domain.ErrConflict, err)
			}
			return err
		}
		res = &RecordMovementResult{Movement: mov}
		crossed = out.CrossedBelowMinimum
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return res, crossed, nil
}

// runSideEffects lanza notificación y bitácora en paralelo y espera a ambas.
// Corren sobre un contexto desligado de la cancelación de la petición, acotado por SideEffectTimeout.
// Sus fallos solo se registran; el movimiento ya está confirmado.
func (uc *RecordMovementUseCase) runSideEffects(ctx context.Context, mov *entity.Movement, actor entity.Actor, crossed bool) {
	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.cfg.SideEffectTimeout)
	defer cancel()

	var wg sync.WaitGroup
	if crossed && uc.notifier != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			target := uc.cfg.AlertUserID
			if target == "" {
				target = actor.ID
			}
			_, err := uc.notifier.Notify(sctx, target, LowStockMessage(mov.ProductSnapshot.Name, mov.StockAfter),
				entity.NotificationKindStockAlert, ProductLink(mov.ProductID))
			if err != nil {
				uc.sideEffectFailed(SideEffectNotification, mov, err)
			}
		}()
	}
	if uc.activity != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := uc.activity.Log(sctx, actor.LogName(), entity.ActionRegistrarMovimiento, MovementLogDetails(mov)); err != nil {
				uc.sideEffectFailed(SideEffectActivityLog, mov, err)
			}
		}()
	}
	wg.Wait()
}

func (uc *RecordMovementUseCase) sideEffectFailed(kind string, mov *entity.Movement, err error) {
	uc.metrics.SideEffectFailed(kind)
	uc.logger.Warn().
		Str("side_effect", kind).
		Str("product_id", mov.ProductID).
		Str("movement_id", mov.ID).
		Err(err).
		Msg("efecto secundario del movimiento falló")
}

// backoff devuelve la espera antes del reintento n (0-based): base·2^n acotado, con ±50% de jitter.
func (uc *RecordMovementUseCase) backoff(n int) time.Duration {
	d := uc.cfg.BaseBackoff << n
	if d <= 0 || d > maxBackoff {
		d = maxBackoff
	}
	jitter := time.Duration(float64(d) * backoffJitterFactor * (2*rand.Float64() - 1)) // #nosec G404 -- jitter no criptográfico
	return d + jitter
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func validateInput(in RecordMovementInput) error {
	switch {
	case in.ProductID == "":
		return domain.InvalidInput("Faltan datos requeridos: productId.")
	case !entity.IsValidMovementType(in.Type):
		return domain.InvalidInput("El tipo de movimiento debe ser 'entrada' o 'salida'.")
	case in.Quantity <= 0:
		return domain.InvalidInput("La cantidad debe ser un entero mayor que cero.")
	case in.Quantity > inventory.MaxStock:
		return domain.InvalidInput(fmt.Sprintf("La cantidad no puede superar %d.", inventory.MaxStock))
	case in.Reason == "":
		return domain.InvalidInput("Faltan datos requeridos: reason.")
	case in.Actor.ID == "":
		return domain.InvalidInput("Falta la identidad del usuario que registra el movimiento.")
	}
	return nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return RejectValidation
	case errors.Is(err, domain.ErrNotFound):
		return RejectNotFound
	case errors.Is(err, domain.ErrInsufficientStock):
		return RejectInsufficientStock
	case errors.Is(err, domain.ErrConflict):
		return RejectConflict
	}
	return RejectInternal
}

// LowStockMessage texto de la alerta de stock bajo.
func LowStockMessage(productName string, stockAfter int) string {
	return fmt.Sprintf("Alerta de stock bajo para %q. Stock actual: %d.", productName, stockAfter)
}

// ProductLink enlace del frontend a la edición del producto.
func ProductLink(productID string) string {
	return "/products/edit/" + productID
}

// MovementLogDetails detalle de bitácora para un movimiento registrado.
func MovementLogDetails(m *entity.Movement) string {
	return fmt.Sprintf("Tipo: %s, Producto: %q, Cantidad: %d, Razón: %s", m.Type, m.ProductSnapshot.Name, m.Quantity, m.Reason)
}
