// Package metrics expone contadores Prometheus del libro de movimientos, del HTTP y del pool de conexiones.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jhoicas/lm-inventario/internal/application/inventory"
)

var _ inventory.Metrics = (*LedgerMetrics)(nil)

// LedgerMetrics implementa inventory.Metrics.
type LedgerMetrics struct {
	movements         *prometheus.CounterVec
	conflictRetries   prometheus.Counter
	thresholdCrossing prometheus.Counter
	sideEffectFails   *prometheus.CounterVec
	rejections        *prometheus.CounterVec
}

// NewLedgerMetrics registra los contadores en reg.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	f := promauto.With(reg)
	return &LedgerMetrics{
		movements: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_movements_total",
			Help: "Movimientos registrados por tipo",
		}, []string{"type"}),
		conflictRetries: f.NewCounter(prometheus.CounterOpts{
			Name: "ledger_conflict_retries_total",
			Help: "Reintentos por conflicto de concurrencia sobre el mismo producto",
		}),
		thresholdCrossing: f.NewCounter(prometheus.CounterOpts{
			Name: "ledger_threshold_crossings_total",
			Help: "Salidas que cruzaron el stock mínimo y generaron alerta",
		}),
		sideEffectFails: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_side_effect_failures_total",
			Help: "Fallos de notificación o bitácora posteriores al commit",
		}, []string{"kind"}),
		rejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_rejections_total",
			Help: "Movimientos rechazados por motivo",
		}, []string{"reason"}),
	}
}

func (m *LedgerMetrics) MovementRecorded(movementType string) {
	m.movements.WithLabelValues(movementType).Inc()
}

func (m *LedgerMetrics) ConflictRetry() { m.conflictRetries.Inc() }

func (m *LedgerMetrics) ThresholdCrossed() { m.thresholdCrossing.Inc() }

func (m *LedgerMetrics) SideEffectFailed(kind string) {
	m.sideEffectFails.WithLabelValues(kind).Inc()
}

func (m *LedgerMetrics) Rejected(reason string) {
	m.rejections.WithLabelValues(reason).Inc()
}
