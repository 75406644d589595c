package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lm-inventario/internal/application/inventory"
	"github.com/jhoicas/lm-inventario/internal/domain/entity"
)

func TestLedgerMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewLedgerMetrics(reg)

	m.MovementRecorded(entity.MovementTypeEntrada)
	m.MovementRecorded(entity.MovementTypeSalida)
	m.MovementRecorded(entity.MovementTypeSalida)
	m.ConflictRetry()
	m.ThresholdCrossed()
	m.SideEffectFailed(inventory.SideEffectNotification)
	m.Rejected(inventory.RejectInsufficientStock)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.movements.WithLabelValues(entity.MovementTypeSalida)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.conflictRetries))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.thresholdCrossing))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sideEffectFails.WithLabelValues(inventory.SideEffectNotification)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejections.WithLabelValues(inventory.RejectInsufficientStock)))

	n, err := testutil.GatherAndCount(reg, "ledger_movements_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestHTTPMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	done := m.Start()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.inFlight))
	done("POST", "/api/movements", 201)

	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("POST", "/api/movements", "201")))
}

func TestPoolStatsCollector_SinPool(t *testing.T) {
	c := NewPoolStatsCollector(nil)
	ch := make(chan *prometheus.Desc, 10)
	c.Describe(ch)
	close(ch)
	assert.Len(t, ch, 6)

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(c))
	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Zero(t, n)
}
