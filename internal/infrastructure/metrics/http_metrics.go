package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPMetrics cuenta peticiones y su duración por método, ruta y status.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

// NewHTTPMetrics registra las métricas HTTP en reg.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	f := promauto.With(reg)
	return &HTTPMetrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total de peticiones HTTP",
		}, []string{"method", "path", "status"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duración de peticiones HTTP en segundos",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		inFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Peticiones HTTP en curso",
		}),
	}
}

// Start marca el inicio de una petición; la función devuelta la cierra.
// path debe ser la ruta registrada (ej. /api/movements/:id) para no disparar la cardinalidad.
func (m *HTTPMetrics) Start() func(method, path string, status int) {
	start := time.Now()
	m.inFlight.Inc()
	return func(method, path string, status int) {
		m.inFlight.Dec()
		s := strconv.Itoa(status)
		m.requests.WithLabelValues(method, path, s).Inc()
		m.duration.WithLabelValues(method, path, s).Observe(time.Since(start).Seconds())
	}
}
