// internal/utils/metrics/collector.go
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector держит метрики запусков в собственном реестре.
type Collector struct {
	registry      *prometheus.Registry
	launches      *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	inFlight      *prometheus.GaugeVec
}

// NewCollector создает новый экземпляр коллектора метрик
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		launches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "token_launcher_launches_total",
				Help: "Total number of finished launch attempts",
			},
			[]string{"platform", "outcome"},
		),
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "token_launcher_stage_duration_seconds",
				Help:    "Time spent in each launch stage",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
			},
			[]string{"platform", "stage"},
		),
		inFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "token_launcher_launches_in_flight",
				Help: "Launch attempts currently running",
			},
			[]string{"platform"},
		),
	}
	c.registry.MustRegister(c.launches, c.stageDuration, c.inFlight)
	return c
}

// Registry отдаёт реестр для экспорта и тестов.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler — обработчик /metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Reset сбрасывает все метрики (полезно для тестирования)
func (c *Collector) Reset() {
	c.launches.Reset()
	c.stageDuration.Reset()
	c.inFlight.Reset()
}
