// Package metrics provides a Prometheus-backed implementation of the
// engine's StatsHook.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cardstream "github.com/haowjy/cardstream-go"
)

// Collector groups all Prometheus instruments for the streaming engine.
// It implements cardstream.StatsHook.
type Collector struct {
	RunsStarted          *prometheus.CounterVec
	UpdatesEmitted       *prometheus.CounterVec
	ReconstructionMisses prometheus.Counter
	RunDuration          *prometheus.HistogramVec
}

var _ cardstream.StatsHook = (*Collector)(nil)

// NewCollector registers the engine instruments on the given registerer.
// Pass prometheus.DefaultRegisterer for process-wide metrics, or a private
// registry in tests.
func NewCollector(namespace string, reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		RunsStarted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_started_total",
			Help:      "Streaming runs started, by mode.",
		}, []string{"mode"}),
		UpdatesEmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "card_updates_total",
			Help:      "Card updates emitted, by stage.",
		}, []string{"stage"}),
		ReconstructionMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconstruction_misses_total",
			Help:      "Ticks whose prefix did not parse even after repair.",
		}),
		RunDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Run duration from start to terminal stage, by outcome.",
			Buckets:   []float64{0.05, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"stage"}),
	}
}

func (c *Collector) RunStarted(instant bool) {
	mode := "streaming"
	if instant {
		mode = "instant"
	}
	c.RunsStarted.WithLabelValues(mode).Inc()
}

func (c *Collector) UpdateEmitted(stage cardstream.Stage) {
	c.UpdatesEmitted.WithLabelValues(stage.String()).Inc()
}

func (c *Collector) ReconstructionMiss() {
	c.ReconstructionMisses.Inc()
}

func (c *Collector) RunFinished(stage cardstream.Stage, elapsed time.Duration) {
	c.RunDuration.WithLabelValues(stage.String()).Observe(elapsed.Seconds())
}

// Handler exposes the default registry over HTTP.
func Handler() http.Handler {
	return promhttp.Handler()
}
