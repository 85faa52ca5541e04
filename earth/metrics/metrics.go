// Package metrics holds the prometheus collectors of the globe loop.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "globe"

// Metrics is a set of collectors registered on their own registry, so
// several loops (and tests) never collide on the default one.
type Metrics struct {
	Registry *prometheus.Registry

	Frames       prometheus.Counter
	FrameSeconds prometheus.Histogram
	DragSessions prometheus.Counter
	GeoLoads     *prometheus.CounterVec
	InputDropped prometheus.Counter
	LayersLoaded prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Frames rendered",
		}),
		FrameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_render_seconds",
			Help:      "Time spent rendering one frame",
			Buckets:   []float64{0.001, 0.002, 0.004, 0.008, 0.016, 0.033, 0.066, 0.1, 0.25},
		}),
		DragSessions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "drag_sessions_total",
			Help:      "Drags started by pointer or touch",
		}),
		GeoLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geo_loads_total",
			Help:      "Completed geo layer fetches by outcome",
		}, []string{"layer", "outcome"}),
		InputDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "input_dropped_total",
			Help:      "Input events lost to a full queue",
		}),
		LayersLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "layers_loaded",
			Help:      "Geo layers currently loaded",
		}),
	}
	m.Registry.MustRegister(m.Frames, m.FrameSeconds, m.DragSessions, m.GeoLoads, m.InputDropped, m.LayersLoaded)
	return m
}

// ObserveFrame records one rendered frame.
func (m *Metrics) ObserveFrame(d time.Duration) {
	m.Frames.Inc()
	m.FrameSeconds.Observe(d.Seconds())
}

// ObserveLoad records a finished fetch for layer.
func (m *Metrics) ObserveLoad(layer string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.GeoLoads.WithLabelValues(layer, outcome).Inc()
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
