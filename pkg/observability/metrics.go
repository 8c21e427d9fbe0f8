package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/flowgrid/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "flowgrid"

// Metrics records engine activity.
type Metrics struct {
	registry *prometheus.Registry

	events         *prometheus.CounterVec
	projections    prometheus.Counter
	projectionTime prometheus.Histogram
	visibleRows    prometheus.Histogram
	metadataErrors *prometheus.CounterVec
}

// NewMetrics creates the collectors on a fresh registry. Process and Go
// runtime collectors are included when withRuntime is true.
func NewMetrics(withRuntime bool) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "events_total",
			Help:      "Grid events applied, by type and whether they changed the state.",
		}, []string{"type", "changed"}),
		projections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "projections_total",
			Help:      "Views projected.",
		}),
		projectionTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "projection_duration_seconds",
			Help:      "Time spent deriving a view.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		visibleRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "visible_rows",
			Help:      "Rows left visible after filtering.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		metadataErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "metadata_errors_total",
			Help:      "Metadata retrieval failures, by object.",
		}, []string{"object"}),
	}

	m.registry.MustRegister(m.events, m.projections, m.projectionTime, m.visibleRows, m.metadataErrors)
	if withRuntime {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return m
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnEventApplied: func(ctx context.Context, e *domain.AppliedEvent) {
			changed := "false"
			if e.Changed {
				changed = "true"
			}
			m.events.WithLabelValues(string(e.Type), changed).Inc()
		},
		OnProjected: func(ctx context.Context, e *domain.ProjectionEvent) {
			m.projections.Inc()
			m.projectionTime.Observe(e.Duration.Seconds())
			m.visibleRows.Observe(float64(e.VisibleRows))
		},
		OnMetadataError: func(ctx context.Context, e *domain.MetadataError) {
			m.metadataErrors.WithLabelValues(e.ObjectName).Inc()
		},
	}
}

// Registry exposes the underlying registry, e.g. to add adapter collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
