package observability

import (
	"fmt"

	"github.com/aretw0/rewind/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by the history hooks.
type Metrics struct {
	Operations  *prometheus.CounterVec
	Evictions   *prometheus.CounterVec
	PoolWraps   *prometheus.CounterVec
	Depth       *prometheus.GaugeVec
	Checkpoints *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rewind_operations_total",
				Help: "Total number of record, undo and redo operations",
			},
			[]string{"op"},
		),
		Evictions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rewind_evictions_total",
				Help: "History entries dropped for exceeding the capacity",
			},
			[]string{"stack"},
		),
		PoolWraps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rewind_pool_wraps_total",
				Help: "Snapshots recycled while still referenced by a history",
			},
			[]string{"stack"},
		),
		Depth: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "rewind_history_depth",
				Help: "Current number of entries in each history",
			},
			[]string{"stack"},
		),
		Checkpoints: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rewind_checkpoint_states",
				Help:    "Number of states held by a snapshot when it is recorded or applied",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
			[]string{"op"},
		),
	}

	for _, c := range []prometheus.Collector{m.Operations, m.Evictions, m.PoolWraps, m.Depth, m.Checkpoints} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that update the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	operation := func(e *domain.HistoryEvent) {
		op := string(e.Type)
		m.Operations.WithLabelValues(op).Inc()
		m.Checkpoints.WithLabelValues(op).Observe(float64(len(e.Changed) + len(e.Created)))
		m.observeDepth(e)
	}

	return domain.LifecycleHooks{
		OnRecord: operation,
		OnUndo:   operation,
		OnRedo:   operation,
		OnEvict: func(e *domain.HistoryEvent) {
			m.Evictions.WithLabelValues(e.Stack).Inc()
			m.observeDepth(e)
		},
		OnPoolWrap: func(e *domain.HistoryEvent) {
			m.PoolWraps.WithLabelValues(e.Stack).Inc()
		},
	}
}

func (m *Metrics) observeDepth(e *domain.HistoryEvent) {
	m.Depth.WithLabelValues("undo").Set(float64(e.UndoDepth))
	m.Depth.WithLabelValues("redo").Set(float64(e.RedoDepth))
}
