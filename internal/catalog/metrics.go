package catalog

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records facade operation outcomes. A nil *Metrics is a no-op.
type Metrics struct {
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	exhausted  *prometheus.CounterVec
}

// NewMetrics registers the catalog collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trivia",
			Subsystem: "catalog",
			Name:      "operations_total",
			Help:      "Catalog operations by name and outcome.",
		}, []string{"operation", "outcome"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "trivia",
			Subsystem: "catalog",
			Name:      "operation_duration_seconds",
			Help:      "Catalog operation latency including store round trips.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		exhausted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trivia",
			Subsystem: "quiz",
			Name:      "exhausted_total",
			Help:      "Quiz requests that found no unseen question.",
		}, []string{"scope"}),
	}
}

// observe is deferred by every facade operation; errp points at its named
// error result.
func (m *Metrics) observe(op string, start time.Time, errp *error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if errp != nil && *errp != nil {
		outcome = string(KindOf(*errp))
	}
	m.operations.WithLabelValues(op, outcome).Inc()
	m.latency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (m *Metrics) quizExhausted(scope Scope) {
	if m == nil {
		return
	}
	label := "category"
	if scope == AllCategories {
		label = "all"
	}
	m.exhausted.WithLabelValues(label).Inc()
}
