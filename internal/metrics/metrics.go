// Package metrics exposes solver progress as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/SeamusWaldron/gocube_solver"
)

// Namespace for all metrics
const metricsNamespace = "gocube"

const metricsSubsystem = "search"

// Outcome labels for finished searches.
const (
	OutcomeSolved    = "solved"
	OutcomeExhausted = "exhausted"
	OutcomeCanceled  = "canceled"
	OutcomeFailed    = "failed"
)

// SearchMetrics tracks the counters of running searches.
//
// Counters only move forward, so Observe applies the difference between
// consecutive stats snapshots of the same search. Call Reset before feeding
// snapshots of a new search.
type SearchMetrics struct {
	Popped     prometheus.Counter
	Expanded   prometheus.Counter
	Duplicates prometheus.Counter
	Cutoffs    prometheus.Counter
	Frontier   prometheus.Gauge
	Signatures prometheus.Gauge
	Searches   *prometheus.CounterVec

	last gocube.SearchStats
}

// NewSearchMetrics creates the search metrics and registers them with reg.
func NewSearchMetrics(reg prometheus.Registerer) *SearchMetrics {
	factory := promauto.With(reg)

	return &SearchMetrics{
		Popped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "nodes_popped_total",
			Help:      "Nodes taken off the search frontier",
		}),
		Expanded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "nodes_expanded_total",
			Help:      "Nodes whose successors were generated",
		}),
		Duplicates: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "nodes_duplicate_total",
			Help:      "Nodes skipped because their state was already expanded",
		}),
		Cutoffs: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "nodes_cutoff_total",
			Help:      "Nodes pruned at the depth limit",
		}),
		Frontier: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "frontier_size",
			Help:      "Nodes waiting on the search frontier",
		}),
		Signatures: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "expanded_states",
			Help:      "Distinct cube states expanded so far",
		}),
		Searches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "finished_total",
			Help:      "Finished searches by outcome",
		}, []string{"outcome"}),
	}
}

// Observe applies a stats snapshot. It can be passed directly to
// gocube.WithProgress.
func (m *SearchMetrics) Observe(stats gocube.SearchStats) {
	m.Popped.Add(delta(stats.Popped, m.last.Popped))
	m.Expanded.Add(delta(stats.Expanded, m.last.Expanded))
	m.Duplicates.Add(delta(stats.Duplicates, m.last.Duplicates))
	m.Cutoffs.Add(delta(stats.Cutoffs, m.last.Cutoffs))
	m.Frontier.Set(float64(stats.Frontier))
	m.Signatures.Set(float64(stats.Signatures))
	m.last = stats
}

// Finish counts a finished search and resets the snapshot baseline.
func (m *SearchMetrics) Finish(outcome string) {
	m.Searches.WithLabelValues(outcome).Inc()
	m.Reset()
}

// Reset forgets the last snapshot so the next search starts from zero.
func (m *SearchMetrics) Reset() {
	m.last = gocube.SearchStats{}
}

func delta(current, previous int) float64 {
	if current < previous {
		return 0
	}
	return float64(current - previous)
}
