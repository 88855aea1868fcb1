package engine

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the Prometheus collectors updated by a Generator.
type Metrics struct {
	Generations    prometheus.Counter
	Failures       prometheus.Counter
	LeafParts      prometheus.Counter
	UnmatchedParts prometheus.Counter
	Groups         prometheus.Gauge
	Pieces         prometheus.Gauge
	Duration       prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Generations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cutlist",
			Name:      "generations_total",
			Help:      "Number of cutlist generations run.",
		}),
		Failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cutlist",
			Name:      "generation_failures_total",
			Help:      "Number of cutlist generations rejected before traversal.",
		}),
		LeafParts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cutlist",
			Name:      "leaf_parts_total",
			Help:      "Number of leaf parts found across generations.",
		}),
		UnmatchedParts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cutlist",
			Name:      "unmatched_thickness_parts_total",
			Help:      "Number of leaf parts whose thickness has no standard match.",
		}),
		Groups: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cutlist",
			Name:      "groups",
			Help:      "Number of material/thickness groups in the last cutlist.",
		}),
		Pieces: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cutlist",
			Name:      "pieces",
			Help:      "Number of distinct pieces in the last cutlist.",
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cutlist",
			Name:      "generation_duration_seconds",
			Help:      "Time spent generating a cutlist.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
	}
	reg.MustRegister(m.Generations, m.Failures, m.LeafParts, m.UnmatchedParts, m.Groups, m.Pieces, m.Duration)
	return m
}
