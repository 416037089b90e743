package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector records the same events as collector but exports them
// as Prometheus metrics instead of (or alongside) an in-memory summary.
type PrometheusCollector struct {
	registry *prometheus.Registry

	iterations prometheus.Counter
	gap        prometheus.Gauge
	fscNodes   prometheus.Gauge
	duration   prometheus.Histogram

	startTime time.Time
	count     int
}

// NewPrometheusCollector registers a fresh set of collectors on reg and
// returns a Collector backed by them.
func NewPrometheusCollector(reg *prometheus.Registry) *PrometheusCollector {
	c := &PrometheusCollector{
		registry: reg,
		iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mcvi",
			Name:      "planner_iterations_total",
			Help:      "Number of planner iterations completed.",
		}),
		gap: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mcvi",
			Name:      "planner_bound_gap",
			Help:      "Current upper-lower bound gap at the root belief node.",
		}),
		fscNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mcvi",
			Name:      "fsc_nodes",
			Help:      "Number of nodes currently in the FSC store.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mcvi",
			Name:      "planner_run_duration_seconds",
			Help:      "Wall-clock duration of a planner run.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(c.iterations, c.gap, c.fscNodes, c.duration)
	return c
}

func (c *PrometheusCollector) Start() { c.startTime = time.Now() }

func (c *PrometheusCollector) AddIteration(m IterationMetric) {
	c.iterations.Inc()
	c.gap.Set(m.Gap)
	c.fscNodes.Set(float64(m.FSCNodes))
	c.count++
}

func (c *PrometheusCollector) Complete(finalGap float64, fscNodes int) RunMetric {
	elapsed := time.Since(c.startTime)
	c.duration.Observe(elapsed.Seconds())
	c.gap.Set(finalGap)
	c.fscNodes.Set(float64(fscNodes))
	return RunMetric{Iterations: c.count, Duration: elapsed, FinalGap: finalGap, FSCNodes: fscNodes}
}
