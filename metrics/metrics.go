// Package metrics instruments a planner run: iterations completed, bound
// gap per iteration, FSC store growth, and traversal depth. Grounded on
// searcher/metrics.go's Collector/dummyCollector split in the teacher repo.
package metrics

import (
	"sync/atomic"
	"time"
)

// IterationMetric summarises one planner iteration (spec §4.8's loop body).
type IterationMetric struct {
	Iteration      int
	Gap            float64
	TraversalDepth int
	FSCNodes       int
}

// RunMetric summarises a completed planner run.
type RunMetric struct {
	Iterations int
	Duration   time.Duration
	FinalGap   float64
	FSCNodes   int
}

// Collector receives instrumentation events during Plan (planner.Planner).
type Collector interface {
	Start()
	AddIteration(IterationMetric)
	Complete(finalGap float64, fscNodes int) RunMetric
}

type collector struct {
	startTime time.Time
	count     atomic.Int32
	lastGap   atomic.Value // float64
}

// NewCollector returns a Collector that tracks iteration count and timing.
func NewCollector() Collector {
	c := &collector{}
	c.lastGap.Store(0.0)
	return c
}

func (c *collector) Start() { c.startTime = time.Now() }

func (c *collector) AddIteration(m IterationMetric) {
	c.count.Add(1)
	c.lastGap.Store(m.Gap)
}

func (c *collector) Complete(finalGap float64, fscNodes int) RunMetric {
	return RunMetric{
		Iterations: int(c.count.Load()),
		Duration:   time.Since(c.startTime),
		FinalGap:   finalGap,
		FSCNodes:   fscNodes,
	}
}

// NewNoopCollector returns a Collector that discards every event, for
// callers who don't want instrumentation overhead (spec's default — metrics
// are an ambient concern, not part of Plan's contract).
func NewNoopCollector() Collector { return noopCollector{} }

type noopCollector struct{}

func (noopCollector) Start()                                           {}
func (noopCollector) AddIteration(IterationMetric)                     {}
func (noopCollector) Complete(float64, int) RunMetric                  { return RunMetric{} }
