// Package belief implements the weighted finite distribution over POMDP
// states used throughout the planner (spec §3, §4.2), along with the
// sampling routines the belief tree and Monte-Carlo backup depend on.
package belief

import (
	"math"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/aschutz-mcvi/mcviplanner/mcvierr"
	"github.com/aschutz-mcvi/mcviplanner/pomdp"
)

// normTolerance bounds how far a belief's probabilities may stray from
// summing to one before it is rejected as a SimulatorViolation (spec §8,
// property 1: "Σ_s n.belief[s] = 1 ± 1e-9").
const normTolerance = 1e-9

// Distribution maps state to probability. Zero-weight states are never
// present: every key has strictly positive probability, per spec §3.
type Distribution map[pomdp.State]float64

// States returns the distribution's keys in ascending order. Go map
// iteration order is unspecified, so every caller that needs a
// deterministic scan (sampling, argmax tie-breaks, dedup comparisons) must
// go through this instead of `for s := range d`.
func (d Distribution) States() []pomdp.State {
	ks := maps.Keys(d)
	slices.Sort(ks)
	return ks
}

// Sum returns Σ_s d[s].
func (d Distribution) Sum() float64 {
	total := 0.0
	for _, s := range d.States() {
		total += d[s]
	}
	return total
}

// Normalize scales d in place so its probabilities sum to one. It returns a
// SimulatorViolation if d is empty or its total mass is non-positive.
func Normalize(d Distribution) error {
	total := d.Sum()
	if len(d) == 0 || total <= 0 {
		return mcvierr.New(mcvierr.SimulatorViolation,
			"belief distribution has no positive mass (total=%v, states=%d)", total, len(d))
	}
	if math.Abs(total-1.0) <= normTolerance {
		return nil
	}
	for s := range d {
		d[s] /= total
	}
	return nil
}

// Validate checks the normalisation invariant (spec §8, property 1) without
// mutating d.
func Validate(d Distribution) error {
	if len(d) == 0 {
		return mcvierr.New(mcvierr.SimulatorViolation, "belief distribution is empty")
	}
	total := d.Sum()
	if math.Abs(total-1.0) > normTolerance {
		return mcvierr.New(mcvierr.SimulatorViolation,
			"belief distribution sums to %v, not 1 (+/- %v)", total, normTolerance)
	}
	for s, p := range d {
		if p <= 0 {
			return mcvierr.New(mcvierr.SimulatorViolation,
				"belief distribution has non-positive weight %v for state %d", p, s)
		}
	}
	return nil
}

// Clone returns a deep copy of d.
func (d Distribution) Clone() Distribution {
	out := make(Distribution, len(d))
	for s, p := range d {
		out[s] = p
	}
	return out
}
