package belief

import (
	"math"
	"math/rand"

	"golang.org/x/exp/slices"

	"github.com/aschutz-mcvi/mcviplanner/pomdp"
)

// SampleOne draws a single state from d via inverse-CDF walk over d's
// states in sorted order (spec §4.2). d need not sum to one: the target is
// scaled to d's actual total mass, so callers sampling without replacement
// from a shrinking remainder (buildActionNode deletes states as it draws
// them, never renormalising) still draw proportional to the remaining
// weights rather than biasing toward whichever state is left.
func SampleOne(d Distribution, rng *rand.Rand) pomdp.State {
	states := d.States()
	target := rng.Float64() * d.Sum()
	cumulative := 0.0
	for _, s := range states {
		cumulative += d[s]
		if target <= cumulative {
			return s
		}
	}
	// Floating point rounding can leave target just past the last
	// cumulative sum; fall back to the last state rather than panic.
	return states[len(states)-1]
}

// DownSample returns a belief with at most k distinct states, drawn from d
// by Efraimidis-Spirakis weighted reservoir sampling and renormalised to sum
// to one. Design Notes explicitly rule out independent Bernoulli thinning
// because it is biased toward low-weight states at small k; weighted
// reservoir sampling has no such bias.
func DownSample(d Distribution, k int, rng *rand.Rand) Distribution {
	states := d.States()
	if k <= 0 || len(states) <= k {
		return d.Clone()
	}

	type keyedState struct {
		state pomdp.State
		key   float64
	}
	keyed := make([]keyedState, len(states))
	for i, s := range states {
		w := d[s]
		u := rng.Float64()
		// Efraimidis-Spirakis key: u^(1/w). Higher weight pulls the key
		// closer to 1, so the top-k keys favour high-weight states
		// without ever fully excluding low-weight ones.
		key := math.Pow(u, 1.0/w)
		keyed[i] = keyedState{state: s, key: key}
	}

	slices.SortFunc(keyed, func(a, b keyedState) int {
		switch {
		case a.key > b.key:
			return -1
		case a.key < b.key:
			return 1
		default:
			return 0
		}
	})

	out := make(Distribution, k)
	for _, ks := range keyed[:k] {
		out[ks.state] = d[ks.state]
	}
	_ = Normalize(out)
	return out
}

// SampleInitial draws N start states from sim, counts frequencies, and
// returns the resulting empirical belief (spec §4.2).
func SampleInitial(sim pomdp.Simulator, n int, rng *rand.Rand) Distribution {
	counts := make(Distribution)
	for i := 0; i < n; i++ {
		s := sim.SampleStart(rng)
		counts[s]++
	}
	_ = Normalize(counts)
	return counts
}
