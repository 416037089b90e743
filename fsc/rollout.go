package fsc

import (
	"math"
	"math/rand"

	"github.com/aschutz-mcvi/mcviplanner/pomdp"
)

// Simulate walks the FSC from index, executing each visited node's best
// action in sim, accumulating gamma^t * reward, and following the
// observation edge to the next FSC node (spec §4.4). If the edge becomes
// unset before depthMax steps, it adds a terminal correction of
// gamma^depthMax * rLower and stops; it also stops early on a terminal
// transition. The first value computed for (index, state) is cached on the
// store and returned verbatim on every later call, which is what makes
// repeated calls deterministic within a run (spec §8, property 5) —
// callers must go through Simulate rather than re-deriving the value by
// hand.
func (s *Store) Simulate(index int, state pomdp.State, depthMax int, rLower float64, sim pomdp.Simulator, rng *rand.Rand) float64 {
	if cached, ok := s.nodes[index].ValueCache[state]; ok {
		return cached
	}

	gamma := sim.Discount()
	total := 0.0
	currentIndex := index
	currentState := state
	unsetAt := -1

	for step := 0; step < depthMax; step++ {
		if currentIndex == unset {
			unsetAt = step
			break
		}
		action := s.nodes[currentIndex].BestAction
		res := sim.Step(rng, currentState, action)
		total += math.Pow(gamma, float64(step)) * res.Reward
		if res.Done {
			break
		}
		next, ok := s.Edge(currentIndex, res.Observation)
		if !ok {
			next = unset
		}
		currentIndex = next
		currentState = res.NextState
	}

	if unsetAt >= 0 {
		total += math.Pow(gamma, float64(depthMax)) * rLower
	}

	s.UpdateValueCache(index, state, total)
	return total
}
