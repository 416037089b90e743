package planner

import (
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/aschutz-mcvi/mcviplanner/belief"
	"github.com/aschutz-mcvi/mcviplanner/fsc"
	"github.com/aschutz-mcvi/mcviplanner/pomdp"
)

// greedySamplesPerAction bounds the one-step lookahead used by the
// simulate_with_fsc fallback when the FSC edge is unset.
const greedySamplesPerAction = 8

// SimulateWithFSC walks store from startNode on one sampled trajectory
// through sim, executing each node's best_action and following its edges.
// When an edge is unset for the observation received, it falls back to a
// greedy one-step-reward action (estimated by sampling, maximising
// Σ_s b(s)·E[r|s,a] — here the belief is the point mass on the current
// state) rather than following an FSC edge. Spec's GreedyBestAction bug
// (comparing reward*prob against a `best_r` that only ever holds reward) is
// not replicated. Returns the cumulative discounted reward over steps.
func SimulateWithFSC(store *fsc.Store, startNode int, sim pomdp.Simulator, steps int, rng *rand.Rand) float64 {
	gamma := sim.Discount()
	state := sim.SampleStart(rng)
	node, onFSC := startNode, true

	total := 0.0
	discount := 1.0
	for step := 0; step < steps; step++ {
		if sim.IsTerminal(state) {
			break
		}

		var action pomdp.Action
		if onFSC {
			action = store.Node(node).BestAction
		} else {
			action = greedyAction(sim, state, rng)
		}

		res := sim.Step(rng, state, action)
		total += discount * res.Reward
		discount *= gamma

		if res.Done {
			break
		}

		if onFSC {
			next, ok := store.Edge(node, res.Observation)
			if ok {
				node = next
			} else {
				onFSC = false
			}
		}
		state = res.NextState
	}
	return total
}

// greedyAction estimates, for the single state s, the action maximising
// expected immediate reward by sampling greedySamplesPerAction transitions
// per action and averaging.
func greedyAction(sim pomdp.Simulator, s pomdp.State, rng *rand.Rand) pomdp.Action {
	best := pomdp.Action(0)
	bestReward := 0.0
	haveBest := false

	for a := 0; a < sim.NumActions(); a++ {
		sum := 0.0
		for i := 0; i < greedySamplesPerAction; i++ {
			res := sim.Step(rng, s, pomdp.Action(a))
			sum += res.Reward
		}
		mean := sum / float64(greedySamplesPerAction)
		if !haveBest || mean > bestReward {
			haveBest = true
			bestReward = mean
			best = pomdp.Action(a)
		}
	}
	return best
}

// EvaluationStats summarises num_sims independent simulations of an FSC
// policy (spec §6's evaluate_with_fsc).
type EvaluationStats struct {
	Mean     float64
	Min      float64
	Max      float64
	Variance float64
}

// EvaluateWithFSC runs numSims independent simulations of store's policy,
// starting from startNode, each for at most maxSteps steps, and returns
// the mean, minimum, maximum and unbiased sample variance of the returns
// (mean and variance via gonum's two-pass stat.MeanVariance).
func EvaluateWithFSC(store *fsc.Store, startNode int, sim pomdp.Simulator, maxSteps, numSims int, rng *rand.Rand) EvaluationStats {
	returns := make([]float64, numSims)
	for i := 0; i < numSims; i++ {
		returns[i] = SimulateWithFSC(store, startNode, sim, maxSteps, rng)
	}

	mean, variance := stat.MeanVariance(returns, nil)
	return EvaluationStats{
		Mean:     mean,
		Min:      floats.Min(returns),
		Max:      floats.Max(returns),
		Variance: variance,
	}
}

// SampleInitialBelief draws a fresh belief by calling sim.SampleStart n
// times and normalising the frequency table (spec §6's init_belief_samples).
func SampleInitialBelief(sim pomdp.Simulator, n int, rng *rand.Rand) belief.Distribution {
	return belief.SampleInitial(sim, n, rng)
}
