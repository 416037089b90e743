package bound

import (
	"math"
	"math/rand"

	"github.com/aschutz-mcvi/mcviplanner/belief"
	"github.com/aschutz-mcvi/mcviplanner/pomdp"
)

// DefaultRLower implements the RLowerFunc contract (spec §4.3): it picks the
// action that maximises the worst-case (minimum over the belief's support)
// value of repeating that single action, rolled out up to evalDepth steps
// and stopping early on a terminal transition. A rollout that never
// terminates within evalDepth has its tail bounded by assuming the worst
// per-step reward it saw continues forever, discounted from where the
// rollout stopped.
func DefaultRLower(sim pomdp.Simulator, b belief.Distribution, evalDepth int, evalEpsilon float64, rng *rand.Rand) float64 {
	samplesPerState := samplesFor(evalEpsilon)
	gamma := sim.Discount()

	bestWorst := math.Inf(-1)
	for a := 0; a < sim.NumActions(); a++ {
		worst := math.Inf(1)
		for _, s := range b.States() {
			avg := 0.0
			for i := 0; i < samplesPerState; i++ {
				avg += rolloutUnderAction(sim, s, a, evalDepth, gamma, rng)
			}
			avg /= float64(samplesPerState)
			if avg < worst {
				worst = avg
			}
		}
		if worst > bestWorst {
			bestWorst = worst
		}
	}
	return bestWorst
}

// rolloutUnderAction repeats action a from s until maxDepth steps or a
// terminal transition, accumulating gamma^t*reward. If it runs out of depth
// without terminating, the tail is bounded by the worst per-step reward
// observed, continued forever at the rollout's remaining discount.
func rolloutUnderAction(sim pomdp.Simulator, s pomdp.State, a pomdp.Action, maxDepth int, gamma float64, rng *rand.Rand) float64 {
	state := s
	total := 0.0
	discount := 1.0
	worstStepReward := math.Inf(1)

	for step := 0; step < maxDepth; step++ {
		res := sim.Step(rng, state, a)
		total += discount * res.Reward
		if res.Reward < worstStepReward {
			worstStepReward = res.Reward
		}
		if res.Done {
			return total
		}
		discount *= gamma
		state = res.NextState
	}

	if gamma < 1.0 {
		total += discount * worstStepReward / (1 - gamma)
	}
	return total
}

// DefaultUpperBound implements the UpperBoundFunc contract (spec §4.3) as an
// MDP relaxation: at the root it evaluates each action's expected instant
// reward over the belief's support, then continues with a single,
// per-step-optimistic rollout (max over actions of one sampled transition)
// down to evalDepth, with an optimistic tail for a rollout that has not
// terminated by then. The continuation sees the true state, so it ignores
// partial observability. It follows one greedy path rather than searching
// every action sequence, so reward that only follows a lower-reward step is
// not credited, and the value is not guaranteed to dominate the POMDP value.
func DefaultUpperBound(sim pomdp.Simulator, b belief.Distribution, evalDepth int, rng *rand.Rand) (pomdp.Action, float64) {
	gamma := sim.Discount()
	bestAction := 0
	bestValue := math.Inf(-1)

	for a := 0; a < sim.NumActions(); a++ {
		q := 0.0
		for _, s := range b.States() {
			p := b[s]
			res := sim.Step(rng, s, a)
			cont := 0.0
			if !res.Done && evalDepth > 1 {
				cont = gamma * optimisticContinuation(sim, res.NextState, 1, evalDepth, rng)
			}
			q += p * (res.Reward + cont)
		}
		if q > bestValue {
			bestValue = q
			bestAction = a
		}
	}
	return bestAction, bestValue
}

// optimisticContinuation greedily follows, at each step, whichever action's
// single sampled transition has the largest reward, as an MDP-relaxation
// estimate of the continuation value from state at the given depth. If the
// rollout reaches its last step without terminating, that step's reward is
// taken to continue forever (reward/(1-gamma)).
func optimisticContinuation(sim pomdp.Simulator, state pomdp.State, depth, maxDepth int, rng *rand.Rand) float64 {
	if depth >= maxDepth || sim.IsTerminal(state) {
		return 0
	}
	gamma := sim.Discount()
	best := pomdp.StepResult{Reward: math.Inf(-1)}
	for a := 0; a < sim.NumActions(); a++ {
		if res := sim.Step(rng, state, a); res.Reward > best.Reward {
			best = res
		}
	}
	if best.Done {
		return best.Reward
	}
	if depth+1 >= maxDepth && gamma < 1.0 {
		return best.Reward / (1 - gamma)
	}
	return best.Reward + gamma*optimisticContinuation(sim, best.NextState, depth+1, maxDepth, rng)
}

// samplesFor converts a tolerance into a sample count, clamped to a sane
// range so a tiny evalEpsilon can't spin the default estimator forever.
func samplesFor(evalEpsilon float64) int {
	if evalEpsilon <= 0 {
		return 1
	}
	n := int(1.0 / evalEpsilon)
	if n < 1 {
		n = 1
	}
	if n > 50 {
		n = 50
	}
	return n
}
