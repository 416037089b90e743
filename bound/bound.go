// Package bound supplies the admissible upper and safe lower bound
// estimators an OR-node is initialised with (spec §4.3). The planner treats
// these as external collaborators with a fixed signature; this package's
// Default* functions are a from-scratch reference implementation, not a
// requirement — callers are free to inject a sharper heuristic (shortest-
// path-to-terminal, Q-learning, ...) through the same function types.
package bound

import (
	"math/rand"

	"github.com/aschutz-mcvi/mcviplanner/belief"
	"github.com/aschutz-mcvi/mcviplanner/pomdp"
)

// RLowerFunc computes a safe lower bound on the value of belief. The tree
// calls it for every new OR-node to initialise the node's lower bound.
// Planner.Plan also computes one value from the initial belief and passes
// it to its forward traversal, which does not use it; the planner runs no
// FSC rollout, so the value is not used as a terminal correction anywhere.
type RLowerFunc func(sim pomdp.Simulator, b belief.Distribution, evalDepth int, evalEpsilon float64, rng *rand.Rand) float64

// UpperBoundFunc computes an admissible upper bound on the value of belief,
// along with the action that attains it.
type UpperBoundFunc func(sim pomdp.Simulator, b belief.Distribution, evalDepth int, rng *rand.Rand) (action pomdp.Action, value float64)
