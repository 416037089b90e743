package tree

import (
	"math"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/aschutz-mcvi/mcviplanner/pomdp"
)

// negativeInfinity seeds a running max search over gaps that may legitimately
// be negative (spec §4.5's "fails when the best gap is non-positive").
var negativeInfinity = math.Inf(-1)

// ActionNode is a belief-tree AND-node (spec §3, §4.6): one action's
// observation-weighted expansion of its parent OR-node's belief into child
// OR-nodes.
type ActionNode struct {
	Action pomdp.Action

	ObservationWeights  map[pomdp.Observation]float64
	ObservationChildren map[pomdp.Observation]NodeID

	ExpectedReward float64
	ExpectedUpper  float64
	ExpectedLower  float64
}

// Child returns the OR-node reached under observation o, if any.
func (a *ActionNode) Child(o pomdp.Observation) (NodeID, bool) {
	id, ok := a.ObservationChildren[o]
	return id, ok
}

// sortedObservations returns w's keys in ascending order, for deterministic
// iteration over observation-indexed maps.
func sortedObservations(w map[pomdp.Observation]float64) []pomdp.Observation {
	observations := maps.Keys(w)
	slices.Sort(observations)
	return observations
}
