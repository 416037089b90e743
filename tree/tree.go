// Package tree implements the belief-expansion AND/OR search tree (spec §3,
// §4.5, §4.6): OR-nodes hold a belief and per-action bounds; AND-nodes hold
// one action's observation-weighted expansion into child OR-nodes.
//
// Both node kinds live in arenas owned by a Tree and are addressed by dense
// integer IDs, per the Design Notes' recommendation for languages (like Go)
// without native back-reference cycles — this also means a Tree never needs
// a garbage collector pass of its own: dropping the Tree drops every node.
package tree

import (
	"math"
	"math/rand"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/aschutz-mcvi/mcviplanner/belief"
	"github.com/aschutz-mcvi/mcviplanner/bound"
	"github.com/aschutz-mcvi/mcviplanner/pomdp"
)

// NodeID addresses an OR-node in a Tree's arena.
type NodeID int

// ActionID addresses an AND-node in a Tree's arena.
type ActionID int

// NoFSCNode is the sentinel (-1) meaning "no FSC node" (e.g. an OR-node's
// fsc_node_index before it has ever been backed up).
const NoFSCNode = -1

// Tree owns every OR-node and AND-node created during one planner run.
type Tree struct {
	sim              pomdp.Simulator
	rLower           bound.RLowerFunc
	upperBound       bound.UpperBoundFunc
	evalDepth        int
	evalEpsilon      float64
	maxBeliefSamples int

	orNodes     []ORNode
	actionNodes []ActionNode
}

// Config bundles the externally-supplied collaborators a Tree needs to
// create and bound new OR-nodes (spec §4.3's bound estimators, §4.6's
// max_belief_samples option).
type Config struct {
	Simulator        pomdp.Simulator
	RLower           bound.RLowerFunc
	UpperBound       bound.UpperBoundFunc
	EvalDepth        int
	EvalEpsilon      float64
	MaxBeliefSamples int
}

// New returns a Tree with its root OR-node created from b0.
func New(cfg Config, b0 belief.Distribution, rng *rand.Rand) (*Tree, NodeID) {
	t := &Tree{
		sim:              cfg.Simulator,
		rLower:           cfg.RLower,
		upperBound:       cfg.UpperBound,
		evalDepth:        cfg.EvalDepth,
		evalEpsilon:      cfg.EvalEpsilon,
		maxBeliefSamples: cfg.MaxBeliefSamples,
	}
	root := t.newORNode(b0, rng)
	return t, root
}

// newORNode constructs an OR-node from belief b, initialising its bounds via
// the Tree's injected estimators (spec §4.3: "invoked only when an OR-node
// is first created").
func (t *Tree) newORNode(b belief.Distribution, rng *rand.Rand) NodeID {
	bestAction, upper := t.upperBound(t.sim, b, t.evalDepth, rng)
	lower := t.rLower(t.sim, b, t.evalDepth, t.evalEpsilon, rng)
	if lower > upper {
		// A noisy lower estimate must never outrank a noisy upper one;
		// clamp rather than violate the bound-sandwich invariant (spec §8,
		// property 2).
		upper = lower
	}
	node := ORNode{
		belief:          b,
		upperBound:      upper,
		lowerBound:      lower,
		bestActionUpper: bestAction,
		bestActionLower: bestAction,
		fscNodeIndex:    NoFSCNode,
		actionChildren:  make(map[pomdp.Action]ActionID),
	}
	t.orNodes = append(t.orNodes, node)
	return NodeID(len(t.orNodes) - 1)
}

// OR returns a pointer to the OR-node at id in the Tree's arena; changes
// made through it (e.g. SetFSCNodeIndex) update the node. Creating new
// OR-nodes can move the arena, after which an earlier pointer no longer
// refers to the stored node.
func (t *Tree) OR(id NodeID) *ORNode { return &t.orNodes[id] }

// Action returns a pointer to the AND-node at id in the Tree's arena.
func (t *Tree) Action(id ActionID) *ActionNode { return &t.actionNodes[id] }

// ExpandAction ensures the AND-node for action a at OR-node id exists,
// building it from the simulator if it does not (spec §4.5, §4.6). It
// returns the AND-node's ActionID.
func (t *Tree) ExpandAction(id NodeID, a pomdp.Action, rng *rand.Rand) ActionID {
	node := &t.orNodes[id]
	if existing, ok := node.actionChildren[a]; ok {
		return existing
	}

	action := t.buildActionNode(node.belief, a, rng)
	t.actionNodes = append(t.actionNodes, action)
	actionID := ActionID(len(t.actionNodes) - 1)
	node.actionChildren[a] = actionID
	return actionID
}

// buildActionNode realises spec §4.6 steps 1-4: sample up to
// max_belief_samples states from b without replacement, step each through
// the simulator under action a, bucket the results by observation, derive
// observation weights and renormalised child beliefs, then create a child
// OR-node per observation.
func (t *Tree) buildActionNode(b belief.Distribution, a pomdp.Action, rng *rand.Rand) ActionNode {
	type obsBucket struct {
		belief belief.Distribution
	}
	buckets := make(map[pomdp.Observation]*obsBucket)

	remaining := b.Clone()
	probSum := 0.0
	rewardSum := 0.0

	samples := t.maxBeliefSamples
	if samples <= 0 || samples > len(remaining) {
		samples = len(remaining)
	}

	for i := 0; i < samples && len(remaining) > 0; i++ {
		s := belief.SampleOne(remaining, rng)
		p := remaining[s]
		delete(remaining, s)

		res := t.sim.Step(rng, s, a)
		probSum += p
		rewardSum += p * res.Reward

		bucket, ok := buckets[res.Observation]
		if !ok {
			bucket = &obsBucket{belief: make(belief.Distribution)}
			buckets[res.Observation] = bucket
		}
		bucket.belief[res.NextState] += p
	}

	observations := maps.Keys(buckets)
	slices.Sort(observations)

	action := ActionNode{
		Action:              a,
		ObservationWeights:  make(map[pomdp.Observation]float64, len(buckets)),
		ObservationChildren: make(map[pomdp.Observation]NodeID, len(buckets)),
	}
	if probSum > 0 {
		action.ExpectedReward = rewardSum / probSum
	}

	for _, o := range observations {
		bucket := buckets[o]
		w := bucket.belief.Sum() / probSum
		action.ObservationWeights[o] = w
		_ = belief.Normalize(bucket.belief)
		childID := t.newORNode(bucket.belief, rng)
		action.ObservationChildren[o] = childID
	}

	t.recomputeActionBounds(&action)
	return action
}

func (t *Tree) recomputeActionBounds(action *ActionNode) {
	upper, lower := 0.0, 0.0
	observations := maps.Keys(action.ObservationWeights)
	slices.Sort(observations)
	for _, o := range observations {
		w := action.ObservationWeights[o]
		child := t.OR(action.ObservationChildren[o])
		upper += w * child.upperBound
		lower += w * child.lowerBound
	}
	action.ExpectedUpper = upper
	action.ExpectedLower = lower
}

// BackUpActions recomputes, for OR-node id, every already-expanded action's
// bounds, then picks BestActionUpper/BestActionLower (spec §4.5, §4.6: "ties
// broken by smallest action index").
func (t *Tree) BackUpActions(id NodeID) {
	node := &t.orNodes[id]
	gamma := t.sim.Discount()

	actions := maps.Keys(node.actionChildren)
	slices.Sort(actions)

	bestUpperAction, bestLowerAction := -1, -1
	bestUpperQ, bestLowerQ := math.Inf(-1), math.Inf(-1)

	for _, a := range actions {
		actionID := node.actionChildren[a]
		t.recomputeActionBounds(t.actionAt(actionID))
		action := t.Action(actionID)

		qUpper := action.ExpectedReward + gamma*action.ExpectedUpper
		qLower := action.ExpectedReward + gamma*action.ExpectedLower

		if bestUpperAction == -1 || qUpper > bestUpperQ {
			bestUpperQ = qUpper
			bestUpperAction = a
		}
		if bestLowerAction == -1 || qLower > bestLowerQ {
			bestLowerQ = qLower
			bestLowerAction = a
		}
	}

	if bestUpperAction == -1 {
		return // no action expanded yet: nothing to back up
	}
	node.bestActionUpper = bestUpperAction
	node.bestActionLower = bestLowerAction
	node.upperBound = bestUpperQ
	node.lowerBound = bestLowerQ
	if node.lowerBound > node.upperBound {
		node.upperBound = node.lowerBound
	}
}

func (t *Tree) actionAt(id ActionID) *ActionNode { return &t.actionNodes[id] }
