package tree

import (
	"github.com/aschutz-mcvi/mcviplanner/belief"
	"github.com/aschutz-mcvi/mcviplanner/pomdp"
)

// ORNode is a belief-tree OR-node (spec §3): a belief, its upper/lower
// bounds, the actions that drive exploration vs. policy extraction, and the
// FSC node currently attached to it.
type ORNode struct {
	belief belief.Distribution

	upperBound float64
	lowerBound float64

	bestActionUpper pomdp.Action
	bestActionLower pomdp.Action

	fscNodeIndex int // NoFSCNode when unset

	actionChildren map[pomdp.Action]ActionID
}

func (n *ORNode) Belief() belief.Distribution    { return n.belief }
func (n *ORNode) Upper() float64                 { return n.upperBound }
func (n *ORNode) Lower() float64                 { return n.lowerBound }
func (n *ORNode) BestActionUpper() pomdp.Action  { return n.bestActionUpper }
func (n *ORNode) BestActionLower() pomdp.Action  { return n.bestActionLower }
func (n *ORNode) FSCNodeIndex() int              { return n.fscNodeIndex }
func (n *ORNode) SetFSCNodeIndex(index int)      { n.fscNodeIndex = index }
func (n *ORNode) HasFSCNode() bool               { return n.fscNodeIndex != NoFSCNode }

// ActionChild returns the ActionID expanded for action a, if any.
func (n *ORNode) ActionChild(a pomdp.Action) (ActionID, bool) {
	id, ok := n.actionChildren[a]
	return id, ok
}

// ChooseObservation implements spec §4.5: under OR-node id's current
// best_action_lower, pick the observation maximising
// w(o) * ((child.upper - child.lower) - target); target is the root's
// current bound gap. It returns (NodeID, false) — not an error — when the
// best action has no AND-node yet or every candidate gap is non-positive,
// which is the Design Notes' replacement for the C++ implementation's
// thrown exception: a normal end of one traversal, not a fatal error.
func (t *Tree) ChooseObservation(id NodeID, target float64) (NodeID, bool) {
	node := t.OR(id)
	actionID, ok := node.ActionChild(node.bestActionLower)
	if !ok {
		return 0, false
	}
	action := t.Action(actionID)

	bestGap := negativeInfinity
	var bestChild NodeID
	found := false

	observations := sortedObservations(action.ObservationWeights)
	for _, o := range observations {
		child := t.OR(action.ObservationChildren[o])
		diff := (child.upperBound - child.lowerBound) - target
		gap := diff * action.ObservationWeights[o]
		if gap > bestGap {
			bestGap = gap
			bestChild = action.ObservationChildren[o]
			found = true
		}
	}

	if !found || bestGap <= 0 {
		return 0, false
	}
	return bestChild, true
}
