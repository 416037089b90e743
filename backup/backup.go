// Package backup implements the Monte-Carlo backup (spec §4.7, C7): given a
// belief-tree OR-node, it expands every action, recomputes bounds, and
// either links the node to an existing FSC node or inserts a new one.
//
// Grounded on the free function BackUp in MCVI.cpp: expand-all-actions,
// pick best_action_lower, gather the child FSC pointers it already has, and
// find-or-insert a candidate node built from those pointers.
package backup

import (
	"math/rand"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/aschutz-mcvi/mcviplanner/fsc"
	"github.com/aschutz-mcvi/mcviplanner/pomdp"
	"github.com/aschutz-mcvi/mcviplanner/tree"
)

// BackUp runs spec §4.7's algorithm at OR-node id: it expands every action
// in [0, numActions), backs up the node's action bounds, then attaches the
// node to an FSC store entry built from its best_action_lower's children.
//
// If best_action_lower's children have no FSC index yet (none has been
// visited), the belief is treated as effectively terminal: id's FSC index
// is set to unset (fsc_node_index cleared) and BackUp returns without
// inserting a node. This follows the spec's explicitly chosen disambiguation
// of the two observed BackUp variants (bail out, clearing rather than
// updating the index), documented as an Open Question resolution.
func BackUp(t *tree.Tree, id tree.NodeID, store *fsc.Store, numActions int, rng *rand.Rand) {
	for a := 0; a < numActions; a++ {
		t.ExpandAction(id, pomdp.Action(a), rng)
	}
	t.BackUpActions(id)

	node := t.OR(id)
	bestAction := node.BestActionLower()

	actionID, ok := node.ActionChild(bestAction)
	if !ok {
		node.SetFSCNodeIndex(tree.NoFSCNode)
		return
	}
	action := t.Action(actionID)

	edges := make(fsc.EdgeMap)
	observations := maps.Keys(action.ObservationWeights)
	slices.Sort(observations)
	for _, o := range observations {
		childID, ok := action.Child(o)
		if !ok {
			continue
		}
		child := t.OR(childID)
		if !child.HasFSCNode() {
			continue
		}
		edges[o] = child.FSCNodeIndex()
	}

	if len(edges) == 0 {
		node.SetFSCNodeIndex(tree.NoFSCNode)
		return
	}

	candidate := fsc.NewNode(bestAction)
	index := store.FindOrInsert(candidate, edges)
	node.SetFSCNodeIndex(index)
}
