package backup

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aschutz-mcvi/mcviplanner/belief"
	"github.com/aschutz-mcvi/mcviplanner/bound"
	"github.com/aschutz-mcvi/mcviplanner/fsc"
	"github.com/aschutz-mcvi/mcviplanner/pomdp"
	"github.com/aschutz-mcvi/mcviplanner/tree"
)

// twoArmBandit is a single-state, single-observation, non-terminating
// simulator: every belief stays a point mass on state 0, so each action's
// AND-node has exactly one observation bucket.
type twoArmBandit struct{}

func (twoArmBandit) Step(rng *rand.Rand, state, action int) pomdp.StepResult {
	reward := 1.0
	if action == 1 {
		reward = 2.0
	}
	return pomdp.StepResult{NextState: state, Observation: 0, Reward: reward, Done: false}
}
func (twoArmBandit) SampleStart(rng *rand.Rand) int { return 0 }
func (twoArmBandit) IsTerminal(state int) bool      { return false }
func (twoArmBandit) NumActions() int                { return 2 }
func (twoArmBandit) NumObservations() int           { return 1 }
func (twoArmBandit) Discount() float64              { return 0.95 }

func newTestTree(rng *rand.Rand) (*tree.Tree, tree.NodeID) {
	cfg := tree.Config{
		Simulator:        twoArmBandit{},
		RLower:           bound.DefaultRLower,
		UpperBound:       bound.DefaultUpperBound,
		EvalDepth:        5,
		EvalEpsilon:      0.1,
		MaxBeliefSamples: 10,
	}
	return tree.New(cfg, belief.Distribution{0: 1.0}, rng)
}

// TestBackUpBailsWhenChildrenAreUnvisited exercises spec §4.7 step 4's
// common case: a freshly expanded node's children have never been backed up
// themselves, so every observation is skipped and the candidate edges map
// ends up empty — the node's FSC index is cleared rather than set.
func TestBackUpBailsWhenChildrenAreUnvisited(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tr, root := newTestTree(rng)
	store := fsc.NewStore(0)

	BackUp(tr, root, store, 2, rng)

	node := tr.OR(root)
	require.False(t, node.HasFSCNode(), "no child has an FSC index yet, so BackUp must bail")
}

// TestBackUpAttachesNodeWhenChildAlreadyHasIndex exercises the case where a
// prior backup already gave the traversed child an FSC index (as the
// planner's reverse-order backup pass produces for a node's descendants):
// BackUp should then successfully find_or_insert a candidate built from that
// pointer.
func TestBackUpAttachesNodeWhenChildAlreadyHasIndex(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	tr, root := newTestTree(rng)
	store := fsc.NewStore(0)

	actionID := tr.ExpandAction(root, 1, rng)
	action := tr.Action(actionID)
	childID, ok := action.Child(0)
	require.True(t, ok)

	seeded := store.AddNode(fsc.NewNode(0))
	tr.OR(childID).SetFSCNodeIndex(seeded)

	BackUp(tr, root, store, 2, rng)

	node := tr.OR(root)
	require.True(t, node.HasFSCNode())
	require.Equal(t, pomdp.Action(1), store.Node(node.FSCNodeIndex()).BestAction)
}

// TestBackUpDedupsIdenticalEdgesAcrossNodes checks spec §8's dedup
// invariant: two distinct belief nodes that end up with the same
// (best_action, edges) pair must resolve to the same FSC index.
func TestBackUpDedupsIdenticalEdgesAcrossNodes(t *testing.T) {
	store := fsc.NewStore(0)
	seeded := store.AddNode(fsc.NewNode(0))

	rng1 := rand.New(rand.NewSource(3))
	tr1, root1 := newTestTree(rng1)
	actionID1 := tr1.ExpandAction(root1, 1, rng1)
	child1, _ := tr1.Action(actionID1).Child(0)
	tr1.OR(child1).SetFSCNodeIndex(seeded)
	BackUp(tr1, root1, store, 2, rng1)

	rng2 := rand.New(rand.NewSource(4))
	tr2, root2 := newTestTree(rng2)
	actionID2 := tr2.ExpandAction(root2, 1, rng2)
	child2, _ := tr2.Action(actionID2).Child(0)
	tr2.OR(child2).SetFSCNodeIndex(seeded)
	BackUp(tr2, root2, store, 2, rng2)

	i1 := tr1.OR(root1).FSCNodeIndex()
	i2 := tr2.OR(root2).FSCNodeIndex()
	require.Equal(t, i1, i2, "two belief nodes with identical (best_action, edges) must dedup to one FSC node")
}
