package fsc

import "github.com/aschutz-mcvi/mcviplanner/pomdp"

// Node is one FSC node: the action to execute while occupying it, plus a
// lazily-populated, per-state memoised rollout value (spec §3's
// value_cache). ValueCache is a pure function of (node identity, state) —
// once a value is computed it is never recomputed, which is what makes
// Store.Simulate deterministic across repeated calls (spec §8, property 5).
type Node struct {
	BestAction pomdp.Action
	ValueCache map[pomdp.State]float64
}

// NewNode returns a Node committed to bestAction with an empty value cache.
func NewNode(bestAction pomdp.Action) Node {
	return Node{BestAction: bestAction, ValueCache: make(map[pomdp.State]float64)}
}

// EdgeMap maps an observation to the index of the FSC node it leads to.
// An observation with no entry means the edge is unset (spec §3).
type EdgeMap map[pomdp.Observation]int

// Equal reports whether e and other describe the same edges. Used by
// Store.FindOrInsert to enforce the node-dedup invariant (spec §3, §8
// property 4).
func (e EdgeMap) Equal(other EdgeMap) bool {
	if len(e) != len(other) {
		return false
	}
	for o, target := range e {
		otherTarget, ok := other[o]
		if !ok || otherTarget != target {
			return false
		}
	}
	return true
}

// Clone returns a copy of e.
func (e EdgeMap) Clone() EdgeMap {
	out := make(EdgeMap, len(e))
	for o, n := range e {
		out[o] = n
	}
	return out
}
