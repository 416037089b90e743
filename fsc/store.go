// Package fsc implements the append-only, deduplicated store of policy
// finite-state-controller nodes (spec §3, §4.4), grounded on
// AlphaVectorFSC.{h,cpp} in the original MCVI implementation.
package fsc

const unset = -1

// Store is the ordered sequence of FSC nodes plus a parallel ordered
// sequence of edge-maps, addressed by dense integer indices (spec §3).
// Indices are stable for the lifetime of a Store: nodes are appended, never
// removed or reordered.
type Store struct {
	nodes     []Node
	edges     []EdgeMap
	startNode int
}

// NewStore returns an empty FSC store. sizeHint reserves capacity up front
// (spec's max_node_size option) but does not bound the store's growth.
func NewStore(sizeHint int) *Store {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Store{
		nodes:     make([]Node, 0, sizeHint),
		edges:     make([]EdgeMap, 0, sizeHint),
		startNode: unset,
	}
}

// NumNodes returns the number of nodes currently in the store.
func (s *Store) NumNodes() int { return len(s.nodes) }

// AddNode appends node, with an empty edge-map, and returns its index.
func (s *Store) AddNode(node Node) int {
	s.nodes = append(s.nodes, node)
	s.edges = append(s.edges, EdgeMap{})
	return len(s.nodes) - 1
}

// SetEdges replaces the edge-map at index.
func (s *Store) SetEdges(index int, edges EdgeMap) {
	s.edges[index] = edges
}

// Edge looks up the FSC node that observation leads to from index. ok is
// false when no edge exists for that observation (spec §3: "unset").
func (s *Store) Edge(index int, observation int) (target int, ok bool) {
	target, ok = s.edges[index][observation]
	return target, ok
}

// Edges returns the edge-map at index. Callers must not mutate the result;
// use SetEdges to replace it.
func (s *Store) Edges(index int) EdgeMap {
	return s.edges[index]
}

// Node returns a copy of the node at index. Use UpdateValueCache to persist
// rollout values computed via Simulate.
func (s *Store) Node(index int) Node {
	return s.nodes[index]
}

// UpdateValueCache records that node index has rollout value v from state;
// it is the only mutation a Node undergoes after insertion (spec §3's
// "lifecycle" note).
func (s *Store) UpdateValueCache(index int, state int, v float64) {
	s.nodes[index].ValueCache[state] = v
}

// SetStart marks index as the FSC's starting node.
func (s *Store) SetStart(index int) { s.startNode = index }

// StartNode returns the FSC's starting node index, or false if none has
// been set yet.
func (s *Store) StartNode() (int, bool) {
	if s.startNode == unset {
		return unset, false
	}
	return s.startNode, true
}

// FindOrInsert enforces the dedup invariant (spec §3, §4.7, §4.4): it scans
// existing nodes for one with the same best action and edge-map as
// (node, edges), returning its index; otherwise it appends a new node and
// returns the freshly-assigned index. The best-action check short-circuits
// the scan for the common case where no node shares the candidate's action.
func (s *Store) FindOrInsert(node Node, edges EdgeMap) int {
	for i, existing := range s.nodes {
		if existing.BestAction != node.BestAction {
			continue
		}
		if s.edges[i].Equal(edges) {
			return i
		}
	}
	index := s.AddNode(node)
	s.SetEdges(index, edges)
	return index
}
