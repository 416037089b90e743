package fsc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddNodeAndLookup(t *testing.T) {
	s := NewStore(0)
	i := s.AddNode(NewNode(2))
	require.Equal(t, 0, i)
	require.Equal(t, 1, s.NumNodes())
	require.Equal(t, 2, s.Node(i).BestAction)

	_, ok := s.Edge(i, 0)
	require.False(t, ok, "freshly added node has no edges")
}

func TestSetEdgesAndEdge(t *testing.T) {
	s := NewStore(0)
	i := s.AddNode(NewNode(0))
	s.SetEdges(i, EdgeMap{1: 5})

	target, ok := s.Edge(i, 1)
	require.True(t, ok)
	require.Equal(t, 5, target)

	_, ok = s.Edge(i, 2)
	require.False(t, ok)
}

func TestFindOrInsertDeduplicates(t *testing.T) {
	s := NewStore(0)
	a := s.FindOrInsert(NewNode(0), EdgeMap{0: -1})
	b := s.FindOrInsert(NewNode(0), EdgeMap{0: -1})
	require.Equal(t, a, b, "identical (best_action, edges) must not insert twice")
	require.Equal(t, 1, s.NumNodes())
}

func TestFindOrInsertDistinguishesByAction(t *testing.T) {
	s := NewStore(0)
	a := s.FindOrInsert(NewNode(0), EdgeMap{0: -1})
	b := s.FindOrInsert(NewNode(1), EdgeMap{0: -1})
	require.NotEqual(t, a, b)
	require.Equal(t, 2, s.NumNodes())
}

func TestFindOrInsertDistinguishesByEdges(t *testing.T) {
	s := NewStore(0)
	a := s.FindOrInsert(NewNode(0), EdgeMap{0: 1})
	b := s.FindOrInsert(NewNode(0), EdgeMap{0: 2})
	require.NotEqual(t, a, b)
}

func TestFindOrInsertIdempotentSecondCall(t *testing.T) {
	s := NewStore(0)
	node := NewNode(3)
	edges := EdgeMap{0: -1, 1: -1}
	first := s.FindOrInsert(node, edges)
	before := s.NumNodes()
	second := s.FindOrInsert(node, edges)
	require.Equal(t, first, second)
	require.Equal(t, before, s.NumNodes())
}

func TestDedupInvariantAcrossAllPairs(t *testing.T) {
	s := NewStore(0)
	s.FindOrInsert(NewNode(0), EdgeMap{0: -1})
	s.FindOrInsert(NewNode(1), EdgeMap{0: -1})
	s.FindOrInsert(NewNode(0), EdgeMap{0: 1})

	for i := 0; i < s.NumNodes(); i++ {
		for j := i + 1; j < s.NumNodes(); j++ {
			same := s.Node(i).BestAction == s.Node(j).BestAction && s.Edges(i).Equal(s.Edges(j))
			require.False(t, same, "nodes %d and %d violate the dedup invariant", i, j)
		}
	}
}

func TestSetStartAndStartNode(t *testing.T) {
	s := NewStore(0)
	_, ok := s.StartNode()
	require.False(t, ok)

	i := s.AddNode(NewNode(0))
	s.SetStart(i)
	got, ok := s.StartNode()
	require.True(t, ok)
	require.Equal(t, i, got)
}

func TestWriteGraphvizEmitsAllNodesAndEdges(t *testing.T) {
	s := NewStore(0)
	i := s.AddNode(NewNode(0))
	j := s.AddNode(NewNode(1))
	s.SetEdges(i, EdgeMap{0: j})
	s.SetStart(i)

	var buf bytes.Buffer
	require.NoError(t, s.WriteGraphviz(&buf, nil, nil))

	out := buf.String()
	require.Contains(t, out, "digraph FSC")
	require.Contains(t, out, "n0 [")
	require.Contains(t, out, "n1 [")
	require.Contains(t, out, "n0 -> n1")
	require.Contains(t, out, "penwidth=3")
}
