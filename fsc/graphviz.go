package fsc

import (
	"fmt"
	"io"
	"strconv"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// WriteGraphviz writes s as a Graphviz digraph: one node per FSC index
// labelled with its index, best action, and a representative rollout value
// (the mean of its value cache, if populated), plus directed edges labelled
// by observation. The start node is drawn with a heavier outline. Grounded
// on AlphaVectorFSC::GenerateGraphviz.
func (s *Store) WriteGraphviz(w io.Writer, actionNames, observationNames []string) error {
	start, _ := s.StartNode()

	if _, err := fmt.Fprintln(w, "digraph FSC {"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "  node [shape=circle];"); err != nil {
		return err
	}

	for i, node := range s.nodes {
		action := strconv.Itoa(node.BestAction)
		if node.BestAction >= 0 && node.BestAction < len(actionNames) {
			action = actionNames[node.BestAction]
		}
		v := meanValue(node.ValueCache)
		attrs := fmt.Sprintf(`label=<<B>%d</B><BR/>a: %s<BR/>V: %.3f>`, i, action, v)
		if i == start {
			attrs += ", penwidth=3"
		}
		if _, err := fmt.Fprintf(w, "  n%d [%s];\n", i, attrs); err != nil {
			return err
		}

		observations := maps.Keys(s.edges[i])
		slices.Sort(observations)
		for _, o := range observations {
			target := s.edges[i][o]
			label := strconv.Itoa(o)
			if o >= 0 && o < len(observationNames) {
				label = observationNames[o]
			}
			if _, err := fmt.Fprintf(w, "  n%d -> n%d [label=<%s>];\n", i, target, label); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}

func meanValue(cache map[int]float64) float64 {
	if len(cache) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range cache {
		total += v
	}
	return total / float64(len(cache))
}
