package format

import (
	"sort"

	"github.com/dhamidi/fauxy/fauxy/parser"
)

type Stats struct {
	Statements int
	Nodes      int
	Depth      int
	Kinds      map[parser.Kind]int
}

// Collect counts the nodes of a tree by kind and measures its depth.
func Collect(root *parser.Node) Stats {
	s := Stats{Kinds: make(map[parser.Kind]int)}
	if root.Kind == parser.KindStatements {
		s.Statements = len(root.Children)
	}
	s.visit(root, 1)
	return s
}

func (s *Stats) visit(n *parser.Node, depth int) {
	s.Nodes++
	s.Kinds[n.Kind]++
	if depth > s.Depth {
		s.Depth = depth
	}
	for _, child := range n.Children {
		s.visit(child, depth+1)
	}
}

// SortedKinds returns the kinds seen, most frequent first.
func (s Stats) SortedKinds() []parser.Kind {
	kinds := make([]parser.Kind, 0, len(s.Kinds))
	for k := range s.Kinds {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool {
		if s.Kinds[kinds[i]] != s.Kinds[kinds[j]] {
			return s.Kinds[kinds[i]] > s.Kinds[kinds[j]]
		}
		return kinds[i] < kinds[j]
	})
	return kinds
}
