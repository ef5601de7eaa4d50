// Package forest holds the normalized graph model mined by forestmine: one
// node list per input graph, each node carrying a label set, a depth and a
// child set.
package forest

import (
	"fmt"
	"sort"
	"strings"
)

type Node struct {
	Labels   []int
	Children []int
	Depth    int
}

// Frequent is true while the node still carries a label after pruning.
func (n *Node) Frequent() bool {
	return len(n.Labels) > 0
}

func (n *Node) HasLabel(label int) bool {
	i := sort.SearchInts(n.Labels, label)
	return i < len(n.Labels) && n.Labels[i] == label
}

func (n *Node) HasChild(id int) bool {
	i := sort.SearchInts(n.Children, id)
	return i < len(n.Children) && n.Children[i] == id
}

// LabelsInclude reports whether every label of o is also a label of n.
func (n *Node) LabelsInclude(o *Node) bool {
	for _, l := range o.Labels {
		if !n.HasLabel(l) {
			return false
		}
	}
	return true
}

func (n *Node) addLabel(label int) {
	n.Labels = insertSorted(n.Labels, label)
}

func (n *Node) addChild(id int) {
	n.Children = insertSorted(n.Children, id)
}

func (n *Node) String() string {
	return fmt.Sprintf("<Node %v depth=%d kids=%v>", LabelString(n.Labels), n.Depth, n.Children)
}

type Graph []Node

// Forest is the whole dataset. The first Patterns graphs are reference
// patterns (pattern search mode) and never count towards support.
type Forest struct {
	Graphs             []Graph
	Patterns           int
	PatternFrequencies []float64
	Itemsets           bool
}

// Size is the number of mined graphs, reference patterns excluded.
func (f *Forest) Size() int {
	return len(f.Graphs) - f.Patterns
}

func (f *Forest) NodeCount() int {
	count := 0
	for _, g := range f.Graphs {
		count += len(g)
	}
	return count
}

func (f *Forest) Node(g, n int) *Node {
	return &f.Graphs[g][n]
}

// Descendants collects the nodes reachable from n in graph g. With gap 0 only
// the direct children are returned, with gap k > 0 every node within k+1
// edges, and with a negative gap every reachable node. n itself is never
// part of the result, even when a cycle leads back to it. The result is
// sorted.
func (f *Forest) Descendants(g, n, gap int) []int {
	graph := f.Graphs[g]
	if gap == 0 {
		if !graph[n].HasChild(n) {
			return graph[n].Children
		}
		kids := make([]int, 0, len(graph[n].Children))
		for _, kid := range graph[n].Children {
			if kid != n {
				kids = append(kids, kid)
			}
		}
		return kids
	}
	seen := map[int]bool{n: true}
	frontier := []int{n}
	for level := 0; len(frontier) > 0 && (gap < 0 || level <= gap); level++ {
		next := make([]int, 0, len(frontier))
		for _, id := range frontier {
			for _, kid := range graph[id].Children {
				if seen[kid] {
					continue
				}
				seen[kid] = true
				next = append(next, kid)
			}
		}
		frontier = next
	}
	found := make([]int, 0, len(seen))
	for id := range seen {
		if id != n {
			found = append(found, id)
		}
	}
	sort.Ints(found)
	return found
}

// IsAncestor reports whether b is a descendant of a within the gap window.
func (f *Forest) IsAncestor(g, a, b, gap int) bool {
	if gap == 0 {
		return f.Graphs[g][a].HasChild(b)
	}
	kids := f.Descendants(g, a, gap)
	i := sort.SearchInts(kids, b)
	return i < len(kids) && kids[i] == b
}

// LabelCounts counts, for every label, the graphs containing it (unique) or
// the nodes carrying it (all occurrences).
func (f *Forest) LabelCounts(unique bool) map[int]int {
	counts := make(map[int]int)
	for _, g := range f.Graphs {
		seen := make(map[int]bool)
		for i := range g {
			for _, l := range g[i].Labels {
				if unique && seen[l] {
					continue
				}
				seen[l] = true
				counts[l]++
			}
		}
	}
	return counts
}

// Prune removes every label not in keep from every node.
func (f *Forest) Prune(keep map[int]bool) {
	for _, g := range f.Graphs {
		for i := range g {
			kept := g[i].Labels[:0]
			for _, l := range g[i].Labels {
				if keep[l] {
					kept = append(kept, l)
				}
			}
			g[i].Labels = kept
		}
	}
}

// PrependPatterns places the reference patterns of p in front of the mined
// graphs so that pattern graphs get the lowest ids.
func (f *Forest) PrependPatterns(p *Forest) {
	graphs := make([]Graph, 0, len(p.Graphs)+len(f.Graphs))
	graphs = append(graphs, p.Graphs...)
	graphs = append(graphs, f.Graphs...)
	f.Graphs = graphs
	f.Patterns = len(p.Graphs)
	f.PatternFrequencies = p.PatternFrequencies
	f.Itemsets = f.Itemsets || p.Itemsets
}

// LabelString renders a label set the way result lines do: colon joined.
func LabelString(labels []int) string {
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		parts = append(parts, fmt.Sprint(l))
	}
	return strings.Join(parts, ":")
}

func insertSorted(list []int, item int) []int {
	i := sort.SearchInts(list, item)
	if i < len(list) && list[i] == item {
		return list
	}
	list = append(list, 0)
	copy(list[i+1:], list[i:])
	list[i] = item
	return list
}
