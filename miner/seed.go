package miner

import (
	"sort"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/forestmine/types/forest"
)

// seed adds one single step candidate per label of every usable node.
// Counting graphs with gaps allowed, a descendant whose labels are all on the
// node already adds nothing to the support and is skipped. In a dense
// dataset nodes whose labels and child labels repeat another node of the
// same graph are skipped as well.
func (m *Miner) seed() {
	c := m.Config
	gapped := c.MaxGap != 0 && c.CountUnique
	total, reduced := 0, 0
	for g, graph := range m.Forest.Graphs {
		ignored := make(map[int]bool)
		subtrees := make(map[string]bool)
		for n := range graph {
			node := &graph[n]
			if gapped && ignored[n] {
				continue
			}
			if !node.Frequent() {
				continue
			}
			if c.Rooted && node.Depth != 0 {
				continue
			}
			if gapped {
				for _, d := range m.Forest.Descendants(g, n, c.MaxGap) {
					if node.LabelsInclude(&graph[d]) {
						ignored[d] = true
					}
				}
			}
			total++
			if c.CountUnique && c.Dense {
				key := subtreeKey(graph, n, !c.Ordered)
				if subtrees[key] {
					reduced++
					ignored[n] = true
					continue
				}
				subtrees[key] = true
			}
			for _, label := range node.Labels {
				if c.RootLabel != -1 && label != c.RootLabel {
					continue
				}
				m.Store.AddStep(g, label, n)
			}
		}
	}
	m.Store.CommitPending()
	if c.Dense {
		errors.Logf("INFO", "reduced candidates = %d out of %d", reduced, total)
	}
}

// subtreeKey serializes a node with the labels of its children.
func subtreeKey(graph forest.Graph, n int, unordered bool) string {
	parts := []string{forest.LabelString(graph[n].Labels) + ":("}
	for _, kid := range graph[n].Children {
		parts = append(parts, forest.LabelString(graph[kid].Labels)+":")
	}
	parts = append(parts, ")")
	if unordered {
		sort.Strings(parts)
	}
	return strings.Join(parts, " ")
}
