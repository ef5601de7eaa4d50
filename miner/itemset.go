package miner

import (
	"sort"
)

import (
	"github.com/timtadh/forestmine/candidates"
)

// extendItemset adds, for every embedding, each label of the last node that
// is greater than every label of the last step. The node path is unchanged.
// It returns the pending supersets in code order.
func (m *Miner) extendItemset(cand *candidates.Candidate) []*candidates.Candidate {
	code := cand.Code
	max := code.Last().Max()
	memo := make(map[int]*candidates.Candidate)
	var labels []int
	for _, e := range cand.Embeddings {
		node := m.Forest.Node(e.Graph, e.Last())
		if len(node.Labels) <= 1 {
			continue
		}
		for _, label := range node.Labels {
			if label <= max {
				continue
			}
			sup, has := memo[label]
			if !has {
				sup = m.Store.Pending(code.WithItem(label))
				memo[label] = sup
				labels = append(labels, label)
			}
			path := append([]int(nil), e.Path...)
			sup.Embeddings = append(sup.Embeddings, candidates.Embedding{Graph: e.Graph, Path: path})
		}
	}
	sort.Ints(labels)
	supersets := make([]*candidates.Candidate, 0, len(labels))
	for _, label := range labels {
		supersets = append(supersets, memo[label])
	}
	return supersets
}
