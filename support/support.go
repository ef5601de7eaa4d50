// Package support counts the support of a candidate from its embeddings.
// Embeddings into reference pattern graphs (ids below patterns) never count.
package support

import (
	"github.com/timtadh/data-structures/exc"
	"github.com/timtadh/data-structures/set"
	"github.com/timtadh/data-structures/types"
)

import (
	"github.com/timtadh/forestmine/candidates"
	"github.com/timtadh/forestmine/stats"
)

type Counter func(embs []candidates.Embedding, patterns int) int

// For picks the counting semantics.
func For(countUnique bool) Counter {
	if countUnique {
		return Unique
	}
	return MinImage
}

// Unique is the number of distinct graphs with at least one embedding.
func Unique(embs []candidates.Embedding, patterns int) int {
	seen := make(map[int]bool)
	for _, e := range embs {
		if e.Graph >= patterns {
			seen[e.Graph] = true
		}
	}
	return len(seen)
}

// MinImage is the minimum, over the pattern steps, of the number of distinct
// (graph, node) pairs realizing that step.
func MinImage(embs []candidates.Embedding, patterns int) int {
	sets := imageSets(embs, patterns)
	if len(sets) == 0 {
		return 0
	}
	_, size := stats.Min(stats.Srange(len(sets)), func(i int) float64 {
		return float64(sets[i].Size())
	})
	return int(size)
}

func imageSets(embs []candidates.Embedding, patterns int) []*set.SortedSet {
	var sets []*set.SortedSet
	for _, e := range embs {
		if e.Graph < patterns {
			continue
		}
		if sets == nil {
			sets = make([]*set.SortedSet, len(e.Path))
			for i := range sets {
				sets[i] = set.NewSortedSet(len(embs))
			}
		}
		for i, node := range e.Path {
			if i >= len(sets) {
				break
			}
			exc.ThrowOnError(sets[i].Add(image(e.Graph, node)))
		}
	}
	return sets
}

func image(graph, node int) types.Hashable {
	return candidates.Embedding{Graph: graph, Path: []int{node}}
}

// Embedded reports whether some embedding lands in a graph with an id below
// limit. Pattern search uses it to keep only candidates that occur in a
// reference pattern.
func Embedded(embs []candidates.Embedding, limit int) bool {
	for _, e := range embs {
		if e.Graph < limit {
			return true
		}
	}
	return false
}
