package miner

import (
	"sort"
	"strconv"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/data-structures/exc"
	"github.com/timtadh/data-structures/hashtable"
	"github.com/timtadh/data-structures/types"
)

import (
	"github.com/timtadh/forestmine/candidates"
	"github.com/timtadh/forestmine/pattern"
)

// The reductions below drop embeddings that only differ from a kept one by
// an automorphism of the pattern. They keep the first embedding of every
// class, so the support of the candidate and of its extensions is unchanged.

// nodesKey encodes a graph id, an ordered node prefix and an unordered node
// set.
func nodesKey(graph int, ordered, unordered []int) types.String {
	var b strings.Builder
	b.WriteString(strconv.Itoa(graph))
	b.WriteString("|")
	for _, n := range ordered {
		b.WriteString(strconv.Itoa(n))
		b.WriteString(",")
	}
	b.WriteString("|")
	set := append([]int(nil), unordered...)
	sort.Ints(set)
	prev := -1
	for i, n := range set {
		if i > 0 && n == prev {
			continue
		}
		prev = n
		b.WriteString(strconv.Itoa(n))
		b.WriteString(",")
	}
	return types.String(b.String())
}

func (m *Miner) filterEmbeddings(cand *candidates.Candidate, name string, keep func(candidates.Embedding) bool) {
	before := len(cand.Embeddings)
	kept := make([]candidates.Embedding, 0, before)
	for _, e := range cand.Embeddings {
		if keep(e) {
			kept = append(kept, e)
		}
	}
	cand.Embeddings = kept
	m.Metrics.Reduced.Add(float64(before - len(kept)))
	if m.Config.Verbose {
		errors.Logf("DEBUG", "reduction of instances (%v) %d to %d", name, before, len(kept))
	}
}

func firstOf(seen *hashtable.LinearHash, key types.String) bool {
	if seen.Has(key) {
		return false
	}
	exc.ThrowOnError(seen.Put(key, nil))
	return true
}

// reduceAutomorphic keeps one embedding per set of nodes. Only siblings may
// be added to a boundary pattern, so the order of its nodes is irrelevant.
func (m *Miner) reduceAutomorphic(cand *candidates.Candidate) {
	seen := hashtable.NewLinearHash()
	m.filterEmbeddings(cand, "automorph", func(e candidates.Embedding) bool {
		return firstOf(seen, nodesKey(e.Graph, nil, e.Path))
	})
}

// reduceSiblings applies when the last step is a single labelled child of the
// root with a smaller labelled sibling before it: an embedding is dropped
// when an earlier one has the same last node and the same node set before
// it. Both are needed in one key; with itemsets a seen prefix and a seen
// last node do not make the pair seen.
func (m *Miner) reduceSiblings(cand *candidates.Candidate) {
	code := cand.Code
	last := code.Last()
	if last.Depth != 1 || len(last.Labels) != 1 {
		return
	}
	prev := pattern.PreviousSibling(code, len(code)-1)
	if prev == -1 || code[prev].First() >= last.First() {
		return
	}
	seen := hashtable.NewLinearHash()
	m.filterEmbeddings(cand, "siblings", func(e candidates.Embedding) bool {
		last := len(e.Path) - 1
		return firstOf(seen, nodesKey(e.Graph, e.Path[last:], e.Path[:last]))
	})
}

// reduceRightmost looks for the shallowest inner node of the rightmost path
// whose subtree is a boundary pattern. Below such a node only the node set
// matters, so embeddings agreeing on the path above it and on the node set
// below it are merged.
func (m *Miner) reduceRightmost(cand *candidates.Candidate) {
	code := cand.Code
	rightmost := pattern.RightmostPath(code)
	for i := 1; i < len(rightmost)-1; i++ {
		at := rightmost[i]
		sub := code[at:]
		if sub.HasBackEdge() || pattern.IsCanonical(sub) != pattern.Boundary {
			continue
		}
		seen := hashtable.NewLinearHash()
		m.filterEmbeddings(cand, "rightmost", func(e candidates.Embedding) bool {
			return firstOf(seen, nodesKey(e.Graph, e.Path[:at], e.Path[at:]))
		})
		return
	}
}
