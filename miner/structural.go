package miner

import (
	"github.com/timtadh/forestmine/candidates"
	"github.com/timtadh/forestmine/pattern"
)

// descendantLevel keys the canonical form caches for descendant extensions.
// Sibling extensions use the position of the parent step.
const descendantLevel = -1

type memoKey struct {
	label int
	depth int
}

// growth holds the per candidate state of the structural extension: the
// pending candidate of every generated step and, per level, the labels
// already known to give canonical or non canonical codes.
type growth struct {
	m            *Miner
	code         pattern.Code
	memo         map[memoKey]*candidates.Candidate
	canonical    map[int]map[int]bool
	nonCanonical map[int]map[int]bool
}

func (m *Miner) extendStructure(cand *candidates.Candidate, lastExtensible bool) {
	gr := &growth{
		m:            m,
		code:         cand.Code,
		memo:         make(map[memoKey]*candidates.Candidate),
		canonical:    make(map[int]map[int]bool),
		nonCanonical: make(map[int]map[int]bool),
	}
	c := m.Config
	for _, e := range cand.Embeddings {
		var edges map[[2]int]bool
		if c.Undirected {
			edges = patternEdges(gr.code, e)
		}
		descend := lastExtensible && !repeated(e.Path[:len(e.Path)-1], e.Last())
		if descend && (c.MaxDepth == -1 || len(e.Path) < c.MaxDepth) {
			gr.descendants(e, edges)
		}
		if len(e.Path) < 2 || c.Sequences {
			continue
		}
		gr.siblings(e, edges)
	}
}

// patternEdges lists the graph edges already used by an embedding, so that
// an undirected edge is never walked twice.
func patternEdges(code pattern.Code, e candidates.Embedding) map[[2]int]bool {
	edges := make(map[[2]int]bool, len(code))
	for i := 1; i < len(code); i++ {
		edges[edge(e.Path[pattern.Parent(code, i)], e.Path[i])] = true
	}
	return edges
}

func edge(a, b int) [2]int {
	if a > b {
		return [2]int{b, a}
	}
	return [2]int{a, b}
}

func repeated(path []int, node int) bool {
	for _, n := range path {
		if n == node {
			return true
		}
	}
	return false
}

func countOf(path []int, node int) int {
	count := 0
	for _, n := range path {
		if n == node {
			count++
		}
	}
	return count
}

func (gr *growth) level(caches map[int]map[int]bool, level int) map[int]bool {
	cache, has := caches[level]
	if !has {
		cache = make(map[int]bool)
		caches[level] = cache
	}
	return cache
}

// descendants adds every frequent node below the last node of e, within the
// gap window, as a new last step.
func (gr *growth) descendants(e candidates.Embedding, edges map[[2]int]bool) {
	m := gr.m
	last := e.Last()
	depth := gr.code.Last().Depth + 1
	for _, it := range m.Forest.Descendants(e.Graph, last, m.Config.MaxGap) {
		if edges != nil && edges[edge(last, it)] {
			continue
		}
		if !m.Forest.Node(e.Graph, it).Frequent() {
			continue
		}
		gr.add(e, it, depth, descendantLevel, -1)
	}
}

// siblings adds a new child to every ancestor of the last node along the
// path of e, from the deepest to the root.
func (gr *growth) siblings(e candidates.Embedding, edges map[[2]int]bool) {
	m := gr.m
	c := m.Config
	code := gr.code
	path := e.Path
	parentPos := len(path) - 2
	parentDepth := code[parentPos].Depth
	lastChild := len(path) - 1
	excluded := make(map[int]bool)
	exclude := func(nodes []int) {
		for _, n := range nodes {
			excluded[n] = true
		}
	}
	for parentPos >= 0 {
		excluded[path[lastChild]] = true
		parent := path[parentPos]
		if countOf(path, parent) != 1 {
			excluded[parent] = true
			parentPos--
			continue
		}
		if c.MaxGap != 0 {
			exclude(m.Forest.Descendants(e.Graph, path[parentPos+1], c.MaxGap+1))
		} else {
			excluded[path[parentPos+1]] = true
		}
		if code[parentPos].Depth > parentDepth || code[parentPos].Depth >= code[lastChild].Depth {
			excluded[parent] = true
			parentPos--
			continue
		}
		if c.Undirected {
			excluded[parent] = true
		}
		if c.MaxGap != 0 {
			exclude(m.Forest.Descendants(e.Graph, path[parentPos+1], c.MaxGap))
		}
		depth := code[parentPos].Depth + 1
		for _, it := range m.Forest.Descendants(e.Graph, parent, c.MaxGap) {
			if excluded[it] {
				continue
			}
			if edges != nil && edges[edge(parent, it)] {
				continue
			}
			if !m.Forest.Node(e.Graph, it).Frequent() {
				continue
			}
			if !c.Ordered && !gr.insertable(e, it, parentPos, lastChild) {
				continue
			}
			gr.add(e, it, depth, parentPos, lastChild)
		}
		lastChild = parentPos
		parentPos--
		if parentPos >= 0 {
			parentDepth = code[parentPos].Depth
		}
		excluded = make(map[int]bool)
	}
}

// insertable rejects a new child of the step at parentPos that is already
// one of its children in e or, with gaps, an ancestor or a descendant of
// one. Nodes on one branch are never siblings.
func (gr *growth) insertable(e candidates.Embedding, it, parentPos, lastChild int) bool {
	m := gr.m
	code := gr.code
	for j := parentPos + 1; j <= lastChild; j++ {
		if code[j].Depth != code[parentPos].Depth+1 {
			continue
		}
		kid := e.Path[j]
		if it == kid {
			return false
		}
		if m.Config.MaxGap != 0 && (m.Forest.IsAncestor(e.Graph, it, kid, m.Config.MaxGap) ||
			m.Forest.IsAncestor(e.Graph, kid, it, m.Config.MaxGap)) {
			return false
		}
	}
	return true
}

// add extends e with node it at depth. A node already on the path gives a
// back-edge step, any other node one step per label. level selects the
// canonical form caches: descendantLevel or the parent position. A new
// sibling may not have a label below the first label of lastChild, the
// child it is placed after.
func (gr *growth) add(e candidates.Embedding, it, depth, level, lastChild int) {
	m := gr.m
	ordered := m.Config.Ordered
	if pos := e.Position(it); pos != -1 {
		key := memoKey{label: -(pos + 1), depth: depth}
		cand, has := gr.memo[key]
		if !has {
			cand = m.Store.Pending(gr.code.Extend(pattern.BackEdge(pos, depth)))
			gr.memo[key] = cand
		}
		cand.Embeddings = append(cand.Embeddings, e.Extend(it))
		return
	}
	nonCanonical := gr.level(gr.nonCanonical, level)
	canonical := gr.level(gr.canonical, level)
	for _, label := range m.Forest.Node(e.Graph, it).Labels {
		if !ordered && nonCanonical[label] {
			continue
		}
		if !ordered && level != descendantLevel && label < gr.code[lastChild].First() {
			nonCanonical[label] = true
			continue
		}
		key := memoKey{label: label, depth: depth}
		cand, has := gr.memo[key]
		if !has {
			ext := gr.code.Extend(pattern.NewStep(depth, label))
			if !ordered && !canonical[label] {
				if pattern.IsCanonical(ext) != pattern.Reject {
					canonical[label] = true
				} else {
					nonCanonical[label] = true
					m.Metrics.NonCanonical.Inc()
					continue
				}
			}
			cand = m.Store.Pending(ext)
			gr.memo[key] = cand
		}
		cand.Embeddings = append(cand.Embeddings, e.Extend(it))
	}
}
