// Package candidates keeps the candidate patterns of a mining run: their
// embeddings, the frequency metadata used for closure checks, and the
// worklist of patterns waiting to be extended.
package candidates

import (
	"fmt"
)

import (
	"github.com/timtadh/data-structures/types"
)

import (
	"github.com/timtadh/forestmine/pattern"
)

// Embedding is one occurrence of a pattern: Path[i] is the node of graph
// Graph realizing step i of the pattern code.
type Embedding struct {
	Graph int
	Path  []int
}

func (e Embedding) Last() int {
	return e.Path[len(e.Path)-1]
}

// Extend returns a copy of e with node appended to the path.
func (e Embedding) Extend(node int) Embedding {
	path := make([]int, len(e.Path), len(e.Path)+1)
	copy(path, e.Path)
	return Embedding{Graph: e.Graph, Path: append(path, node)}
}

// Contains reports whether node is already realized by the embedding.
func (e Embedding) Contains(node int) bool {
	return e.Position(node) != -1
}

// Position is the step realized by node, or -1.
func (e Embedding) Position(node int) int {
	for i, n := range e.Path {
		if n == node {
			return i
		}
	}
	return -1
}

func (e Embedding) compare(o Embedding) int {
	if e.Graph < o.Graph {
		return -1
	} else if e.Graph > o.Graph {
		return 1
	}
	for i := 0; i < len(e.Path) && i < len(o.Path); i++ {
		if e.Path[i] < o.Path[i] {
			return -1
		} else if e.Path[i] > o.Path[i] {
			return 1
		}
	}
	if len(e.Path) < len(o.Path) {
		return -1
	} else if len(e.Path) > len(o.Path) {
		return 1
	}
	return 0
}

func (e Embedding) Equals(other types.Equatable) bool {
	if o, is := other.(Embedding); is {
		return e.compare(o) == 0
	}
	return false
}

func (e Embedding) Less(other types.Sortable) bool {
	if o, is := other.(Embedding); is {
		return e.compare(o) < 0
	}
	return false
}

func (e Embedding) Hash() int {
	h := e.Graph
	for _, n := range e.Path {
		h = (h*31 + n) & 0x7fffffff
	}
	return h
}

func (e Embedding) String() string {
	return fmt.Sprintf("<Embedding %d %v>", e.Graph, e.Path)
}

// Candidate is the record kept for one pattern code. The counts stay -1
// until the support of the pattern has been computed.
type Candidate struct {
	Code             pattern.Code
	Embeddings       []Embedding
	PerTreeFrequency int
	Occurrences      int
	// Subsumed is set once a superpattern with the same support is known,
	// which excludes the pattern from closed output.
	Subsumed bool
}

func NewCandidate(code pattern.Code) *Candidate {
	return &Candidate{
		Code:             code,
		PerTreeFrequency: -1,
		Occurrences:      -1,
	}
}

// SetCounts records the finalized support of the candidate.
func (c *Candidate) SetCounts(support, occurrences int) {
	c.PerTreeFrequency = support
	c.Occurrences = occurrences
}

func (c *Candidate) String() string {
	return fmt.Sprintf("<Candidate %v embs=%d freq=%d occ=%d subsumed=%v>",
		c.Code, len(c.Embeddings), c.PerTreeFrequency, c.Occurrences, c.Subsumed)
}
