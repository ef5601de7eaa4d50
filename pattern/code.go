// Package pattern implements pattern codes: the preorder (label set, depth)
// step sequences that name every subtree or subgraph pattern the miner
// enumerates.
package pattern

import (
	"fmt"
	"strings"
)

import (
	"github.com/timtadh/data-structures/exc"
	"github.com/timtadh/data-structures/types"
)

import (
	"github.com/timtadh/forestmine/types/forest"
)

// BackEdgeMarker is the sentinel paired with the negative target index in the
// label set of a back-edge step.
const BackEdgeMarker = 999

type Step struct {
	Labels []int
	Depth  int
}

func NewStep(depth int, labels ...int) Step {
	return Step{Labels: labels, Depth: depth}
}

// BackEdge builds the step that links back to the node created at step
// target instead of introducing a new node.
func BackEdge(target, depth int) Step {
	return Step{Labels: []int{-(target + 1), BackEdgeMarker}, Depth: depth}
}

func (s Step) IsBackEdge() bool {
	return len(s.Labels) > 0 && s.Labels[0] < 0
}

func (s Step) Target() int {
	return -s.Labels[0] - 1
}

func (s Step) First() int {
	return s.Labels[0]
}

func (s Step) Max() int {
	return s.Labels[len(s.Labels)-1]
}

func (s Step) Equals(o Step) bool {
	return CompareSteps(s, o) == 0
}

func (s Step) String() string {
	return fmt.Sprintf("%v/%d", forest.LabelString(s.Labels), s.Depth)
}

// CompareLabels orders label sets element by element. When one set is a
// prefix of the other the larger set sorts first.
func CompareLabels(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] < b[i] {
			return -1
		} else if a[i] > b[i] {
			return 1
		}
	}
	if len(a) > len(b) {
		return -1
	} else if len(a) < len(b) {
		return 1
	}
	return 0
}

// CompareSteps orders steps by depth, then by label set.
func CompareSteps(a, b Step) int {
	if a.Depth < b.Depth {
		return -1
	} else if a.Depth > b.Depth {
		return 1
	}
	return CompareLabels(a.Labels, b.Labels)
}

// Code is a pattern code. Codes are values: every operation that grows or
// edits a code returns a fresh copy.
type Code []Step

func Compare(a, b Code) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := CompareSteps(a[i], b[i]); c != 0 {
			return c
		}
	}
	if len(a) < len(b) {
		return -1
	} else if len(a) > len(b) {
		return 1
	}
	return 0
}

func (c Code) Equals(other types.Equatable) bool {
	if o, is := other.(Code); is {
		return Compare(c, o) == 0
	}
	return false
}

func (c Code) Less(other types.Sortable) bool {
	if o, is := other.(Code); is {
		return Compare(c, o) < 0
	}
	return false
}

func (c Code) Hash() int {
	h := 2166136261
	mix := func(v int) {
		h ^= v
		h *= 16777619
		h &= 0x7fffffff
	}
	for _, s := range c {
		mix(s.Depth)
		for _, l := range s.Labels {
			mix(l)
		}
		mix(-7)
	}
	return h
}

func (c Code) Last() Step {
	return c[len(c)-1]
}

func (c Code) Copy() Code {
	cp := make(Code, len(c))
	for i, s := range c {
		labels := make([]int, len(s.Labels))
		copy(labels, s.Labels)
		cp[i] = Step{Labels: labels, Depth: s.Depth}
	}
	return cp
}

// Extend returns c with one more step.
func (c Code) Extend(s Step) Code {
	ext := make(Code, len(c), len(c)+1)
	copy(ext, c)
	return append(ext, s)
}

// WithItem returns c with label added to the label set of its last step.
func (c Code) WithItem(label int) Code {
	ext := make(Code, len(c))
	copy(ext, c)
	last := ext[len(ext)-1]
	labels := make([]int, 0, len(last.Labels)+1)
	added := false
	for _, l := range last.Labels {
		if !added && label <= l {
			labels = append(labels, label)
			added = true
		}
		if l != label {
			labels = append(labels, l)
		}
	}
	if !added {
		labels = append(labels, label)
	}
	ext[len(ext)-1] = Step{Labels: labels, Depth: last.Depth}
	return ext
}

func (c Code) HasBackEdge() bool {
	for _, s := range c {
		if s.IsBackEdge() {
			return true
		}
	}
	return false
}

// resolved copies c replacing the label set of every back-edge step with the
// label set of the step it points to.
func (c Code) resolved() Code {
	r := make(Code, len(c))
	copy(r, c)
	for i := range r {
		if !r[i].IsBackEdge() {
			continue
		}
		t := r[i].Target()
		if t < 0 || t >= len(r) {
			exc.Throwf("back-edge target %d out of range in %v", t, c)
		}
		r[i] = Step{Labels: r[t].Labels, Depth: r[i].Depth}
	}
	return r
}

func (c Code) String() string {
	parts := make([]string, 0, len(c))
	for _, s := range c {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, " ")
}
