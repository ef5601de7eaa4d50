package pattern

import (
	"github.com/timtadh/data-structures/exc"
)

// Canonicity is the verdict of the canonical form checks.
type Canonicity int

const (
	// Accept: canonical and open to further rightmost growth.
	Accept Canonicity = -1
	// Boundary: canonical, but the rightmost subtree equals its left
	// sibling so the automorphic embeddings may be collapsed.
	Boundary Canonicity = 0
	// Reject: a left sibling subtree is greater than the rightmost one.
	Reject Canonicity = 1
)

func (c Canonicity) String() string {
	switch c {
	case Accept:
		return "accept"
	case Boundary:
		return "boundary"
	case Reject:
		return "reject"
	}
	return "unknown"
}

// IsCanonical walks the rightmost path of c from the last step to the root
// comparing each rightmost subtree with its left sibling subtree. Back-edge
// steps are compared through the label set of the node they point to.
func IsCanonical(c Code) Canonicity {
	r := c.resolved()
	identical := true
	found := false
	for pos := len(r) - 1; pos > 0; pos = Parent(r, pos) {
		prev := PreviousSibling(r, pos)
		if prev == -1 {
			continue
		}
		found = true
		switch compareSubtrees(r, prev, pos) {
		case 1:
			return Reject
		case -1:
			identical = false
		}
	}
	if identical && found {
		return Boundary
	}
	return Accept
}

// compareSubtrees compares the subtree starting at left (which ends where
// right begins) with the rightmost subtree starting at right. A longer left
// subtree is smaller, whatever its steps are, so some trees are reached
// under two codes.
func compareSubtrees(c Code, left, right int) int {
	n1 := right - left
	n2 := len(c) - right
	if n1 > n2 {
		return -1
	}
	for j := 0; j < n1; j++ {
		a, b := c[left+j], c[right+j]
		if a.Depth < b.Depth {
			return -1
		} else if a.Depth > b.Depth {
			return 1
		}
		if cmp := CompareLabels(a.Labels, b.Labels); cmp != 0 {
			return cmp
		}
	}
	if n1 < n2 {
		return 1
	}
	return 0
}

// IsCycleCanonical checks a code closed by a back-edge against every
// rotation of its cycle. It rejects c when some rotation is smaller and is
// itself not rejected by IsCanonical. Reflections are not rotations: in an
// undirected triangle both 1 2 3 -1:999 and 1 3 2 -1:999 are accepted.
func IsCycleCanonical(c Code) Canonicity {
	if len(c) < 3 {
		return Accept
	}
	rot := c
	for i := 0; i < len(c)-2; i++ {
		rot = rotate(rot)
		if rotationSmaller(c, rot) && IsCanonical(rot) != Reject {
			return Reject
		}
	}
	return Accept
}

func rotationSmaller(c, rot Code) bool {
	for j := 0; j < len(c)-1; j++ {
		if c[j].Depth < rot[j].Depth {
			return true
		} else if c[j].Depth > rot[j].Depth {
			return false
		}
		switch CompareLabels(c[j].Labels, rot[j].Labels) {
		case 1:
			return true
		case -1:
			return false
		}
	}
	return false
}

// rotate makes the node of the second to last step the new start of the
// cycle closed by the last step. The result is a fresh code.
func rotate(c Code) Code {
	n := len(c)
	closing := c[n-1]
	start := c[n-2]
	rot := make(Code, 0, n)
	rot = append(rot, Step{Labels: start.Labels, Depth: 0})
	for _, s := range c[:n-2] {
		if s.IsBackEdge() {
			rot = append(rot, BackEdge(s.Target()+1, s.Depth+1))
		} else {
			rot = append(rot, Step{Labels: s.Labels, Depth: s.Depth + 1})
		}
	}
	if rot[0].IsBackEdge() {
		t := rot[0].Target()
		if t < 0 || t >= len(rot) {
			exc.Throwf("back-edge target %d out of range rotating %v", t, c)
		}
		rot[0] = Step{Labels: rot[t].Labels, Depth: 0}
		rot[t] = BackEdge(0, rot[t].Depth)
	}
	rot = append(rot, Step{Labels: closing.Labels, Depth: start.Depth + 1})
	return rot
}
