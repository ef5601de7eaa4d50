package pattern

import (
	"strconv"
	"strings"
)

import (
	"github.com/timtadh/forestmine/types/forest"
)

// Up is the element emitted in a label path to close one open branch.
var Up = []int{-1}

// Decode converts c into its label path: the preorder serialization where
// an Up element closes a branch before a step at the same or a lower depth.
func Decode(c Code) [][]int {
	path := make([][]int, 0, 2*len(c))
	depth := -1
	for _, s := range c {
		for j := s.Depth; j <= depth; j++ {
			path = append(path, Up)
		}
		path = append(path, s.Labels)
		depth = s.Depth
	}
	return path
}

// Encode rebuilds a code from a label path produced by Decode.
func Encode(path [][]int) Code {
	c := make(Code, 0, len(path))
	depth := -1
	for _, labels := range path {
		if len(labels) == 1 && labels[0] == -1 {
			depth--
			continue
		}
		depth++
		c = append(c, Step{Labels: labels, Depth: depth})
	}
	return c
}

// Label renders the label path of c, every element followed by a space.
func Label(c Code) string {
	var b strings.Builder
	for _, labels := range Decode(c) {
		b.WriteString(forest.LabelString(labels))
		b.WriteString(" ")
	}
	return b.String()
}

// Line formats one result line. With a positive datasetSize the support is
// written as a relative frequency.
func Line(c Code, support, datasetSize int) string {
	var value string
	if datasetSize > 0 {
		value = FormatFloat(float64(float32(support) / float32(datasetSize)))
	} else {
		value = strconv.Itoa(support)
	}
	return Label(c) + "- " + value
}

// FormatFloat prints a frequency with six significant digits.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 32)
}

// Depths is the depth profile of c.
func Depths(c Code) []int {
	depths := make([]int, len(c))
	for i, s := range c {
		depths[i] = s.Depth
	}
	return depths
}

// PreviousSibling is the position of the closest earlier step at the same
// depth as step pos, or -1 when a shallower step comes first.
func PreviousSibling(c Code, pos int) int {
	for i := pos - 1; i >= 0; i-- {
		if c[i].Depth == c[pos].Depth {
			return i
		}
		if c[i].Depth < c[pos].Depth {
			return -1
		}
	}
	return -1
}

// Parent is the position of the parent of step pos. Steps without a
// shallower predecessor hang off the root (0); the root itself has no
// parent (-1).
func Parent(c Code, pos int) int {
	p := pos - 1
	for p > 0 {
		if c[p].Depth < c[pos].Depth {
			return p
		}
		p--
	}
	return p
}

// RightmostPath lists the positions from the root to the last step.
func RightmostPath(c Code) []int {
	var path []int
	for p := len(c) - 1; p != -1; p = Parent(c, p) {
		path = append(path, p)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Delete removes step i. The following steps that hung below it move one
// level up and back-edges are renumbered. ok is false when a back-edge
// pointed at the removed step.
func Delete(c Code, i int) (d Code, ok bool) {
	removed := c[i].Depth
	d = make(Code, 0, len(c)-1)
	d = append(d, c[:i]...)
	d = append(d, c[i+1:]...)
	for j := i; j < len(d); j++ {
		if d[j].Depth <= removed {
			break
		}
		d[j] = Step{Labels: d[j].Labels, Depth: d[j].Depth - 1}
	}
	for j := range d {
		if !d[j].IsBackEdge() {
			continue
		}
		t := d[j].Target()
		if t == i {
			return nil, false
		} else if t > i {
			d[j] = BackEdge(t-1, d[j].Depth)
		}
	}
	return d, true
}

// IsSubSequence reports whether sub has the same shape as super with every
// label set included in the matching label set of super, the two codes
// being different.
func IsSubSequence(sub, super Code) bool {
	if len(sub) != len(super) || Compare(sub, super) == 0 {
		return false
	}
	for i := range sub {
		if sub[i].Depth != super[i].Depth {
			return false
		}
		if !includes(super[i].Labels, sub[i].Labels) {
			return false
		}
	}
	return true
}

func includes(super, sub []int) bool {
	i := 0
	for _, l := range sub {
		for i < len(super) && super[i] < l {
			i++
		}
		if i == len(super) || super[i] != l {
			return false
		}
		i++
	}
	return true
}

// SearchLine is Line followed by the frequency of the matched reference
// pattern.
func SearchLine(c Code, support, datasetSize int, reference float64) string {
	return Line(c, support, datasetSize) + " (" + strconv.FormatFloat(reference, 'g', 6, 64) + ")"
}
