package forest

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
)

type Format int

const (
	Unknown Format = iota
	Sleuth
	Hybrid
	Imit
)

func (f Format) String() string {
	switch f {
	case Sleuth:
		return "sleuth/treeMiner"
	case Hybrid:
		return "HybridTreeMiner"
	case Imit:
		return "Imit"
	}
	return "unknown"
}

// DetectFormat guesses the layout of a dataset from its first line.
func DetectFormat(line string) Format {
	fields := strings.Fields(line)
	switch {
	case len(fields) == 0:
		return Unknown
	case fields[0] == "g" || fields[0] == "t" || fields[0] == "XP":
		return Imit
	case len(fields) == 1:
		return Hybrid
	case len(fields) == 2:
		return Imit
	case len(fields) > 3:
		return Sleuth
	}
	return Unknown
}

type lines struct {
	scanner *bufio.Scanner
	lineno  int
	peeked  *string
}

func newLines(r io.Reader) *lines {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	return &lines{scanner: s}
}

func (l *lines) next() (string, bool) {
	if l.peeked != nil {
		line := *l.peeked
		l.peeked = nil
		return line, true
	}
	if !l.scanner.Scan() {
		return "", false
	}
	l.lineno++
	return l.scanner.Text(), true
}

func (l *lines) unread(line string) {
	l.peeked = &line
}

// Load reads a dataset in any of the supported formats. Edges of
// undirected graphs are stored in both directions.
func Load(r io.Reader, undirected bool) (*Forest, Format, error) {
	in := newLines(r)
	var first string
	for {
		line, ok := in.next()
		if !ok {
			if err := in.scanner.Err(); err != nil {
				return nil, Unknown, err
			}
			return &Forest{}, Unknown, nil
		}
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			first = line
			break
		}
	}
	format := DetectFormat(first)
	in.unread(first)
	var f *Forest
	var err error
	switch format {
	case Sleuth:
		f, err = loadSleuth(in)
	case Hybrid:
		f, err = loadHybrid(in, undirected)
	case Imit:
		f, err = loadImit(in, undirected)
	default:
		return nil, Unknown, errors.Errorf("unrecognized dataset format, first line %q", first)
	}
	if err != nil {
		return nil, format, err
	}
	if err := in.scanner.Err(); err != nil {
		return nil, format, err
	}
	return f, format, nil
}

// LoadPatterns reads a reference pattern file: one preorder tree per line
// followed by "- <frequency>".
func LoadPatterns(r io.Reader) (*Forest, error) {
	in := newLines(r)
	f := &Forest{}
	for {
		line, ok := in.next()
		if !ok {
			break
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		if fields[len(fields)-2] != "-" {
			return nil, errors.Errorf("line %d: invalid content in pattern file %q", in.lineno, line)
		}
		freq, err := strconv.ParseFloat(fields[len(fields)-1], 64)
		if err != nil {
			return nil, errors.Errorf("line %d: bad pattern frequency %q", in.lineno, fields[len(fields)-1])
		}
		g, itemsets, err := preorder(fields[:len(fields)-2])
		if err != nil {
			return nil, errors.Errorf("line %d: %v", in.lineno, err)
		}
		f.Graphs = append(f.Graphs, g)
		f.PatternFrequencies = append(f.PatternFrequencies, freq)
		f.Itemsets = f.Itemsets || itemsets
	}
	if err := in.scanner.Err(); err != nil {
		return nil, err
	}
	return f, nil
}

func loadSleuth(in *lines) (*Forest, error) {
	f := &Forest{}
	for {
		line, ok := in.next()
		if !ok {
			break
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		g, itemsets, err := preorder(fields[3:])
		if err != nil {
			return nil, errors.Errorf("line %d: %v", in.lineno, err)
		}
		f.Graphs = append(f.Graphs, g)
		f.Itemsets = f.Itemsets || itemsets
	}
	return f, nil
}

// preorder builds a tree from a preorder token list where -1 closes the
// most recently opened node.
func preorder(tokens []string) (Graph, bool, error) {
	g := make(Graph, 0, len(tokens)/2+1)
	itemsets := false
	stack := make([]int, 0, 16)
	for _, tok := range tokens {
		if tok == "-1" {
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			continue
		}
		labels, err := ParseLabels(tok)
		if err != nil {
			return nil, false, err
		}
		id := len(g)
		g = append(g, Node{Labels: labels, Depth: len(stack)})
		if len(labels) > 1 {
			itemsets = true
		}
		if len(stack) > 0 {
			g[stack[len(stack)-1]].addChild(id)
		}
		stack = append(stack, id)
	}
	return g, itemsets, nil
}

func loadHybrid(in *lines, undirected bool) (*Forest, error) {
	f := &Forest{}
	// graph id
	if _, ok := in.next(); !ok {
		return f, nil
	}
	for {
		line, ok := in.next()
		if !ok {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		size, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			return nil, errors.Errorf("line %d: expected a node count, got %q", in.lineno, line)
		}
		g := make(Graph, 0, size)
		for i := 0; i < size; i++ {
			line, ok := in.next()
			if !ok {
				return nil, errors.Errorf("line %d: expected %d node lines, got %d", in.lineno, size, i)
			}
			labels, err := ParseLabels(strings.TrimSpace(line))
			if err != nil {
				return nil, errors.Errorf("line %d: %v", in.lineno, err)
			}
			if len(labels) > 1 {
				f.Itemsets = true
			}
			g = append(g, Node{Labels: labels, Depth: 1})
		}
		for {
			line, ok := in.next()
			if !ok {
				break
			}
			fields := strings.Fields(line)
			if len(fields) < 2 {
				break
			}
			if len(fields) < 3 {
				return nil, errors.Errorf("line %d: expected 'branch from to', got %q", in.lineno, line)
			}
			from, err1 := strconv.Atoi(fields[1])
			to, err2 := strconv.Atoi(fields[2])
			if err1 != nil || err2 != nil || from < 1 || to < 1 || from > len(g) || to > len(g) {
				return nil, errors.Errorf("line %d: bad edge %q", in.lineno, line)
			}
			g[from-1].addChild(to - 1)
			if undirected {
				g[to-1].addChild(from - 1)
			}
		}
		f.Graphs = append(f.Graphs, g)
	}
	return f, nil
}

func loadImit(in *lines, undirected bool) (*Forest, error) {
	f := &Forest{}
	var g Graph
	ids := make(map[int]int)
	started := false
	node := func(id int) int {
		if pos, has := ids[id]; has {
			return pos
		}
		pos := len(g)
		ids[id] = pos
		g = append(g, Node{Depth: 1})
		return pos
	}
	for {
		line, ok := in.next()
		if !ok {
			break
		}
		if len(line) == 0 {
			continue
		}
		switch line[0] {
		case '#':
			continue
		case 'g', 't', 'X':
			if started || len(g) > 0 {
				f.Graphs = append(f.Graphs, g)
			}
			started = true
			g = nil
			ids = make(map[int]int)
		case 'n', 'v':
			fields := strings.Fields(line)
			if len(fields) < 3 {
				return nil, errors.Errorf("line %d: expected 'v id labels', got %q", in.lineno, line)
			}
			id, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, errors.Errorf("line %d: bad node id %q", in.lineno, fields[1])
			}
			labels, err := ParseLabels(fields[2])
			if err != nil {
				return nil, errors.Errorf("line %d: %v", in.lineno, err)
			}
			pos := node(id)
			n := &g[pos]
			for _, l := range labels {
				n.addLabel(l)
			}
			if len(n.Labels) > 1 {
				f.Itemsets = true
			}
		case 'd', 'e':
			fields := strings.Fields(line)
			if len(fields) < 3 {
				return nil, errors.Errorf("line %d: expected 'e from to', got %q", in.lineno, line)
			}
			from, err1 := strconv.Atoi(fields[1])
			to, err2 := strconv.Atoi(fields[2])
			if err1 != nil || err2 != nil {
				return nil, errors.Errorf("line %d: bad edge %q", in.lineno, line)
			}
			a, b := node(from), node(to)
			g[a].addChild(b)
			if undirected {
				g[b].addChild(a)
			}
		}
	}
	if started || len(g) > 0 {
		f.Graphs = append(f.Graphs, g)
	}
	return f, nil
}

// ParseLabels parses a colon separated label set such as "3:1:2".
func ParseLabels(s string) ([]int, error) {
	var labels []int
	for _, part := range strings.Split(s, ":") {
		if part == "" {
			continue
		}
		l, err := strconv.Atoi(part)
		if err != nil {
			return nil, errors.Errorf("bad label %q in %q", part, s)
		}
		labels = insertSorted(labels, l)
	}
	return labels, nil
}
