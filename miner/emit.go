package miner

import (
	"github.com/timtadh/data-structures/exc"
)

import (
	"github.com/timtadh/forestmine/candidates"
	"github.com/timtadh/forestmine/pattern"
)

// emit reports a frequent pattern. In pattern search mode only patterns
// equal to a reference pattern are reported.
func (m *Miner) emit(cand *candidates.Candidate, support int) {
	if !m.Config.PatternSearch {
		m.write(cand.Code, support, -1)
		return
	}
	if ref := m.matchReference(cand); ref != -1 {
		m.write(cand.Code, support, ref)
	}
}

func (m *Miner) write(code pattern.Code, support, ref int) {
	size := 0
	if m.Config.OutputFrequency {
		size = m.Forest.Size()
	}
	var line string
	if ref != -1 {
		line = pattern.SearchLine(code, support, size, m.Forest.PatternFrequencies[ref])
	} else {
		line = pattern.Line(code, support, size)
	}
	m.Metrics.Emitted.Inc()
	exc.ThrowOnError(m.report.Report(Result{
		Code:      code,
		Support:   support,
		Reference: ref,
		Line:      line,
	}))
}

// matchReference finds a reference pattern graph embedding the candidate
// whose nodes carry exactly the label sets of the candidate steps.
func (m *Miner) matchReference(cand *candidates.Candidate) int {
	for _, e := range cand.Embeddings {
		if e.Graph >= m.Forest.Patterns {
			continue
		}
		graph := m.Forest.Graphs[e.Graph]
		if len(graph) != len(cand.Code) {
			continue
		}
		found := true
		for i, step := range cand.Code {
			if pattern.CompareLabels(step.Labels, graph[i].Labels) != 0 {
				found = false
				break
			}
		}
		if found {
			return e.Graph
		}
	}
	return -1
}

// sweep reports, after a closed structure search, every accepted pattern
// that was not subsumed and is frequent. Only a superpattern with the same
// support subsumes: with the chain 1 2 3 in one graph and 1 2 in another,
// both 1 2 (support 2) and 1 2 3 (support 1) are reported.
func (m *Miner) sweep() {
	if !m.Config.ClosedStructures {
		return
	}
	m.Store.EachAccepted(func(c *candidates.Candidate) bool {
		if !c.Subsumed && c.PerTreeFrequency >= m.Config.Support {
			m.write(c.Code, c.PerTreeFrequency, -1)
		}
		return true
	})
}
