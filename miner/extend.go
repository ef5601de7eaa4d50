package miner

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/forestmine/candidates"
	"github.com/timtadh/forestmine/pattern"
	"github.com/timtadh/forestmine/support"
)

// extend processes the candidate on top of the worklist: it counts its
// support, checks its canonical form, shrinks its occurrence list, does the
// closure bookkeeping, reports it and generates its one step extensions
// into the pending store. The candidate is popped before returning.
func (m *Miner) extend(cand *candidates.Candidate) {
	c := m.Config
	closed := c.Closed()
	code := cand.Code

	if c.PatternSearch && !support.Embedded(cand.Embeddings, m.Forest.Patterns) {
		m.Store.Pop(false)
		return
	}

	count := m.support(cand.Embeddings, m.Forest.Patterns)
	occurrences := len(cand.Embeddings)
	if count < c.Support {
		m.Metrics.Infrequent.Inc()
		m.Store.Pop(false)
		return
	}

	canonical := pattern.IsCanonical(code)
	cycle := pattern.Accept
	if canonical != pattern.Reject && code.Last().First() == -1 {
		cycle = pattern.IsCycleCanonical(code)
	}
	if !c.Ordered && (canonical == pattern.Reject || cycle == pattern.Reject) {
		m.Metrics.NonCanonical.Inc()
		m.Store.Pop(false)
		return
	}

	lastExtensible := true
	if !c.Ordered && canonical == pattern.Boundary {
		lastExtensible = false
		if !c.KeepEmbeddings {
			m.reduceAutomorphic(cand)
		}
	}
	if !c.KeepEmbeddings {
		m.reduceSiblings(cand)
		m.reduceRightmost(cand)
	}

	closedCandidate := false
	if c.ClosedItemsets && m.Forest.Itemsets {
		inherited := m.inheritedItemsetCount(code)
		if inherited.support > 0 && inherited.occurrences == occurrences {
			if c.ClosedStructures {
				cand.SetCounts(count, occurrences)
				cand.Subsumed = true
			}
			m.Metrics.Redundant.Inc()
			m.Store.Pop(true)
			return
		}
		if inherited.support >= count {
			closedCandidate = true
		}
	}

	if m.Forest.Itemsets && lastExtensible {
		supersets := m.extendItemset(cand)
		if c.ClosedItemsets {
			identical := false
			for _, sup := range supersets {
				if len(sup.Embeddings) == occurrences {
					identical = true
				}
				if m.support(sup.Embeddings, m.Forest.Patterns) == count {
					closedCandidate = true
					if c.ClosedStructures {
						cand.Subsumed = true
						cand.SetCounts(count, occurrences)
					}
				}
			}
			if identical {
				cand.SetCounts(count, occurrences)
				if c.ClosedStructures {
					cand.Subsumed = true
				}
				m.Metrics.Redundant.Inc()
				m.finish(closed)
				return
			}
		}
	}

	if !closedCandidate && c.ClosedStructures {
		m.markNonClosed(code, count)
		inherited := m.inheritedStructuralCount(code)
		if inherited.support >= count {
			closedCandidate = true
			if c.Verbose {
				errors.Logf("DEBUG", "closed: %v", code)
			}
		}
	}
	if closed {
		cand.SetCounts(count, occurrences)
		if closedCandidate && c.ClosedStructures {
			cand.Subsumed = true
		}
	}

	if c.OutputPatterns && !closedCandidate && !c.ClosedStructures {
		m.emit(cand, count)
	}

	m.extendStructure(cand, lastExtensible)
	m.finish(closed)
}

// finish drops the pending candidates that cannot lead to a reference
// pattern and pops the extended candidate.
func (m *Miner) finish(keep bool) {
	if m.Config.PatternSearch {
		for _, p := range m.Store.PendingCandidates() {
			if !support.Embedded(p.Embeddings, m.Forest.Patterns) {
				m.Store.RemovePending(p.Code)
			}
		}
	}
	m.Store.Pop(keep)
}
