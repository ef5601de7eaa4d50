package miner

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/forestmine/candidates"
	"github.com/timtadh/forestmine/pattern"
)

type counts struct {
	support     int
	occurrences int
}

func (c *counts) max(cand *candidates.Candidate) {
	if cand.PerTreeFrequency > c.support {
		c.support = cand.PerTreeFrequency
	}
	if cand.Occurrences > c.occurrences {
		c.occurrences = cand.Occurrences
	}
}

// inheritedItemsetCount is the largest support and occurrence count among
// the accepted patterns with the shape of code and larger label sets.
func (m *Miner) inheritedItemsetCount(code pattern.Code) counts {
	var inherited counts
	m.Store.EachAccepted(func(c *candidates.Candidate) bool {
		if pattern.IsSubSequence(code, c.Code) {
			inherited.max(c)
		}
		return true
	})
	return inherited
}

// markNonClosed marks every accepted pattern obtained by deleting one step
// of code, and having the support of code, as subsumed by code.
func (m *Miner) markNonClosed(code pattern.Code, support int) {
	if len(code) == 1 {
		return
	}
	for i := range code {
		sub, ok := pattern.Delete(code, i)
		if !ok {
			continue
		}
		c, has := m.Store.Accepted(sub)
		if has && c.PerTreeFrequency == support {
			if m.Config.Verbose {
				errors.Logf("DEBUG", "removing closed %v", c.Code)
			}
			c.Subsumed = true
		}
	}
}

// inheritedStructuralCount is the largest support and occurrence count among
// the accepted patterns that give code when one of their steps is deleted.
func (m *Miner) inheritedStructuralCount(code pattern.Code) counts {
	var inherited counts
	m.Store.EachAccepted(func(c *candidates.Candidate) bool {
		if len(c.Code) != len(code)+1 {
			return true
		}
		for i := range c.Code {
			sub, ok := pattern.Delete(c.Code, i)
			if ok && pattern.Compare(sub, code) == 0 {
				inherited.max(c)
			}
		}
		return true
	})
	return inherited
}
