package candidates

import (
	"github.com/timtadh/data-structures/exc"
	"github.com/timtadh/data-structures/tree/avl"
)

import (
	"github.com/timtadh/forestmine/pattern"
)

// Store owns every candidate record. Pending holds the candidates of the
// running extension round, accepted every pattern that was ever committed.
// Both are ordered by pattern.Compare. The worklist is a stack over
// accepted records.
type Store struct {
	pending  *avl.AvlTree
	accepted *avl.AvlTree
	worklist []*Candidate
	peak     int
}

func NewStore() *Store {
	return &Store{
		pending:  avl.NewAvlTree(),
		accepted: avl.NewAvlTree(),
	}
}

// AddStep seeds the single step candidate for label with an occurrence at
// node of graph.
func (s *Store) AddStep(graph, label, node int) {
	code := pattern.Code{pattern.NewStep(0, label)}
	s.AddEmbedding(code, Embedding{Graph: graph, Path: []int{node}})
}

// AddEmbedding appends emb to the pending candidate for code, creating the
// candidate when needed.
func (s *Store) AddEmbedding(code pattern.Code, emb Embedding) *Candidate {
	c := s.Pending(code)
	c.Embeddings = append(c.Embeddings, emb)
	return c
}

// Pending returns the pending candidate for code, creating it when absent.
func (s *Store) Pending(code pattern.Code) *Candidate {
	if v, err := s.pending.Get(code); err == nil && v != nil {
		return v.(*Candidate)
	}
	c := NewCandidate(code)
	if err := s.pending.Put(code, c); err != nil {
		exc.ThrowOnError(err)
	}
	return c
}

func (s *Store) PendingSize() int {
	return s.pending.Size()
}

// PendingCandidates lists the pending candidates in code order.
func (s *Store) PendingCandidates() []*Candidate {
	list := make([]*Candidate, 0, s.pending.Size())
	for v, next := s.pending.Values()(); next != nil; v, next = next() {
		list = append(list, v.(*Candidate))
	}
	return list
}

// RemovePending discards the pending candidate for code.
func (s *Store) RemovePending(code pattern.Code) {
	if s.pending.Has(code) {
		if _, err := s.pending.Remove(code); err != nil {
			exc.ThrowOnError(err)
		}
	}
}

// CommitPending moves every pending candidate into the accepted store and
// onto the worklist so that the smallest code ends on top. Codes already
// accepted in an earlier round are not pushed again. It returns the number
// of candidates pushed.
func (s *Store) CommitPending() int {
	pending := s.PendingCandidates()
	s.pending = avl.NewAvlTree()
	pushed := 0
	for i := len(pending) - 1; i >= 0; i-- {
		c := pending[i]
		if s.accepted.Has(c.Code) {
			continue
		}
		if err := s.accepted.Put(c.Code, c); err != nil {
			exc.ThrowOnError(err)
		}
		s.worklist = append(s.worklist, c)
		pushed++
	}
	if len(s.worklist) > s.peak {
		s.peak = len(s.worklist)
	}
	return pushed
}

// Top is the candidate to extend next, nil when the worklist is empty.
func (s *Store) Top() *Candidate {
	if len(s.worklist) == 0 {
		return nil
	}
	return s.worklist[len(s.worklist)-1]
}

// Pop removes the top of the worklist. With keep the accepted record stays
// (without its embeddings) for later closure lookups, otherwise it is
// deleted.
func (s *Store) Pop(keep bool) {
	if len(s.worklist) == 0 {
		exc.Throwf("pop on an empty worklist")
	}
	top := s.worklist[len(s.worklist)-1]
	s.worklist[len(s.worklist)-1] = nil
	s.worklist = s.worklist[:len(s.worklist)-1]
	if keep {
		top.Embeddings = nil
		return
	}
	if s.accepted.Has(top.Code) {
		if _, err := s.accepted.Remove(top.Code); err != nil {
			exc.ThrowOnError(err)
		}
	}
}

// Len is the depth of the worklist.
func (s *Store) Len() int {
	return len(s.worklist)
}

// Peak is the deepest the worklist has been.
func (s *Store) Peak() int {
	return s.peak
}

// Accepted looks up the accepted record of code.
func (s *Store) Accepted(code pattern.Code) (*Candidate, bool) {
	v, err := s.accepted.Get(code)
	if err != nil || v == nil {
		return nil, false
	}
	return v.(*Candidate), true
}

func (s *Store) AcceptedSize() int {
	return s.accepted.Size()
}

// EachAccepted visits the accepted records in code order until do returns
// false.
func (s *Store) EachAccepted(do func(*Candidate) bool) {
	for v, next := s.accepted.Values()(); next != nil; v, next = next() {
		if !do(v.(*Candidate)) {
			return
		}
	}
}

// FilterFrequent drops every accepted record (and its worklist entry) for
// which frequent is false. It reports whether any candidate is left to
// extend.
func (s *Store) FilterFrequent(frequent func(*Candidate) bool) bool {
	var drop []*Candidate
	s.EachAccepted(func(c *Candidate) bool {
		if !frequent(c) {
			drop = append(drop, c)
		}
		return true
	})
	for _, c := range drop {
		if _, err := s.accepted.Remove(c.Code); err != nil {
			exc.ThrowOnError(err)
		}
	}
	kept := s.worklist[:0]
	for _, c := range s.worklist {
		if s.accepted.Has(c.Code) {
			kept = append(kept, c)
		}
	}
	for i := len(kept); i < len(s.worklist); i++ {
		s.worklist[i] = nil
	}
	s.worklist = kept
	return len(s.worklist) > 0
}
