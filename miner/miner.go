// Package miner enumerates the frequent patterns of a forest. Candidates are
// grown one step at a time from a worklist used as a stack, so the search is
// depth first and only one chain of ancestor candidates is open at a time.
package miner

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/data-structures/exc"
)

import (
	"github.com/timtadh/forestmine/candidates"
	"github.com/timtadh/forestmine/config"
	"github.com/timtadh/forestmine/stats"
	"github.com/timtadh/forestmine/support"
	"github.com/timtadh/forestmine/types/forest"
)

type State int

const (
	Init State = iota
	Extending
	Done
)

func (s State) String() string {
	switch s {
	case Init:
		return "init"
	case Extending:
		return "extending"
	case Done:
		return "done"
	}
	return "unknown"
}

type Miner struct {
	Config  *config.Config
	Forest  *forest.Forest
	Store   *candidates.Store
	Metrics *stats.Metrics
	// Progress turns on a periodic progress log line.
	Progress bool

	report   Reporter
	support  support.Counter
	state    State
	extended int
}

// New builds a miner over a prepared forest (see Prepare) with the
// configuration Prepare returned.
func New(conf *config.Config, f *forest.Forest, rpt Reporter, metrics *stats.Metrics) *Miner {
	if metrics == nil {
		metrics = stats.NewMetrics()
	}
	return &Miner{
		Config:  conf,
		Forest:  f,
		Store:   candidates.NewStore(),
		Metrics: metrics,
		report:  rpt,
		support: support.For(conf.CountUnique),
		state:   Init,
	}
}

func (m *Miner) State() State {
	return m.state
}

// Mine runs the search to completion. Internal errors abort the run and are
// returned.
func (m *Miner) Mine() error {
	return exc.Try(func() {
		m.Init()
		for m.Step() {
		}
		m.sweep()
		m.Metrics.AcceptedCount.Set(float64(m.Store.AcceptedSize()))
	}).Error()
}

// Init seeds the single node candidates and keeps the frequent ones.
func (m *Miner) Init() {
	if m.state != Init {
		return
	}
	m.seed()
	survived := m.Store.FilterFrequent(func(c *candidates.Candidate) bool {
		if m.support(c.Embeddings, m.Forest.Patterns) >= m.Config.Support {
			return true
		}
		m.Metrics.Infrequent.Inc()
		return false
	})
	m.Metrics.WorklistPeak.Set(float64(m.Store.Peak()))
	if survived {
		m.state = Extending
	} else {
		m.state = Done
	}
}

// Step extends the candidate on top of the worklist and commits the
// candidates it produced. It returns false once the worklist is empty.
func (m *Miner) Step() bool {
	if m.state == Init {
		m.Init()
	}
	if m.state == Done {
		return false
	}
	top := m.Store.Top()
	if top == nil {
		m.state = Done
		return false
	}
	if m.Config.Verbose {
		errors.Logf("INFO", "candidates: %d (%v)", m.Store.AcceptedSize(), stats.MemoryUsage())
	}
	m.extended++
	m.Metrics.Extended.Inc()
	if m.Progress && m.extended%10000 == 0 {
		errors.Logf("INFO", "extended %d candidates, worklist %d, %v", m.extended, m.Store.Len(), stats.MemoryUsage())
	}
	m.extend(top)
	m.Store.CommitPending()
	m.Metrics.WorklistPeak.Set(float64(m.Store.Peak()))
	return true
}
