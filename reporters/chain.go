package reporters

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/forestmine/miner"
)

// Chain hands every result to each of its reporters in turn and stops at
// the first failure.
type Chain struct {
	Reporters []miner.Reporter
}

func NewChain(rptrs ...miner.Reporter) *Chain {
	return &Chain{Reporters: rptrs}
}

func (r *Chain) Report(res miner.Result) error {
	for i, rpt := range r.Reporters {
		if err := rpt.Report(res); err != nil {
			return errors.Errorf("reporter %d failed on %v: %v", i, res.Code, err)
		}
	}
	return nil
}

// Close closes every reporter, even after a failure, and returns the first
// error.
func (r *Chain) Close() error {
	var first error
	for _, rpt := range r.Reporters {
		if err := rpt.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
