package reporters

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/forestmine/miner"
)

// Skip forwards only every Every-th result, thinning large outputs.
type Skip struct {
	Every    int
	Reporter miner.Reporter
	seen     int
	dropped  int
}

func NewSkip(every int, rptr miner.Reporter) *Skip {
	return &Skip{Every: every, Reporter: rptr}
}

func (r *Skip) Report(res miner.Result) error {
	r.seen++
	if r.Every > 1 && r.seen%r.Every != 0 {
		r.dropped++
		return nil
	}
	return r.Reporter.Report(res)
}

func (r *Skip) Close() error {
	if r.dropped > 0 {
		errors.Logf("INFO", "skipped %d of %d patterns", r.dropped, r.seen)
	}
	return r.Reporter.Close()
}
