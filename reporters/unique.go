package reporters

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/data-structures/set"
	"github.com/timtadh/data-structures/types"
)

import (
	"github.com/timtadh/forestmine/miner"
	"github.com/timtadh/forestmine/pattern"
)

// Unique forwards a result only the first time its label path is seen.
type Unique struct {
	Reporter   miner.Reporter
	paths      *set.SortedSet
	duplicates int
}

func NewUnique(rptr miner.Reporter) *Unique {
	return &Unique{
		Reporter: rptr,
		paths:    set.NewSortedSet(64),
	}
}

func (r *Unique) Report(res miner.Result) error {
	path := types.String(pattern.Label(res.Code))
	if r.paths.Has(path) {
		r.duplicates++
		return nil
	}
	if err := r.paths.Add(path); err != nil {
		return err
	}
	return r.Reporter.Report(res)
}

func (r *Unique) Close() error {
	if r.duplicates > 0 {
		errors.Logf("DEBUG", "dropped %d repeated label paths", r.duplicates)
	}
	return r.Reporter.Close()
}
