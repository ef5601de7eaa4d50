package reporters

import "testing"
import "bytes"
import "github.com/stretchr/testify/assert"

import (
	"github.com/timtadh/forestmine/config"
	"github.com/timtadh/forestmine/miner"
	"github.com/timtadh/forestmine/pattern"
)

func result(line string, support int, steps ...pattern.Step) miner.Result {
	return miner.Result{
		Code:      pattern.Code(steps),
		Support:   support,
		Reference: -1,
		Line:      line,
	}
}

func TestLines(t *testing.T) {
	x := assert.New(t)
	var buf bytes.Buffer
	r := NewLines(&buf)
	x.Nil(r.Report(result("1 - 2", 2, pattern.NewStep(0, 1))))
	x.Nil(r.Report(result("1 2 - 1", 1, pattern.NewStep(0, 1), pattern.NewStep(1, 2))))
	x.Nil(r.Close())
	x.Equal("1 - 2\n1 2 - 1\n", buf.String())
}

func TestChainAndSkip(t *testing.T) {
	x := assert.New(t)
	a := &Collector{}
	b := &Collector{}
	r := NewChain(a, NewSkip(2, b))
	for _, line := range []string{"1 - 1", "2 - 1", "3 - 1", "4 - 1"} {
		x.Nil(r.Report(result(line, 1, pattern.NewStep(0, 1))))
	}
	x.Nil(r.Close())
	x.Equal([]string{"1 - 1", "2 - 1", "3 - 1", "4 - 1"}, a.Lines())
	x.Equal([]string{"2 - 1", "4 - 1"}, b.Lines())
}

func TestUnique(t *testing.T) {
	x := assert.New(t)
	c := &Collector{}
	r := NewUnique(c)
	x.Nil(r.Report(result("1 2 - 3", 3, pattern.NewStep(0, 1), pattern.NewStep(1, 2))))
	x.Nil(r.Report(result("1 2 - 3", 3, pattern.NewStep(0, 1), pattern.NewStep(1, 2))))
	x.Nil(r.Report(result("1 - 4", 4, pattern.NewStep(0, 1))))
	x.Equal([]string{"1 2 - 3", "1 - 4"}, c.Lines())
	x.Equal(1, r.duplicates)
	x.Nil(r.Close())
}

type failing struct{ closed bool }

func (f *failing) Report(miner.Result) error { return assert.AnError }

func (f *failing) Close() error {
	f.closed = true
	return assert.AnError
}

func TestChainErrors(t *testing.T) {
	x := assert.New(t)
	bad := &failing{}
	c := &Collector{}
	r := NewChain(bad, c)
	x.NotNil(r.Report(result("1 - 1", 1, pattern.NewStep(0, 1))))
	x.Equal(0, len(c.Results))
	x.Equal(assert.AnError, r.Close())
	x.True(bad.closed)
}

func TestLog(t *testing.T) {
	x := assert.New(t)
	r := NewLog("DEBUG", "pattern")
	x.Nil(r.Report(result("1 - 1", 1, pattern.NewStep(0, 1))))
	x.Equal(1, r.count)
	x.Nil(r.Close())
}

func TestSQLite(t *testing.T) {
	x := assert.New(t)
	r, err := NewSQLite(":memory:", config.Default())
	if !x.Nil(err) {
		return
	}
	x.NotEqual("", r.RunId)
	x.Nil(r.Report(result("1 - 2", 2, pattern.NewStep(0, 1))))
	x.Nil(r.Report(result("1 2 - 1", 1, pattern.NewStep(0, 1), pattern.NewStep(1, 2))))
	lines, err := r.Patterns()
	x.Nil(err)
	x.Equal([]string{"1 - 2", "1 2 - 1"}, lines)
	x.Nil(r.Close())
	x.Nil(r.Close())
}
