package miner_test

import "testing"
import "strings"
import "github.com/prometheus/client_golang/prometheus/testutil"
import "github.com/stretchr/testify/assert"

import (
	"github.com/timtadh/forestmine/config"
	"github.com/timtadh/forestmine/miner"
	"github.com/timtadh/forestmine/reporters"
	"github.com/timtadh/forestmine/types/forest"
)

const siblings = "0 0 5 1 2 -1 2 -1\n"

const chain = "0 0 5 1 2 3 -1 -1\n"

const twoRoots = `0 0 3 5 1 -1
1 1 3 5 2 -1
`

// the child labelled 2 is only found next to the one labelled 1 when the
// 2:3 child keeps both of its embeddings
const itemSiblings = `0 0 3 1 1:2 -1
1 1 7 1:2 1:2 -1 1 -1 2:3 -1
`

// 2(1, 3(1(3))): the two 3 nodes are on one branch
const branch = "0 0 9 2 1 -1 3 1 3 -1 -1 -1\n"

const twins = "0 0 9 1 2 3 -1 -1 2 3 -1 -1\n"

const triangle = `t # 0
v 0 1
v 1 2
v 2 3
e 0 1
e 1 2
e 2 0
`

func conf() *config.Config {
	c := config.Default()
	c.OutputPatterns = true
	return c
}

func load(t *assert.Assertions, data string, undirected bool) *forest.Forest {
	f, _, err := forest.Load(strings.NewReader(data), undirected)
	t.Nil(err)
	return f
}

func mine(t *assert.Assertions, data string, c *config.Config, patterns *forest.Forest) (*miner.Miner, []string) {
	f := load(t, data, c.Undirected)
	collector := &reporters.Collector{}
	m := miner.New(miner.Prepare(c, f, patterns), f, collector, nil)
	t.Nil(m.Mine())
	return m, collector.Lines()
}

func TestMineSiblings(x *testing.T) {
	t := assert.New(x)
	m, lines := mine(t, siblings, conf(), nil)
	t.Equal([]string{"1 - 1", "1 2 - 1", "1 2 -1 2 - 1", "2 - 1"}, lines)
	t.Equal(miner.Done, m.State())
	t.Equal(float64(4), testutil.ToFloat64(m.Metrics.Emitted))
	t.True(testutil.ToFloat64(m.Metrics.NonCanonical) == 0)
}

func TestMineQuiet(x *testing.T) {
	t := assert.New(x)
	c := conf()
	c.OutputPatterns = false
	m, lines := mine(t, siblings, c, nil)
	t.Equal(0, len(lines))
	t.Equal(float64(4), testutil.ToFloat64(m.Metrics.Extended))
}

func TestMineStates(x *testing.T) {
	t := assert.New(x)
	c := conf()
	f := load(t, siblings, false)
	collector := &reporters.Collector{}
	m := miner.New(miner.Prepare(c, f, nil), f, collector, nil)
	t.Equal(miner.Init, m.State())
	m.Init()
	t.Equal(miner.Extending, m.State())
	steps := 0
	for m.Step() {
		steps++
	}
	t.Equal(4, steps)
	t.Equal(miner.Done, m.State())
	t.False(m.Step())
	t.Equal("done", m.State().String())
}

func TestMineNothingFrequent(x *testing.T) {
	t := assert.New(x)
	c := conf()
	c.Support = 3
	m, lines := mine(t, twoRoots, c, nil)
	t.Equal(0, len(lines))
	t.Equal(miner.Done, m.State())
}

func TestMineSupport(x *testing.T) {
	t := assert.New(x)
	c := conf()
	c.Support = 2
	_, lines := mine(t, twoRoots, c, nil)
	t.Equal([]string{"5 - 2"}, lines)
}

func TestMineRelativeOutput(x *testing.T) {
	t := assert.New(x)
	c := conf()
	c.OutputFrequency = true
	_, lines := mine(t, twoRoots, c, nil)
	t.Equal([]string{"1 - 0.5", "2 - 0.5", "5 - 1", "5 1 - 0.5", "5 2 - 0.5"}, lines)
}

func TestMineLabelLists(x *testing.T) {
	t := assert.New(x)
	c := conf()
	c.ExcludeLabels = []int{1}
	_, lines := mine(t, twoRoots, c, nil)
	t.Equal([]string{"2 - 1", "5 - 2", "5 2 - 1"}, lines)

	c = conf()
	c.OnlyLabels = []int{5}
	_, lines = mine(t, twoRoots, c, nil)
	t.Equal([]string{"5 - 2"}, lines)
}

func TestMineRooted(x *testing.T) {
	t := assert.New(x)
	c := conf()
	c.Rooted = true
	_, lines := mine(t, siblings, c, nil)
	t.Equal([]string{"1 - 1", "1 2 - 1", "1 2 -1 2 - 1"}, lines)

	c = conf()
	c.RootLabel = 1
	_, lines = mine(t, siblings, c, nil)
	t.Equal([]string{"1 - 1", "1 2 - 1", "1 2 -1 2 - 1"}, lines)
}

func TestMineDense(x *testing.T) {
	t := assert.New(x)
	_, plain := mine(t, siblings, conf(), nil)
	c := conf()
	c.Dense = true
	_, dense := mine(t, siblings, c, nil)
	t.Equal(plain, dense)
}

func TestMineGapAndDepth(x *testing.T) {
	t := assert.New(x)
	_, lines := mine(t, chain, conf(), nil)
	t.Contains(lines, "1 2 3 - 1")
	t.Contains(lines, "1 3 - 1")

	c := conf()
	c.MaxGap = 0
	_, lines = mine(t, chain, c, nil)
	t.Contains(lines, "1 2 3 - 1")
	t.NotContains(lines, "1 3 - 1")

	c = conf()
	c.MaxDepth = 2
	_, lines = mine(t, chain, c, nil)
	t.Equal([]string{"1 - 1", "1 2 - 1", "1 3 - 1", "2 - 1", "2 3 - 1", "3 - 1"}, lines)
}

func TestMineClosedStructures(x *testing.T) {
	t := assert.New(x)
	c := conf()
	c.ClosedStructures = true
	data := "0 0 5 1 2 3 -1 -1\n1 1 3 1 2 -1\n"
	m, lines := mine(t, data, c, nil)
	t.Equal([]string{"1 2 - 2", "1 2 3 - 1"}, lines)
	t.Equal(float64(7), testutil.ToFloat64(m.Metrics.AcceptedCount))
}

func TestMineClosedItemsets(x *testing.T) {
	t := assert.New(x)
	c := conf()
	c.ClosedItemsets = true
	c.Support = 2
	data := "0 0 1 1:2\n1 1 1 1:2\n"
	m, lines := mine(t, data, c, nil)
	t.Equal([]string{"1:2 - 2"}, lines)
	t.Equal(float64(2), testutil.ToFloat64(m.Metrics.Redundant))
}

func TestMineTriangle(x *testing.T) {
	t := assert.New(x)
	c := conf()
	c.Undirected = true
	c.MaxGap = 0
	m, lines := mine(t, triangle, c, nil)
	t.Equal(miner.Done, m.State())
	t.Contains(lines, "1 2 3 -1:999 - 1")
	t.NotContains(lines, "2 3 1 -1:999 - 1")
	t.NotContains(lines, "3 1 2 -1:999 - 1")
	t.NotContains(lines, "2 1 3 -1:999 - 1")
	t.True(testutil.ToFloat64(m.Metrics.NonCanonical) > 0)
}

func TestMineTriangleDefaultGap(x *testing.T) {
	t := assert.New(x)
	c := conf()
	c.Undirected = true
	m, lines := mine(t, triangle, c, nil)
	t.Equal(miner.Done, m.State())
	t.Contains(lines, "1 2 3 -1:999 - 1")
	for _, loop := range []string{"1 -1:999 - 1", "2 -1:999 - 1", "1 2 -2:999 - 1", "3 2 -2:999 - 1"} {
		t.NotContains(lines, loop)
	}
}

func TestMineItemsetSiblings(x *testing.T) {
	t := assert.New(x)
	_, lines := mine(t, itemSiblings, conf(), nil)
	t.Contains(lines, "1 1 -1 2 - 1")
	t.Contains(lines, "1 1 -1 2:3 - 1")
	t.Contains(lines, "1 1 -1 2:3 -1 2 - 1")
}

func TestMineBranchIsNotSiblings(x *testing.T) {
	t := assert.New(x)
	_, lines := mine(t, branch, conf(), nil)
	t.Contains(lines, "2 1 -1 3 - 1")
	t.Contains(lines, "2 3 1 3 - 1")
	t.NotContains(lines, "2 1 -1 3 -1 3 - 1")
	t.NotContains(lines, "2 1 -1 3 3 -1 -1 -4:999 - 1")
	for _, line := range lines {
		t.NotContains(line, ":999", line)
	}
}

func TestMineClosedAreFrequent(x *testing.T) {
	t := assert.New(x)
	datasets := []string{
		"0 0 5 1 2 3 -1 -1\n1 1 3 1 2 -1\n",
		"0 0 1 1:2\n1 1 1 1:2\n",
		itemSiblings,
		twins,
	}
	modes := []func(*config.Config){
		func(c *config.Config) { c.ClosedItemsets = true },
		func(c *config.Config) { c.ClosedStructures = true },
		func(c *config.Config) { c.ClosedItemsets, c.ClosedStructures = true, true },
	}
	for _, data := range datasets {
		_, frequent := mine(t, data, conf(), nil)
		for _, mode := range modes {
			c := conf()
			mode(c)
			_, closed := mine(t, data, c, nil)
			t.NotEmpty(closed, data)
			for _, line := range closed {
				t.Contains(frequent, line, data)
			}
		}
	}
}

func TestMineReductionsKeepSupport(x *testing.T) {
	t := assert.New(x)
	datasets := []string{siblings, chain, twoRoots, itemSiblings, branch, twins}
	for _, gap := range []int{-1, 0} {
		for _, data := range datasets {
			c := conf()
			c.MaxGap = gap
			_, reduced := mine(t, data, c, nil)
			c = conf()
			c.MaxGap = gap
			c.KeepEmbeddings = true
			k, kept := mine(t, data, c, nil)
			t.Equal(kept, reduced, data)
			t.True(testutil.ToFloat64(k.Metrics.Reduced) == 0)
		}
		c := conf()
		c.Undirected = true
		c.MaxGap = gap
		_, reduced := mine(t, triangle, c, nil)
		c.KeepEmbeddings = true
		_, kept := mine(t, triangle, c, nil)
		t.Equal(kept, reduced)
	}
}

func TestMineReductionsApply(x *testing.T) {
	t := assert.New(x)
	m, _ := mine(t, twins, conf(), nil)
	t.True(testutil.ToFloat64(m.Metrics.Reduced) > 0)
}

func TestMinePatternSearch(x *testing.T) {
	t := assert.New(x)
	patterns, err := forest.LoadPatterns(strings.NewReader("1 2 - 0.5\n"))
	t.Nil(err)
	c := conf()
	c.ClosedItemsets = true
	data := "0 0 5 1 2 -1 3 -1\n"
	m, lines := mine(t, data, c, patterns)
	t.Equal([]string{"1 2 - 1 (0.5)"}, lines)
	t.True(m.Config.PatternSearch)
	t.Equal(0, m.Config.Support)
	t.False(m.Config.ClosedItemsets)
	t.False(c.PatternSearch)
}
