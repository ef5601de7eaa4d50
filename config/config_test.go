package config

import (
	"os"
	"path/filepath"
	"testing"
)

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timtadh/data-structures/errors"
)

func init() {
	errors.SkipLogging["WARN"] = true
	errors.SkipLogging["INFO"] = true
}

func TestDefault(x *testing.T) {
	t := assert.New(x)
	c := Default()
	t.True(c.CountUnique)
	t.Equal(1, c.Support)
	t.Equal(-1, c.MaxSupport)
	t.Equal(-1, c.MaxGap)
	t.Equal(-1, c.MaxDepth)
	t.Equal(-1, c.RootLabel)
	t.NoError(c.Validate())
	t.False(c.Closed())
}

func TestLoad(x *testing.T) {
	t := require.New(x)
	path := filepath.Join(x.TempDir(), "mine.yaml")
	t.NoError(os.WriteFile(path, []byte(`
support: 3
closed-structures: true
max-gap: 0
only-labels: [1, 4]
keep-embeddings: true
`), 0644))
	c, err := Load(path)
	t.NoError(err)
	t.Equal(3, c.Support)
	t.True(c.ClosedStructures)
	t.True(c.Closed())
	t.Equal(0, c.MaxGap)
	t.Equal([]int{1, 4}, c.OnlyLabels)
	t.True(c.CountUnique)
	t.Equal(-1, c.MaxDepth)
	t.True(c.KeepEmbeddings)
	t.NoError(c.Validate())

	_, err = Load(filepath.Join(x.TempDir(), "missing.yaml"))
	t.Error(err)
}

func TestValidate(x *testing.T) {
	t := assert.New(x)
	c := Default()
	c.MaxGap = -2
	t.Error(c.Validate())
	c = Default()
	c.RelativeSupport = 1.5
	t.Error(c.Validate())
	c = Default()
	c.ExcludeLabels = []int{-3}
	t.Error(c.Validate())
}

func TestSupports(x *testing.T) {
	t := assert.New(x)
	c := Default()
	c.SetSupport(0.5)
	c.SetMaxSupport(0.75)
	r := c.Resolve(10)
	t.Equal(5, r.Support)
	t.Equal(7, r.MaxSupport)
	t.Equal(0.5, c.RelativeSupport)
	t.True(r.Frequent(5))
	t.True(r.Frequent(7))
	t.False(r.Frequent(4))
	t.False(r.Frequent(8))

	c.SetSupport(3)
	t.Equal(3, c.Support)
	t.Equal(0.0, c.RelativeSupport)
	t.Equal(3, c.Resolve(10).Support)
	t.True(Default().Frequent(1000))
}

func TestRepair(x *testing.T) {
	t := assert.New(x)
	c := Default()
	c.ClosedItemsets = true
	t.Equal(c, c.Repair())
	c.PatternSearch = true
	r := c.Repair()
	t.Equal(0, r.Support)
	t.False(r.ClosedItemsets)
	t.Equal(1, c.Support)
}
