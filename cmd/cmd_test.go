package cmd

import "testing"
import "bytes"
import "compress/gzip"
import "io"
import "os"
import "path/filepath"
import "github.com/stretchr/testify/assert"

import (
	"github.com/timtadh/forestmine/config"
	"github.com/timtadh/forestmine/miner"
	"github.com/timtadh/forestmine/pattern"
)

func write(t *assert.Assertions, path, content string) {
	t.Nil(os.WriteFile(path, []byte(content), 0644))
}

func TestInputPlainGzipAndDir(x *testing.T) {
	t := assert.New(x)
	dir := x.TempDir()
	write(t, filepath.Join(dir, "a.txt"), "0 0 1 1")
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte("1 1 1 2\n"))
	t.Nil(err)
	t.Nil(gz.Close())
	write(t, filepath.Join(dir, "b.gz"), buf.String())

	r, closeall, err := Input(filepath.Join(dir, "b.gz"))
	t.Nil(err)
	data, err := io.ReadAll(r)
	t.Nil(err)
	closeall()
	t.Equal("1 1 1 2\n", string(data))

	r, closeall, err = Input(dir)
	t.Nil(err)
	data, err = io.ReadAll(r)
	t.Nil(err)
	closeall()
	t.Equal("0 0 1 1\n1 1 1 2\n\n", string(data))

	_, _, err = Input(filepath.Join(dir, "missing"))
	t.NotNil(err)
}

func TestLoadForestDir(x *testing.T) {
	t := assert.New(x)
	dir := x.TempDir()
	write(t, filepath.Join(dir, "a.txt"), "0 0 3 1 2 -1")
	write(t, filepath.Join(dir, "b.txt"), "1 1 1 2\n")
	f, err := LoadForest(dir, false)
	t.Nil(err)
	t.Equal(2, f.Size())
}

func TestLoadPatterns(x *testing.T) {
	t := assert.New(x)
	path := filepath.Join(x.TempDir(), "patterns")
	write(t, path, "1 2 - 0.5\n3 - 1\n")
	p, err := LoadPatterns(path)
	t.Nil(err)
	t.Equal(2, len(p.Graphs))
	t.Equal([]float64{0.5, 1}, p.PatternFrequencies)
}

func TestParseLabels(x *testing.T) {
	t := assert.New(x)
	labels, err := ParseLabels("3:1:2")
	t.Nil(err)
	t.Equal([]int{1, 2, 3}, labels)
	_, err = ParseLabels("1:x")
	t.NotNil(err)
}

func TestReporter(x *testing.T) {
	t := assert.New(x)
	dir := x.TempDir()
	out := filepath.Join(dir, "patterns.txt")
	rptr, err := Reporter(Output{
		Path:   out,
		SQLite: filepath.Join(dir, "runs.db"),
		Unique: true,
	}, config.Default())
	if !t.Nil(err) {
		return
	}
	res := miner.Result{Code: pattern.Code{pattern.NewStep(0, 1)}, Support: 2, Reference: -1, Line: "1 - 2"}
	t.Nil(rptr.Report(res))
	t.Nil(rptr.Report(res))
	t.Nil(rptr.Close())
	data, err := os.ReadFile(out)
	t.Nil(err)
	t.Equal("1 - 2\n", string(data))
}
