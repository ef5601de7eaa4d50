package main

import "testing"
import "os"
import "path/filepath"
import "strings"
import "github.com/stretchr/testify/assert"

import (
	"github.com/timtadh/forestmine/cmd"
)

func TestRunWritesPatterns(x *testing.T) {
	t := assert.New(x)
	dir := x.TempDir()
	input := filepath.Join(dir, "forest.txt")
	output := filepath.Join(dir, "out.txt")
	metrics := filepath.Join(dir, "metrics.prom")
	t.Nil(os.WriteFile(input, []byte("0 0 5 1 2 -1 2 -1\n"), 0644))
	code := run([]string{"-i", input, "-o", "-s", "1", "--quiet", "--output", output, "--metrics-out", metrics})
	t.Equal(0, code)
	data, err := os.ReadFile(output)
	t.Nil(err)
	t.Equal("1 - 1\n1 2 - 1\n1 2 -1 2 - 1\n2 - 1\n", string(data))
	prom, err := os.ReadFile(metrics)
	t.Nil(err)
	t.True(strings.Contains(string(prom), "forestmine_patterns_emitted_total 4"))
}

func TestRunConfigFile(x *testing.T) {
	t := assert.New(x)
	dir := x.TempDir()
	input := filepath.Join(dir, "forest.txt")
	conf := filepath.Join(dir, "conf.yaml")
	output := filepath.Join(dir, "out.txt")
	t.Nil(os.WriteFile(input, []byte("0 0 3 5 1 -1\n1 1 3 5 2 -1\n"), 0644))
	t.Nil(os.WriteFile(conf, []byte("output-patterns: true\nsupport: 2\n"), 0644))
	code := run([]string{"--config", conf, "-i", input, "--quiet", "--output", output})
	t.Equal(0, code)
	data, err := os.ReadFile(output)
	t.Nil(err)
	t.Equal("5 - 2\n", string(data))

	code = run([]string{"--config", conf, "-i", input, "-s", "0.5", "-f", "--quiet", "--output", output})
	t.Equal(0, code)
	data, err = os.ReadFile(output)
	t.Nil(err)
	t.Equal("1 - 0.5\n2 - 0.5\n5 - 1\n5 1 - 0.5\n5 2 - 0.5\n", string(data))
}

func TestRunErrors(x *testing.T) {
	t := assert.New(x)
	t.Equal(cmd.ErrorCodes["opts"], run([]string{"stray"}))
	t.Equal(cmd.ErrorCodes["opts"], run([]string{"--no-such-flag"}))
	t.Equal(cmd.ErrorCodes["opts"], run([]string{"--support=-1"}))
	t.Equal(cmd.ErrorCodes["load"], run([]string{"--quiet", "-i", filepath.Join(x.TempDir(), "missing")}))
	t.Equal(cmd.ErrorCodes["badfile"], run([]string{"--config", filepath.Join(x.TempDir(), "missing.yaml")}))
}
