// Package config holds the settings of one mining run. A Config is built once
// (defaults, then an optional YAML file, then command line flags) and then
// passed by pointer to every component, which only read it.
package config

import (
	"os"
)

import (
	"github.com/go-playground/validator/v10"
	"github.com/timtadh/data-structures/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Ordered          bool `yaml:"ordered"`
	OutputPatterns   bool `yaml:"output-patterns"`
	OutputFrequency  bool `yaml:"output-frequency"`
	CountUnique      bool `yaml:"count-unique"`
	ClosedItemsets   bool `yaml:"closed-itemsets"`
	ClosedStructures bool `yaml:"closed-structures"`
	Dense            bool `yaml:"dense"`
	Undirected       bool `yaml:"undirected"`
	Rooted           bool `yaml:"rooted"`
	Sequences        bool `yaml:"sequences"`
	// PatternSearch is set when a reference pattern file is given.
	PatternSearch bool `yaml:"-"`

	Support            int     `yaml:"support" validate:"gte=0"`
	RelativeSupport    float64 `yaml:"relative-support" validate:"gte=0,lt=1"`
	MaxSupport         int     `yaml:"max-support" validate:"gte=-1"`
	RelativeMaxSupport float64 `yaml:"relative-max-support" validate:"gte=0,lte=1"`

	MaxGap        int   `yaml:"max-gap" validate:"gte=-1"`
	MaxDepth      int   `yaml:"max-depth" validate:"gte=-1"`
	OnlyLabels    []int `yaml:"only-labels" validate:"dive,gte=0"`
	ExcludeLabels []int `yaml:"exclude-labels" validate:"dive,gte=0"`
	RootLabel     int   `yaml:"root-label" validate:"gte=-1"`

	// KeepEmbeddings turns the occurrence list reductions off. The output
	// is the same, only slower.
	KeepEmbeddings bool `yaml:"keep-embeddings"`

	Verbose bool `yaml:"verbose"`
}

// Default is the configuration of a plain run: absolute support 1, unique
// counting, unbounded gap, depth and max support.
func Default() *Config {
	return &Config{
		CountUnique: true,
		Support:     1,
		MaxSupport:  -1,
		MaxGap:      -1,
		MaxDepth:    -1,
		RootLabel:   -1,
	}
}

// Load reads a YAML configuration on top of the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("could not read config %v: %v", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Errorf("could not parse config %v: %v", path, err)
	}
	return c, nil
}

func (c *Config) Copy() *Config {
	cp := *c
	cp.OnlyLabels = append([]int(nil), c.OnlyLabels...)
	cp.ExcludeLabels = append([]int(nil), c.ExcludeLabels...)
	return &cp
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Errorf("invalid configuration: %v", err)
	}
	return nil
}

// SetSupport takes a support given on the command line: values of at least
// one are absolute, smaller values relative to the dataset size.
func (c *Config) SetSupport(v float64) {
	if v >= 1 {
		c.Support = int(v)
		c.RelativeSupport = 0
	} else {
		c.RelativeSupport = v
	}
}

// SetMaxSupport is SetSupport for the upper bound.
func (c *Config) SetMaxSupport(v float64) {
	if v >= 1 {
		c.MaxSupport = int(v)
		c.RelativeMaxSupport = 0
	} else {
		c.RelativeMaxSupport = v
	}
}

// Closed is true when either kind of closed pattern search is on.
func (c *Config) Closed() bool {
	return c.ClosedItemsets || c.ClosedStructures
}

// Repair resets options that cannot be combined and warns about it.
func (c *Config) Repair() *Config {
	r := c.Copy()
	if r.PatternSearch {
		if r.Support != 0 || r.RelativeSupport != 0 {
			errors.Logf("WARN", "support is always 0 when searching for patterns")
			r.Support = 0
			r.RelativeSupport = 0
		}
		if r.ClosedItemsets {
			errors.Logf("WARN", "closed itemset search is turned off when searching for patterns")
			r.ClosedItemsets = false
		}
	}
	return r
}

// Resolve turns relative supports into absolute ones for a dataset of size
// graphs.
func (c *Config) Resolve(size int) *Config {
	r := c.Copy()
	if r.RelativeSupport > 0 {
		r.Support = int(float64(size) * r.RelativeSupport)
		r.RelativeSupport = 0
		if r.Verbose {
			errors.Logf("INFO", "absolute support: %d", r.Support)
		}
	}
	if r.RelativeMaxSupport > 0 {
		r.MaxSupport = int(float64(size) * r.RelativeMaxSupport)
		r.RelativeMaxSupport = 0
		if r.Verbose {
			errors.Logf("INFO", "absolute max support: %d", r.MaxSupport)
		}
	}
	return r
}

// Frequent tells whether a count lies within the support bounds.
func (c *Config) Frequent(count int) bool {
	return count >= c.Support && (c.MaxSupport < 0 || count <= c.MaxSupport)
}
