package miner

import (
	"sort"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/forestmine/config"
	"github.com/timtadh/forestmine/types/forest"
)

// Prepare readies a loaded dataset for mining. It repairs the configuration,
// turns relative supports into absolute ones, removes the labels outside the
// support bounds (or outside the requested label lists) from every node and
// finally places the reference patterns, if any, in front of the graphs. It
// returns the configuration to mine with.
func Prepare(conf *config.Config, f *forest.Forest, patterns *forest.Forest) *config.Config {
	c := conf.Copy()
	c.PatternSearch = patterns != nil
	c = c.Repair().Resolve(f.Size())

	counts := f.LabelCounts(c.CountUnique)
	keep := make(map[int]bool)
	for label, count := range counts {
		if c.Frequent(count) {
			keep[label] = true
		}
	}
	if len(c.OnlyLabels) > 0 {
		keep = make(map[int]bool)
		for _, label := range c.OnlyLabels {
			keep[label] = true
		}
	}
	for _, label := range c.ExcludeLabels {
		delete(keep, label)
	}
	if c.Verbose {
		labels := make([]int, 0, len(counts))
		for label := range counts {
			labels = append(labels, label)
		}
		sort.Ints(labels)
		for _, label := range labels {
			errors.Logf("INFO", "label %d: frequency %d", label, counts[label])
		}
		frequent := make([]int, 0, len(keep))
		for label := range keep {
			frequent = append(frequent, label)
		}
		sort.Ints(frequent)
		errors.Logf("INFO", "frequent labels: %v", frequent)
	}
	f.Prune(keep)
	if patterns != nil {
		f.PrependPatterns(patterns)
	}
	return c
}
