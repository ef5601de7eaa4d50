package main

/* Tim Henderson (tadh@case.edu)
*
* Copyright (c) 2015, Tim Henderson, Case Western Reserve University
* Cleveland, Ohio 44106. All Rights Reserved.
*
* This library is free software; you can redistribute it and/or modify
* it under the terms of the GNU General Public License as published by
* the Free Software Foundation; either version 3 of the License, or (at
* your option) any later version.
*
* This library is distributed in the hope that it will be useful, but
* WITHOUT ANY WARRANTY; without even the implied warranty of
* MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
* General Public License for more details.
*
* You should have received a copy of the GNU General Public License
* along with this library; if not, write to the Free Software
* Foundation, Inc.,
*   51 Franklin Street, Fifth Floor,
*   Boston, MA  02110-1301
*   USA
 */

import (
	"fmt"
	"os"
	"runtime/pprof"
	"time"
)

import (
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/forestmine/cmd"
	"github.com/timtadh/forestmine/config"
	"github.com/timtadh/forestmine/miner"
	"github.com/timtadh/forestmine/stats"
	"github.com/timtadh/forestmine/types/forest"
)

func init() {
	cmd.ExtendedMessage = `
forestmine - frequent subtree and subgraph miner

$ forestmine -i <input> -s <support> -o [Options]

Note: The input may be a regular file, a gzipped file (extension '.gz') or a
      directory whose files are read one after the other. Without -i the
      dataset is read from standard input.

Note: Supports of at least 1 are absolute graph counts, smaller values are
      relative to the number of graphs.

Note: Flags override the values of a --config file.`
}

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func fail(code string, err error) error {
	return &exitError{code: cmd.ErrorCodes[code], err: err}
}

type options struct {
	configPath string
	input      string
	patterns   string
	output     string
	sqlite     string
	metricsOut string
	cpuProfile string
	skipLog    []string
	quiet      bool
	unique     bool
	every      int
	closed     bool
	countAll   bool
	support    float64
	maxSupport float64
	only       string
	exclude    string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	conf := config.Default()
	root := &cobra.Command{
		Use:           "forestmine",
		Short:         "mine the frequent subtrees and subgraphs of a forest",
		Long:          cmd.ExtendedMessage,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(c *cobra.Command, args []string) error {
			resolved, err := configure(c, opts, conf)
			if err != nil {
				return err
			}
			return mine(opts, resolved)
		},
	}
	flags := root.Flags()
	flags.StringVar(&opts.configPath, "config", "", "YAML configuration file, flags override it")
	flags.StringVarP(&opts.input, "input", "i", "", "dataset file or directory (default standard input)")
	flags.StringVarP(&opts.patterns, "patterns", "p", "", "reference pattern file, turns on pattern search")
	flags.StringVar(&opts.output, "output", "", "write patterns to this file instead of standard output")
	flags.StringVar(&opts.sqlite, "sqlite", "", "also store the patterns of this run in a SQLite database")
	flags.StringVar(&opts.metricsOut, "metrics-out", "", "write search metrics in Prometheus text format to this file")
	flags.StringVar(&opts.cpuProfile, "cpu-profile", "", "write a cpu profile to this file")
	flags.StringSliceVar(&opts.skipLog, "skip-log", nil, "log levels to silence")
	flags.BoolVar(&opts.quiet, "quiet", false, "silence INFO logging")
	flags.BoolVar(&opts.unique, "unique", false, "report every label path at most once")
	flags.IntVar(&opts.every, "every", 1, "report only every n-th pattern")
	flags.BoolVar(&conf.KeepEmbeddings, "keep-embeddings", false, "do not reduce occurrence lists")

	flags.BoolVarP(&opts.closed, "closed", "c", false, "closed search (itemsets and structures)")
	flags.BoolVarP(&conf.ClosedItemsets, "closed-itemsets", "d", false, "closed itemset search")
	flags.BoolVarP(&conf.ClosedStructures, "closed-structures", "e", false, "closed structure search")
	flags.BoolVarP(&conf.OutputFrequency, "frequency", "f", false, "print relative frequencies")
	flags.BoolVarP(&opts.countAll, "count-all", "m", false, "count all occurrences instead of graphs")
	flags.BoolVarP(&conf.Ordered, "ordered", "O", false, "ordered search")
	flags.BoolVarP(&conf.OutputPatterns, "print", "o", false, "print the frequent patterns")
	flags.BoolVarP(&conf.Sequences, "sequences", "q", false, "sequence search")
	flags.BoolVarP(&conf.Rooted, "rooted", "r", false, "rooted search")
	flags.BoolVarP(&conf.Undirected, "undirected", "u", false, "undirected graphs")
	flags.BoolVarP(&conf.Verbose, "verbose", "v", false, "verbose")
	flags.BoolVarP(&conf.Dense, "dense", "y", false, "dense dataset")
	flags.StringVarP(&opts.only, "only-labels", "N", "", "use only these labels, e.g. 1:2:3")
	flags.StringVarP(&opts.exclude, "exclude-labels", "E", "", "exclude these labels, e.g. 1:2:3")
	flags.IntVarP(&conf.RootLabel, "root-label", "R", -1, "use only this label as the root")
	flags.Float64VarP(&opts.support, "support", "s", 1, "minimum support")
	flags.Float64VarP(&opts.maxSupport, "max-support", "x", -1, "maximum support")
	flags.IntVarP(&conf.MaxDepth, "max-depth", "D", -1, "maximum pattern size in steps")
	flags.IntVarP(&conf.MaxGap, "max-gap", "g", -1, "maximum gap between a node and its parent")
	return root
}

// configure merges the defaults, the optional configuration file and the
// flags that were given explicitly.
func configure(c *cobra.Command, opts *options, flagged *config.Config) (*config.Config, error) {
	conf := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, fail("badfile", err)
		}
		conf = loaded
	}
	changed := c.Flags().Changed
	if changed("closed-itemsets") {
		conf.ClosedItemsets = flagged.ClosedItemsets
	}
	if changed("closed-structures") {
		conf.ClosedStructures = flagged.ClosedStructures
	}
	if changed("closed") && opts.closed {
		conf.ClosedItemsets = true
		conf.ClosedStructures = true
	}
	if changed("frequency") {
		conf.OutputFrequency = flagged.OutputFrequency
	}
	if changed("count-all") {
		conf.CountUnique = !opts.countAll
	}
	if changed("ordered") {
		conf.Ordered = flagged.Ordered
	}
	if changed("print") {
		conf.OutputPatterns = flagged.OutputPatterns
	}
	if changed("sequences") {
		conf.Sequences = flagged.Sequences
	}
	if changed("rooted") {
		conf.Rooted = flagged.Rooted
	}
	if changed("undirected") {
		conf.Undirected = flagged.Undirected
	}
	if changed("verbose") {
		conf.Verbose = flagged.Verbose
	}
	if changed("dense") {
		conf.Dense = flagged.Dense
	}
	if changed("keep-embeddings") {
		conf.KeepEmbeddings = flagged.KeepEmbeddings
	}
	if changed("root-label") {
		conf.RootLabel = flagged.RootLabel
	}
	if changed("max-depth") {
		conf.MaxDepth = flagged.MaxDepth
	}
	if changed("max-gap") {
		conf.MaxGap = flagged.MaxGap
	}
	if changed("support") {
		if opts.support <= 0 {
			return nil, fail("opts", errors.Errorf("support must be > 0, got %v", opts.support))
		}
		conf.SetSupport(opts.support)
	}
	if changed("max-support") {
		if opts.maxSupport <= 0 {
			return nil, fail("opts", errors.Errorf("max support must be > 0, got %v", opts.maxSupport))
		}
		conf.SetMaxSupport(opts.maxSupport)
	}
	if changed("only-labels") {
		labels, err := cmd.ParseLabels(opts.only)
		if err != nil {
			return nil, fail("badint", err)
		}
		conf.OnlyLabels = labels
	}
	if changed("exclude-labels") {
		labels, err := cmd.ParseLabels(opts.exclude)
		if err != nil {
			return nil, fail("badint", err)
		}
		conf.ExcludeLabels = labels
	}
	if opts.every < 1 {
		return nil, fail("opts", errors.Errorf("--every must be >= 1, got %v", opts.every))
	}
	if err := conf.Validate(); err != nil {
		return nil, fail("opts", err)
	}
	return conf, nil
}

func mine(opts *options, conf *config.Config) error {
	if opts.quiet {
		errors.SkipLogging["INFO"] = true
	}
	for _, level := range opts.skipLog {
		errors.SkipLogging[level] = true
	}

	if opts.cpuProfile != "" {
		errors.Logf("DEBUG", "starting cpu profile: %v", opts.cpuProfile)
		f, err := os.Create(opts.cpuProfile)
		if err != nil {
			return fail("badfile", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return fail("error", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			err := f.Close()
			errors.Logf("DEBUG", "closed cpu profile, err: %v", err)
		}()
	}

	f, err := cmd.LoadForest(opts.input, conf.Undirected)
	if err != nil {
		return fail("load", err)
	}
	var patterns *forest.Forest
	if opts.patterns != "" {
		patterns, err = cmd.LoadPatterns(opts.patterns)
		if err != nil {
			return fail("load", err)
		}
	}

	prepared := miner.Prepare(conf, f, patterns)
	rptr, err := cmd.Reporter(cmd.Output{
		Writer: os.Stdout,
		Path:   opts.output,
		SQLite: opts.sqlite,
		Unique: opts.unique,
		Every:  opts.every,
		Log:    prepared.Verbose,
	}, prepared)
	if err != nil {
		return fail("badfile", err)
	}

	metrics := stats.NewMetrics()
	m := miner.New(prepared, f, rptr, metrics)
	m.Progress = isatty.IsTerminal(os.Stderr.Fd())

	start := time.Now()
	errors.Logf("INFO", "loaded data, about to start mining")
	mineErr := m.Mine()
	closeErr := rptr.Close()
	errors.Logf("INFO", "mined in %v, %v accepted candidates, peak worklist %v, %v",
		time.Since(start), humanize.Comma(int64(m.Store.AcceptedSize())),
		humanize.Comma(int64(m.Store.Peak())), stats.MemoryUsage())

	if opts.metricsOut != "" {
		if err := metrics.WriteFile(opts.metricsOut); err != nil {
			errors.Logf("ERROR", "could not write metrics: %v", err)
		}
	}
	if mineErr != nil {
		return fail("mine", mineErr)
	}
	if closeErr != nil {
		return fail("error", closeErr)
	}
	errors.Logf("INFO", "Done!")
	return nil
}

func run(args []string) int {
	root := newRootCmd()
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return 0
	}
	fmt.Fprintln(os.Stderr, err)
	if e, ok := err.(*exitError); ok {
		return e.code
	}
	fmt.Fprintln(os.Stderr, "Try -h or --help for help")
	return cmd.ErrorCodes["opts"]
}

func main() {
	os.Exit(run(os.Args[1:]))
}
