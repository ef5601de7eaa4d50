package cmd

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
	"compress/gzip"
	"io"
	"os"
	"path"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/forestmine/config"
	"github.com/timtadh/forestmine/miner"
	"github.com/timtadh/forestmine/reporters"
	"github.com/timtadh/forestmine/types/forest"
)

// ErrorCodes are the process exit codes of forestmine.
var ErrorCodes map[string]int = map[string]int{
	"error":   1,
	"opts":    3,
	"badint":  5,
	"badfile": 7,
	"load":    8,
	"mine":    9,
}

// ExtendedMessage is the long help text of the command.
var ExtendedMessage string

// Input opens a dataset file, a gzipped dataset file (by the .gz suffix) or
// every regular file of a directory, concatenated in name order.
func Input(inputPath string) (reader io.Reader, closeall func(), err error) {
	stat, err := os.Stat(inputPath)
	if err != nil {
		return nil, nil, err
	}
	if stat.IsDir() {
		return InputDir(inputPath)
	}
	return InputFile(inputPath)
}

func InputFile(inputPath string) (reader io.Reader, closeall func(), err error) {
	freader, err := os.Open(inputPath)
	if err != nil {
		return nil, nil, err
	}
	if strings.HasSuffix(inputPath, ".gz") {
		greader, err := gzip.NewReader(freader)
		if err != nil {
			freader.Close()
			return nil, nil, err
		}
		return greader, func() {
			greader.Close()
			freader.Close()
		}, nil
	}
	return freader, func() {
		freader.Close()
	}, nil
}

func InputDir(inputDir string) (reader io.Reader, closeall func(), err error) {
	var readers []io.Reader
	var closers []func()
	closeall = func() {
		for _, closer := range closers {
			closer()
		}
	}
	dir, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, nil, err
	}
	for _, info := range dir {
		if info.IsDir() {
			continue
		}
		creader, closer, err := InputFile(path.Join(inputDir, info.Name()))
		if err != nil {
			closeall()
			return nil, nil, err
		}
		// files are joined line wise so a missing final newline cannot
		// glue two graphs together
		readers = append(readers, creader, strings.NewReader("\n"))
		closers = append(closers, closer)
	}
	return io.MultiReader(readers...), closeall, nil
}

// ParseLabels parses a colon separated label list, as given to -N and -E.
func ParseLabels(str string) ([]int, error) {
	labels, err := forest.ParseLabels(str)
	if err != nil {
		return nil, errors.Errorf("expected labels such as 1:2:3, got '%v'", str)
	}
	return labels, nil
}

// LoadForest reads the dataset at inputPath, or standard input when the path
// is empty or "-".
func LoadForest(inputPath string, undirected bool) (*forest.Forest, error) {
	var in io.Reader = os.Stdin
	if inputPath != "" && inputPath != "-" {
		reader, closeall, err := Input(inputPath)
		if err != nil {
			return nil, err
		}
		defer closeall()
		in = reader
	}
	f, format, err := forest.Load(in, undirected)
	if err != nil {
		return nil, err
	}
	errors.Logf("INFO", "loaded %d graphs (%d nodes) in %v format", f.Size(), f.NodeCount(), format)
	return f, nil
}

func LoadPatterns(patternPath string) (*forest.Forest, error) {
	reader, closeall, err := Input(patternPath)
	if err != nil {
		return nil, err
	}
	defer closeall()
	p, err := forest.LoadPatterns(reader)
	if err != nil {
		return nil, err
	}
	errors.Logf("INFO", "loaded %d reference patterns", len(p.Graphs))
	return p, nil
}

// Output describes where mined patterns go.
type Output struct {
	Writer io.Writer
	// Path, when set, is written instead of Writer.
	Path   string
	SQLite string
	Unique bool
	Every  int
	Log    bool
}

// Reporter builds the reporter chain for out. The returned reporter must be
// closed by the caller.
func Reporter(out Output, conf *config.Config) (miner.Reporter, error) {
	var rptrs []miner.Reporter
	if out.Path != "" {
		lines, err := reporters.NewLinesFile(out.Path)
		if err != nil {
			return nil, err
		}
		rptrs = append(rptrs, lines)
	} else if out.Writer != nil {
		rptrs = append(rptrs, reporters.NewLines(out.Writer))
	}
	if out.SQLite != "" {
		db, err := reporters.NewSQLite(out.SQLite, conf)
		if err != nil {
			for _, r := range rptrs {
				r.Close()
			}
			return nil, err
		}
		rptrs = append(rptrs, db)
	}
	if out.Log {
		rptrs = append(rptrs, reporters.NewLog("DEBUG", "pattern"))
	}
	var rptr miner.Reporter = reporters.NewChain(rptrs...)
	if out.Every > 1 {
		rptr = reporters.NewSkip(out.Every, rptr)
	}
	if out.Unique {
		rptr = reporters.NewUnique(rptr)
	}
	return rptr, nil
}
