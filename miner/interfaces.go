package miner

import (
	"github.com/timtadh/forestmine/pattern"
)

// Result is one reported pattern.
type Result struct {
	Code    pattern.Code
	Support int
	// Reference is the reference pattern graph the pattern matched in
	// pattern search mode, -1 otherwise.
	Reference int
	Line      string
}

// Reporter receives every pattern the miner outputs. The miner does not
// close its reporter.
type Reporter interface {
	Report(Result) error
	Close() error
}
