package reporters

import (
	"bufio"
	"io"
	"os"
)

import (
	"github.com/timtadh/forestmine/miner"
)

// Lines writes one result line per pattern.
type Lines struct {
	w      *bufio.Writer
	closer io.Closer
}

// NewLines writes to w. It flushes but never closes w.
func NewLines(w io.Writer) *Lines {
	return &Lines{w: bufio.NewWriter(w)}
}

// NewLinesFile creates (or truncates) path and writes to it.
func NewLinesFile(path string) (*Lines, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &Lines{w: bufio.NewWriter(f), closer: f}, nil
}

func (r *Lines) Report(res miner.Result) error {
	if _, err := r.w.WriteString(res.Line); err != nil {
		return err
	}
	return r.w.WriteByte('\n')
}

func (r *Lines) Close() error {
	if err := r.w.Flush(); err != nil {
		return err
	}
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}
