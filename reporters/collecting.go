package reporters

import (
	"github.com/timtadh/forestmine/miner"
)

// Collector keeps every result in memory.
type Collector struct {
	Results []miner.Result
}

func (c *Collector) Report(res miner.Result) error {
	c.Results = append(c.Results, res)
	return nil
}

func (c *Collector) Lines() []string {
	lines := make([]string, 0, len(c.Results))
	for _, res := range c.Results {
		lines = append(lines, res.Line)
	}
	return lines
}

func (c *Collector) Close() error {
	return nil
}
