package stats

import (
	"fmt"
	"runtime"
)

import (
	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts what happens during one mining run. Every run owns its own
// registry.
type Metrics struct {
	Registry      *prometheus.Registry
	Extended      prometheus.Counter
	Infrequent    prometheus.Counter
	NonCanonical  prometheus.Counter
	Redundant     prometheus.Counter
	Emitted       prometheus.Counter
	Reduced       prometheus.Counter
	WorklistPeak  prometheus.Gauge
	AcceptedCount prometheus.Gauge
}

func NewMetrics() *Metrics {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "forestmine",
			Name:      name,
			Help:      help,
		})
	}
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "forestmine",
			Name:      name,
			Help:      help,
		})
	}
	m := &Metrics{
		Registry:      prometheus.NewRegistry(),
		Extended:      counter("candidates_extended_total", "Candidates popped from the worklist."),
		Infrequent:    counter("candidates_infrequent_total", "Candidates dropped below the minimum support."),
		NonCanonical:  counter("candidates_noncanonical_total", "Candidates rejected by the canonical form checks."),
		Redundant:     counter("candidates_redundant_total", "Candidates dropped as subsumed by an equal occurrence superpattern."),
		Emitted:       counter("patterns_emitted_total", "Patterns reported."),
		Reduced:       counter("embeddings_reduced_total", "Automorphic embeddings removed from occurrence lists."),
		WorklistPeak:  gauge("worklist_peak", "Deepest worklist seen."),
		AcceptedCount: gauge("accepted_patterns", "Records in the accepted store at the end of the run."),
	}
	m.Registry.MustRegister(
		m.Extended, m.Infrequent, m.NonCanonical, m.Redundant,
		m.Emitted, m.Reduced, m.WorklistPeak, m.AcceptedCount,
	)
	return m
}

// WriteFile writes the metrics in the Prometheus text format.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}

// MemoryUsage describes the heap currently in use.
func MemoryUsage() string {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return fmt.Sprintf("%v heap, %v from the os", humanize.Bytes(ms.HeapAlloc), humanize.Bytes(ms.Sys))
}
