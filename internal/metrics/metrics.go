// Package metrics exposes Prometheus counters and histograms for the
// synthesizer pipeline, renamed from the teacher's call-pipeline
// metrics to the acoustic domain (spec.md §4.L expansion).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BatchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "synth_batches_total",
		Help: "Total render-driver batches flushed",
	})

	BatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "synth_batch_duration_seconds",
		Help:    "Per-stage latency for one batch (g2p, prosody, dsp)",
		Buckets: []float64{0.0005, 0.001, 0.002, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2},
	}, []string{"stage"})

	EventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "synth_events_total",
		Help: "Event-stream events processed, by kind",
	}, []string{"kind"})

	UnknownPhonemeTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "synth_unknown_phoneme_total",
		Help: "Phoneme symbols not found in the phoneme table, silently skipped",
	})

	SamplesRenderedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "synth_samples_rendered_total",
		Help: "Total PCM samples rendered across all batches",
	})
)
