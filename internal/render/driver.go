// Package render implements the render driver (spec.md §4.H): it
// batches the parser's event stream on natural break-points, runs the
// prosody generator and synthesizer over each batch, post-filters and
// normalizes the result, and pushes PCM to an audio sink.
package render

import (
	"context"
	"fmt"
	"time"

	"github.com/hubenschmidt/klatt-tts/internal/metrics"
	"github.com/hubenschmidt/klatt-tts/internal/prosody"
	"github.com/hubenschmidt/klatt-tts/internal/synth"
	"github.com/hubenschmidt/klatt-tts/internal/text"
)

var eventKindNames = map[text.Kind]string{
	text.KindPhoneme:      "phoneme",
	text.KindWordBoundary: "word_boundary",
	text.KindPause:        "pause",
	text.KindBreath:       "breath",
	text.KindEndOfStream:  "end_of_stream",
}

// Sink is the abstract audio output of spec.md §6: a mono, 32-bit-float
// stream at 48kHz accepting arbitrary-length contiguous frame buffers.
type Sink interface {
	WriteBlock(samples []float32) error
	Close() error
}

// flushThreshold is the buffer.len above which a WordBoundary also
// forces a flush (spec.md §4.H).
const flushThreshold = 15

// Driver batches an event stream into synthesis units and drives one
// utterance end to end: parser events in, PCM blocks out.
type Driver struct {
	Generator *prosody.Generator
	Synth     *synth.Synth
	Sink      Sink

	OnBatch func(batchLen int) // optional telemetry hook
}

// New returns a Driver wired to a generator, synthesizer, and sink. If
// the generator has no unknown-phoneme hook, one is installed that
// counts skipped symbols in metrics.UnknownPhonemeTotal.
func New(gen *prosody.Generator, syn *synth.Synth, sink Sink) *Driver {
	if gen.OnUnknownPhoneme == nil {
		gen.OnUnknownPhoneme = func(string) { metrics.UnknownPhonemeTotal.Inc() }
	}
	return &Driver{Generator: gen, Synth: syn, Sink: sink}
}

// Speak drives one `speak` invocation: resets synth filter state, then
// batches and renders the full event stream, closing the sink when
// done (spec.md §6, §4.H). The sink is closed exactly once, even on
// error, so a failed write leaves nothing dangling.
func (d *Driver) Speak(ctx context.Context, events []text.Event) error {
	d.Synth.ResetFilters()

	var buf []text.Event
	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		if err := d.renderBatch(buf); err != nil {
			return err
		}
		if d.OnBatch != nil {
			d.OnBatch(len(buf))
		}
		buf = buf[:0]
		return nil
	}

	for _, ev := range events {
		select {
		case <-ctx.Done():
			_ = d.Sink.Close()
			return ctx.Err()
		default:
		}

		buf = append(buf, ev)
		metrics.EventsTotal.WithLabelValues(eventKindNames[ev.Kind]).Inc()

		mandatory := ev.Kind == text.KindPause || ev.Kind == text.KindBreath || ev.Kind == text.KindEndOfStream
		wordBoundaryOverflow := ev.Kind == text.KindWordBoundary && len(buf) > flushThreshold

		if mandatory || wordBoundaryOverflow {
			if err := flush(); err != nil {
				_ = d.Sink.Close()
				return err
			}
		}
	}

	if err := flush(); err != nil {
		_ = d.Sink.Close()
		return err
	}

	return d.Sink.Close()
}

func (d *Driver) renderBatch(events []text.Event) error {
	metrics.BatchesTotal.Inc()

	prosodyStart := time.Now()
	tracks := d.Generator.Generate(events)
	metrics.BatchDuration.WithLabelValues("prosody").Observe(time.Since(prosodyStart).Seconds())

	dspStart := time.Now()
	raw := d.Synth.RenderBatch(tracks)
	filtered := postFilter(raw)
	metrics.BatchDuration.WithLabelValues("dsp").Observe(time.Since(dspStart).Seconds())

	samples := make([]float32, len(filtered))
	for i, v := range filtered {
		samples[i] = float32(v)
	}

	if err := d.Sink.WriteBlock(samples); err != nil {
		return fmt.Errorf("audio sink write failed: %w", err)
	}
	metrics.SamplesRenderedTotal.Add(float64(len(samples)))
	return nil
}
