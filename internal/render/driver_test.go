package render

import (
	"context"
	"math"
	"testing"

	"github.com/hubenschmidt/klatt-tts/internal/prosody"
	"github.com/hubenschmidt/klatt-tts/internal/synth"
	"github.com/hubenschmidt/klatt-tts/internal/text"
	"github.com/hubenschmidt/klatt-tts/internal/voice"
)

type fakeSink struct {
	blocks [][]float32
	closed bool
}

func (f *fakeSink) WriteBlock(samples []float32) error {
	cp := make([]float32, len(samples))
	copy(cp, samples)
	f.blocks = append(f.blocks, cp)
	return nil
}

func (f *fakeSink) Close() error {
	f.closed = true
	return nil
}

func neutralVoice() voice.Profile {
	return voice.Profile{Name: "t", BasePitch: 120, FormantScale: 1, DurationScale: 1, NoiseLevel: 0.3}
}

func TestSpeakClosesSinkOnCompletion(t *testing.T) {
	v := neutralVoice()
	sink := &fakeSink{}
	d := New(prosody.NewGenerator(v), synth.New(v), sink)

	events := []text.Event{
		text.PhonemeEvent("HH", 0, false),
		text.PhonemeEvent("AY", 0, false),
		text.WordBoundaryEvent(),
		text.EndOfStreamEvent(text.EndOfStreamMs),
	}
	if err := d.Speak(context.Background(), events); err != nil {
		t.Fatalf("Speak returned error: %v", err)
	}
	if !sink.closed {
		t.Fatal("expected sink to be closed after Speak completes")
	}
}

func TestSpeakFlushesOnEveryMandatoryBreak(t *testing.T) {
	v := neutralVoice()
	sink := &fakeSink{}
	d := New(prosody.NewGenerator(v), synth.New(v), sink)

	events := []text.Event{
		text.PhonemeEvent("HH", 0, false),
		text.WordBoundaryEvent(),
		text.PauseEvent(text.PauseShortMs),
		text.PhonemeEvent("W", 0, false),
		text.PauseEvent(text.PauseSentenceMs),
		text.BreathEvent(text.BreathMs),
		text.EndOfStreamEvent(text.EndOfStreamMs),
	}
	if err := d.Speak(context.Background(), events); err != nil {
		t.Fatalf("Speak returned error: %v", err)
	}

	// Mandatory breaks: Pause, Pause, Breath, EndOfStream = 4 flushes.
	if len(sink.blocks) != 4 {
		t.Fatalf("got %d flushed blocks, want 4", len(sink.blocks))
	}
}

func TestSpeakFlushesOnWordBoundaryOverflow(t *testing.T) {
	v := neutralVoice()
	sink := &fakeSink{}
	d := New(prosody.NewGenerator(v), synth.New(v), sink)

	var events []text.Event
	for i := 0; i < 20; i++ {
		events = append(events, text.PhonemeEvent("AH", 0, false))
	}
	events = append(events, text.WordBoundaryEvent())
	events = append(events, text.EndOfStreamEvent(text.EndOfStreamMs))

	if err := d.Speak(context.Background(), events); err != nil {
		t.Fatalf("Speak returned error: %v", err)
	}
	// One flush from the WordBoundary overflow (buffer.len > 15), one
	// from the terminal EndOfStream.
	if len(sink.blocks) != 2 {
		t.Fatalf("got %d flushed blocks, want 2", len(sink.blocks))
	}
}

func TestSpeakEmptyInputYieldsNoBlocksAndClosesCleanly(t *testing.T) {
	v := neutralVoice()
	sink := &fakeSink{}
	d := New(prosody.NewGenerator(v), synth.New(v), sink)

	if err := d.Speak(context.Background(), nil); err != nil {
		t.Fatalf("Speak returned error: %v", err)
	}
	if !sink.closed {
		t.Fatal("expected sink to be closed even with no events")
	}
	if len(sink.blocks) != 0 {
		t.Fatalf("expected zero blocks for empty event slice, got %d", len(sink.blocks))
	}
}

func TestSpeakProducesBoundedPCM(t *testing.T) {
	v := neutralVoice()
	sink := &fakeSink{}
	d := New(prosody.NewGenerator(v), synth.New(v), sink)

	events := []text.Event{
		text.PhonemeEvent("T", 0, false),
		text.PhonemeEvent("AA", 1, false),
		text.PhonemeEvent("P", 0, false),
		text.WordBoundaryEvent(),
		text.EndOfStreamEvent(text.EndOfStreamMs),
	}
	if err := d.Speak(context.Background(), events); err != nil {
		t.Fatalf("Speak returned error: %v", err)
	}

	for _, block := range sink.blocks {
		for _, v := range block {
			f := float64(v)
			if math.IsNaN(f) || math.IsInf(f, 0) {
				t.Fatalf("sample is non-finite: %v", f)
			}
			if f < -1.0001 || f > 1.0001 {
				t.Fatalf("sample %v outside [-1,1]", f)
			}
		}
	}
}
