package text

import (
	"context"
	"testing"

	"github.com/hubenschmidt/klatt-tts/internal/g2p"
)

func TestParseEmitsPhonemesAndWordBoundary(t *testing.T) {
	p := New(g2p.New(map[string][][]string{
		"hi": {{"HH", "AY1"}},
	}))

	events, err := p.Parse(context.Background(), "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Kind{KindPhoneme, KindPhoneme, KindWordBoundary, KindEndOfStream}
	assertKinds(t, events, want)

	if events[0].Sym != "HH" || events[1].Sym != "AY" || events[1].Stress != 1 {
		t.Fatalf("unexpected phoneme events: %+v", events[:2])
	}
	if events[3].Ms != EndOfStreamMs {
		t.Fatalf("expected EndOfStream ms %d, got %d", EndOfStreamMs, events[3].Ms)
	}
}

func TestParseInjectsShortPauseBeforeDelimiter(t *testing.T) {
	p := New(g2p.New(nil))

	events, err := p.Parse(context.Background(), "a b.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sawShortPause, sawSentencePause, sawBreath bool
	for _, e := range events {
		if e.Kind == KindPause && e.Ms == PauseShortMs {
			sawShortPause = true
		}
		if e.Kind == KindPause && e.Ms == PauseSentenceMs {
			sawSentencePause = true
		}
		if e.Kind == KindBreath {
			sawBreath = true
		}
	}
	if !sawShortPause {
		t.Fatalf("expected a short pause before the delimiter: %+v", events)
	}
	if !sawSentencePause || !sawBreath {
		t.Fatalf("expected sentence pause + breath after '.': %+v", events)
	}
}

func TestParseCommaEmitsMediumPauseOnly(t *testing.T) {
	p := New(g2p.New(nil))

	events, err := p.Parse(context.Background(), "a,")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, e := range events {
		if e.Kind == KindBreath {
			t.Fatalf("comma must not emit a breath: %+v", events)
		}
	}

	var sawComma bool
	for _, e := range events {
		if e.Kind == KindPause && e.Ms == PauseCommaMs {
			sawComma = true
		}
	}
	if !sawComma {
		t.Fatalf("expected a comma pause: %+v", events)
	}
}

func TestParseAlwaysTerminatesWithEndOfStream(t *testing.T) {
	p := New(g2p.New(nil))

	events, err := p.Parse(context.Background(), "hello, world!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := events[len(events)-1]
	if last.Kind != KindEndOfStream || last.Ms != EndOfStreamMs {
		t.Fatalf("expected trailing EndOfStream, got %+v", last)
	}
}

func TestParseStripsDisallowedCharacters(t *testing.T) {
	p := New(g2p.New(nil))

	events, err := p.Parse(context.Background(), "a#$%b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	boundaries := 0
	for _, e := range events {
		if e.Kind == KindWordBoundary {
			boundaries++
		}
	}
	if boundaries != 1 {
		t.Fatalf("expected the stripped symbols to merge 'a' and 'b' into one word, got %d boundaries", boundaries)
	}
}

func assertKinds(t *testing.T, events []Event, want []Kind) {
	t.Helper()
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(events), len(want), events)
	}
	for i, e := range events {
		if e.Kind != want[i] {
			t.Fatalf("event %d: got kind %v, want %v", i, e.Kind, want[i])
		}
	}
}
