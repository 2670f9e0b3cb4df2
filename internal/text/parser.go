package text

import (
	"context"
	"strings"
	"time"
	"unicode"

	"golang.org/x/sync/errgroup"

	"github.com/hubenschmidt/klatt-tts/internal/g2p"
	"github.com/hubenschmidt/klatt-tts/internal/metrics"
)

const delimiters = ".,!?"

// Parser turns raw text into the ordered event stream of spec.md §4.E,
// running per-word G2P through the bound Predictor.
type Parser struct {
	Predictor *g2p.Predictor
}

// New builds a Parser bound to p.
func New(p *g2p.Predictor) *Parser {
	return &Parser{Predictor: p}
}

type wordResult struct {
	phonemes []g2p.Phoneme
	slow     bool
}

// Parse strips disallowed characters, tokenizes on sentence/clause
// punctuation, and walks the tokens in order to build the event
// stream. Per-word G2P lookups are prefetched concurrently
// (spec.md §5 ordering is preserved: only the lookups overlap, the
// walk that emits events is serial).
func (p *Parser) Parse(ctx context.Context, input string) ([]Event, error) {
	tokens := tokenize(stripDisallowed(input))
	words := collectWords(tokens)

	results, err := p.prefetch(ctx, words)
	if err != nil {
		return nil, err
	}

	var events []Event
	wordIdx := 0
	wordsSinceDelim := 0

	for _, tok := range tokens {
		if isDelimiter(tok) {
			if wordsSinceDelim > 0 {
				events = append(events, PauseEvent(PauseShortMs))
				wordsSinceDelim = 0
			}
			if tok == "," {
				events = append(events, PauseEvent(PauseCommaMs))
			} else {
				events = append(events, PauseEvent(PauseSentenceMs), BreathEvent(BreathMs))
			}
			continue
		}

		for _, w := range strings.Fields(tok) {
			res := results[wordIdx]
			wordIdx++
			for _, ph := range res.phonemes {
				events = append(events, PhonemeEvent(ph.Sym, ph.Stress, res.slow))
			}
			events = append(events, WordBoundaryEvent())
			wordsSinceDelim++
		}
	}

	events = append(events, EndOfStreamEvent(EndOfStreamMs))
	return events, nil
}

func (p *Parser) prefetch(ctx context.Context, words []string) ([]wordResult, error) {
	start := time.Now()
	defer func() { metrics.BatchDuration.WithLabelValues("g2p").Observe(time.Since(start).Seconds()) }()

	results := make([]wordResult, len(words))
	g, _ := errgroup.WithContext(ctx)
	for i, w := range words {
		i, w := i, w
		g.Go(func() error {
			phonemes, slow := p.Predictor.Predict(w)
			results[i] = wordResult{phonemes: phonemes, slow: slow}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// stripDisallowed keeps \w-equivalent characters, whitespace, the
// sentence/clause delimiters, and the RU/AR Unicode ranges.
func stripDisallowed(s string) string {
	var b strings.Builder
	for _, r := range s {
		if isAllowedRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isAllowedRune(r rune) bool {
	switch {
	case unicode.IsLetter(r), unicode.IsDigit(r), r == '_':
		return true
	case unicode.IsSpace(r):
		return true
	case strings.ContainsRune(delimiters, r):
		return true
	case r >= 0x0400 && r <= 0x04FF: // Cyrillic
		return true
	case r >= 0x0600 && r <= 0x06FF: // Arabic
		return true
	default:
		return false
	}
}

// tokenize splits s into alternating plain-text chunks and single
// delimiter-character tokens, preserving order.
func tokenize(s string) []string {
	var tokens []string
	var buf strings.Builder

	flush := func() {
		if buf.Len() > 0 {
			tokens = append(tokens, buf.String())
			buf.Reset()
		}
	}

	for _, r := range s {
		if strings.ContainsRune(delimiters, r) {
			flush()
			tokens = append(tokens, string(r))
			continue
		}
		buf.WriteRune(r)
	}
	flush()

	return tokens
}

func isDelimiter(tok string) bool {
	return len(tok) == 1 && strings.ContainsRune(delimiters, rune(tok[0]))
}

func collectWords(tokens []string) []string {
	var words []string
	for _, tok := range tokens {
		if isDelimiter(tok) {
			continue
		}
		words = append(words, strings.Fields(tok)...)
	}
	return words
}
