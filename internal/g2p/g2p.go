// Package g2p implements the grapheme-to-phoneme stage (spec.md §4.D):
// select a script-specific strategy and emit a phoneme sequence with
// stress marks and a "slow-language" hint.
package g2p

import (
	"strings"

	"github.com/hubenschmidt/klatt-tts/internal/dict"
	"github.com/hubenschmidt/klatt-tts/internal/script"
)

// Phoneme is one output unit: a symbolic phoneme name and its stress
// (0=none, 1=primary, 2=secondary).
type Phoneme struct {
	Sym    string
	Stress int
}

// Predictor runs G2P against an optional CMU dictionary for the English
// fallback path. A nil Dict forces the rule-based English fallback for
// every word (spec.md §7 G2PUnavailableResource: deterministic fallback).
type Predictor struct {
	Dict dict.Dict
}

// New creates a Predictor bound to d (may be nil).
func New(d dict.Dict) *Predictor {
	return &Predictor{Dict: d}
}

// Predict runs the script-specific strategy for word and returns its
// phoneme sequence and the slow-language hint.
func (p *Predictor) Predict(word string) ([]Phoneme, bool) {
	switch script.Detect(word) {
	case script.RU:
		return predictRussian(word), false
	case script.AR:
		return predictArabic(word), true
	default:
		return p.predictEnglish(word), false
	}
}

// predictEnglish looks up word (case-insensitively) in the CMU
// dictionary; on a miss it falls back to rule-based matching.
func (p *Predictor) predictEnglish(word string) []Phoneme {
	if p.Dict != nil {
		if pron, ok := p.Dict.Lookup(word); ok {
			return splitStress(pron)
		}
	}
	return englishFallback(strings.ToUpper(word))
}

// splitStress strips a trailing stress digit off each CMU phoneme
// symbol (vowels carry 0/1/2; consonants carry none) into a Phoneme.
func splitStress(pron []string) []Phoneme {
	out := make([]Phoneme, 0, len(pron))
	for _, p := range pron {
		sym := p
		stress := 0
		if n := len(p); n > 0 {
			last := p[n-1]
			if last >= '0' && last <= '2' {
				stress = int(last - '0')
				sym = p[:n-1]
			}
		}
		out = append(out, Phoneme{Sym: sym, Stress: stress})
	}
	return out
}
