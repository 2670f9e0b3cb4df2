package g2p

// fallbackRule is one entry in the ordered greedy pattern table used
// when a word is absent from the CMU dictionary.
type fallbackRule struct {
	pattern   string
	phonemes  []string
}

// fallbackRules is matched left-to-right, longest-rule-first within the
// fixed order given by spec.md §4.D. Preserved bit-exactly per the
// spec's open question: the "else T" single-letter default is almost
// certainly not intended for every unmatched consonant, but the
// reference behavior is kept unless corrected.
var fallbackRules = []fallbackRule{
	{"TION", []string{"SH", "AH", "N"}},
	{"ING", []string{"IH", "NG"}},
	{"OUS", []string{"AH", "S"}},
	{"IGHT", []string{"AY", "T"}},
	{"OUGH", []string{"OW"}},
	{"EE", []string{"IY"}},
	{"EA", []string{"IY"}},
	{"OO", []string{"UW"}},
	{"AI", []string{"EY"}},
	{"AY", []string{"EY"}},
	{"OA", []string{"OW"}},
	{"OW", []string{"OW"}},
	{"OU", []string{"AW"}},
	{"AU", []string{"AO"}},
	{"AR", []string{"AA", "R"}},
	{"SH", []string{"SH"}},
	{"CH", []string{"CH"}},
	{"TH", []string{"TH"}},
	{"PH", []string{"F"}},
	{"WH", []string{"W"}},
}

const vowels = "AEIOU"
const sameAsLetter = "STRL"

// englishFallback greedily matches upper-cased word against
// fallbackRules, then falls back per-letter: vowels -> AH, S/T/R/L ->
// themselves, anything else -> T.
func englishFallback(word string) []Phoneme {
	var out []Phoneme

	for i := 0; i < len(word); {
		matched := false
		for _, rule := range fallbackRules {
			if hasPrefixAt(word, i, rule.pattern) {
				for _, sym := range rule.phonemes {
					out = append(out, Phoneme{Sym: sym})
				}
				i += len(rule.pattern)
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		letter := word[i]
		switch {
		case containsByte(vowels, letter):
			out = append(out, Phoneme{Sym: "AH"})
		case containsByte(sameAsLetter, letter):
			out = append(out, Phoneme{Sym: string(letter)})
		default:
			out = append(out, Phoneme{Sym: "T"})
		}
		i++
	}

	return out
}

func hasPrefixAt(s string, pos int, prefix string) bool {
	if pos+len(prefix) > len(s) {
		return false
	}
	return s[pos:pos+len(prefix)] == prefix
}

func containsByte(s string, b byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return true
		}
	}
	return false
}
