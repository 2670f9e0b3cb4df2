package g2p

// Arabic diacritic and letter code points used by the rule walk.
const (
	alef        = 'ا' // U+0627
	lam         = 'ل' // U+0644
	alefMadda   = 'آ' // U+0622, precomposed ALEF WITH MADDA ABOVE
	maddaAbove  = 'ٓ'
	waw         = 'و' // U+0648
	ya          = 'ي' // U+064A
	alefMaksura = 'ى' // U+0649

	shadda    = 'ّ'
	fatha     = 'َ'
	damma     = 'ُ'
	kasra     = 'ِ'
	fathatan  = 'ً'
	dammatan  = 'ٌ'
	kasratan  = 'ٍ'

	ra = 'ر' // U+0631
)

// arabicConsonants maps each true consonant letter to its phoneme
// symbol. Matres lectionis (ا و ي ى) and diacritics are handled
// separately by the walk.
var arabicConsonants = map[rune]string{
	'ب': "B",
	'ت': "T",
	'ث': "TH",
	'ج': "JH",
	'ح': "H_AR",
	'خ': "KH",
	'د': "D",
	'ذ': "DH",
	ra:  "RR",
	'ز': "Z",
	'س': "S",
	'ش': "SH",
	'ص': "S_AR",
	'ض': "D_AR",
	'ط': "T_AR",
	'ظ': "Z_AR",
	'ع': "AIN",
	'غ': "GH",
	'ف': "F",
	'ق': "Q",
	'ك': "K",
	lam: "L",
	'م': "M",
	'ن': "N",
	'ه': "HH",
	'ة': "T",
	'ء': "Q",
	'ؤ': "Q",
	'ئ': "Q",
}

// sunLetters assimilate the definite article's lam (spec.md §4.D rule 1).
var sunLetters = map[rune]bool{
	'ت': true, 'ث': true, 'د': true, 'ذ': true, ra: true, 'ز': true,
	'س': true, 'ش': true, 'ص': true, 'ض': true, 'ط': true, 'ظ': true,
	lam: true, 'ن': true,
}

// emphaticConsonants widen a following FATHA to AA instead of AE.
var emphaticConsonants = map[rune]bool{
	'ص': true, 'ض': true, 'ط': true, 'ظ': true, 'ق': true, 'غ': true, 'خ': true,
}

var diacritics = map[rune]bool{
	shadda: true, fatha: true, damma: true, kasra: true,
	fathatan: true, dammatan: true, kasratan: true, maddaAbove: true,
}

// predictArabic runs the left-to-right rule walk of spec.md §4.D.
// slow_lang is always true for Arabic.
func predictArabic(word string) []Phoneme {
	runes := []rune(word)
	if !hasDiacritics(runes) {
		runes = insertHeuristicFathas(runes)
	}

	var out []Phoneme
	emit := func(sym string) { out = append(out, Phoneme{Sym: sym}) }

	for i := 0; i < len(runes); {
		r := runes[i]

		// Rule 1: ا ل X (X a sun letter) -> AE, skip ل, continue at X.
		if r == alef && i+2 < len(runes) && runes[i+1] == lam && sunLetters[runes[i+2]] {
			emit("AE")
			i += 2
			continue
		}

		// Rule 2: ALEF MADDA -> Q AA.
		if r == alefMadda {
			emit("Q")
			emit("AA")
			i++
			continue
		}
		if r == alef && i+1 < len(runes) && runes[i+1] == maddaAbove {
			emit("Q")
			emit("AA")
			i += 2
			continue
		}

		// Matres lectionis / bare vowel letters.
		switch r {
		case alef:
			emit("AA")
			i++
			continue
		case waw:
			emit("UW")
			i++
			continue
		case ya:
			emit("IY")
			i++
			continue
		case alefMaksura:
			emit("AA")
			i++
			continue
		}

		sym, ok := arabicConsonants[r]
		if !ok {
			// Stray diacritic with no preceding consonant, or unknown rune.
			i++
			continue
		}
		emit(sym)
		i++

		// Rule 3: SHADDA doubles the consonant.
		if i < len(runes) && runes[i] == shadda {
			emit(sym)
			i++
		}

		// Rule 4: short-vowel diacritics / nunation.
		if i >= len(runes) {
			continue
		}
		vowel := func() string {
			if emphaticConsonants[r] || r == ra {
				return "AA"
			}
			return "AE"
		}
		switch runes[i] {
		case fatha:
			emit(vowel())
			i++
		case damma:
			emit("UH")
			i++
		case kasra:
			emit("IH")
			i++
		case fathatan:
			emit(vowel())
			emit("N")
			i++
		case dammatan:
			emit("UH")
			emit("N")
			i++
		case kasratan:
			emit("IH")
			emit("N")
			i++
		}
	}

	return out
}

func hasDiacritics(runes []rune) bool {
	for _, r := range runes {
		if diacritics[r] {
			return true
		}
	}
	return false
}

// insertHeuristicFathas inserts a FATHA between every adjacent pair of
// true consonants (spec.md §4.D rule 6), used only when the input
// carries no diacritics of its own. The definite article's lam (ا ل)
// directly before a sun letter is left bare so rule 1 still matches.
func insertHeuristicFathas(runes []rune) []rune {
	out := make([]rune, 0, len(runes)*2)
	for i, r := range runes {
		out = append(out, r)
		if i+1 >= len(runes) {
			continue
		}
		next := runes[i+1]
		articleLam := r == lam && i > 0 && runes[i-1] == alef && sunLetters[next]
		if isBareConsonant(r) && isBareConsonant(next) && !articleLam {
			out = append(out, fatha)
		}
	}
	return out
}

func isBareConsonant(r rune) bool {
	_, ok := arabicConsonants[r]
	return ok
}
