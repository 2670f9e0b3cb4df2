package g2p

import "unicode"

// russianMap gives the fixed per-character phoneme expansion for each
// uppercase Cyrillic letter. "Ь" expands to nothing; "Ъ" emits a pause.
var russianMap = map[rune][]string{
	'А': {"AA"},
	'Б': {"B"},
	'В': {"V"},
	'Г': {"G"},
	'Д': {"D"},
	'Е': {"IY", "EH"},
	'Ё': {"IY", "AO"},
	'Ж': {"ZH"},
	'З': {"Z"},
	'И': {"IY"},
	'Й': {"Y"},
	'К': {"K"},
	'Л': {"L"},
	'М': {"M"},
	'Н': {"N"},
	'О': {"AO"},
	'П': {"P"},
	'Р': {"RR"},
	'С': {"S"},
	'Т': {"T"},
	'У': {"UW"},
	'Ф': {"F"},
	'Х': {"KH"},
	'Ц': {"T", "S"},
	'Ч': {"CH"},
	'Ш': {"SH"},
	'Щ': {"SH", "CH"},
	'Ъ': {"PAUSE"},
	'Ы': {"IH"},
	'Ь': {},
	'Э': {"EH"},
	'Ю': {"Y", "UW"},
	'Я': {"Y", "AA"},
}

// predictRussian appends the fixed mapping for each uppercased
// character of word, in order.
func predictRussian(word string) []Phoneme {
	var out []Phoneme
	for _, r := range toUpperRune(word) {
		syms, ok := russianMap[r]
		if !ok {
			continue
		}
		for _, sym := range syms {
			out = append(out, Phoneme{Sym: sym})
		}
	}
	return out
}

// toUpperRune upper-cases a string rune-by-rune.
func toUpperRune(s string) []rune {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		out = append(out, unicode.ToUpper(r))
	}
	return out
}
