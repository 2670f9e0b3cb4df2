// Package phoneme holds the static, process-wide phoneme and plosive
// tables consumed by the prosody and synthesis stages. Nothing here is
// mutated after init: every exported map is a read-only reference table.
package phoneme

import "math"

// Type classifies a phoneme entry for prosody and amplitude shaping.
type Type int

const (
	Vowel Type = iota
	Fricative
	Stop
	Pause
	VoicedFricative
	Glide
	VowelLike
)

// Entry is one row of the phoneme table: base duration, four formant
// targets (zero where not applicable), nominal gain in dB, and type.
//
// Invariant: Stop entries carry no formants — they render from the
// matching Plosive entry instead. Pause entries carry only BaseDurMs.
type Entry struct {
	BaseDurMs float64
	F1, F2, F3, F4 float64
	GainDB    float64
	Kind      Type
}

// GainLin returns the entry's gain converted from dB to linear amplitude.
// Values at or below -90dB are treated as silence.
func (e Entry) GainLin() float64 {
	return dbToLin(e.GainDB)
}

func dbToLin(db float64) float64 {
	if db <= -90 {
		return 0
	}
	return math.Pow(10, db/20)
}

// Table is the full set of phoneme entries, keyed by symbolic name.
// Values ported from the reference engine's literal phoneme table —
// English monophthongs, diphthongs (glides), fricatives, nasals,
// liquids, stops, and the Arabic/Russian specials.
var Table = map[string]Entry{
	// Vowels
	"IY": {BaseDurMs: 85, F1: 270, F2: 2250, F3: 2890, F4: 3500, GainDB: -1, Kind: Vowel},
	"IH": {BaseDurMs: 65, F1: 390, F2: 1950, F3: 2650, F4: 3400, GainDB: 0, Kind: Vowel},
	"EH": {BaseDurMs: 85, F1: 520, F2: 1750, F3: 2450, F4: 3350, GainDB: 0, Kind: Vowel},
	"AE": {BaseDurMs: 105, F1: 720, F2: 1680, F3: 2350, F4: 3350, GainDB: 1, Kind: Vowel},
	"AA": {BaseDurMs: 95, F1: 730, F2: 1090, F3: 2330, F4: 3400, GainDB: 2, Kind: Vowel},
	"AO": {BaseDurMs: 95, F1: 610, F2: 920, F3: 2350, F4: 3300, GainDB: 1, Kind: Vowel},
	"UH": {BaseDurMs: 75, F1: 430, F2: 1150, F3: 2250, F4: 3300, GainDB: 0, Kind: Vowel},
	"UW": {BaseDurMs: 85, F1: 330, F2: 890, F3: 2150, F4: 3250, GainDB: -1, Kind: Vowel},
	"AH": {BaseDurMs: 75, F1: 640, F2: 1240, F3: 2450, F4: 3350, GainDB: -1, Kind: Vowel},
	"ER": {BaseDurMs: 105, F1: 490, F2: 1350, F3: 1550, F4: 3250, GainDB: -1, Kind: Vowel},
	"AX": {BaseDurMs: 55, F1: 520, F2: 1560, F3: 2450, F4: 3350, GainDB: -3, Kind: Vowel},

	// Diphthongs / glide vowels
	"OW": {BaseDurMs: 105, F1: 460, F2: 920, F3: 2250, F4: 3250, GainDB: 1, Kind: Glide},
	"EY": {BaseDurMs: 115, F1: 460, F2: 1950, F3: 2450, F4: 3350, GainDB: 0, Kind: Glide},
	"AY": {BaseDurMs: 125, F1: 650, F2: 1950, F3: 2550, F4: 3400, GainDB: 1, Kind: Glide},
	"AW": {BaseDurMs: 125, F1: 700, F2: 1150, F3: 2350, F4: 3350, GainDB: 1, Kind: Glide},
	"OY": {BaseDurMs: 125, F1: 600, F2: 950, F3: 2250, F4: 3350, GainDB: 0, Kind: Glide},

	// Fricatives (unvoiced)
	"S":  {BaseDurMs: 115, GainDB: -9, Kind: Fricative},
	"SH": {BaseDurMs: 115, GainDB: -11, Kind: Fricative},
	"F":  {BaseDurMs: 95, GainDB: -14, Kind: Fricative},
	"TH": {BaseDurMs: 95, GainDB: -17, Kind: Fricative},
	"HH": {BaseDurMs: 75, GainDB: -19, Kind: Fricative},

	// Voiced fricatives
	"Z":  {BaseDurMs: 105, F1: 360, F2: 1750, F3: 2850, F4: 3650, GainDB: -9, Kind: VoicedFricative},
	"ZH": {BaseDurMs: 105, F1: 360, F2: 1550, F3: 2450, F4: 3450, GainDB: -11, Kind: VoicedFricative},
	"V":  {BaseDurMs: 85, F1: 310, F2: 1450, F3: 2450, F4: 3450, GainDB: -11, Kind: VoicedFricative},
	"DH": {BaseDurMs: 75, F1: 320, F2: 1550, F3: 2550, F4: 3450, GainDB: -14, Kind: VoicedFricative},

	// Nasals & liquids
	"M":  {BaseDurMs: 85, F1: 290, F2: 1050, F3: 2250, F4: 3550, GainDB: -4, Kind: VowelLike},
	"N":  {BaseDurMs: 85, F1: 290, F2: 1750, F3: 2700, F4: 3550, GainDB: -4, Kind: VowelLike},
	"NG": {BaseDurMs: 95, F1: 290, F2: 1250, F3: 2450, F4: 3550, GainDB: -5, Kind: VowelLike},
	"L":  {BaseDurMs: 95, F1: 420, F2: 1150, F3: 3050, F4: 3700, GainDB: -1, Kind: VowelLike},
	"R":  {BaseDurMs: 95, F1: 370, F2: 1380, F3: 1600, F4: 3400, GainDB: -1, Kind: VowelLike},

	// Glides (consonantal)
	"W": {BaseDurMs: 95, F1: 320, F2: 650, F3: 2250, F4: 3300, GainDB: 0, Kind: Glide},
	"Y": {BaseDurMs: 95, F1: 320, F2: 2250, F3: 3150, F4: 3750, GainDB: 0, Kind: Glide},

	// Stops — no formants; rendered from the Plosive table.
	"K":  {Kind: Stop},
	"G":  {Kind: Stop},
	"P":  {Kind: Stop},
	"B":  {Kind: Stop},
	"T":  {Kind: Stop},
	"D":  {Kind: Stop},
	"CH": {Kind: Stop},
	"JH": {Kind: Stop},
	"Q":  {Kind: Stop},

	// Arabic specials
	"KH":   {BaseDurMs: 115, GainDB: -11, Kind: Fricative},
	"GH":   {BaseDurMs: 105, F1: 420, F2: 1280, F3: 2480, F4: 3450, GainDB: -9, Kind: VoicedFricative},
	"AIN":  {BaseDurMs: 105, F1: 820, F2: 1380, F3: 2580, F4: 3550, GainDB: -1, Kind: VoicedFricative},
	"H_AR": {BaseDurMs: 95, GainDB: -13, Kind: Fricative},
	"S_AR": {BaseDurMs: 115, GainDB: -9, Kind: Fricative},
	"D_AR": {Kind: Stop},
	"T_AR": {Kind: Stop},
	"Z_AR": {BaseDurMs: 85, GainDB: -14, Kind: VoicedFricative},

	// Russian special
	"RR": {BaseDurMs: 75, F1: 420, F2: 1450, F3: 2050, F4: 3550, GainDB: -1, Kind: VowelLike},

	// Structural
	"PAUSE":         {Kind: Pause},
	"BREATH":        {BaseDurMs: 600, Kind: Pause},
	"END_OF_STREAM": {BaseDurMs: 3000, Kind: Pause},
}

// Diphthong describes the start/end vowel quality glided between.
type Diphthong struct {
	Start, End string
}

// DiphthongMap maps a glide symbol to its start/end vowel targets, used
// by the track generator's raised-cosine formant interpolation.
var DiphthongMap = map[string]Diphthong{
	"AY": {Start: "AA", End: "IY"},
	"EY": {Start: "EH", End: "IY"},
	"OY": {Start: "AO", End: "IY"},
	"AW": {Start: "AA", End: "UW"},
	"OW": {Start: "AO", End: "UW"},
}

// Lookup reports whether sym names a table entry and returns it.
func Lookup(sym string) (Entry, bool) {
	e, ok := Table[sym]
	return e, ok
}
