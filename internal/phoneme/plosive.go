package phoneme

// Aspiration names the turbulence color following a stop release.
type Aspiration int

const (
	AspNone Aspiration = iota
	AspH
	AspS
	AspSHHard
	AspZH
	AspSAr
)

// Plosive is the closure/burst/aspiration parameter set for a stop
// phoneme. Unknown stops fall back to the "T" entry (LookupPlosive).
type Plosive struct {
	ClosureMs  float64
	BurstHz    float64
	VoicingBar float64 // 0 or ~0.9
	LocusF2    float64
	LocusF3    float64
	Asp        Aspiration
	BurstGainDB float64
}

// PlosiveTable covers every stop symbol the phoneme table defines.
// Values ported from the reference engine's literal PLOSIVE_DATA.
var PlosiveTable = map[string]Plosive{
	"G":    {ClosureMs: 50, BurstHz: 1500, VoicingBar: 0.90, LocusF2: 1200, LocusF3: 2400, Asp: AspNone, BurstGainDB: -20},
	"K":    {ClosureMs: 60, BurstHz: 1800, VoicingBar: 0.0, LocusF2: 1200, LocusF3: 2400, Asp: AspH, BurstGainDB: -10},
	"D":    {ClosureMs: 40, BurstHz: 3500, VoicingBar: 0.90, LocusF2: 1800, LocusF3: 2800, Asp: AspNone, BurstGainDB: -18},
	"T":    {ClosureMs: 50, BurstHz: 3800, VoicingBar: 0.0, LocusF2: 1800, LocusF3: 2800, Asp: AspS, BurstGainDB: -10},
	"B":    {ClosureMs: 45, BurstHz: 700, VoicingBar: 0.90, LocusF2: 800, LocusF3: 2300, Asp: AspNone, BurstGainDB: -20},
	"P":    {ClosureMs: 55, BurstHz: 700, VoicingBar: 0.0, LocusF2: 800, LocusF3: 2300, Asp: AspH, BurstGainDB: -12},
	"JH":   {ClosureMs: 45, BurstHz: 3500, VoicingBar: 0.90, LocusF2: 1800, LocusF3: 2600, Asp: AspZH, BurstGainDB: -15},
	"CH":   {ClosureMs: 55, BurstHz: 4000, VoicingBar: 0.0, LocusF2: 1800, LocusF3: 2600, Asp: AspSHHard, BurstGainDB: -12},
	"Q":    {ClosureMs: 70, BurstHz: 1000, VoicingBar: 0.0, LocusF2: 900, LocusF3: 2400, Asp: AspH, BurstGainDB: -10},
	"D_AR": {ClosureMs: 55, BurstHz: 3000, VoicingBar: 0.90, LocusF2: 1100, LocusF3: 2700, Asp: AspNone, BurstGainDB: -18},
	"T_AR": {ClosureMs: 65, BurstHz: 3300, VoicingBar: 0.0, LocusF2: 1100, LocusF3: 2700, Asp: AspSAr, BurstGainDB: -10},
}

// AspirationMs returns the nominal duration of the aspiration tail
// following burst release. CH carries a longer, harder tail.
func (p Plosive) AspirationMs(sym string) float64 {
	if sym == "CH" {
		return 120
	}
	return 30
}

// LookupPlosive returns the plosive parameters for sym, defaulting to
// the "T" entry when sym names a stop with no dedicated plosive row.
func LookupPlosive(sym string) Plosive {
	if p, ok := PlosiveTable[sym]; ok {
		return p
	}
	return PlosiveTable["T"]
}
