package prosody

import (
	"math"
	"math/rand"

	"github.com/hubenschmidt/klatt-tts/internal/block"
	"github.com/hubenschmidt/klatt-tts/internal/phoneme"
	"github.com/hubenschmidt/klatt-tts/internal/text"
	"github.com/hubenschmidt/klatt-tts/internal/voice"
)

// Generator walks one batch of events at a time, carrying the
// cross-batch prosody state of spec.md §3 (sentence energy, tempo
// clock, last pitch, last formant target) across calls within one
// Speak invocation. Reset by constructing a new Generator.
type Generator struct {
	Voice voice.Profile
	Rand  *rand.Rand

	// OnUnknownPhoneme, if set, is called for every event symbol absent
	// from the phoneme table (spec.md §7: skipped, not an error).
	OnUnknownPhoneme func(sym string)

	sentenceEnergy float64
	tempoClock     float64
	lastPitch      float64
	lastFormant    [4]float64
}

// NewGenerator returns a Generator bound to v, with sentence energy at
// 1.0 and a neutral starting formant/pitch state.
func NewGenerator(v voice.Profile) *Generator {
	neutral := phoneme.Table["AX"]
	return &Generator{
		Voice:          v,
		Rand:           rand.New(rand.NewSource(1)),
		sentenceEnergy: 1.0,
		lastPitch:      v.BasePitch,
		lastFormant:    [4]float64{neutral.F1, neutral.F2, neutral.F3, neutral.F4},
	}
}

// Generate appends frames for one batch of events and returns the
// smoothed tracks (spec.md §4.F).
func (g *Generator) Generate(events []text.Event) *Tracks {
	t := &Tracks{}

	for i, e := range events {
		switch e.Kind {
		case text.KindWordBoundary:
			continue

		case text.KindPause:
			g.emitSilence(t, e.Ms)

		case text.KindBreath:
			g.emitSilence(t, e.Ms)
			g.sentenceEnergy = 1.0

		case text.KindEndOfStream:
			g.emitSilence(t, e.Ms)
			g.sentenceEnergy = 1.0

		case text.KindPhoneme:
			g.emitPhoneme(t, events, i)
		}
	}

	t.smooth()
	return t
}

func (g *Generator) emitSilence(t *Tracks, ms int) {
	n := maxInt(1, int(math.Round(float64(ms)/block.Ms)))
	f := g.lastFormant
	for k := 0; k < n; k++ {
		t.append(f[0], f[1], f[2], f[3], g.lastPitch, 0, 0, 0, 0, 0, 0)
	}
}

func (g *Generator) emitPhoneme(t *Tracks, events []text.Event, i int) {
	e := events[i]
	entry, ok := phoneme.Lookup(e.Sym)
	if !ok {
		if g.OnUnknownPhoneme != nil {
			g.OnUnknownPhoneme(e.Sym)
		}
		return
	}

	stressed := e.Stress != 0
	g.sentenceEnergy *= 0.97
	if g.sentenceEnergy < 0.45 {
		g.sentenceEnergy = 0.45
	}

	if entry.Kind == phoneme.Stop {
		g.emitStop(t, e.Sym, stressed)
		return
	}

	n := g.frameCount(entry.BaseDurMs, stressed, e.SlowLang)
	pitch := g.pitchTrajectory(n, stressed, entry.Kind == phoneme.Glide)
	av, af, mixS, mixMid, mixH := amplitudeForPhoneme(e.Sym, entry)

	if entry.Kind == phoneme.Glide {
		start, end := g.glideFormants(e.Sym, entry, events, i)
		for k := 0; k < n; k++ {
			frac := raisedCosine(k, n)
			t.append(
				lerp(start[0], end[0], frac),
				lerp(start[1], end[1], frac),
				lerp(start[2], end[2], frac),
				lerp(start[3], end[3], frac),
				pitch[k], av, af, mixS, mixMid, mixH, 0,
			)
		}
		g.lastFormant = end
		return
	}

	formants := [4]float64{entry.F1, entry.F2, entry.F3, entry.F4}
	if e.Sym == "HH" {
		if next, ok := nextPhonemeEntry(events, i); ok && isVowelLike(next.Kind) {
			formants = [4]float64{next.F1, next.F2, next.F3, next.F4}
		}
	}
	for k := 0; k < n; k++ {
		t.append(formants[0], formants[1], formants[2], formants[3], pitch[k], av, af, mixS, mixMid, mixH, 0)
	}
	g.lastFormant = formants
}

func (g *Generator) emitStop(t *Tracks, sym string, stressed bool) {
	pl := phoneme.LookupPlosive(sym)
	closureFrames := maxInt(1, int(math.Round(pl.ClosureMs/block.Ms)))

	aspMs := pl.AspirationMs(sym)
	aspFrames := 0
	if pl.Asp != phoneme.AspNone {
		aspFrames = maxInt(1, int(math.Round(aspMs/block.Ms)))
	}

	total := closureFrames + 1 + aspFrames
	pitch := g.pitchTrajectory(total, stressed, false)
	idx := 0

	for k := 0; k < closureFrames; k++ {
		t.append(200, pl.LocusF2, pl.LocusF3, 3500, pitch[idx], pl.VoicingBar, 0, 0, 0, 0, 0)
		idx++
	}

	t.append(500, pl.LocusF2, pl.LocusF3, 3500, pitch[idx], pl.VoicingBar, 0, 0, 0, 0, pl.BurstHz)
	idx++

	if pl.Asp != phoneme.AspNone {
		mixS, mixMid, mixH := aspirationMix(pl.Asp)
		for k := 0; k < aspFrames; k++ {
			t.append(500, pl.LocusF2, pl.LocusF3, 3500, pitch[idx], 0, 0.9, mixS, mixMid, mixH, 0)
			idx++
		}
	}

	g.lastFormant = [4]float64{500, pl.LocusF2, pl.LocusF3, 3500}
}

// frameCount realizes spec.md §4.F's duration rule. Called only for
// phonetic (non-pause/non-breath) events, so the tempo-clock update
// always applies.
func (g *Generator) frameCount(baseDurMs float64, stressed, slowLang bool) int {
	base := baseDurMs
	if stressed {
		base *= 1.25
	}
	if slowLang {
		base *= 1.35
	}
	g.tempoClock += 0.1
	base *= 1 + 0.12*math.Sin(g.tempoClock)
	if !stressed && g.sentenceEnergy > 0.8 {
		base *= 0.92
	}
	base *= g.Voice.DurationScale
	return maxInt(1, int(math.Round(base/block.Ms)))
}

// pitchTrajectory realizes spec.md §4.F's pitch target rule, linearly
// interpolating from the carried last pitch to the computed target
// and layering an additive intra-syllable arc.
func (g *Generator) pitchTrajectory(n int, stressed, isGlide bool) []float64 {
	var offset float64
	if stressed {
		offset = g.sentenceEnergy*18 + 25
	} else {
		offset = g.sentenceEnergy*18 - 8
	}
	offset += g.Rand.Float64()*4 - 2 // U(-2, +2)

	target := clamp(g.Voice.BasePitch+offset, 75, g.Voice.BasePitch+55)

	arcAmp := 5.0
	if isGlide {
		arcAmp = 8.0
	}

	start := g.lastPitch
	out := make([]float64, n)
	denom := float64(maxInt(n-1, 1))
	for k := 0; k < n; k++ {
		linear := start + (target-start)*float64(k)/denom
		arc := math.Sin(math.Pi*float64(k)/float64(n)) * arcAmp
		out[k] = linear + arc
	}
	g.lastPitch = target
	return out
}

// glideFormants resolves the start/end formant quadruples for a glide
// event per spec.md §4.F: diphthong map entries use their own start/end
// vowels; W anticipates the next phoneme's formants; every other
// glide (Y) holds its own target at both ends.
func (g *Generator) glideFormants(sym string, entry phoneme.Entry, events []text.Event, idx int) (start, end [4]float64) {
	if d, ok := phoneme.DiphthongMap[sym]; ok {
		se, ee := phoneme.Table[d.Start], phoneme.Table[d.End]
		return [4]float64{se.F1, se.F2, se.F3, se.F4}, [4]float64{ee.F1, ee.F2, ee.F3, ee.F4}
	}

	own := [4]float64{entry.F1, entry.F2, entry.F3, entry.F4}
	if sym == "W" {
		if next, ok := nextPhonemeEntry(events, idx); ok {
			return own, [4]float64{next.F1, next.F2, next.F3, next.F4}
		}
	}
	return own, own
}

// amplitudeForPhoneme implements spec.md §4.F's amplitude & mix rules
// for every non-stop phoneme category (glides take the vowel rule).
func amplitudeForPhoneme(sym string, e phoneme.Entry) (av, af, mixS, mixMid, mixH float64) {
	gain := e.GainLin()

	switch e.Kind {
	case phoneme.Vowel, phoneme.VowelLike, phoneme.Glide:
		return gain, 0, 0, 0, 0

	case phoneme.Fricative:
		af = gain
		switch sym {
		case "S", "Z", "S_AR":
			mixS = 1
		case "SH", "ZH":
			mixMid = 1
		case "HH", "KH", "H_AR":
			mixH = 1
		case "F", "TH":
			mixMid, mixH = 0.5, 0.5
			af *= 0.8
		}
		return 0, af, mixS, mixMid, mixH

	case phoneme.VoicedFricative:
		av = 0.5 * gain
		af = 0.5 * gain
		switch sym {
		case "Z", "Z_AR":
			av, af, mixS = 0.8, 0.7, 1
		case "V":
			av, af, mixH, mixS = 0.8, 0.5, 0.5, 0.2
		case "GH":
			av, af, mixH = 0.8, 0.4, 0.8
		case "DH", "AIN":
			av, af = gain, 0
		}
		return av, af, mixS, mixMid, mixH

	default:
		return 0, 0, 0, 0, 0
	}
}

func aspirationMix(asp phoneme.Aspiration) (mixS, mixMid, mixH float64) {
	switch asp {
	case phoneme.AspH:
		return 0, 0, 1
	case phoneme.AspS, phoneme.AspSAr:
		return 1, 0, 0
	case phoneme.AspSHHard, phoneme.AspZH:
		return 0, 1, 0
	default:
		return 0, 0, 0
	}
}

func nextPhonemeEntry(events []text.Event, idx int) (phoneme.Entry, bool) {
	if idx+1 >= len(events) {
		return phoneme.Entry{}, false
	}
	next := events[idx+1]
	if next.Kind != text.KindPhoneme {
		return phoneme.Entry{}, false
	}
	return phoneme.Lookup(next.Sym)
}

func isVowelLike(k phoneme.Type) bool {
	return k == phoneme.Vowel || k == phoneme.VowelLike || k == phoneme.Glide
}

// raisedCosine is spec.md §4.F's glide interpolation weight,
// k = (1 - cos(pi*f/n)) / 2.
func raisedCosine(f, n int) float64 {
	return (1 - math.Cos(math.Pi*float64(f)/float64(n))) / 2
}

func lerp(a, b, frac float64) float64 {
	return a + (b-a)*frac
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
