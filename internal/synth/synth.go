// Package synth implements the formant synthesizer (spec.md §4.G): a
// sawtooth glottal source shaped by spectral tilt, driven through a
// parallel bank of four resonant formant filters, with fricative noise
// bands and impulsive stop bursts layered in.
package synth

import (
	"math"
	"math/rand"

	"github.com/hubenschmidt/klatt-tts/internal/block"
	"github.com/hubenschmidt/klatt-tts/internal/dsp"
	"github.com/hubenschmidt/klatt-tts/internal/prosody"
	"github.com/hubenschmidt/klatt-tts/internal/voice"
)

// formantBandwidths and formantGains are the fixed per-formant
// parameters of spec.md §4.G.
var (
	formantBandwidths = [4]float64{60, 90, 130, 180}
	formantGains       = [4]float64{1.0, 0.7, 0.5, 0.2}
)

// Fixed noise bands from spec.md §4.G step 5.
var (
	bandS   = [2]float64{3200, 5800}
	bandMid = [2]float64{1800, 4500}
)

// Synth renders track frames to PCM for one voice. Its glottal phase,
// tilt filter, and formant filter states persist across every batch
// within one Speak call and are only cleared by ResetFilters.
type Synth struct {
	Voice voice.Profile
	Rand  *rand.Rand

	phase     float64
	tiltState float64
	formants  [4]dsp.Biquad
}

// New returns a Synth bound to v with freshly reset filter state.
func New(v voice.Profile) *Synth {
	s := &Synth{Voice: v, Rand: rand.New(rand.NewSource(1))}
	s.ResetFilters()
	return s
}

// ResetFilters clears the glottal phase, tilt filter, and formant
// filter states. Called once per Speak call, never between batches
// within one call (spec.md §4.H).
func (s *Synth) ResetFilters() {
	s.phase = 0
	s.tiltState = 0
	s.formants = [4]dsp.Biquad{}
}

// RenderBatch renders every frame of tracks to PCM, in order,
// returning block.Samples*tracks.Len() raw (pre-post-filter) samples.
func (s *Synth) RenderBatch(tracks *prosody.Tracks) []float64 {
	n := tracks.Len()
	out := make([]float64, 0, n*block.Samples)

	for b := 0; b < n; b++ {
		out = append(out, s.renderFrame(tracks, b)...)
	}
	return out
}

func (s *Synth) renderFrame(tracks *prosody.Tracks, b int) []float64 {
	pitch := tracks.Pitch[b]
	av, af := tracks.AV[b], tracks.AF[b]
	f := [4]float64{tracks.F1[b], tracks.F2[b], tracks.F3[b], tracks.F4[b]}
	mixS, mixMid, mixH := tracks.MixS[b], tracks.MixMid[b], tracks.MixH[b]
	burst := tracks.Burst[b]

	src := s.glottalSource(pitch)
	s.applyTilt(src)
	for i := range src {
		src[i] *= av * 0.18
	}

	yMix := make([]float64, block.Samples)
	for i := 0; i < 4; i++ {
		center := clamp(f[i]/s.Voice.FormantScale, 100, block.SampleRateHz/2-100)
		q := center / math.Max(50, formantBandwidths[i])
		s.formants[i].SetPeakingEQ(center, q, block.SampleRateHz)
		filtered := s.formants[i].ProcessBlock(src)
		for k, v := range filtered {
			yMix[k] += v * formantGains[i]
		}
	}

	if af > 0.01 {
		s.addFricativeNoise(yMix, af, mixS, mixMid, mixH, f[1], f[2])
	}

	if burst > 100 {
		s.addBurst(yMix, burst)
	}

	return yMix
}

// glottalSource accumulates a sawtooth at pitch Hz, carrying phase
// across calls (spec.md §4.G step 1).
func (s *Synth) glottalSource(pitch float64) []float64 {
	inc := pitch / block.SampleRateHz
	out := make([]float64, block.Samples)
	for i := range out {
		s.phase += inc
		if s.phase >= 1 {
			s.phase -= 1
		}
		out[i] = 2 * (s.phase - 0.5)
	}
	return out
}

// applyTilt runs the one-pole spectral-tilt IIR in place, carrying
// state across calls (spec.md §4.G step 2).
func (s *Synth) applyTilt(src []float64) {
	k := 0.92 + s.Voice.Brightness*0.05
	for i, x := range src {
		s.tiltState = x + k*s.tiltState
		src[i] = s.tiltState
	}
}

// addFricativeNoise layers the three noise-band channels (two fixed
// bands plus one dynamic, F2/F3-derived band) into yMix (spec.md §4.G
// step 5). The noise-band filters carry no state across frames.
func (s *Synth) addFricativeNoise(yMix []float64, af, mixS, mixMid, mixH, f2, f3 float64) {
	amp := s.Voice.NoiseLevel * 0.5
	noise := make([]float64, block.Samples)
	for i := range noise {
		noise[i] = s.gaussian() * amp
	}

	total := make([]float64, block.Samples)
	addBand := func(lo, hi, weight float64) {
		if weight <= 0 {
			return
		}
		var bq dsp.Biquad
		center, q := dsp.BandCenterAndQ(lo, hi)
		bq.SetBandpassCSG(center, q, block.SampleRateHz)
		filtered := bq.ProcessBlock(noise)
		for i, v := range filtered {
			total[i] += v * weight
		}
	}

	addBand(bandS[0], bandS[1], mixS)
	addBand(bandMid[0], bandMid[1], mixMid)
	dynLo := math.Max(300, f2-600)
	dynHi := math.Min(block.SampleRateHz/2-100, f3+600)
	addBand(dynLo, dynHi, mixH)

	for i, v := range total {
		yMix[i] += v * af * 0.7
	}
}

// addBurst layers the impulsive stop-burst noise (spec.md §4.G step 6).
func (s *Synth) addBurst(yMix []float64, burstHz float64) {
	pop := make([]float64, block.Samples)
	for i := range pop {
		pop[i] = (s.Rand.Float64()*2 - 1) * 2.5
	}

	var bq dsp.Biquad
	lo := math.Max(50, burstHz-600)
	hi := math.Min(block.SampleRateHz/2-100, burstHz+600)
	center, q := dsp.BandCenterAndQ(lo, hi)
	bq.SetBandpassCSG(center, q, block.SampleRateHz)
	filtered := bq.ProcessBlock(pop)

	for i, v := range filtered {
		yMix[i] += math.Tanh(0.95*v) * 0.6
	}
}

// gaussian draws one zero-mean, unit-variance Gaussian sample.
func (s *Synth) gaussian() float64 {
	return s.Rand.NormFloat64()
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
