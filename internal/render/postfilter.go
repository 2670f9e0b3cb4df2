package render

import (
	"math"

	"github.com/hubenschmidt/klatt-tts/internal/block"
	"github.com/hubenschmidt/klatt-tts/internal/dsp"
)

// postFilter applies the per-batch post-filter of spec.md §4.G/§4.H: a
// 2nd-order Butterworth low-pass at 8500Hz, a 1st-order Butterworth
// high-pass at 20Hz, a tanh soft-clip, and peak-normalization to 0.92.
// Each call starts with fresh filter state — the post-filter has no
// cross-batch continuity requirement in the spec, unlike the synth's
// glottal/tilt/formant state.
func postFilter(samples []float64) []float64 {
	if len(samples) == 0 {
		return samples
	}

	var lpf dsp.Biquad
	lpf.SetButterworthLowpass(8500, block.SampleRateHz)
	stage1 := lpf.ProcessBlock(samples)

	var hpf dsp.OnePole
	hpf.SetButterworthHighpass1(20, block.SampleRateHz)
	stage2 := hpf.ProcessBlock(stage1)

	out := make([]float64, len(stage2))
	peak := 0.0
	for i, x := range stage2 {
		clipped := math.Tanh(0.95 * x * 1.3)
		out[i] = clipped
		if a := math.Abs(clipped); a > peak {
			peak = a
		}
	}

	if peak > 0 {
		scale := 0.92 / peak
		for i := range out {
			out[i] *= scale
		}
	}
	return out
}
