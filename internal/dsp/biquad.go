// Package dsp holds the small set of second-order (and first-order)
// IIR filter designs shared by the formant synthesizer and the render
// driver's post-filter: a peaking resonator (for the formant bank), a
// constant-skirt-gain bandpass (for noise-band and burst shaping), and
// Butterworth low-pass/high-pass sections (for the post-filter).
package dsp

import "math"

// Biquad is a Direct Form I second-order IIR section. Coefficients can
// be replaced in place via the Set* methods without disturbing the
// delay state, matching scipy.signal.lfilter(..., zi=...)'s behavior
// of carrying filter state across a coefficient change between blocks.
type Biquad struct {
	B0, B1, B2, A1, A2 float64

	x1, x2, y1, y2 float64
}

// Process filters one sample, updating the delay state in place.
func (f *Biquad) Process(x float64) float64 {
	y := f.B0*x + f.B1*f.x1 + f.B2*f.x2 - f.A1*f.y1 - f.A2*f.y2
	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, y
	return y
}

// ProcessBlock filters an entire block, returning a new slice.
func (f *Biquad) ProcessBlock(in []float64) []float64 {
	out := make([]float64, len(in))
	for i, x := range in {
		out[i] = f.Process(x)
	}
	return out
}

// SetPeakingEQ configures f as a unity-passband peaking/resonant
// filter centered at centerHz with quality factor q, following the
// scipy.signal.iirpeak construction (itself following the MATLAB
// Signal Processing Toolbox definition): a constant -3dB bandwidth
// edge gain of 1/sqrt(2).
func (f *Biquad) SetPeakingEQ(centerHz, q, fs float64) {
	const gb = math.Sqrt2 / 2 // 1/sqrt(2), the -3dB edge gain
	w0 := 2 * math.Pi * centerHz / fs
	bw := w0 / q
	beta := math.Sqrt(1-gb*gb) / gb * math.Tan(bw/2)
	gain := 1 / (1 + beta)

	f.B0 = 1 - gain
	f.B1 = 0
	f.B2 = -(1 - gain)
	f.A1 = -2 * gain * math.Cos(w0)
	f.A2 = 2*gain - 1
}

// SetBandpassCSG configures f as the Audio EQ Cookbook's bandpass
// filter in its constant 0 dB peak gain form (b0 = alpha, not the
// constant-skirt-gain b0 = Q*alpha), the single-biquad bandpass section
// used to shape noise and burst bursts.
func (f *Biquad) SetBandpassCSG(centerHz, q, fs float64) {
	w0 := 2 * math.Pi * centerHz / fs
	alpha := math.Sin(w0) / (2 * q)
	a0 := 1 + alpha

	f.B0 = alpha / a0
	f.B1 = 0
	f.B2 = -alpha / a0
	f.A1 = -2 * math.Cos(w0) / a0
	f.A2 = (1 - alpha) / a0
}

// SetButterworthLowpass configures f as a maximally-flat (Q=1/sqrt(2))
// second-order low-pass, the Butterworth response via the Audio EQ
// Cookbook's LPF formula.
func (f *Biquad) SetButterworthLowpass(cutoffHz, fs float64) {
	const q = math.Sqrt2 / 2 // 1/sqrt(2), maximally flat
	w0 := 2 * math.Pi * cutoffHz / fs
	alpha := math.Sin(w0) / (2 * q)
	cosw0 := math.Cos(w0)
	a0 := 1 + alpha

	f.B0 = (1 - cosw0) / 2 / a0
	f.B1 = (1 - cosw0) / a0
	f.B2 = (1 - cosw0) / 2 / a0
	f.A1 = -2 * cosw0 / a0
	f.A2 = (1 - alpha) / a0
}

// BandCenterAndQ derives a center frequency and Q factor from a
// [lo,hi] Hz band, for designing a bandpass filter from a noise-band
// edge pair: center is the geometric mean, Q = center / bandwidth.
func BandCenterAndQ(lo, hi float64) (center, q float64) {
	center = math.Sqrt(lo * hi)
	bw := hi - lo
	if bw <= 0 {
		bw = 1
	}
	return center, center / bw
}

// OnePole is a first-order IIR section, used for the post-filter's
// 20Hz high-pass.
type OnePole struct {
	B0, B1, A1 float64

	x1, y1 float64
}

func (f *OnePole) Process(x float64) float64 {
	y := f.B0*x + f.B1*f.x1 - f.A1*f.y1
	f.x1 = x
	f.y1 = y
	return y
}

func (f *OnePole) ProcessBlock(in []float64) []float64 {
	out := make([]float64, len(in))
	for i, x := range in {
		out[i] = f.Process(x)
	}
	return out
}

// SetButterworthHighpass1 configures f as a first-order high-pass with
// -3dB point at cutoffHz, the standard single-pole DC-blocking design.
func (f *OnePole) SetButterworthHighpass1(cutoffHz, fs float64) {
	x := math.Exp(-2 * math.Pi * cutoffHz / fs)
	f.B0 = (1 + x) / 2
	f.B1 = -(1 + x) / 2
	f.A1 = -x
}
