package prosody

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// smooth applies a Gaussian 1-D filter to every channel except Burst
// (spec.md §3/§4.F): sigma=4 for Pitch, sigma=2 for the rest.
func (t *Tracks) smooth() {
	t.Pitch = gaussianSmooth1D(t.Pitch, 4)
	t.F1 = gaussianSmooth1D(t.F1, 2)
	t.F2 = gaussianSmooth1D(t.F2, 2)
	t.F3 = gaussianSmooth1D(t.F3, 2)
	t.F4 = gaussianSmooth1D(t.F4, 2)
	t.AV = gaussianSmooth1D(t.AV, 2)
	t.AF = gaussianSmooth1D(t.AF, 2)
	t.MixS = gaussianSmooth1D(t.MixS, 2)
	t.MixMid = gaussianSmooth1D(t.MixMid, 2)
	t.MixH = gaussianSmooth1D(t.MixH, 2)
}

// gaussianSmooth1D convolves values with a normalized Gaussian kernel
// of the given sigma, using reflect boundary padding (matching
// scipy.ndimage.gaussian_filter1d's default mode, the reference this
// stage was ported from).
func gaussianSmooth1D(values []float64, sigma float64) []float64 {
	if len(values) == 0 {
		return values
	}
	kernel := gaussianKernel(sigma)
	radius := len(kernel) / 2
	n := len(values)

	padded := make([]float64, n+2*radius)
	for i := range padded {
		padded[i] = values[reflectIndex(i-radius, n)]
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = floats.Dot(kernel, padded[i:i+len(kernel)])
	}
	return out
}

// gaussianKernel builds a normalized Gaussian kernel truncated at 4
// standard deviations, scipy's default truncate radius.
func gaussianKernel(sigma float64) []float64 {
	radius := int(4*sigma + 0.5)
	if radius < 1 {
		radius = 1
	}
	kernel := make([]float64, 2*radius+1)
	var sum float64
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-0.5 * float64(i*i) / (sigma * sigma))
		kernel[i+radius] = v
		sum += v
	}
	floats.Scale(1/sum, kernel)
	return kernel
}

// reflectIndex maps an out-of-range index back into [0,n) by
// reflecting at the boundaries, e.g. for n=4: ... b a | a b c d | d c ...
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i - 1
		}
		if i >= n {
			i = 2*n - i - 1
		}
	}
	return i
}
