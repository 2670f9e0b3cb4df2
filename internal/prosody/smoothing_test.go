package prosody

import (
	"math"
	"testing"
)

func TestGaussianSmooth1DPreservesLength(t *testing.T) {
	in := []float64{1, 2, 3, 4, 5, 100, 5, 4, 3, 2, 1}
	out := gaussianSmooth1D(in, 2)
	if len(out) != len(in) {
		t.Fatalf("got length %d, want %d", len(out), len(in))
	}
}

func TestGaussianSmooth1DFlattensAnImpulse(t *testing.T) {
	in := make([]float64, 21)
	in[10] = 1
	out := gaussianSmooth1D(in, 2)

	if out[10] >= 1 {
		t.Fatalf("expected the impulse peak to be spread out, got %v", out[10])
	}
	if out[9] <= 0 || out[11] <= 0 {
		t.Fatalf("expected neighboring samples to pick up some of the impulse's energy: %v %v", out[9], out[11])
	}
}

func TestGaussianSmooth1DConstantInputIsUnchanged(t *testing.T) {
	in := make([]float64, 15)
	for i := range in {
		in[i] = 3.5
	}
	out := gaussianSmooth1D(in, 2)
	for i, v := range out {
		if math.Abs(v-3.5) > 1e-9 {
			t.Fatalf("frame %d: got %v, want 3.5 (reflect padding should keep a constant signal flat)", i, v)
		}
	}
}

func TestGaussianSmooth1DEmptyInput(t *testing.T) {
	out := gaussianSmooth1D(nil, 4)
	if len(out) != 0 {
		t.Fatalf("expected empty output for empty input, got %v", out)
	}
}
