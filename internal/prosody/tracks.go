// Package prosody implements the prosody & track generator stage
// (spec.md §4.F): it walks the event stream and appends frames to the
// eleven track channels, applying stress/intonation, duration, and
// coarticulation rules, then smooths the result.
package prosody

// Tracks is the struct-of-arrays track frame representation of
// spec.md §3. All channels have equal length within a batch; Burst is
// never smoothed.
type Tracks struct {
	F1, F2, F3, F4     []float64
	Pitch              []float64
	AV, AF             []float64
	MixS, MixMid, MixH []float64
	Burst              []float64
}

// Len reports the number of frames currently held.
func (t *Tracks) Len() int {
	return len(t.Pitch)
}

func (t *Tracks) append(f1, f2, f3, f4, pitch, av, af, mixS, mixMid, mixH, burst float64) {
	t.F1 = append(t.F1, f1)
	t.F2 = append(t.F2, f2)
	t.F3 = append(t.F3, f3)
	t.F4 = append(t.F4, f4)
	t.Pitch = append(t.Pitch, pitch)
	t.AV = append(t.AV, av)
	t.AF = append(t.AF, af)
	t.MixS = append(t.MixS, mixS)
	t.MixMid = append(t.MixMid, mixMid)
	t.MixH = append(t.MixH, mixH)
	t.Burst = append(t.Burst, burst)
}
