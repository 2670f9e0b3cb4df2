// Package block defines the fixed block-size constants shared by the
// track generator, synthesizer, and render driver so none of them
// import one another just to agree on a frame size.
package block

const (
	// SampleRateHz is the PCM output sample rate.
	SampleRateHz = 48000

	// Ms is the duration of one track frame / synthesis block.
	Ms = 2

	// Samples is the sample count of one block at SampleRateHz.
	Samples = SampleRateHz * Ms / 1000
)
