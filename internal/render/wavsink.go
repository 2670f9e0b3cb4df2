package render

import (
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/hubenschmidt/klatt-tts/internal/block"
)

// WAVSink writes the PCM stream to a mono 16-bit WAV file, the
// simplest conforming implementation of spec.md §6's abstract audio
// sink for offline use (CLI playback, test fixtures).
type WAVSink struct {
	enc    *wav.Encoder
	format *goaudio.Format
}

// NewWAVSink opens a WAV encoder writing to w. The caller owns w's
// lifecycle (open/close the underlying file); WAVSink.Close finalizes
// the WAV header but does not close w.
func NewWAVSink(w io.WriteSeeker) *WAVSink {
	format := &goaudio.Format{NumChannels: 1, SampleRate: block.SampleRateHz}
	return &WAVSink{
		enc:    wav.NewEncoder(w, block.SampleRateHz, 16, 1, 1),
		format: format,
	}
}

// WriteBlock converts float32 samples in [-1,1] to 16-bit PCM and
// appends them to the WAV stream.
func (s *WAVSink) WriteBlock(samples []float32) error {
	ints := make([]int, len(samples))
	for i, v := range samples {
		ints[i] = int(clampSample(v) * math.MaxInt16)
	}
	buf := &goaudio.IntBuffer{
		Format:         s.format,
		Data:           ints,
		SourceBitDepth: 16,
	}
	return s.enc.Write(buf)
}

// Close finalizes the WAV header.
func (s *WAVSink) Close() error {
	return s.enc.Close()
}

func clampSample(v float32) float64 {
	f := float64(v)
	if f > 1 {
		return 1
	}
	if f < -1 {
		return -1
	}
	return f
}
