// Package sound models decoded audio as an immutable set of per-channel
// sample sequences and provides WAV container I/O around it.
package sound

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnsupportedDepth = errors.New("sound: unsupported bit depth")
	ErrNoChannels       = errors.New("sound: stream must have at least one channel")
	ErrChannelLength    = errors.New("sound: all channels must have the same length")
)

// supportedDepths lists the PCM bit depths the tool accepts.
var supportedDepths = map[int]bool{
	8:  true,
	16: true,
	24: true,
	32: true,
}

// Stream is one decoded audio file: a sample rate, a bit depth and one
// sample sequence per channel. A Stream is never mutated after
// construction; cleaning produces a new Stream.
type Stream struct {
	sampleRate int
	bitDepth   int
	channels   [][]float64
}

// New validates the format and wraps the given channels in a Stream.
// The channel slices are retained, not copied; callers hand over
// ownership.
func New(sampleRate, bitDepth int, channels [][]float64) (*Stream, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sound: sample rate must be > 0: %d", sampleRate)
	}
	if !supportedDepths[bitDepth] {
		return nil, fmt.Errorf("%w: %d-bit", ErrUnsupportedDepth, bitDepth)
	}
	if len(channels) == 0 {
		return nil, ErrNoChannels
	}
	n := len(channels[0])
	for _, ch := range channels[1:] {
		if len(ch) != n {
			return nil, fmt.Errorf("%w: %d != %d", ErrChannelLength, len(ch), n)
		}
	}

	return &Stream{
		sampleRate: sampleRate,
		bitDepth:   bitDepth,
		channels:   channels,
	}, nil
}

// SampleRate returns the sample rate in Hz.
func (s *Stream) SampleRate() int { return s.sampleRate }

// BitDepth returns the PCM bit depth.
func (s *Stream) BitDepth() int { return s.bitDepth }

// ChannelCount returns the number of channels.
func (s *Stream) ChannelCount() int { return len(s.channels) }

// SampleCount returns the per-channel sample count.
func (s *Stream) SampleCount() int { return len(s.channels[0]) }

// Duration returns the stream length in time.
func (s *Stream) Duration() time.Duration {
	return time.Duration(float64(s.SampleCount()) / float64(s.sampleRate) * float64(time.Second))
}

// Channel returns channel i's samples. The slice is shared with the
// Stream and must be treated as read-only.
func (s *Stream) Channel(i int) []float64 { return s.channels[i] }

// WithChannels returns a new Stream with the same format but replaced
// channel data. Used to assemble the cleaned output.
func (s *Stream) WithChannels(channels [][]float64) (*Stream, error) {
	return New(s.sampleRate, s.bitDepth, channels)
}

// sampleRange returns the representable integer sample range for a bit
// depth. 8-bit WAV is unsigned, everything else is signed.
func sampleRange(bitDepth int) (min, max float64) {
	if bitDepth == 8 {
		return 0, 255
	}
	half := float64(int64(1) << (bitDepth - 1))
	return -half, half - 1
}
