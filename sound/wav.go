package sound

import (
	"fmt"
	"math"
	"os"
	"regexp"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// extPattern matches the final extension of a path, if any.
var extPattern = regexp.MustCompile(`\.[^.]+$`)

// OutputName derives the cleaned-file path for an input path: the final
// extension is replaced by "-out.wav". Paths without an extension get
// the suffix appended.
func OutputName(path string) string {
	if extPattern.MatchString(path) {
		return extPattern.ReplaceAllString(path, "-out.wav")
	}
	return path + "-out.wav"
}

// ReadWAV decodes a WAV file into a Stream, deinterleaving the PCM data
// into per-channel sample sequences. Unsupported bit depths fail with
// ErrUnsupportedDepth.
func ReadWAV(path string) (*Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sound: open %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("sound: %s is not a decodable WAV file", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("sound: decode %s: %w", path, err)
	}

	numCh := buf.Format.NumChannels
	if numCh <= 0 {
		return nil, fmt.Errorf("sound: %s reports %d channels", path, numCh)
	}

	frames := len(buf.Data) / numCh
	channels := make([][]float64, numCh)
	for c := range channels {
		channels[c] = make([]float64, frames)
		for i := 0; i < frames; i++ {
			channels[c][i] = float64(buf.Data[i*numCh+c])
		}
	}

	return New(buf.Format.SampleRate, buf.SourceBitDepth, channels)
}

// WriteWAV encodes a Stream to a WAV file, preserving sample rate,
// channel order and bit depth. Samples are rounded to the nearest
// integer and clamped to the depth's representable range.
func WriteWAV(path string, s *Stream) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sound: create %s: %w", path, err)
	}

	frames := s.SampleCount()
	numCh := s.ChannelCount()
	data := make([]int, frames*numCh)
	for c := 0; c < numCh; c++ {
		ch := s.Channel(c)
		for i, v := range ch {
			data[i*numCh+c] = clampSample(v, s.BitDepth())
		}
	}

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: numCh,
			SampleRate:  s.SampleRate(),
		},
		Data:           data,
		SourceBitDepth: s.BitDepth(),
	}

	enc := wav.NewEncoder(f, s.SampleRate(), s.BitDepth(), numCh, 1)
	if err := enc.Write(buf); err != nil {
		enc.Close()
		f.Close()
		return fmt.Errorf("sound: write %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("sound: finalize %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("sound: close %s: %w", path, err)
	}
	return nil
}

// clampSample rounds v and clamps it to the integer range of the given
// bit depth.
func clampSample(v float64, bitDepth int) int {
	min, max := sampleRange(bitDepth)
	r := math.Round(v)
	if r < min {
		r = min
	}
	if r > max {
		r = max
	}
	return int(r)
}
