// Package pipeline orchestrates interference detection and removal:
// per-channel windowed spectral analysis, cross-window band clustering
// and sequential zero-phase notch filtering, file by file.
package pipeline

import (
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/jamesthoughton/bandstop/dsp/analyze"
	"github.com/jamesthoughton/bandstop/dsp/detect"
	"github.com/jamesthoughton/bandstop/dsp/notch"
	"github.com/jamesthoughton/bandstop/sound"
)

// SpectrumSink receives one window's magnitude spectrum together with
// the rising and falling edge bins the extractor selected. It is a
// development-time aid only.
type SpectrumSink interface {
	Render(channel, window int, spectrum []float64, rising, falling []int)
}

// Processor runs the detection-and-removal pipeline with a fixed
// configuration. It holds no per-file state and may be reused across
// files.
type Processor struct {
	cfg  Config
	log  *zap.Logger
	sink SpectrumSink
}

// New creates a Processor with the default configuration, then applies
// options.
func New(opts ...Option) *Processor {
	p := &Processor{
		cfg: DefaultConfig(),
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Config returns the processor configuration.
func (p *Processor) Config() Config { return p.cfg }

// ChannelReport summarizes one channel's pass through the pipeline.
type ChannelReport struct {
	Index      int
	Windows    int
	Candidates int
	Bands      []detect.Band
	RMSBefore  float64
	RMSAfter   float64
}

// FileResult is the outcome of processing one file. A skipped file
// carries the reason in Err; processing of other files continues either
// way.
type FileResult struct {
	Path       string
	OutputPath string
	Skipped    bool
	Err        error
	Channels   []ChannelReport
}

// Run processes the given files independently, in order. A failure on
// one file never aborts the rest.
func (p *Processor) Run(paths []string) []FileResult {
	results := make([]FileResult, 0, len(paths))
	for _, path := range paths {
		results = append(results, p.ProcessFile(path))
	}
	return results
}

// ProcessFile decodes one file, cleans every channel and writes the
// result next to the input as "<name>-out.wav". Unsupported depths and
// undecodable files are reported as skipped, not failed.
func (p *Processor) ProcessFile(path string) FileResult {
	res := FileResult{Path: path}

	stream, err := sound.ReadWAV(path)
	if err != nil {
		res.Skipped = true
		res.Err = err
		p.log.Warn("skipping file", zap.String("path", path), zap.Error(err))
		return res
	}

	p.log.Info("decoded file",
		zap.String("path", path),
		zap.Int("samples", stream.SampleCount()),
		zap.Int("channels", stream.ChannelCount()),
		zap.Duration("duration", stream.Duration()),
		zap.Int("bitDepth", stream.BitDepth()),
	)

	cleaned := make([][]float64, stream.ChannelCount())
	res.Channels = make([]ChannelReport, stream.ChannelCount())

	process := func(c int) error {
		out, rep, err := p.processChannel(c, stream.Channel(c), stream.SampleRate())
		if err != nil {
			return err
		}
		cleaned[c] = out
		res.Channels[c] = rep
		return nil
	}

	if p.cfg.ParallelChannels && p.sink == nil {
		g := new(errgroup.Group)
		for c := range cleaned {
			g.Go(func() error { return process(c) })
		}
		err = g.Wait()
	} else {
		for c := range cleaned {
			if err = process(c); err != nil {
				break
			}
		}
	}
	if err != nil {
		res.Err = err
		return res
	}

	out, err := stream.WithChannels(cleaned)
	if err != nil {
		res.Err = err
		return res
	}

	res.OutputPath = sound.OutputName(path)
	p.log.Info("saving", zap.String("path", res.OutputPath))
	if err := sound.WriteWAV(res.OutputPath, out); err != nil {
		res.Err = err
	}
	return res
}

// processChannel runs analysis, clustering and notch filtering over one
// channel and returns the cleaned samples. When no band is confirmed
// the input slice is returned unchanged.
func (p *Processor) processChannel(idx int, samples []float64, sampleRate int) ([]float64, ChannelReport, error) {
	rep := ChannelReport{Index: idx, RMSBefore: rms(samples)}

	analyzer, err := analyze.New(sampleRate, p.cfg.WindowDurationMs)
	if err != nil {
		return nil, rep, err
	}

	clusterer := detect.NewClusterer(p.cfg.MarginHz, p.cfg.DiffThresholdHz, p.cfg.MinSupportCount)

	it := analyzer.Windows(samples)
	for it.Next() {
		win := it.Window()
		spec := analyzer.Spectrum(win)
		rep.Windows++

		rising, falling := detect.Edges(spec, len(win))
		if p.sink != nil {
			p.sink.Render(idx, it.Index(), spec, rising, falling)
		}

		cands := detect.Pair(rising, falling, sampleRate, len(win), p.cfg.DiffThresholdHz)
		rep.Candidates += len(cands)
		clusterer.AddAll(cands)
	}

	rep.Bands = clusterer.Bands()
	if len(rep.Bands) == 0 {
		p.log.Info("no interference found", zap.Int("channel", idx))
		rep.RMSAfter = rep.RMSBefore
		return samples, rep, nil
	}

	for _, b := range rep.Bands {
		p.log.Debug("applying bandstop",
			zap.Int("channel", idx),
			zap.Float64("lowHz", b.LowHz),
			zap.Float64("highHz", b.HighHz),
		)
	}
	cleaned, skipped := notch.Apply(rep.Bands, samples, float64(sampleRate))
	for _, b := range skipped {
		p.log.Warn("band cannot be filtered",
			zap.Int("channel", idx),
			zap.Float64("lowHz", b.LowHz),
			zap.Float64("highHz", b.HighHz),
		)
	}

	rep.RMSAfter = rms(cleaned)
	p.log.Info("channel cleaned",
		zap.Int("channel", idx),
		zap.Int("bands", len(rep.Bands)),
		zap.Float64("rmsBefore", rep.RMSBefore),
		zap.Float64("rmsAfter", rep.RMSAfter),
	)
	return cleaned, rep, nil
}

// rms returns the root mean square of x.
func rms(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return math.Sqrt(floats.Dot(x, x) / float64(len(x)))
}
