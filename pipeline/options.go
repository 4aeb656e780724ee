package pipeline

import "go.uber.org/zap"

// Defaults mirror the constants the tool has always shipped with.
const (
	DefaultWindowDurationMs = 10000
	DefaultDiffThresholdHz  = 50.0
	DefaultMarginHz         = 50.0
	DefaultMinSupportCount  = 20
)

// Config holds the detection and filtering knobs.
type Config struct {
	// WindowDurationMs is the length of one analysis window.
	WindowDurationMs int
	// DiffThresholdHz bounds both the rising/falling edge pairing
	// distance and the cluster midpoint merge distance.
	DiffThresholdHz float64
	// MarginHz widens each candidate band outward before clustering so
	// near-identical detections overlap.
	MarginHz float64
	// MinSupportCount is the number of detections a cluster must exceed
	// to be confirmed. It is a sensitivity knob: shorter windows mean
	// more windows per file, so it should scale inversely with
	// WindowDurationMs.
	MinSupportCount int
	// ParallelChannels processes a file's channels in independent
	// goroutines. Ignored while a spectrum sink is attached, since the
	// diagnostic path is serial.
	ParallelChannels bool
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		WindowDurationMs: DefaultWindowDurationMs,
		DiffThresholdHz:  DefaultDiffThresholdHz,
		MarginHz:         DefaultMarginHz,
		MinSupportCount:  DefaultMinSupportCount,
	}
}

// Option configures a Processor.
type Option func(*Processor)

// WithWindowDuration sets the analysis window duration in milliseconds.
func WithWindowDuration(ms int) Option {
	return func(p *Processor) {
		if ms > 0 {
			p.cfg.WindowDurationMs = ms
		}
	}
}

// WithDiffThreshold sets the edge pairing and cluster merge distance in Hz.
func WithDiffThreshold(hz float64) Option {
	return func(p *Processor) {
		if hz > 0 {
			p.cfg.DiffThresholdHz = hz
		}
	}
}

// WithMargin sets the band expansion margin in Hz.
func WithMargin(hz float64) Option {
	return func(p *Processor) {
		if hz >= 0 {
			p.cfg.MarginHz = hz
		}
	}
}

// WithMinSupport sets the minimum cluster support count.
func WithMinSupport(count int) Option {
	return func(p *Processor) {
		if count >= 0 {
			p.cfg.MinSupportCount = count
		}
	}
}

// WithParallelChannels enables per-channel worker goroutines.
func WithParallelChannels() Option {
	return func(p *Processor) {
		p.cfg.ParallelChannels = true
	}
}

// WithLogger sets the logger. The default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(p *Processor) {
		if log != nil {
			p.log = log
		}
	}
}

// WithSpectrumSink attaches a diagnostic renderer that receives every
// window's spectrum and detected edge indices. Rendering must not
// influence results; attaching a sink forces serial channel processing.
func WithSpectrumSink(sink SpectrumSink) Option {
	return func(p *Processor) {
		p.sink = sink
	}
}
