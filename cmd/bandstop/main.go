// Command bandstop removes persistent narrow-band interference (hum,
// whine) from WAV files.
//
// Usage:
//
//	bandstop [flags] <files...>
//
// Each input file name.ext produces a cleaned name-out.wav with the same
// sample rate, channel order and bit depth. Files that cannot be decoded
// or use an unsupported bit depth are skipped; the remaining files are
// still processed.
//
// Examples:
//
//	bandstop recording.wav
//	bandstop -verbose -window-ms 5000 -min-count 40 a.wav b.wav
//	bandstop -show-spectrum recording.wav
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jamesthoughton/bandstop/pipeline"
)

func main() {
	verbose := flag.Bool("verbose", false, "log per-band diagnostics")
	showSpectrum := flag.Bool("show-spectrum", false, "render each window's spectrum to stderr (serial, slow)")
	parallel := flag.Bool("parallel", false, "process a file's channels concurrently")
	windowMs := flag.Int("window-ms", pipeline.DefaultWindowDurationMs, "analysis window duration in milliseconds")
	minCount := flag.Int("min-count", pipeline.DefaultMinSupportCount, "detections a band must exceed to be confirmed")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bandstop [flags] <files...>\n\n")
		fmt.Fprintf(os.Stderr, "Detects persistent narrow-band interference and removes it with\n")
		fmt.Fprintf(os.Stderr, "zero-phase notch filters. Writes <name>-out.wav next to each input.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	log := newLogger(*verbose)
	defer log.Sync()

	opts := []pipeline.Option{
		pipeline.WithLogger(log),
		pipeline.WithWindowDuration(*windowMs),
		pipeline.WithMinSupport(*minCount),
	}
	if *parallel {
		opts = append(opts, pipeline.WithParallelChannels())
	}
	if *showSpectrum {
		opts = append(opts, pipeline.WithSpectrumSink(newSpectrumView(os.Stderr)))
	}

	proc := pipeline.New(opts...)

	failed := 0
	for _, res := range proc.Run(paths) {
		switch {
		case res.Skipped:
			fmt.Printf("%s: skipped (%v)\n", res.Path, res.Err)
		case res.Err != nil:
			failed++
			fmt.Printf("%s: failed (%v)\n", res.Path, res.Err)
		default:
			bands := 0
			for _, ch := range res.Channels {
				bands += len(ch.Bands)
			}
			fmt.Printf("%s: %d band(s) removed -> %s\n", res.Path, bands, res.OutputPath)
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	log, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: logger init: %v\n", err)
		os.Exit(1)
	}
	return log
}
