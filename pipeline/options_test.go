package pipeline

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := New().Config()
	if cfg.WindowDurationMs != DefaultWindowDurationMs {
		t.Fatalf("WindowDurationMs = %d", cfg.WindowDurationMs)
	}
	if cfg.DiffThresholdHz != DefaultDiffThresholdHz {
		t.Fatalf("DiffThresholdHz = %v", cfg.DiffThresholdHz)
	}
	if cfg.MarginHz != DefaultMarginHz {
		t.Fatalf("MarginHz = %v", cfg.MarginHz)
	}
	if cfg.MinSupportCount != DefaultMinSupportCount {
		t.Fatalf("MinSupportCount = %d", cfg.MinSupportCount)
	}
	if cfg.ParallelChannels {
		t.Fatal("ParallelChannels on by default")
	}
}

func TestOptionsApply(t *testing.T) {
	cfg := New(
		WithWindowDuration(500),
		WithDiffThreshold(10),
		WithMargin(25),
		WithMinSupport(5),
		WithParallelChannels(),
	).Config()

	if cfg.WindowDurationMs != 500 || cfg.DiffThresholdHz != 10 || cfg.MarginHz != 25 {
		t.Fatalf("config = %+v", cfg)
	}
	if cfg.MinSupportCount != 5 || !cfg.ParallelChannels {
		t.Fatalf("config = %+v", cfg)
	}
}

func TestOptionsRejectBadValues(t *testing.T) {
	cfg := New(
		WithWindowDuration(0),
		WithDiffThreshold(-1),
		WithMargin(-1),
		WithMinSupport(-1),
		WithLogger(nil),
		nil,
	).Config()

	if cfg != DefaultConfig() {
		t.Fatalf("invalid options changed config: %+v", cfg)
	}
}
