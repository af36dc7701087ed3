package pitch

import "github.com/cwbudde/algo-pitch/dsp/fft"

const (
	// DefaultThreshold is the CMNDF acceptance threshold used when no
	// option overrides it. Lower values are stricter.
	DefaultThreshold = 0.10

	// DefaultReferencePitch is the A4 tuning in Hz used when no option
	// overrides it.
	DefaultReferencePitch = 440.0
)

type detectorConfig struct {
	threshold      float64
	referencePitch float64
	backend        fft.Backend
}

// Option configures a Detector at construction.
type Option func(*detectorConfig)

// WithThreshold sets the YIN acceptance threshold, in [0, 1].
func WithThreshold(threshold float64) Option {
	return func(cfg *detectorConfig) {
		cfg.threshold = threshold
	}
}

// WithReferencePitch sets the A4 tuning in Hz, in [430, 450].
func WithReferencePitch(referenceHz float64) Option {
	return func(cfg *detectorConfig) {
		cfg.referencePitch = referenceHz
	}
}

// WithFFTBackend selects the FFT backend used by the YIN estimator instead
// of the environment/auto selection.
func WithFFTBackend(b fft.Backend) Option {
	return func(cfg *detectorConfig) {
		cfg.backend = b
	}
}

func defaultDetectorConfig() detectorConfig {
	return detectorConfig{
		threshold:      DefaultThreshold,
		referencePitch: DefaultReferencePitch,
		backend:        fft.BackendAuto,
	}
}
