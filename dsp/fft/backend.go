package fft

import "os"

// Backend identifies the transform implementation used by a Transform.
type Backend int

const (
	// BackendAuto selects the highest-ranked available backend.
	BackendAuto Backend = iota

	// BackendRadix2 is the built-in iterative Cooley-Tukey implementation.
	// Always available.
	BackendRadix2

	// BackendAlgoFFT uses a github.com/MeKo-Christian/algo-fft plan with
	// SIMD codelets. Preferred when available.
	BackendAlgoFFT

	// BackendGonum uses gonum.org/v1/gonum/dsp/fourier with preallocated
	// coefficient buffers.
	BackendGonum
)

// String returns the canonical backend name.
func (b Backend) String() string {
	switch b {
	case BackendRadix2:
		return "radix2"
	case BackendAlgoFFT:
		return "algofft"
	case BackendGonum:
		return "gonum"
	default:
		return "auto"
	}
}

// EnvBackendVar is the environment variable consulted at construction when
// no explicit backend option is given.
const EnvBackendVar = "FFT_BACKEND"

// parseBackendName maps an FFT_BACKEND value to a Backend.
//
// "manual" is a historical synonym for radix2. "accelerate" and "fftw" name
// platform backends that are not compiled into the pure-Go build; they
// resolve to radix2 so that an explicit request degrades silently rather
// than failing. Unknown or empty values mean auto.
func parseBackendName(value string) Backend {
	switch value {
	case "radix2", "manual":
		return BackendRadix2
	case "algofft":
		return BackendAlgoFFT
	case "gonum":
		return BackendGonum
	case "accelerate", "fftw":
		return BackendRadix2
	default:
		return BackendAuto
	}
}

// resolveBackend applies the selection policy: an explicit request wins,
// then the environment, then auto-ranking (algofft > gonum > radix2).
func resolveBackend(requested Backend) Backend {
	if requested != BackendAuto {
		return requested
	}

	if env := parseBackendName(os.Getenv(EnvBackendVar)); env != BackendAuto {
		return env
	}

	return BackendAlgoFFT
}
