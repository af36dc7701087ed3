package fft

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Transform computes forward and inverse DFTs of a fixed power-of-two
// length, in place, over caller-owned []complex128 buffers.
//
// All state is allocated at construction. Forward and Inverse are safe to
// call from a real-time thread: they allocate nothing and contain no
// sin/cos/exp calls. A Transform is not safe for concurrent use; create one
// per goroutine.
type Transform struct {
	n       int
	backend Backend

	// radix2 state
	twiddle []complex128

	// algofft state
	plan *algofft.Plan[complex128]

	// gonum state
	cfft *fourier.CmplxFFT

	// scratch holds the out-of-place destination for library backends
	// whose API takes distinct src/dst buffers.
	scratch []complex128
}

// Option configures a Transform.
type Option func(*transformConfig)

type transformConfig struct {
	backend Backend
}

// WithBackend requests a specific backend instead of the environment/auto
// selection. Requesting an unavailable backend falls back to radix2.
func WithBackend(b Backend) Option {
	return func(cfg *transformConfig) {
		cfg.backend = b
	}
}

// New creates a Transform of length n. n must be a power of two and >= 2.
func New(n int, opts ...Option) (*Transform, error) {
	if n < 2 || n&(n-1) != 0 {
		return nil, fmt.Errorf("fft: length must be a power of two and >= 2: %d", n)
	}

	cfg := transformConfig{backend: BackendAuto}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	t := &Transform{n: n, backend: BackendRadix2}

	// The twiddle table is always built: radix2 is both the default
	// backend and the runtime fallback for library backends.
	t.initRadix2()
	t.initBackend(resolveBackend(cfg.backend))

	return t, nil
}

// initBackend sets up the selected backend, falling back to radix2 when a
// library backend fails to initialize.
func (t *Transform) initBackend(b Backend) {
	switch b {
	case BackendAlgoFFT:
		plan, err := algofft.NewPlan64(t.n)
		if err != nil {
			return
		}

		t.plan = plan
		t.scratch = make([]complex128, t.n)
		t.backend = BackendAlgoFFT

	case BackendGonum:
		t.cfft = fourier.NewCmplxFFT(t.n)
		t.scratch = make([]complex128, t.n)
		t.backend = BackendGonum
	}
}

// Len returns the transform length.
func (t *Transform) Len() int { return t.n }

// Backend returns the backend selected at construction.
func (t *Transform) Backend() Backend { return t.backend }

// Forward computes the in-place DFT X[k] = sum_j x[j]*exp(-2*pi*i*j*k/N).
//
// x must have length Len(); shorter or longer buffers are left untouched.
func (t *Transform) Forward(x []complex128) {
	if len(x) != t.n {
		return
	}

	switch t.backend {
	case BackendAlgoFFT:
		if err := t.plan.Forward(t.scratch, x); err != nil {
			t.forwardRadix2(x)
			return
		}

		copy(x, t.scratch)

	case BackendGonum:
		t.cfft.Coefficients(t.scratch, x)
		copy(x, t.scratch)

	default:
		t.forwardRadix2(x)
	}
}

// Inverse computes the in-place inverse DFT, normalized so that Forward
// followed by Inverse reproduces the input to within rounding.
func (t *Transform) Inverse(x []complex128) {
	if len(x) != t.n {
		return
	}

	switch t.backend {
	case BackendAlgoFFT:
		if err := t.plan.Inverse(t.scratch, x); err != nil {
			t.inverseRadix2(x)
			return
		}

		copy(x, t.scratch)

	case BackendGonum:
		t.cfft.Sequence(t.scratch, x)

		// gonum's Sequence is unnormalized: Coefficients then Sequence
		// scales the input by n.
		inv := complex(1/float64(t.n), 0)
		for i, v := range t.scratch {
			x[i] = v * inv
		}

	default:
		t.inverseRadix2(x)
	}
}
