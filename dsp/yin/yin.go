// Package yin implements the YIN fundamental-frequency estimator
// (de Cheveigné & Kawahara 2002) with an FFT-accelerated difference
// function.
//
// The estimator operates on single frames and keeps all buffers
// preallocated, so Detect is safe to call from a real-time audio thread.
package yin

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-pitch/dsp/fft"
)

// epsilon is the float64 machine epsilon, used to reject degenerate
// parabola fits.
const epsilon = 2.220446049250313e-16

// Estimator computes one fundamental-frequency estimate per frame.
//
// The search range for the period is [2, frameSize/2) samples. All state is
// allocated at construction; Detect performs no allocations and no
// sin/cos/exp calls. An Estimator is not safe for concurrent use.
type Estimator struct {
	sampleRate int
	frameSize  int
	half       int
	threshold  float64

	transform *fft.Transform

	fftF     []complex128
	fftG     []complex128
	squares  []float64
	sqPrefix []float64

	probability float64
}

// Option configures an Estimator.
type Option func(*estimatorConfig)

type estimatorConfig struct {
	backend fft.Backend
}

// WithFFTBackend selects the FFT backend used for the difference function.
func WithFFTBackend(b fft.Backend) Option {
	return func(cfg *estimatorConfig) {
		cfg.backend = b
	}
}

// New creates a YIN estimator for frames of frameSize samples.
//
// threshold is the absolute CMNDF acceptance threshold; lower values are
// stricter. The FFT size is the smallest power of two >= 2*frameSize.
func New(sampleRate, frameSize int, threshold float64, opts ...Option) (*Estimator, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("yin: sample rate must be > 0: %d", sampleRate)
	}

	if frameSize <= 1 {
		return nil, fmt.Errorf("yin: frame size must be > 1: %d", frameSize)
	}

	if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("yin: threshold must be in [0, 1]: %f", threshold)
	}

	cfg := estimatorConfig{backend: fft.BackendAuto}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	fftSize := 1
	for fftSize < 2*frameSize {
		fftSize <<= 1
	}

	transform, err := fft.New(fftSize, fft.WithBackend(cfg.backend))
	if err != nil {
		return nil, fmt.Errorf("yin: %w", err)
	}

	return &Estimator{
		sampleRate: sampleRate,
		frameSize:  frameSize,
		half:       frameSize / 2,
		threshold:  threshold,
		transform:  transform,
		fftF:       make([]complex128, fftSize),
		fftG:       make([]complex128, fftSize),
		squares:    make([]float64, frameSize),
		sqPrefix:   make([]float64, frameSize+1),
	}, nil
}

// SampleRate returns the configured sample rate in Hz.
func (e *Estimator) SampleRate() int { return e.sampleRate }

// FrameSize returns the frame length in samples.
func (e *Estimator) FrameSize() int { return e.frameSize }

// Threshold returns the CMNDF acceptance threshold.
func (e *Estimator) Threshold() float64 { return e.threshold }

// BackendName returns the name of the FFT backend in use.
func (e *Estimator) BackendName() string { return e.transform.Backend().String() }

// Probability returns the confidence of the most recent Detect call,
// in [0, 1].
func (e *Estimator) Probability() float64 { return e.probability }

// Detect estimates the fundamental frequency of one frame.
//
// frame must hold at least FrameSize samples and workspace at least
// FrameSize/2 floats; the workspace contents are overwritten with the
// normalized difference function. Returns the frequency in Hz, or -1 when
// no pitch is detected. The confidence is available via Probability.
func (e *Estimator) Detect(frame, workspace []float64) float64 {
	if len(workspace) < e.half || len(frame) < e.frameSize {
		e.probability = 0
		return -1
	}

	df := workspace[:e.half]
	for i := range df {
		df[i] = 0
	}

	e.difference(frame[:e.frameSize], df)
	e.cmndf(df)

	tau := e.absoluteThreshold(df)
	if tau < 0 {
		e.probability = 0
		return -1
	}

	refined := e.parabolicInterpolation(df, tau)
	e.probability = 1 - df[tau]

	return float64(e.sampleRate) / refined
}

// difference fills df with the squared-difference function
//
//	d(tau) = sum_{j=0}^{W-1} (x[j] - x[j+tau])^2 = A + B(tau) - 2*r(tau)
//
// where A and B(tau) come from a prefix sum of squares and r(tau) is the
// cross-correlation of x[0..W-1] with x[0..2W-1], computed in O(N log N)
// via the FFT.
func (e *Estimator) difference(frame, df []float64) {
	w := e.half

	// f = x[0..W-1], zero-padded. The buffers are reused across calls, so
	// everything beyond the valid samples must be re-zeroed every time.
	for j := 0; j < w; j++ {
		e.fftF[j] = complex(frame[j], 0)
	}

	for j := w; j < len(e.fftF); j++ {
		e.fftF[j] = 0
	}

	// g = x[0..2W-1], zero-padded.
	for j := 0; j < e.frameSize; j++ {
		e.fftG[j] = complex(frame[j], 0)
	}

	for j := e.frameSize; j < len(e.fftG); j++ {
		e.fftG[j] = 0
	}

	e.transform.Forward(e.fftF)
	e.transform.Forward(e.fftG)

	// Cross-correlation in the frequency domain: H = conj(F) * G.
	for i := range e.fftF {
		f := e.fftF[i]
		e.fftF[i] = complex(real(f), -imag(f)) * e.fftG[i]
	}

	e.transform.Inverse(e.fftF)

	// Prefix sums of squares for A and B(tau).
	vecmath.MulBlock(e.squares, frame, frame)

	running := 0.0
	e.sqPrefix[0] = 0

	for i, v := range e.squares {
		running += v
		e.sqPrefix[i+1] = running
	}

	a := e.sqPrefix[w]
	for tau := range df {
		b := e.sqPrefix[tau+w] - e.sqPrefix[tau]
		df[tau] = a + b - 2*real(e.fftF[tau])
	}
}

// cmndf rewrites df in place as the cumulative mean normalized difference
// function: d'(0) = 1, d'(tau) = d(tau) * tau / sum_{j=1..tau} d(j).
func (e *Estimator) cmndf(df []float64) {
	df[0] = 1

	running := 0.0
	for tau := 1; tau < len(df); tau++ {
		running += df[tau]

		if running == 0 {
			df[tau] = 1
		} else {
			df[tau] *= float64(tau) / running
		}
	}
}

// absoluteThreshold returns the selected integer lag, or -1 when the frame
// is not tonal enough.
func (e *Estimator) absoluteThreshold(df []float64) int {
	// d'(1) is always 1 after normalization; start at 2 and follow the
	// first dip below the threshold to its local minimum.
	for tau := 2; tau < len(df); tau++ {
		if df[tau] < e.threshold {
			for tau+1 < len(df) && df[tau+1] < df[tau] {
				tau++
			}

			return tau
		}
	}

	// Nothing below the threshold: accept the global minimum when it is
	// convincing enough.
	minTau := 2
	if minTau >= len(df) {
		return -1
	}

	for tau := 3; tau < len(df); tau++ {
		if df[tau] < df[minTau] {
			minTau = tau
		}
	}

	if df[minTau] < 0.5 {
		return minTau
	}

	return -1
}

// parabolicInterpolation refines the integer lag to sub-sample accuracy by
// fitting a parabola through the lag and its neighbors.
func (e *Estimator) parabolicInterpolation(df []float64, tau int) float64 {
	if tau <= 0 || tau >= len(df)-1 {
		return float64(tau)
	}

	s0 := df[tau-1]
	s1 := df[tau]
	s2 := df[tau+1]

	denom := 2 * (2*s1 - s2 - s0)
	if math.Abs(denom) < epsilon {
		return float64(tau)
	}

	return float64(tau) + (s2-s0)/denom
}
