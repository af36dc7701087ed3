package pitch

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-pitch/dsp/note"
	"github.com/cwbudde/algo-pitch/dsp/yin"
	"github.com/cwbudde/algo-pitch/logging"
)

const (
	// MinFrequency is the lower bound of the detectable range in Hz,
	// exclusive.
	MinFrequency = 20.0

	// MaxFrequency is the upper bound of the detectable range in Hz,
	// exclusive.
	MaxFrequency = 4200.0

	// MinReferencePitch is the lowest accepted A4 tuning in Hz.
	MinReferencePitch = 430.0

	// MaxReferencePitch is the highest accepted A4 tuning in Hz.
	MaxReferencePitch = 450.0

	// MaxFrameSize is the largest accepted analysis frame in samples.
	MaxFrameSize = 32768
)

// Detector is a streaming monophonic pitch detector.
//
// Incoming blocks accumulate in a ring of 2*frameSize samples; once a full
// frame is buffered, the YIN estimator runs every frameSize/2 new samples
// (50% overlap) and the latest Result is repeated in between.
//
// Process must not be called concurrently with itself or with Reset on the
// same instance. SetReferencePitch and Reset are safe to call from other
// goroutines while Process runs.
type Detector struct {
	sampleRate int
	frameSize  int
	hop        int

	estimator *yin.Estimator

	ring      []float64
	frame     []float64
	workspace []float64

	writePos        int
	samplesReady    int
	samplesSinceHop int
	lastResult      Result

	resetPending atomic.Bool
	refPitchBits atomic.Uint64
}

// New creates a Detector with validated configuration.
//
// sampleRate must be positive and frameSize in (1, 32768]; a power-of-two
// frameSize is recommended since the FFT size is the next power of two at
// or above 2*frameSize. Invalid arguments emit an ERROR diagnostic and
// return a nil detector.
func New(sampleRate, frameSize int, opts ...Option) (*Detector, error) {
	cfg := defaultDetectorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := validate(sampleRate, frameSize, cfg); err != nil {
		logging.Emitf(logging.LevelError, "pitch_detector_create: %v", err)
		return nil, err
	}

	estimator, err := yin.New(sampleRate, frameSize, cfg.threshold, yin.WithFFTBackend(cfg.backend))
	if err != nil {
		logging.Emitf(logging.LevelError, "pitch_detector_create: %v", err)
		return nil, err
	}

	d := &Detector{
		sampleRate: sampleRate,
		frameSize:  frameSize,
		hop:        frameSize / 2,
		estimator:  estimator,
		ring:       make([]float64, 2*frameSize),
		frame:      make([]float64, frameSize),
		workspace:  make([]float64, frameSize/2),
	}
	d.refPitchBits.Store(math.Float64bits(cfg.referencePitch))

	logging.Emitf(logging.LevelInfo,
		"pitch_detector_create: sample_rate=%d frame_size=%d threshold=%.3f reference_pitch_hz=%.2f fft_backend=%s",
		sampleRate, frameSize, cfg.threshold, cfg.referencePitch, estimator.BackendName())

	return d, nil
}

func validate(sampleRate, frameSize int, cfg detectorConfig) error {
	if sampleRate <= 0 {
		return fmt.Errorf("pitch: sample rate must be > 0: %d", sampleRate)
	}

	if frameSize <= 1 || frameSize > MaxFrameSize {
		return fmt.Errorf("pitch: frame size must be in (1, %d]: %d", MaxFrameSize, frameSize)
	}

	if math.IsNaN(cfg.threshold) || math.IsInf(cfg.threshold, 0) || cfg.threshold < 0 || cfg.threshold > 1 {
		return fmt.Errorf("pitch: threshold must be finite and in [0, 1]: %f", cfg.threshold)
	}

	if !validReferencePitch(cfg.referencePitch) {
		return fmt.Errorf("pitch: reference pitch must be finite and in [%.0f, %.0f]: %f",
			MinReferencePitch, MaxReferencePitch, cfg.referencePitch)
	}

	return nil
}

func validReferencePitch(hz float64) bool {
	return !math.IsNaN(hz) && !math.IsInf(hz, 0) && hz >= MinReferencePitch && hz <= MaxReferencePitch
}

// SampleRate returns the configured sample rate in Hz.
func (d *Detector) SampleRate() int { return d.sampleRate }

// FrameSize returns the analysis frame length in samples.
func (d *Detector) FrameSize() int { return d.frameSize }

// HopSize returns the number of new samples between analyses.
func (d *Detector) HopSize() int { return d.hop }

// Threshold returns the YIN acceptance threshold.
func (d *Detector) Threshold() float64 { return d.estimator.Threshold() }

// BackendName returns the name of the FFT backend in use.
func (d *Detector) BackendName() string { return d.estimator.BackendName() }

// ReferencePitch returns the current A4 tuning in Hz.
func (d *Detector) ReferencePitch() float64 {
	return math.Float64frombits(d.refPitchBits.Load())
}

// SetReferencePitch updates the A4 tuning. It may be called from a
// non-audio thread while Process runs; the new value takes effect no later
// than the next hop. Returns false (and emits an ERROR diagnostic) for
// values outside [430, 450] Hz.
func (d *Detector) SetReferencePitch(referenceHz float64) bool {
	if !validReferencePitch(referenceHz) {
		logging.Emitf(logging.LevelError,
			"pitch_detector_set_reference_pitch: reference pitch must be finite and in [%.0f, %.0f]: %f",
			MinReferencePitch, MaxReferencePitch, referenceHz)

		return false
	}

	d.refPitchBits.Store(math.Float64bits(referenceHz))

	return true
}

// Reset schedules a return to the silent state. The flag is observed at the
// top of the next Process call, which zeroes the ring and blanks the last
// result; buffers are kept. Safe to call from any goroutine.
func (d *Detector) Reset() {
	d.resetPending.Store(true)
}

// Process consumes one block of mono samples and returns the most recent
// pitch estimate.
//
// Until a full frame has accumulated, and between hops, the previous result
// is returned verbatim. Silent or NaN input yields a not-pitched result;
// noise is reported as pitched only when the minimum of its normalized
// difference function falls below the 0.5 fallback. Process never fails. A
// nil detector or an empty block returns the zero Result without touching
// any state.
func (d *Detector) Process(samples []float64) Result {
	if d == nil || len(samples) == 0 {
		return Result{}
	}

	if d.resetPending.CompareAndSwap(true, false) {
		for i := range d.ring {
			d.ring[i] = 0
		}

		d.writePos = 0
		d.samplesReady = 0
		d.samplesSinceHop = 0
		d.lastResult = Result{}
	}

	d.append(samples)

	if d.samplesReady < d.frameSize {
		return d.lastResult
	}

	if d.samplesSinceHop < d.hop {
		return d.lastResult
	}

	d.samplesSinceHop = 0

	d.assembleFrame()

	freq := d.estimator.Detect(d.frame, d.workspace)
	d.lastResult = d.compose(freq, d.estimator.Probability())

	return d.lastResult
}

// append feeds samples into the ring in delivery order, saturating the
// ready counter at one frame.
func (d *Detector) append(samples []float64) {
	d.samplesReady += len(samples)
	if d.samplesReady > d.frameSize {
		d.samplesReady = d.frameSize
	}

	d.samplesSinceHop += len(samples)

	for len(samples) > 0 {
		n := copy(d.ring[d.writePos:], samples)

		d.writePos += n
		if d.writePos == len(d.ring) {
			d.writePos = 0
		}

		samples = samples[n:]
	}
}

// assembleFrame copies the newest frameSize samples from the ring into the
// contiguous scratch frame, handling wrap.
func (d *Detector) assembleFrame() {
	start := d.writePos - d.frameSize
	if start < 0 {
		start += len(d.ring)
	}

	n := copy(d.frame, d.ring[start:])
	copy(d.frame[n:], d.ring[:d.frameSize-n])
}

// compose builds the Result for one detection, applying the frequency gate
// and the note conversion against the current reference pitch.
func (d *Detector) compose(freq, prob float64) Result {
	if !(freq > MinFrequency && freq < MaxFrequency) {
		return Result{}
	}

	if prob < 0 {
		prob = 0
	} else if prob > 1 {
		prob = 1
	}

	midi, name, cents := note.FromFrequency(freq, d.ReferencePitch())

	return Result{
		Pitched:     true,
		Frequency:   freq,
		Probability: prob,
		MidiNote:    midi,
		CentsOffset: cents,
		NoteName:    name,
	}
}
