package fft

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	godsp "github.com/mjibson/go-dsp/fft"
)

var testBackends = []Backend{BackendRadix2, BackendAlgoFFT, BackendGonum}

func randomComplex(seed int64, n int) []complex128 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]complex128, n)

	for i := range out {
		out[i] = complex(rng.Float64()*2-1, rng.Float64()*2-1)
	}

	return out
}

func TestNew_InvalidLength(t *testing.T) {
	for _, n := range []int{-4, 0, 1, 3, 6, 1000} {
		if _, err := New(n); err == nil {
			t.Errorf("New(%d): expected error", n)
		}
	}
}

func TestTransform_RoundTrip(t *testing.T) {
	for _, backend := range testBackends {
		tr, err := New(256, WithBackend(backend))
		if err != nil {
			t.Fatalf("New: %v", err)
		}

		in := randomComplex(7, 256)
		x := make([]complex128, len(in))
		copy(x, in)

		tr.Forward(x)
		tr.Inverse(x)

		for i := range x {
			if cmplx.Abs(x[i]-in[i]) > 1e-9 {
				t.Fatalf("%v: round trip mismatch at %d: got %v, want %v", backend, i, x[i], in[i])
			}
		}
	}
}

func TestTransform_MatchesReference(t *testing.T) {
	in := randomComplex(42, 512)
	want := godsp.FFT(in)

	for _, backend := range testBackends {
		tr, err := New(512, WithBackend(backend))
		if err != nil {
			t.Fatalf("New: %v", err)
		}

		x := make([]complex128, len(in))
		copy(x, in)
		tr.Forward(x)

		for i := range x {
			if cmplx.Abs(x[i]-want[i]) > 1e-8 {
				t.Fatalf("%v: bin %d: got %v, want %v", backend, i, x[i], want[i])
			}
		}
	}
}

func TestTransform_ImpulseSpectrum(t *testing.T) {
	// The DFT of a unit impulse at index 0 is flat with every bin 1.
	tr, err := New(64, WithBackend(BackendRadix2))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	x := make([]complex128, 64)
	x[0] = 1

	tr.Forward(x)

	for i := range x {
		if cmplx.Abs(x[i]-1) > 1e-12 {
			t.Fatalf("bin %d: got %v, want 1", i, x[i])
		}
	}
}

func TestTransform_SineBin(t *testing.T) {
	// A sine landing exactly on bin 8 concentrates all energy in bins 8
	// and N-8.
	const n = 128

	tr, err := New(n, WithBackend(BackendRadix2))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	x := make([]complex128, n)
	for i := range x {
		x[i] = complex(math.Sin(2*math.Pi*8*float64(i)/n), 0)
	}

	tr.Forward(x)

	for i := range x {
		mag := cmplx.Abs(x[i])
		if i == 8 || i == n-8 {
			if math.Abs(mag-n/2) > 1e-9 {
				t.Errorf("bin %d: got magnitude %v, want %v", i, mag, float64(n)/2)
			}
		} else if mag > 1e-9 {
			t.Errorf("bin %d: got magnitude %v, want 0", i, mag)
		}
	}
}

func TestTransform_BackendSelection(t *testing.T) {
	cases := []struct {
		env  string
		want Backend
	}{
		{"radix2", BackendRadix2},
		{"manual", BackendRadix2},
		{"accelerate", BackendRadix2},
		{"fftw", BackendRadix2},
		{"gonum", BackendGonum},
		{"algofft", BackendAlgoFFT},
		{"nonsense", BackendAlgoFFT},
		{"", BackendAlgoFFT},
	}

	for _, tc := range cases {
		t.Setenv(EnvBackendVar, tc.env)

		tr, err := New(64)
		if err != nil {
			t.Fatalf("New: %v", err)
		}

		if tr.Backend() != tc.want {
			t.Errorf("FFT_BACKEND=%q: got %v, want %v", tc.env, tr.Backend(), tc.want)
		}
	}
}

func TestTransform_ExplicitBackendBeatsEnv(t *testing.T) {
	t.Setenv(EnvBackendVar, "gonum")

	tr, err := New(64, WithBackend(BackendRadix2))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if tr.Backend() != BackendRadix2 {
		t.Errorf("got %v, want %v", tr.Backend(), BackendRadix2)
	}
}

func TestTransform_WrongLengthIgnored(t *testing.T) {
	tr, err := New(64, WithBackend(BackendRadix2))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	x := []complex128{1, 2, 3}
	tr.Forward(x)

	if x[0] != 1 || x[1] != 2 || x[2] != 3 {
		t.Errorf("short buffer modified: %v", x)
	}
}

func TestBackend_String(t *testing.T) {
	cases := map[Backend]string{
		BackendAuto:    "auto",
		BackendRadix2:  "radix2",
		BackendAlgoFFT: "algofft",
		BackendGonum:   "gonum",
	}

	for b, want := range cases {
		if got := b.String(); got != want {
			t.Errorf("Backend(%d).String(): got %q, want %q", int(b), got, want)
		}
	}
}
