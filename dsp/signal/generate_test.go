package signal

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-pitch/internal/testutil"
)

func TestSine_MatchesClosedForm(t *testing.T) {
	g := NewGenerator(44100)

	sig, err := g.Sine(440, 0.5, 64)
	if err != nil {
		t.Fatalf("Sine: %v", err)
	}

	want := testutil.DeterministicSine(440, 44100, 0.5, 64)
	testutil.RequireSliceNearlyEqual(t, sig, want, 1e-12)
}

func TestSine_Validation(t *testing.T) {
	if _, err := NewGenerator(44100).Sine(440, 1, 0); err == nil {
		t.Error("zero samples: expected error")
	}

	if _, err := NewGenerator(0).Sine(440, 1, 16); err == nil {
		t.Error("zero sample rate: expected error")
	}
}

func TestHarmonic_FundamentalOnly(t *testing.T) {
	g := NewGenerator(44100)

	harm, err := g.Harmonic(440, []float64{1}, 64)
	if err != nil {
		t.Fatalf("Harmonic: %v", err)
	}

	pure, err := g.Sine(440, 1, 64)
	if err != nil {
		t.Fatalf("Sine: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, harm, pure, 1e-12)
}

func TestHarmonic_Validation(t *testing.T) {
	g := NewGenerator(44100)

	if _, err := g.Harmonic(440, nil, 64); err == nil {
		t.Error("empty amplitudes: expected error")
	}

	if _, err := g.Harmonic(440, []float64{1}, -1); err == nil {
		t.Error("negative samples: expected error")
	}
}

func TestWhiteNoise_DeterministicPerSeed(t *testing.T) {
	a, err := NewGenerator(44100, WithSeed(5)).WhiteNoise(1, 128)
	if err != nil {
		t.Fatalf("WhiteNoise: %v", err)
	}

	b, err := NewGenerator(44100, WithSeed(5)).WhiteNoise(1, 128)
	if err != nil {
		t.Fatalf("WhiteNoise: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, a, b, 0)

	for i, v := range a {
		if math.Abs(v) > 1 {
			t.Fatalf("sample %d out of range: %v", i, v)
		}
	}
}

func TestNormalize(t *testing.T) {
	out, err := Normalize([]float64{0.25, -0.5, 0.1}, 1)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	want := []float64{0.5, -1, 0.2}
	testutil.RequireSliceNearlyEqual(t, out, want, 1e-12)
}

func TestNormalize_SilenceStaysSilent(t *testing.T) {
	out, err := Normalize(make([]float64, 8), 1)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, out, make([]float64, 8), 0)
}

func TestNormalize_Validation(t *testing.T) {
	if _, err := Normalize(nil, 1); err == nil {
		t.Error("empty input: expected error")
	}

	if _, err := Normalize([]float64{1}, -1); err == nil {
		t.Error("negative peak: expected error")
	}
}
