package yin

import (
	"testing"

	"github.com/cwbudde/algo-pitch/dsp/fft"
	"github.com/cwbudde/algo-pitch/internal/testutil"
)

func BenchmarkDetect(b *testing.B) {
	backends := []fft.Backend{fft.BackendRadix2, fft.BackendAlgoFFT, fft.BackendGonum}
	sizes := []struct {
		name string
		size int
	}{
		{"1K", 1024},
		{"2K", 2048},
		{"4K", 4096},
	}

	for _, backend := range backends {
		for _, testCase := range sizes {
			b.Run(backend.String()+"/"+testCase.name, func(b *testing.B) {
				est, err := New(44100, testCase.size, 0.10, WithFFTBackend(backend))
				if err != nil {
					b.Fatalf("New: %v", err)
				}

				frame := testutil.DeterministicSine(440, 44100, 1.0, testCase.size)
				workspace := make([]float64, testCase.size/2)

				b.SetBytes(int64(testCase.size * 8))
				b.ResetTimer()

				for range b.N {
					est.Detect(frame, workspace)
				}
			})
		}
	}
}
