package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate

	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))

	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out
}

// Blocks splits data into consecutive blocks of blockSize samples. Trailing
// samples that do not fill a block are dropped.
func Blocks(data []float64, blockSize int) [][]float64 {
	if blockSize <= 0 {
		return nil
	}

	out := make([][]float64, 0, len(data)/blockSize)
	for i := 0; i+blockSize <= len(data); i += blockSize {
		out = append(out, data[i:i+blockSize])
	}

	return out
}

// Silence returns an all-zero signal.
func Silence(length int) []float64 {
	return make([]float64, length)
}
