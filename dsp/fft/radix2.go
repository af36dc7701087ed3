package fft

import "math"

// initRadix2 precomputes the twiddle table twiddle[k] = exp(-2*pi*i*k/N).
// Computed once at construction so the butterfly passes are free of
// sin/cos calls.
func (t *Transform) initRadix2() {
	if t.twiddle != nil {
		return
	}

	t.twiddle = make([]complex128, t.n/2)
	step := -2 * math.Pi / float64(t.n)

	for k := range t.twiddle {
		ang := step * float64(k)
		t.twiddle[k] = complex(math.Cos(ang), math.Sin(ang))
	}
}

// forwardRadix2 is the iterative decimation-in-time Cooley-Tukey transform:
// bit-reversal permutation, a specialized length-2 stage, then log2(N)-1
// butterfly passes indexing the twiddle table with stride N/len.
func (t *Transform) forwardRadix2(x []complex128) {
	n := t.n

	// Bit-reversal permutation.
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}

		j ^= bit

		if i < j {
			x[i], x[j] = x[j], x[i]
		}
	}

	// Length-2 stage: the twiddle factor is 1, so the butterflies reduce
	// to pure add/subtract pairs.
	for i := 0; i+1 < n; i += 2 {
		u, v := x[i], x[i+1]
		x[i] = u + v
		x[i+1] = u - v
	}

	for length := 4; length <= n; length <<= 1 {
		half := length / 2
		stride := n / length

		for i := 0; i < n; i += length {
			for j := 0; j < half; j++ {
				w := t.twiddle[j*stride]
				u := x[i+j]
				v := x[i+j+half] * w
				x[i+j] = u + v
				x[i+j+half] = u - v
			}
		}
	}
}

// inverseRadix2 computes the inverse via the conjugate trick: conjugate,
// forward transform, conjugate again, divide by N. Equivalent to a true
// IDFT.
func (t *Transform) inverseRadix2(x []complex128) {
	for i, v := range x {
		x[i] = complex(real(v), -imag(v))
	}

	t.forwardRadix2(x)

	inv := 1 / float64(t.n)
	for i, v := range x {
		x[i] = complex(real(v)*inv, -imag(v)*inv)
	}
}
