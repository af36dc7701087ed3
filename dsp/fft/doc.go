// Package fft provides fixed-size in-place complex transforms with
// pluggable backends for real-time analysis.
//
// A Transform is created once for a power-of-two length and then reused;
// Forward and Inverse operate in place on a caller-owned buffer and perform
// no allocations and no transcendental calls after construction. The
// built-in radix-2 backend is always available; library-accelerated
// backends are selected automatically or via the FFT_BACKEND environment
// variable.
package fft
