// Package pitch provides a real-time monophonic pitch detector for
// streaming audio.
//
// A Detector buffers incoming sample blocks in a ring, runs the YIN
// estimator once per hop (half a frame, 50% overlap), and converts the
// detected fundamental to a MIDI note, note name, and cent deviation
// against a configurable reference pitch.
//
// Process is designed to be driven from a platform audio callback: after
// construction it performs no heap allocations, takes no locks, and calls
// no sin/cos/exp. Reset and SetReferencePitch may be called from other
// threads; Process must not be called concurrently with itself or with
// Reset on the same instance.
package pitch
