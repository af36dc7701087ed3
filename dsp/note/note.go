// Package note converts frequencies to equal-tempered MIDI notes, note
// names, and cent deviations.
//
// The note-name table is built once at package initialization so callers on
// a real-time thread never format strings.
package note

import (
	"math"
	"strconv"
)

// MidiA4 is the MIDI number of the reference note A4.
const MidiA4 = 69

// MidiMax is the highest valid MIDI note number.
const MidiMax = 127

var pitchClasses = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// names holds the 128 MIDI note names, "C-1" through "G9".
var names [MidiMax + 1]string

func init() {
	for i := range names {
		octave := i/12 - 1
		names[i] = pitchClasses[i%12] + strconv.Itoa(octave)
	}
}

// Name returns the note name for a MIDI number, e.g. "A4" or "C#-1".
// Out-of-range numbers return the empty string.
func Name(midi int) string {
	if midi < 0 || midi > MidiMax {
		return ""
	}

	return names[midi]
}

// MidiFromFrequency returns the nearest equal-tempered MIDI note for a
// frequency against the given reference pitch (A4), clamped to [0, 127].
// Non-positive frequencies map to 0.
func MidiFromFrequency(freqHz, referenceHz float64) int {
	if freqHz <= 0 || referenceHz <= 0 {
		return 0
	}

	midi := int(math.Round(12*mathLog2(freqHz/referenceHz))) + MidiA4

	if midi < 0 {
		return 0
	}

	if midi > MidiMax {
		return MidiMax
	}

	return midi
}

// FrequencyForMidi returns the equal-tempered frequency of a MIDI note for
// the given reference pitch (A4).
func FrequencyForMidi(midi int, referenceHz float64) float64 {
	return referenceHz * mathPower2(float64(midi-MidiA4)/12)
}

// CentsBetween returns the deviation of actualHz from referenceHz in cents.
// Non-positive inputs yield 0.
func CentsBetween(referenceHz, actualHz float64) float64 {
	if referenceHz <= 0 || actualHz <= 0 {
		return 0
	}

	return 1200 * mathLog2(actualHz/referenceHz)
}

// FromFrequency resolves a frequency to its nearest MIDI note, name, and
// cent offset against the given reference pitch.
func FromFrequency(freqHz, referenceHz float64) (midi int, name string, cents float64) {
	midi = MidiFromFrequency(freqHz, referenceHz)
	name = Name(midi)
	cents = CentsBetween(FrequencyForMidi(midi, referenceHz), freqHz)

	return midi, name, cents
}
