package pitch

import "math"

// HzToMidi converts a frequency in Hz to a floating-point MIDI semitone
// relative to a4Hz (the frequency of semitone 69). Callers must guard
// hz > 0 and a4Hz > 0 themselves; this function is total but meaningless
// for non-positive inputs (it returns NaN/Inf like the underlying log).
func HzToMidi(hz float64, a4Hz float64) float64 {
	return 69.0 + 12.0*math.Log2(hz/a4Hz)
}

// MidiToHz converts a floating-point MIDI semitone to a frequency in Hz
// relative to a4Hz. Total for all finite inputs.
func MidiToHz(midi float64, a4Hz float64) float64 {
	return a4Hz * math.Exp2((midi-69.0)/12.0)
}

// IsFinitePositive reports whether x is finite and strictly greater than
// zero.
func IsFinitePositive(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0) && x > 0
}

// resolveA4 applies the spec's fallback: a non-positive reference is
// treated as the standard 440 Hz.
func resolveA4(a4Hz float64) float64 {
	if !IsFinitePositive(a4Hz) {
		return defaultA4Hz
	}
	return a4Hz
}
