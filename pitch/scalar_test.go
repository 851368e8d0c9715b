package pitch

import (
	"math"
	"testing"
)

func TestHzToMidiMidiToHzRoundTrip(t *testing.T) {
	for m := 24; m <= 96; m++ {
		hz := MidiToHz(float64(m), 440.0)
		got := math.Round(HzToMidi(hz, 440.0))
		if int(got) != m {
			t.Errorf("round-trip failed for m=%d: midiToHz=%.6f hzToMidi(round)=%v", m, hz, got)
		}
	}
}

func TestMidiToHzKnownValues(t *testing.T) {
	cases := []struct {
		midi float64
		want float64
	}{
		{69, 440.0},
		{57, 220.0},
		{81, 880.0},
	}
	for _, c := range cases {
		got := MidiToHz(c.midi, 440.0)
		if math.Abs(got-c.want) > 1e-6 {
			t.Errorf("MidiToHz(%v, 440) = %v, want %v", c.midi, got, c.want)
		}
	}
}

func TestIsFinitePositive(t *testing.T) {
	cases := []struct {
		x    float64
		want bool
	}{
		{1.0, true},
		{0.0, false},
		{-1.0, false},
		{math.NaN(), false},
		{math.Inf(1), false},
		{math.Inf(-1), false},
	}
	for _, c := range cases {
		if got := IsFinitePositive(c.x); got != c.want {
			t.Errorf("IsFinitePositive(%v) = %v, want %v", c.x, got, c.want)
		}
	}
}

func TestResolveA4Fallback(t *testing.T) {
	if got := resolveA4(0); got != defaultA4Hz {
		t.Errorf("resolveA4(0) = %v, want %v", got, defaultA4Hz)
	}
	if got := resolveA4(-10); got != defaultA4Hz {
		t.Errorf("resolveA4(-10) = %v, want %v", got, defaultA4Hz)
	}
	if got := resolveA4(432.0); got != 432.0 {
		t.Errorf("resolveA4(432) = %v, want 432", got)
	}
}
