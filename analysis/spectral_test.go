package analysis

import (
	"math"
	"testing"
)

func generateTone(freqHz, amp float64, sampleRate, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*freqHz*float64(i)/float64(sampleRate))
	}
	return out
}

func TestSpectralCoherenceIdenticalSignalsScoreHigh(t *testing.T) {
	const sampleRate = 48000
	tone := generateTone(440.0, 0.8, sampleRate, sampleRate)

	report := SpectralCoherence(tone, tone, sampleRate, 2048)
	if report.Windows == 0 {
		t.Fatalf("expected at least one analysis window")
	}
	if report.MeanCoherence < 0.95 {
		t.Fatalf("identical signals should cohere near 1.0, got %v", report.MeanCoherence)
	}
}

func TestSpectralCoherenceDifferentPitchesScoreLow(t *testing.T) {
	const sampleRate = 48000
	a := generateTone(220.0, 0.8, sampleRate, sampleRate)
	b := generateTone(880.0, 0.8, sampleRate, sampleRate)

	report := SpectralCoherence(a, b, sampleRate, 2048)
	if report.Windows == 0 {
		t.Fatalf("expected at least one analysis window")
	}
	if report.MeanCoherence > 0.5 {
		t.Fatalf("unrelated tones should cohere poorly, got %v", report.MeanCoherence)
	}
}

func TestSpectralCoherenceShortSignalsYieldEmptyReport(t *testing.T) {
	report := SpectralCoherence([]float64{0.1, 0.2}, []float64{0.1, 0.2}, 48000, 2048)
	if report.Windows != 0 {
		t.Fatalf("expected zero windows for a signal shorter than the analysis window")
	}
	if len(report.Bands) != 0 {
		t.Fatalf("expected no band detail when no window analyzed")
	}
}

func TestSpectralCoherenceRejectsInvalidSampleRate(t *testing.T) {
	tone := generateTone(440.0, 0.5, 48000, 4096)
	report := SpectralCoherence(tone, tone, 0, 2048)
	if report.Windows != 0 {
		t.Fatalf("expected zero windows for invalid sample rate")
	}
}

func TestSpectralCoherenceBandsCoverSpectrum(t *testing.T) {
	const sampleRate = 48000
	tone := generateTone(440.0, 0.8, sampleRate, sampleRate)
	report := SpectralCoherence(tone, tone, sampleRate, 2048)
	if len(report.Bands) == 0 {
		t.Fatalf("expected band-level detail")
	}
	for _, b := range report.Bands {
		if b.Coherence < 0 || b.Coherence > 1 {
			t.Fatalf("band coherence out of range: %+v", b)
		}
		if b.CenterHz <= 0 {
			t.Fatalf("band center frequency should be positive: %+v", b)
		}
	}
}
