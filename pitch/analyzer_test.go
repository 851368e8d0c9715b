package pitch

import (
	"math"
	"testing"
)

func TestAnalyzerDetectsPureSine(t *testing.T) {
	const sampleRate = 48000
	var a frameAnalyzer
	block := generateSineBlock(440.0, 0.7, sampleRate, 1024, 0)

	res := a.analyze(block, sampleRate)
	if !res.ok {
		t.Fatalf("expected pitch detected, got no pitch")
	}
	if math.Abs(res.freqHz-440.0) > 3.5 {
		t.Errorf("freqHz = %v, want within 3.5 Hz of 440", res.freqHz)
	}
	if res.periodicityScore < 0.7 {
		t.Errorf("periodicityScore = %v, want > 0.7 for a clean tone", res.periodicityScore)
	}
}

func TestAnalyzerDetectsMultiPartialTone(t *testing.T) {
	const sampleRate = 48000
	var a frameAnalyzer
	block := generateMultiPartialBlock(
		[]float64{329.63, 659.26, 1000.0},
		[]float64{0.6, 0.15, 0.05},
		sampleRate, 1024, 0)

	res := a.analyze(block, sampleRate)
	if !res.ok {
		t.Fatalf("expected pitch detected, got no pitch")
	}
	if math.Abs(res.freqHz-329.63) > 6.5 {
		t.Errorf("freqHz = %v, want within 6.5 Hz of 329.63", res.freqHz)
	}
}

func TestAnalyzerRejectsSilence(t *testing.T) {
	const sampleRate = 48000
	var a frameAnalyzer
	block := generateSilenceBlock(0.0, 1024)

	res := a.analyze(block, sampleRate)
	if res.ok {
		t.Fatalf("expected no pitch for pure silence, got freqHz=%v", res.freqHz)
	}
}

func TestAnalyzerRejectsDCOnlyBlock(t *testing.T) {
	const sampleRate = 48000
	var a frameAnalyzer
	block := generateSilenceBlock(0.1, 1024)

	res := a.analyze(block, sampleRate)
	if res.ok {
		t.Fatalf("expected no pitch for DC-only block, got freqHz=%v", res.freqHz)
	}
}

func TestAnalyzerRejectsInfeasibleLagRange(t *testing.T) {
	var a frameAnalyzer
	block := make([]float32, 10)
	for i := range block {
		block[i] = float32(i%2) - 0.5
	}

	res := a.analyze(block, 1)
	if res.ok {
		t.Fatalf("expected no pitch when sample_rate=1 makes the lag range infeasible")
	}
}

func TestAnalyzerTruncatesOversizeBlocks(t *testing.T) {
	const sampleRate = 48000
	var a frameAnalyzer
	block := generateSineBlock(440.0, 0.7, sampleRate, MaxBlockSamples+500, 0)

	res := a.analyze(block, sampleRate)
	if !res.ok {
		t.Fatalf("expected pitch detected for oversize block truncated to MaxBlockSamples")
	}
	if math.Abs(res.freqHz-440.0) > 3.5 {
		t.Errorf("freqHz = %v, want within 3.5 Hz of 440 after truncation", res.freqHz)
	}
}

func TestAnalyzerPeriodicityScoreBounded(t *testing.T) {
	const sampleRate = 48000
	var a frameAnalyzer
	block := generateMultiPartialBlock(
		[]float64{196.0, 300.0, 700.0},
		[]float64{0.3, 0.3, 0.3},
		sampleRate, 1024, 0)

	res := a.analyze(block, sampleRate)
	if res.periodicityScore < 0 || res.periodicityScore > 1 {
		t.Errorf("periodicityScore = %v, want within [0,1]", res.periodicityScore)
	}
}
