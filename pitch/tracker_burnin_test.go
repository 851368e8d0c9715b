package pitch

import (
	"math"
	"testing"
)

// TestTracker_BurnIn replays a short voice-like buffer through one Tracker
// for many thousands of frames, checking the no-allocation realtime
// contract never degrades into a non-finite confidence or a timestamp
// regression. Scaled down from the original C++ validation harness's
// 30-minute loop (see SPEC_FULL.md) to keep test run time reasonable.
func TestTracker_BurnIn(t *testing.T) {
	const sampleRate = 48000
	const hop = 256
	tr := New(Config{A4ReferenceHz: 440.0, SampleRateHz: sampleRate, FrameSize: 1024, HopSize: hop})

	signal := generateVibratoBlock(220.0, 5.5, 0.015, 0.6, sampleRate, sampleRate*2, 0)
	for i := 1; i < len(signal); i++ {
		signal[i] += 0.18 * signal[i-1]
	}

	const frames = 50_000
	last := -1.0
	for i := 0; i < frames; i++ {
		start := (i * hop) % (len(signal) - hop)
		out := tr.Process(signal[start : start+hop])
		if math.IsNaN(out.Confidence) || math.IsInf(out.Confidence, 0) {
			t.Fatalf("frame %d: non-finite confidence %v", i, out.Confidence)
		}
		if out.Confidence < 0 || out.Confidence > 1 {
			t.Fatalf("frame %d: confidence %v out of [0,1]", i, out.Confidence)
		}
		if out.TimestampMs < last {
			t.Fatalf("frame %d: timestamp regressed %v < %v", i, out.TimestampMs, last)
		}
		last = out.TimestampMs
	}
}
