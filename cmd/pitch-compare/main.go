// Command pitch-compare runs two WAV recordings through the pitch tracker
// and reports how closely their pitch traces and spectral content agree,
// for regression-checking tracker changes against a reference recording.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/cwbudde/algo-pitch/analysis"
	"github.com/cwbudde/algo-pitch/internal/pcmio"
	"github.com/cwbudde/algo-pitch/pitch"
)

type report struct {
	ReferencePath   string                  `json:"reference_path"`
	CandidatePath   string                  `json:"candidate_path"`
	SampleRate      int                     `json:"sample_rate"`
	Frames          int                     `json:"frames"`
	VoicedFrames    int                     `json:"voiced_frames"`
	MeanCentsAbsErr float64                 `json:"mean_cents_abs_error"`
	MaxCentsAbsErr  float64                 `json:"max_cents_abs_error"`
	Coherence       analysis.CoherenceReport `json:"coherence"`
}

func main() {
	referencePath := flag.String("reference", "", "Reference WAV path (required)")
	candidatePath := flag.String("candidate", "", "Candidate WAV path (required)")
	a4Hz := flag.Float64("a4", 440.0, "A4 reference frequency in Hz")
	frameSize := flag.Int("frame-size", 1024, "Analysis frame size in samples")
	hopSize := flag.Int("hop-size", 256, "Hop size in samples between frames")
	windowSamples := flag.Int("coherence-window", 2048, "Spectral coherence analysis window in samples")
	jsonOut := flag.String("json", "", "Optional path to write the report as JSON")
	flag.Parse()

	if *referencePath == "" || *candidatePath == "" {
		die("both -reference and -candidate must be set")
	}

	refSamples, refRate, err := pcmio.ReadMono(*referencePath)
	if err != nil {
		die("failed to read reference: %v", err)
	}
	candSamples, candRate, err := pcmio.ReadMono(*candidatePath)
	if err != nil {
		die("failed to read candidate: %v", err)
	}
	if refRate != candRate {
		die("sample rate mismatch: reference=%d candidate=%d (resample first)", refRate, candRate)
	}

	refTrack := trackPitch(refSamples, refRate, *a4Hz, *frameSize, *hopSize)
	candTrack := trackPitch(candSamples, candRate, *a4Hz, *frameSize, *hopSize)

	rep := report{
		ReferencePath: *referencePath,
		CandidatePath: *candidatePath,
		SampleRate:    refRate,
	}
	n := len(refTrack)
	if len(candTrack) < n {
		n = len(candTrack)
	}
	rep.Frames = n

	var sumAbs, maxAbs float64
	voiced := 0
	for i := 0; i < n; i++ {
		r, c := refTrack[i], candTrack[i]
		if !pitch.IsFinitePositive(r.FreqHz) || !pitch.IsFinitePositive(c.FreqHz) {
			continue
		}
		d := math.Abs(r.CentsError - c.CentsError + 100.0*float64(r.NearestMidi-c.NearestMidi))
		sumAbs += d
		if d > maxAbs {
			maxAbs = d
		}
		voiced++
	}
	rep.VoicedFrames = voiced
	if voiced > 0 {
		rep.MeanCentsAbsErr = sumAbs / float64(voiced)
	}
	rep.MaxCentsAbsErr = maxAbs

	rep.Coherence = analysis.SpectralCoherence(pcmio.ToFloat64(refSamples), pcmio.ToFloat64(candSamples), refRate, *windowSamples)

	fmt.Printf("frames=%d voiced=%d mean-cents-err=%.2f max-cents-err=%.2f mean-coherence=%.3f\n",
		rep.Frames, rep.VoicedFrames, rep.MeanCentsAbsErr, rep.MaxCentsAbsErr, rep.Coherence.MeanCoherence)

	if *jsonOut != "" {
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			die("failed to marshal report: %v", err)
		}
		if err := os.WriteFile(*jsonOut, data, 0o644); err != nil {
			die("failed to write %q: %v", *jsonOut, err)
		}
	}
}

func trackPitch(samples []float32, sampleRate int, a4Hz float64, frameSize, hopSize int) []pitch.FrameOutput {
	tr := pitch.New(pitch.Config{A4ReferenceHz: a4Hz, SampleRateHz: sampleRate, FrameSize: frameSize, HopSize: hopSize})
	defer tr.Close()

	var out []pitch.FrameOutput
	for start := 0; start+hopSize <= len(samples); start += hopSize {
		out = append(out, tr.Process(samples[start:start+hopSize]))
	}
	return out
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "pitch-compare: "+format+"\n", args...)
	os.Exit(1)
}
