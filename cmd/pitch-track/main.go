// Command pitch-track streams a mono WAV recording through a pitch.Tracker
// and prints one line of frame output per hop, optionally saving the full
// trace as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/algo-pitch/internal/pcmio"
	"github.com/cwbudde/algo-pitch/pitch"
)

func main() {
	input := flag.String("input", "", "Input mono WAV file path (required)")
	a4Hz := flag.Float64("a4", 440.0, "A4 reference frequency in Hz")
	frameSize := flag.Int("frame-size", 1024, "Analysis frame size in samples")
	hopSize := flag.Int("hop-size", 256, "Hop size in samples between frames")
	jsonOut := flag.String("json", "", "Optional path to write the full frame trace as JSON")
	quiet := flag.Bool("quiet", false, "Suppress per-frame stdout lines")
	flag.Parse()

	if *input == "" {
		die("input must not be empty")
	}
	if *hopSize < 1 {
		die("hop-size must be >= 1")
	}

	samples, sampleRate, err := pcmio.ReadMono(*input)
	if err != nil {
		die("failed to read %q: %v", *input, err)
	}

	tr := pitch.New(pitch.Config{
		A4ReferenceHz: *a4Hz,
		SampleRateHz:  sampleRate,
		FrameSize:     *frameSize,
		HopSize:       *hopSize,
	})
	defer tr.Close()

	var trace []pitch.FrameOutput
	for start := 0; start+*hopSize <= len(samples); start += *hopSize {
		out := tr.Process(samples[start : start+*hopSize])
		if !*quiet {
			printFrame(out)
		}
		if *jsonOut != "" {
			trace = append(trace, out)
		}
	}

	if *jsonOut != "" {
		data, err := json.MarshalIndent(trace, "", "  ")
		if err != nil {
			die("failed to marshal trace: %v", err)
		}
		if err := os.WriteFile(*jsonOut, data, 0o644); err != nil {
			die("failed to write %q: %v", *jsonOut, err)
		}
	}
}

func printFrame(out pitch.FrameOutput) {
	if !pitch.IsFinitePositive(out.FreqHz) {
		fmt.Printf("t=%8.1fms  --\n", out.TimestampMs)
		return
	}
	vib := ""
	if out.VibratoDetected {
		vib = fmt.Sprintf("  vibrato=%.1fHz/%.1fc", out.VibratoRateHz, out.VibratoDepthCents)
	}
	fmt.Printf("t=%8.1fms  %7.2fHz  midi=%3d  cents=%+6.1f  conf=%.2f%s\n",
		out.TimestampMs, out.FreqHz, out.NearestMidi, out.CentsError, out.Confidence, vib)
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "pitch-track: "+format+"\n", args...)
	os.Exit(1)
}
