// Command pitch-synth writes labeled synthetic WAV tones for exercising
// the pitch tracker: steady tones, multi-partial tones, and vibrato tones,
// modeled on the voice-like test signals used to validate the original
// pitch-translation project this tracker's spec was drawn from.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/cwbudde/algo-approx"
	"github.com/cwbudde/algo-pitch/internal/pcmio"
)

func main() {
	kind := flag.String("kind", "steady", "Tone kind: steady|multipartial|vibrato|silence")
	freq := flag.Float64("freq", 220.0, "Fundamental frequency in Hz")
	detuneCents := flag.Float64("detune-cents", 0.0, "Constant detune applied to the fundamental, in cents")
	amplitude := flag.Float64("amplitude", 0.7, "Peak amplitude in [0,1]")
	duration := flag.Float64("duration", 2.0, "Duration in seconds")
	sampleRate := flag.Int("sample-rate", 48000, "Sample rate in Hz")
	vibratoRate := flag.Float64("vibrato-rate", 5.5, "Vibrato rate in Hz (kind=vibrato)")
	vibratoDepth := flag.Float64("vibrato-depth-cents", 60.0, "Vibrato depth in cents (kind=vibrato)")
	output := flag.String("output", "tone.wav", "Output WAV path")
	flag.Parse()

	n := int(*duration * float64(*sampleRate))
	if n < 1 {
		die("duration too short")
	}

	detuned := *freq * centsToRatio(*detuneCents)

	var samples []float64
	switch *kind {
	case "steady":
		samples = synthSteady(detuned, *amplitude, *sampleRate, n)
	case "multipartial":
		samples = synthMultiPartial(detuned, *amplitude, *sampleRate, n)
	case "vibrato":
		samples = synthVibrato(detuned, *amplitude, *vibratoRate, *vibratoDepth, *sampleRate, n)
	case "silence":
		samples = make([]float64, n)
	default:
		die("unknown kind %q", *kind)
	}

	if err := pcmio.WriteMono(*output, pcmio.ToFloat32(samples), *sampleRate); err != nil {
		die("failed to write %q: %v", *output, err)
	}
	fmt.Printf("wrote %s: kind=%s freq=%.2fHz duration=%.2fs sample-rate=%d\n", *output, *kind, detuned, *duration, *sampleRate)
}

// centsToRatio converts a cents offset to a frequency multiplier using the
// same fast power-of-two approximation the teacher reaches for elsewhere;
// acceptable here since this only shapes a synthetic test tone, never the
// tracker's own frequency math.
func centsToRatio(cents float64) float64 {
	const ln2 = 0.69314718055994530942
	return float64(approx.FastExp(float32(cents/1200.0) * ln2))
}

func synthSteady(freq, amp float64, sampleRate, n int) []float64 {
	out := make([]float64, n)
	attackFrames := sampleRate / 50
	for i := range out {
		env := 1.0
		if i < attackFrames {
			env = float64(i) / float64(attackFrames)
		}
		out[i] = amp * env * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return out
}

func synthMultiPartial(freq, amp float64, sampleRate, n int) []float64 {
	partials := []struct{ ratio, gain float64 }{
		{1.0, 1.0},
		{2.0, 0.45},
		{3.0, 0.2},
		{4.0, 0.08},
	}
	var gainSum float64
	for _, p := range partials {
		gainSum += p.gain
	}
	out := make([]float64, n)
	attackFrames := sampleRate / 50
	for i := range out {
		env := 1.0
		if i < attackFrames {
			env = float64(i) / float64(attackFrames)
		}
		var sum float64
		for _, p := range partials {
			sum += p.gain * math.Sin(2*math.Pi*freq*p.ratio*float64(i)/float64(sampleRate))
		}
		out[i] = amp * env * sum / gainSum
	}
	return out
}

func synthVibrato(freq, amp, vibratoRate, vibratoDepthCents float64, sampleRate, n int) []float64 {
	out := make([]float64, n)
	attackFrames := sampleRate / 50
	phase := 0.0
	for i := range out {
		env := 1.0
		if i < attackFrames {
			env = float64(i) / float64(attackFrames)
		}
		lfo := math.Sin(2 * math.Pi * vibratoRate * float64(i) / float64(sampleRate))
		instFreq := freq * centsToRatio(vibratoDepthCents*lfo)
		out[i] = amp * env * math.Sin(phase)
		phase += 2 * math.Pi * instFreq / float64(sampleRate)
	}
	return out
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "pitch-synth: "+format+"\n", args...)
	os.Exit(1)
}
