package pitch

import "math"

// Config holds the tracker's immutable-after-creation configuration. Only
// these four fields are part of the core's configuration surface.
type Config struct {
	// A4ReferenceHz is the reference pitch of integer semitone 69. A
	// non-positive value is treated as 440.0.
	A4ReferenceHz float64
	// SampleRateHz is the PCM sample rate; clamped to >= 1.
	SampleRateHz int
	// FrameSize is informational; the core derives the actual block size
	// from the sample count passed to Process.
	FrameSize int
	// HopSize is informational for the same reason.
	HopSize int
}

// FrameOutput is the single-value result of one Process call. Unavailable
// real fields are encoded as NaN; unavailable NearestMidi is -1.
type FrameOutput struct {
	TimestampMs       float64
	FreqHz            float64
	MidiFloat         float64
	NearestMidi       int
	CentsError        float64
	Confidence        float64
	VibratoDetected   bool
	VibratoRateHz     float64
	VibratoDepthCents float64
}

func noPitchFrame(timestampMs float64) FrameOutput {
	return FrameOutput{
		TimestampMs:       timestampMs,
		FreqHz:            math.NaN(),
		MidiFloat:         math.NaN(),
		NearestMidi:       -1,
		CentsError:        math.NaN(),
		Confidence:        0,
		VibratoDetected:   false,
		VibratoRateHz:     math.NaN(),
		VibratoDepthCents: math.NaN(),
	}
}

// Tracker is the exclusively-owned per-stream pitch tracker: configuration,
// timestamp counter, fixed-capacity working buffers and history. It is not
// safe for concurrent Process calls — callers must externally serialize,
// exactly as a realtime audio callback would.
type Tracker struct {
	config     Config
	a4Hz       float64
	sampleRate int

	timestampMs float64
	analyzer    frameAnalyzer
	history     historyRing
}

// New creates a tracker from config. It always succeeds.
func New(config Config) *Tracker {
	sampleRate := config.SampleRateHz
	if sampleRate < 1 {
		sampleRate = 1
	}
	return &Tracker{
		config:     config,
		a4Hz:       resolveA4(config.A4ReferenceHz),
		sampleRate: sampleRate,
	}
}

// Close releases the tracker. It is idempotent and safe to call on a nil
// or already-closed Tracker: ownership is value-based and the Go runtime
// reclaims the fixed-size buffers, so there is nothing to free explicitly.
// The method exists for API parity with the create/process/destroy
// lifecycle contract foreign callers expect.
func (t *Tracker) Close() {}

// Process analyzes one block of mono PCM samples and returns a single
// FrameOutput by value. It is realtime-safe: no allocation, no locking, no
// I/O, and every failure mode is recovered locally into a "no pitch" frame
// (see spec §7).
//
// A nil tracker, nil samples, or non-positive sample count returns a
// zero-timestamp "no pitch" frame without mutating state.
func (t *Tracker) Process(samples []float32) FrameOutput {
	if t == nil || samples == nil || len(samples) <= 0 {
		return noPitchFrame(0)
	}

	preTimestamp := t.timestampMs
	count := len(samples)
	t.timestampMs += 1000.0 * float64(count) / float64(t.sampleRate)

	result := t.analyzer.analyze(samples, t.sampleRate)

	out := noPitchFrame(preTimestamp)
	if !result.ok {
		return out
	}

	midiFloat := HzToMidi(result.freqHz, t.a4Hz)
	if math.IsNaN(midiFloat) || math.IsInf(midiFloat, 0) {
		return out
	}

	nearestF := math.Round(midiFloat)
	centsError := (midiFloat - nearestF) * 100.0
	nearestMidi := int(nearestF)
	if nearestMidi < 0 {
		nearestMidi = 0
	} else if nearestMidi > 127 {
		nearestMidi = 127
	}

	stability := stabilityScore(&t.history)
	confidence := mixConfidence(result.periodicityScore, stability)

	t.history.append(centsError, preTimestamp, result.freqHz)

	vib := detectVibrato(&t.history, preTimestamp)

	out.FreqHz = result.freqHz
	out.MidiFloat = midiFloat
	out.NearestMidi = nearestMidi
	out.CentsError = centsError
	out.Confidence = confidence
	out.VibratoDetected = vib.detected
	if vib.detected {
		out.VibratoRateHz = vib.rateHz
		out.VibratoDepthCents = vib.depthCents
	}
	return out
}
