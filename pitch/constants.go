package pitch

// Tuning constants for the pitch tracker. Grouped here rather than
// re-derived at call sites, per the spec's design notes.
const (
	// MaxBlockSamples bounds the analysis window; longer input blocks are
	// truncated to this many samples before the lag search runs.
	MaxBlockSamples = 4096

	// MinTrackableHz and MaxTrackableHz bound the admissible pitch range.
	// Singing voice lives well inside this band; outside it we refuse to
	// commit to a lag.
	MinTrackableHz = 80.0
	MaxTrackableHz = 1100.0

	// HistoryCapacity is the fixed size of the ring of recent voiced frames.
	HistoryCapacity = 64

	// silenceEnergyGate rejects blocks with near-zero (or pure-DC, after
	// mean removal) energy before the lag search even starts.
	silenceEnergyGate = 1e-8

	// cmndfThreshold is the "good enough" absolute threshold used to pick
	// the first deep CMNDF dip rather than its global minimum, which is
	// what keeps the estimator from jumping an octave up.
	cmndfThreshold = 0.12

	// cmndfRunningSumFloor guards the normalization divide; below it the
	// CMNDF value at that lag is forced to 1 (no dip).
	cmndfRunningSumFloor = 1e-12

	// parabolaDenomFloor guards the parabolic-refinement divide; below it
	// the unrefined integer lag is returned.
	parabolaDenomFloor = 1e-12

	// stabilityScaleCents is the RMS-cents spread, in cents, that maps to
	// zero stability score.
	stabilityScaleCents = 45.0

	// periodicityWeight and stabilityWeight blend the two confidence
	// signals; empirically tuned for singing voice.
	periodicityWeight = 0.7
	stabilityWeight    = 0.3

	// minHistoryForStability is the smallest history count the stability
	// score bothers computing variance over; below it stability defaults
	// to 1.0 (no evidence against stability yet).
	minHistoryForStability = 4

	// minHistoryForVibrato is the smallest history count the vibrato
	// detector will scan.
	minHistoryForVibrato = 8

	// vibratoCentsPerCycle is the dimensional-shorthand constant used to
	// turn a peak-to-peak cents swing into an estimated cycle count. See
	// DESIGN.md for why this heuristic is preserved rather than replaced
	// with a zero-crossing rate estimator.
	vibratoCentsPerCycle = 20.0

	// vibratoMinRateHz and vibratoMaxRateHz bound the singer-plausible
	// vibrato rate band.
	vibratoMinRateHz = 3.0
	vibratoMaxRateHz = 9.0

	// vibratoDepthFloorCents is the minimum peak-to-peak/2 depth before
	// modulation is reported as vibrato rather than drift/tremor.
	vibratoDepthFloorCents = 2.0

	// defaultA4Hz is used whenever a non-positive reference pitch is
	// supplied to Config.
	defaultA4Hz = 440.0
)
