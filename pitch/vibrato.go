package pitch

// vibratoResult is the output of the vibrato detector: either a detected
// modulation with finite rate/depth, or "not detected" with both fields
// unavailable.
type vibratoResult struct {
	detected   bool
	rateHz     float64
	depthCents float64
}

// detectVibrato scans the history ring for sinusoidal modulation of
// cents_error within the singer-plausible 3-9 Hz rate band. Requires at
// least minHistoryForVibrato entries. The cents-per-cycle heuristic below
// is preserved verbatim from the source design for behavioral
// compatibility (see DESIGN.md).
func detectVibrato(ring *historyRing, currentTimestampMs float64) vibratoResult {
	if ring.count < minHistoryForVibrato {
		return vibratoResult{}
	}

	first := true
	var minC, maxC, oldestT float64
	ring.forEach(func(e historyEntry) {
		if first {
			minC, maxC = e.centsError, e.centsError
			oldestT = e.timestampMs
			first = false
			return
		}
		if e.centsError < minC {
			minC = e.centsError
		}
		if e.centsError > maxC {
			maxC = e.centsError
		}
		if e.timestampMs < oldestT {
			oldestT = e.timestampMs
		}
	})

	durationSec := (currentTimestampMs - oldestT) / 1000.0
	if durationSec < 1e-6 {
		durationSec = 1e-6
	}

	depthCents := (maxC - minC) / 2.0
	cyclesEstimate := (maxC - minC) / vibratoCentsPerCycle
	if cyclesEstimate < 0 {
		cyclesEstimate = 0
	}
	rateHz := cyclesEstimate / durationSec

	if depthCents > vibratoDepthFloorCents && rateHz >= vibratoMinRateHz && rateHz <= vibratoMaxRateHz {
		return vibratoResult{detected: true, rateHz: rateHz, depthCents: depthCents}
	}
	return vibratoResult{}
}
