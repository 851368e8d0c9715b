package pitch

import "math"

// stabilityScore computes the RMS-cents stability signal from the history
// ring: 1.0 when there isn't enough history yet to judge, otherwise
// 1 - rms_cents/stabilityScaleCents clamped to [0,1].
func stabilityScore(ring *historyRing) float64 {
	if ring.count < minHistoryForStability {
		return 1.0
	}

	sumFreq := 0.0
	k := 0
	ring.forEach(func(e historyEntry) {
		if e.freqHz > 0 {
			sumFreq += e.freqHz
			k++
		}
	})
	if k == 0 {
		return 1.0
	}
	meanFreq := sumFreq / float64(k)

	variance := 0.0
	ring.forEach(func(e historyEntry) {
		if e.freqHz <= 0 {
			return
		}
		cents := 1200.0 * math.Log2(e.freqHz/meanFreq)
		variance += cents * cents
	})
	variance /= float64(k)

	rmsCents := math.Sqrt(variance)
	s := 1.0 - rmsCents/stabilityScaleCents
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// mixConfidence blends the CMNDF-derived periodicity score with the
// ring-derived stability score. Weights are tuned empirically for singing
// voice: periodicity reacts fast but over-fires on transients, stability
// lags onsets but rejects spurious single-frame jumps.
func mixConfidence(periodicityScore, stability float64) float64 {
	c := periodicityWeight*periodicityScore + stabilityWeight*stability
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
