package pitch

import "math"

// analysisResult is the tentative per-block pitch estimate produced by the
// frame analyzer, before the confidence mixer and vibrato detector see it.
type analysisResult struct {
	freqHz           float64
	periodicityScore float64
	ok               bool
}

// frameAnalyzer implements the normalized-difference-function estimator:
// DC removal, an energy gate, the squared difference function, its
// cumulative mean normalization (CMNDF), threshold-descent lag selection
// and parabolic sub-sample refinement. All scratch storage is fixed
// capacity and embedded in the struct so that analyze never allocates.
type frameAnalyzer struct {
	centered [MaxBlockSamples]float64
	diff     [MaxBlockSamples]float64
	cmndf    [MaxBlockSamples]float64
}

// analyze runs the full estimator over up to MaxBlockSamples of samples
// and returns the tentative frequency estimate, or ok=false for any of the
// recovered failure modes in §7 (geometric infeasibility, silence/DC,
// degenerate numerics, or no lag crossing/selected).
func (a *frameAnalyzer) analyze(samples []float32, sampleRateHz int) analysisResult {
	n := len(samples)
	if n > MaxBlockSamples {
		n = MaxBlockSamples
	}
	if n < 2 {
		return analysisResult{}
	}

	minLag := sampleRateHz / int(MaxTrackableHz)
	if minLag < 1 {
		minLag = 1
	}
	maxLag := sampleRateHz / int(MinTrackableHz)
	if maxLag > n-1 {
		maxLag = n - 1
	}
	if minLag >= maxLag {
		return analysisResult{}
	}

	mean := 0.0
	for i := 0; i < n; i++ {
		mean += float64(samples[i])
	}
	mean /= float64(n)

	energy := 0.0
	for i := 0; i < n; i++ {
		c := float64(samples[i]) - mean
		a.centered[i] = c
		energy += c * c
	}
	if energy < silenceEnergyGate {
		return analysisResult{}
	}

	// Squared difference function over the admissible lag range.
	for lag := minLag; lag <= maxLag; lag++ {
		sum := 0.0
		limit := n - lag
		for i := 0; i < limit; i++ {
			d := a.centered[i] - a.centered[i+lag]
			sum += d * d
		}
		a.diff[lag] = sum
	}

	// Cumulative mean normalized difference function.
	a.cmndf[minLag] = 1.0
	runningSum := 0.0
	for lag := minLag + 1; lag <= maxLag; lag++ {
		runningSum += a.diff[lag]
		if runningSum <= cmndfRunningSumFloor {
			a.cmndf[lag] = 1.0
			continue
		}
		a.cmndf[lag] = a.diff[lag] * float64(lag-minLag) / runningSum
	}

	selectedLag, found := a.selectLag(minLag, maxLag)
	if !found {
		return analysisResult{}
	}

	refinedLag := a.refineLag(selectedLag, maxLag)
	if refinedLag <= 0 {
		return analysisResult{}
	}

	freqHz := float64(sampleRateHz) / refinedLag
	if !IsFinitePositive(freqHz) {
		return analysisResult{}
	}

	periodicity := 1.0 - a.cmndf[selectedLag]
	if periodicity < 0 {
		periodicity = 0
	} else if periodicity > 1 {
		periodicity = 1
	}

	return analysisResult{freqHz: freqHz, periodicityScore: periodicity, ok: true}
}

// selectLag scans upward from minLag+1 for the first lag whose CMNDF dips
// below cmndfThreshold, then descends to its local minimum. If no lag ever
// crosses the threshold, it falls back to the global argmin over
// (minLag, maxLag].
func (a *frameAnalyzer) selectLag(minLag, maxLag int) (int, bool) {
	for lag := minLag + 1; lag <= maxLag; lag++ {
		if a.cmndf[lag] >= cmndfThreshold {
			continue
		}
		for lag < maxLag && a.cmndf[lag+1] < a.cmndf[lag] {
			lag++
		}
		return lag, true
	}

	bestLag := -1
	bestVal := math.Inf(1)
	for lag := minLag + 1; lag <= maxLag; lag++ {
		if a.cmndf[lag] < bestVal {
			bestVal = a.cmndf[lag]
			bestLag = lag
		}
	}
	if bestLag < 0 {
		return 0, false
	}
	return bestLag, true
}

// refineLag fits a parabola through (L-1, L, L+1) of the CMNDF to recover
// sub-sample lag accuracy, clamping the correction to +/-0.5 samples. At
// the boundaries, or when the parabola is degenerate, the unrefined
// integer lag is returned.
func (a *frameAnalyzer) refineLag(lag int, maxLag int) float64 {
	if lag <= 1 || lag >= maxLag-1 {
		return float64(lag)
	}
	yPrev := a.cmndf[lag-1]
	yCur := a.cmndf[lag]
	yNext := a.cmndf[lag+1]

	denom := 2.0 * (2.0*yCur - yPrev - yNext)
	if math.Abs(denom) < parabolaDenomFloor {
		return float64(lag)
	}
	delta := (yPrev - yNext) / denom
	if delta > 0.5 {
		delta = 0.5
	} else if delta < -0.5 {
		delta = -0.5
	}
	return float64(lag) + delta
}
