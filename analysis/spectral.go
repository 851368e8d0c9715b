package analysis

import (
	"errors"
	"math"
	"math/cmplx"
	"sync"

	algofft "github.com/cwbudde/algo-fft"
)

// coherencePlanCache caches FFT plans by window length, the same
// lazy-construct-once-per-size pattern the piano distance metrics use for
// their own spectral comparison.
var coherencePlanCache sync.Map // map[int]*coherenceFFTPlan

type coherenceFFTPlan struct {
	mu   sync.Mutex
	fast *algofft.FastPlanReal64
	safe *algofft.PlanRealT[float64, complex128]
}

// BandCoherence reports the magnitude-spectrum agreement between a
// reference and candidate signal in one frequency band, for one analysis
// window.
type BandCoherence struct {
	CenterHz  float64 `json:"center_hz"`
	Coherence float64 `json:"coherence"`
}

// CoherenceReport summarizes how closely a candidate signal's spectral
// content tracks a reference signal's, windowed over time. It is a
// diagnostic for pitch-compare, not a correctness check on the tracker
// itself: two recordings of the same sung phrase at different dynamics can
// legitimately score low here while both track pitch perfectly.
type CoherenceReport struct {
	SampleRate    int             `json:"sample_rate"`
	WindowSamples int             `json:"window_samples"`
	Windows       int             `json:"windows"`
	MeanCoherence float64         `json:"mean_coherence"`
	Bands         []BandCoherence `json:"bands"`
	PerWindow     []float64       `json:"per_window"`
}

// SpectralCoherence compares reference and candidate mono signals windowed
// into overlapping Hann frames, returning a correlation-style coherence per
// window (averaged into MeanCoherence) and, per band, the mean ratio of the
// smaller to the larger bin magnitude. Both are 1 for identical magnitude
// spectra and fall toward 0 as the spectra diverge.
func SpectralCoherence(reference, candidate []float64, sampleRate int, windowSamples int) CoherenceReport {
	report := CoherenceReport{SampleRate: sampleRate, WindowSamples: windowSamples}
	n := len(reference)
	if len(candidate) < n {
		n = len(candidate)
	}
	if sampleRate <= 0 || windowSamples < 64 || n < windowSamples {
		return report
	}
	windowSamples &^= 1 // real FFT plans require even length
	if windowSamples < 64 {
		return report
	}
	report.WindowSamples = windowSamples

	hop := windowSamples / 2
	hann := make([]float64, windowSamples)
	for i := range hann {
		hann[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(windowSamples-1))
	}

	bins := windowSamples / 2
	const numBands = 8
	bandSums := make([]float64, numBands)
	bandCounts := make([]int, numBands)

	plan, planErr := getCoherencePlan(windowSamples)
	specA := make([]complex128, bins+1)
	specB := make([]complex128, bins+1)
	winA := make([]float64, windowSamples)
	winB := make([]float64, windowSamples)

	var windowSum float64
	windows := 0
	for start := 0; start+windowSamples <= n; start += hop {
		for i := 0; i < windowSamples; i++ {
			winA[i] = reference[start+i] * hann[i]
			winB[i] = candidate[start+i] * hann[i]
		}

		var coh float64
		var ok bool
		if planErr == nil {
			if err := plan.forward(specA, winA); err == nil {
				if err := plan.forward(specB, winB); err == nil {
					ok = true
					var num, denA, denB float64
					for k := 1; k < bins; k++ {
						ma := cmplx.Abs(specA[k])
						mb := cmplx.Abs(specB[k])
						num += ma * mb
						denA += ma * ma
						denB += mb * mb

						band := k * numBands / bins
						if band >= numBands {
							band = numBands - 1
						}
						bandSums[band] += bandCoherenceTerm(ma, mb)
						bandCounts[band]++
					}
					if denA > 1e-20 && denB > 1e-20 {
						coh = num / math.Sqrt(denA*denB)
					} else {
						coh = 0
					}
				}
			}
		}
		if !ok {
			continue
		}
		coh = clamp01(coh)
		windowSum += coh
		windows++
		report.PerWindow = append(report.PerWindow, coh)
	}

	if windows == 0 {
		return report
	}
	report.Windows = windows
	report.MeanCoherence = windowSum / float64(windows)

	report.Bands = make([]BandCoherence, 0, numBands)
	binWidth := float64(sampleRate) / float64(windowSamples)
	for b := 0; b < numBands; b++ {
		if bandCounts[b] == 0 {
			continue
		}
		centerBin := float64(b*bins/numBands) + float64(bins)/float64(numBands)/2
		report.Bands = append(report.Bands, BandCoherence{
			CenterHz:  centerBin * binWidth,
			Coherence: clamp01(bandSums[b] / float64(bandCounts[b])),
		})
	}
	return report
}

// bandCoherenceTerm scores how close two magnitudes are, 1 for equal
// magnitudes and falling toward 0 as their ratio diverges.
func bandCoherenceTerm(a, b float64) float64 {
	if a < 1e-12 && b < 1e-12 {
		return 1.0
	}
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi < 1e-12 {
		return 1.0
	}
	return lo / hi
}

func getCoherencePlan(n int) (*coherenceFFTPlan, error) {
	if v, ok := coherencePlanCache.Load(n); ok {
		return v.(*coherenceFFTPlan), nil
	}

	p := &coherenceFFTPlan{}
	fast, err := algofft.NewFastPlanReal64(n)
	if err == nil {
		p.fast = fast
	} else if !errors.Is(err, algofft.ErrNotImplemented) {
		// fall through to the safe plan
	}

	safe, err := algofft.NewPlanReal64(n)
	if err != nil {
		if p.fast == nil {
			return nil, err
		}
	} else {
		p.safe = safe
	}

	actual, _ := coherencePlanCache.LoadOrStore(n, p)
	return actual.(*coherenceFFTPlan), nil
}

func (p *coherenceFFTPlan) forward(dst []complex128, src []float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.fast != nil {
		p.fast.Forward(dst, src)
		return nil
	}
	if p.safe != nil {
		return p.safe.Forward(dst, src)
	}
	return errors.New("analysis: missing coherence FFT plan")
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
