// Package calib holds a JSON-loadable/-savable bundle of the pitch
// tracker's tuning constants, used only by the offline recalibration tool
// (cmd/pitch-fit). A Tracker never reads a Bundle itself; it always ships
// with the named constants in pitch/constants.go. This is not persistence
// of tracker state -- it persists candidate tuning values for human/tool
// review, the same way the teacher's preset.File persists piano voicing
// parameters without the piano.Piano itself ever loading one implicitly.
package calib

import (
	"encoding/json"
	"fmt"
	"os"
)

// Bundle is the JSON schema for a recalibrated set of tuning constants.
// Pointer-optional fields default to the spec's named constants when a
// field is omitted from the file, mirroring the teacher's preset.File
// pattern of partial overrides applied on top of defaults.
type Bundle struct {
	PeriodicityWeight      *float64 `json:"periodicity_weight"`
	StabilityWeight        *float64 `json:"stability_weight"`
	StabilityScaleCents    *float64 `json:"stability_scale_cents"`
	CMNDFThreshold         *float64 `json:"cmndf_threshold"`
	VibratoMinRateHz       *float64 `json:"vibrato_min_rate_hz"`
	VibratoMaxRateHz       *float64 `json:"vibrato_max_rate_hz"`
	VibratoDepthFloorCents *float64 `json:"vibrato_depth_floor_cents"`
	VibratoCentsPerCycle   *float64 `json:"vibrato_cents_per_cycle"`
}

// Resolved is the fully-populated, non-pointer view of a Bundle applied
// over the spec's default constants.
type Resolved struct {
	PeriodicityWeight      float64
	StabilityWeight        float64
	StabilityScaleCents    float64
	CMNDFThreshold         float64
	VibratoMinRateHz       float64
	VibratoMaxRateHz       float64
	VibratoDepthFloorCents float64
	VibratoCentsPerCycle   float64
}

// NewDefault returns the Resolved constants exactly as specified.
func NewDefault() Resolved {
	return Resolved{
		PeriodicityWeight:      0.7,
		StabilityWeight:        0.3,
		StabilityScaleCents:    45.0,
		CMNDFThreshold:         0.12,
		VibratoMinRateHz:       3.0,
		VibratoMaxRateHz:       9.0,
		VibratoDepthFloorCents: 2.0,
		VibratoCentsPerCycle:   20.0,
	}
}

// Resolve applies a parsed Bundle's overrides on top of the default
// constants.
func Resolve(b *Bundle) Resolved {
	r := NewDefault()
	if b == nil {
		return r
	}
	if b.PeriodicityWeight != nil {
		r.PeriodicityWeight = *b.PeriodicityWeight
	}
	if b.StabilityWeight != nil {
		r.StabilityWeight = *b.StabilityWeight
	}
	if b.StabilityScaleCents != nil {
		r.StabilityScaleCents = *b.StabilityScaleCents
	}
	if b.CMNDFThreshold != nil {
		r.CMNDFThreshold = *b.CMNDFThreshold
	}
	if b.VibratoMinRateHz != nil {
		r.VibratoMinRateHz = *b.VibratoMinRateHz
	}
	if b.VibratoMaxRateHz != nil {
		r.VibratoMaxRateHz = *b.VibratoMaxRateHz
	}
	if b.VibratoDepthFloorCents != nil {
		r.VibratoDepthFloorCents = *b.VibratoDepthFloorCents
	}
	if b.VibratoCentsPerCycle != nil {
		r.VibratoCentsPerCycle = *b.VibratoCentsPerCycle
	}
	return r
}

// Load reads and parses a Bundle JSON file.
func Load(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("calib: parsing %s: %w", path, err)
	}
	return &b, nil
}

// Save writes r as a fully-populated Bundle JSON file.
func Save(path string, r Resolved) error {
	b := Bundle{
		PeriodicityWeight:      &r.PeriodicityWeight,
		StabilityWeight:        &r.StabilityWeight,
		StabilityScaleCents:    &r.StabilityScaleCents,
		CMNDFThreshold:         &r.CMNDFThreshold,
		VibratoMinRateHz:       &r.VibratoMinRateHz,
		VibratoMaxRateHz:       &r.VibratoMaxRateHz,
		VibratoDepthFloorCents: &r.VibratoDepthFloorCents,
		VibratoCentsPerCycle:   &r.VibratoCentsPerCycle,
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
