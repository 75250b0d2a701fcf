// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"errors"
	"fmt"
	"math"

	"github.com/ik5/saundifix/audio"
	"github.com/ik5/saundifix/utils"
)

// Parameter ranges accepted by the pipeline.
const (
	MinGain = 0.0
	MaxGain = 20.0

	MinEQGainDB = -40.0
	MaxEQGainDB = 40.0

	MinThresholdDB = -100.0
	MaxThresholdDB = 0.0

	MinKneeDB = 0.0
	MaxKneeDB = 40.0

	MinRatio = 1.0
	MaxRatio = 20.0
)

// Fixed compressor timing.
const (
	AttackMs  = 10.0
	ReleaseMs = 80.0
)

// Equalizer band placement.
const (
	BassFrequency   = 100.0
	MidFrequency    = 1250.0
	MidQ            = 1.0
	TrebleFrequency = 5000.0
	// ShelfSlope is the cookbook shelf slope S used by the bass and treble
	// bands; S = 1 is the steepest slope without overshoot.
	ShelfSlope = 1.0
)

// Parameters is one immutable set of effect settings.
//
// Gain is a linear multiplier, not decibels: 1 leaves the level unchanged,
// 2 doubles every sample.
type Parameters struct {
	Gain        float64
	BassDB      float64
	MidDB       float64
	TrebleDB    float64
	ThresholdDB float64
	KneeDB      float64
	Ratio       float64
}

// DefaultParameters returns the neutral settings: unity gain, flat EQ and a
// compressor at ratio 1, which leaves the signal untouched.
func DefaultParameters() Parameters {
	return Parameters{
		Gain:        1,
		ThresholdDB: -24,
		KneeDB:      30,
		Ratio:       1,
	}
}

type paramRange struct {
	name     string
	value    float64
	min, max float64
	fallback float64
}

func (p Parameters) ranges() []paramRange {
	d := DefaultParameters()
	return []paramRange{
		{"gain", p.Gain, MinGain, MaxGain, d.Gain},
		{"bass", p.BassDB, MinEQGainDB, MaxEQGainDB, d.BassDB},
		{"mid", p.MidDB, MinEQGainDB, MaxEQGainDB, d.MidDB},
		{"treble", p.TrebleDB, MinEQGainDB, MaxEQGainDB, d.TrebleDB},
		{"threshold", p.ThresholdDB, MinThresholdDB, MaxThresholdDB, d.ThresholdDB},
		{"knee", p.KneeDB, MinKneeDB, MaxKneeDB, d.KneeDB},
		{"ratio", p.Ratio, MinRatio, MaxRatio, d.Ratio},
	}
}

// Clamp returns a copy of p with every field forced into its range.
// NaN fields take their default value.
func (p Parameters) Clamp() Parameters {
	fix := func(r paramRange) float64 {
		if math.IsNaN(r.value) {
			return r.fallback
		}
		return utils.Clamp(r.value, r.min, r.max)
	}

	r := p.ranges()
	return Parameters{
		Gain:        fix(r[0]),
		BassDB:      fix(r[1]),
		MidDB:       fix(r[2]),
		TrebleDB:    fix(r[3]),
		ThresholdDB: fix(r[4]),
		KneeDB:      fix(r[5]),
		Ratio:       fix(r[6]),
	}
}

// Validate reports every out-of-range field. The returned error wraps
// audio.ErrInvalidParameter once per offending field.
func (p Parameters) Validate() error {
	var errs []error
	for _, r := range p.ranges() {
		if math.IsNaN(r.value) || r.value < r.min || r.value > r.max {
			errs = append(errs, fmt.Errorf("%w: %s %g is out of range [%g, %g]",
				audio.ErrInvalidParameter, r.name, r.value, r.min, r.max))
		}
	}

	return errors.Join(errs...)
}
