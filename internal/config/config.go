// SPDX-License-Identifier: EPL-2.0

// Package config loads effect presets from YAML.
//
// A preset names any subset of the effect parameters; omitted keys keep
// their defaults:
//
//	description: warm vocal
//	gain: 1.5
//	bass: 4
//	treble: -2
//	threshold: -18
//	knee: 10
//	ratio: 4
package config

import (
	"log/slog"

	"github.com/ik5/saundifix/effects"
)

// Preset is a partial set of effect parameters. Nil fields are unset.
type Preset struct {
	Description string `yaml:"description,omitempty"`

	Gain      *float64 `yaml:"gain,omitempty"`
	Bass      *float64 `yaml:"bass,omitempty"`
	Mid       *float64 `yaml:"mid,omitempty"`
	Treble    *float64 `yaml:"treble,omitempty"`
	Threshold *float64 `yaml:"threshold,omitempty"`
	Knee      *float64 `yaml:"knee,omitempty"`
	Ratio     *float64 `yaml:"ratio,omitempty"`
}

// Merge returns p with every field that is set in over replaced.
func (p Preset) Merge(over Preset) Preset {
	pick := func(dst **float64, src *float64) {
		if src != nil {
			v := *src
			*dst = &v
		}
	}

	pick(&p.Gain, over.Gain)
	pick(&p.Bass, over.Bass)
	pick(&p.Mid, over.Mid)
	pick(&p.Treble, over.Treble)
	pick(&p.Threshold, over.Threshold)
	pick(&p.Knee, over.Knee)
	pick(&p.Ratio, over.Ratio)
	if over.Description != "" {
		p.Description = over.Description
	}
	return p
}

// Apply overlays the set fields of p on base without clamping.
func (p Preset) Apply(base effects.Parameters) effects.Parameters {
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}

	set(&base.Gain, p.Gain)
	set(&base.BassDB, p.Bass)
	set(&base.MidDB, p.Mid)
	set(&base.TrebleDB, p.Treble)
	set(&base.ThresholdDB, p.Threshold)
	set(&base.KneeDB, p.Knee)
	set(&base.Ratio, p.Ratio)
	return base
}

// Parameters resolves p against the defaults and clamps the result into
// range. Every clamped field is reported on logger at warn level; a nil
// logger uses slog.Default.
func (p Preset) Parameters(logger *slog.Logger) effects.Parameters {
	if logger == nil {
		logger = slog.Default()
	}

	raw := p.Apply(effects.DefaultParameters())
	clamped := raw.Clamp()

	warn := func(name string, from, to float64) {
		// NaN never equals itself, so it is always reported
		if from != to {
			logger.Warn("effect parameter out of range; clamped", "param", name, "value", from, "clamped", to)
		}
	}
	warn("gain", raw.Gain, clamped.Gain)
	warn("bass", raw.BassDB, clamped.BassDB)
	warn("mid", raw.MidDB, clamped.MidDB)
	warn("treble", raw.TrebleDB, clamped.TrebleDB)
	warn("threshold", raw.ThresholdDB, clamped.ThresholdDB)
	warn("knee", raw.KneeDB, clamped.KneeDB)
	warn("ratio", raw.Ratio, clamped.Ratio)

	return clamped
}

// FromParameters returns a preset with every field set.
func FromParameters(params effects.Parameters) Preset {
	return Preset{
		Gain:      &params.Gain,
		Bass:      &params.BassDB,
		Mid:       &params.MidDB,
		Treble:    &params.TrebleDB,
		Threshold: &params.ThresholdDB,
		Knee:      &params.KneeDB,
		Ratio:     &params.Ratio,
	}
}
