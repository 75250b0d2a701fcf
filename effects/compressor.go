// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"math"

	"github.com/ik5/saundifix/utils"
)

// Compressor is a soft-knee downward compressor with one detector shared by
// all channels, so a loud left channel also turns the right channel down and
// the stereo image does not wander.
//
// The detector jumps to a new peak immediately and decays over the release
// time, so on a steady tone it rests on the tone's peak. Attack and release
// then smooth the gain reduction in dB.
//
// A Compressor is not safe for concurrent use.
type Compressor struct {
	thresholdDB float64
	kneeDB      float64
	ratio       float64

	attackCoeff  float64
	releaseCoeff float64

	envelope  float64
	reduction float64
}

// NewCompressor builds a compressor running at sampleRate. Attack and release
// are time constants in milliseconds.
func NewCompressor(sampleRate, thresholdDB, kneeDB, ratio, attackMs, releaseMs float64) *Compressor {
	return &Compressor{
		thresholdDB:  thresholdDB,
		kneeDB:       math.Max(kneeDB, 0),
		ratio:        math.Max(ratio, 1),
		attackCoeff:  timeCoeff(attackMs, sampleRate),
		releaseCoeff: timeCoeff(releaseMs, sampleRate),
	}
}

// timeCoeff is the one-pole smoothing factor for a time constant; zero means
// no smoothing.
func timeCoeff(ms, sampleRate float64) float64 {
	if ms <= 0 || sampleRate <= 0 {
		return 0
	}
	return math.Exp(-1 / (ms * 0.001 * sampleRate))
}

// Bypassed reports whether the compressor leaves the signal untouched.
func (c *Compressor) Bypassed() bool {
	return c.ratio == 1
}

// Envelope returns the current detector level (linear).
func (c *Compressor) Envelope() float64 {
	return c.envelope
}

// ReductionDB returns the smoothed gain change in dB currently applied.
func (c *Compressor) ReductionDB() float64 {
	return c.reduction
}

// StaticCurve returns the settled output level in dB for a steady input
// level of inputDB.
func (c *Compressor) StaticCurve(inputDB float64) float64 {
	t, k, r := c.thresholdDB, c.kneeDB, c.ratio

	switch {
	case k == 0:
		if inputDB <= t {
			return inputDB
		}
		return t + (inputDB-t)/r
	case inputDB < t-k/2:
		return inputDB
	case inputDB > t+k/2:
		return t + (inputDB-t)/r
	default:
		over := inputDB - t + k/2
		return inputDB + (1/r-1)*over*over/(2*k)
	}
}

// GainReductionDB returns the gain change in dB (zero or negative) applied to
// a steady input level of inputDB.
func (c *Compressor) GainReductionDB(inputDB float64) float64 {
	return c.StaticCurve(inputDB) - inputDB
}

// ProcessFrame detects the peak of frame, advances the detector and the
// smoothed gain reduction, and scales every channel by the same gain.
func (c *Compressor) ProcessFrame(frame []float64) {
	if c.Bypassed() {
		return
	}

	var level float64
	for _, x := range frame {
		level = math.Max(level, math.Abs(x))
	}
	c.envelope = math.Max(level, c.releaseCoeff*c.envelope)

	var target float64
	if c.envelope > 0 {
		target = c.GainReductionDB(utils.LinearToDB(c.envelope))
	}

	coeff := c.releaseCoeff
	if target < c.reduction {
		coeff = c.attackCoeff
	}
	c.reduction = coeff*c.reduction + (1-coeff)*target

	if c.reduction == 0 {
		return
	}

	gain := utils.DBToLinear(c.reduction)
	for i := range frame {
		frame[i] *= gain
	}
}

// Reset clears the detector and the gain reduction.
func (c *Compressor) Reset() {
	c.envelope = 0
	c.reduction = 0
}
