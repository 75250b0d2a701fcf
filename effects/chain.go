// SPDX-License-Identifier: EPL-2.0

package effects

// Stage processes one frame (one sample per channel) in place.
type Stage interface {
	ProcessFrame(frame []float64)
	Reset()
}

// Chain runs stages in order over each frame.
type Chain struct {
	stages []Stage
}

// NewChain returns a chain running stages in the given order.
func NewChain(stages ...Stage) *Chain {
	return &Chain{stages: stages}
}

// NewStandardChain builds the fixed pipeline for p at sampleRate:
// gain, bass shelf, mid peak, treble shelf, then the linked compressor.
// p is used as given; clamp it first if it comes from user input.
func NewStandardChain(sampleRate float64, p Parameters) *Chain {
	return NewChain(
		Gain{Factor: p.Gain},
		NewLowShelf(sampleRate, BassFrequency, ShelfSlope, p.BassDB),
		NewPeaking(sampleRate, MidFrequency, MidQ, p.MidDB),
		NewHighShelf(sampleRate, TrebleFrequency, ShelfSlope, p.TrebleDB),
		NewCompressor(sampleRate, p.ThresholdDB, p.KneeDB, p.Ratio, AttackMs, ReleaseMs),
	)
}

// Stages returns the stages in processing order.
func (c *Chain) Stages() []Stage {
	return c.stages
}

func (c *Chain) ProcessFrame(frame []float64) {
	for _, s := range c.stages {
		s.ProcessFrame(frame)
	}
}

// Process runs the chain over planar channels in place. All channels must
// have the same length.
func (c *Chain) Process(channels [][]float32) {
	if len(channels) == 0 {
		return
	}

	frame := make([]float64, len(channels))
	for i := range channels[0] {
		for ch := range channels {
			frame[ch] = float64(channels[ch][i])
		}
		c.ProcessFrame(frame)
		for ch := range channels {
			channels[ch][i] = float32(frame[ch])
		}
	}
}

func (c *Chain) Reset() {
	for _, s := range c.stages {
		s.Reset()
	}
}
