// SPDX-License-Identifier: EPL-2.0

// Package effects implements the DSP stages of the pipeline: a linear gain,
// cookbook biquad equalizer bands and a stereo-linked soft-knee compressor.
//
// Every stage works on frames, one float64 sample per channel, so the
// compressor can see all channels of an instant at once:
//
//	chain := effects.NewStandardChain(44100, effects.DefaultParameters())
//	chain.Process(buf.Channels)
//
// Stages keep per-render state. Build a fresh chain (or call Reset) for each
// buffer.
package effects
