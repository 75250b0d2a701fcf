// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"time"
)

// Buffer is a fully decoded block of PCM audio. Channels holds one slice
// per channel; all of them have the same length.
type Buffer struct {
	Channels   [][]float32
	SampleRate int
}

// NewBuffer allocates a silent buffer.
func NewBuffer(channels, frames, sampleRate int) *Buffer {
	b := &Buffer{
		Channels:   make([][]float32, channels),
		SampleRate: sampleRate,
	}
	for c := range b.Channels {
		b.Channels[c] = make([]float32, frames)
	}

	return b
}

// NumChannels returns the channel count.
func (b *Buffer) NumChannels() int { return len(b.Channels) }

// Frames returns the number of samples per channel.
func (b *Buffer) Frames() int {
	if len(b.Channels) == 0 {
		return 0
	}

	return len(b.Channels[0])
}

// Duration returns the playing time of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}

	return time.Duration(int64(b.Frames()) * int64(time.Second) / int64(b.SampleRate))
}

// Validate checks the buffer invariants: one or two channels of equal,
// non-zero length and a positive sample rate.
func (b *Buffer) Validate() error {
	if b == nil || len(b.Channels) == 0 {
		return fmt.Errorf("%w: no channels", ErrMalformedBuffer)
	}
	if len(b.Channels) > 2 {
		return fmt.Errorf("%w: got %d", ErrUnsupportedChannels, len(b.Channels))
	}
	if b.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrMalformedBuffer, b.SampleRate)
	}

	frames := len(b.Channels[0])
	for c, ch := range b.Channels {
		if len(ch) != frames {
			return fmt.Errorf("%w: channel %d has %d frames, channel 0 has %d",
				ErrMalformedBuffer, c, len(ch), frames)
		}
	}
	if frames == 0 {
		return ErrEmptyBuffer
	}

	return nil
}

// Clone returns a deep copy of b.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{
		Channels:   make([][]float32, len(b.Channels)),
		SampleRate: b.SampleRate,
	}
	for c, ch := range b.Channels {
		out.Channels[c] = append([]float32(nil), ch...)
	}

	return out
}

// ToStereo maps b onto two channels. Mono is duplicated to both sides,
// stereo is copied as is.
func (b *Buffer) ToStereo() *Buffer {
	if len(b.Channels) == 2 {
		return b.Clone()
	}

	out := NewBuffer(2, b.Frames(), b.SampleRate)
	if len(b.Channels) == 1 {
		copy(out.Channels[0], b.Channels[0])
		copy(out.Channels[1], b.Channels[0])
	}

	return out
}

// Interleaved returns the samples frame by frame (L R L R ...).
func (b *Buffer) Interleaved() []float32 {
	channels := len(b.Channels)
	frames := b.Frames()
	out := make([]float32, frames*channels)

	for f := range frames {
		base := f * channels
		for c := range channels {
			out[base+c] = b.Channels[c][f]
		}
	}

	return out
}

// FromInterleaved splits interleaved samples into a Buffer. A trailing
// partial frame is dropped.
func FromInterleaved(samples []float32, channels, sampleRate int) *Buffer {
	if channels <= 0 {
		return &Buffer{SampleRate: sampleRate}
	}

	frames := len(samples) / channels
	b := NewBuffer(channels, frames, sampleRate)

	for f := range frames {
		base := f * channels
		for c := range channels {
			b.Channels[c][f] = samples[base+c]
		}
	}

	return b
}
