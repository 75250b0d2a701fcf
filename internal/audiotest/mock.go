// SPDX-License-Identifier: EPL-2.0

// Package audiotest generates synthetic audio for tests. It does not import
// the audio package so that package's own tests can use it.
package audiotest

import (
	"io"
	"math"
)

// MockSource generates audio on demand. It satisfies audio.Source.
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // per channel
	generated    int // per channel
	waveform     func(sample int, channel int) float32

	// FailAfter makes ReadSamples return Err once this many frames were
	// produced. Zero disables the failure.
	FailAfter int
	Err       error

	closed bool
}

// NewMockSource creates a new mock audio source.
// totalSamples is the total number of samples per channel to generate.
// waveform is a function that generates sample values given sample index and channel.
func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewSilentSource creates a mock source that generates silence.
func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewConstantSource(sampleRate, channels, totalSamples, 0)
}

// NewSineSource creates a mock source that generates a full-scale sine wave.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, _ int) float32 {
		return sineAt(sample, sampleRate, frequency, 1)
	})
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate, channels, totalSamples int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 {
		return value
	})
}

// NewFailingSource yields frames of silence and then fails with err.
func NewFailingSource(sampleRate, channels, failAfter int, err error) *MockSource {
	s := NewSilentSource(sampleRate, channels, failAfter*4)
	s.FailAfter = failAfter
	s.Err = err
	return s
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Closed() bool    { return m.closed }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Reset rewinds the generator.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.FailAfter > 0 && m.generated >= m.FailAfter {
		return 0, m.Err
	}
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	framesToWrite := min(len(dst)/m.channels, m.totalSamples-m.generated)
	if m.FailAfter > 0 {
		framesToWrite = min(framesToWrite, m.FailAfter-m.generated)
	}

	for frame := range framesToWrite {
		sampleIndex := m.generated + frame
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(sampleIndex, ch)
		}
	}

	m.generated += framesToWrite
	samplesWritten := framesToWrite * m.channels

	if m.generated >= m.totalSamples {
		return samplesWritten, io.EOF
	}

	return samplesWritten, nil
}

// Sine returns frames samples of a sine at frequency with peak amplitude amp.
func Sine(frames, sampleRate int, frequency, amp float64) []float32 {
	out := make([]float32, frames)
	for i := range out {
		out[i] = sineAt(i, sampleRate, frequency, amp)
	}
	return out
}

// Constant returns frames copies of value.
func Constant(frames int, value float32) []float32 {
	out := make([]float32, frames)
	for i := range out {
		out[i] = value
	}
	return out
}

// Noise returns deterministic white noise in [-amp, amp] from a linear
// congruential generator seeded with seed.
func Noise(frames int, amp float64, seed uint32) []float32 {
	out := make([]float32, frames)
	state := seed
	for i := range out {
		state = state*1664525 + 1013904223
		out[i] = float32((float64(state)/float64(math.MaxUint32)*2 - 1) * amp)
	}
	return out
}

func sineAt(sample, sampleRate int, frequency, amp float64) float32 {
	t := float64(sample) / float64(sampleRate)
	return float32(amp * math.Sin(2*math.Pi*frequency*t))
}
