// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"math"
	"math/cmplx"
)

// nyquistGuard keeps designed frequencies strictly below Nyquist.
const nyquistGuard = 0.9999

// minShape is the smallest Q or shelf slope a design accepts; anything
// lower, NaN included, is raised to it.
const minShape = 1e-3

func clampQ(q float64) float64 {
	if !(q > minShape) {
		return minShape
	}
	return q
}

// clampSlope keeps a shelf slope in (0, 1], the range where the cookbook
// shelf stays monotonic.
func clampSlope(slope float64) float64 {
	return math.Min(clampQ(slope), 1)
}

// Coefficients of one second-order section, normalised so a0 = 1.
//
// Sign convention (Direct Form II Transposed):
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Response returns the magnitude response in dB at freq for a filter running
// at sampleRate.
func (c Coefficients) Response(freq, sampleRate float64) float64 {
	w := 2 * math.Pi * freq / sampleRate
	z1 := cmplx.Exp(complex(0, -w))
	z2 := cmplx.Exp(complex(0, -2*w))

	num := complex(c.B0, 0) + complex(c.B1, 0)*z1 + complex(c.B2, 0)*z2
	den := 1 + complex(c.A1, 0)*z1 + complex(c.A2, 0)*z2

	return 20 * math.Log10(cmplx.Abs(num/den))
}

// Biquad is a second-order IIR filter with independent state per channel.
type Biquad struct {
	Coefficients

	sampleRate float64
	state      [][2]float64
}

func newBiquad(sampleRate float64, b0, b1, b2, a0, a1, a2 float64) *Biquad {
	return &Biquad{
		Coefficients: Coefficients{
			B0: b0 / a0,
			B1: b1 / a0,
			B2: b2 / a0,
			A1: a1 / a0,
			A2: a2 / a0,
		},
		sampleRate: sampleRate,
	}
}

func omega(sampleRate, freq float64) (cosW, sinW float64) {
	if limit := sampleRate / 2 * nyquistGuard; freq >= limit {
		freq = limit
	}
	w0 := 2 * math.Pi * freq / sampleRate
	return math.Cos(w0), math.Sin(w0)
}

func shelfAlpha(sinW, a, slope float64) float64 {
	slope = clampSlope(slope)
	return sinW / 2 * math.Sqrt((a+1/a)*(1/slope-1)+2)
}

// NewLowShelf designs a cookbook low-shelf at freq with shelf slope S,
// limited to (0, 1].
func NewLowShelf(sampleRate, freq, slope, gainDB float64) *Biquad {
	cw, sw := omega(sampleRate, freq)
	a := math.Pow(10, gainDB/40)
	beta := 2 * math.Sqrt(a) * shelfAlpha(sw, a, slope)

	return newBiquad(sampleRate,
		a*((a+1)-(a-1)*cw+beta),
		2*a*((a-1)-(a+1)*cw),
		a*((a+1)-(a-1)*cw-beta),
		(a+1)+(a-1)*cw+beta,
		-2*((a-1)+(a+1)*cw),
		(a+1)+(a-1)*cw-beta,
	)
}

// NewHighShelf designs a cookbook high-shelf at freq with shelf slope S,
// limited to (0, 1].
func NewHighShelf(sampleRate, freq, slope, gainDB float64) *Biquad {
	cw, sw := omega(sampleRate, freq)
	a := math.Pow(10, gainDB/40)
	beta := 2 * math.Sqrt(a) * shelfAlpha(sw, a, slope)

	return newBiquad(sampleRate,
		a*((a+1)+(a-1)*cw+beta),
		-2*a*((a-1)+(a+1)*cw),
		a*((a+1)+(a-1)*cw-beta),
		(a+1)-(a-1)*cw+beta,
		2*((a-1)-(a+1)*cw),
		(a+1)-(a-1)*cw-beta,
	)
}

// NewPeaking designs a cookbook peaking band centred on freq. q must be
// positive; smaller values are raised to a narrow minimum.
func NewPeaking(sampleRate, freq, q, gainDB float64) *Biquad {
	cw, sw := omega(sampleRate, freq)
	a := math.Pow(10, gainDB/40)
	alpha := sw / (2 * clampQ(q))

	return newBiquad(sampleRate,
		1+alpha*a,
		-2*cw,
		1-alpha*a,
		1+alpha/a,
		-2*cw,
		1-alpha/a,
	)
}

// NewLowpass designs a cookbook second-order low-pass with cutoff freq.
func NewLowpass(sampleRate, freq, q float64) *Biquad {
	cw, sw := omega(sampleRate, freq)
	alpha := sw / (2 * clampQ(q))

	return newBiquad(sampleRate,
		(1-cw)/2,
		1-cw,
		(1-cw)/2,
		1+alpha,
		-2*cw,
		1-alpha,
	)
}

// Response returns the filter's magnitude response in dB at freq.
func (b *Biquad) Response(freq float64) float64 {
	return b.Coefficients.Response(freq, b.sampleRate)
}

// ProcessSample filters x on channel ch.
func (b *Biquad) ProcessSample(ch int, x float64) float64 {
	if ch >= len(b.state) {
		b.grow(ch + 1)
	}

	s := &b.state[ch]
	y := b.B0*x + s[0]
	s[0] = b.B1*x - b.A1*y + s[1]
	s[1] = b.B2*x - b.A2*y

	return y
}

// ProcessFrame filters every channel of frame in place. Channels never mix.
func (b *Biquad) ProcessFrame(frame []float64) {
	for c, x := range frame {
		frame[c] = b.ProcessSample(c, x)
	}
}

// ProcessChannel filters a whole channel of samples in place.
func (b *Biquad) ProcessChannel(ch int, samples []float32) {
	for i, x := range samples {
		samples[i] = float32(b.ProcessSample(ch, float64(x)))
	}
}

// Reset clears the delay taps of every channel.
func (b *Biquad) Reset() {
	clear(b.state)
}

func (b *Biquad) grow(n int) {
	state := make([][2]float64, n)
	copy(state, b.state)
	b.state = state
}
