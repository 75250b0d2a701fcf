// SPDX-License-Identifier: EPL-2.0

// Package analysis measures rendered audio: peak and RMS levels in dBFS and
// the dominant frequency of the spectrum.
package analysis

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/ik5/saundifix/audio"
	"github.com/ik5/saundifix/utils"
)

// MaxFFTSize bounds the spectrum window; longer signals are analysed over
// their middle MaxFFTSize samples.
const MaxFFTSize = 1 << 16

// Band is a named frequency range.
type Band struct {
	Name   string
	Lo, Hi float64
}

// Bands are the ranges Analyze reports, roughly where the bass, mid and
// treble controls act.
var Bands = []Band{
	{"low", 20, 250},
	{"mid", 250, 4000},
	{"high", 4000, 20000},
}

// Report summarises one buffer.
type Report struct {
	Channels   int
	SampleRate int
	Frames     int

	// PeakDB and RMSDB are per channel, in dBFS.
	PeakDB []float64
	RMSDB  []float64

	// DominantHz is the strongest frequency of the first channel.
	DominantHz float64

	// BandDB holds the first channel's level in each of Bands, in dBFS.
	BandDB []float64
}

// Analyze measures buf. buf must have at least one channel.
func Analyze(buf *audio.Buffer) Report {
	r := Report{
		Channels:   buf.NumChannels(),
		SampleRate: buf.SampleRate,
		Frames:     buf.Frames(),
	}
	for _, ch := range buf.Channels {
		r.PeakDB = append(r.PeakDB, PeakDB(ch))
		r.RMSDB = append(r.RMSDB, RMSDB(ch))
	}
	if len(buf.Channels) > 0 {
		r.DominantHz = DominantFrequency(buf.Channels[0], buf.SampleRate)
		for _, band := range Bands {
			r.BandDB = append(r.BandDB, BandEnergyDB(buf.Channels[0], buf.SampleRate, band.Lo, band.Hi))
		}
	}

	return r
}

// PeakDB returns the largest absolute sample in dBFS, or -Inf for silence.
func PeakDB(samples []float32) float64 {
	var peak float64
	for _, s := range samples {
		peak = math.Max(peak, math.Abs(float64(s)))
	}
	return utils.LinearToDB(peak)
}

// RMSDB returns the root mean square level in dBFS, or -Inf for silence.
func RMSDB(samples []float32) float64 {
	if len(samples) == 0 {
		return math.Inf(-1)
	}

	var sum float64
	for _, s := range samples {
		sum += float64(s) * float64(s)
	}
	return utils.LinearToDB(math.Sqrt(sum / float64(len(samples))))
}

// Spectrum returns the magnitude spectrum of a Hann-windowed segment of
// samples together with the width of one bin in Hz.
func Spectrum(samples []float32, sampleRate int) (mags []float64, binHz float64) {
	mags, binHz, _ = spectrum(samples, sampleRate)
	return mags, binHz
}

// spectrum also returns the window's energy, sum(w^2), which scales bin
// power back to the signal's mean square.
func spectrum(samples []float32, sampleRate int) (mags []float64, binHz, windowEnergy float64) {
	n := len(samples)
	if n < 2 || sampleRate <= 0 {
		return nil, 0, 0
	}

	offset := 0
	if n > MaxFFTSize {
		offset = (n - MaxFFTSize) / 2
		n = MaxFFTSize
	}

	windowed := make([]float64, n)
	for i := range windowed {
		w := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
		windowed[i] = float64(samples[offset+i]) * w
		windowEnergy += w * w
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, windowed)

	mags = make([]float64, len(coeffs))
	for i, c := range coeffs {
		mags[i] = math.Hypot(real(c), imag(c))
	}

	return mags, float64(sampleRate) / float64(n), windowEnergy
}

// DominantFrequency returns the frequency of the strongest spectral peak,
// refined by parabolic interpolation between neighbouring bins. DC is
// ignored. Silence returns 0.
func DominantFrequency(samples []float32, sampleRate int) float64 {
	mags, binHz := Spectrum(samples, sampleRate)
	if len(mags) < 3 {
		return 0
	}

	best := 1
	for i := 2; i < len(mags); i++ {
		if mags[i] > mags[best] {
			best = i
		}
	}
	if mags[best] == 0 {
		return 0
	}

	shift := 0.0
	if best < len(mags)-1 {
		a, b, c := mags[best-1], mags[best], mags[best+1]
		if den := a - 2*b + c; den != 0 {
			shift = 0.5 * (a - c) / den
		}
	}

	return (float64(best) + shift) * binHz
}

// BandEnergyDB returns the level of the content between lo and hi Hz in
// dBFS, on the same scale as RMSDB: a band holding the whole signal reads
// the signal's RMS level.
func BandEnergyDB(samples []float32, sampleRate int, lo, hi float64) float64 {
	mags, binHz, windowEnergy := spectrum(samples, sampleRate)
	if len(mags) == 0 || windowEnergy == 0 {
		return math.Inf(-1)
	}

	n := min(len(samples), MaxFFTSize)
	nyquist := len(mags) - 1
	if n%2 == 1 {
		nyquist = -1
	}

	var power float64
	for i, m := range mags {
		f := float64(i) * binHz
		if f < lo || f > hi {
			continue
		}
		// one-sided spectrum: every bin but DC and Nyquist stands for two
		if i == 0 || i == nyquist {
			power += m * m
		} else {
			power += 2 * m * m
		}
	}
	if power == 0 {
		return math.Inf(-1)
	}
	return 10 * math.Log10(power/(float64(n)*windowEnergy))
}
