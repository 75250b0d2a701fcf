// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"fmt"
	"math"
	"testing"

	"github.com/ik5/saundifix/internal/audiotest"
)

func TestBiquad_IdentityAtZeroDB(t *testing.T) {
	t.Parallel()

	designs := map[string]func(sampleRate, freq float64) *Biquad{
		"lowshelf": func(sr, f float64) *Biquad { return NewLowShelf(sr, f, ShelfSlope, 0) },
		"peaking":  func(sr, f float64) *Biquad { return NewPeaking(sr, f, MidQ, 0) },
		"highshelf": func(sr, f float64) *Biquad {
			return NewHighShelf(sr, f, ShelfSlope, 0)
		},
	}
	noise := audiotest.Noise(2048, 0.9, 7)

	for name, design := range designs {
		for _, freq := range []float64{40, 100, 1250, 5000, 15000} {
			t.Run(fmt.Sprintf("%s/%gHz", name, freq), func(t *testing.T) {
				t.Parallel()

				b := design(44100, freq)
				for i, x := range noise {
					y := b.ProcessSample(0, float64(x))
					if float32(y) != x {
						t.Fatalf("sample %d: got %v, want %v", i, y, x)
					}
				}
			})
		}
	}
}

func TestBiquad_Response(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		b    *Biquad
		freq float64
		want float64
		tol  float64
	}{
		{"peaking centre", NewPeaking(44100, MidFrequency, MidQ, 6), MidFrequency, 6, 1e-9},
		{"peaking cut centre", NewPeaking(44100, MidFrequency, MidQ, -12), MidFrequency, -12, 1e-9},
		{"peaking far away", NewPeaking(44100, MidFrequency, MidQ, 6), 20, 0, 0.05},
		{"lowshelf dc", NewLowShelf(44100, BassFrequency, ShelfSlope, 12), 0, 12, 1e-9},
		{"lowshelf corner", NewLowShelf(44100, BassFrequency, ShelfSlope, 12), BassFrequency, 6, 1e-6},
		{"lowshelf treble", NewLowShelf(44100, BassFrequency, ShelfSlope, 12), 10000, 0, 0.05},
		{"highshelf nyquist", NewHighShelf(44100, TrebleFrequency, ShelfSlope, -9), 22050, -9, 1e-6},
		{"highshelf bass", NewHighShelf(44100, TrebleFrequency, ShelfSlope, -9), 50, 0, 0.05},
		{"lowpass passband", NewLowpass(44100, 19845, math.Sqrt2/2), 1000, 0, 0.01},
		{"lowpass cutoff", NewLowpass(44100, 19845, math.Sqrt2/2), 19845, -3.01, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.b.Response(tt.freq)
			if math.Abs(got-tt.want) > tt.tol {
				t.Errorf("Response(%v) = %.6f dB, want %.6f ±%v", tt.freq, got, tt.want, tt.tol)
			}
		})
	}
}

func TestBiquad_ChannelsIndependent(t *testing.T) {
	t.Parallel()

	b := NewPeaking(44100, MidFrequency, MidQ, 12)

	frame := []float64{1, 0}
	b.ProcessFrame(frame)
	for range 100 {
		frame[0], frame[1] = 0, 0
		b.ProcessFrame(frame)
		if frame[1] != 0 {
			t.Fatalf("impulse on channel 0 leaked into channel 1: %v", frame[1])
		}
	}
	if frame[0] == 0 {
		t.Error("channel 0 impulse response died out immediately")
	}
}

func TestBiquad_NyquistClamp(t *testing.T) {
	t.Parallel()

	for _, b := range []*Biquad{
		NewLowpass(8000, 6000, 0.7),
		NewHighShelf(8000, 5000, ShelfSlope, 6),
		NewPeaking(8000, 4000, 1, 6),
	} {
		c := b.Coefficients
		for _, v := range []float64{c.B0, c.B1, c.B2, c.A1, c.A2} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("coefficients not finite: %+v", c)
			}
		}
		// a stable second-order section has |a2| < 1
		if math.Abs(c.A2) >= 1 {
			t.Errorf("unstable coefficients: %+v", c)
		}
	}
}

func TestBiquad_DegenerateShape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		b    *Biquad
	}{
		{"low shelf zero slope", NewLowShelf(44100, BassFrequency, 0, 12)},
		{"low shelf negative slope", NewLowShelf(44100, BassFrequency, -1, -12)},
		{"high shelf NaN slope", NewHighShelf(44100, TrebleFrequency, math.NaN(), 6)},
		{"high shelf steep slope", NewHighShelf(44100, TrebleFrequency, 5, -40)},
		{"peaking zero q", NewPeaking(44100, MidFrequency, 0, 6)},
		{"peaking negative q", NewPeaking(44100, MidFrequency, -2, -6)},
		{"lowpass zero q", NewLowpass(44100, 10000, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := tt.b.Coefficients
			for _, v := range []float64{c.B0, c.B1, c.B2, c.A1, c.A2} {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("coefficients not finite: %+v", c)
				}
			}
			if r := tt.b.Response(1000); math.IsNaN(r) {
				t.Errorf("Response(1000) = NaN")
			}
		})
	}

	// slopes above 1 design the same shelf as slope 1
	if a, b := NewHighShelf(44100, TrebleFrequency, 5, -40), NewHighShelf(44100, TrebleFrequency, 1, -40); a.Coefficients != b.Coefficients {
		t.Errorf("slope 5 = %+v, want slope 1 %+v", a.Coefficients, b.Coefficients)
	}
}

func TestBiquad_Reset(t *testing.T) {
	t.Parallel()

	noise := audiotest.Noise(512, 0.5, 3)
	b := NewLowShelf(44100, BassFrequency, ShelfSlope, 9)

	first := append([]float32(nil), noise...)
	b.ProcessChannel(0, first)
	b.Reset()
	second := append([]float32(nil), noise...)
	b.ProcessChannel(0, second)

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("sample %d differs after Reset: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestBiquad_ProcessFrameZeroAlloc(t *testing.T) {
	b := NewPeaking(44100, MidFrequency, MidQ, 3)
	frame := []float64{0.1, -0.1}
	b.ProcessFrame(frame)

	allocs := testing.AllocsPerRun(100, func() {
		b.ProcessFrame(frame)
	})
	if allocs != 0 {
		t.Errorf("ProcessFrame allocates %v times per call, want 0", allocs)
	}
}

func BenchmarkBiquad_ProcessChannel(b *testing.B) {
	f := NewPeaking(44100, MidFrequency, MidQ, 6)
	buf := audiotest.Noise(4096, 0.5, 1)

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		f.ProcessChannel(0, buf)
	}
}
