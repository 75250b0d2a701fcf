// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"math"
	"testing"

	"github.com/ik5/saundifix/internal/audiotest"
)

func TestStandardChain_DefaultsArePassthrough(t *testing.T) {
	t.Parallel()

	left := audiotest.Noise(8192, 0.8, 1)
	right := audiotest.Sine(8192, 44100, 440, 0.5)
	channels := [][]float32{
		append([]float32(nil), left...),
		append([]float32(nil), right...),
	}

	NewStandardChain(44100, DefaultParameters()).Process(channels)

	for i := range left {
		if channels[0][i] != left[i] || channels[1][i] != right[i] {
			t.Fatalf("frame %d changed: got (%v, %v), want (%v, %v)",
				i, channels[0][i], channels[1][i], left[i], right[i])
		}
	}
}

func TestStandardChain_Order(t *testing.T) {
	t.Parallel()

	chain := NewStandardChain(44100, DefaultParameters())
	stages := chain.Stages()
	if len(stages) != 5 {
		t.Fatalf("len(Stages()) = %d, want 5", len(stages))
	}
	if _, ok := stages[0].(Gain); !ok {
		t.Errorf("stage 0 is %T, want Gain", stages[0])
	}
	for i := 1; i <= 3; i++ {
		if _, ok := stages[i].(*Biquad); !ok {
			t.Errorf("stage %d is %T, want *Biquad", i, stages[i])
		}
	}
	if _, ok := stages[4].(*Compressor); !ok {
		t.Errorf("stage 4 is %T, want *Compressor", stages[4])
	}
}

func TestStandardChain_GainFeedsCompressor(t *testing.T) {
	t.Parallel()

	p := DefaultParameters()
	p.Gain = 4
	p.ThresholdDB = -20
	p.KneeDB = 0
	p.Ratio = 20

	ch := [][]float32{audiotest.Constant(44100, 0.25)}
	NewStandardChain(44100, p).Process(ch)

	// 0.25 * 4 = 0 dBFS in, squashed to -20 + 20/20 = -19 dB out.
	got := 20 * math.Log10(float64(ch[0][len(ch[0])-1]))
	if math.Abs(got-(-19)) > 0.05 {
		t.Errorf("settled level = %.3f dB, want -19 dB", got)
	}
}

func TestChain_Reset(t *testing.T) {
	t.Parallel()

	p := Parameters{Gain: 1.5, BassDB: 6, MidDB: -3, TrebleDB: 4, ThresholdDB: -18, KneeDB: 10, Ratio: 3}
	chain := NewStandardChain(44100, p)
	noise := audiotest.Noise(2048, 0.7, 9)

	first := [][]float32{append([]float32(nil), noise...)}
	chain.Process(first)
	chain.Reset()
	second := [][]float32{append([]float32(nil), noise...)}
	chain.Process(second)

	for i := range noise {
		if first[0][i] != second[0][i] {
			t.Fatalf("sample %d differs after Reset", i)
		}
	}
}

func TestChain_ProcessFrameZeroAlloc(t *testing.T) {
	p := Parameters{Gain: 2, BassDB: 3, MidDB: 3, TrebleDB: 3, ThresholdDB: -24, KneeDB: 30, Ratio: 4}
	chain := NewStandardChain(44100, p)
	frame := []float64{0.1, 0.2}
	chain.ProcessFrame(frame)

	allocs := testing.AllocsPerRun(100, func() {
		chain.ProcessFrame(frame)
	})
	if allocs != 0 {
		t.Errorf("ProcessFrame allocates %v times per call, want 0", allocs)
	}
}

func BenchmarkStandardChain_Process(b *testing.B) {
	p := Parameters{Gain: 1.25, BassDB: 6, MidDB: -2, TrebleDB: 3, ThresholdDB: -24, KneeDB: 30, Ratio: 4}
	chain := NewStandardChain(44100, p)
	channels := [][]float32{
		audiotest.Noise(4096, 0.5, 1),
		audiotest.Noise(4096, 0.5, 2),
	}

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		chain.Process(channels)
	}
}
