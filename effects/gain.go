// SPDX-License-Identifier: EPL-2.0

package effects

import "github.com/ik5/saundifix/audio"

// Gain multiplies every sample by Factor. It never clips.
type Gain struct {
	Factor float64
}

func (g Gain) ProcessFrame(frame []float64) {
	for c := range frame {
		frame[c] *= g.Factor
	}
}

func (Gain) Reset() {}

// ApplyGain returns a copy of buf with every sample scaled by factor.
func ApplyGain(buf *audio.Buffer, factor float64) *audio.Buffer {
	out := buf.Clone()
	for _, ch := range out.Channels {
		for i, s := range ch {
			ch[i] = float32(float64(s) * factor)
		}
	}

	return out
}
