// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"github.com/ik5/saundifix/utils"
)

// ResampledFrames returns ceil(frames * dstRate / srcRate), the length of a
// buffer of the same duration at dstRate.
func ResampledFrames(frames, srcRate, dstRate int) int {
	if srcRate <= 0 || dstRate <= 0 || frames <= 0 {
		return 0
	}

	num := int64(frames) * int64(dstRate)
	return int((num + int64(srcRate) - 1) / int64(srcRate))
}

// Resample converts b to dstRate using Catmull-Rom cubic interpolation and
// preserves the channel count. Output frame i is taken at source position
// i*srcRate/dstRate, computed in integer arithmetic so long buffers do not
// drift. Frames past either edge repeat the first/last sample. Equal rates
// return a copy.
//
// Resample does not band-limit; callers that downsample are expected to
// low-pass the input first.
func Resample(b *Buffer, dstRate int) *Buffer {
	if b.SampleRate == dstRate {
		return b.Clone()
	}

	srcRate := int64(b.SampleRate)
	dst := int64(dstRate)
	frames := b.Frames()
	outFrames := ResampledFrames(frames, b.SampleRate, dstRate)
	out := NewBuffer(len(b.Channels), outFrames, dstRate)

	if frames == 0 {
		return out
	}

	last := frames - 1
	at := func(ch []float32, i int) float32 {
		if i < 0 {
			return ch[0]
		}
		if i > last {
			return ch[last]
		}
		return ch[i]
	}

	for i := range outFrames {
		pos := int64(i) * srcRate
		idx := int(pos / dst)
		frac := float32(float64(pos%dst) / float64(dst))

		for c, ch := range b.Channels {
			out.Channels[c][i] = utils.CubicInterpolate(
				at(ch, idx-1), at(ch, idx), at(ch, idx+1), at(ch, idx+2), frac)
		}
	}

	return out
}
