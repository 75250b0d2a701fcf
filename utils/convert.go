// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// PCM16Scale is the full-scale value used for both directions of the
// float <-> 16-bit conversion, so a quantised sample survives a round trip.
const PCM16Scale = 32767.0

// Float32ToInt16 clamps x to [-1, 1] and rounds it to the nearest 16-bit step.
// NaN maps to 0.
func Float32ToInt16(x float32) int16 {
	if x != x {
		return 0
	}
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	return int16(math.Round(float64(x) * PCM16Scale))
}

// Int16ToFloat32 is the inverse of Float32ToInt16.
// math.MinInt16 maps slightly below -1.
func Int16ToFloat32(v int16) float32 {
	return float32(float64(v) / PCM16Scale)
}

// DBToLinear converts a level in decibels to a linear amplitude factor.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts a linear amplitude to decibels.
// Zero and negative amplitudes map to -Inf.
func LinearToDB(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(v)
}

// Clamp limits v to [lo, hi].
func Clamp[T Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}
