// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio through
// github.com/hajimehoshi/go-mp3.
//
// The decoder always yields interleaved stereo; mono files are duplicated to
// both channels by go-mp3 itself. Samples are converted with
// utils.Int16ToFloat32, the same scaling the WAV encoder inverts.
//
//	src, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    // err wraps audio.ErrDecodeFailure
//	}
//	buf, err := audio.ReadAll(src)
//
// Errors raised while reading frames are also wrapped in
// audio.ErrDecodeFailure.
package mp3
