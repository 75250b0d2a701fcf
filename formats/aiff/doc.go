// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF (Audio Interchange File Format) files.
//
// Decoding goes through github.com/go-audio/aiff. Uncompressed big-endian
// PCM at 8, 16, 24 or 32 bits is accepted with any channel count and sample
// rate:
//
//	src, err := aiff.Decoder{}.Decode(file)
//	if err != nil {
//	    // err wraps audio.ErrDecodeFailure
//	}
//	buf, err := audio.ReadAll(src)
//
// Samples are scaled the same way as the wav package, by the largest
// positive integer of the bit depth. Inputs that are not AIFF report
// ErrNotAiffFile; unusable headers report ErrUnsupportedAiffLayout or
// intpcm's unsupported bit depth error, always wrapped in
// audio.ErrDecodeFailure.
//
// AIFF writing is not supported.
package aiff
