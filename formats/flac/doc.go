// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC audio through github.com/mewkiz/flac.
//
// Decoded frames are interleaved and scaled by the largest positive integer
// of the stream's bit depth, matching the wav and aiff packages. Errors are
// wrapped in audio.ErrDecodeFailure.
package flac
