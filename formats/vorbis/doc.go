// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis audio through
// github.com/jfreymuth/oggvorbis.
//
// Vorbis decodes to floating point natively, so samples are passed through
// without conversion. Channel count and sample rate come from the
// identification header.
//
//	src, err := vorbis.Decoder{}.Decode(file)
//	if err != nil {
//	    // err wraps audio.ErrDecodeFailure
//	}
//
// Reads are always a whole number of frames; a destination shorter than one
// frame reads nothing.
package vorbis
