// SPDX-License-Identifier: EPL-2.0

// Package saundifix applies gain, a three band equalizer and a compressor to
// audio files and writes the result as 16-bit stereo WAV at 44100 Hz.
//
// The processing chain, in order:
//
//	decode -> stereo -> 44100 Hz -> gain -> bass (low shelf, 100 Hz)
//	       -> mid (peaking, 1250 Hz) -> treble (high shelf, 5000 Hz)
//	       -> compressor -> WAV
//
// # Supported Formats
//
// DefaultRegistry decodes wav, aiff/aif, mp3, ogg (Vorbis) and flac, picked
// by file extension. Other extensions, m4a and opus included, fail with
// audio.ErrUnsupportedFormat wrapped in audio.ErrDecodeFailure.
//
// # Quick Start
//
//	buf, err := saundifix.DecodeFile(ctx, "take1.mp3", saundifix.Options{})
//	if err != nil {
//	    return err
//	}
//
//	params := effects.DefaultParameters()
//	params.BassDB = 6
//
//	data, err := saundifix.Process(ctx, buf, params, saundifix.Options{})
//	// data is a complete WAV file
//
// ProcessFile does the same from path to path, and ProcessBatch runs many
// files concurrently with a worker limit, reporting JobStarted and
// JobFinished events while it goes.
//
// # Errors
//
// Every failure wraps one of audio.ErrDecodeFailure, audio.ErrRenderFailure
// or audio.ErrEncodeFailure, so callers can branch with errors.Is. A failed
// job never leaves a partial output file behind.
//
// The lower level packages can be used on their own: audio for buffers and
// decoding, effects for the individual stages, render for the offline
// renderer and formats/wav for encoding.
package saundifix
