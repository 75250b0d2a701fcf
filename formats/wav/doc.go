// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// Decoding goes through github.com/go-audio/wav and accepts integer PCM at
// 8, 16, 24 or 32 bits, any channel count and any sample rate. Encoding
// always produces the canonical 44-byte header followed by interleaved
// 16-bit little-endian PCM.
//
// # Decoding WAV Files
//
//	file, _ := os.Open("audio.wav")
//	src, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    // err wraps audio.ErrDecodeFailure
//	}
//	buf, err := audio.ReadAll(src)
//
// Samples are scaled by the largest positive integer of the bit depth, so
// 16-bit data decodes as v/32767.
//
// # Writing WAV Files
//
// Encode and EncodeBytes serialise an audio.Buffer:
//
//	err := wav.Encode(w, buf)
//
// Samples are clamped to [-1, 1] and quantised with round(x*32767), the
// exact inverse of the decoder's scaling, so encode, decode and encode again
// yields identical bytes. WriteFile writes to a path and removes the file if
// encoding fails half-way. WriteWAV16 writes already quantised mono samples.
//
// # Error Handling
//
// Decode errors wrap audio.ErrDecodeFailure together with ErrNotWavFile,
// ErrUnsupportedWavLayout or ErrUnsupportedWavEncoding. Encode errors wrap
// audio.ErrEncodeFailure; data over 4 GiB reports ErrTooLarge and nothing is
// written.
package wav
