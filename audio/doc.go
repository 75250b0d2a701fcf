// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample containers and input primitives shared by
// the rest of the pipeline.
//
// This package contains:
//   - Buffer, a fully decoded block of per-channel float32 samples
//   - Source interface for streaming decoder output
//   - ReadAll to collect a Source into a Buffer
//   - Resample for sample rate conversion
//   - MonoMixer for channel folding
//   - Format registry for decoder lookup by extension
//   - Sentinel errors for the four failure kinds of the pipeline
//
// # Buffer
//
// A Buffer holds one slice per channel, all of equal length:
//
//	buf := audio.NewBuffer(2, 44100, 44100) // one second of stereo silence
//	fmt.Println(buf.Frames(), buf.Duration())
//
// Validate reports buffers the pipeline cannot render: no channels, zero
// frames, ragged channels, a non-positive rate or more than two channels.
//
// # Source Interface
//
// Decoders stream interleaved samples through Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// ReadAll drains a Source into a Buffer. Sources with more than two channels
// are folded to mono with MonoMixer on the way in.
//
// # Resampling
//
// Resample converts a Buffer with Catmull-Rom cubic interpolation:
//
//	out := audio.Resample(buf, 44100)
//
// The output holds ceil(frames * dstRate / srcRate) frames. Resample does not
// band-limit, so a downsampling caller should low-pass first.
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, err := registry.DecoderFor("song.wav")
//
// Extensions are matched case-insensitively with or without the leading dot.
//
// # Sample Format
//
// Samples are float32 with full scale at [-1.0, 1.0]. Intermediate stages may
// exceed full scale; the WAV encoder clamps on output.
//
// # Error Handling
//
// Failures are classified with ErrDecodeFailure, ErrInvalidParameter,
// ErrRenderFailure and ErrEncodeFailure, joined with a more specific cause:
//
//	if errors.Is(err, audio.ErrDecodeFailure) {
//	    // the input file could not be read
//	}
package audio
