// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/saundifix/audio"
)

// writeChunk is how many samples are converted per Write call.
const writeChunk = 8192

// WriteWAV16 writes a mono 16-bit PCM WAV at sampleRate. samples must be
// int16 PCM.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	if err := checkDataSize(uint64(len(samples)) * bytesPerSample); err != nil {
		return err
	}

	return writePCM16(w, sampleRate, 1, len(samples), func(i, _ int) int16 {
		return samples[i]
	})
}

// writePCM16 writes the canonical header and then frames interleaved frames
// of little-endian int16, taking each sample from sample(frame, channel).
// The caller checks the data size.
func writePCM16(w io.Writer, sampleRate, channels, frames int, sample func(frame, channel int) int16) error {
	header := make([]byte, HeaderSize)
	putHeader(header, channels, sampleRate, uint32(frames*channels*bytesPerSample))
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w: %w", audio.ErrEncodeFailure, err)
	}

	if frames == 0 {
		return nil
	}

	chunkFrames := max(writeChunk/channels, 1)
	out := make([]byte, min(frames, chunkFrames)*channels*bytesPerSample)

	for start := 0; start < frames; start += chunkFrames {
		end := min(start+chunkFrames, frames)
		pos := 0
		for i := start; i < end; i++ {
			for c := range channels {
				binary.LittleEndian.PutUint16(out[pos:], uint16(sample(i, c)))
				pos += bytesPerSample
			}
		}

		if _, err := w.Write(out[:pos]); err != nil {
			return fmt.Errorf("%w: %w", audio.ErrEncodeFailure, err)
		}
	}

	return nil
}
