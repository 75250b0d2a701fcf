// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

const (
	defaultReadSize = 4096
	// maxEmptyReads bounds how many (0, nil) reads a source may return in a
	// row before it is considered stuck.
	maxEmptyReads = 64
)

// ReadAll drains src into a Buffer. Sources with more than two channels are
// folded to mono through a MonoMixer first. Any read error other than
// io.EOF is returned as a decode failure and no buffer is produced.
func ReadAll(src Source) (*Buffer, error) {
	if src.Channels() <= 0 || src.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: %w: %d channels at %d Hz",
			ErrDecodeFailure, ErrMalformedBuffer, src.Channels(), src.SampleRate())
	}

	if src.Channels() > 2 {
		src = NewMonoMixer(src)
	}

	channels := src.Channels()
	size := src.BufSize()
	if size <= 0 {
		size = defaultReadSize
	}
	size -= size % channels
	if size == 0 {
		size = channels
	}

	buf := make([]float32, size)
	samples := make([]float32, 0, size*4)
	empty := 0

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			samples = append(samples, buf[:n]...)
			empty = 0
		} else if err == nil {
			empty++
			if empty > maxEmptyReads {
				return nil, fmt.Errorf("%w: %w", ErrDecodeFailure, ErrStalledSource)
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecodeFailure, err)
		}
	}

	return FromInterleaved(samples, channels, src.SampleRate()), nil
}
