// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	goaiff "github.com/go-audio/aiff"

	"github.com/ik5/saundifix/audio"
	"github.com/ik5/saundifix/formats/internal/intpcm"
)

// Decoder reads uncompressed AIFF files of 8, 16, 24 or 32 bits.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := intpcm.ReadSeeker(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading aiff data: %w", audio.ErrDecodeFailure, err)
	}

	dec := goaiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: %w", audio.ErrDecodeFailure, ErrNotAiffFile)
	}

	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w: %w", audio.ErrDecodeFailure, ErrUnsupportedAiffLayout, err)
	}

	format := dec.Format()
	if format == nil || format.NumChannels <= 0 || format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %w", audio.ErrDecodeFailure, ErrUnsupportedAiffLayout)
	}

	// AIFF stores 8-bit samples signed, unlike WAV.
	src, err := intpcm.NewSource(dec, format, intpcm.Options{BitDepth: int(dec.BitDepth)})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrDecodeFailure, err)
	}
	return src, nil
}
