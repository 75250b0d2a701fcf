// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"

	"github.com/ik5/saundifix/audio"
	"github.com/ik5/saundifix/formats/internal/intpcm"
)

// Decoder reads integer PCM WAV files of 8, 16, 24 or 32 bits.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := intpcm.ReadSeeker(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading wav data: %w", audio.ErrDecodeFailure, err)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: %w", audio.ErrDecodeFailure, ErrNotWavFile)
	}

	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w: %w", audio.ErrDecodeFailure, ErrUnsupportedWavLayout, err)
	}

	if dec.WavAudioFormat != formatPCM && dec.WavAudioFormat != formatExtensible {
		return nil, fmt.Errorf("%w: %w: format tag %d",
			audio.ErrDecodeFailure, ErrUnsupportedWavEncoding, dec.WavAudioFormat)
	}

	format := dec.Format()
	if format == nil || format.NumChannels <= 0 || format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %w", audio.ErrDecodeFailure, ErrUnsupportedWavLayout)
	}

	src, err := intpcm.NewSource(dec, format, intpcm.Options{
		BitDepth:  int(dec.BitDepth),
		Unsigned8: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrDecodeFailure, err)
	}
	return src, nil
}
