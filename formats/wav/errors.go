// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile             = errors.New("not a WAV file")
	ErrUnsupportedWavLayout   = errors.New("unsupported WAV layout")
	ErrUnsupportedWavEncoding = errors.New("only integer PCM WAV is supported")

	// ErrTooLarge is returned when the sample data does not fit the 32-bit
	// RIFF size fields.
	ErrTooLarge = errors.New("audio data too large for a WAV file")
)
