// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ik5/saundifix/audio"
	"github.com/ik5/saundifix/utils"
)

// DataSize returns the size in bytes of the data chunk for buf.
func DataSize(buf *audio.Buffer) uint64 {
	return uint64(buf.Frames()) * uint64(buf.NumChannels()) * bytesPerSample
}

func checkEncodable(buf *audio.Buffer) error {
	if buf == nil || len(buf.Channels) == 0 || buf.SampleRate <= 0 {
		return fmt.Errorf("%w: %w", audio.ErrEncodeFailure, audio.ErrMalformedBuffer)
	}
	frames := buf.Frames()
	for _, ch := range buf.Channels {
		if len(ch) != frames {
			return fmt.Errorf("%w: %w: ragged channels", audio.ErrEncodeFailure, audio.ErrMalformedBuffer)
		}
	}
	return checkDataSize(DataSize(buf))
}

func checkDataSize(size uint64) error {
	if size > MaxDataSize {
		return fmt.Errorf("%w: %w: %d bytes", audio.ErrEncodeFailure, ErrTooLarge, size)
	}
	return nil
}

// Encode writes buf to w as a canonical 16-bit PCM WAV stream: a 44-byte
// header followed by interleaved little-endian samples. Samples are clamped
// to [-1, 1] and quantised with round(x*32767).
//
// Nothing is written when buf cannot be encoded.
func Encode(w io.Writer, buf *audio.Buffer) error {
	if err := checkEncodable(buf); err != nil {
		return err
	}

	return writePCM16(w, buf.SampleRate, buf.NumChannels(), buf.Frames(), func(i, c int) int16 {
		return utils.Float32ToInt16(buf.Channels[c][i])
	})
}

// EncodeBytes returns the WAV encoding of buf.
func EncodeBytes(buf *audio.Buffer) ([]byte, error) {
	if err := checkEncodable(buf); err != nil {
		return nil, err
	}

	var b bytes.Buffer
	b.Grow(HeaderSize + int(DataSize(buf)))
	if err := Encode(&b, buf); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// WriteFile encodes buf into the file at path. A partially written file is
// removed on failure.
func WriteFile(path string, buf *audio.Buffer) (err error) {
	if err := checkEncodable(buf); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", audio.ErrEncodeFailure, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", audio.ErrEncodeFailure, cerr)
		}
		if err != nil {
			err = errors.Join(err, removeIfExists(path))
		}
	}()

	bw := bufio.NewWriterSize(f, 64*1024)
	if err := Encode(bw, buf); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %w", audio.ErrEncodeFailure, err)
	}
	return nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
