// SPDX-License-Identifier: EPL-2.0

// Package intpcm adapts the integer PCM decoders of github.com/go-audio to
// audio.Source.
package intpcm

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

// DefaultBufSize is the sample buffer size reported by BufSize until the
// first read.
const DefaultBufSize = 4096

// ErrUnsupportedBitDepth is returned for depths other than 8, 16, 24 or 32.
var ErrUnsupportedBitDepth = errors.New("unsupported bit depth")

// Reader is the part of the go-audio wav and aiff decoders the adapter uses.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source wraps a go-audio decoder as an audio.Source.
type Source struct {
	dec    Reader
	format *goaudio.Format
	scale  float32
	bias   int
	intBuf *goaudio.IntBuffer
	closer io.Closer
}

// Options describe how raw integers map to float samples.
type Options struct {
	BitDepth int
	// Unsigned8 marks 8-bit data stored as unsigned bytes centred on 128,
	// as in WAV files.
	Unsigned8 bool
	// Closer is closed by Source.Close when set.
	Closer io.Closer
}

// FullScale returns the largest positive integer of a bitDepth sample. It is
// used as the divisor so 16-bit data decodes as v/32767 and the encoder's
// round(x*32767) inverts it exactly.
func FullScale(bitDepth int) (float32, error) {
	switch bitDepth {
	case 8, 16, 24, 32:
		return float32(int64(1)<<(bitDepth-1) - 1), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
}

// NewSource returns a Source reading from dec.
func NewSource(dec Reader, format *goaudio.Format, opts Options) (*Source, error) {
	scale, err := FullScale(opts.BitDepth)
	if err != nil {
		return nil, err
	}

	s := &Source{
		dec:    dec,
		format: format,
		scale:  scale,
		closer: opts.Closer,
	}
	if opts.BitDepth == 8 && opts.Unsigned8 {
		s.bias = 128
	}
	return s, nil
}

func (s *Source) SampleRate() int { return s.format.SampleRate }
func (s *Source) Channels() int   { return s.format.NumChannels }

func (s *Source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return DefaultBufSize
}

func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, len(dst)),
			Format: s.format,
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, err
		}
		return 0, io.EOF
	}

	for i, v := range s.intBuf.Data[:n] {
		dst[i] = float32(v-s.bias) / s.scale
	}

	// a short read is not the end; the next call reports io.EOF
	return n, err
}

// ReadSeeker returns r itself when it can seek, otherwise reads it fully into
// memory. The go-audio decoders need to seek between chunks.
func ReadSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}
