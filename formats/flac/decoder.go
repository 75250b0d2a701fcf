// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"errors"
	"fmt"
	"io"

	goflac "github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"

	"github.com/ik5/saundifix/audio"
)

// ErrUnsupportedFlacLayout indicates a stream header the decoder cannot use.
var ErrUnsupportedFlacLayout = errors.New("unsupported FLAC layout")

// frameParser is the part of flac.Stream the source uses.
type frameParser interface {
	ParseNext() (*frame.Frame, error)
	Close() error
}

type source struct {
	stream     frameParser
	sampleRate int
	channels   int
	scale      float32
	// frame holds the interleaved samples of the current frame; pending is
	// the part of it not yet read.
	frame   []float32
	pending []float32
	done    bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return 4096 }
func (s *source) Close() error    { return s.stream.Close() }

func (s *source) ReadSamples(dst []float32) (int, error) {
	n := 0
	for n < len(dst) {
		if len(s.pending) == 0 {
			if s.done {
				break
			}
			if err := s.nextFrame(); err != nil {
				return n, err
			}
			continue
		}

		c := copy(dst[n:], s.pending)
		s.pending = s.pending[c:]
		n += c
	}

	if n == 0 && s.done {
		return 0, io.EOF
	}
	return n, nil
}

func (s *source) nextFrame() error {
	f, err := s.stream.ParseNext()
	if errors.Is(err, io.EOF) {
		s.done = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %w", audio.ErrDecodeFailure, err)
	}
	if len(f.Subframes) != s.channels {
		return fmt.Errorf("%w: %w: frame has %d channels, stream has %d",
			audio.ErrDecodeFailure, ErrUnsupportedFlacLayout, len(f.Subframes), s.channels)
	}

	frames := int(f.BlockSize)
	if cap(s.frame) < frames*s.channels {
		s.frame = make([]float32, 0, frames*s.channels)
	}
	buf := s.frame[:0]
	for i := range frames {
		for _, sub := range f.Subframes {
			buf = append(buf, float32(sub.Samples[i])/s.scale)
		}
	}
	s.frame = buf
	s.pending = buf
	return nil
}

// Decoder reads FLAC streams of any bit depth from 4 to 32.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	stream, err := goflac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrDecodeFailure, err)
	}

	info := stream.Info
	if info.NChannels == 0 || info.SampleRate == 0 || info.BitsPerSample < 4 || info.BitsPerSample > 32 {
		stream.Close()
		return nil, fmt.Errorf("%w: %w: %d channels, %d Hz, %d bits",
			audio.ErrDecodeFailure, ErrUnsupportedFlacLayout, info.NChannels, info.SampleRate, info.BitsPerSample)
	}

	return &source{
		stream:     stream,
		sampleRate: int(info.SampleRate),
		channels:   int(info.NChannels),
		scale:      float32(int64(1)<<(info.BitsPerSample-1) - 1),
	}, nil
}
