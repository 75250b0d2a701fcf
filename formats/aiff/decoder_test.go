// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math/bits"
	"testing"

	"github.com/ik5/saundifix/audio"
)

// extended80 encodes a positive integer sample rate as an IEEE 754 80-bit
// extended float, the way the COMM chunk stores it.
func extended80(rate int) [10]byte {
	var out [10]byte
	e := bits.Len64(uint64(rate)) - 1
	binary.BigEndian.PutUint16(out[0:], uint16(16383+e))
	binary.BigEndian.PutUint64(out[2:], uint64(rate)<<(63-e))
	return out
}

// createAIFFFile builds a minimal FORM/AIFF file with COMM and SSND chunks.
func createAIFFFile(sampleRate, channels, bitsPerSample int, payload []byte) []byte {
	bytesPerSample := (bitsPerSample + 7) / 8
	frames := len(payload) / (channels * bytesPerSample)

	buf := new(bytes.Buffer)
	formSize := uint32(4 + 8 + 18 + 8 + 8 + len(payload))

	buf.WriteString("FORM")
	binary.Write(buf, binary.BigEndian, formSize)
	buf.WriteString("AIFF")

	buf.WriteString("COMM")
	binary.Write(buf, binary.BigEndian, uint32(18))
	binary.Write(buf, binary.BigEndian, uint16(channels))
	binary.Write(buf, binary.BigEndian, uint32(frames))
	binary.Write(buf, binary.BigEndian, uint16(bitsPerSample))
	rate := extended80(sampleRate)
	buf.Write(rate[:])

	buf.WriteString("SSND")
	binary.Write(buf, binary.BigEndian, uint32(8+len(payload)))
	binary.Write(buf, binary.BigEndian, uint32(0)) // offset
	binary.Write(buf, binary.BigEndian, uint32(0)) // block size
	buf.Write(payload)

	return buf.Bytes()
}

func pcm16BE(samples ...int16) []byte {
	out := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.BigEndian.PutUint16(out[2*i:], uint16(s))
	}
	return out
}

func decodeAll(t *testing.T, data []byte) *audio.Buffer {
	t.Helper()

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	buf, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	return buf
}

func TestExtended80(t *testing.T) {
	t.Parallel()

	// 44100 Hz is the canonical example in the AIFF documentation.
	want := [10]byte{0x40, 0x0e, 0xac, 0x44, 0, 0, 0, 0, 0, 0}
	if got := extended80(44100); got != want {
		t.Errorf("extended80(44100) = % x, want % x", got, want)
	}
}

func TestDecoder_PCM16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rate     int
		channels int
	}{
		{"mono 8k", 8000, 1},
		{"stereo 44k", 44100, 2},
		{"stereo 48k", 48000, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			samples := []int16{0, 16384, -16384, 32767, -32767, 100}
			buf := decodeAll(t, createAIFFFile(tt.rate, tt.channels, 16, pcm16BE(samples...)))

			if buf.SampleRate != tt.rate {
				t.Errorf("SampleRate = %d, want %d", buf.SampleRate, tt.rate)
			}
			if buf.NumChannels() != tt.channels {
				t.Fatalf("channels = %d, want %d", buf.NumChannels(), tt.channels)
			}
			if want := len(samples) / tt.channels; buf.Frames() != want {
				t.Fatalf("Frames() = %d, want %d", buf.Frames(), want)
			}

			for i, s := range samples {
				ch, frame := i%tt.channels, i/tt.channels
				want := float32(float64(s) / 32767)
				if got := buf.Channels[ch][frame]; got != want {
					t.Errorf("sample %d = %v, want %v", i, got, want)
				}
			}
		})
	}
}

func TestDecoder_PCM8IsSigned(t *testing.T) {
	t.Parallel()

	payload := []byte{0x00, 0x7f, 0x81}
	buf := decodeAll(t, createAIFFFile(8000, 1, 8, payload))

	want := []float32{0, 1, -1}
	for i, w := range want {
		if got := buf.Channels[0][i]; got != w {
			t.Errorf("sample %d = %v, want %v", i, got, w)
		}
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"text", []byte("This is not AIFF data")},
		{"riff", []byte("RIFF\x24\x00\x00\x00WAVEfmt ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, audio.ErrDecodeFailure) {
				t.Errorf("Decode() error = %v, want ErrDecodeFailure", err)
			}
		})
	}
}

func TestDecoder_UnsupportedBitDepth(t *testing.T) {
	t.Parallel()

	// 12-bit samples occupy two bytes each.
	data := createAIFFFile(8000, 1, 12, pcm16BE(16, 32))
	_, err := Decoder{}.Decode(bytes.NewReader(data))
	if !errors.Is(err, audio.ErrDecodeFailure) {
		t.Errorf("Decode() error = %v, want ErrDecodeFailure", err)
	}
}

func TestDecoder_NonSeekableReader(t *testing.T) {
	t.Parallel()

	data := createAIFFFile(22050, 2, 16, pcm16BE(1000, -1000, 2000, -2000))
	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	buf, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if buf.Frames() != 2 || buf.SampleRate != 22050 {
		t.Errorf("got %d frames at %d Hz, want 2 at 22050", buf.Frames(), buf.SampleRate)
	}
}

func BenchmarkDecoder(b *testing.B) {
	samples := make([]int16, 2*44100)
	for i := range samples {
		samples[i] = int16(i)
	}
	data := createAIFFFile(44100, 2, 16, pcm16BE(samples...))
	dst := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		src, err := Decoder{}.Decode(bytes.NewReader(data))
		if err != nil {
			b.Fatal(err)
		}
		for {
			if _, err := src.ReadSamples(dst); err != nil {
				break
			}
		}
	}
}
