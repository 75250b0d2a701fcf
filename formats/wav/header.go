// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"math"
)

const (
	// HeaderSize is the size of the canonical RIFF/WAVE header written by
	// this package.
	HeaderSize = 44

	formatPCM        = 1
	formatExtensible = 0xFFFE
	bitsPerSample    = 16
	bytesPerSample   = bitsPerSample / 8

	// MaxDataSize is the largest data chunk whose RIFF size still fits in
	// 32 bits.
	MaxDataSize = math.MaxUint32 - 36
)

// putHeader fills header with a canonical 16-bit PCM header for dataSize
// bytes of sample data.
func putHeader(header []byte, channels, sampleRate int, dataSize uint32) {
	byteRate := uint32(sampleRate) * uint32(channels) * bytesPerSample
	blockAlign := uint16(channels) * bytesPerSample

	// RIFF header (12 bytes)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], formatPCM)
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	// data chunk header (8 bytes)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)
}
