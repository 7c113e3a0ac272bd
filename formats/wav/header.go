// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// HeaderSize is the length of a canonical PCM WAV header. Sample data is
// always read from this offset; chunks are never walked.
const HeaderSize = 44

const (
	offAudioFormat   = 20
	offChannels      = 22
	offSampleRate    = 24
	offBitsPerSample = 34

	formatPCM = 1
)

// Header holds the fields read from fixed offsets of the first 44 bytes.
type Header struct {
	AudioFormat   int
	Channels      int
	SampleRate    int
	BitsPerSample int
	// RIFF reports whether the RIFF and WAVE magic were present.
	RIFF bool
}

// ParseHeader reads the header fields from b, which must hold at least
// HeaderSize bytes.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, ErrShortHeader
	}

	return Header{
		AudioFormat:   int(binary.LittleEndian.Uint16(b[offAudioFormat:])),
		Channels:      int(binary.LittleEndian.Uint16(b[offChannels:])),
		SampleRate:    int(binary.LittleEndian.Uint32(b[offSampleRate:])),
		BitsPerSample: int(binary.LittleEndian.Uint16(b[offBitsPerSample:])),
		RIFF:          bytes.Equal(b[0:4], []byte("RIFF")) && bytes.Equal(b[8:12], []byte("WAVE")),
	}, nil
}

// Validate rejects headers that cannot describe a playable stream.
func (h Header) Validate() error {
	if h.Channels <= 0 || h.SampleRate <= 0 {
		return fmt.Errorf("%w: %d channels at %d Hz", ErrInvalidHeader, h.Channels, h.SampleRate)
	}
	return nil
}

// PCM16 reports whether the header declares 16-bit integer PCM.
func (h Header) PCM16() bool {
	return h.AudioFormat == formatPCM && h.BitsPerSample == 16
}

// checkLayout applies the canonical layout checks used in strict mode.
func checkLayout(b []byte, h Header) error {
	if !h.RIFF {
		return ErrNotWavFile
	}
	if !bytes.Equal(b[12:16], []byte("fmt ")) {
		return ErrUnsupportedWavLayout
	}
	if !h.PCM16() {
		return ErrOnlyPCM16bitSupported
	}
	if !bytes.Equal(b[36:40], []byte("data")) {
		return ErrUnsupportedWavChunks
	}
	return nil
}

// appendHeader appends a canonical 16-bit PCM header for dataSize bytes of
// samples.
func appendHeader(dst []byte, sampleRate, channels int, dataSize uint32) []byte {
	blockAlign := uint16(channels * 2)

	dst = append(dst, "RIFF"...)
	dst = binary.LittleEndian.AppendUint32(dst, 36+dataSize)
	dst = append(dst, "WAVEfmt "...)
	dst = binary.LittleEndian.AppendUint32(dst, 16)
	dst = binary.LittleEndian.AppendUint16(dst, formatPCM)
	dst = binary.LittleEndian.AppendUint16(dst, uint16(channels))
	dst = binary.LittleEndian.AppendUint32(dst, uint32(sampleRate))
	dst = binary.LittleEndian.AppendUint32(dst, uint32(sampleRate)*uint32(blockAlign))
	dst = binary.LittleEndian.AppendUint16(dst, blockAlign)
	dst = binary.LittleEndian.AppendUint16(dst, 16)
	dst = append(dst, "data"...)
	return binary.LittleEndian.AppendUint32(dst, dataSize)
}
