// SPDX-License-Identifier: EPL-2.0

package aac

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

const (
	adtsHeaderSize    = 7
	adtsHeaderSizeCRC = 9
	// largest value of the 13-bit frame length field
	maxFrameLength = 1<<13 - 1
)

var sampleRates = [...]int{
	96000, 88200, 64000, 48000, 44100, 32000, 24000, 22050,
	16000, 12000, 11025, 8000, 7350,
}

// FrameHeader is the fixed and variable part of an ADTS header.
type FrameHeader struct {
	Profile         int // audio object type minus one
	SampleRateIndex int
	SampleRate      int
	Channels        int // channel configuration
	HeaderSize      int
	FrameLength     int // header included
}

// AudioSpecificConfig returns the two-byte MPEG-4 decoder config the header
// describes: object type, sample rate index and channel configuration.
func (h FrameHeader) AudioSpecificConfig() []byte {
	ot := h.Profile + 1
	return []byte{
		byte(ot<<3 | h.SampleRateIndex>>1),
		byte((h.SampleRateIndex&1)<<7 | h.Channels<<3),
	}
}

// Payload returns the raw data block of frame, which starts with header h.
func (h FrameHeader) Payload(frame []byte) []byte {
	return frame[h.HeaderSize:h.FrameLength]
}

// IsADTS reports whether b starts with an ADTS sync word (0xFFF1 or 0xFFF9
// for MPEG-4 and MPEG-2 with layer 0).
func IsADTS(b []byte) bool {
	return len(b) >= 2 && b[0] == 0xFF && b[1]&0xF6 == 0xF0
}

// IsMP4 reports whether b looks like an ISO base media file.
func IsMP4(b []byte) bool {
	return len(b) >= 8 && bytes.Equal(b[4:8], []byte("ftyp"))
}

// ParseFrameHeader decodes the ADTS header at the start of b.
func ParseFrameHeader(b []byte) (FrameHeader, error) {
	if len(b) < adtsHeaderSize || b[0] != 0xFF || b[1]&0xF0 != 0xF0 {
		return FrameHeader{}, ErrInvalidADTS
	}

	frameLen := int(b[3]&0x03)<<11 | int(b[4])<<3 | int(b[5]>>5)

	h := FrameHeader{
		Profile:     int(b[2] >> 6),
		Channels:    int((b[2]&0x01)<<2 | (b[3]>>6)&0x03),
		HeaderSize:  adtsHeaderSize,
		FrameLength: frameLen,
	}
	// protection_absent == 0 means a CRC follows
	if b[1]&0x01 == 0 {
		h.HeaderSize = adtsHeaderSizeCRC
	}

	idx := int((b[2] >> 2) & 0x0F)
	if idx >= len(sampleRates) {
		return FrameHeader{}, fmt.Errorf("%w: sample rate index %d", ErrInvalidADTS, idx)
	}
	h.SampleRateIndex = idx
	h.SampleRate = sampleRates[idx]

	if h.FrameLength < h.HeaderSize {
		return FrameHeader{}, fmt.Errorf("%w: frame length %d", ErrInvalidADTS, h.FrameLength)
	}
	return h, nil
}

// FrameReader splits an ADTS stream into whole frames. Garbage between
// frames is skipped byte by byte until the next sync word.
type FrameReader struct {
	r       *bufio.Reader
	frame   []byte
	skipped int64
}

func NewFrameReader(r io.Reader) *FrameReader {
	br, ok := r.(*bufio.Reader)
	if !ok || br.Size() < maxFrameLength {
		br = bufio.NewReaderSize(r, maxFrameLength+1)
	}
	return &FrameReader{
		r:     br,
		frame: make([]byte, 0, maxFrameLength),
	}
}

// Skipped returns how many bytes were discarded while resyncing.
func (fr *FrameReader) Skipped() int64 { return fr.skipped }

// Next returns the next frame, header included. The slice is reused by the
// following call. io.EOF is returned once no complete frame remains; a
// frame cut short by the end of the stream yields ErrTruncatedFrame.
func (fr *FrameReader) Next() ([]byte, FrameHeader, error) {
	for {
		hdr, err := fr.r.Peek(adtsHeaderSize)
		if len(hdr) < adtsHeaderSize {
			if err == io.EOF || err == nil {
				if len(hdr) > 0 {
					fr.skipped += int64(len(hdr))
				}
				return nil, FrameHeader{}, io.EOF
			}
			return nil, FrameHeader{}, fmt.Errorf("%w", err)
		}

		h, err := ParseFrameHeader(hdr)
		if err != nil {
			_, _ = fr.r.Discard(1)
			fr.skipped++
			continue
		}

		fr.frame = fr.frame[:h.FrameLength]
		n, err := io.ReadFull(fr.r, fr.frame)
		if err == io.ErrUnexpectedEOF {
			return nil, FrameHeader{}, fmt.Errorf("%w: got %d of %d bytes", ErrTruncatedFrame, n, h.FrameLength)
		}
		if err != nil {
			return nil, FrameHeader{}, fmt.Errorf("%w", err)
		}
		return fr.frame, h, nil
	}
}

// ScanFrames splits an in-memory ADTS stream. A truncated last frame is
// dropped.
func ScanFrames(data []byte) ([][]byte, error) {
	var frames [][]byte
	fr := NewFrameReader(bytes.NewReader(data))
	for {
		frame, _, err := fr.Next()
		switch {
		case err == io.EOF, errors.Is(err, ErrTruncatedFrame):
			return frames, nil
		case err != nil:
			return frames, err
		}
		frames = append(frames, bytes.Clone(frame))
	}
}
