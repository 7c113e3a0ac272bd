// SPDX-License-Identifier: EPL-2.0

package aac

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

// adtsFrame builds an LC frame with a 7-byte header and no CRC.
func adtsFrame(srIdx, chCfg int, payload []byte) []byte {
	l := adtsHeaderSize + len(payload)
	b := []byte{
		0xFF, 0xF1,
		byte(1<<6 | srIdx<<2 | chCfg>>2),
		byte((chCfg&3)<<6 | (l>>11)&3),
		byte(l >> 3),
		byte((l&7)<<5 | 0x1F),
		0xFC,
	}
	return append(b, payload...)
}

func TestParseFrameHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		want    FrameHeader
		wantErr bool
	}{
		{
			name: "44.1k stereo",
			data: adtsFrame(4, 2, make([]byte, 10)),
			want: FrameHeader{Profile: 1, SampleRateIndex: 4, SampleRate: 44100, Channels: 2, HeaderSize: 7, FrameLength: 17},
		},
		{
			name: "8k mono",
			data: adtsFrame(11, 1, make([]byte, 300)),
			want: FrameHeader{Profile: 1, SampleRateIndex: 11, SampleRate: 8000, Channels: 1, HeaderSize: 7, FrameLength: 307},
		},
		{
			name: "6 channels",
			data: adtsFrame(3, 6, nil),
			want: FrameHeader{Profile: 1, SampleRateIndex: 3, SampleRate: 48000, Channels: 6, HeaderSize: 7, FrameLength: 7},
		},
		{name: "no sync", data: []byte{0x00, 0xF1, 0x50, 0x80, 0x00, 0xFF, 0xFC}, wantErr: true},
		{name: "short", data: []byte{0xFF, 0xF1}, wantErr: true},
		{name: "bad rate index", data: adtsFrame(13, 2, nil), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseFrameHeader(tt.data)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidADTS) {
					t.Errorf("ParseFrameHeader() error = %v, want ErrInvalidADTS", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFrameHeader() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseFrameHeader() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseFrameHeader_CRC(t *testing.T) {
	t.Parallel()

	b := adtsFrame(4, 2, make([]byte, 20))
	b[1] = 0xF0 // protection_absent = 0

	h, err := ParseFrameHeader(b)
	if err != nil {
		t.Fatalf("ParseFrameHeader() error = %v", err)
	}
	if h.HeaderSize != 9 {
		t.Errorf("HeaderSize = %d, want 9", h.HeaderSize)
	}
}

func TestFrameHeader_AudioSpecificConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want []byte
	}{
		{"LC 44.1k mono", adtsFrame(4, 1, nil), []byte{0x12, 0x08}},
		{"LC 44.1k stereo", adtsFrame(4, 2, nil), []byte{0x12, 0x10}},
		{"LC 48k stereo", adtsFrame(3, 2, nil), []byte{0x11, 0x90}},
		{"LC 8k mono", adtsFrame(11, 1, nil), []byte{0x15, 0x88}},
	}

	for _, tt := range tests {
		h, err := ParseFrameHeader(tt.data)
		if err != nil {
			t.Fatalf("%s: ParseFrameHeader() error = %v", tt.name, err)
		}
		if got := h.AudioSpecificConfig(); !bytes.Equal(got, tt.want) {
			t.Errorf("%s: AudioSpecificConfig() = % x, want % x", tt.name, got, tt.want)
		}
	}
}

func TestIsADTS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		data []byte
		want bool
	}{
		{[]byte{0xFF, 0xF1}, true},
		{[]byte{0xFF, 0xF9}, true},
		{[]byte{0xFF, 0xFB}, false}, // MPEG-1 layer III
		{[]byte("RIFF"), false},
		{[]byte{0xFF}, false},
		{nil, false},
	}

	for _, tt := range tests {
		if got := IsADTS(tt.data); got != tt.want {
			t.Errorf("IsADTS(% x) = %v, want %v", tt.data, got, tt.want)
		}
	}
}

func TestIsMP4(t *testing.T) {
	t.Parallel()

	if !IsMP4([]byte("\x00\x00\x00\x20ftypM4A ")) {
		t.Error("IsMP4(ftyp box) = false, want true")
	}
	if IsMP4([]byte("\x00\x00\x00\x20moov")) {
		t.Error("IsMP4(moov) = true, want false")
	}
}

func TestFrameReader_ResyncsAndCounts(t *testing.T) {
	t.Parallel()

	var stream bytes.Buffer
	stream.Write([]byte("junk"))
	stream.Write(adtsFrame(4, 2, []byte{1, 2, 3}))
	stream.Write([]byte{0x00, 0x11})
	stream.Write(adtsFrame(4, 2, []byte{4, 5}))

	fr := NewFrameReader(&stream)

	var payloads [][]byte
	for {
		frame, h, err := fr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		payloads = append(payloads, bytes.Clone(frame[h.HeaderSize:]))
	}

	if len(payloads) != 2 {
		t.Fatalf("got %d frames, want 2", len(payloads))
	}
	if !bytes.Equal(payloads[0], []byte{1, 2, 3}) || !bytes.Equal(payloads[1], []byte{4, 5}) {
		t.Errorf("payloads = %v", payloads)
	}
	if fr.Skipped() != 6 {
		t.Errorf("Skipped() = %d, want 6", fr.Skipped())
	}
}

func TestFrameReader_Truncated(t *testing.T) {
	t.Parallel()

	frame := adtsFrame(4, 2, make([]byte, 50))
	fr := NewFrameReader(bytes.NewReader(frame[:30]))

	if _, _, err := fr.Next(); !errors.Is(err, ErrTruncatedFrame) {
		t.Errorf("Next() error = %v, want ErrTruncatedFrame", err)
	}
}

func TestScanFrames(t *testing.T) {
	t.Parallel()

	data := append(adtsFrame(4, 1, []byte{9}), adtsFrame(4, 1, []byte{8, 7})...)
	// cut-off tail
	data = append(data, adtsFrame(4, 1, make([]byte, 40))[:12]...)

	frames, err := ScanFrames(data)
	if err != nil {
		t.Fatalf("ScanFrames() error = %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}
	if len(frames[0]) != 8 || len(frames[1]) != 9 {
		t.Errorf("frame lengths = %d, %d; want 8, 9", len(frames[0]), len(frames[1]))
	}
}
