// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/ik5/wavtomp3/internal/audiotest"
)

// createWAVFile builds a canonical 44-byte header followed by samples.
func createWAVFile(sampleRate, channels, bitsPerSample int, samples []int16) []byte {
	buf := new(bytes.Buffer)
	if err := WriteWAV16(buf, sampleRate, channels, samples); err != nil {
		panic(err)
	}
	b := buf.Bytes()
	binary.LittleEndian.PutUint16(b[offBitsPerSample:], uint16(bitsPerSample))
	return b
}

func TestDecoder_ValidWAVFile(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 100, 200, -100, -200, 0}
	src, err := Decoder{}.Decode(bytes.NewReader(createWAVFile(8000, 1, 16, samples)))
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}

	if src.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", src.SampleRate())
	}
	if src.Channels() != 1 {
		t.Errorf("Channels() = %d, want 1", src.Channels())
	}

	got, err := audiotest.Drain(src, 4)
	if err != nil {
		t.Fatalf("Drain() error = %v", err)
	}
	if len(got) != len(samples) {
		t.Fatalf("got %d samples, want %d", len(got), len(samples))
	}
	for i := range samples {
		if got[i] != samples[i] {
			t.Errorf("sample %d = %d, want %d", i, got[i], samples[i])
		}
	}
}

func TestDecoder_StereoWAVFile(t *testing.T) {
	t.Parallel()

	src, err := Decoder{}.Open(bytes.NewReader(createWAVFile(44100, 2, 16, []int16{1, 2, 3, 4})))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	h := src.Header()
	if h.SampleRate != 44100 || h.Channels != 2 || h.BitsPerSample != 16 || !h.RIFF {
		t.Errorf("Header() = %+v", h)
	}
}

func TestDecoder_Lenient(t *testing.T) {
	t.Parallel()

	wavData := createWAVFile(16000, 1, 16, []int16{7, 8})
	copy(wavData[0:4], "JUNK")
	copy(wavData[36:40], "LIST")

	src, err := Decoder{}.Open(bytes.NewReader(wavData))
	if err != nil {
		t.Fatalf("Open() error = %v, want nil", err)
	}
	if src.Header().RIFF {
		t.Error("Header().RIFF = true, want false")
	}

	got, _ := audiotest.Drain(src, 8)
	if len(got) != 2 || got[0] != 7 || got[1] != 8 {
		t.Errorf("samples = %v, want [7 8]", got)
	}
}

func TestDecoder_Strict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(b []byte)
		wantErr error
	}{
		{"valid", func([]byte) {}, nil},
		{"no RIFF", func(b []byte) { copy(b[0:4], "RIFX") }, ErrNotWavFile},
		{"no WAVE", func(b []byte) { copy(b[8:12], "NOPE") }, ErrNotWavFile},
		{"no fmt", func(b []byte) { copy(b[12:16], "junk") }, ErrUnsupportedWavLayout},
		{"24-bit", func(b []byte) { binary.LittleEndian.PutUint16(b[34:], 24) }, ErrOnlyPCM16bitSupported},
		{"float", func(b []byte) { binary.LittleEndian.PutUint16(b[20:], 3) }, ErrOnlyPCM16bitSupported},
		{"LIST before data", func(b []byte) { copy(b[36:40], "LIST") }, ErrUnsupportedWavChunks},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := createWAVFile(8000, 1, 16, []int16{1, 2})
			tt.mutate(b)

			_, err := Decoder{Strict: true}.Decode(bytes.NewReader(b))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecoder_TruncatedHeader(t *testing.T) {
	t.Parallel()

	truncated := []byte("RIFF\x00")

	if _, err := (Decoder{}).Decode(bytes.NewReader(truncated)); !errors.Is(err, ErrShortHeader) {
		t.Errorf("Decode() error = %v, want ErrShortHeader", err)
	}
	if _, err := (Decoder{Strict: true}).Decode(bytes.NewReader(truncated)); !errors.Is(err, ErrNotWavFile) {
		t.Errorf("strict Decode() error = %v, want ErrNotWavFile", err)
	}
}

func TestDecoder_ZeroChannelsOrRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rate, ch int
	}{
		{"zero channels", 8000, 0},
		{"zero rate", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(createWAVFile(tt.rate, tt.ch, 16, nil)))
			if !errors.Is(err, ErrInvalidHeader) {
				t.Errorf("Decode() error = %v, want ErrInvalidHeader", err)
			}
		})
	}
}

func TestDecoder_OddTrailingByte(t *testing.T) {
	t.Parallel()

	b := append(createWAVFile(8000, 1, 16, []int16{5, 6, 7}), 0x01)

	src, err := Decoder{}.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	got, err := audiotest.Drain(src, 16)
	if err != nil {
		t.Fatalf("Drain() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("got %d samples, want 3", len(got))
	}
}

func TestDecoder_EmptyPayload(t *testing.T) {
	t.Parallel()

	src, err := Decoder{}.Decode(bytes.NewReader(createWAVFile(8000, 2, 16, nil)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	n, err := src.ReadSamples(make([]int16, 64))
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() = %d, %v; want 0, io.EOF", n, err)
	}
}

func TestDecoder_VariousSampleRates(t *testing.T) {
	t.Parallel()

	for _, rate := range []int{8000, 11025, 16000, 22050, 32000, 44100, 48000, 96000} {
		src, err := Decoder{Strict: true}.Decode(bytes.NewReader(createWAVFile(rate, 1, 16, []int16{0})))
		if err != nil {
			t.Fatalf("Decode(%d Hz) error = %v", rate, err)
		}
		if src.SampleRate() != rate {
			t.Errorf("SampleRate() = %d, want %d", src.SampleRate(), rate)
		}
	}
}

func TestParseHeader(t *testing.T) {
	t.Parallel()

	h, err := ParseHeader(createWAVFile(22050, 2, 16, []int16{1, 2, 3, 4}))
	if err != nil {
		t.Fatalf("ParseHeader() error = %v", err)
	}
	want := Header{AudioFormat: 1, Channels: 2, SampleRate: 22050, BitsPerSample: 16, RIFF: true}
	if h != want {
		t.Errorf("ParseHeader() = %+v, want %+v", h, want)
	}
	if !h.PCM16() {
		t.Error("PCM16() = false, want true")
	}

	if _, err := ParseHeader(make([]byte, 43)); !errors.Is(err, ErrShortHeader) {
		t.Errorf("ParseHeader(43 bytes) error = %v, want ErrShortHeader", err)
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	data := createWAVFile(44100, 2, 16, make([]int16, 44100*2))
	buf := make([]int16, 8192)

	b.ResetTimer()
	for b.Loop() {
		src, _ := Decoder{}.Decode(bytes.NewReader(data))
		for {
			if _, err := src.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
