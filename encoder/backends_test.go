// SPDX-License-Identifier: EPL-2.0

package encoder

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	gomp3 "github.com/hajimehoshi/go-mp3"
)

func sine(rate, channels, frames int, freq float64) []int16 {
	out := make([]int16, frames*channels)
	for i := range frames {
		v := int16(12000 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
		for ch := range channels {
			out[i*channels+ch] = v
		}
	}
	return out
}

// encodeAll feeds pcm in blocks of block samples, then flushes.
func encodeAll(t *testing.T, enc Encoder, pcm []int16, block int) []byte {
	t.Helper()

	var out bytes.Buffer
	total := 0
	for start := 0; start < len(pcm); start += block {
		end := min(start+block, len(pcm))
		n, err := enc.Encode(&out, pcm[start:end])
		if err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
		total += n
	}
	n, err := enc.Flush(&out)
	if err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	total += n

	if total != out.Len() {
		t.Errorf("reported %d bytes, wrote %d", total, out.Len())
	}
	return out.Bytes()
}

func decodedSeconds(t *testing.T, mp3 []byte, wantRate int) float64 {
	t.Helper()

	dec, err := gomp3.NewDecoder(bytes.NewReader(mp3))
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if dec.SampleRate() != wantRate {
		t.Errorf("decoded sample rate = %d, want %d", dec.SampleRate(), wantRate)
	}
	pcm, err := io.ReadAll(dec)
	if err != nil {
		t.Fatalf("reading decoded output: %v", err)
	}
	// go-mp3 emits 16-bit stereo
	return float64(len(pcm)/4) / float64(wantRate)
}

func TestBackends_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		engine   Engine
		rate     int
		channels int
	}{
		{"lame mono 44.1k", EngineLAME, 44100, 1},
		{"lame stereo 48k", EngineLAME, 48000, 2},
		{"lame mono 16k", EngineLAME, 16000, 1},
		{"shine mono 44.1k", EngineShine, 44100, 1},
		{"shine stereo 32k", EngineShine, 32000, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			enc, err := New(tt.engine, Config{SampleRate: tt.rate, Channels: tt.channels})
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			defer enc.Close()

			pcm := sine(tt.rate, tt.channels, tt.rate, 440)
			mp3 := encodeAll(t, enc, pcm, 4096*tt.channels)
			if len(mp3) == 0 {
				t.Fatal("no MP3 output")
			}

			secs := decodedSeconds(t, mp3, tt.rate)
			if secs < 0.9 || secs > 1.2 {
				t.Errorf("decoded %.3fs of audio, want about 1s", secs)
			}
		})
	}
}

func TestBackends_EmptyInputStillFlushes(t *testing.T) {
	t.Parallel()

	for _, engine := range []Engine{EngineLAME, EngineShine} {
		enc, err := New(engine, Config{SampleRate: 44100, Channels: 2})
		if err != nil {
			t.Fatalf("New(%s) error = %v", engine, err)
		}

		var out bytes.Buffer
		if n, err := enc.Encode(&out, nil); err != nil || n != 0 {
			t.Errorf("%s Encode(nil) = %d, %v; want 0, nil", engine, n, err)
		}
		if _, err := enc.Flush(&out); err != nil {
			t.Errorf("%s Flush() error = %v", engine, err)
		}
		_ = enc.Close()
	}
}

func TestShine_BuffersPartialFrames(t *testing.T) {
	t.Parallel()

	enc := newShine(Config{SampleRate: 44100, Channels: 1}.withDefaults())

	var out bytes.Buffer
	n, err := enc.Encode(&out, make([]int16, shineFrameSamples-1))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if n != 0 || out.Len() != 0 {
		t.Errorf("Encode() of a partial frame wrote %d bytes", out.Len())
	}
	if len(enc.pending) != shineFrameSamples-1 {
		t.Errorf("pending = %d, want %d", len(enc.pending), shineFrameSamples-1)
	}

	_, _ = enc.Encode(&out, make([]int16, 2))
	if len(enc.pending) != 1 {
		t.Errorf("pending = %d, want 1", len(enc.pending))
	}
	if out.Len() == 0 {
		t.Error("a whole frame produced no output")
	}
	if frames, _ := enc.Frames(); frames != 1 {
		t.Errorf("Frames() = %d, want 1", frames)
	}
}

func TestShine_FramesCountsFlushedTail(t *testing.T) {
	t.Parallel()

	enc := newShine(Config{SampleRate: 44100, Channels: 2}.withDefaults())
	defer enc.Close()

	// two whole stereo frames and a short tail that Flush pads out
	encodeAll(t, enc, make([]int16, (2*shineFrameSamples+100)*2), 1000)

	frames, err := enc.Frames()
	if err != nil {
		t.Fatalf("Frames() error = %v", err)
	}
	if frames != 3 {
		t.Errorf("Frames() = %d, want 3", frames)
	}
}

func TestLAME_Frames(t *testing.T) {
	t.Parallel()

	enc, err := newLAME(Config{SampleRate: 44100, Channels: 1}.withDefaults())
	if err != nil {
		t.Fatalf("newLAME() error = %v", err)
	}
	defer enc.Close()

	encodeAll(t, enc, sine(44100, 1, 44100, 1000), 4096)

	frames, err := enc.Frames()
	if err != nil {
		t.Fatalf("Frames() error = %v", err)
	}
	// one second at 44.1 kHz is about 38 frames
	if frames < 30 {
		t.Errorf("Frames() = %d, want at least 30", frames)
	}
}

func TestEncoders_AfterClose(t *testing.T) {
	t.Parallel()

	for _, engine := range []Engine{EngineLAME, EngineShine} {
		enc, err := New(engine, Config{SampleRate: 44100, Channels: 1})
		if err != nil {
			t.Fatalf("New(%s) error = %v", engine, err)
		}
		if err := enc.Close(); err != nil {
			t.Fatalf("%s Close() error = %v", engine, err)
		}
		if err := enc.Close(); err != nil {
			t.Errorf("%s second Close() error = %v", engine, err)
		}
		if _, err := enc.Encode(io.Discard, make([]int16, 10)); !errors.Is(err, ErrClosed) {
			t.Errorf("%s Encode() after Close error = %v, want ErrClosed", engine, err)
		}
		if _, err := enc.Flush(io.Discard); !errors.Is(err, ErrClosed) {
			t.Errorf("%s Flush() after Close error = %v, want ErrClosed", engine, err)
		}
		if _, err := enc.Frames(); !errors.Is(err, ErrClosed) {
			t.Errorf("%s Frames() after Close error = %v, want ErrClosed", engine, err)
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestLAME_WriteError(t *testing.T) {
	t.Parallel()

	enc, err := New(EngineLAME, Config{SampleRate: 44100, Channels: 1})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer enc.Close()

	var werr error
	pcm := sine(44100, 1, 44100, 440)
	for start := 0; start < len(pcm) && werr == nil; start += 4096 {
		_, werr = enc.Encode(failingWriter{}, pcm[start:min(start+4096, len(pcm))])
	}
	if werr == nil {
		_, werr = enc.Flush(failingWriter{})
	}
	if werr == nil {
		t.Error("expected a write error")
	}
}
