// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

// Writer streams 16-bit PCM into a WAV file. The RIFF and data sizes are
// patched on Close, so the destination must be seekable.
type Writer struct {
	enc    *gowav.Encoder
	buf    *goaudio.IntBuffer
	frames int
	wrote  bool
}

func NewWriter(w io.WriteSeeker, sampleRate, channels int) *Writer {
	return &Writer{
		enc: gowav.NewEncoder(w, sampleRate, 16, channels, formatPCM),
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: 16,
		},
	}
}

// WriteSamples appends interleaved samples.
func (w *Writer) WriteSamples(samples []int16) error {
	if cap(w.buf.Data) < len(samples) {
		w.buf.Data = make([]int, len(samples))
	}
	w.buf.Data = w.buf.Data[:len(samples)]
	for i, s := range samples {
		w.buf.Data[i] = int(s)
	}

	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("%w", err)
	}
	w.wrote = true
	w.frames += len(samples) / max(w.buf.Format.NumChannels, 1)
	return nil
}

// Frames returns the number of whole frames written so far.
func (w *Writer) Frames() int { return w.frames }

// Close finalises the header. It does not close the underlying writer.
func (w *Writer) Close() error {
	if !w.wrote {
		// the encoder only emits its header on the first write
		if err := w.WriteSamples(nil); err != nil {
			return err
		}
	}
	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// WriteWAV16 writes a complete 16-bit PCM WAV to a non-seekable writer.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	out := appendHeader(make([]byte, 0, HeaderSize+len(samples)*2), sampleRate, channels, uint32(len(samples)*2))
	for _, s := range samples {
		out = append(out, byte(s), byte(uint16(s)>>8))
	}

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
