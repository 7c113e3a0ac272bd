// SPDX-License-Identifier: EPL-2.0

package encoder

import (
	"fmt"
	"io"

	shine "github.com/braheezy/shine-mp3/pkg/mp3"
)

// MPEG-1 layer III frames hold 1152 samples per channel.
const shineFrameSamples = 1152

// shineEncoder hands whole frames to shine; its Write pads every call up to
// a frame boundary, so the remainder waits for the next call or Flush.
type shineEncoder struct {
	enc      *shine.Encoder
	channels int
	pending  []int16
	frames   int
	closed   bool
}

func newShine(cfg Config) *shineEncoder {
	return &shineEncoder{
		enc:      shine.NewEncoder(cfg.SampleRate, cfg.Channels),
		channels: cfg.Channels,
	}
}

func (e *shineEncoder) Encode(w io.Writer, pcm []int16) (int, error) {
	if e.closed {
		return 0, ErrClosed
	}
	e.pending = append(e.pending, pcm...)

	block := shineFrameSamples * e.channels
	whole := len(e.pending) - len(e.pending)%block
	if whole == 0 {
		return 0, nil
	}

	n, err := e.write(w, e.pending[:whole])
	e.pending = append(e.pending[:0], e.pending[whole:]...)
	return n, err
}

func (e *shineEncoder) Flush(w io.Writer) (int, error) {
	if e.closed {
		return 0, ErrClosed
	}
	if len(e.pending) == 0 {
		return 0, nil
	}
	n, err := e.write(w, e.pending)
	e.pending = e.pending[:0]
	return n, err
}

func (e *shineEncoder) write(w io.Writer, pcm []int16) (int, error) {
	cw := &countingWriter{w: w}
	if err := e.enc.Write(cw, pcm); err != nil {
		return cw.n, fmt.Errorf("shine encode: %w", err)
	}
	block := shineFrameSamples * e.channels
	e.frames += (len(pcm) + block - 1) / block
	return cw.n, nil
}

func (e *shineEncoder) Frames() (int, error) {
	if e.closed {
		return 0, ErrClosed
	}
	return e.frames, nil
}

func (e *shineEncoder) Close() error {
	e.closed = true
	e.pending = nil
	return nil
}

type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
