// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ik5/wavtomp3/audio"
	"github.com/ik5/wavtomp3/utils"
)

// readBufferSize backs single-frame reads, such as a resampler pulling one
// frame at a time, so they do not hit the underlying file per call.
const readBufferSize = 32 << 10

const (
	// DefaultSampleRate is assumed for headerless input.
	DefaultSampleRate = 44100
	// DefaultChannels is assumed for headerless input.
	DefaultChannels = 1
)

// Source reads little-endian signed 16-bit interleaved samples from r.
type Source struct {
	r          io.Reader
	sampleRate int
	channels   int
	buf        []byte
}

// NewSource wraps r in a read buffer unless it already is one. The caller
// keeps ownership of r.
func NewSource(r io.Reader, sampleRate, channels int) *Source {
	if _, ok := r.(*bufio.Reader); !ok {
		r = bufio.NewReaderSize(r, readBufferSize)
	}
	return &Source{
		r:          r,
		sampleRate: sampleRate,
		channels:   channels,
		buf:        make([]byte, 8192),
	}
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) Close() error    { return nil }

// ReadSamples returns whole frames only; a partial frame at the end of the
// stream is dropped.
func (s *Source) ReadSamples(dst []int16) (int, error) {
	want := len(dst) - len(dst)%max(s.channels, 1)
	if want == 0 {
		return 0, nil
	}

	need := want * 2
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	n, err := io.ReadFull(s.r, s.buf)
	samples := utils.BytesToInt16s(dst, s.buf[:n])
	samples -= samples % max(s.channels, 1)

	switch err {
	case nil:
		return samples, nil
	case io.EOF, io.ErrUnexpectedEOF:
		return samples, io.EOF
	default:
		return samples, fmt.Errorf("%w", err)
	}
}

// Decoder treats its input as headerless PCM. Zero fields fall back to
// DefaultSampleRate and DefaultChannels.
type Decoder struct {
	SampleRate int
	Channels   int
}

func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	rate := d.SampleRate
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	channels := d.Channels
	if channels <= 0 {
		channels = DefaultChannels
	}
	return NewSource(r, rate, channels), nil
}
