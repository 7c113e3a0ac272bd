// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/ik5/wavtomp3/audio"
	"github.com/ik5/wavtomp3/formats/pcm"
)

// Source streams the sample data that follows a WAV header.
type Source struct {
	*pcm.Source
	header Header
}

// Header returns the header the source was opened with.
func (s *Source) Header() Header { return s.header }

// Decoder reads the header at fixed offsets and treats everything from byte
// 44 on as interleaved little-endian int16 samples.
//
// By default only a short header or a header with zero channels or sample
// rate is rejected. Strict adds the RIFF/WAVE, fmt, data and PCM16 checks.
type Decoder struct {
	Strict bool
}

// Open is Decode returning the concrete *Source.
func (d Decoder) Open(r io.Reader) (*Source, error) {
	b := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, b); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			if d.Strict {
				return nil, ErrNotWavFile
			}
			return nil, ErrShortHeader
		}
		return nil, fmt.Errorf("%w", err)
	}

	h, err := ParseHeader(b)
	if err != nil {
		return nil, err
	}
	if d.Strict {
		if err := checkLayout(b, h); err != nil {
			return nil, err
		}
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}

	return &Source{
		Source: pcm.NewSource(r, h.SampleRate, h.Channels),
		header: h,
	}, nil
}

func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	src, err := d.Open(r)
	if err != nil {
		return nil, err
	}
	return src, nil
}
