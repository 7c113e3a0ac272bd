// SPDX-License-Identifier: EPL-2.0

package encoder

import (
	"fmt"
	"io"

	"github.com/ik5/wavtomp3/utils"
	lame "github.com/lizc2003/audio-mp3"
)

// lameEncoder drives libmp3lame: init params once, then encode per buffer
// (mono or interleaved entry point by channel count) and flush at the end.
type lameEncoder struct {
	enc *lame.Encoder
	in  []byte
	out []byte
}

func newLAME(cfg Config) (*lameEncoder, error) {
	enc, err := lame.NewEncoder(&lame.EncoderConfig{
		SampleRate:  cfg.SampleRate,
		NumChannels: cfg.Channels,
		Bitrate:     cfg.Bitrate,
		Quality:     cfg.Quality,
		VbrMode:     lame.VbrModeOff,
	})
	if err != nil {
		return nil, fmt.Errorf("lame init: %w", err)
	}
	return &lameEncoder{enc: enc}, nil
}

func (e *lameEncoder) grow(need int) []byte {
	if cap(e.out) < need {
		e.out = make([]byte, need)
	}
	return e.out[:need]
}

func (e *lameEncoder) Encode(w io.Writer, pcm []int16) (int, error) {
	if e.enc == nil {
		return 0, ErrClosed
	}
	if len(pcm) == 0 {
		return 0, nil
	}

	e.in = utils.Int16sToBytes(e.in, pcm)
	// worst case from lame.h, plus room for a carried partial frame
	out := e.grow(e.enc.EstimateOutBufBytes(len(e.in)) + 2*MaxChannels)

	n, err := e.enc.Encode(e.in, out)
	if err != nil {
		return 0, fmt.Errorf("lame encode: %w", err)
	}
	return writeAll(w, out[:n])
}

func (e *lameEncoder) Flush(w io.Writer) (int, error) {
	if e.enc == nil {
		return 0, ErrClosed
	}

	out := e.grow(e.enc.EstimateOutBufBytes(0))
	n, err := e.enc.Flush(out)
	if err != nil {
		return 0, fmt.Errorf("lame flush: %w", err)
	}
	return writeAll(w, out[:n])
}

func (e *lameEncoder) Frames() (int, error) {
	if e.enc == nil {
		return 0, ErrClosed
	}
	n, err := e.enc.GetFrameNum()
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}
	return n, nil
}

func (e *lameEncoder) Close() error {
	if e.enc != nil {
		e.enc.Close()
		e.enc = nil
	}
	return nil
}
