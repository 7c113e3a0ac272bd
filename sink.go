// SPDX-License-Identifier: EPL-2.0

package wavtomp3

import (
	"io"

	"github.com/ik5/wavtomp3/audio"
	"github.com/ik5/wavtomp3/encoder"
	"github.com/ik5/wavtomp3/formats/wav"
	"go.uber.org/zap"
)

// sink receives prepared PCM and produces the output file.
type sink interface {
	// Write returns the number of output bytes produced.
	Write(pcm []int16) (int, error)
	Finish() (int, error)
	Close() error
}

func newSink(t target, out io.WriteSeeker, src audio.Source, opts Options, log *zap.Logger) (sink, error) {
	if t == targetWAV {
		return &wavSink{w: wav.NewWriter(out, src.SampleRate(), src.Channels())}, nil
	}

	bitrate, quality := opts.encoderSettings(log)
	enc, err := encoder.New(opts.Engine, encoder.Config{
		SampleRate: src.SampleRate(),
		Channels:   src.Channels(),
		Bitrate:    bitrate,
		Quality:    quality,
	})
	if err != nil {
		return nil, err
	}
	return &mp3Sink{enc: enc, w: out}, nil
}

type mp3Sink struct {
	enc encoder.Encoder
	w   io.Writer
}

func (s *mp3Sink) Write(pcm []int16) (int, error) { return s.enc.Encode(s.w, pcm) }
func (s *mp3Sink) Finish() (int, error)           { return s.enc.Flush(s.w) }
func (s *mp3Sink) Close() error                   { return s.enc.Close() }

// Frames is the MP3 frame count; call it before Close.
func (s *mp3Sink) Frames() (int, error) { return s.enc.Frames() }

type wavSink struct {
	w *wav.Writer
}

func (s *wavSink) Write(pcm []int16) (int, error) {
	if err := s.w.WriteSamples(pcm); err != nil {
		return 0, err
	}
	return len(pcm) * 2, nil
}

// Finish patches the header; its bytes are counted here.
func (s *wavSink) Finish() (int, error) {
	if err := s.w.Close(); err != nil {
		return 0, err
	}
	return wav.HeaderSize, nil
}

func (s *wavSink) Close() error { return nil }
