// SPDX-License-Identifier: EPL-2.0

package aac

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ik5/wavtomp3/audio"
	"github.com/ik5/wavtomp3/formats/pcm"
	faad2 "github.com/llehouerou/go-faad2"
)

// Container names the layout Open found at the head of the input.
type Container string

const (
	ContainerADTS Container = "adts"
	ContainerMP4  Container = "mp4"
	ContainerRaw  Container = "raw"
)

// frameDecoder turns the raw data block of one frame into interleaved PCM.
type frameDecoder interface {
	Decode(payload []byte) ([]int16, error)
	SampleRate() uint32
	Channels() uint8
	Close() error
}

// newFrameDecoder builds the FAAD2 decoder from an AudioSpecificConfig.
var newFrameDecoder = func(asc []byte) (frameDecoder, error) {
	dec, err := faad2.NewDecoder()
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if err := dec.Init(asc); err != nil {
		_ = dec.Close()
		return nil, fmt.Errorf("%w", err)
	}
	return dec, nil
}

// trackReader yields the decoded PCM of the audio track of an MP4 file.
type trackReader interface {
	Read(pcm []int16) (int, error)
	SampleRate() uint32
	Channels() uint8
	Duration() time.Duration
	Metadata() faad2.Metadata
	Close() error
}

var openTrack = func(r io.ReadSeeker) (trackReader, error) {
	m, err := faad2.OpenM4A(r)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Source yields the PCM of an ADTS stream, an MP4 audio track, or of the
// raw PCM fallback.
type Source struct {
	container Container
	info      StreamInfo
	id3       int64

	raw *pcm.Source

	track trackReader

	frames   *FrameReader
	dec      frameDecoder
	first    []byte
	firstHdr FrameHeader
	pending  []int16
	decoded  int
}

// Info returns the stream parameters the source reports.
func (s *Source) Info() StreamInfo { return s.info }

// Container reports how the input was read.
func (s *Source) Container() Container { return s.container }

// Raw reports whether the input is read as headerless PCM.
func (s *Source) Raw() bool { return s.container == ContainerRaw }

// ID3Bytes returns the size of the ID3v2 tags skipped ahead of the stream.
func (s *Source) ID3Bytes() int64 { return s.id3 }

// FramesDecoded returns the number of ADTS frames decoded so far.
func (s *Source) FramesDecoded() int { return s.decoded }

// Duration is the track length an MP4 file declares, 0 for other inputs.
func (s *Source) Duration() time.Duration {
	if s.track == nil {
		return 0
	}
	return s.track.Duration()
}

// Metadata returns the MP4 tags, empty for other inputs.
func (s *Source) Metadata() faad2.Metadata {
	if s.track == nil {
		return faad2.Metadata{}
	}
	return s.track.Metadata()
}

func (s *Source) SampleRate() int { return s.info.SampleRate }
func (s *Source) Channels() int   { return s.info.Channels }

func (s *Source) Close() error {
	var err error
	if s.dec != nil {
		err = s.dec.Close()
		s.dec = nil
	}
	if s.track != nil {
		err = errors.Join(err, s.track.Close())
		s.track = nil
	}
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (s *Source) ReadSamples(dst []int16) (int, error) {
	switch s.container {
	case ContainerRaw:
		return s.raw.ReadSamples(dst)
	case ContainerMP4:
		return s.readTrack(dst)
	}

	n := 0
	for n < len(dst) {
		if len(s.pending) > 0 {
			c := copy(dst[n:], s.pending)
			s.pending = s.pending[c:]
			n += c
			continue
		}

		if err := s.decodeNext(); err != nil {
			return n, err
		}
	}
	return n, nil
}

func (s *Source) readTrack(dst []int16) (int, error) {
	if s.track == nil {
		return 0, io.EOF
	}
	n, err := s.track.Read(dst)
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}
	return n, err
}

func (s *Source) decodeNext() error {
	frame, hdr := s.first, s.firstHdr
	s.first = nil
	if frame == nil {
		var err error
		frame, hdr, err = s.frames.Next()
		if errors.Is(err, ErrTruncatedFrame) {
			// a cut-off tail is common in recordings; stop cleanly
			return io.EOF
		}
		if err != nil {
			return err
		}
	}

	if s.dec == nil {
		return io.EOF
	}

	out, err := s.dec.Decode(hdr.Payload(frame))
	if err != nil {
		return fmt.Errorf("%w: frame %d: %w", ErrDecodeFailed, s.decoded, err)
	}
	s.decoded++
	s.pending = out
	return nil
}

// Decoder reads AAC from ADTS streams, optionally behind ID3v2 tags, and
// from MP4/M4A files. Input with none of those signatures is rejected unless
// RawFallback is set, in which case it is read as raw PCM (mono, 44100 Hz).
type Decoder struct {
	RawFallback bool
}

// Open is Decode returning the concrete *Source.
func (d Decoder) Open(r io.Reader) (*Source, error) {
	br := bufio.NewReaderSize(r, maxFrameLength+1)

	head, err := br.Peek(8)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w", err)
	}
	// sample offsets in an MP4 are absolute, so nothing may be skipped first
	if IsMP4(head) {
		return openMP4(br)
	}

	tagged, err := skipID3(br)
	if err != nil {
		return nil, err
	}
	head, err = br.Peek(8)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w", err)
	}

	switch {
	case IsADTS(head), tagged > 0:
		src, err := openADTS(br)
		if err != nil {
			return nil, err
		}
		src.id3 = tagged
		return src, nil
	case d.RawFallback:
		return &Source{
			container: ContainerRaw,
			info:      StreamInfo{SampleRate: pcm.DefaultSampleRate, Channels: pcm.DefaultChannels},
			raw:       pcm.NewSource(br, pcm.DefaultSampleRate, pcm.DefaultChannels),
		}, nil
	case len(head) == 0:
		return nil, fmt.Errorf("%w: empty input", ErrInvalidADTS)
	default:
		return nil, fmt.Errorf("%w: no ADTS, ID3 or MP4 signature", ErrInvalidADTS)
	}
}

func openADTS(br *bufio.Reader) (*Source, error) {
	frames := NewFrameReader(br)
	first, hdr, err := frames.Next()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: no complete frame", ErrInvalidADTS)
		}
		return nil, err
	}
	first = bytes.Clone(first)

	info, err := Probe(first)
	if err != nil {
		return nil, err
	}

	dec, err := newFrameDecoder(hdr.AudioSpecificConfig())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}
	if rate := int(dec.SampleRate()); rate > 0 {
		info.SampleRate = rate
	}
	if ch := int(dec.Channels()); ch > 0 {
		info.Channels = ch
	}

	return &Source{
		container: ContainerADTS,
		info:      info,
		frames:    frames,
		dec:       dec,
		first:     first,
		firstHdr:  hdr,
	}, nil
}

// openMP4 loads the whole file; the track reader seeks to each sample.
func openMP4(br *bufio.Reader) (*Source, error) {
	data, err := io.ReadAll(br)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	track, err := openTrack(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, faad2.ErrNoAudioTrack) || errors.Is(err, faad2.ErrUnsupportedCodec) {
			return nil, fmt.Errorf("%w: %w", ErrNoAudioTrack, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}

	info := StreamInfo{
		SampleRate: int(track.SampleRate()),
		Channels:   int(track.Channels()),
	}
	if info.SampleRate <= 0 {
		info.SampleRate = fallbackSampleRate
	}
	if info.Channels <= 0 {
		info.Channels = fallbackChannels
	}

	return &Source{
		container: ContainerMP4,
		info:      info,
		track:     track,
	}, nil
}

func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	src, err := d.Open(r)
	if err != nil {
		return nil, err
	}
	return src, nil
}
