// SPDX-License-Identifier: EPL-2.0

package wavtomp3

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ik5/wavtomp3/audio"
	"github.com/ik5/wavtomp3/encoder"
	"github.com/ik5/wavtomp3/formats/aac"
	"github.com/ik5/wavtomp3/formats/wav"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/ik5/wavtomp3"

type target int

const (
	targetMP3 target = iota
	targetWAV
)

func (t target) String() string {
	if t == targetWAV {
		return "wav"
	}
	return "mp3"
}

type job struct {
	input  string
	output string
	format string
	target target
}

// ConvertWavToMp3 encodes a 16-bit PCM WAV file to MP3.
//
// The header is read at fixed offsets and samples are taken from byte 44 on.
// A partially written output is left in place on failure.
func ConvertWavToMp3(ctx context.Context, input, output string, opts Options) (*Report, error) {
	return run(ctx, job{input: input, output: output, format: FormatWAV, target: targetMP3}, opts)
}

// ConvertAudioToMp3 encodes any registered input format to MP3. The format
// is taken from the input extension; see DetectFormat for how format is used.
func ConvertAudioToMp3(ctx context.Context, input, output, format string, opts Options) (*Report, error) {
	opts = opts.withDefaults()
	f := DetectFormat(StripFileScheme(input), format)
	opts.Logger.Info("input format", zap.String("hint", format), zap.String("detected", f))

	return run(ctx, job{input: input, output: output, format: f, target: targetMP3}, opts)
}

// DecodeToWav decodes any registered input format into a 16-bit PCM WAV.
func DecodeToWav(ctx context.Context, input, output, format string, opts Options) (*Report, error) {
	opts = opts.withDefaults()
	f := DetectFormat(StripFileScheme(input), format)
	opts.Logger.Info("input format", zap.String("hint", format), zap.String("detected", f))

	return run(ctx, job{input: input, output: output, format: f, target: targetWAV}, opts)
}

func run(ctx context.Context, j job, opts Options) (rep *Report, err error) {
	opts = opts.withDefaults()

	input := StripFileScheme(j.input)
	output := StripFileScheme(j.output)

	ctx, span := otel.Tracer(tracerName).Start(ctx, "wavtomp3.convert", trace.WithAttributes(
		attribute.String("audio.input", input),
		attribute.String("audio.output", output),
		attribute.String("audio.format", j.format),
		attribute.String("audio.target", j.target.String()),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	log := opts.Logger.With(
		zap.String("input", input),
		zap.String("output", output),
		zap.String("format", j.format),
	)

	if input == "" || output == "" {
		return nil, ErrEmptyPath
	}

	dec, ok := registry.Get(j.format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, j.format)
	}

	rep = &Report{
		Format:     j.format,
		InputPath:  input,
		OutputPath: output,
		InputSize:  -1,
		OutputSize: -1,
	}

	if fi, statErr := os.Stat(input); statErr != nil {
		log.Warn("cannot stat input", zap.Error(statErr))
	} else {
		rep.InputSize = fi.Size()
		log.Info("input file size", zap.Int64("bytes", rep.InputSize))
	}

	in, err := os.Open(input)
	if err != nil {
		log.Error("failed to open input file", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrOpenInput, err)
	}
	defer in.Close()

	out, err := os.Create(output)
	if err != nil {
		log.Error("failed to create output file", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrCreateOutput, err)
	}
	defer func() {
		if out != nil {
			_ = out.Close()
		}
	}()

	if opts.RawAAC {
		if _, isAAC := dec.(aac.Decoder); isAAC {
			dec = aac.Decoder{RawFallback: true}
		}
	}

	src, err := dec.Decode(in)
	if err != nil {
		log.Error("failed to read input", zap.Error(err))
		return nil, fmt.Errorf("%w as %s: %w", ErrDecode, j.format, err)
	}
	describe(log, src, rep)

	prep := audio.PrepareOptions{Mono: opts.Mono, SampleRate: opts.SampleRate}
	if j.target == targetMP3 {
		prep.MaxChannels = encoder.MaxChannels
		if prep.SampleRate == 0 && !opts.Engine.AcceptsRate(src.SampleRate()) {
			prep.SampleRate = opts.Engine.NearestRate(src.SampleRate())
			log.Info("resampling for encoder",
				zap.String("engine", opts.Engine.String()),
				zap.Int("from", src.SampleRate()),
				zap.Int("to", prep.SampleRate))
		}
	}

	pcm, err := audio.Prepare(src, prep)
	if err != nil {
		_ = src.Close()
		log.Error("invalid stream parameters", zap.Error(err))
		return nil, fmt.Errorf("%w", err)
	}
	defer pcm.Close()

	rep.SampleRate = pcm.SampleRate()
	rep.Channels = pcm.Channels()

	s, err := newSink(j.target, out, pcm, opts, log)
	if err != nil {
		log.Error("failed to set up output", zap.Error(err))
		return nil, err
	}
	defer s.Close()

	rep.BytesWritten, err = pump(ctx, pcm, s, opts.BufferFrames)
	if err != nil {
		log.Error("conversion failed", zap.Int64("bytes_written", rep.BytesWritten), zap.Error(err))
		return nil, err
	}

	if as, ok := src.(*aac.Source); ok && as.Container() == aac.ContainerADTS {
		log.Info("AAC frames decoded", zap.Int("frames", as.FramesDecoded()))
	}
	if ms, ok := s.(*mp3Sink); ok {
		frames, ferr := ms.Frames()
		if ferr != nil {
			log.Warn("cannot read MP3 frame count", zap.Error(ferr))
		}
		rep.Frames = frames
	}

	closeErr := out.Close()
	out = nil
	if closeErr != nil {
		log.Error("failed to close output file", zap.Error(closeErr))
		return nil, fmt.Errorf("%w", closeErr)
	}

	if fi, statErr := os.Stat(output); statErr == nil {
		rep.OutputSize = fi.Size()
	}
	rep.computeRatio()

	log.Info("conversion completed",
		zap.Int64("output_size", rep.OutputSize),
		zap.Int64("bytes_written", rep.BytesWritten),
		zap.Int("mp3_frames", rep.Frames),
		zap.Float64("compression_ratio", rep.CompressionRatio))

	span.SetAttributes(
		attribute.Int64("audio.bytes_written", rep.BytesWritten),
		attribute.Float64("audio.compression_ratio", rep.CompressionRatio),
	)
	return rep, nil
}

// describe logs what the decoder found and fills the report.
func describe(log *zap.Logger, src audio.Source, rep *Report) {
	rep.BitsPerSample = 16

	switch s := src.(type) {
	case *wav.Source:
		h := s.Header()
		rep.BitsPerSample = h.BitsPerSample
		log.Info("WAV info",
			zap.Int("channels", h.Channels),
			zap.Int("sample_rate", h.SampleRate),
			zap.Int("bits_per_sample", h.BitsPerSample))
		if !h.RIFF {
			log.Warn("RIFF/WAVE magic missing, reading as canonical WAV")
		}
		if !h.PCM16() {
			log.Warn("header does not declare 16-bit PCM, reading samples as 16-bit",
				zap.Int("audio_format", h.AudioFormat))
		}
	case *aac.Source:
		info := s.Info()
		switch s.Container() {
		case aac.ContainerRaw:
			log.Warn("no ADTS, ID3 or MP4 signature, treating input as raw PCM",
				zap.Int("sample_rate", info.SampleRate),
				zap.Int("channels", info.Channels))
		case aac.ContainerMP4:
			md := s.Metadata()
			log.Info("MP4 info",
				zap.Int("sample_rate", info.SampleRate),
				zap.Int("channels", info.Channels),
				zap.Duration("duration", s.Duration()),
				zap.String("title", md.Title),
				zap.String("artist", md.Artist))
		default:
			if n := s.ID3Bytes(); n > 0 {
				log.Info("skipped ID3 tag", zap.Int64("bytes", n))
			}
			log.Info("AAC info",
				zap.Int("sample_rate", info.SampleRate),
				zap.Int("channels", info.Channels),
				zap.Uint8("object_type", uint8(info.ObjectType)))
		}
	default:
		log.Info("input info",
			zap.Int("sample_rate", src.SampleRate()),
			zap.Int("channels", src.Channels()))
	}
}

// pump reads bufferFrames frames at a time into s, then finishes it.
func pump(ctx context.Context, src audio.Source, s sink, bufferFrames int) (int64, error) {
	buf := make([]int16, bufferFrames*src.Channels())
	var total int64

	for {
		if err := ctx.Err(); err != nil {
			return total, fmt.Errorf("%w", err)
		}

		n, rerr := src.ReadSamples(buf)
		if n > 0 {
			w, err := s.Write(buf[:n])
			total += int64(w)
			if err != nil {
				return total, err
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return total, fmt.Errorf("read samples: %w", rerr)
		}
	}

	w, err := s.Finish()
	total += int64(w)
	return total, err
}
