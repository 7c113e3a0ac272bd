// SPDX-License-Identifier: EPL-2.0

package wavtomp3

import (
	"github.com/ik5/wavtomp3/encoder"
	"go.uber.org/zap"
)

// DefaultBufferFrames is the number of frames read and encoded per step.
const DefaultBufferFrames = 4096

// Options controls a conversion. The zero value is usable but selects
// quality 0; use DefaultOptions for the LAME default of 5.
type Options struct {
	// Bitrate in kbps; 0 or -1 selects 128.
	Bitrate int
	// Quality 0 (best) to 9 (worst); -1 selects 5.
	Quality int
	// Engine is the MP3 backend, LAME when empty.
	Engine encoder.Engine
	// Mono downmixes to a single channel before encoding.
	Mono bool
	// SampleRate resamples the input when non-zero.
	SampleRate int
	// RawAAC reads .aac input that has no ADTS, ID3 or MP4 signature as
	// raw PCM, mono 44100 Hz, instead of failing.
	RawAAC bool
	// BufferFrames per encode call; 0 selects DefaultBufferFrames.
	BufferFrames int
	// Logger receives progress; nil discards it.
	Logger *zap.Logger
}

func DefaultOptions() Options {
	return Options{
		Bitrate:      -1,
		Quality:      -1,
		Engine:       encoder.EngineLAME,
		BufferFrames: DefaultBufferFrames,
	}
}

func (o Options) withDefaults() Options {
	if o.Engine == "" {
		o.Engine = encoder.EngineLAME
	}
	if o.BufferFrames <= 0 {
		o.BufferFrames = DefaultBufferFrames
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// encoderSettings resolves bitrate and quality and logs the choice.
func (o Options) encoderSettings(log *zap.Logger) (bitrate, quality int) {
	bitrate, quality = o.Bitrate, o.Quality

	if bitrate <= 0 {
		bitrate = encoder.DefaultBitrate
		log.Info("using default bitrate", zap.Int("kbps", bitrate))
	} else {
		log.Info("using bitrate", zap.Int("kbps", bitrate))
	}
	if o.Engine == encoder.EngineShine && bitrate != encoder.DefaultBitrate {
		log.Warn("shine encodes at a fixed bitrate, ignoring the requested one",
			zap.Int("requested_kbps", bitrate),
			zap.Int("kbps", encoder.DefaultBitrate))
		bitrate = encoder.DefaultBitrate
	}

	if quality < 0 || quality > 9 {
		quality = encoder.DefaultQuality
		log.Info("using default quality", zap.Int("quality", quality))
	} else {
		log.Info("using quality", zap.Int("quality", quality))
	}
	return bitrate, quality
}
