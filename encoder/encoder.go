// SPDX-License-Identifier: EPL-2.0

package encoder

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

const (
	DefaultBitrate = 128
	DefaultQuality = 5
	MaxChannels    = 2
)

// Engine names an MP3 encoder backend.
type Engine string

const (
	// EngineLAME is libmp3lame through cgo.
	EngineLAME Engine = "lame"
	// EngineShine is a pure Go fixed-point encoder, 128 kbps only.
	EngineShine Engine = "shine"
)

var shineRates = []int{32000, 44100, 48000}

// ParseEngine maps a name to an Engine. The empty string selects LAME.
func ParseEngine(s string) (Engine, error) {
	switch e := Engine(strings.ToLower(strings.TrimSpace(s))); e {
	case "":
		return EngineLAME, nil
	case EngineLAME, EngineShine:
		return e, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEngine, s)
	}
}

func (e Engine) String() string { return string(e) }

// AcceptsRate reports whether the engine can take input at rate without
// resampling first. LAME resamples internally.
func (e Engine) AcceptsRate(rate int) bool {
	if rate <= 0 {
		return false
	}
	if e == EngineShine {
		return slices.Contains(shineRates, rate)
	}
	return true
}

// NearestRate returns the closest rate the engine accepts.
func (e Engine) NearestRate(rate int) int {
	if e.AcceptsRate(rate) {
		return rate
	}
	best := shineRates[0]
	for _, r := range shineRates[1:] {
		if abs(r-rate) < abs(best-rate) {
			best = r
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Config describes the PCM fed to the encoder and the output settings.
type Config struct {
	SampleRate int
	Channels   int
	// Bitrate in kbps. Zero or negative selects DefaultBitrate.
	Bitrate int
	// Quality 0 (best, slowest) to 9. Out of range selects DefaultQuality.
	Quality int
}

func (c Config) withDefaults() Config {
	if c.Bitrate <= 0 {
		c.Bitrate = DefaultBitrate
	}
	if c.Quality < 0 || c.Quality > 9 {
		c.Quality = DefaultQuality
	}
	return c
}

// Encoder turns interleaved int16 PCM into MP3 frames written to w.
type Encoder interface {
	// Encode consumes pcm and returns the number of MP3 bytes written. It may
	// buffer input and write nothing.
	Encode(w io.Writer, pcm []int16) (int, error)
	// Flush writes whatever the encoder still holds.
	Flush(w io.Writer) (int, error)
	// Frames returns the number of MP3 frames produced so far.
	Frames() (int, error)
	Close() error
}

// New returns an encoder for cfg. Constant bitrate is always used.
func New(engine Engine, cfg Config) (Encoder, error) {
	cfg = cfg.withDefaults()

	if cfg.Channels < 1 || cfg.Channels > MaxChannels {
		return nil, fmt.Errorf("%w: got %d", ErrUnsupportedChannels, cfg.Channels)
	}
	if !engine.AcceptsRate(cfg.SampleRate) {
		return nil, fmt.Errorf("%w: %s at %d Hz", ErrUnsupportedRate, engine, cfg.SampleRate)
	}

	switch engine {
	case EngineLAME, "":
		return newLAME(cfg)
	case EngineShine:
		return newShine(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, string(engine))
	}
}

// writeAll writes b and returns how many bytes reached w.
func writeAll(w io.Writer, b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	n, err := w.Write(b)
	if err != nil {
		return n, fmt.Errorf("%w", err)
	}
	return n, nil
}
