// SPDX-License-Identifier: EPL-2.0

package audio

// PrepareOptions describes the shape an encoder needs its input in.
type PrepareOptions struct {
	// Mono forces a downmix to one channel.
	Mono bool
	// MaxChannels downmixes to mono when the source has more channels.
	// Zero means no limit.
	MaxChannels int
	// SampleRate resamples to this rate when it differs from the source.
	// Zero keeps the source rate.
	SampleRate int
}

// Prepare wraps src with the downmix and resample stages needed to satisfy
// opts. src is returned unchanged when nothing needs to be done. Closing the
// returned Source closes src.
func Prepare(src Source, opts PrepareOptions) (Source, error) {
	if src.SampleRate() <= 0 {
		return nil, ErrInvalidRate
	}
	if src.Channels() <= 0 {
		return nil, ErrInvalidChannels
	}

	out := src

	// mix down first so the resampler works on fewer channels
	if out.Channels() > 1 && (opts.Mono || (opts.MaxChannels > 0 && out.Channels() > opts.MaxChannels)) {
		out = NewMonoMixer(out)
	}

	if opts.SampleRate > 0 && opts.SampleRate != out.SampleRate() {
		out = NewResampler(out, opts.SampleRate)
	}

	return out, nil
}
