// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/wavtomp3/utils"
)

// Resampler streams from src to a target sample rate using cubic
// interpolation. Works on interleaved samples and preserves channel count.
// A one-pole low-pass runs on the input when downsampling.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames per output frame
	channels int

	// frames[0] = t-1, frames[1] = t0, frames[2] = t+1, frames[3] = t+2.
	// Past the end of src the last frame is repeated; live marks frames
	// that came from src.
	frames [4][]float32
	live   [4]bool
	primed bool
	done   bool

	// position between frames[1] and frames[2], in source frames
	pos float64

	srcBuf []int16
	eof    bool

	filterState []float32
	filterInit  bool
	useFilter   bool
	filterAlpha float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:         src,
		dstRate:     dstRate,
		ratio:       ratio,
		channels:    channels,
		srcBuf:      make([]int16, channels),
		useFilter:   ratio > 1.0,
		filterState: make([]float32, channels),
	}
	if r.useFilter {
		r.filterAlpha = 0.5
	}

	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame reads one interleaved frame from src into f, skipping empty
// reads. A short trailing frame is dropped.
func (r *Resampler) readFrame(f []float32) (bool, error) {
	for {
		n, err := r.src.ReadSamples(r.srcBuf)
		if n == r.channels {
			for c, v := range r.srcBuf {
				f[c] = utils.Int16ToFloat32(v)
			}
			if r.useFilter {
				if !r.filterInit {
					// start from the first sample to avoid a warm-up transient
					copy(r.filterState, f)
					r.filterInit = true
				}
				for c := range r.channels {
					f[c] = r.filterAlpha*f[c] + (1-r.filterAlpha)*r.filterState[c]
					r.filterState[c] = f[c]
				}
			}
			return true, err
		}
		if err != nil || n > 0 {
			return false, err
		}
	}
}

// fill loads frames[i], repeating frames[i-1] once src is exhausted.
func (r *Resampler) fill(i int) error {
	if !r.eof {
		got, err := r.readFrame(r.frames[i])
		r.live[i] = got
		if err == io.EOF {
			r.eof = true
		} else if err != nil {
			return fmt.Errorf("%w", err)
		}
		if got {
			return nil
		}
	}

	r.live[i] = false
	copy(r.frames[i], r.frames[i-1])
	return nil
}

func (r *Resampler) prime() error {
	r.primed = true

	got, err := r.readFrame(r.frames[1])
	if !got {
		if err != nil && err != io.EOF {
			return fmt.Errorf("%w", err)
		}
		return io.EOF
	}
	if err == io.EOF {
		r.eof = true
	}

	copy(r.frames[0], r.frames[1])
	r.live[0], r.live[1] = true, true

	for i := 2; i < 4; i++ {
		if err := r.fill(i); err != nil {
			return err
		}
	}
	return nil
}

// advance shifts the window forward by one source frame.
func (r *Resampler) advance() error {
	r.frames[0], r.frames[1], r.frames[2], r.frames[3] = r.frames[1], r.frames[2], r.frames[3], r.frames[0]
	r.live[0], r.live[1], r.live[2] = r.live[1], r.live[2], r.live[3]

	if err := r.fill(3); err != nil {
		return err
	}
	if !r.live[1] {
		return io.EOF
	}
	return nil
}

// ReadSamples produces interleaved samples at the target rate. len(dst) must
// be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []int16) (int, error) {
	if r.channels <= 0 || len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.done {
		return 0, io.EOF
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			r.done = true
			return 0, err
		}
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for written < framesNeeded {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				r.done = true
				return written * r.channels, err
			}
		}

		off := written * r.channels
		utils.InterpolateFrame(dst[off:off+r.channels], r.frames[0], r.frames[1], r.frames[2], r.frames[3], float32(r.pos))

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
