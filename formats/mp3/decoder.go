// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/wavtomp3/audio"
	"github.com/ik5/wavtomp3/formats/pcm"
)

// go-mp3 always produces stereo output, even for mono streams.
const outputChannels = 2

// mp3Reader is the part of gomp3.Decoder the source needs.
type mp3Reader interface {
	io.Reader
	SampleRate() int
}

func newSource(dec mp3Reader) audio.Source {
	return pcm.NewSource(dec, dec.SampleRate(), outputChannels)
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return newSource(dec), nil
}
