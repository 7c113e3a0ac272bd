// SPDX-License-Identifier: EPL-2.0

package wavtomp3

import (
	"path/filepath"

	"github.com/ik5/wavtomp3/audio"
	"github.com/ik5/wavtomp3/formats/aac"
	"github.com/ik5/wavtomp3/formats/aiff"
	"github.com/ik5/wavtomp3/formats/mp3"
	"github.com/ik5/wavtomp3/formats/pcm"
	"github.com/ik5/wavtomp3/formats/vorbis"
	"github.com/ik5/wavtomp3/formats/wav"
)

const (
	FormatWAV = "wav"
	FormatAAC = "aac"
	FormatPCM = "pcm"
)

var registry = newRegistry()

func newRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register(FormatWAV, wav.Decoder{})
	r.Register(FormatAAC, aac.Decoder{})
	r.Register("m4a", aac.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("oga", vorbis.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register(FormatPCM, pcm.Decoder{})
	r.Register("raw", pcm.Decoder{})
	return r
}

// Formats lists the input extensions that have a decoder.
func Formats() []string {
	return registry.Formats()
}

// DetectFormat picks the decoder key for path. The lower-cased extension
// wins; hint is only consulted when the extension is unknown, and anything
// else is read as raw PCM.
func DetectFormat(path, hint string) string {
	if ext := audio.FormatKey(filepath.Ext(path)); ext != "" {
		if _, ok := registry.Get(ext); ok {
			return ext
		}
	}
	if h := audio.FormatKey(hint); h != "" {
		if _, ok := registry.Get(h); ok {
			return h
		}
	}
	return FormatPCM
}
