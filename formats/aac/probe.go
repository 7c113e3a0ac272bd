// SPDX-License-Identifier: EPL-2.0

package aac

import (
	"fmt"

	goaac "github.com/llehouerou/go-aac"
)

const (
	fallbackSampleRate = 44100
	fallbackChannels   = 1
)

// StreamInfo describes an AAC stream before any frame is decoded.
type StreamInfo struct {
	SampleRate int
	Channels   int
	ObjectType goaac.ObjectType
}

// Probe reads the stream parameters from the first ADTS header in data.
// A zero sample rate or channel count falls back to 44100 Hz and mono.
func Probe(data []byte) (StreamInfo, error) {
	dec := goaac.NewDecoder()
	defer dec.Close()

	res, err := dec.Init(data)
	if err != nil {
		return StreamInfo{}, fmt.Errorf("%w: %w", ErrInvalidADTS, err)
	}

	info := StreamInfo{
		SampleRate: int(res.SampleRate),
		Channels:   int(res.Channels),
		ObjectType: dec.ObjectType(),
	}
	if info.SampleRate <= 0 {
		info.SampleRate = fallbackSampleRate
	}
	if info.Channels <= 0 {
		info.Channels = fallbackChannels
	}
	return info, nil
}
