// SPDX-License-Identifier: EPL-2.0

package aac

import "errors"

var (
	ErrInvalidADTS    = errors.New("invalid ADTS header")
	ErrTruncatedFrame = errors.New("truncated ADTS frame")
	ErrNoAudioTrack   = errors.New("MP4 file has no AAC audio track")
	ErrDecodeFailed   = errors.New("AAC frame decode failed")
)
