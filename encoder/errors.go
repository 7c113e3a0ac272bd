// SPDX-License-Identifier: EPL-2.0

package encoder

import "errors"

var (
	ErrUnknownEngine       = errors.New("unknown MP3 encoder engine")
	ErrUnsupportedChannels = errors.New("MP3 encoder takes 1 or 2 channels")
	ErrUnsupportedRate     = errors.New("sample rate not supported by encoder engine")
	ErrClosed              = errors.New("encoder is closed")
)
