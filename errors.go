// SPDX-License-Identifier: EPL-2.0

package wavtomp3

import "errors"

var (
	ErrEmptyPath         = errors.New("input and output paths are required")
	ErrUnsupportedFormat = errors.New("unsupported input format")
	ErrOpenInput         = errors.New("cannot open input file")
	ErrCreateOutput      = errors.New("cannot create output file")
	ErrDecode            = errors.New("cannot decode input")
)
