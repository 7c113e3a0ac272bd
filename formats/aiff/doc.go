// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes 16-bit PCM AIFF input with github.com/go-audio/aiff.
//
// go-audio needs an io.ReadSeeker. Any other reader is buffered in memory
// first. Other bit depths and AIFF-C are rejected with
// ErrOnlyPCM16bitSupported or ErrNotAiffFile.
package aiff
