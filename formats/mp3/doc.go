// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 input with github.com/hajimehoshi/go-mp3.
//
// go-mp3 always emits interleaved stereo 16-bit PCM, so a mono MP3 comes out
// with both channels equal. Set the Mono option of the conversion to fold it
// back before re-encoding.
//
// Decoding an MP3 only to encode it again is lossy twice. It is supported so
// that any registered input can be normalised to the same bitrate.
package mp3
