// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis input with github.com/jfreymuth/oggvorbis.
//
// The decoder produces float samples in [-1, 1]; the source clamps and scales
// them to int16. Streams with more than two channels are passed through as
// is and folded to mono later, since the MP3 encoders take at most two.
package vorbis
