// SPDX-License-Identifier: EPL-2.0

// Package pcm reads headerless signed 16-bit little-endian PCM.
//
// Any input whose format cannot be recognised is converted as raw PCM, mono,
// 44100 Hz. The WAV decoder also uses Source for the sample data that follows
// its header.
package pcm
