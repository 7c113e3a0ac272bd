// SPDX-License-Identifier: EPL-2.0

// Package aac decodes AAC to 16-bit PCM.
//
// ADTS streams are split with FrameReader, stream parameters are read from
// the first header with github.com/llehouerou/go-aac, and each frame is
// decoded by FAAD2 through github.com/llehouerou/go-faad2 on demand as
// samples are read. ID3v2 tags ahead of the first frame are skipped.
//
// MP4/M4A files are handed to the FAAD2 M4A reader, which walks the sample
// table of the first AAC track.
//
// Anything else is rejected with ErrInvalidADTS, unless Decoder.RawFallback
// is set: then the input is read as raw PCM, mono, 44100 Hz, and Source.Raw
// reports it so callers can warn.
package aac
