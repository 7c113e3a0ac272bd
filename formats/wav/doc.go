// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes 16-bit PCM WAV files.
//
// # Reading
//
// The header is never walked chunk by chunk. Channel count, sample rate and
// bits per sample come from offsets 22, 24 and 34, and the sample data is
// assumed to start at byte 44:
//
//	src, err := wav.Decoder{}.Open(file)
//	if err != nil {
//	    return err
//	}
//	h := src.Header()
//
// The default decoder is lenient. Only a header shorter than 44 bytes, or one
// declaring zero channels or a zero sample rate, is an error; callers can
// inspect Header.RIFF and Header.PCM16 and warn. Set Strict to reject
// anything that is not a canonical RIFF/WAVE file with a fmt chunk followed
// directly by data, holding 16-bit PCM.
//
// # Writing
//
// Writer streams samples through github.com/go-audio/wav and fixes the sizes
// on Close, so it needs an io.WriteSeeker such as an *os.File. WriteWAV16
// writes a whole file in one call to any io.Writer.
package wav
