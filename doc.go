// SPDX-License-Identifier: EPL-2.0

// Package wavtomp3 converts WAV, AAC and a few other audio formats to MP3.
//
// # WAV To MP3
//
// ConvertWavToMp3 reads channels, sample rate and bits per sample from the
// fixed offsets 22, 24 and 34 of the WAV header and treats every byte from
// offset 44 on as interleaved little-endian 16-bit PCM. No chunk walking is
// done:
//
//	rep, err := wavtomp3.ConvertWavToMp3(ctx, "file:///sdcard/in.wav", "/sdcard/out.mp3",
//	    wavtomp3.DefaultOptions())
//
// The samples are fed to LAME in blocks of Options.BufferFrames frames at the
// requested bitrate and quality (CBR), then the encoder is flushed.
//
// # Other Inputs
//
// ConvertAudioToMp3 picks a decoder from the lower-cased file extension:
//
//   - aac: ADTS AAC decoded with FAAD2 (formats/aac)
//   - wav: as ConvertWavToMp3
//   - mp3, ogg/oga, aiff/aif: formats/mp3, formats/vorbis, formats/aiff
//   - pcm/raw and anything unknown: raw 16-bit mono PCM at 44100 Hz
//
// The format argument only matters when the extension is not registered.
// DecodeToWav runs the same decoders but writes a 16-bit PCM WAV file.
//
// # Paths And Status
//
// A leading "file://" is stripped from both paths. Callers on the other side
// of a C ABI get a single status from Status: 0 on success and -1 for any
// failure. Errors wrap the sentinels in this package and in the format
// packages, so Go callers can still use errors.Is.
//
// # Logging And Tracing
//
// Progress goes to Options.Logger (zap), including the input size, the
// decoded stream parameters, the bitrate and quality chosen, and the final
// compression ratio (output size / input size). Every conversion runs in an
// OpenTelemetry span from the global tracer provider.
package wavtomp3
