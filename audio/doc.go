// SPDX-License-Identifier: EPL-2.0

// Package audio defines the PCM stream every decoder produces and every MP3
// encoder consumes, plus the few processing stages needed between them.
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []int16) (int, error)
//	    Close() error
//	}
//
// Samples are signed 16-bit, interleaved by channel. This is the layout the
// MP3 encoders take directly, so a WAV or raw PCM input reaches the encoder
// without any conversion.
//
// # Preparing Input For An Encoder
//
// LAME takes at most two channels, and some encoders only accept a few
// sample rates. Prepare inserts a MonoMixer and/or a Resampler as needed:
//
//	src, _ = audio.Prepare(src, audio.PrepareOptions{
//	    MaxChannels: 2,
//	    SampleRate:  44100,
//	})
//
// The Resampler uses Catmull-Rom interpolation with a one-pole low-pass when
// downsampling. The MonoMixer averages channels.
//
// # Format Registry
//
// The registry maps file extensions to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.Get(".WAV")
//
// Keys are case-insensitive and a leading dot is ignored.
//
// # End Of Stream
//
// ReadSamples returns io.EOF when no more data is available, possibly
// together with the last samples:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    // use buf[:n]
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
