// SPDX-License-Identifier: EPL-2.0

// Package audio provides the low-level building blocks shared by the
// decoders, the transform engine and the mixer:
//   - Source interface for streaming interleaved float32 audio
//   - Buffer for fully decoded planar audio, and ReadAll to collect one
//   - Resampler for sample rate and playback rate conversion
//   - ChannelMixer for up and down mixing
//   - Gain and Window for level and length control
//   - Format registry for decoder registration
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Every decoder and processor implements Source, so they chain:
//
//	src := buf.Source()
//	shifted := audio.NewResampler(src, 44100, audio.WithPlaybackRate(1.5))
//	out, err := audio.ReadAll(audio.NewGain(shifted, 0.8))
//
// # Resampling
//
// The Resampler uses cubic interpolation. The playback rate option reads
// the source faster or slower, which is how pitch and speed changes are
// rendered: a playback rate of 2 is one octave up at half the length.
// When the ratio between source and destination is exactly 1 the output is
// a sample-exact copy of the input.
//
// # Channel Mixing
//
// ChannelMixer maps any channel count onto another. Mono is duplicated
// into every output channel, more channels than outputs are averaged.
//
// # Sample Format
//
// Samples are float32, nominally in [-1.0, 1.0]. Intermediate stages do
// not clip; values outside the range are only clamped when quantised to
// integer PCM.
//
// # Error Handling
//
// ReadSamples returns io.EOF when no more data is available, possibly
// together with the last samples:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    // Process n samples from buf
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
