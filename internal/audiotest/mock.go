// SPDX-License-Identifier: EPL-2.0

package audiotest

import "github.com/ik5/sfxkit/audio"

// Streaming counterparts of the buffer fixtures. frames is the length per
// channel; every source ends with io.EOF on its last samples.

// NewSilentSource streams frames of silence.
func NewSilentSource(sampleRate, channels, frames int) *audio.BufferSource {
	return audio.NewBuffer(sampleRate, channels, frames).Source()
}

// NewSineSource streams a full-scale sine at frequency Hz on every channel.
func NewSineSource(sampleRate, channels, frames int, frequency float64) *audio.BufferSource {
	return Sine(sampleRate, channels, frames, frequency, 1).Source()
}

// NewConstantSource streams value on every sample.
func NewConstantSource(sampleRate, channels, frames int, value float32) *audio.BufferSource {
	return Constant(sampleRate, channels, frames, value).Source()
}
