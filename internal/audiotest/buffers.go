// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"math"

	"github.com/ik5/sfxkit/audio"
)

// Ramp returns a buffer where frame f of channel c holds f*step + c*offset.
func Ramp(sampleRate, channels, frames int, step, offset float32) *audio.Buffer {
	buf := audio.NewBuffer(sampleRate, channels, frames)
	for c := range channels {
		for f := range frames {
			buf.Data[c][f] = float32(f)*step + float32(c)*offset
		}
	}
	return buf
}

// Sine returns a buffer holding a sine wave of the given amplitude on
// every channel.
func Sine(sampleRate, channels, frames int, frequency float64, amplitude float32) *audio.Buffer {
	buf := audio.NewBuffer(sampleRate, channels, frames)
	for f := range frames {
		t := float64(f) / float64(sampleRate)
		v := amplitude * float32(math.Sin(2*math.Pi*frequency*t))
		for c := range channels {
			buf.Data[c][f] = v
		}
	}
	return buf
}

// Constant returns a buffer with every sample set to value.
func Constant(sampleRate, channels, frames int, value float32) *audio.Buffer {
	buf := audio.NewBuffer(sampleRate, channels, frames)
	for c := range channels {
		for f := range frames {
			buf.Data[c][f] = value
		}
	}
	return buf
}

// Equal reports whether two buffers have the same rate, shape and samples
// within tol.
func Equal(a, b *audio.Buffer, tol float32) bool {
	if a.SampleRate != b.SampleRate || a.Channels() != b.Channels() || a.Frames() != b.Frames() {
		return false
	}
	for c := range a.Data {
		for f := range a.Data[c] {
			d := a.Data[c][f] - b.Data[c][f]
			if d > tol || d < -tol {
				return false
			}
		}
	}
	return true
}
