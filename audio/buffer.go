// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"
	"time"
)

// maxIdleReads bounds how many consecutive (0, nil) reads ReadAll tolerates
// before giving up on a source.
const maxIdleReads = 1000

// Buffer is a fully decoded block of planar float32 audio.
// Data holds one slice per channel; every channel has the same length.
type Buffer struct {
	SampleRate int
	Data       [][]float32
}

// NewBuffer allocates a silent buffer.
func NewBuffer(sampleRate, channels, frames int) *Buffer {
	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, frames)
	}
	return &Buffer{SampleRate: sampleRate, Data: data}
}

func (b *Buffer) Channels() int { return len(b.Data) }

// Frames is the number of samples per channel.
func (b *Buffer) Frames() int {
	if len(b.Data) == 0 {
		return 0
	}
	return len(b.Data[0])
}

// Seconds is the buffer length in seconds.
func (b *Buffer) Seconds() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(b.Frames()) / float64(b.SampleRate)
}

func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.SampleRate)
}

// Validate checks the structural invariants of the buffer.
func (b *Buffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidBuffer)
	}
	if b.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidBuffer, b.SampleRate)
	}
	if len(b.Data) == 0 {
		return fmt.Errorf("%w: no channels", ErrInvalidBuffer)
	}
	frames := len(b.Data[0])
	for c, ch := range b.Data {
		if len(ch) != frames {
			return fmt.Errorf("%w: channel %d has %d frames, want %d", ErrInvalidBuffer, c, len(ch), frames)
		}
	}
	return nil
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{SampleRate: b.SampleRate, Data: make([][]float32, len(b.Data))}
	for c, ch := range b.Data {
		out.Data[c] = append([]float32(nil), ch...)
	}
	return out
}

// Peak returns the largest absolute sample value across all channels.
func (b *Buffer) Peak() float32 {
	var peak float32
	for _, ch := range b.Data {
		for _, s := range ch {
			if a := float32(math.Abs(float64(s))); a > peak {
				peak = a
			}
		}
	}
	return peak
}

// Interleaved returns the samples frame by frame.
func (b *Buffer) Interleaved() []float32 {
	channels := b.Channels()
	frames := b.Frames()
	out := make([]float32, frames*channels)
	for c, ch := range b.Data {
		for f, s := range ch {
			out[f*channels+c] = s
		}
	}
	return out
}

// Source returns a streaming view over the buffer. The buffer must not be
// modified while the source is in use.
func (b *Buffer) Source() *BufferSource {
	return &BufferSource{buf: b}
}

// BufferSource streams a Buffer as interleaved samples.
type BufferSource struct {
	buf *Buffer
	pos int
}

func (s *BufferSource) SampleRate() int { return s.buf.SampleRate }
func (s *BufferSource) Channels() int   { return s.buf.Channels() }
func (s *BufferSource) BufSize() int    { return 4096 }
func (s *BufferSource) Close() error    { return nil }

// Position is the next frame to be read.
func (s *BufferSource) Position() int { return s.pos }

func (s *BufferSource) ReadSamples(dst []float32) (int, error) {
	channels := s.buf.Channels()
	if channels == 0 {
		return 0, io.EOF
	}
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}

	total := s.buf.Frames()
	if s.pos >= total {
		return 0, io.EOF
	}

	frames := min(len(dst)/channels, total-s.pos)
	for c, ch := range s.buf.Data {
		for f := range frames {
			dst[f*channels+c] = ch[s.pos+f]
		}
	}
	s.pos += frames

	if s.pos >= total {
		return frames * channels, io.EOF
	}
	return frames * channels, nil
}

// ReadAll drains src into a new Buffer. It returns either the complete
// stream or an error, never a partial buffer.
func ReadAll(src Source) (*Buffer, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, ErrInvalidChannels
	}

	size := src.BufSize()
	if size < channels {
		size = 4096
	}
	size -= size % channels
	if size == 0 {
		size = channels
	}

	chunk := make([]float32, size)
	out := NewBuffer(src.SampleRate(), channels, 0)
	idle := 0

	for {
		n, err := src.ReadSamples(chunk)
		if n > 0 {
			idle = 0
			frames := n / channels
			for f := range frames {
				for c := range channels {
					out.Data[c] = append(out.Data[c], chunk[f*channels+c])
				}
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		if n == 0 {
			idle++
			if idle > maxIdleReads {
				return nil, io.ErrNoProgress
			}
		}
	}

	return out, nil
}

// ReadFrames reads exactly frames frames from src, truncating a longer
// stream and padding a shorter one with silence.
func ReadFrames(src Source, frames int) (*Buffer, error) {
	return ReadAll(NewWindow(src, frames, true))
}
