// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts go-audio integer PCM readers to audio.Source.
package pcm

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/sfxkit/utils"
)

// Reader is the subset of the go-audio wav and aiff decoders used here.
type Reader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source streams a Reader as normalised float32 samples.
type Source struct {
	dec        Reader
	sampleRate int
	channels   int
	bitDepth   int
	offset     int
	intBuf     *goaudio.IntBuffer
	eof        bool
}

// Option adjusts how raw integers are interpreted.
type Option func(*Source)

// Unsigned marks samples as unsigned with a midpoint of 2^(bitDepth-1),
// as 8-bit WAV data is stored.
func Unsigned() Option {
	return func(s *Source) {
		s.offset = 1 << (s.bitDepth - 1)
	}
}

func NewSource(dec Reader, sampleRate, channels, bitDepth int, opts ...Option) *Source {
	s := &Source{
		dec:        dec,
		sampleRate: sampleRate,
		channels:   channels,
		bitDepth:   bitDepth,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BitDepth() int   { return s.bitDepth }
func (s *Source) Close() error    { return nil }
func (s *Source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.eof {
		return 0, io.EOF
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, len(dst)),
			Format: s.dec.Format(),
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("reading pcm: %w", err)
	}
	if n == 0 {
		s.eof = true
		return 0, io.EOF
	}

	for i := range n {
		dst[i] = utils.IntToFloat32(s.intBuf.Data[i]-s.offset, s.bitDepth)
	}

	if n < len(dst) || err == io.EOF {
		s.eof = true
		return n, io.EOF
	}
	return n, nil
}
