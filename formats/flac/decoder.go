// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"

	"github.com/ik5/sfxkit/audio"
	"github.com/ik5/sfxkit/utils"
)

var ErrNotFlacFile = errors.New("not a FLAC file")

// Sniff reports whether header starts with the FLAC stream marker.
func Sniff(header []byte) bool {
	return len(header) >= 4 && bytes.Equal(header[:4], []byte("fLaC"))
}

// blockReader yields one decoded FLAC frame at a time as planar samples.
type blockReader interface {
	Next() ([][]int32, error)
	Close() error
}

type streamReader struct {
	stream *flac.Stream
}

func (r streamReader) Next() ([][]int32, error) {
	frame, err := r.stream.ParseNext()
	if err != nil {
		return nil, err
	}
	block := make([][]int32, len(frame.Subframes))
	for ch, sub := range frame.Subframes {
		block[ch] = sub.Samples
	}
	return block, nil
}

func (r streamReader) Close() error { return r.stream.Close() }

type source struct {
	dec        blockReader
	sampleRate int
	channels   int
	bitDepth   int
	block      [][]int32
	pos        int
	eof        bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return 4096 - 4096%s.channels }

func (s *source) Close() error {
	if err := s.dec.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// ReadSamples interleaves decoded frames into dst. Samples left over from
// a frame are kept for the next call.
func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	n := 0
	for n < len(dst) {
		if s.block == nil || s.pos >= len(s.block[0]) {
			if s.eof {
				break
			}
			block, err := s.dec.Next()
			if errors.Is(err, io.EOF) {
				s.eof = true
				break
			}
			if err != nil {
				return n, fmt.Errorf("decoding flac: %w", err)
			}
			if len(block) != s.channels {
				return n, fmt.Errorf("decoding flac: frame has %d channels, want %d", len(block), s.channels)
			}
			s.block, s.pos = block, 0
			continue
		}

		for ; s.pos < len(s.block[0]) && n < len(dst); s.pos++ {
			for ch := range s.channels {
				dst[n] = utils.IntToFloat32(int(s.block[ch][s.pos]), s.bitDepth)
				n++
			}
		}
	}

	if s.eof && (s.block == nil || s.pos >= len(s.block[0])) {
		return n, io.EOF
	}
	return n, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFlacFile, err)
	}

	info := stream.Info
	if info == nil || info.NChannels == 0 || info.SampleRate == 0 {
		_ = stream.Close()
		return nil, fmt.Errorf("%w: missing stream info", ErrNotFlacFile)
	}

	return &source{
		dec:        streamReader{stream: stream},
		sampleRate: int(info.SampleRate),
		channels:   int(info.NChannels),
		bitDepth:   int(info.BitsPerSample),
	}, nil
}
