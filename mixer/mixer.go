// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/ik5/sfxkit/audio"
)

// Stream is a sample-clocked mix of layers. Each layer starts contributing
// at its own output frame; there are no timers, so the result depends only
// on the layers.
type Stream struct {
	tracks []*track
	rate   int
	frames int
	pos    int
	ctx    context.Context
}

// NewStream converts every layer to the mix format. Any invalid layer
// aborts with a *MixError naming it.
func NewStream(layers []Layer, opts Options) (*Stream, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if len(layers) == 0 {
		return nil, ErrNoLayers
	}

	tracks := make([]*track, len(layers))
	for i, l := range layers {
		if err := l.validate(); err != nil {
			return nil, &MixError{Index: i, ID: l.ID, Err: err}
		}
		t, err := prepare(l, opts.SampleRate)
		if err != nil {
			return nil, &MixError{Index: i, ID: l.ID, Err: err}
		}
		tracks[i] = t
	}
	slices.SortStableFunc(tracks, compareTracks)

	return &Stream{
		tracks: tracks,
		rate:   opts.SampleRate,
		frames: length(tracks, opts),
		ctx:    context.Background(),
	}, nil
}

// WithContext returns s bound to ctx; reads fail once ctx is done.
func (s *Stream) WithContext(ctx context.Context) *Stream {
	s.ctx = ctx
	return s
}

func (s *Stream) SampleRate() int { return s.rate }
func (s *Stream) Channels() int   { return Channels }
func (s *Stream) BufSize() int    { return 4096 }
func (s *Stream) Close() error    { return nil }

// Frames is the total output length.
func (s *Stream) Frames() int { return s.frames }

// Position is the next output frame.
func (s *Stream) Position() int { return s.pos }

func (s *Stream) ReadSamples(dst []float32) (int, error) {
	if len(dst)%Channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}
	if err := s.ctx.Err(); err != nil {
		return 0, err
	}
	if s.pos >= s.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/Channels, s.frames-s.pos)
	out := dst[:n*Channels]
	clear(out)

	from, to := s.pos, s.pos+n
	for _, t := range s.tracks {
		lo, hi := max(from, t.start), min(to, t.end())
		if lo >= hi || t.gain == 0 {
			continue
		}
		for f := lo; f < hi; f++ {
			i := (f - from) * Channels
			for c := range Channels {
				out[i+c] += t.data[c][f-t.start] * t.gain
			}
		}
	}

	s.pos = to
	if s.pos >= s.frames {
		return len(out), io.EOF
	}
	return len(out), nil
}

// Mix renders layers offline into one stereo buffer. Samples are summed,
// not averaged, and may exceed [-1, 1]; clipping is left to quantisation.
func Mix(ctx context.Context, layers []Layer, opts Options) (*audio.Buffer, error) {
	s, err := NewStream(layers, opts)
	if err != nil {
		return nil, err
	}

	buf, err := audio.ReadAll(s.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("mixing: %w", err)
	}
	return buf, nil
}
