// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/sfxkit/utils"
)

// Resampler streams from src at a new sample rate and/or playback rate
// using cubic interpolation. Works on interleaved samples; preserves channel
// count.
//
// The read position advances by ratio = srcRate/dstRate * playbackRate
// source frames per output frame, so a playback rate of 2 plays the source
// twice as fast (an octave up) and 0.5 half as fast. Output frame i is taken
// at source position i*ratio; at a ratio of 1 every output frame is an exact
// copy of a source frame.
type Resampler struct {
	src          Source
	dstRate      int
	playbackRate float64
	ratio        float64
	channels     int

	// Sliding window for cubic interpolation:
	// frames[0] = t-1, frames[1] = t0, frames[2] = t+1, frames[3] = t+2
	frames   [4][]float32
	hasFrame [4]bool

	// Fractional position between frames[1] and frames[2].
	pos float64

	srcBuf []float32
	primed bool
	eof    bool
	done   bool

	// One-pole low-pass for anti-aliasing when reading faster than real time.
	antiAlias   bool
	useFilter   bool
	filterAlpha float32
	filterState []float32
}

type ResamplerOption func(*Resampler)

// WithPlaybackRate scales how fast the source is read. Values <= 0 are ignored.
func WithPlaybackRate(rate float64) ResamplerOption {
	return func(r *Resampler) {
		if rate > 0 {
			r.playbackRate = rate
		}
	}
}

// WithoutAntiAlias disables the low-pass stage that is otherwise applied
// when the resampler consumes more than one source frame per output frame.
func WithoutAntiAlias() ResamplerOption {
	return func(r *Resampler) {
		r.antiAlias = false
	}
}

func NewResampler(src Source, dstRate int, opts ...ResamplerOption) *Resampler {
	channels := src.Channels()

	r := &Resampler{
		src:          src,
		dstRate:      dstRate,
		playbackRate: 1,
		channels:     channels,
		srcBuf:       make([]float32, channels),
		antiAlias:    true,
		filterState:  make([]float32, channels),
	}
	for _, opt := range opts {
		opt(r)
	}

	if dstRate > 0 {
		r.ratio = float64(src.SampleRate()) / float64(dstRate) * r.playbackRate
	}
	r.useFilter = r.antiAlias && r.ratio > 1.0
	if r.useFilter {
		r.filterAlpha = 0.5
	}

	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int       { return r.dstRate }
func (r *Resampler) Channels() int         { return r.channels }
func (r *Resampler) BufSize() int          { return r.src.BufSize() }
func (r *Resampler) Ratio() float64        { return r.ratio }
func (r *Resampler) PlaybackRate() float64 { return r.playbackRate }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// fetch reads one source frame into dst. It reports false once the source
// is exhausted.
func (r *Resampler) fetch(dst []float32) (bool, error) {
	for !r.eof {
		n, err := r.src.ReadSamples(r.srcBuf)
		if err == io.EOF {
			r.eof = true
		} else if err != nil {
			return false, fmt.Errorf("%w", err)
		}

		if n >= r.channels {
			copy(dst, r.srcBuf)
			if r.useFilter {
				for c := range r.channels {
					// y[n] = alpha * x[n] + (1-alpha) * y[n-1]
					dst[c] = r.filterAlpha*dst[c] + (1-r.filterAlpha)*r.filterState[c]
					r.filterState[c] = dst[c]
				}
			}
			return true, nil
		}
	}
	return false, nil
}

func (r *Resampler) prime() error {
	r.primed = true

	// Seed the filter with the first frame to avoid a warm-up transient.
	ok, err := r.fetchFirst()
	if err != nil {
		return err
	}
	if !ok {
		r.done = true
		return nil
	}

	copy(r.frames[0], r.frames[1])
	r.hasFrame[0], r.hasFrame[1] = true, true

	for i := 2; i < 4; i++ {
		ok, err := r.fetch(r.frames[i])
		if err != nil {
			return err
		}
		r.hasFrame[i] = ok
	}
	return nil
}

func (r *Resampler) fetchFirst() (bool, error) {
	useFilter := r.useFilter
	r.useFilter = false
	ok, err := r.fetch(r.frames[1])
	r.useFilter = useFilter
	if ok {
		copy(r.filterState, r.frames[1])
	}
	return ok, err
}

// advance slides the window forward by one source frame.
func (r *Resampler) advance() error {
	r.frames[0], r.frames[1], r.frames[2], r.frames[3] = r.frames[1], r.frames[2], r.frames[3], r.frames[0]
	r.hasFrame[0], r.hasFrame[1], r.hasFrame[2] = r.hasFrame[1], r.hasFrame[2], r.hasFrame[3]

	ok := false
	if r.hasFrame[2] {
		var err error
		ok, err = r.fetch(r.frames[3])
		if err != nil {
			return err
		}
	}
	r.hasFrame[3] = ok

	if !r.hasFrame[1] {
		r.done = true
	}
	return nil
}

// ReadSamples produces dst samples at the destination rate.
// dst length should be a multiple of r.channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.ratio <= 0 {
		return 0, ErrInvalidRate
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for written < framesNeeded && !r.done {
		for r.pos >= 1.0 && !r.done {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}
		if r.done {
			break
		}

		alpha := float32(r.pos)
		for c := range r.channels {
			y0 := r.frames[0][c]
			y1 := r.frames[1][c]
			y2 := y1
			if r.hasFrame[2] {
				y2 = r.frames[2][c]
			}
			y3 := y2
			if r.hasFrame[3] {
				y3 = r.frames[3][c]
			}
			dst[written*r.channels+c] = utils.CubicInterpolate(y0, y1, y2, y3, alpha)
		}

		written++
		r.pos += r.ratio
	}

	if r.done {
		if written == 0 {
			return 0, io.EOF
		}
		return written * r.channels, io.EOF
	}
	return written * r.channels, nil
}
