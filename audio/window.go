// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// Window limits a source to a fixed number of frames. With pad set, a
// source that ends early is extended with silence so the window always
// yields exactly its frame count.
type Window struct {
	src       Source
	remaining int
	pad       bool
	srcDone   bool
}

func NewWindow(src Source, frames int, pad bool) *Window {
	return &Window{src: src, remaining: max(frames, 0), pad: pad}
}

func (w *Window) SampleRate() int { return w.src.SampleRate() }
func (w *Window) Channels() int   { return w.src.Channels() }
func (w *Window) BufSize() int    { return w.src.BufSize() }

func (w *Window) Close() error {
	if err := w.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// Remaining is the number of frames still to be produced.
func (w *Window) Remaining() int { return w.remaining }

func (w *Window) ReadSamples(dst []float32) (int, error) {
	channels := w.src.Channels()
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if w.remaining == 0 {
		return 0, io.EOF
	}

	want := min(len(dst)/channels, w.remaining) * channels
	n := 0

	if !w.srcDone {
		var err error
		n, err = w.src.ReadSamples(dst[:want])
		n -= n % channels
		if err == io.EOF {
			w.srcDone = true
		} else if err != nil {
			return 0, fmt.Errorf("%w", err)
		}
	}

	if w.srcDone && w.pad {
		clear(dst[n:want])
		n = want
	}

	w.remaining -= n / channels
	if w.remaining == 0 || (w.srcDone && !w.pad) {
		if n == 0 {
			return 0, io.EOF
		}
		return n, io.EOF
	}
	return n, nil
}
