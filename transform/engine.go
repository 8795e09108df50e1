// SPDX-License-Identifier: EPL-2.0

package transform

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/ik5/sfxkit/audio"
	"github.com/ik5/sfxkit/formats/wav"
)

// Target selects between live playback and offline rendering.
type Target int

const (
	Preview Target = iota
	Export
)

func (t Target) String() string {
	switch t {
	case Preview:
		return "preview"
	case Export:
		return "export"
	default:
		return fmt.Sprintf("Target(%d)", int(t))
	}
}

// Rendered is the result of Apply. Export results carry Buffer; preview
// results carry Stream, which plays for Window before ending on its own.
type Rendered struct {
	Target Target
	Buffer *audio.Buffer
	Stream audio.Source
	Window time.Duration
}

// Device describes the output a preview stream is built for.
type Device struct {
	SampleRate int
	Channels   int
}

// Apply transforms buf for target. dev is only used for Preview.
func Apply(ctx context.Context, buf *audio.Buffer, p Params, target Target, dev Device) (*Rendered, error) {
	switch target {
	case Export:
		out, err := Render(ctx, buf, p)
		if err != nil {
			return nil, err
		}
		return &Rendered{Target: Export, Buffer: out, Window: out.Duration()}, nil
	case Preview:
		src, window, err := Stream(buf, p, dev)
		if err != nil {
			return nil, err
		}
		return &Rendered{Target: Preview, Stream: src, Window: window}, nil
	default:
		return nil, &RenderError{Op: "apply", Err: fmt.Errorf("%w: %d", ErrUnknownTarget, int(target))}
	}
}

// graph wires buffer -> playback-rate resampler -> gain. The same graph
// feeds both targets.
func graph(buf *audio.Buffer, p Params, sampleRate int) audio.Source {
	rs := audio.NewResampler(buf.Source(), sampleRate, audio.WithPlaybackRate(p.PlaybackRate()))
	return audio.NewGain(rs, p.Gain())
}

func check(op string, buf *audio.Buffer, p Params) error {
	if err := buf.Validate(); err != nil {
		return &RenderError{Op: op, Err: err}
	}
	if err := p.Validate(); err != nil {
		return &RenderError{Op: op, Err: err}
	}
	return nil
}

// Render computes the complete export rendering of buf at its own sample
// rate and channel count. The result is exactly p.RenderFrames(buf.Frames())
// frames long: content that runs longer is cut and content that ends
// early is followed by silence. Samples are not clipped here.
func Render(ctx context.Context, buf *audio.Buffer, p Params) (*audio.Buffer, error) {
	if err := check("export", buf, p); err != nil {
		return nil, err
	}

	src := &ctxSource{Source: graph(buf, p, buf.SampleRate), ctx: ctx}
	out, err := audio.ReadFrames(src, p.RenderFrames(buf.Frames()))
	if err != nil {
		return nil, &RenderError{Op: "export", Err: err}
	}
	return out, nil
}

// Stream builds the live preview graph for dev. The stream ends after the
// preview window, p.PreviewWindow of the source duration, counted in
// device frames.
func Stream(buf *audio.Buffer, p Params, dev Device) (audio.Source, time.Duration, error) {
	if err := check("preview", buf, p); err != nil {
		return nil, 0, err
	}
	if dev.SampleRate <= 0 || dev.Channels <= 0 {
		return nil, 0, &RenderError{Op: "preview", Err: fmt.Errorf("%w: %d Hz, %d channels", audio.ErrInvalidRate, dev.SampleRate, dev.Channels)}
	}

	window := p.PreviewWindow(buf.Duration())
	frames := int(math.Round(window.Seconds() * float64(dev.SampleRate)))

	var src audio.Source = graph(buf, p, dev.SampleRate)
	if src.Channels() != dev.Channels {
		src = audio.NewChannelMixer(src, dev.Channels)
	}
	return audio.NewWindow(src, frames, false), window, nil
}

// EncodeWAV renders buf and encodes it as 16-bit PCM WAV in memory.
func EncodeWAV(ctx context.Context, buf *audio.Buffer, p Params) ([]byte, error) {
	out, err := Render(ctx, buf, p)
	if err != nil {
		return nil, err
	}
	data, err := wav.EncodeBytes(out)
	if err != nil {
		return nil, &RenderError{Op: "encode", Err: err}
	}
	return data, nil
}

// ExportWAV renders and encodes buf completely before writing anything to
// w, so a failed render never leaves a partial file behind.
func ExportWAV(ctx context.Context, buf *audio.Buffer, p Params, w io.Writer) error {
	data, err := EncodeWAV(ctx, buf, p)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		return &RenderError{Op: "write", Err: err}
	}
	return nil
}

// ctxSource stops a render when its context is done.
type ctxSource struct {
	audio.Source
	ctx context.Context
}

func (s *ctxSource) ReadSamples(dst []float32) (int, error) {
	if err := s.ctx.Err(); err != nil {
		return 0, err
	}
	return s.Source.ReadSamples(dst)
}
