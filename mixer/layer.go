// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/ik5/sfxkit/audio"
)

const (
	DefaultSampleRate = 44100
	DefaultSafetyTail = 2 * time.Second

	// Channels is the fixed output channel count.
	Channels = 2
)

// Layer places one decoded buffer on the mix timeline.
type Layer struct {
	// ID identifies the layer in errors; it does not affect the mix.
	ID     string
	Buffer *audio.Buffer
	// Volume is a percentage, 0 to 100.
	Volume float64
	// Delay is the start offset in seconds.
	Delay float64
}

// Options control the output format of a mix.
type Options struct {
	SampleRate int
	// SafetyTail is silence appended after the latest-starting layer. It
	// is a fixed allowance for decay and does not inspect the audio.
	SafetyTail time.Duration
}

func DefaultOptions() Options {
	return Options{SampleRate: DefaultSampleRate, SafetyTail: DefaultSafetyTail}
}

func (o Options) validate() error {
	if o.SampleRate <= 0 || o.SafetyTail < 0 {
		return fmt.Errorf("%w: %d Hz, tail %v", ErrInvalidOptions, o.SampleRate, o.SafetyTail)
	}
	return nil
}

func (l Layer) validate() error {
	if err := l.Buffer.Validate(); err != nil {
		return err
	}
	if math.IsNaN(l.Volume) || l.Volume < 0 || l.Volume > 100 {
		return fmt.Errorf("%w: volume %v", ErrInvalidLayer, l.Volume)
	}
	if math.IsNaN(l.Delay) || math.IsInf(l.Delay, 0) || l.Delay < 0 {
		return fmt.Errorf("%w: delay %v", ErrInvalidLayer, l.Delay)
	}
	return nil
}

// track is a layer converted to the mix format and placed on the timeline.
type track struct {
	start int
	gain  float32
	data  [Channels][]float32
}

func (t *track) frames() int { return len(t.data[0]) }
func (t *track) end() int    { return t.start + t.frames() }

// prepare resamples l to the mix rate and maps it to stereo. Mono is
// duplicated to both sides; wider layouts are averaged to mono first.
func prepare(l Layer, rate int) (*track, error) {
	var src audio.Source = l.Buffer.Source()
	if l.Buffer.SampleRate != rate {
		src = audio.NewResampler(src, rate)
	}
	if src.Channels() != Channels {
		src = audio.NewStereoMixer(src)
	}

	buf, err := audio.ReadAll(src)
	if err != nil {
		return nil, err
	}

	t := &track{
		start: int(math.Round(l.Delay * float64(rate))),
		gain:  float32(l.Volume / 100),
	}
	copy(t.data[:], buf.Data)
	return t, nil
}

// compareTracks defines the canonical summation order. Two tracks that
// compare equal contribute identical samples, so their relative order
// cannot change the result.
func compareTracks(a, b *track) int {
	if c := cmp.Compare(a.start, b.start); c != 0 {
		return c
	}
	if c := cmp.Compare(a.gain, b.gain); c != 0 {
		return c
	}
	if c := cmp.Compare(a.frames(), b.frames()); c != 0 {
		return c
	}
	for ch := range Channels {
		if c := slices.Compare(a.data[ch], b.data[ch]); c != 0 {
			return c
		}
	}
	return 0
}

// length is round(maxDelay*rate) + frames(latest layer) + tail. The latest
// layer is the one with the greatest delay; ties go to the longest.
func length(tracks []*track, opts Options) int {
	var latest *track
	for _, t := range tracks {
		if latest == nil || t.start > latest.start || (t.start == latest.start && t.frames() > latest.frames()) {
			latest = t
		}
	}
	tail := int(math.Round(opts.SafetyTail.Seconds() * float64(opts.SampleRate)))
	return latest.end() + tail
}
