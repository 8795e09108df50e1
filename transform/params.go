// SPDX-License-Identifier: EPL-2.0

package transform

import (
	"fmt"
	"math"
	"time"
)

// Parameter ranges accepted by Validate.
const (
	MinVolume   = 0.0
	MaxVolume   = 100.0
	MinPitch    = -24.0
	MaxPitch    = 24.0
	MinSpeed    = 50.0
	MaxSpeed    = 200.0
	MinDuration = 50.0
	MaxDuration = 200.0
)

// Params is an immutable snapshot of the user's transform settings.
// Volume, Speed and Duration are percentages; Pitch is in semitones.
type Params struct {
	Volume   float64 `json:"volume"`
	Pitch    float64 `json:"pitch"`
	Speed    float64 `json:"speed"`
	Duration float64 `json:"duration"`
}

// DefaultParams leaves a sound unchanged.
func DefaultParams() Params {
	return Params{Volume: 100, Pitch: 0, Speed: 100, Duration: 100}
}

func (p Params) Validate() error {
	checks := []struct {
		name     string
		v        float64
		min, max float64
	}{
		{"volume", p.Volume, MinVolume, MaxVolume},
		{"pitch", p.Pitch, MinPitch, MaxPitch},
		{"speed", p.Speed, MinSpeed, MaxSpeed},
		{"duration", p.Duration, MinDuration, MaxDuration},
	}
	for _, c := range checks {
		if math.IsNaN(c.v) || c.v < c.min || c.v > c.max {
			return fmt.Errorf("%w: %s %v outside [%v, %v]", ErrInvalidParams, c.name, c.v, c.min, c.max)
		}
	}
	return nil
}

// Gain is the linear amplitude factor, volume/100.
func (p Params) Gain() float32 { return float32(p.Volume / 100) }

// PitchRatio is 2^(pitch/12).
func (p Params) PitchRatio() float64 { return math.Pow(2, p.Pitch/12) }

// PlaybackRate combines pitch and speed into the single rate the source
// is read at. Changing pitch therefore also changes tempo.
func (p Params) PlaybackRate() float64 { return p.PitchRatio() * p.Speed / 100 }

// RenderFrames is the exact export length for a source of n frames,
// ceil(n * duration/100).
func (p Params) RenderFrames(n int) int {
	return int(math.Ceil(float64(n) * p.Duration / 100))
}

// PreviewWindow is how long a preview of a sound lasting d stays audible.
func (p Params) PreviewWindow(d time.Duration) time.Duration {
	return time.Duration(math.Round(float64(d) * p.Duration / 100))
}

// Clamp pulls every field into its valid range. A NaN field takes its
// default value.
func (p Params) Clamp() Params {
	d := DefaultParams()
	return Params{
		Volume:   clampField(p.Volume, MinVolume, MaxVolume, d.Volume),
		Pitch:    clampField(p.Pitch, MinPitch, MaxPitch, d.Pitch),
		Speed:    clampField(p.Speed, MinSpeed, MaxSpeed, d.Speed),
		Duration: clampField(p.Duration, MinDuration, MaxDuration, d.Duration),
	}
}

func clampField(v, lo, hi, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	return min(max(v, lo), hi)
}
