// SPDX-License-Identifier: EPL-2.0

package transform

// Variants returns n parameter sets scattered subtly around base: a
// semitone of pitch and a few percent of volume, speed and duration.
// Variant i takes step i%3 of every field, so variant 1 (and every third
// after it) is the base itself. Results are clamped to the valid ranges.
func Variants(base Params, n int) []Params {
	pitch := [3]float64{-1, 0, 1}
	duration := [3]float64{0.95, 1, 1.05}
	volume := [3]float64{0.9, 1, 1.1}
	speed := [3]float64{0.95, 1, 1.05}

	out := make([]Params, 0, max(n, 0))
	for i := range max(n, 0) {
		k := i % 3
		out = append(out, Params{
			Volume:   base.Volume * volume[k],
			Pitch:    base.Pitch + pitch[k],
			Speed:    base.Speed * speed[k],
			Duration: base.Duration * duration[k],
		}.Clamp())
	}
	return out
}
