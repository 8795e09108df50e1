// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Gain multiplies every sample by a constant linear factor.
// It does not clip; clamping belongs to the quantisation step.
type Gain struct {
	src  Source
	gain float32
}

func NewGain(src Source, gain float32) *Gain {
	return &Gain{src: src, gain: gain}
}

func (g *Gain) SampleRate() int { return g.src.SampleRate() }
func (g *Gain) Channels() int   { return g.src.Channels() }
func (g *Gain) BufSize() int    { return g.src.BufSize() }
func (g *Gain) Factor() float32 { return g.gain }

func (g *Gain) Close() error {
	if err := g.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (g *Gain) ReadSamples(dst []float32) (int, error) {
	n, err := g.src.ReadSamples(dst)
	if g.gain != 1 {
		for i := range n {
			dst[i] *= g.gain
		}
	}
	return n, err
}
