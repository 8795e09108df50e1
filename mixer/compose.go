// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ik5/sfxkit/audio"
)

// DefaultWorkers bounds concurrent layer decoding in Compose.
const DefaultWorkers = 4

// Decoder loads a layer's source audio.
type Decoder interface {
	Decode(ctx context.Context, locator string) (*audio.Buffer, error)
}

// Spec is a layer that still has to be decoded.
type Spec struct {
	ID      string
	Locator string
	Volume  float64
	Delay   float64
}

// DecodeLayers decodes every spec, at most workers at a time. When several
// layers fail the lowest index is reported, so the error does not depend
// on scheduling.
func DecodeLayers(ctx context.Context, dec Decoder, specs []Spec, workers int) ([]Layer, error) {
	if len(specs) == 0 {
		return nil, ErrNoLayers
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}

	layers := make([]Layer, len(specs))
	errs := make([]error, len(specs))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, spec := range specs {
		g.Go(func() error {
			buf, err := dec.Decode(ctx, spec.Locator)
			if err != nil {
				errs[i] = err
				return nil
			}
			layers[i] = Layer{ID: spec.ID, Buffer: buf, Volume: spec.Volume, Delay: spec.Delay}
			return nil
		})
	}
	_ = g.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, &MixError{Index: i, ID: specs[i].ID, Err: err}
		}
	}
	return layers, nil
}

// Compose decodes every spec and mixes the result. Any failed layer fails
// the whole mix.
func Compose(ctx context.Context, dec Decoder, specs []Spec, opts Options, workers int) (*audio.Buffer, error) {
	layers, err := DecodeLayers(ctx, dec, specs, workers)
	if err != nil {
		return nil, err
	}
	return Mix(ctx, layers, opts)
}
