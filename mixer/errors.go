// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"errors"
	"fmt"
)

var (
	// ErrNoLayers indicates a mix without any layer.
	ErrNoLayers = errors.New("no layers to mix")

	// ErrInvalidLayer indicates a layer with an out of range volume or delay.
	ErrInvalidLayer = errors.New("invalid layer")

	// ErrInvalidOptions indicates a non-positive sample rate or negative tail.
	ErrInvalidOptions = errors.New("invalid mix options")
)

// MixError reports the layer that aborted a mix. Index is the layer's
// position in the caller's list.
type MixError struct {
	Index int
	ID    string
	Err   error
}

func (e *MixError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("mix layer %d (%s): %v", e.Index, e.ID, e.Err)
	}
	return fmt.Sprintf("mix layer %d: %v", e.Index, e.Err)
}

func (e *MixError) Unwrap() error { return e.Err }
