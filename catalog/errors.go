// SPDX-License-Identifier: EPL-2.0

package catalog

import "errors"

var (
	ErrSoundNotFound = errors.New("sound not found")
	ErrInvalidSound  = errors.New("invalid sound")
	// ErrMixedSound is returned for a saved sound that carries both a
	// customization and layers.
	ErrMixedSound = errors.New("sound has both customization and layers")
)
