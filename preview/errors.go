// SPDX-License-Identifier: EPL-2.0

package preview

import "errors"

var (
	// ErrClosed is returned by Play after the session has been closed.
	ErrClosed = errors.New("preview session closed")

	// ErrStopped is returned by Play when the handle was stopped before
	// playback could start.
	ErrStopped = errors.New("preview stopped before playback")

	errNoSource = errors.New("loader returned no source")
)
