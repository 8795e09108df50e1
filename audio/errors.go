// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize  = errors.New("dst size must be multiple of channels")
	ErrInvalidBuffer   = errors.New("invalid audio buffer")
	ErrInvalidRate     = errors.New("invalid sample or playback rate")
	ErrInvalidChannels = errors.New("invalid channel count")
)
