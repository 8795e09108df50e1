// SPDX-License-Identifier: EPL-2.0

package decode

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat indicates bytes that match no registered container.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrTooLarge indicates a resource larger than the configured limit.
	ErrTooLarge = errors.New("audio resource too large")

	// ErrEmptyAudio indicates a container that decoded to zero frames.
	ErrEmptyAudio = errors.New("audio resource has no frames")

	// ErrUnreachable indicates the locator could not be fetched.
	ErrUnreachable = errors.New("audio resource unreachable")

	// ErrInvalidLocator indicates a locator with an unknown scheme or no path.
	ErrInvalidLocator = errors.New("invalid audio locator")
)

// DecodeError reports a failed decode together with the locator that
// caused it.
type DecodeError struct {
	Locator string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q: %v", e.Locator, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
