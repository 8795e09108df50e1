// SPDX-License-Identifier: EPL-2.0

package transform

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParams indicates a parameter outside its accepted range.
	ErrInvalidParams = errors.New("invalid transform parameters")

	// ErrUnknownTarget indicates a Target other than Preview or Export.
	ErrUnknownTarget = errors.New("unknown render target")
)

// RenderError reports a failed or interrupted render. Op names the stage
// that failed.
type RenderError struct {
	Op  string
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Op, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
