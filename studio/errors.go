// SPDX-License-Identifier: EPL-2.0

package studio

import "errors"

var (
	// ErrNoUser is returned by save and delete calls without a user.
	ErrNoUser = errors.New("no signed-in user")

	// ErrNoSession is returned by preview calls on a Studio built without
	// a preview session.
	ErrNoSession = errors.New("no preview session")
)
