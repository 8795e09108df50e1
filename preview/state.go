// SPDX-License-Identifier: EPL-2.0

package preview

import "fmt"

// State of one preview handle. Every handle moves Idle -> Loading -> Armed
// -> Playing and back to Idle; any failure or stop returns it to Idle.
type State int

const (
	Idle State = iota
	Loading
	Armed
	Playing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Armed:
		return "armed"
	case Playing:
		return "playing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
