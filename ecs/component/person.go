package component

import "github.com/milk9111/pedestrians/nav"

// Person is a walking agent. State is written by plan execution (or by
// the player's input) and read by steering and movement.
type Person struct {
	State       nav.NavState
	WalkImpulse float64
	BrakeFactor float64
}

var PersonComponent = NewComponent[Person]()
