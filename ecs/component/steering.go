package component

import "github.com/milk9111/pedestrians/nav"

// Steering holds this tick's steering output for an agent.
type Steering struct {
	nav.Steering
}

var SteeringComponent = NewComponent[Steering]()
