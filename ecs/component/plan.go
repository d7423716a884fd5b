package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/pedestrians/nav"
)

// Target asks the planner for a route to Goal. It is removed once a plan
// exists or the goal proved unreachable.
type Target struct {
	Goal cp.Vector
}

var TargetComponent = NewComponent[Target]()

// ActionPlan owns an agent's current plan.
type ActionPlan struct {
	Plan     *nav.ActionPlan
	Goal     cp.Vector
	Rebuilds int
}

var ActionPlanComponent = NewComponent[ActionPlan]()

// Replan marks an agent whose current leg is blocked.
type Replan struct{}

var ReplanComponent = NewComponent[Replan]()
