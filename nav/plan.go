package nav

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

type ActionKind int

const (
	ActionGoTo ActionKind = iota
	ActionDespawn
)

func (k ActionKind) String() string {
	switch k {
	case ActionGoTo:
		return "GoTo"
	case ActionDespawn:
		return "Despawn"
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

// Action is one step of a plan. Target is only meaningful for GoTo.
type Action struct {
	Kind   ActionKind
	Target cp.Vector
}

func GoTo(p cp.Vector) Action {
	return Action{Kind: ActionGoTo, Target: p}
}

func Despawn() Action {
	return Action{Kind: ActionDespawn}
}

func (a Action) String() string {
	if a.Kind == ActionGoTo {
		return fmt.Sprintf("GoTo(%.2f, %.2f)", a.Target.X, a.Target.Y)
	}
	return a.Kind.String()
}

// ActionPlan is an ordered list of actions and a cursor into it. The cursor
// only moves forward and stops at len(steps), at which point the plan has no
// current action. Plans are never edited in place; a replan builds a new one.
type ActionPlan struct {
	steps  []Action
	cursor int
}

// NewActionPlan copies steps into a plan positioned at the first action.
func NewActionPlan(steps ...Action) *ActionPlan {
	return &ActionPlan{steps: append([]Action(nil), steps...)}
}

// Current returns the action under the cursor.
func (p *ActionPlan) Current() (Action, bool) {
	if p == nil || p.cursor >= len(p.steps) {
		return Action{}, false
	}
	return p.steps[p.cursor], true
}

// Peek returns the action after the current one.
func (p *ActionPlan) Peek() (Action, bool) {
	if p == nil || p.cursor+1 >= len(p.steps) {
		return Action{}, false
	}
	return p.steps[p.cursor+1], true
}

// Next moves the cursor forward by one, never past the end.
func (p *ActionPlan) Next() {
	if p == nil || p.cursor >= len(p.steps) {
		return
	}
	p.cursor++
}

// Finish moves the cursor to the end.
func (p *ActionPlan) Finish() {
	if p == nil {
		return
	}
	p.cursor = len(p.steps)
}

func (p *ActionPlan) Cursor() int {
	if p == nil {
		return 0
	}
	return p.cursor
}

func (p *ActionPlan) Len() int {
	if p == nil {
		return 0
	}
	return len(p.steps)
}

// Exhausted reports whether the plan has no current action.
func (p *ActionPlan) Exhausted() bool {
	return p == nil || p.cursor >= len(p.steps)
}

// Remaining returns a copy of the actions from the cursor on.
func (p *ActionPlan) Remaining() []Action {
	if p.Exhausted() {
		return nil
	}
	return append([]Action(nil), p.steps[p.cursor:]...)
}

// Waypoints returns the GoTo targets still ahead, including the current one.
func (p *ActionPlan) Waypoints() []cp.Vector {
	var out []cp.Vector
	for _, a := range p.Remaining() {
		if a.Kind == ActionGoTo {
			out = append(out, a.Target)
		}
	}
	return out
}

// Goal returns the last GoTo target of the whole plan.
func (p *ActionPlan) Goal() (cp.Vector, bool) {
	if p == nil {
		return cp.Vector{}, false
	}
	for i := len(p.steps) - 1; i >= 0; i-- {
		if p.steps[i].Kind == ActionGoTo {
			return p.steps[i].Target, true
		}
	}
	return cp.Vector{}, false
}

func (p *ActionPlan) String() string {
	if p == nil {
		return "<nil plan>"
	}
	return fmt.Sprintf("plan[%d/%d]%v", p.cursor, len(p.steps), p.steps)
}

// NavMode is what an agent is doing with its legs.
type NavMode int

const (
	Standing NavMode = iota
	Walking
)

func (m NavMode) String() string {
	if m == Walking {
		return "Walking"
	}
	return "Standing"
}

// NavState is the navigation state the executor writes for an agent.
// Direction is unit length or zero and only meaningful while walking.
type NavState struct {
	Mode      NavMode
	Direction cp.Vector
}

func StandingState() NavState {
	return NavState{Mode: Standing}
}

func WalkingState(dir cp.Vector) NavState {
	return NavState{Mode: Walking, Direction: dir}
}
