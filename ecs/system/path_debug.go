package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/pedestrians/ecs"
	"github.com/milk9111/pedestrians/ecs/component"
)

// PathDebugSystem fills each agent's PathLine with its position followed by
// the waypoints still ahead.
type PathDebugSystem struct{}

func NewPathDebugSystem() *PathDebugSystem {
	return &PathDebugSystem{}
}

func (s *PathDebugSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.PathLineComponent, component.TransformComponent, func(e ecs.Entity, line *component.PathLine, t *component.Transform) {
		line.Points = line.Points[:0]
		ap, ok := ecs.Get(w, e, component.ActionPlanComponent)
		if !ok {
			return
		}
		waypoints := ap.Plan.Waypoints()
		if len(waypoints) == 0 {
			return
		}
		line.Points = append(line.Points, cp.Vector{X: t.X, Y: t.Y})
		line.Points = append(line.Points, waypoints...)
	})
}
