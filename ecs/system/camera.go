package system

import (
	"math"

	"github.com/milk9111/pedestrians/common"
	"github.com/milk9111/pedestrians/ecs"
	"github.com/milk9111/pedestrians/ecs/component"
)

// CameraSystem applies zoom input and eases the camera towards its target.
type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if !cs.camEntity.Valid() || !w.IsAlive(cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
	}
	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent)
	if !ok {
		return
	}

	ecs.ForEach(w, component.InputComponent, func(_ ecs.Entity, input *component.Input) {
		if input.ZoomIn {
			cam.Zoom = stepZoom(cam, 1)
		}
		if input.ZoomOut {
			cam.Zoom = stepZoom(cam, -1)
		}
	})

	if !cs.targetEntity.Valid() || !w.IsAlive(cs.targetEntity) {
		cs.targetEntity = findEntityByNameOrTag(w, cam.TargetName)
	}
	target, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent)
	if !ok {
		return
	}

	cam.X = common.Lerp(cam.X, target.X, cam.Smoothness)
	cam.Y = common.Lerp(cam.Y, target.Y, cam.Smoothness)
	if t, ok := ecs.Get(w, cs.camEntity, component.TransformComponent); ok {
		t.X, t.Y = cam.X, cam.Y
	}
}

// stepZoom moves the zoom one step in dir and snaps it to the step grid so
// repeated presses do not drift.
func stepZoom(cam *component.Camera, dir float64) float64 {
	z := cam.Zoom + dir*cam.ZoomStep
	z = math.Round(z/cam.ZoomStep) * cam.ZoomStep
	return math.Max(cam.MinZoom, math.Min(cam.MaxZoom, z))
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	switch name {
	case "player":
		if e, ok := w.First(component.PlayerTagComponent.Kind()); ok {
			return e
		}
	}
	return 0
}
