package entity

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/milk9111/pedestrians/ecs"
	"github.com/milk9111/pedestrians/ecs/component"
	"github.com/milk9111/pedestrians/prefabs"
)

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":   addPlayerTag,
	"camera_tag":   addCameraTag,
	"input":        addInput,
	"transform":    addTransform,
	"person":       addPerson,
	"physics_body": addPhysicsBody,
	"camera":       addCamera,
	"path_line":    addPathLine,
}

// physics_body comes after transform so the body spawns where the entity is.
var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"input",
	"transform",
	"person",
	"camera",
	"path_line",
	"physics_body",
}

// BuildEntity creates an entity from a prefab file. Components listed in
// componentBuildOrder are added first, in that order; the rest follow
// alphabetically.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	names := make([]string, 0, len(remaining))
	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; ok {
			names = append(names, name)
		}
	}
	var rest []string
	for name := range remaining {
		if !contains(componentBuildOrder, name) {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	names = append(names, rest...)

	for _, name := range names {
		builder, ok := componentRegistry[name]
		if !ok {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, remaining[name]); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// SetEntityTransform moves e, and its physics body when it has one.
func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.X = x
	t.Y = y
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok && body.Body != nil && !body.Static {
		body.Body.SetPosition(t.Position())
	}
	if cam, ok := ecs.Get(w, e, component.CameraComponent); ok {
		cam.X, cam.Y = x, y
	}
	return ecs.Add(w, e, component.TransformComponent, t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any) error {
	return ecs.Add(w, e, component.PlayerTagComponent, &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any) error {
	return ecs.Add(w, e, component.CameraTagComponent, &component.CameraTag{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any) error {
	return ecs.Add(w, e, component.InputComponent, &component.Input{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent, &component.Transform{X: spec.X, Y: spec.Y})
}

func addPerson(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PersonComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode person spec: %w", err)
	}
	return ecs.Add(w, e, component.PersonComponent, &component.Person{
		WalkImpulse: spec.WalkImpulse,
		BrakeFactor: spec.BrakeFactor,
	})
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics_body spec: %w", err)
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("physics_body: size %vx%v", spec.Width, spec.Height)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent, &component.PhysicsBody{
		Width:  spec.Width,
		Height: spec.Height,
		Mass:   spec.Mass,
		Static: spec.Static,
	}); err != nil {
		return err
	}
	return AttachBody(w, e)
}

func addCamera(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}

	cam := &component.Camera{
		TargetName:    spec.TargetName,
		Zoom:          spec.Zoom,
		MinZoom:       spec.MinZoom,
		MaxZoom:       spec.MaxZoom,
		ZoomStep:      spec.ZoomStep,
		PixelsPerUnit: spec.PixelsPerUnit,
		Smoothness:    spec.Smoothness,
	}
	if cam.Zoom <= 0 {
		cam.Zoom = 1
	}
	if cam.MinZoom <= 0 {
		cam.MinZoom = 0.2
	}
	if cam.MaxZoom < cam.MinZoom {
		cam.MaxZoom = cam.MinZoom
	}
	if cam.ZoomStep <= 0 {
		cam.ZoomStep = 0.2
	}
	if cam.PixelsPerUnit <= 0 {
		cam.PixelsPerUnit = 4
	}
	if cam.Smoothness <= 0 {
		cam.Smoothness = 0.15
	}
	return ecs.Add(w, e, component.CameraComponent, cam)
}

func addPathLine(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PathLineComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode path_line spec: %w", err)
	}
	width := spec.Width
	if width <= 0 {
		width = 1
	}
	return ecs.Add(w, e, component.PathLineComponent, &component.PathLine{
		Width: width,
		Color: spec.Color.Or(color.NRGBA{R: 255, G: 210, B: 74, A: 255}),
	})
}
