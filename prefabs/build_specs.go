package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec is a prefab: a name and one raw spec per component.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type PersonComponentSpec struct {
	WalkImpulse float64 `yaml:"walk_impulse"`
	BrakeFactor float64 `yaml:"brake_factor"`
}

type PhysicsBodyComponentSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Mass   float64 `yaml:"mass"`
	Static bool    `yaml:"static"`
}

type CameraComponentSpec struct {
	TargetName    string  `yaml:"target_name"`
	Zoom          float64 `yaml:"zoom"`
	MinZoom       float64 `yaml:"min_zoom"`
	MaxZoom       float64 `yaml:"max_zoom"`
	ZoomStep      float64 `yaml:"zoom_step"`
	PixelsPerUnit float64 `yaml:"pixels_per_unit"`
	Smoothness    float64 `yaml:"smoothness"`
}

type PathLineComponentSpec struct {
	Width float32    `yaml:"width"`
	Color *YAMLColor `yaml:"color"`
}
