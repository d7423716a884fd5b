package component

type Camera struct {
	TargetName string
	X          float64
	Y          float64
	Zoom       float64
	MinZoom    float64
	MaxZoom    float64
	ZoomStep   float64
	// PixelsPerUnit maps town units to screen pixels at zoom 1.
	PixelsPerUnit float64
	Smoothness    float64
}

var CameraComponent = NewComponent[Camera]()
