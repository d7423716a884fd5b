package component

// Input stores per-frame input state.
type Input struct {
	MoveX       float64
	MoveY       float64
	ZoomIn      bool
	ZoomOut     bool
	TogglePaths bool
}

var InputComponent = NewComponent[Input]()
