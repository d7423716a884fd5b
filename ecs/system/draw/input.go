package draw

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/pedestrians/ecs"
	"github.com/milk9111/pedestrians/ecs/component"
)

type InputSystem struct{}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	const stickDeadzone = 0.2

	moveX, moveY := 0.0, 0.0
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		moveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		moveY += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		moveY -= 1
	}
	zoomIn := inpututil.IsKeyJustPressed(ebiten.KeyJ)
	zoomOut := inpututil.IsKeyJustPressed(ebiten.KeyK)
	togglePaths := inpututil.IsKeyJustPressed(ebiten.KeyP)

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		leftY := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(leftX, leftY) > stickDeadzone {
			// stick Y points down
			moveX, moveY = leftX, -leftY
		}
		zoomIn = zoomIn || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontTopRight)
		zoomOut = zoomOut || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontTopLeft)
	}

	ecs.ForEach(w, component.InputComponent, func(_ ecs.Entity, input *component.Input) {
		input.MoveX = moveX
		input.MoveY = moveY
		input.ZoomIn = zoomIn
		input.ZoomOut = zoomOut
		input.TogglePaths = togglePaths
	})
}
