package draw

import (
	"bytes"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/pedestrians/ecs"
	"github.com/milk9111/pedestrians/ecs/component"
	"github.com/milk9111/pedestrians/nav"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/gofont/goregular"
)

const doorSize = 1.5

// RenderSystem draws the town from the camera's point of view. World Y
// points up, screen Y points down.
type RenderSystem struct {
	camEntity ecs.Entity
	showPaths bool
	face      text.Face
}

func NewRenderSystem() *RenderSystem {
	r := &RenderSystem{showPaths: true}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Printf("RenderSystem: font load failed, falling back to debug text: %v", err)
		return r
	}
	r.face = &text.GoTextFace{Source: src, Size: 14}
	return r
}

// Update only handles the path overlay toggle; drawing happens in Draw.
func (r *RenderSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.InputComponent, func(_ ecs.Entity, input *component.Input) {
		if input.TogglePaths {
			r.showPaths = !r.showPaths
		}
	})
}

type view struct {
	camX, camY float64
	scale      float64
	halfW      float64
	halfH      float64
}

func (v view) toScreen(p cp.Vector) (float32, float32) {
	return float32((p.X-v.camX)*v.scale + v.halfW), float32(v.halfH - (p.Y-v.camY)*v.scale)
}

func (v view) rect(b nav.AABB) (x, y, w, h float32) {
	x, y = v.toScreen(cp.Vector{X: b.MinX, Y: b.MaxY})
	return x, y, float32((b.MaxX - b.MinX) * v.scale), float32((b.MaxY - b.MinY) * v.scale)
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil {
		return
	}
	screen.Fill(colornames.Darkolivegreen)

	if !r.camEntity.Valid() || !w.IsAlive(r.camEntity) {
		if camEntity, ok := w.First(component.CameraComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}
	bounds := screen.Bounds()
	v := view{scale: 4, halfW: float64(bounds.Dx()) / 2, halfH: float64(bounds.Dy()) / 2}
	if cam, ok := ecs.Get(w, r.camEntity, component.CameraComponent); ok {
		v.camX, v.camY = cam.X, cam.Y
		v.scale = cam.PixelsPerUnit * cam.Zoom
	}

	ecs.ForEach(w, component.RoadComponent, func(_ ecs.Entity, road *component.Road) {
		r.drawPolyline(screen, v, road.Points, road.Loop, float32(road.Width*v.scale), colornames.Dimgray)
	})

	ecs.ForEach(w, component.BuildingComponent, func(_ ecs.Entity, b *component.Building) {
		x, y, bw, bh := v.rect(b.Bounds)
		vector.FillRect(screen, x, y, bw, bh, b.Color, false)
		vector.StrokeRect(screen, x, y, bw, bh, 1, colornames.Black, false)
		for _, d := range b.Doors {
			half := nav.Box{HalfW: doorSize / 2, HalfH: doorSize / 2}
			dx, dy, dw, dh := v.rect(nav.BoxAt(d.Position, half))
			vector.FillRect(screen, dx, dy, dw, dh, colornames.Gold, false)
		}
		if r.face != nil && b.Name != "" {
			op := &text.DrawOptions{}
			op.GeoM.Translate(float64(x)+4, float64(y)+4)
			op.ColorScale.ScaleWithColor(colornames.Black)
			text.Draw(screen, b.Name, r.face, op)
		}
	})

	if r.showPaths {
		ecs.ForEach(w, component.PathLineComponent, func(_ ecs.Entity, line *component.PathLine) {
			r.drawPolyline(screen, v, line.Points, false, line.Width, line.Color)
		})
	}

	ecs.ForEach2(w, component.PersonComponent, component.PhysicsBodyComponent, func(e ecs.Entity, _ *component.Person, body *component.PhysicsBody) {
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			return
		}
		var clr color.Color = colornames.Lightskyblue
		if ecs.Has(w, e, component.PlayerTagComponent) {
			clr = colornames.Crimson
		}
		half := nav.Box{HalfW: body.Width / 2, HalfH: body.Height / 2}
		x, y, pw, ph := v.rect(nav.BoxAt(t.Position(), half))
		vector.FillRect(screen, x, y, pw, ph, clr, true)
	})

	if debugEnabled {
		drawPhysicsDebug(screen, v, w.PhysicsWorld())
	}

	r.drawStats(w, screen)
}

func (r *RenderSystem) drawPolyline(screen *ebiten.Image, v view, points []cp.Vector, loop bool, width float32, clr color.Color) {
	if len(points) < 2 || clr == nil {
		return
	}
	if width < 1 {
		width = 1
	}
	n := len(points) - 1
	if loop {
		n = len(points)
	}
	for i := 0; i < n; i++ {
		x0, y0 := v.toScreen(points[i])
		x1, y1 := v.toScreen(points[(i+1)%len(points)])
		vector.StrokeLine(screen, x0, y0, x1, y1, width, clr, true)
	}
}

func (r *RenderSystem) drawStats(w *ecs.World, screen *ebiten.Image) {
	e, ok := w.First(component.NavStatsComponent.Kind())
	if !ok {
		return
	}
	stats, _ := ecs.Get(w, e, component.NavStatsComponent)
	people := len(w.Query(component.PersonComponent.Kind()))
	msg := fmt.Sprintf("people %d  spawned %d  arrived %d  replans %d  no route %d  contacts %d\nTPS %0.1f  arrows move, J/K zoom, P paths",
		people, stats.Spawned, stats.Despawned, stats.Replans, stats.NoRoutes, stats.Contacts, ebiten.ActualTPS())
	if r.face == nil {
		ebitenutil.DebugPrintAt(screen, msg, 8, 8)
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(8, 8)
	op.LineSpacing = 18
	op.ColorScale.ScaleWithColor(colornames.White)
	text.Draw(screen, msg, r.face, op)
}
