package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/pedestrians/ecs"
	"github.com/milk9111/pedestrians/ecs/entity"
	"github.com/milk9111/pedestrians/ecs/system"
	"github.com/milk9111/pedestrians/ecs/system/draw"
	"github.com/milk9111/pedestrians/prefabs"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type Game struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	render    *draw.RenderSystem
	spawn     *system.SpawnSystem
	tuning    *system.Tuning

	navFile string
	watcher *prefabs.Watcher
}

func NewGame(townFile, navFile string, debug bool) (*Game, error) {
	system.SetDebug(debug)
	draw.SetDebug(debug)
	ecs.SetPhysicsDebug(debug)

	navSpec, err := prefabs.LoadNavigation(navFile)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	town, err := prefabs.LoadTown(townFile)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	w := ecs.NewWorld()
	if _, err := entity.BuildTown(w, town, true); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	g := &Game{
		world:   w,
		render:  draw.NewRenderSystem(),
		spawn:   system.NewSpawnSystem(),
		tuning:  system.NewTuning(navSpec.Params()),
		navFile: navFile,
	}

	g.scheduler = ecs.NewScheduler(draw.NewInputSystem())
	for _, s := range system.SimulationSystems(g.tuning, g.spawn) {
		g.scheduler.Add(s)
	}
	g.scheduler.Add(system.NewCameraSystem())
	g.scheduler.Add(g.render)

	watcher, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
	if err != nil {
		log.Printf("Game: hot reload disabled: %v", err)
	} else {
		g.watcher = watcher
	}

	log.Printf("Game: town %q with %d buildings", town.Name, len(town.Buildings))
	return g, nil
}

func (g *Game) Update() error {
	g.pollWatcher()
	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return baseWidth, baseHeight
	}
	return outsideWidth, outsideHeight
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(path)
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("Game: watcher: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reload(path string) {
	switch {
	case prefabs.Is(path, g.navFile):
		spec, err := prefabs.LoadNavigation(g.navFile)
		if err != nil {
			log.Printf("Game: reload %s: %v", path, err)
			return
		}
		g.tuning.Set(spec.Params())
		log.Printf("Game: reloaded navigation tuning from %s", path)
	case strings.HasSuffix(path, ".tengo"):
		g.spawn.ReloadScript()
		log.Printf("Game: spawn script %s changed", path)
	}
}
