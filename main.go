package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/pedestrians/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "log every plan and physics contact")
	townFile := flag.String("town", prefabs.TownFile, "town prefab in prefabs/")
	navFile := flag.String("nav", prefabs.NavigationFile, "navigation tuning in prefabs/")
	flag.Parse()

	game, err := NewGame(*townFile, *navFile, *debug)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("pedestrians")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
