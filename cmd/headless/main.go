// Command headless runs the town simulation without a window and prints
// navigation counters.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/milk9111/pedestrians/ecs"
	"github.com/milk9111/pedestrians/ecs/component"
	"github.com/milk9111/pedestrians/ecs/entity"
	"github.com/milk9111/pedestrians/ecs/system"
	"github.com/milk9111/pedestrians/prefabs"
)

func main() {
	ticks := flag.Int("ticks", 3600, "ticks to simulate (60 per second)")
	townFile := flag.String("town", prefabs.TownFile, "town prefab in prefabs/")
	navFile := flag.String("nav", prefabs.NavigationFile, "navigation tuning in prefabs/")
	seed := flag.Int64("seed", 0, "spawner seed; 0 keeps the town's")
	report := flag.Int("report", 600, "log a progress line every N ticks; 0 disables")
	debug := flag.Bool("debug", false, "log every plan")
	flag.Parse()

	system.SetDebug(*debug)

	navSpec, err := prefabs.LoadNavigation(*navFile)
	if err != nil {
		log.Fatal(err)
	}
	town, err := prefabs.LoadTown(*townFile)
	if err != nil {
		log.Fatal(err)
	}
	if *seed != 0 {
		town.Spawner.Seed = *seed
	}

	w := ecs.NewWorld()
	built, err := entity.BuildTown(w, town, false)
	if err != nil {
		log.Fatal(err)
	}

	scheduler := ecs.NewScheduler(system.SimulationSystems(system.NewTuning(navSpec.Params()), nil)...)
	for i := 1; i <= *ticks; i++ {
		scheduler.Update(w)
		if *report > 0 && i%*report == 0 {
			log.Printf("headless: tick=%d people=%d bodies=%d", i, len(w.Query(component.PersonComponent.Kind())), w.PhysicsWorld().Len())
		}
	}

	stats, ok := ecs.Get(w, built.Control, component.NavStatsComponent)
	if !ok {
		fmt.Fprintln(os.Stderr, "headless: no stats recorded")
		os.Exit(1)
	}
	fmt.Printf("town:       %s\n", town.Name)
	fmt.Printf("ticks:      %d\n", *ticks)
	fmt.Printf("spawned:    %d\n", stats.Spawned)
	fmt.Printf("plans:      %d\n", stats.PlansBuilt)
	fmt.Printf("arrived:    %d\n", stats.Despawned)
	fmt.Printf("replans:    %d\n", stats.Replans)
	fmt.Printf("no route:   %d\n", stats.NoRoutes)
	fmt.Printf("contacts:   %d\n", stats.Contacts)
	fmt.Printf("walking:    %d\n", len(w.Query(component.ActionPlanComponent.Kind())))
}
