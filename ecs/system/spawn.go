package system

import (
	"log"
	"math/rand"
	"time"

	"github.com/milk9111/pedestrians/ecs"
	"github.com/milk9111/pedestrians/ecs/component"
	"github.com/milk9111/pedestrians/ecs/entity"
)

// SpawnSystem walks a new person out of a building door every spawner
// interval, heading for another door. The door pair comes from the
// spawner's script when it has one, otherwise it is drawn at random.
type SpawnSystem struct {
	rng *rand.Rand

	script     *spawnScript
	scriptPath string
	scriptErr  bool
}

func NewSpawnSystem() *SpawnSystem {
	return &SpawnSystem{}
}

// ReloadScript drops the compiled spawn script so the next spawn reads it
// again.
func (s *SpawnSystem) ReloadScript() {
	s.script = nil
	s.scriptPath = ""
	s.scriptErr = false
}

func (s *SpawnSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.SpawnerComponent, func(e ecs.Entity, sp *component.Spawner) {
		sp.Timer--
		if sp.Timer > 0 {
			return
		}
		sp.Timer = sp.Interval

		doors, refs := collectDoors(w)
		if len(refs) == 0 {
			return
		}

		choice := s.choose(w, sp, doors)
		if choice.Skip {
			return
		}

		from := refs[choice.From].Spawn(sp.DoorOffset)
		to := refs[choice.To].Spawn(sp.DoorOffset)
		person, err := entity.NewPerson(w, from, to, entity.PersonOptions{
			Mass:        sp.Options.Mass,
			WalkImpulse: sp.Options.WalkImpulse,
			BrakeFactor: sp.Options.BrakeFactor,
		})
		if err != nil {
			log.Printf("SpawnSystem: spawn at %s: %v", refs[choice.From].Name, err)
			return
		}
		sp.Spawned++
		debugf("SpawnSystem: entity %s from %s to %s", person, refs[choice.From].Name, refs[choice.To].Name)
	})
}

func (s *SpawnSystem) choose(w *ecs.World, sp *component.Spawner, doors []spawnDoor) spawnChoice {
	if s.rng == nil {
		seed := sp.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		s.rng = rand.New(rand.NewSource(seed))
	}
	rolls := [2]int{s.rng.Intn(len(doors)), s.rng.Intn(len(doors))}
	random := spawnChoice{From: rolls[0], To: rolls[1]}

	if sp.Script == "" || s.scriptErr {
		return random
	}
	if s.script == nil || s.scriptPath != sp.Script {
		script, err := loadSpawnScript(sp.Script)
		if err != nil {
			log.Printf("SpawnSystem: %v; falling back to random doors", err)
			s.scriptErr = true
			return random
		}
		s.script, s.scriptPath = script, sp.Script
	}

	choice, err := s.script.choose(doors, rolls, w.Tick())
	if err != nil {
		log.Printf("SpawnSystem: %v; falling back to random doors", err)
		s.scriptErr = true
		return random
	}
	return choice
}

// collectDoors lists every door in building order.
func collectDoors(w *ecs.World) ([]spawnDoor, []component.Door) {
	var (
		doors []spawnDoor
		refs  []component.Door
	)
	for _, e := range w.Query(component.BuildingComponent.Kind()) {
		b, _ := ecs.Get(w, e, component.BuildingComponent)
		for _, d := range b.Doors {
			doors = append(doors, spawnDoor{Name: d.Name, Building: b.Name, X: d.Position.X, Y: d.Position.Y})
			refs = append(refs, d)
		}
	}
	return doors, refs
}
