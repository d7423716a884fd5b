package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/pedestrians/prefabs"
)

const spawnDispatchScript = `
__result = pick(__doors, __rolls, __tick)
`

// spawnScript runs a tengo script that picks the door pair for a spawn.
// The script must define pick(doors, rolls, tick).
type spawnScript struct {
	path     string
	compiled *tengo.Compiled
}

// spawnDoor is a door as the script sees it.
type spawnDoor struct {
	Name     string
	Building string
	X, Y     float64
}

type spawnChoice struct {
	From int
	To   int
	Skip bool
}

func loadSpawnScript(path string) (*spawnScript, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("spawn script %s: %w", path, err)
	}

	script := tengo.NewScript(append(append([]byte{}, src...), spawnDispatchScript...))
	_ = script.Add("__doors", []any{})
	_ = script.Add("__rolls", []any{})
	_ = script.Add("__tick", 0)
	_ = script.Add("__result", nil)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("spawn script %s: compile: %w", path, err)
	}
	return &spawnScript{path: path, compiled: compiled}, nil
}

func (s *spawnScript) choose(doors []spawnDoor, rolls [2]int, tick uint64) (spawnChoice, error) {
	if s == nil || s.compiled == nil {
		return spawnChoice{}, fmt.Errorf("nil spawn script")
	}

	list := make([]tengo.Object, 0, len(doors))
	for _, d := range doors {
		list = append(list, &tengo.ImmutableMap{Value: map[string]tengo.Object{
			"name":     &tengo.String{Value: d.Name},
			"building": &tengo.String{Value: d.Building},
			"x":        &tengo.Float{Value: d.X},
			"y":        &tengo.Float{Value: d.Y},
		}})
	}

	if err := s.compiled.Set("__doors", &tengo.ImmutableArray{Value: list}); err != nil {
		return spawnChoice{}, err
	}
	if err := s.compiled.Set("__rolls", &tengo.ImmutableArray{Value: []tengo.Object{
		&tengo.Int{Value: int64(rolls[0])},
		&tengo.Int{Value: int64(rolls[1])},
	}}); err != nil {
		return spawnChoice{}, err
	}
	if err := s.compiled.Set("__tick", int64(tick)); err != nil {
		return spawnChoice{}, err
	}
	if err := s.compiled.Run(); err != nil {
		return spawnChoice{}, fmt.Errorf("spawn script %s: %w", s.path, err)
	}

	result := s.compiled.Get("__result").Map()
	if result == nil {
		return spawnChoice{}, fmt.Errorf("spawn script %s: pick must return a map", s.path)
	}
	if skip, _ := result["skip"].(bool); skip {
		return spawnChoice{Skip: true}, nil
	}

	from, okFrom := scriptInt(result["from"])
	to, okTo := scriptInt(result["to"])
	if !okFrom || !okTo {
		return spawnChoice{}, fmt.Errorf("spawn script %s: pick returned %v", s.path, result)
	}
	if from < 0 || from >= len(doors) || to < 0 || to >= len(doors) {
		return spawnChoice{}, fmt.Errorf("spawn script %s: door index out of range: from=%d to=%d doors=%d", s.path, from, to, len(doors))
	}
	return spawnChoice{From: from, To: to}, nil
}

func scriptInt(v any) (int, bool) {
	switch n := v.(type) {
	case int64:
		return int(n), true
	case int:
		return n, true
	case float64:
		return int(n), true
	}
	return 0, false
}
