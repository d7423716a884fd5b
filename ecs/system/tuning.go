package system

import "github.com/milk9111/pedestrians/nav"

// Tuning is the navigation configuration shared by the planning, progress
// and steering systems. The host swaps it when navigation.yaml changes.
type Tuning struct {
	params nav.Params
}

func NewTuning(p nav.Params) *Tuning {
	return &Tuning{params: p.WithDefaults()}
}

func (t *Tuning) Params() nav.Params {
	if t == nil {
		return nav.DefaultParams()
	}
	return t.params
}

func (t *Tuning) Set(p nav.Params) {
	if t == nil {
		return
	}
	t.params = p.WithDefaults()
}
