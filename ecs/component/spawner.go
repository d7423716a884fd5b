package component

// SpawnOptions is the tuning given to spawned people.
type SpawnOptions struct {
	Mass        float64
	WalkImpulse float64
	BrakeFactor float64
}

// Spawner creates people at building doors every Interval frames.
type Spawner struct {
	Interval   int
	Timer      int
	DoorOffset float64
	Script     string
	Seed       int64
	Spawned    int
	Options    SpawnOptions
}

var SpawnerComponent = NewComponent[Spawner]()
