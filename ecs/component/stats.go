package component

// NavStats counts navigation outcomes over a run.
type NavStats struct {
	Spawned    int
	PlansBuilt int
	Replans    int
	NoRoutes   int
	Despawned  int
	// Contacts is the number of person-to-person collisions so far.
	Contacts int
}

var NavStatsComponent = NewComponent[NavStats]()
