// internal/interfaces/effects.go
package interfaces

import (
	"go-tower-sim/internal/component"
	"go-tower-sim/internal/types"
	"go-tower-sim/pkg/lattice"
)

// Spawner instantiates enemy units on behalf of the core. The core never
// owns rendering, physics or movement of the unit.
type Spawner interface {
	SpawnEnemy(speciesID string, position lattice.Point, tier component.Tier, lane lattice.Lane, stats component.Stats) (types.Handle, error)
	Despawn(h types.Handle)
}

// Placer instantiates buildings after the core validated position and cost.
type Placer interface {
	PlaceBuilding(buildingID string, position lattice.Point, rotation int) (types.Handle, error)
	RemoveBuilding(h types.Handle)
}

// UnitQuery answers liveness and position questions about spawned units.
// Targeting asks both before picking an enemy.
type UnitQuery interface {
	IsAlive(h types.Handle) bool
	Position(h types.Handle) (lattice.Point, bool)
}

// World is the full collaborator the game is wired against.
type World interface {
	Spawner
	Placer
	UnitQuery
}
