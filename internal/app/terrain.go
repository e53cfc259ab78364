// internal/app/terrain.go
package app

import (
	"log"

	"go-tower-sim/internal/config"
	"go-tower-sim/internal/utils"
	"go-tower-sim/pkg/lattice"
)

func connectivityOf(name string) lattice.Connectivity {
	if name == config.ConnectivityFull {
		return lattice.FullConnected
	}
	return lattice.FaceConnected
}

// generateTerrain builds the lattice, scatters obstacles and plans the lanes.
// A lane failure is returned with the lanes that were built; the caller
// decides whether the map is still playable.
func generateTerrain(grid config.GridTunables, rng *utils.PRNGService) (*lattice.Lattice, []lattice.Lane, error) {
	l := lattice.New(grid.Width, grid.Height, grid.Depth)

	// Центр и края остаются свободными: там цель и точки входа
	keep := append([]lattice.Coord{l.Center()}, l.EdgeCells()...)
	placed := l.ScatterObstacles(rng, grid.ObstacleDensity, keep...)
	log.Printf("Terrain %dx%dx%d: %d obstacles", grid.Width, grid.Height, grid.Depth, placed)

	planner := &lattice.Planner{
		Lattice:          l,
		Rng:              rng,
		Connectivity:     connectivityOf(grid.Connectivity),
		MaxAttempts:      grid.MaxLaneAttempts,
		MinStartDistance: grid.MinStartDistance,
	}
	lanes, err := planner.GenerateLanes(grid.Lanes)
	return l, lanes, err
}
