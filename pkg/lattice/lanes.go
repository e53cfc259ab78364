package lattice

import (
	"errors"
	"fmt"
	"log"
)

var ErrLaneExhausted = errors.New("failed to generate lane")

// Lane is one spawn-to-goal path. Cells run from Start to the goal.
type Lane struct {
	Index int
	Start Coord
	Cells []Coord
}

// Planner builds the spawn lanes of a map.
type Planner struct {
	Lattice          *Lattice
	Rng              Rand
	Connectivity     Connectivity
	MaxAttempts      int
	MinStartDistance float64
}

// GenerateLanes builds n lanes from random edge cells to the lattice center.
// Each lane gets MaxAttempts tries; when a lane cannot be built the lanes
// produced so far are returned together with ErrLaneExhausted.
func (p *Planner) GenerateLanes(n int) ([]Lane, error) {
	goal := p.Lattice.Center()
	edges := p.Lattice.EdgeCells()
	lanes := make([]Lane, 0, n)

	for i := 0; i < n; i++ {
		generated := false
		for attempt := 0; attempt < p.MaxAttempts && !generated; attempt++ {
			start := edges[p.Rng.Intn(len(edges))]
			if !p.farEnough(start, lanes) {
				continue
			}
			path, err := AStar(p.Lattice, start, goal, p.Connectivity)
			if err != nil {
				continue
			}
			for _, c := range path {
				if cell, _ := p.Lattice.Cell(c); !cell.Occupied() {
					if err := p.Lattice.Mark(c, Path); err != nil {
						log.Printf("Lane %d: cannot mark %s: %v", i+1, c, err)
					}
				}
			}
			lanes = append(lanes, Lane{Index: i, Start: start, Cells: path})
			log.Printf("Lane %d generated from %s (%d cells)", i+1, start, len(path))
			generated = true
		}
		if !generated {
			return lanes, fmt.Errorf("%w: lane %d after %d attempts", ErrLaneExhausted, i+1, p.MaxAttempts)
		}
	}
	return lanes, nil
}

func (p *Planner) farEnough(start Coord, lanes []Lane) bool {
	for _, lane := range lanes {
		if lane.Start.Distance(start) < p.MinStartDistance {
			return false
		}
	}
	return true
}
