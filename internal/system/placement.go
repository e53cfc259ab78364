package system

import (
	"errors"
	"math"

	"go-tower-sim/internal/config"
	"go-tower-sim/pkg/lattice"
)

var (
	ErrNotGround      = errors.New("position is not on ground")
	ErrTooCloseToPath = errors.New("position is too close to a path")
	ErrTooFarFromPath = errors.New("position is too far from every path")
)

// PlacementValidator checks building positions against the lane cells.
type PlacementValidator struct {
	lattice *lattice.Lattice
	cfg     config.PlacementTunables
}

func NewPlacementValidator(l *lattice.Lattice, cfg config.PlacementTunables) *PlacementValidator {
	return &PlacementValidator{lattice: l, cfg: cfg}
}

// Check returns nil for a valid position. A position must be on ground, at
// least RequiredDistanceFromPath from every path cell and within
// RequiredMinimumDistanceFromPath of some path cell.
func (v *PlacementValidator) Check(pos lattice.Point) error {
	if !v.lattice.IsGround(pos) {
		return ErrNotGround
	}
	nearest := v.DistanceToPath(pos)
	if nearest < v.cfg.RequiredDistanceFromPath {
		return ErrTooCloseToPath
	}
	if nearest > v.cfg.RequiredMinimumDistanceFromPath {
		return ErrTooFarFromPath
	}
	return nil
}

func (v *PlacementValidator) IsValid(pos lattice.Point) bool {
	return v.Check(pos) == nil
}

// DistanceToPath is +Inf when no path has been generated.
func (v *PlacementValidator) DistanceToPath(pos lattice.Point) float64 {
	nearest := math.Inf(1)
	for _, c := range v.lattice.Cells(lattice.Path) {
		if d := pos.Distance(c.Point()); d < nearest {
			nearest = d
		}
	}
	return nearest
}
