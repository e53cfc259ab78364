package system

import (
	"errors"
	"testing"

	"go-tower-sim/internal/config"
	"go-tower-sim/pkg/lattice"
)

func newValidator(t *testing.T) (*PlacementValidator, *lattice.Lattice) {
	t.Helper()
	l := lattice.New(10, 1, 10)
	for x := 0; x < 10; x++ {
		if err := l.Mark(lattice.Coord{X: x, Z: 5}, lattice.Path); err != nil {
			t.Fatal(err)
		}
	}
	if err := l.Mark(lattice.Coord{X: 2, Z: 7}, lattice.Obstacle); err != nil {
		t.Fatal(err)
	}
	return NewPlacementValidator(l, config.Default().Placement), l
}

func TestPlacementCheck(t *testing.T) {
	v, _ := newValidator(t)
	tests := []struct {
		name string
		pos  lattice.Point
		want error
	}{
		{"on the path", lattice.Point{X: 3, Z: 5}, ErrTooCloseToPath},
		{"half a cell off the path", lattice.Point{X: 3, Z: 5.4}, ErrTooCloseToPath},
		{"adjacent to the path", lattice.Point{X: 3, Z: 6}, nil},
		{"edge of the band", lattice.Point{X: 3, Z: 8}, nil},
		{"beyond the band", lattice.Point{X: 3, Z: 9}, ErrTooFarFromPath},
		{"obstacle", lattice.Point{X: 2, Z: 7}, ErrNotGround},
		{"outside the lattice", lattice.Point{X: -3, Z: 6}, ErrNotGround},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Check(tc.pos)
			if !errors.Is(err, tc.want) {
				t.Errorf("Check(%v) = %v, want %v", tc.pos, err, tc.want)
			}
			if v.IsValid(tc.pos) != (tc.want == nil) {
				t.Errorf("IsValid(%v) disagrees with Check", tc.pos)
			}
		})
	}
}

func TestPlacementWithoutPaths(t *testing.T) {
	v := NewPlacementValidator(lattice.New(4, 1, 4), config.Default().Placement)
	if err := v.Check(lattice.Point{X: 1, Z: 1}); !errors.Is(err, ErrTooFarFromPath) {
		t.Errorf("err = %v, want ErrTooFarFromPath", err)
	}
}
