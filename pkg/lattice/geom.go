package lattice

import (
	"fmt"
	"math"
)

// Coord is an integer lattice coordinate.
type Coord struct {
	X, Y, Z int
}

func (c Coord) Add(o Coord) Coord {
	return Coord{c.X + o.X, c.Y + o.Y, c.Z + o.Z}
}

// Distance is the straight-line distance between two lattice points.
func (c Coord) Distance(o Coord) float64 {
	return c.Point().Distance(o.Point())
}

func (c Coord) Point() Point {
	return Point{float64(c.X), float64(c.Y), float64(c.Z)}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Point is a continuous position in lattice units.
type Point struct {
	X, Y, Z float64
}

func (p Point) Sub(o Point) Point {
	return Point{p.X - o.X, p.Y - o.Y, p.Z - o.Z}
}

func (p Point) Add(o Point) Point {
	return Point{p.X + o.X, p.Y + o.Y, p.Z + o.Z}
}

func (p Point) Scale(f float64) Point {
	return Point{p.X * f, p.Y * f, p.Z * f}
}

func (p Point) Len() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

func (p Point) Distance(o Point) float64 {
	return p.Sub(o).Len()
}

// Nearest rounds a point to the closest lattice coordinate.
func (p Point) Nearest() Coord {
	return Coord{int(math.Round(p.X)), int(math.Round(p.Y)), int(math.Round(p.Z))}
}

// MoveTowards steps from p to target by at most maxStep.
func (p Point) MoveTowards(target Point, maxStep float64) (Point, bool) {
	delta := target.Sub(p)
	dist := delta.Len()
	if dist <= maxStep || dist == 0 {
		return target, true
	}
	return p.Add(delta.Scale(maxStep / dist)), false
}
