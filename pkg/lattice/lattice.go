// pkg/lattice/lattice.go
package lattice

import (
	"errors"
	"fmt"
	"sort"
)

// Occupant describes what sits on a cell.
type Occupant uint8

const (
	Empty    Occupant = iota
	Obstacle          // foliage, rocks
	Path
	Building
)

func (o Occupant) String() string {
	switch o {
	case Empty:
		return "empty"
	case Obstacle:
		return "obstacle"
	case Path:
		return "path"
	case Building:
		return "building"
	}
	return fmt.Sprintf("occupant(%d)", uint8(o))
}

var (
	ErrOutOfBounds  = errors.New("coordinate outside lattice")
	ErrCellOccupied = errors.New("cell already occupied")
)

// Cell is one placeable lattice position.
type Cell struct {
	Pos      Coord
	Occupant Occupant
}

// Occupied reports whether anything has been marked on the cell.
func (c Cell) Occupied() bool {
	return c.Occupant != Empty
}

// Blocks reports whether the cell is impassable for lane planning.
// Lanes may share path cells.
func (c Cell) Blocks() bool {
	return c.Occupant == Obstacle || c.Occupant == Building
}

// Rand is the randomness the lattice needs.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Lattice is a static Width x Height x Depth grid of cells.
type Lattice struct {
	Width, Height, Depth int
	cells                []Cell
}

func New(width, height, depth int) *Lattice {
	if width < 1 || height < 1 || depth < 1 {
		panic("lattice dimensions must be positive")
	}
	l := &Lattice{
		Width:  width,
		Height: height,
		Depth:  depth,
		cells:  make([]Cell, width*height*depth),
	}
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			for z := 0; z < depth; z++ {
				c := Coord{x, y, z}
				l.cells[l.index(c)] = Cell{Pos: c}
			}
		}
	}
	return l
}

func (l *Lattice) index(c Coord) int {
	return (c.X*l.Height+c.Y)*l.Depth + c.Z
}

func (l *Lattice) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < l.Width && c.Y >= 0 && c.Y < l.Height && c.Z >= 0 && c.Z < l.Depth
}

// Cell returns a copy of the cell at c.
func (l *Lattice) Cell(c Coord) (Cell, bool) {
	if !l.InBounds(c) {
		return Cell{}, false
	}
	return l.cells[l.index(c)], true
}

// Mark sets the occupant of a cell, overwriting whatever was there.
func (l *Lattice) Mark(c Coord, o Occupant) error {
	if !l.InBounds(c) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}
	l.cells[l.index(c)].Occupant = o
	return nil
}

// Occupy marks an empty cell; a cell that already holds something is refused.
func (l *Lattice) Occupy(c Coord, o Occupant) error {
	cell, ok := l.Cell(c)
	if !ok {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}
	if cell.Occupied() {
		return fmt.Errorf("%w: %s holds %s", ErrCellOccupied, c, cell.Occupant)
	}
	return l.Mark(c, o)
}

// Blocked is true for out-of-bounds coordinates and impassable cells.
func (l *Lattice) Blocked(c Coord) bool {
	cell, ok := l.Cell(c)
	return !ok || cell.Blocks()
}

// Center is the fixed goal cell of every lane.
func (l *Lattice) Center() Coord {
	return Coord{(l.Width - 1) / 2, (l.Height - 1) / 2, (l.Depth - 1) / 2}
}

// EdgeCells lists the distinct cells on the twelve edges of the lattice box,
// sorted by X, Y, Z.
func (l *Lattice) EdgeCells() []Coord {
	maxX, maxY, maxZ := l.Width-1, l.Height-1, l.Depth-1
	seen := make(map[Coord]struct{})
	add := func(c Coord) { seen[c] = struct{}{} }
	for x := 0; x <= maxX; x++ {
		add(Coord{x, 0, 0})
		add(Coord{x, 0, maxZ})
		add(Coord{x, maxY, 0})
		add(Coord{x, maxY, maxZ})
	}
	for y := 0; y <= maxY; y++ {
		add(Coord{0, y, 0})
		add(Coord{0, y, maxZ})
		add(Coord{maxX, y, 0})
		add(Coord{maxX, y, maxZ})
	}
	for z := 0; z <= maxZ; z++ {
		add(Coord{0, 0, z})
		add(Coord{maxX, 0, z})
		add(Coord{0, maxY, z})
		add(Coord{maxX, maxY, z})
	}
	out := make([]Coord, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.Z < b.Z
	})
	return out
}

// Cells returns a snapshot of every cell matching the occupant.
func (l *Lattice) Cells(o Occupant) []Coord {
	var out []Coord
	for _, cell := range l.cells {
		if cell.Occupant == o {
			out = append(out, cell.Pos)
		}
	}
	return out
}

// IsGround reports whether a continuous position projects onto a free or
// path-marked cell inside the lattice.
func (l *Lattice) IsGround(p Point) bool {
	cell, ok := l.Cell(p.Nearest())
	return ok && !cell.Blocks()
}

// ScatterObstacles marks roughly density of the empty cells as obstacles,
// skipping the cells listed in keep.
func (l *Lattice) ScatterObstacles(rng Rand, density float64, keep ...Coord) int {
	if density <= 0 {
		return 0
	}
	reserved := make(map[Coord]struct{}, len(keep))
	for _, c := range keep {
		reserved[c] = struct{}{}
	}
	placed := 0
	for i := range l.cells {
		cell := &l.cells[i]
		if cell.Occupied() {
			continue
		}
		if _, ok := reserved[cell.Pos]; ok {
			continue
		}
		if rng.Float64() < density {
			cell.Occupant = Obstacle
			placed++
		}
	}
	return placed
}
