// component/movement.go
package component

import "go-tower-sim/pkg/lattice"

// Path — компонент пути
type Path struct {
	Cells        []lattice.Coord
	CurrentIndex int
}

// Next returns the waypoint being walked towards.
func (p *Path) Next() (lattice.Coord, bool) {
	if p.CurrentIndex >= len(p.Cells) {
		return lattice.Coord{}, false
	}
	return p.Cells[p.CurrentIndex], true
}

func (p *Path) Done() bool {
	return p.CurrentIndex >= len(p.Cells)
}
