// component/tower.go
package component

import "go-tower-sim/pkg/lattice"

// Tower is a player-placed building.
type Tower struct {
	DefID    string // ID из buildings.json
	Kind     string // defender kind, selects heal and upgrade targets
	Position lattice.Point
	Cell     lattice.Coord // клетка, которую занимает здание
	Rotation int           // degrees, multiples of 90
}
