// Package world is an in-memory stand-in for the engine side of the game:
// it owns unit and building instances and walks units along their lanes.
package world

import (
	"errors"
	"fmt"

	"go-tower-sim/internal/component"
	"go-tower-sim/internal/types"
	"go-tower-sim/pkg/lattice"
)

var (
	ErrEmptyLane       = errors.New("lane has no cells")
	ErrUnknownBuilding = errors.New("unknown building id")
)

// Unit is a spawned enemy instance.
type Unit struct {
	Handle   types.Handle
	Species  string
	Tier     component.Tier
	Position lattice.Point
	Speed    float64
	Path     component.Path
}

// Building is a placed building instance.
type Building struct {
	Handle     types.Handle
	BuildingID string
	Position   lattice.Point
	Rotation   int
}

type World struct {
	units     map[types.Handle]*Unit
	unitOrder []types.Handle
	buildings map[types.Handle]*Building

	// KnownBuilding, when set, rejects building ids it returns false for.
	KnownBuilding func(id string) bool
}

func New() *World {
	return &World{
		units:     make(map[types.Handle]*Unit),
		buildings: make(map[types.Handle]*Building),
	}
}

func (w *World) SpawnEnemy(speciesID string, position lattice.Point, tier component.Tier, lane lattice.Lane, stats component.Stats) (types.Handle, error) {
	if len(lane.Cells) == 0 {
		return types.NilHandle, fmt.Errorf("%w: lane %d", ErrEmptyLane, lane.Index)
	}
	h := types.NewHandle()
	w.units[h] = &Unit{
		Handle:   h,
		Species:  speciesID,
		Tier:     tier,
		Position: position,
		Speed:    stats.Speed,
		Path:     component.Path{Cells: lane.Cells},
	}
	w.unitOrder = append(w.unitOrder, h)
	return h, nil
}

func (w *World) Despawn(h types.Handle) {
	if _, ok := w.units[h]; !ok {
		return
	}
	delete(w.units, h)
	for i, v := range w.unitOrder {
		if v == h {
			w.unitOrder = append(w.unitOrder[:i], w.unitOrder[i+1:]...)
			break
		}
	}
}

func (w *World) PlaceBuilding(buildingID string, position lattice.Point, rotation int) (types.Handle, error) {
	if w.KnownBuilding != nil && !w.KnownBuilding(buildingID) {
		return types.NilHandle, fmt.Errorf("%w: %s", ErrUnknownBuilding, buildingID)
	}
	h := types.NewHandle()
	w.buildings[h] = &Building{Handle: h, BuildingID: buildingID, Position: position, Rotation: rotation}
	return h, nil
}

func (w *World) RemoveBuilding(h types.Handle) {
	delete(w.buildings, h)
}

func (w *World) IsAlive(h types.Handle) bool {
	if _, ok := w.units[h]; ok {
		return true
	}
	_, ok := w.buildings[h]
	return ok
}

func (w *World) Position(h types.Handle) (lattice.Point, bool) {
	if u, ok := w.units[h]; ok {
		return u.Position, true
	}
	if b, ok := w.buildings[h]; ok {
		return b.Position, true
	}
	return lattice.Point{}, false
}

// Update walks every unit along its path and returns, in spawn order, the
// units that reached the goal. Arrived units are despawned.
func (w *World) Update(deltaTime float64) []types.Handle {
	var arrived []types.Handle
	for _, h := range w.unitOrder {
		u := w.units[h]
		budget := u.Speed * deltaTime
		for budget > 0 && !u.Path.Done() {
			next, _ := u.Path.Next()
			target := next.Point()
			step := u.Position.Distance(target)
			var reached bool
			u.Position, reached = u.Position.MoveTowards(target, budget)
			if !reached {
				break
			}
			budget -= step
			u.Path.CurrentIndex++
		}
		if u.Path.Done() {
			arrived = append(arrived, h)
		}
	}
	for _, h := range arrived {
		w.Despawn(h)
	}
	return arrived
}

// Units returns the live units in spawn order.
func (w *World) Units() []Unit {
	out := make([]Unit, 0, len(w.unitOrder))
	for _, h := range w.unitOrder {
		out = append(out, *w.units[h])
	}
	return out
}

func (w *World) Buildings() []Building {
	out := make([]Building, 0, len(w.buildings))
	for _, b := range w.buildings {
		out = append(out, *b)
	}
	return out
}
