// internal/app/tower_management.go
package app

import (
	"errors"
	"fmt"
	"log"

	"go-tower-sim/internal/component"
	"go-tower-sim/internal/defs"
	"go-tower-sim/internal/event"
	"go-tower-sim/internal/state"
	"go-tower-sim/internal/types"
	"go-tower-sim/pkg/lattice"
)

var ErrNoPlacement = errors.New("no building is being placed")

// pendingPlacement is a paid-for building waiting for a position.
type pendingPlacement struct {
	defID    string
	paid     int
	rotation int
}

// BeginPlacement buys a defender and enters Placement mode.
func (g *Game) BeginPlacement(defID string) error {
	switch g.Mode() {
	case state.Tutorial, state.Cooldown, state.Upgrade:
	default:
		return fmt.Errorf("%w: cannot buy in %s", ErrWrongMode, g.Mode())
	}
	paid, err := g.Shop.Purchase(defID)
	if err != nil {
		return err
	}
	g.placement = &pendingPlacement{defID: defID, paid: paid}
	return g.StateMachine.SwitchState(state.Placement)
}

// Placing returns the building being placed, if any.
func (g *Game) Placing() (defID string, rotation int, ok bool) {
	if g.placement == nil {
		return "", 0, false
	}
	return g.placement.defID, g.placement.rotation, true
}

// RotatePlacement turns the pending building by 90 degrees.
func (g *Game) RotatePlacement() {
	if g.placement != nil {
		g.placement.rotation = (g.placement.rotation + 90) % 360
	}
}

// CheckPlacement validates pos for the pending building without placing it.
func (g *Game) CheckPlacement(pos lattice.Point) error {
	if g.placement == nil {
		return ErrNoPlacement
	}
	cell := pos.Nearest()
	if err := g.Validator.Check(cell.Point()); err != nil {
		return err
	}
	if c, ok := g.Lattice.Cell(cell); ok && c.Occupied() {
		return fmt.Errorf("%w: %s", lattice.ErrCellOccupied, cell)
	}
	return nil
}

// ConfirmPlacement places the pending building at the cell nearest pos and
// moves on to Upgrade mode. On failure the building stays pending.
func (g *Game) ConfirmPlacement(pos lattice.Point) (types.Handle, error) {
	if err := g.CheckPlacement(pos); err != nil {
		return types.NilHandle, err
	}
	p := g.placement
	def := defs.TowerLibrary[p.defID]
	cell := pos.Nearest()

	if err := g.Lattice.Occupy(cell, lattice.Building); err != nil {
		return types.NilHandle, err
	}
	h, err := g.World.PlaceBuilding(p.defID, cell.Point(), p.rotation)
	if err != nil {
		if markErr := g.Lattice.Mark(cell, lattice.Empty); markErr != nil {
			log.Printf("Cannot free %s: %v", cell, markErr)
		}
		return types.NilHandle, fmt.Errorf("failed to place %s: %w", p.defID, err)
	}

	g.ECS.AddTower(h, &component.Tower{
		DefID:    def.ID,
		Kind:     string(def.Kind),
		Position: cell.Point(),
		Cell:     cell,
		Rotation: p.rotation,
	}, component.NewHealth(h, def.Health, component.DeathFunc(g.onDefenderDeath)), &component.Combat{
		Damage:       def.Damage,
		FireInterval: def.FireInterval,
		Range:        def.Range,
	})
	g.placement = nil

	log.Printf("Placed %s at %s", def.Name, cell)
	g.EventDispatcher.Dispatch(event.Event{Type: event.DefenderPlaced, Data: event.PlacementResult{
		Handle:     h,
		BuildingID: def.ID,
		Cell:       cell,
		Rotation:   p.rotation,
		Cost:       p.paid,
	}})
	return h, g.StateMachine.SwitchState(state.Upgrade)
}

// CancelPlacement gives up on the pending building and returns to the break.
func (g *Game) CancelPlacement() error {
	if g.Mode() != state.Placement {
		return fmt.Errorf("%w: not placing", ErrWrongMode)
	}
	// leaving Placement refunds through the mode listener
	return g.StateMachine.SwitchState(state.Cooldown)
}

// cancelPlacement refunds what was actually paid for the pending building.
func (g *Game) cancelPlacement() {
	if g.placement == nil {
		return
	}
	log.Printf("Placement of %s cancelled, refunding %d", g.placement.defID, g.placement.paid)
	g.Shop.Refund(g.placement.paid)
	g.placement = nil
}

// RemoveBuilding tears down a destroyed defender and frees its cell.
func (g *Game) RemoveBuilding(h types.Handle) bool {
	tower, ok := g.ECS.Towers[h]
	if !ok || h == g.TownHall {
		return false
	}
	g.ECS.RemoveTower(h)
	g.World.RemoveBuilding(h)
	if err := g.Lattice.Mark(tower.Cell, lattice.Empty); err != nil {
		log.Printf("Cannot free %s: %v", tower.Cell, err)
	}
	g.EventDispatcher.Dispatch(event.Event{Type: event.BuildingRemoved, Data: h})
	return true
}

func (g *Game) onDefenderDeath(h types.Handle) {
	if tower, ok := g.ECS.Towers[h]; ok {
		log.Printf("%s destroyed at %s", tower.DefID, tower.Cell)
	}
	g.RemoveBuilding(h)
}
