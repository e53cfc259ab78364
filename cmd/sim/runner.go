package main

import (
	"errors"
	"log"
	"math"

	"go-tower-sim/internal/app"
	"go-tower-sim/internal/component"
	"go-tower-sim/internal/config"
	"go-tower-sim/internal/defs"
	"go-tower-sim/internal/event"
	"go-tower-sim/internal/state"
	"go-tower-sim/internal/system"
	"go-tower-sim/internal/world"
	"go-tower-sim/pkg/lattice"
)

// Stats summarises a headless run.
type Stats struct {
	FinalMode state.Mode
	Elapsed   float64
	Rounds    int
	Spawned   int
	Kills     int
	Leaked    int
	Placed    int
	Upgrades  int
	Gold      int
}

// Runner drives a game at a fixed tick with no window.
type Runner struct {
	Game    *app.Game
	World   *world.World
	AutoBuy bool

	maxRounds int
	maxTime   float64
	stats     Stats
}

func NewRunner(t config.Tunables, maxRounds int, maxTime float64) (*Runner, error) {
	w := world.New()
	w.KnownBuilding = func(id string) bool {
		_, ok := defs.TowerLibrary[id]
		return ok
	}
	g, err := app.NewGame(t, w)
	if err != nil {
		return nil, err
	}
	r := &Runner{Game: g, World: w, AutoBuy: true, maxRounds: maxRounds, maxTime: maxTime}
	for _, et := range []event.EventType{
		event.WaveCleared, event.UnitSpawned, event.EnemyKilled,
		event.EnemyReachedEnd, event.DefenderPlaced, event.UpgradePurchase,
	} {
		g.EventDispatcher.Subscribe(et, r)
	}
	return r, nil
}

// OnEvent реализует интерфейс event.Listener.
func (r *Runner) OnEvent(e event.Event) {
	switch e.Type {
	case event.WaveCleared:
		if rs, ok := e.Data.(component.RoundState); ok {
			r.stats.Rounds = rs.Round
			log.Printf("Gold after wave %d: %d (%d killed, %d leaked so far)", rs.Round, r.Game.Ledger.Balance(), r.stats.Kills, r.stats.Leaked)
		}
	case event.UnitSpawned:
		r.stats.Spawned++
	case event.EnemyKilled:
		r.stats.Kills++
	case event.EnemyReachedEnd:
		r.stats.Leaked++
	case event.DefenderPlaced:
		r.stats.Placed++
	case event.UpgradePurchase:
		r.stats.Upgrades++
	}
}

// Run plays until the game ends, the round limit is cleared or the
// simulated clock runs out.
func (r *Runner) Run() Stats {
	g := r.Game
	if !g.StateMachine.Started() {
		if err := g.Start(); err != nil {
			log.Printf("Cannot start: %v", err)
			return r.finish()
		}
	}

	dt := 1.0 / float64(config.TickRate)
	for r.stats.Elapsed < r.maxTime {
		switch mode := g.Mode(); {
		case mode.Terminal():
			return r.finish()
		case mode == state.Tutorial:
			r.skip()
		case mode == state.Cooldown:
			if r.maxRounds > 0 && g.WaveDirector.Round().Round >= r.maxRounds {
				return r.finish()
			}
			if r.AutoBuy {
				r.shop()
			}
			if err := r.Game.SkipCooldown(); errors.Is(err, system.ErrNoLanes) {
				log.Printf("No wave can start: %v", err)
				return r.finish()
			} else if err != nil {
				log.Printf("Cannot skip: %v", err)
			}
		}

		g.Update(dt)
		if g.Mode() == state.Wave {
			for _, h := range r.World.Update(dt) {
				g.EnemyReachedGoal(h)
			}
		}
		r.stats.Elapsed += dt
	}
	log.Printf("Simulated clock ran out after %.0fs", r.stats.Elapsed)
	return r.finish()
}

func (r *Runner) skip() {
	if err := r.Game.SkipCooldown(); err != nil {
		log.Printf("Cannot skip: %v", err)
	}
}

func (r *Runner) finish() Stats {
	r.stats.FinalMode = r.Game.Mode()
	r.stats.Gold = r.Game.Ledger.Balance()
	return r.stats
}

// shop buys the most expensive affordable defender, places it next to the
// nearest lane to the town hall, then spends what is left on upgrades.
func (r *Runner) shop() {
	g := r.Game
	for i := len(defs.DefenderIDs) - 1; i >= 0; i-- {
		id := defs.DefenderIDs[i]
		if !g.Ledger.HasEnough(defs.TowerLibrary[id].Cost) {
			continue
		}
		if err := g.BeginPlacement(id); err != nil {
			log.Printf("Cannot buy %s: %v", id, err)
			return
		}
		cell, ok := r.bestCell()
		if !ok {
			log.Printf("No room left for %s", id)
			_ = g.CancelPlacement()
			return
		}
		if _, err := g.ConfirmPlacement(cell.Point()); err != nil {
			log.Printf("Cannot place %s: %v", id, err)
			_ = g.CancelPlacement()
			return
		}
		break
	}

	if g.Shop.ProjectileUpgradeCost() <= g.Shop.TownHallUpgradeCost() {
		_ = g.UpgradeProjectile()
	} else {
		_ = g.UpgradeTownHall()
	}
	if r.shieldsDamaged() {
		if err := g.Heal(defs.KindShield); err != nil && !errors.Is(err, system.ErrInsufficientGold) {
			log.Printf("Cannot heal shields: %v", err)
		}
	}
	if g.Mode() == state.Upgrade {
		_ = g.CloseUpgrades()
	}
}

// bestCell returns the valid placement closest to the town hall.
func (r *Runner) bestCell() (lattice.Coord, bool) {
	g := r.Game
	center := g.Lattice.Center()
	best, found := lattice.Coord{}, false
	closest := math.Inf(1)
	for x := 0; x < g.Lattice.Width; x++ {
		for y := 0; y < g.Lattice.Height; y++ {
			for z := 0; z < g.Lattice.Depth; z++ {
				c := lattice.Coord{X: x, Y: y, Z: z}
				if g.CheckPlacement(c.Point()) != nil {
					continue
				}
				if d := c.Distance(center); d < closest {
					closest, best, found = d, c, true
				}
			}
		}
	}
	return best, found
}

func (r *Runner) shieldsDamaged() bool {
	for _, h := range r.Game.ECS.TowersOfKind(string(defs.KindShield)) {
		if hp, ok := r.Game.ECS.Healths[h]; ok && hp.Current < hp.Max {
			return true
		}
	}
	return false
}
