// internal/app/game.go
package app

import (
	"errors"
	"fmt"
	"log"

	"go-tower-sim/internal/component"
	"go-tower-sim/internal/config"
	"go-tower-sim/internal/defs"
	"go-tower-sim/internal/entity"
	"go-tower-sim/internal/event"
	"go-tower-sim/internal/interfaces"
	"go-tower-sim/internal/state"
	"go-tower-sim/internal/system"
	"go-tower-sim/internal/types"
	"go-tower-sim/internal/utils"
	"go-tower-sim/pkg/lattice"
)

var ErrWrongMode = errors.New("action not available in this mode")

// Game holds the main game state and logic. Every system gets its
// collaborators here; nothing is global.
type Game struct {
	Tunables        config.Tunables
	Lattice         *lattice.Lattice
	Lanes           []lattice.Lane
	LaneErr         error // set when fewer lanes than configured could be built
	ECS             *entity.ECS
	EventDispatcher *event.Dispatcher
	StateMachine    *state.StateMachine
	Rng             *utils.PRNGService
	World           interfaces.World

	Ledger       *system.Ledger
	Shop         *system.Shop
	Rarity       *system.RarityAssigner
	WaveDirector *system.WaveDirector
	Validator    *system.PlacementValidator
	Cooldown     *system.CooldownTimer
	CombatSystem *system.CombatSystem
	GoldDropper  *system.GoldDropper

	TownHall  types.Handle
	placement *pendingPlacement
}

// NewGame initializes a new game instance on top of the given world.
func NewGame(t config.Tunables, world interfaces.World) (*Game, error) {
	if world == nil {
		return nil, errors.New("world cannot be nil")
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	rng := utils.NewPRNGService(t.Seed)
	log.Printf("Session seed: %d", rng.Seed())

	l, lanes, laneErr := generateTerrain(t.Grid, rng)
	if laneErr != nil {
		log.Printf("Lane generation degraded to %d lane(s): %v", len(lanes), laneErr)
	}

	ecs := entity.NewECS()
	eventDispatcher := event.NewDispatcher()
	g := &Game{
		Tunables:        t,
		Lattice:         l,
		Lanes:           lanes,
		LaneErr:         laneErr,
		ECS:             ecs,
		EventDispatcher: eventDispatcher,
		StateMachine:    state.NewStateMachine(eventDispatcher),
		Rng:             rng,
		World:           world,
	}
	g.Ledger = system.NewLedger(t.Economy.StartingGold, eventDispatcher)
	g.Shop = system.NewShop(g.Ledger, ecs, eventDispatcher)
	g.Rarity = system.NewRarityAssigner(rng, t.Rarity)
	g.WaveDirector = system.NewWaveDirector(ecs, eventDispatcher, world, g.Rarity, rng, t.Wave, lanes)
	g.WaveDirector.OnEnemyDeath = component.DeathFunc(g.onEnemyDeath)
	g.Validator = system.NewPlacementValidator(l, t.Placement)
	g.Cooldown = system.NewCooldownTimer(t.Wave.CooldownDuration, g.onCooldownExpired)
	g.CombatSystem = system.NewCombatSystem(ecs, world, g.Shop)
	g.GoldDropper = system.NewGoldDropper(g.Ledger, t.Economy.CoinsPerKill, t.Economy.BaseGoldPerCoin)

	if err := g.createTownHall(); err != nil {
		return nil, err
	}

	// the break clock runs from the first shop visit, tutorial purchases included
	startBreak := func(state.Change) {
		if !g.Cooldown.Running() {
			g.Cooldown.Start()
		}
	}
	g.StateMachine.OnEnter(state.Cooldown, startBreak)
	g.StateMachine.OnEnter(state.Placement, startBreak)
	g.StateMachine.OnEnter(state.Upgrade, startBreak)
	g.StateMachine.OnEnter(state.Wave, func(state.Change) { g.Cooldown.Stop() })
	g.StateMachine.OnEnter(state.GameOver, func(state.Change) { g.Cooldown.Stop() })
	g.StateMachine.OnEnter(state.Victory, func(state.Change) { g.Cooldown.Stop() })

	listener := &GameEventListener{game: g}
	eventDispatcher.Subscribe(event.ModeChanged, listener)
	eventDispatcher.Subscribe(event.WaveCleared, listener)

	return g, nil
}

func (g *Game) createTownHall() error {
	def := defs.TowerLibrary[defs.TowerTownHall]
	center := g.Lattice.Center()
	h, err := g.World.PlaceBuilding(def.ID, center.Point(), 0)
	if err != nil {
		return fmt.Errorf("failed to place town hall: %w", err)
	}
	health := component.NewHealth(h, float64(g.Tunables.Economy.TownHallHealth), component.DeathFunc(g.onTownHallDeath))
	level := defs.TownHallLevelAt(0)
	g.ECS.AddTower(h, &component.Tower{
		DefID:    def.ID,
		Kind:     string(def.Kind),
		Position: center.Point(),
		Cell:     center,
	}, health, &component.Combat{
		Damage:       defs.ProjectileAt(0).Damage,
		FireInterval: level.Interval,
		Range:        def.Range,
	})
	g.TownHall = h
	return nil
}

// Start enters the tutorial.
func (g *Game) Start() error {
	return g.StateMachine.Start()
}

func (g *Game) Mode() state.Mode {
	return g.StateMachine.Current()
}

// Update progresses the game state by one frame.
func (g *Game) Update(deltaTime float64) {
	switch g.Mode() {
	case state.Cooldown, state.Placement, state.Upgrade:
		g.Cooldown.Update(deltaTime)
	case state.Wave:
		g.CombatSystem.Update(deltaTime)
		g.WaveDirector.Update(deltaTime)
	}
}

// SkipCooldown leaves the tutorial, or cuts the break between waves short.
func (g *Game) SkipCooldown() error {
	switch g.Mode() {
	case state.Tutorial:
		return g.StateMachine.SwitchState(state.Cooldown)
	case state.Cooldown, state.Upgrade:
		if err := g.lanesReady(); err != nil {
			return err
		}
		if !g.Cooldown.Running() {
			return g.StateMachine.SwitchState(state.Wave)
		}
		g.Cooldown.Skip()
		return nil
	}
	return fmt.Errorf("%w: skip in %s", ErrWrongMode, g.Mode())
}

// lanesReady refuses to start a wave that could never spawn or clear.
func (g *Game) lanesReady() error {
	if len(g.Lanes) == 0 {
		return fmt.Errorf("cannot start wave: %w", system.ErrNoLanes)
	}
	return nil
}

// CloseUpgrades returns from the upgrade screen to the break.
func (g *Game) CloseUpgrades() error {
	if g.Mode() != state.Upgrade {
		return fmt.Errorf("%w: not upgrading", ErrWrongMode)
	}
	return g.StateMachine.SwitchState(state.Cooldown)
}

func (g *Game) Pause() error {
	return g.StateMachine.SwitchState(state.Pause)
}

func (g *Game) Resume() error {
	if g.Mode() != state.Pause {
		return fmt.Errorf("%w: not paused", ErrWrongMode)
	}
	return g.StateMachine.ResumePreviousState()
}

func (g *Game) onCooldownExpired() {
	if err := g.lanesReady(); err != nil {
		log.Printf("Staying in %s: %v", g.Mode(), err)
		return
	}
	if err := g.StateMachine.SwitchState(state.Wave); err != nil {
		log.Printf("Cannot start wave after cooldown: %v", err)
	}
}

// EnemyReachedGoal is reported by the world when a unit walks into the goal.
func (g *Game) EnemyReachedGoal(h types.Handle) {
	enemy, ok := g.ECS.Enemies[h]
	if !ok {
		return
	}
	g.ECS.RemoveEnemy(h)
	g.World.Despawn(h)
	g.EventDispatcher.Dispatch(event.Event{Type: event.EnemyReachedEnd, Data: h})

	if !g.ECS.IsAlive(g.TownHall) {
		return
	}
	hall := g.ECS.Healths[g.TownHall]
	hall.TakeDamage(enemy.Stats.Damage)
	g.EventDispatcher.Dispatch(event.Event{Type: event.TownHallHit, Data: hall.Current})
}

// DamageUnit applies damage to a live entity. Stale handles are ignored.
func (g *Game) DamageUnit(h types.Handle, amount float64) bool {
	if !g.ECS.IsAlive(h) {
		return false
	}
	return g.ECS.Healths[h].TakeDamage(amount)
}

func (g *Game) onEnemyDeath(h types.Handle) {
	enemy, ok := g.ECS.Enemies[h]
	if !ok {
		return
	}
	gold := g.GoldDropper.Drop(enemy.Tier)
	g.ECS.RemoveEnemy(h)
	g.World.Despawn(h)
	g.EventDispatcher.Dispatch(event.Event{Type: event.EnemyKilled, Data: event.KillInfo{
		Handle:  h,
		Species: enemy.DefID,
		Tier:    enemy.Tier,
		Gold:    gold,
	}})
}

func (g *Game) onTownHallDeath(types.Handle) {
	log.Println("Town hall destroyed")
	if err := g.StateMachine.SwitchState(state.GameOver); err != nil {
		log.Printf("Cannot end game: %v", err)
	}
}

// GameEventListener обрабатывает события, важные для основного игрового цикла.
type GameEventListener struct {
	game *Game
}

// OnEvent реализует интерфейс event.Listener.
func (l *GameEventListener) OnEvent(e event.Event) {
	switch e.Type {
	case event.ModeChanged:
		ch, ok := e.Data.(state.Change)
		if !ok {
			return
		}
		if ch.From == state.Placement && ch.To != state.Pause && ch.To != state.Placement {
			l.game.cancelPlacement()
		}
	case event.WaveCleared:
		rs, _ := e.Data.(component.RoundState)
		next := state.Cooldown
		if v := l.game.Tunables.Wave.VictoryRound; v > 0 && rs.Round >= v {
			next = state.Victory
		}
		if err := l.game.StateMachine.SwitchState(next); err != nil {
			log.Printf("Cannot leave cleared wave: %v", err)
		}
	}
}
