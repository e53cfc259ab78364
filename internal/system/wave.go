// internal/system/wave.go
package system

import (
	"errors"
	"fmt"
	"log"
	"math"

	"go-tower-sim/internal/component"
	"go-tower-sim/internal/config"
	"go-tower-sim/internal/defs"
	"go-tower-sim/internal/entity"
	"go-tower-sim/internal/event"
	"go-tower-sim/internal/interfaces"
	"go-tower-sim/internal/state"
	"go-tower-sim/internal/types"
	"go-tower-sim/internal/utils"
	"go-tower-sim/pkg/lattice"
)

var (
	ErrNoLanes        = errors.New("no spawn lanes available")
	ErrWaveInProgress = errors.New("wave emission already running")
)

// UnitSpawn is the payload of event.UnitSpawned.
type UnitSpawn struct {
	Handle  types.Handle
	Species string
	Tier    component.Tier
	Lane    int
	Round   int
	Stats   component.Stats
}

// EnemyCount returns how many enemies round r sends.
func EnemyCount(formula string, r int) int {
	if r < 1 {
		return 0
	}
	if formula == config.FormulaLinear {
		return r * 8
	}
	if r <= 2 {
		return r + 8
	}
	return (r - 2) * 8
}

// SpawnDelay returns the seconds between emission ticks for round r.
func SpawnDelay(cfg config.WaveTunables, r int) float64 {
	return math.Max(cfg.MinSpawnDelay, cfg.BaseSpawnDelay-float64(r)*cfg.SpawnDelayPerRound)
}

// LaneCount returns how many lanes round r spawns on, never more than
// available. Past the last breakpoint every lane is used.
func LaneCount(breakpoints [3]int, r, available int) int {
	n := available
	switch {
	case r < breakpoints[0]:
		n = 1
	case r < breakpoints[1]:
		n = 2
	case r < breakpoints[2]:
		n = 3
	}
	if n > available {
		n = available
	}
	return n
}

// Emission is the spawn schedule of one wave, advanced by Update.
type Emission struct {
	Lanes []lattice.Lane
	Alloc []int // units per lane
	Ticks int
	Tick  int
	Delay float64
	timer float64
}

// NewEmission splits count over the lanes. Lane i gets count/len + 1 when
// i < count%len. The first tick is due immediately.
func NewEmission(count int, lanes []lattice.Lane, delay float64) *Emission {
	e := &Emission{Lanes: lanes, Alloc: make([]int, len(lanes)), Delay: delay, timer: delay}
	if len(lanes) == 0 {
		return e
	}
	base, rem := count/len(lanes), count%len(lanes)
	for i := range e.Alloc {
		e.Alloc[i] = base
		if i < rem {
			e.Alloc[i]++
		}
	}
	e.Ticks = e.Alloc[0]
	return e
}

func (e *Emission) Done() bool {
	return e.Tick >= e.Ticks
}

// Advance adds deltaTime and reports how many ticks became due.
func (e *Emission) Advance(deltaTime float64) int {
	if e.Done() {
		return 0
	}
	e.timer += deltaTime
	due := 0
	for e.timer >= e.Delay && e.Tick+due < e.Ticks {
		e.timer -= e.Delay
		due++
	}
	return due
}

// LanesAt returns the lane indexes that still receive a unit on tick.
func (e *Emission) LanesAt(tick int) []int {
	var out []int
	for i, n := range e.Alloc {
		if tick < n {
			out = append(out, i)
		}
	}
	return out
}

// WaveDirector computes the round parameters and emits enemies on the lanes.
type WaveDirector struct {
	ecs             *entity.ECS
	eventDispatcher *event.Dispatcher
	spawner         interfaces.Spawner
	rarity          *RarityAssigner
	rng             *utils.PRNGService
	cfg             config.WaveTunables
	lanes           []lattice.Lane

	round    component.RoundState
	emission *Emission
	active   bool

	// OnEnemyDeath is attached to the health of every spawned enemy.
	OnEnemyDeath component.DeathBehavior
}

func NewWaveDirector(ecs *entity.ECS, eventDispatcher *event.Dispatcher, spawner interfaces.Spawner,
	rarity *RarityAssigner, rng *utils.PRNGService, cfg config.WaveTunables, lanes []lattice.Lane) *WaveDirector {
	wd := &WaveDirector{
		ecs:             ecs,
		eventDispatcher: eventDispatcher,
		spawner:         spawner,
		rarity:          rarity,
		rng:             rng,
		cfg:             cfg,
		lanes:           lanes,
	}
	eventDispatcher.Subscribe(event.ModeChanged, wd)
	return wd
}

func (w *WaveDirector) Round() component.RoundState {
	return w.round
}

// Active reports whether a wave is running, emission or not.
func (w *WaveDirector) Active() bool {
	return w.active
}

func (w *WaveDirector) Lanes() []lattice.Lane {
	return w.lanes
}

// StartWave begins the next round. With no lanes the round is not
// incremented and ErrNoLanes is returned.
func (w *WaveDirector) StartWave() error {
	if len(w.lanes) == 0 {
		log.Println("Cannot start wave: no spawn lanes")
		return ErrNoLanes
	}
	if w.active {
		return ErrWaveInProgress
	}

	r := w.round.Round + 1
	w.round = component.RoundState{
		Round:      r,
		EnemyCount: EnemyCount(w.cfg.EnemyCountFormula, r),
		SpawnDelay: SpawnDelay(w.cfg, r),
		Lanes:      LaneCount(w.cfg.LaneBreakpoints, r, len(w.lanes)),
	}
	w.emission = NewEmission(w.round.EnemyCount, w.lanes[:w.round.Lanes], w.round.SpawnDelay)
	w.active = true

	log.Printf("Wave %d: %d enemies on %d lane(s), delay %.2fs",
		r, w.round.EnemyCount, w.round.Lanes, w.round.SpawnDelay)
	w.eventDispatcher.Dispatch(event.Event{Type: event.WaveStarted, Data: w.round})
	return nil
}

// Cancel abandons the pending emission. Units already spawned stay alive.
func (w *WaveDirector) Cancel() {
	if !w.active {
		return
	}
	if w.emission != nil && !w.emission.Done() {
		log.Printf("Wave %d emission cancelled at tick %d/%d", w.round.Round, w.emission.Tick, w.emission.Ticks)
	}
	w.emission = nil
	w.active = false
}

func (w *WaveDirector) Update(deltaTime float64) {
	if !w.active {
		return
	}
	if w.emission != nil {
		due := w.emission.Advance(deltaTime)
		for ; due > 0; due-- {
			for _, i := range w.emission.LanesAt(w.emission.Tick) {
				w.spawnEnemy(w.emission.Lanes[i])
			}
			w.emission.Tick++
		}
		if !w.emission.Done() {
			return
		}
	}
	if w.ecs.LiveEnemies() == 0 {
		w.active = false
		w.emission = nil
		log.Printf("Wave %d cleared", w.round.Round)
		w.eventDispatcher.Dispatch(event.Event{Type: event.WaveCleared, Data: w.round})
	}
}

func (w *WaveDirector) spawnEnemy(lane lattice.Lane) {
	species := w.SpeciesFor(w.round.Round)
	def, ok := defs.EnemyLibrary[species]
	if !ok {
		log.Printf("Error: Enemy definition not found for ID: %s", species)
		return
	}
	base := component.Stats{Health: def.Health, Damage: def.Damage, Speed: def.Speed}

	tier := w.rarity.Assign(w.round.Round)
	health := component.NewHealth(types.NilHandle, base.Health, w.OnEnemyDeath)
	stats := w.rarity.Apply(tier, base, health)

	h, err := w.spawner.SpawnEnemy(species, lane.Start.Point(), tier, lane, stats)
	if err != nil {
		log.Printf("Spawn of %s on lane %d failed: %v", species, lane.Index, err)
		return
	}
	health.Owner = h
	w.ecs.AddEnemy(h, &component.Enemy{
		DefID: species,
		Tier:  tier,
		Stats: stats,
		Lane:  lane.Index,
		Round: w.round.Round,
	}, health)

	w.eventDispatcher.Dispatch(event.Event{Type: event.UnitSpawned, Data: UnitSpawn{
		Handle:  h,
		Species: species,
		Tier:    tier,
		Lane:    lane.Index,
		Round:   w.round.Round,
		Stats:   stats,
	}})
}

// scriptedSpecies are the single-species opening rounds.
var scriptedSpecies = []string{defs.EnemyKnight, defs.EnemyHeavyKnight, defs.EnemyWizard}

// SpeciesFor picks the species of the next unit of round r.
func (w *WaveDirector) SpeciesFor(r int) string {
	if r >= 1 && r <= len(scriptedSpecies) {
		return scriptedSpecies[r-1]
	}
	weights := w.SpeciesWeights(r)
	i := w.rng.ChooseWeighted(weights)
	if i < 0 {
		return defs.EnemyKnight
	}
	species, ok := defs.SpeciesForRole(defs.Roles[i])
	if !ok {
		return defs.EnemyKnight
	}
	return species
}

// SpeciesWeights returns the role weights in defs.Roles order, normalized to
// sum to one. From RatioAdjustStartRound on, every placed defender adds
// RatioSkewPerDefender to the role that counters it.
func (w *WaveDirector) SpeciesWeights(r int) []float64 {
	ratio := w.cfg.SpeciesRatio
	weights := map[defs.Role]float64{
		defs.RoleStandard: ratio.Standard,
		defs.RoleRanged:   ratio.Ranged,
		defs.RoleTanky:    ratio.Tanky,
	}
	if r >= w.cfg.RatioAdjustStartRound {
		for id, n := range w.ecs.TowerCounts() {
			def, ok := defs.TowerLibrary[id]
			if !ok || def.Counter == "" {
				continue
			}
			weights[def.Counter] += w.cfg.RatioSkewPerDefender * float64(n)
		}
	}

	out := make([]float64, len(defs.Roles))
	total := 0.0
	for i, role := range defs.Roles {
		out[i] = math.Max(0, weights[role])
		total += out[i]
	}
	if total > 0 {
		for i := range out {
			out[i] /= total
		}
	}
	return out
}

func (w *WaveDirector) OnEvent(e event.Event) {
	if e.Type != event.ModeChanged {
		return
	}
	change, ok := e.Data.(state.Change)
	if !ok {
		return
	}
	switch {
	case change.To == state.Wave && !change.Resumed:
		if err := w.StartWave(); err != nil {
			log.Printf("Wave start aborted: %v", fmt.Errorf("round %d: %w", w.round.Round+1, err))
		}
	case change.To != state.Wave && change.To != state.Pause:
		w.Cancel()
	}
}
