package entity

import (
	"math"

	"go-tower-sim/internal/component"
	"go-tower-sim/internal/types"
	"go-tower-sim/pkg/lattice"
)

// Locator reports whether a collaborator-owned entity still exists and
// where it currently is.
type Locator interface {
	IsAlive(h types.Handle) bool
	Position(h types.Handle) (lattice.Point, bool)
}

// ECS tracks the live entities the core cares about, keyed by the handles
// issued by external collaborators.
type ECS struct {
	Enemies map[types.Handle]*component.Enemy
	Towers  map[types.Handle]*component.Tower
	Healths map[types.Handle]*component.Health
	Combats map[types.Handle]*component.Combat

	enemyOrder []types.Handle // spawn order
	towerOrder []types.Handle
}

func NewECS() *ECS {
	return &ECS{
		Enemies: make(map[types.Handle]*component.Enemy),
		Towers:  make(map[types.Handle]*component.Tower),
		Healths: make(map[types.Handle]*component.Health),
		Combats: make(map[types.Handle]*component.Combat),
	}
}

func (ecs *ECS) AddEnemy(h types.Handle, e *component.Enemy, health *component.Health) {
	if _, exists := ecs.Enemies[h]; !exists {
		ecs.enemyOrder = append(ecs.enemyOrder, h)
	}
	ecs.Enemies[h] = e
	ecs.Healths[h] = health
}

// RemoveEnemy reports false for handles that are already gone.
func (ecs *ECS) RemoveEnemy(h types.Handle) bool {
	if _, ok := ecs.Enemies[h]; !ok {
		return false
	}
	delete(ecs.Enemies, h)
	delete(ecs.Healths, h)
	ecs.enemyOrder = without(ecs.enemyOrder, h)
	return true
}

func (ecs *ECS) AddTower(h types.Handle, t *component.Tower, health *component.Health, combat *component.Combat) {
	if _, exists := ecs.Towers[h]; !exists {
		ecs.towerOrder = append(ecs.towerOrder, h)
	}
	ecs.Towers[h] = t
	ecs.Healths[h] = health
	if combat != nil {
		ecs.Combats[h] = combat
	}
}

func (ecs *ECS) RemoveTower(h types.Handle) bool {
	if _, ok := ecs.Towers[h]; !ok {
		return false
	}
	delete(ecs.Towers, h)
	delete(ecs.Healths, h)
	delete(ecs.Combats, h)
	ecs.towerOrder = without(ecs.towerOrder, h)
	return true
}

// IsAlive is the liveness check done before every cross-entity call.
func (ecs *ECS) IsAlive(h types.Handle) bool {
	health, ok := ecs.Healths[h]
	return ok && health.Alive()
}

func (ecs *ECS) LiveEnemies() int {
	return len(ecs.Enemies)
}

// EnemyHandles returns live enemies in spawn order.
func (ecs *ECS) EnemyHandles() []types.Handle {
	out := make([]types.Handle, len(ecs.enemyOrder))
	copy(out, ecs.enemyOrder)
	return out
}

// TowerHandles returns towers in placement order.
func (ecs *ECS) TowerHandles() []types.Handle {
	out := make([]types.Handle, len(ecs.towerOrder))
	copy(out, ecs.towerOrder)
	return out
}

// TowersOfKind returns towers whose Kind matches, in placement order.
func (ecs *ECS) TowersOfKind(kind string) []types.Handle {
	var out []types.Handle
	for _, h := range ecs.towerOrder {
		if ecs.Towers[h].Kind == kind {
			out = append(out, h)
		}
	}
	return out
}

// TowerCounts counts placed towers per definition ID.
func (ecs *ECS) TowerCounts() map[string]int {
	counts := make(map[string]int)
	for _, t := range ecs.Towers {
		counts[t.DefID]++
	}
	return counts
}

// NearestEnemy finds the closest live enemy within maxRange of pos.
// Enemies the locator reports dead or cannot place are skipped.
func (ecs *ECS) NearestEnemy(pos lattice.Point, maxRange float64, loc Locator) (types.Handle, bool) {
	best := types.NilHandle
	closest := math.Inf(1)
	for _, h := range ecs.enemyOrder {
		if !ecs.IsAlive(h) || !loc.IsAlive(h) {
			continue
		}
		p, ok := loc.Position(h)
		if !ok {
			continue
		}
		d := p.Distance(pos)
		if d <= maxRange && d < closest {
			closest = d
			best = h
		}
	}
	return best, best != types.NilHandle
}

func without(list []types.Handle, h types.Handle) []types.Handle {
	for i, v := range list {
		if v == h {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
