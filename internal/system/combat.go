package system

import (
	"math"

	"go-tower-sim/internal/defs"
	"go-tower-sim/internal/entity"
	"go-tower-sim/internal/types"
	"go-tower-sim/pkg/lattice"
)

const (
	enemyAttackInterval = 1.0 // seconds between enemy hits
	meleeRange          = 1.0
	ricochetRange       = 2.0
	explosionRadius     = 1.0
	shootingPoints      = 4 // town hall targets when firing from all points
)

// CombatSystem runs tower fire and enemy attacks on buildings.
type CombatSystem struct {
	ecs     *entity.ECS
	locator entity.Locator
	shop    *Shop

	enemyCooldowns map[types.Handle]float64
	burstCooldown  float64
	burstActive    float64
}

func NewCombatSystem(ecs *entity.ECS, locator entity.Locator, shop *Shop) *CombatSystem {
	return &CombatSystem{
		ecs:            ecs,
		locator:        locator,
		shop:           shop,
		enemyCooldowns: make(map[types.Handle]float64),
	}
}

func (s *CombatSystem) Update(deltaTime float64) {
	s.updateBurst(deltaTime)
	s.updateTowers(deltaTime)
	s.updateEnemies(deltaTime)
}

// BurstActive reports whether the town hall burst window is open.
func (s *CombatSystem) BurstActive() bool {
	return s.burstActive > 0
}

func (s *CombatSystem) updateBurst(deltaTime float64) {
	level := s.shop.TownHall()
	if !level.BurstAbility {
		return
	}
	if s.burstActive > 0 {
		s.burstActive = math.Max(0, s.burstActive-deltaTime)
		return
	}
	s.burstCooldown -= deltaTime
	if s.burstCooldown <= 0 {
		s.burstActive = level.BurstActivationTime
		s.burstCooldown = level.BurstCooldown
	}
}

func (s *CombatSystem) updateTowers(deltaTime float64) {
	for _, id := range s.ecs.TowerHandles() {
		combat, ok := s.ecs.Combats[id]
		if !ok || !s.ecs.IsAlive(id) {
			continue
		}
		if !combat.Ready(deltaTime) {
			continue
		}
		tower := s.ecs.Towers[id]

		if tower.Kind != string(defs.KindTownHall) {
			target, found := s.ecs.NearestEnemy(tower.Position, combat.Range, s.locator)
			if !found {
				continue
			}
			s.ecs.Healths[target].TakeDamage(combat.Damage)
			combat.Fired()
			continue
		}

		if s.fireTownHall(tower.Position, combat.Range, combat.Damage) {
			combat.Fired()
		}
	}
}

// fireTownHall applies the projectile perks of the current upgrade levels.
func (s *CombatSystem) fireTownHall(pos lattice.Point, maxRange, damage float64) bool {
	level := s.shop.TownHall()
	projectile := s.shop.Projectile()

	targets := 1
	if level.ShootFromAllPoints {
		targets = shootingPoints
	}
	shots := 1
	if s.BurstActive() {
		shots = level.BurstCount
	}

	fired := false
	for shot := 0; shot < shots; shot++ {
		hit := make(map[types.Handle]bool)
		for i := 0; i < targets; i++ {
			target, ok := s.nearestExcluding(pos, maxRange, hit)
			if !ok {
				break
			}
			hit[target] = true
			s.strike(target, damage, projectile, hit)
			fired = true
		}
	}
	return fired
}

func (s *CombatSystem) strike(target types.Handle, damage float64, p defs.ProjectileStats, hit map[types.Handle]bool) {
	targetPos, ok := s.locator.Position(target)
	if !ok {
		return
	}
	s.ecs.Healths[target].TakeDamage(damage)

	if p.Explosion {
		for _, h := range s.ecs.EnemyHandles() {
			if h == target || !s.ecs.IsAlive(h) {
				continue
			}
			if pos, ok := s.locator.Position(h); ok && pos.Distance(targetPos) <= explosionRadius {
				s.ecs.Healths[h].TakeDamage(damage / 2)
			}
		}
	}

	if !p.Ricochet {
		return
	}
	from := targetPos
	for bounce := 0; bounce < p.RicochetCount; bounce++ {
		next, ok := s.nearestExcluding(from, ricochetRange, hit)
		if !ok {
			return
		}
		hit[next] = true
		s.ecs.Healths[next].TakeDamage(damage)
		if from, ok = s.locator.Position(next); !ok {
			return
		}
	}
}

func (s *CombatSystem) nearestExcluding(pos lattice.Point, maxRange float64, skip map[types.Handle]bool) (types.Handle, bool) {
	best := types.NilHandle
	closest := math.Inf(1)
	for _, h := range s.ecs.EnemyHandles() {
		if skip[h] || !s.ecs.IsAlive(h) {
			continue
		}
		p, ok := s.locator.Position(h)
		if !ok {
			continue
		}
		if d := p.Distance(pos); d <= maxRange && d < closest {
			closest = d
			best = h
		}
	}
	return best, best != types.NilHandle
}

// updateEnemies lets every enemy hit the nearest building in its reach.
func (s *CombatSystem) updateEnemies(deltaTime float64) {
	for h := range s.enemyCooldowns {
		if _, ok := s.ecs.Enemies[h]; !ok {
			delete(s.enemyCooldowns, h)
		}
	}
	for _, h := range s.ecs.EnemyHandles() {
		if !s.ecs.IsAlive(h) {
			continue
		}
		if s.enemyCooldowns[h] > 0 {
			s.enemyCooldowns[h] -= deltaTime
			continue
		}
		enemy := s.ecs.Enemies[h]
		pos, ok := s.locator.Position(h)
		if !ok {
			continue
		}
		reach := meleeRange
		if def, ok := defs.EnemyLibrary[enemy.DefID]; ok && def.Range > 0 {
			reach = def.Range
		}
		target, found := s.nearestBuilding(pos, reach)
		if !found {
			continue
		}
		s.ecs.Healths[target].TakeDamage(enemy.Stats.Damage)
		s.enemyCooldowns[h] = enemyAttackInterval
	}
}

func (s *CombatSystem) nearestBuilding(pos lattice.Point, reach float64) (types.Handle, bool) {
	best := types.NilHandle
	closest := math.Inf(1)
	for _, h := range s.ecs.TowerHandles() {
		if !s.ecs.IsAlive(h) {
			continue
		}
		if d := s.ecs.Towers[h].Position.Distance(pos); d <= reach && d < closest {
			closest = d
			best = h
		}
	}
	return best, best != types.NilHandle
}
