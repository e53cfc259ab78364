package system

import (
	"errors"
	"fmt"
	"log"

	"go-tower-sim/internal/defs"
	"go-tower-sim/internal/entity"
	"go-tower-sim/internal/event"
)

var (
	ErrInsufficientGold = errors.New("not enough gold")
	ErrUnknownBuilding  = errors.New("unknown building")
	ErrNothingToHeal    = errors.New("nothing to heal")
)

const (
	UpgradeTownHall   = "town_hall"
	UpgradeProjectile = "projectile"
)

// Shop sells defenders, upgrades and heals against the ledger.
type Shop struct {
	ledger          *Ledger
	ecs             *entity.ECS
	eventDispatcher *event.Dispatcher

	townHallLevel   int
	projectileLevel int
}

func NewShop(ledger *Ledger, ecs *entity.ECS, eventDispatcher *event.Dispatcher) *Shop {
	return &Shop{ledger: ledger, ecs: ecs, eventDispatcher: eventDispatcher}
}

// Purchase charges the price of a defender and returns what was paid.
func (s *Shop) Purchase(defID string) (int, error) {
	def, ok := defs.TowerLibrary[defID]
	if !ok || def.Kind == defs.KindTownHall {
		return 0, fmt.Errorf("%w: %s", ErrUnknownBuilding, defID)
	}
	if !s.ledger.Spend(def.Cost) {
		log.Printf("Cannot afford %s: %d < %d", def.Name, s.ledger.Balance(), def.Cost)
		return 0, ErrInsufficientGold
	}
	return def.Cost, nil
}

// Refund returns gold from a cancelled purchase.
func (s *Shop) Refund(amount int) {
	if amount > 0 {
		s.ledger.Add(amount)
	}
}

func (s *Shop) TownHallLevel() int   { return s.townHallLevel }
func (s *Shop) ProjectileLevel() int { return s.projectileLevel }

func (s *Shop) TownHallUpgradeCost() int {
	return defs.LadderCost(defs.TownHallUpgradeCosts, s.townHallLevel)
}

func (s *Shop) ProjectileUpgradeCost() int {
	return defs.LadderCost(defs.ProjectileUpgradeCosts, s.projectileLevel)
}

// UpgradeTownHall buys the next town hall level and retunes its weapon.
func (s *Shop) UpgradeTownHall() error {
	cost := s.TownHallUpgradeCost()
	if !s.ledger.Spend(cost) {
		return ErrInsufficientGold
	}
	s.townHallLevel++
	level := defs.TownHallLevelAt(s.townHallLevel)
	for _, h := range s.ecs.TowersOfKind(string(defs.KindTownHall)) {
		if c, ok := s.ecs.Combats[h]; ok {
			c.FireInterval = level.Interval
		}
	}
	s.announce(UpgradeTownHall, s.townHallLevel, cost)
	return nil
}

// UpgradeProjectile buys the next projectile level.
func (s *Shop) UpgradeProjectile() error {
	cost := s.ProjectileUpgradeCost()
	if !s.ledger.Spend(cost) {
		return ErrInsufficientGold
	}
	s.projectileLevel++
	p := defs.ProjectileAt(s.projectileLevel)
	for _, h := range s.ecs.TowersOfKind(string(defs.KindTownHall)) {
		if c, ok := s.ecs.Combats[h]; ok {
			c.Damage = p.Damage
		}
	}
	s.announce(UpgradeProjectile, s.projectileLevel, cost)
	return nil
}

// Projectile returns the current town hall projectile.
func (s *Shop) Projectile() defs.ProjectileStats {
	return defs.ProjectileAt(s.projectileLevel)
}

// TownHall returns the current town hall weapon level.
func (s *Shop) TownHall() defs.TownHallLevel {
	return defs.TownHallLevelAt(s.townHallLevel)
}

// HealCost sums the heal price of every live building of the kind.
func (s *Shop) HealCost(kind defs.BuildingKind) int {
	total := 0
	for _, h := range s.ecs.TowersOfKind(string(kind)) {
		if !s.ecs.IsAlive(h) {
			continue
		}
		if def, ok := defs.TowerLibrary[s.ecs.Towers[h].DefID]; ok {
			total += def.HealCost
		}
	}
	return total
}

// Heal restores every live building of the kind to full health.
func (s *Shop) Heal(kind defs.BuildingKind) error {
	cost := s.HealCost(kind)
	if cost == 0 {
		return fmt.Errorf("%w: no %s buildings", ErrNothingToHeal, kind)
	}
	if !s.ledger.Spend(cost) {
		return ErrInsufficientGold
	}
	for _, h := range s.ecs.TowersOfKind(string(kind)) {
		if health, ok := s.ecs.Healths[h]; ok {
			health.HealFull()
		}
	}
	log.Printf("Healed %s buildings for %d gold", kind, cost)
	return nil
}

func (s *Shop) announce(kind string, level, cost int) {
	log.Printf("Upgrade %s to level %d for %d gold", kind, level, cost)
	s.eventDispatcher.Dispatch(event.Event{
		Type: event.UpgradePurchase,
		Data: event.Upgrade{Kind: kind, Level: level, Cost: cost},
	})
}
