package app

import (
	"fmt"

	"go-tower-sim/internal/defs"
	"go-tower-sim/internal/state"
)

// shopOpen reports whether upgrades and heals can be bought right now.
func (g *Game) shopOpen() error {
	switch g.Mode() {
	case state.Cooldown, state.Upgrade:
		return nil
	}
	return fmt.Errorf("%w: shop closed in %s", ErrWrongMode, g.Mode())
}

func (g *Game) UpgradeTownHall() error {
	if err := g.shopOpen(); err != nil {
		return err
	}
	return g.Shop.UpgradeTownHall()
}

func (g *Game) UpgradeProjectile() error {
	if err := g.shopOpen(); err != nil {
		return err
	}
	return g.Shop.UpgradeProjectile()
}

// Heal restores all buildings of one kind to full health.
func (g *Game) Heal(kind defs.BuildingKind) error {
	if err := g.shopOpen(); err != nil {
		return err
	}
	return g.Shop.Heal(kind)
}
