package system

import (
	"go-tower-sim/internal/component"
	"go-tower-sim/internal/config"
	"go-tower-sim/internal/utils"
)

// RarityAssigner draws a tier for every spawned enemy.
type RarityAssigner struct {
	rng *utils.PRNGService
	cfg config.RarityTunables
}

func NewRarityAssigner(rng *utils.PRNGService, cfg config.RarityTunables) *RarityAssigner {
	return &RarityAssigner{rng: rng, cfg: cfg}
}

// Assign draws a value in [0,100) and maps it to a tier for the round.
// A value is drawn even for rounds where only Normal is possible, so the
// random stream does not depend on the round gates.
func (r *RarityAssigner) Assign(round int) component.Tier {
	return r.tierFor(round, r.rng.Range(0, 100))
}

// tierFor checks rarer tiers first against ascending cumulative bounds.
func (r *RarityAssigner) tierFor(round int, roll float64) component.Tier {
	c := r.cfg
	switch {
	case round < c.MidTierFromRound:
		return component.Normal
	case round < c.HighTierFromRound:
		bound := c.MidEmpowered
		if roll < bound {
			return component.Empowered
		}
		bound += c.MidMythic
		if roll < bound {
			return component.Mythic
		}
		return component.Normal
	}

	bound := c.HighGodlike
	if roll < bound {
		return component.Godlike
	}
	bound += c.HighLegendary
	if roll < bound {
		return component.Legendary
	}
	bound += c.HighMythic
	if roll < bound {
		return component.Mythic
	}
	bound += c.HighEmpowered
	if roll < bound {
		return component.Empowered
	}
	return component.Normal
}

// Apply scales base stats by the tier and overwrites the unit's health with
// the result.
func (r *RarityAssigner) Apply(tier component.Tier, base component.Stats, health *component.Health) component.Stats {
	stats := tier.Apply(base)
	if health != nil {
		health.SetMaxHealth(stats.Health)
	}
	return stats
}
