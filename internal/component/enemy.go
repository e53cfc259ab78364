package component

import "fmt"

// Tier is the rarity bucket of a spawned enemy.
type Tier int

const (
	Normal Tier = iota
	Empowered
	Mythic
	Legendary
	Godlike
)

var tierNames = [...]string{"Normal", "Empowered", "Mythic", "Legendary", "Godlike"}

func (t Tier) String() string {
	if t >= Normal && t <= Godlike {
		return tierNames[t]
	}
	return fmt.Sprintf("Tier(%d)", int(t))
}

// Stats are the per-unit combat values a tier scales.
type Stats struct {
	Health float64
	Damage float64
	Speed  float64
}

// tierMultipliers: health, damage, speed
var tierMultipliers = [...]Stats{
	Normal:    {1.0, 1.0, 1.0},
	Empowered: {1.5, 1.5, 1.2},
	Mythic:    {2.0, 2.0, 1.3},
	Legendary: {3.0, 3.0, 1.4},
	Godlike:   {5.0, 5.0, 1.5},
}

// tierGold is the coin value multiplier.
var tierGold = [...]int{1, 2, 3, 5, 10}

// Multiplier returns the fixed stat multipliers of a tier.
func (t Tier) Multiplier() Stats {
	if t < Normal || t > Godlike {
		return tierMultipliers[Normal]
	}
	return tierMultipliers[t]
}

// GoldMultiplier scales the value of each dropped coin.
func (t Tier) GoldMultiplier() int {
	if t < Normal || t > Godlike {
		return 1
	}
	return tierGold[t]
}

// Apply scales base stats by the tier.
func (t Tier) Apply(base Stats) Stats {
	m := t.Multiplier()
	return Stats{
		Health: base.Health * m.Health,
		Damage: base.Damage * m.Damage,
		Speed:  base.Speed * m.Speed,
	}
}

// Enemy представляет вражескую сущность.
type Enemy struct {
	DefID string // species ID from defs
	Tier  Tier
	Stats Stats
	Lane  int
	Round int
}
