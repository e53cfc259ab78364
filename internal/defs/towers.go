// internal/defs/towers.go
package defs

// TowerDefinition holds all the static data for a specific type of building.
type TowerDefinition struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Kind         BuildingKind `json:"kind"`
	Cost         int          `json:"cost"`
	HealCost     int          `json:"heal_cost"`
	Health       float64      `json:"health"`
	Damage       float64      `json:"damage"`
	FireInterval float64      `json:"fire_interval"` // seconds between shots
	Range        float64      `json:"range"`         // lattice cells
	Counter      Role         `json:"counter"`       // enemy role that counters this building
}

const (
	TowerShield   = "TOWER_SHIELD"
	TowerBurst    = "TOWER_BURST"
	TowerCatapult = "TOWER_CATAPULT"
	TowerTownHall = "TOWER_TOWN_HALL"
)

// TowerLibrary is a map to hold all tower definitions, keyed by their ID.
var TowerLibrary = map[string]TowerDefinition{
	TowerShield: {
		ID: TowerShield, Name: "Shield Defender", Kind: KindShield,
		Cost: 100, HealCost: 1000, Health: 300, Damage: 5, FireInterval: 1, Range: 2,
		Counter: RoleRanged,
	},
	TowerBurst: {
		ID: TowerBurst, Name: "Burst Defender", Kind: KindBurst,
		Cost: 300, HealCost: 1000, Health: 150, Damage: 4, FireInterval: 0.25, Range: 3,
		Counter: RoleTanky,
	},
	TowerCatapult: {
		ID: TowerCatapult, Name: "Catapult Defender", Kind: KindCatapult,
		Cost: 1000, HealCost: 1000, Health: 200, Damage: 40, FireInterval: 3, Range: 5,
		Counter: RoleStandard,
	},
	TowerTownHall: {
		ID: TowerTownHall, Name: "Town Hall", Kind: KindTownHall,
		HealCost: 500, Health: 500, Damage: 5, FireInterval: 1, Range: 4,
	},
}

// DefenderIDs lists the purchasable buildings in shop order.
var DefenderIDs = []string{TowerShield, TowerBurst, TowerCatapult}

// TownHallLevel configures the town hall's own weapon per upgrade level.
type TownHallLevel struct {
	Interval            float64
	ShootFromAllPoints  bool
	BurstAbility        bool
	BurstCount          int
	BurstCooldown       float64
	BurstActivationTime float64
}

// TownHallLevels is indexed by upgrade level; levels past the end reuse the last.
var TownHallLevels = []TownHallLevel{
	{Interval: 1.0},
	{Interval: 0.8},
	{Interval: 0.8, ShootFromAllPoints: true},
	{Interval: 0.6, ShootFromAllPoints: true, BurstAbility: true, BurstCount: 3, BurstCooldown: 30, BurstActivationTime: 10},
}

func TownHallLevelAt(level int) TownHallLevel {
	if level < 0 {
		level = 0
	}
	if level >= len(TownHallLevels) {
		level = len(TownHallLevels) - 1
	}
	return TownHallLevels[level]
}

// Upgrade cost ladders; the final entry repeats forever.
var (
	TownHallUpgradeCosts   = []int{800, 1600, 3000, 6000, 10000}
	ProjectileUpgradeCosts = []int{600, 1200, 2000, 3000, 4500, 10000}
)

// LadderCost returns the cost for the given current level.
func LadderCost(ladder []int, level int) int {
	if len(ladder) == 0 {
		return 0
	}
	if level < 0 {
		level = 0
	}
	if level >= len(ladder) {
		return ladder[len(ladder)-1]
	}
	return ladder[level]
}

// ProjectileStats describes the town hall projectile at an upgrade level.
type ProjectileStats struct {
	Damage        float64
	Homing        bool
	Ricochet      bool
	RicochetCount int
	Explosion     bool
}

const projectileBaseDamage = 5.0

// ProjectileAt accumulates the per-level projectile perks.
func ProjectileAt(level int) ProjectileStats {
	p := ProjectileStats{Damage: projectileBaseDamage}
	if level >= 1 {
		p.Damage += 3
	}
	if level >= 2 {
		p.Homing = true
		p.Damage += 3
	}
	if level >= 3 {
		p.Ricochet = true
		p.RicochetCount = 1
	}
	if level >= 4 {
		p.Damage += 3
		p.RicochetCount++
	}
	if level >= 5 {
		p.Explosion = true
	}
	return p
}
