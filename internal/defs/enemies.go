package defs

// EnemyDefinition holds all the static data for a specific type of enemy.
type EnemyDefinition struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Role   Role    `json:"role"`
	Health float64 `json:"health"`
	Damage float64 `json:"damage"`
	Speed  float64 `json:"speed"` // cells per second
	Range  float64 `json:"range"` // 0 for melee
}

const (
	EnemyKnight      = "ENEMY_KNIGHT"
	EnemyHeavyKnight = "ENEMY_HEAVY_KNIGHT"
	EnemyWizard      = "ENEMY_WIZARD"
)

// EnemyLibrary is a map to hold all enemy definitions, keyed by their ID.
var EnemyLibrary = map[string]EnemyDefinition{
	EnemyKnight:      {ID: EnemyKnight, Name: "Knight", Role: RoleStandard, Health: 100, Damage: 10, Speed: 3.5},
	EnemyHeavyKnight: {ID: EnemyHeavyKnight, Name: "Heavy Knight", Role: RoleTanky, Health: 250, Damage: 15, Speed: 2.5},
	EnemyWizard:      {ID: EnemyWizard, Name: "Wizard", Role: RoleRanged, Health: 70, Damage: 12, Speed: 3.0, Range: 4},
}

// SpeciesForRole returns the first species ID with the given role.
func SpeciesForRole(role Role) (string, bool) {
	// fixed order keeps draws reproducible
	for _, id := range []string{EnemyKnight, EnemyHeavyKnight, EnemyWizard} {
		if def, ok := EnemyLibrary[id]; ok && def.Role == role {
			return id, true
		}
	}
	for id, def := range EnemyLibrary {
		if def.Role == role {
			return id, true
		}
	}
	return "", false
}
