// internal/defs/types.go
package defs

// Role groups enemy species for the weighted spawn ratio.
type Role string

const (
	RoleStandard Role = "STANDARD"
	RoleRanged   Role = "RANGED"
	RoleTanky    Role = "TANKY"
)

// Roles lists the weighted roles in draw order.
var Roles = []Role{RoleStandard, RoleRanged, RoleTanky}

// BuildingKind is the player-facing defender category.
type BuildingKind string

const (
	KindShield   BuildingKind = "SHIELD"
	KindBurst    BuildingKind = "BURST"
	KindCatapult BuildingKind = "CATAPULT"
	KindTownHall BuildingKind = "TOWN_HALL"
)
