package event

import (
	"go-tower-sim/internal/component"
	"go-tower-sim/internal/types"
	"go-tower-sim/pkg/lattice"
)

const (
	ModeChanged     EventType = "ModeChanged"     // state.Change
	GoldAdded       EventType = "GoldAdded"       // GoldChange
	GoldSpent       EventType = "GoldSpent"       // GoldChange
	WaveStarted     EventType = "WaveStarted"     // component.RoundState
	WaveCleared     EventType = "WaveCleared"     // component.RoundState
	UnitSpawned     EventType = "UnitSpawned"     // system.UnitSpawn
	EnemyKilled     EventType = "EnemyKilled"     // KillInfo
	EnemyReachedEnd EventType = "EnemyReachedEnd" // types.Handle
	DefenderPlaced  EventType = "DefenderPlaced"  // PlacementResult
	BuildingRemoved EventType = "BuildingRemoved" // types.Handle
	TownHallHit     EventType = "TownHallHit"     // float64 remaining health
	UpgradePurchase EventType = "UpgradePurchase" // Upgrade
)

// GoldChange is the payload of GoldAdded and GoldSpent.
type GoldChange struct {
	Amount  int
	Balance int
}

// Upgrade is the payload of UpgradePurchase.
type Upgrade struct {
	Kind  string
	Level int
	Cost  int
}

type KillInfo struct {
	Handle  types.Handle
	Species string
	Tier    component.Tier
	Gold    int
}

type PlacementResult struct {
	Handle     types.Handle
	BuildingID string
	Cell       lattice.Coord
	Rotation   int
	Cost       int
}
