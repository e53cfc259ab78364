// internal/config/config.go
package config

import "image/color"

const (
	// Lattice
	GridWidth        = 10
	GridHeight       = 10
	GridDepth        = 10
	ObstacleDensity  = 0.08
	NumberOfLanes    = 3
	MaxLaneAttempts  = 10
	MinStartDistance = 4

	// Economy
	StartingGold       = 300
	TownHallHealth     = 500
	CoinsPerKill       = 3
	BaseGoldPerCoin    = 15
	ShieldDefenderCost = 100
	BurstDefenderCost  = 300
	CatapultCost       = 1000

	// Placement
	RequiredDistanceFromPath        = 1.0
	RequiredMinimumDistanceFromPath = 3.0

	// Waves
	BaseSpawnDelay        = 1.0
	MinSpawnDelay         = 0.1
	SpawnDelayPerRound    = 0.05
	CooldownDuration      = 20.0
	RatioAdjustStartRound = 25
	RatioSkewPerDefender  = 0.05
	VictoryRound          = 0 // 0 — endless

	MaxDeltaTime = 0.06
	TickRate     = 60
)

// Viewer
const (
	ScreenWidth  = 900
	ScreenHeight = 900
	CellPixels   = 60.0
	HUDOffsetX   = 12
	HUDOffsetY   = 12
)

var (
	BackgroundColor = color.RGBA{20, 20, 30, 255}
	GroundColor     = color.RGBA{70, 100, 120, 220}
	ObstacleColor   = color.RGBA{60, 120, 60, 255}
	PathColor       = color.RGBA{194, 178, 128, 255}
	GoalColor       = color.RGBA{50, 205, 50, 255}
	EnemyColor      = color.RGBA{220, 60, 60, 255}
	BuildingColor   = color.RGBA{70, 130, 180, 255}
	PreviewOK       = color.RGBA{255, 255, 255, 160}
	PreviewBad      = color.RGBA{255, 50, 50, 160}
	TextLightColor  = color.RGBA{240, 240, 240, 255}
	TierColors      = []color.RGBA{
		{220, 60, 60, 255},   // Normal
		{80, 160, 255, 255},  // Empowered
		{180, 50, 230, 255},  // Mythic
		{255, 165, 0, 255},   // Legendary
		{255, 215, 0, 255},   // Godlike
	}
)
