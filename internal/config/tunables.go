package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
)

// Enemy count formulas observed across revisions of the wave rules.
const (
	FormulaTiered = "tiered" // R<=2 ? R+8 : (R-2)*8
	FormulaLinear = "linear" // R*8
)

// Lattice connectivity used by the lane planner.
const (
	ConnectivityFace = "face" // 6 neighbours
	ConnectivityFull = "full" // 26 neighbours
)

var ErrInvalidTunables = errors.New("invalid tunables")

// GridTunables describes the lattice and lane generation.
type GridTunables struct {
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	Depth            int     `json:"depth"`
	ObstacleDensity  float64 `json:"obstacle_density"`
	Lanes            int     `json:"lanes"`
	MaxLaneAttempts  int     `json:"max_lane_attempts"`
	MinStartDistance float64 `json:"min_start_distance"`
	Connectivity     string  `json:"connectivity"`
}

type EconomyTunables struct {
	StartingGold    int `json:"starting_gold"`
	CoinsPerKill    int `json:"coins_per_kill"`
	BaseGoldPerCoin int `json:"base_gold_per_coin"`
	TownHallHealth  int `json:"town_hall_health"`
}

type PlacementTunables struct {
	RequiredDistanceFromPath        float64 `json:"required_distance_from_path"`
	RequiredMinimumDistanceFromPath float64 `json:"required_minimum_distance_from_path"`
}

// SpeciesRatio is the weighted species mix for rounds after the scripted ones.
type SpeciesRatio struct {
	Standard float64 `json:"standard"`
	Ranged   float64 `json:"ranged"`
	Tanky    float64 `json:"tanky"`
}

type WaveTunables struct {
	BaseSpawnDelay        float64      `json:"base_spawn_delay"`
	MinSpawnDelay         float64      `json:"min_spawn_delay"`
	SpawnDelayPerRound    float64      `json:"spawn_delay_per_round"`
	EnemyCountFormula     string       `json:"enemy_count_formula"`
	LaneBreakpoints       [3]int       `json:"lane_breakpoints"`
	SpeciesRatio          SpeciesRatio `json:"species_ratio"`
	RatioAdjustStartRound int          `json:"ratio_adjust_start_round"`
	RatioSkewPerDefender  float64      `json:"ratio_skew_per_defender"`
	CooldownDuration      float64      `json:"cooldown_duration"`
	VictoryRound          int          `json:"victory_round"`
}

// RarityTunables holds round gates and percent chances (0-100) per tier.
type RarityTunables struct {
	MidTierFromRound  int     `json:"mid_tier_from_round"`
	HighTierFromRound int     `json:"high_tier_from_round"`
	MidEmpowered      float64 `json:"mid_empowered"`
	MidMythic         float64 `json:"mid_mythic"`
	HighGodlike       float64 `json:"high_godlike"`
	HighLegendary     float64 `json:"high_legendary"`
	HighMythic        float64 `json:"high_mythic"`
	HighEmpowered     float64 `json:"high_empowered"`
}

// Tunables is the complete runtime configuration of a session.
type Tunables struct {
	Seed      int64             `json:"seed"`
	Grid      GridTunables      `json:"grid"`
	Economy   EconomyTunables   `json:"economy"`
	Placement PlacementTunables `json:"placement"`
	Wave      WaveTunables      `json:"wave"`
	Rarity    RarityTunables    `json:"rarity"`
}

// Default returns the tunables the game ships with.
func Default() Tunables {
	return Tunables{
		Grid: GridTunables{
			Width:            GridWidth,
			Height:           GridHeight,
			Depth:            GridDepth,
			ObstacleDensity:  ObstacleDensity,
			Lanes:            NumberOfLanes,
			MaxLaneAttempts:  MaxLaneAttempts,
			MinStartDistance: MinStartDistance,
			Connectivity:     ConnectivityFace,
		},
		Economy: EconomyTunables{
			StartingGold:    StartingGold,
			CoinsPerKill:    CoinsPerKill,
			BaseGoldPerCoin: BaseGoldPerCoin,
			TownHallHealth:  TownHallHealth,
		},
		Placement: PlacementTunables{
			RequiredDistanceFromPath:        RequiredDistanceFromPath,
			RequiredMinimumDistanceFromPath: RequiredMinimumDistanceFromPath,
		},
		Wave: WaveTunables{
			BaseSpawnDelay:        BaseSpawnDelay,
			MinSpawnDelay:         MinSpawnDelay,
			SpawnDelayPerRound:    SpawnDelayPerRound,
			EnemyCountFormula:     FormulaTiered,
			LaneBreakpoints:       [3]int{5, 10, 20},
			SpeciesRatio:          SpeciesRatio{Standard: 0.5, Ranged: 0.25, Tanky: 0.25},
			RatioAdjustStartRound: RatioAdjustStartRound,
			RatioSkewPerDefender:  RatioSkewPerDefender,
			CooldownDuration:      CooldownDuration,
			VictoryRound:          VictoryRound,
		},
		Rarity: RarityTunables{
			MidTierFromRound:  6,
			HighTierFromRound: 11,
			MidEmpowered:      20,
			MidMythic:         10,
			HighGodlike:       0.5,
			HighLegendary:     3,
			HighMythic:        10,
			HighEmpowered:     20,
		},
	}
}

// Validate reports the first inconsistent value.
func (t Tunables) Validate() error {
	switch {
	case t.Grid.Width < 1 || t.Grid.Height < 1 || t.Grid.Depth < 1:
		return fmt.Errorf("%w: grid dimensions must be positive", ErrInvalidTunables)
	case t.Grid.ObstacleDensity < 0 || t.Grid.ObstacleDensity >= 1:
		return fmt.Errorf("%w: obstacle density must be in [0,1)", ErrInvalidTunables)
	case t.Grid.Lanes < 1:
		return fmt.Errorf("%w: at least one lane is required", ErrInvalidTunables)
	case t.Grid.MaxLaneAttempts < 1:
		return fmt.Errorf("%w: max lane attempts must be positive", ErrInvalidTunables)
	case t.Grid.Connectivity != ConnectivityFace && t.Grid.Connectivity != ConnectivityFull:
		return fmt.Errorf("%w: unknown connectivity %q", ErrInvalidTunables, t.Grid.Connectivity)
	case t.Economy.StartingGold < 0:
		return fmt.Errorf("%w: starting gold must not be negative", ErrInvalidTunables)
	case t.Placement.RequiredMinimumDistanceFromPath < t.Placement.RequiredDistanceFromPath:
		return fmt.Errorf("%w: placement band is empty", ErrInvalidTunables)
	case t.Wave.EnemyCountFormula != FormulaTiered && t.Wave.EnemyCountFormula != FormulaLinear:
		return fmt.Errorf("%w: unknown enemy count formula %q", ErrInvalidTunables, t.Wave.EnemyCountFormula)
	case t.Wave.BaseSpawnDelay <= 0 || t.Wave.MinSpawnDelay <= 0:
		return fmt.Errorf("%w: spawn delays must be positive", ErrInvalidTunables)
	case t.Wave.LaneBreakpoints[0] > t.Wave.LaneBreakpoints[1] || t.Wave.LaneBreakpoints[1] > t.Wave.LaneBreakpoints[2]:
		return fmt.Errorf("%w: lane breakpoints must ascend", ErrInvalidTunables)
	case t.Wave.SpeciesRatio.Standard+t.Wave.SpeciesRatio.Ranged+t.Wave.SpeciesRatio.Tanky <= 0:
		return fmt.Errorf("%w: species ratio has no weight", ErrInvalidTunables)
	case t.Rarity.MidTierFromRound > t.Rarity.HighTierFromRound:
		return fmt.Errorf("%w: rarity round gates must ascend", ErrInvalidTunables)
	}
	return nil
}

// LoadTunables reads a JSON file on top of Default, so partial files only
// override what they name.
func LoadTunables(path string) (Tunables, error) {
	t := Default()
	file, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("failed to read tunables file: %w", err)
	}
	if err := json.Unmarshal(file, &t); err != nil {
		return t, fmt.Errorf("failed to unmarshal tunables: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, err
	}
	log.Printf("Loaded tunables from %s (seed %d)", path, t.Seed)
	return t, nil
}
