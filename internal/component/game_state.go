package component

// RoundState is the per-session wave progression. Round only grows.
type RoundState struct {
	Round      int
	EnemyCount int
	SpawnDelay float64
	Lanes      int
}
