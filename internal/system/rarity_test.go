package system

import (
	"math"
	"testing"

	"go-tower-sim/internal/component"
	"go-tower-sim/internal/config"
	"go-tower-sim/internal/types"
	"go-tower-sim/internal/utils"
)

func newRarity(seed int64) *RarityAssigner {
	return NewRarityAssigner(utils.NewPRNGService(seed), config.Default().Rarity)
}

func TestEarlyRoundsAreAlwaysNormal(t *testing.T) {
	r := newRarity(5)
	for round := 1; round <= 5; round++ {
		for i := 0; i < 2000; i++ {
			if tier := r.Assign(round); tier != component.Normal {
				t.Fatalf("round %d produced %s", round, tier)
			}
		}
	}
}

func TestTierThresholds(t *testing.T) {
	r := newRarity(1)
	tests := []struct {
		round int
		roll  float64
		want  component.Tier
	}{
		{6, 0, component.Empowered},
		{6, 19.99, component.Empowered},
		{6, 20, component.Mythic},
		{10, 29.99, component.Mythic},
		{10, 30, component.Normal},
		{11, 0.49, component.Godlike},
		{11, 0.5, component.Legendary},
		{50, 3.49, component.Legendary},
		{50, 3.5, component.Mythic},
		{50, 13.49, component.Mythic},
		{50, 13.5, component.Empowered},
		{50, 33.49, component.Empowered},
		{50, 33.5, component.Normal},
		{50, 99.99, component.Normal},
	}
	for _, tc := range tests {
		if got := r.tierFor(tc.round, tc.roll); got != tc.want {
			t.Errorf("tierFor(%d, %.2f) = %s, want %s", tc.round, tc.roll, got, tc.want)
		}
	}
}

func TestGodlikeRate(t *testing.T) {
	r := newRarity(2024)
	const n = 200000
	godlike := 0
	for i := 0; i < n; i++ {
		if r.Assign(50) == component.Godlike {
			godlike++
		}
	}
	p := 0.005
	sigma := math.Sqrt(p * (1 - p) / n)
	rate := float64(godlike) / n
	if math.Abs(rate-p) > 5*sigma {
		t.Errorf("godlike rate %.5f outside %.5f ± %.5f", rate, p, 5*sigma)
	}
}

func TestApplyOverwritesHealth(t *testing.T) {
	r := newRarity(1)
	h := component.NewHealth(types.NewHandle(), 100, nil)
	h.TakeDamage(30)

	stats := r.Apply(component.Legendary, component.Stats{Health: 100, Damage: 10, Speed: 2}, h)
	if stats.Health != 300 || stats.Damage != 30 {
		t.Errorf("stats = %+v", stats)
	}
	if h.Max != 300 || h.Current != 300 {
		t.Errorf("health = %v/%v, want 300/300", h.Current, h.Max)
	}
}
