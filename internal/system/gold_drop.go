package system

import "go-tower-sim/internal/component"

// GoldDropper pays out the coins a dead enemy drops.
type GoldDropper struct {
	ledger      *Ledger
	coins       int
	goldPerCoin int
}

func NewGoldDropper(ledger *Ledger, coins, goldPerCoin int) *GoldDropper {
	return &GoldDropper{ledger: ledger, coins: coins, goldPerCoin: goldPerCoin}
}

func (g *GoldDropper) CoinValue(tier component.Tier) int {
	return g.goldPerCoin * tier.GoldMultiplier()
}

// Drop credits every coin separately and returns the total.
func (g *GoldDropper) Drop(tier component.Tier) int {
	value := g.CoinValue(tier)
	for i := 0; i < g.coins; i++ {
		g.ledger.Add(value)
	}
	return value * g.coins
}
