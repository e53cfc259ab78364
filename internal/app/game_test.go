package app

import (
	"errors"
	"testing"

	"go-tower-sim/internal/config"
	"go-tower-sim/internal/defs"
	"go-tower-sim/internal/event"
	"go-tower-sim/internal/state"
	"go-tower-sim/internal/system"
	"go-tower-sim/internal/world"
	"go-tower-sim/pkg/lattice"
)

type recorder struct {
	events []event.Event
}

func (r *recorder) OnEvent(e event.Event) { r.events = append(r.events, e) }

func (r *recorder) count(t event.EventType) int {
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func newTestGame(t *testing.T, mutate func(*config.Tunables)) (*Game, *world.World) {
	t.Helper()
	tun := config.Default()
	tun.Seed = 7
	if mutate != nil {
		mutate(&tun)
	}
	w := world.New()
	g, err := NewGame(tun, w)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if err := g.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return g, w
}

// validCell finds a free cell the validator accepts.
func validCell(t *testing.T, g *Game) lattice.Coord {
	t.Helper()
	for x := 0; x < g.Lattice.Width; x++ {
		for y := 0; y < g.Lattice.Height; y++ {
			for z := 0; z < g.Lattice.Depth; z++ {
				c := lattice.Coord{X: x, Y: y, Z: z}
				if g.CheckPlacement(c.Point()) == nil {
					return c
				}
			}
		}
	}
	t.Fatal("no valid placement cell on the map")
	return lattice.Coord{}
}

// startWave skips the tutorial and the cooldown.
func startWave(t *testing.T, g *Game) {
	t.Helper()
	if g.Mode() == state.Tutorial {
		if err := g.SkipCooldown(); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.SkipCooldown(); err != nil {
		t.Fatal(err)
	}
	if g.Mode() != state.Wave {
		t.Fatalf("mode = %s, want Wave", g.Mode())
	}
}

func killEverything(g *Game) {
	for _, h := range g.ECS.EnemyHandles() {
		g.DamageUnit(h, 1e9)
	}
}

func TestNewGame(t *testing.T) {
	g, w := newTestGame(t, nil)
	if g.Mode() != state.Tutorial {
		t.Errorf("mode = %s, want Tutorial", g.Mode())
	}
	if len(g.Lanes) != g.Tunables.Grid.Lanes || g.LaneErr != nil {
		t.Fatalf("lanes = %d, err = %v", len(g.Lanes), g.LaneErr)
	}
	for _, lane := range g.Lanes {
		if last := lane.Cells[len(lane.Cells)-1]; last != g.Lattice.Center() {
			t.Errorf("lane %d ends at %s", lane.Index, last)
		}
	}
	if !w.IsAlive(g.TownHall) || !g.ECS.IsAlive(g.TownHall) {
		t.Error("town hall missing")
	}
	if g.Ledger.Balance() != config.StartingGold {
		t.Errorf("balance = %d", g.Ledger.Balance())
	}
}

func TestNewGameRejectsBadTunables(t *testing.T) {
	tun := config.Default()
	tun.Grid.Lanes = 0
	if _, err := NewGame(tun, world.New()); !errors.Is(err, config.ErrInvalidTunables) {
		t.Errorf("err = %v, want ErrInvalidTunables", err)
	}
}

func TestLaneFailureDegrades(t *testing.T) {
	g, _ := newTestGame(t, func(tun *config.Tunables) {
		tun.Grid.MinStartDistance = 1000
	})
	if !errors.Is(g.LaneErr, lattice.ErrLaneExhausted) {
		t.Fatalf("LaneErr = %v", g.LaneErr)
	}
	if len(g.Lanes) != 1 {
		t.Errorf("lanes = %d, want the single lane that fit", len(g.Lanes))
	}
}

func TestNoLanesKeepsGameInBreak(t *testing.T) {
	g, _ := newTestGame(t, func(tun *config.Tunables) {
		tun.Grid = config.GridTunables{
			Width: 5, Height: 5, Depth: 5,
			ObstacleDensity: 0.999,
			Lanes:           1,
			MaxLaneAttempts: 10,
			Connectivity:    config.ConnectivityFace,
		}
	})
	if len(g.Lanes) != 0 || !errors.Is(g.LaneErr, lattice.ErrLaneExhausted) {
		t.Fatalf("lanes = %d, LaneErr = %v", len(g.Lanes), g.LaneErr)
	}

	if err := g.SkipCooldown(); err != nil {
		t.Fatalf("leaving the tutorial: %v", err)
	}
	if err := g.SkipCooldown(); !errors.Is(err, system.ErrNoLanes) {
		t.Fatalf("skip without lanes: err = %v", err)
	}
	if g.Mode() != state.Cooldown {
		t.Fatalf("mode = %s after refused skip", g.Mode())
	}

	for i := 0; i < 1000; i++ {
		g.Update(0.1)
	}
	if g.Mode() != state.Cooldown || g.WaveDirector.Round().Round != 0 {
		t.Fatalf("mode = %s round = %d after the break ran out", g.Mode(), g.WaveDirector.Round().Round)
	}
	if err := g.UpgradeProjectile(); errors.Is(err, ErrWrongMode) {
		t.Error("shop closed while stuck in the break")
	}
	if err := g.Pause(); err != nil {
		t.Fatal(err)
	}
	if err := g.Resume(); err != nil || g.Mode() != state.Cooldown {
		t.Errorf("resume: err = %v, mode = %s", err, g.Mode())
	}
}

func TestSkipAfterTutorialPurchase(t *testing.T) {
	g, _ := newTestGame(t, nil)
	if err := g.BeginPlacement(defs.TowerShield); err != nil {
		t.Fatal(err)
	}
	if _, err := g.ConfirmPlacement(validCell(t, g).Point()); err != nil {
		t.Fatal(err)
	}
	if g.Mode() != state.Upgrade || !g.Cooldown.Running() {
		t.Fatalf("mode = %s running = %v", g.Mode(), g.Cooldown.Running())
	}
	if err := g.SkipCooldown(); err != nil {
		t.Fatalf("SkipCooldown: %v", err)
	}
	if g.Mode() != state.Wave || g.WaveDirector.Round().Round != 1 {
		t.Errorf("mode = %s round = %d", g.Mode(), g.WaveDirector.Round().Round)
	}
}

func TestSkipWithStoppedTimerStartsWave(t *testing.T) {
	g, _ := newTestGame(t, nil)
	g.SkipCooldown()
	g.Cooldown.Stop()
	if err := g.SkipCooldown(); err != nil {
		t.Fatalf("SkipCooldown: %v", err)
	}
	if g.Mode() != state.Wave {
		t.Errorf("mode = %s, want Wave", g.Mode())
	}
}

func TestPlacementCancelRefundsPrice(t *testing.T) {
	g, _ := newTestGame(t, nil)
	for _, id := range []string{defs.TowerShield, defs.TowerBurst} {
		before := g.Ledger.Balance()
		if err := g.BeginPlacement(id); err != nil {
			t.Fatalf("BeginPlacement(%s): %v", id, err)
		}
		if g.Mode() != state.Placement {
			t.Fatalf("mode = %s", g.Mode())
		}
		if err := g.CancelPlacement(); err != nil {
			t.Fatal(err)
		}
		if g.Ledger.Balance() != before {
			t.Errorf("%s: balance %d after cancel, want %d", id, g.Ledger.Balance(), before)
		}
		if _, _, ok := g.Placing(); ok {
			t.Error("placement still pending")
		}
	}
}

func TestPlacementNeedsGold(t *testing.T) {
	g, _ := newTestGame(t, nil)
	if err := g.BeginPlacement(defs.TowerCatapult); !errors.Is(err, system.ErrInsufficientGold) {
		t.Fatalf("err = %v", err)
	}
	if g.Mode() != state.Tutorial || g.Ledger.Balance() != config.StartingGold {
		t.Error("failed purchase changed the game")
	}
}

func TestConfirmPlacement(t *testing.T) {
	g, w := newTestGame(t, nil)
	rec := &recorder{}
	g.EventDispatcher.Subscribe(event.DefenderPlaced, rec)

	if err := g.BeginPlacement(defs.TowerShield); err != nil {
		t.Fatal(err)
	}
	g.RotatePlacement()

	onPath := g.Lanes[0].Cells[1]
	if _, err := g.ConfirmPlacement(onPath.Point()); !errors.Is(err, system.ErrTooCloseToPath) {
		t.Fatalf("placing on the path: err = %v", err)
	}
	if g.Mode() != state.Placement {
		t.Fatal("rejected placement left Placement mode")
	}

	cell := validCell(t, g)
	h, err := g.ConfirmPlacement(cell.Point())
	if err != nil {
		t.Fatalf("ConfirmPlacement: %v", err)
	}
	if g.Mode() != state.Upgrade {
		t.Errorf("mode = %s, want Upgrade", g.Mode())
	}
	if c, _ := g.Lattice.Cell(cell); c.Occupant != lattice.Building {
		t.Errorf("cell %s holds %s", cell, c.Occupant)
	}
	if tower := g.ECS.Towers[h]; tower == nil || tower.Rotation != 90 {
		t.Errorf("tower = %+v", tower)
	}
	if !w.IsAlive(h) {
		t.Error("world has no building")
	}
	if rec.count(event.DefenderPlaced) != 1 {
		t.Error("DefenderPlaced not dispatched")
	}
	if g.Ledger.Balance() != config.StartingGold-100 {
		t.Errorf("balance = %d", g.Ledger.Balance())
	}
}

func TestDefenderDeathFreesCell(t *testing.T) {
	g, w := newTestGame(t, nil)
	rec := &recorder{}
	g.EventDispatcher.Subscribe(event.BuildingRemoved, rec)

	g.BeginPlacement(defs.TowerShield)
	cell := validCell(t, g)
	h, err := g.ConfirmPlacement(cell.Point())
	if err != nil {
		t.Fatal(err)
	}
	if !g.DamageUnit(h, 1e9) {
		t.Fatal("lethal damage did not kill the defender")
	}
	if _, ok := g.ECS.Towers[h]; ok || w.IsAlive(h) {
		t.Error("dead defender still present")
	}
	if c, _ := g.Lattice.Cell(cell); c.Occupied() {
		t.Errorf("cell still holds %s", c.Occupant)
	}
	if rec.count(event.BuildingRemoved) != 1 {
		t.Error("BuildingRemoved not dispatched")
	}
	if g.DamageUnit(h, 1) {
		t.Error("stale handle took damage")
	}
}

func TestRejectedBuildingFreesCell(t *testing.T) {
	g, w := newTestGame(t, nil)
	w.KnownBuilding = func(string) bool { return false }

	if err := g.BeginPlacement(defs.TowerShield); err != nil {
		t.Fatal(err)
	}
	cell := validCell(t, g)
	if _, err := g.ConfirmPlacement(cell.Point()); !errors.Is(err, world.ErrUnknownBuilding) {
		t.Fatalf("err = %v", err)
	}
	if c, _ := g.Lattice.Cell(cell); c.Occupied() {
		t.Errorf("cell still holds %s", c.Occupant)
	}
	if g.Mode() != state.Placement {
		t.Errorf("mode = %s, want the building still pending", g.Mode())
	}
	if _, _, ok := g.Placing(); !ok {
		t.Error("pending building lost")
	}
}

func TestCooldownExpiryStartsWave(t *testing.T) {
	g, _ := newTestGame(t, nil)
	g.SkipCooldown()
	if g.Mode() != state.Cooldown || !g.Cooldown.Running() {
		t.Fatalf("mode = %s running = %v", g.Mode(), g.Cooldown.Running())
	}
	g.Update(g.Tunables.Wave.CooldownDuration / 2)
	if g.Mode() != state.Cooldown {
		t.Fatal("cooldown ended early")
	}
	g.Update(g.Tunables.Wave.CooldownDuration / 2)
	if g.Mode() != state.Wave || g.WaveDirector.Round().Round != 1 {
		t.Errorf("mode = %s round = %d", g.Mode(), g.WaveDirector.Round().Round)
	}
}

func TestWaveCycleEarnsGold(t *testing.T) {
	g, _ := newTestGame(t, nil)
	rec := &recorder{}
	g.EventDispatcher.Subscribe(event.EnemyKilled, rec)
	startWave(t, g)

	for i := 0; i < 1000 && g.Mode() == state.Wave; i++ {
		g.Update(0.05)
		killEverything(g)
	}
	if g.Mode() != state.Cooldown {
		t.Fatalf("mode = %s after clearing round 1", g.Mode())
	}
	if rec.count(event.EnemyKilled) != 9 {
		t.Errorf("kills = %d, want 9", rec.count(event.EnemyKilled))
	}
	if want := config.StartingGold + 9*3*15; g.Ledger.Balance() != want {
		t.Errorf("balance = %d, want %d", g.Ledger.Balance(), want)
	}
	if !g.Cooldown.Running() {
		t.Error("cooldown not restarted")
	}
}

func TestVictory(t *testing.T) {
	g, _ := newTestGame(t, func(tun *config.Tunables) { tun.Wave.VictoryRound = 1 })
	startWave(t, g)
	for i := 0; i < 1000 && g.Mode() == state.Wave; i++ {
		g.Update(0.05)
		killEverything(g)
	}
	if g.Mode() != state.Victory {
		t.Fatalf("mode = %s, want Victory", g.Mode())
	}
	if err := g.SkipCooldown(); !errors.Is(err, ErrWrongMode) {
		t.Errorf("skip after victory: %v", err)
	}
}

func TestEnemiesAtGoalEndTheGame(t *testing.T) {
	g, _ := newTestGame(t, func(tun *config.Tunables) { tun.Economy.TownHallHealth = 15 })
	rec := &recorder{}
	g.EventDispatcher.Subscribe(event.TownHallHit, rec)
	startWave(t, g)

	for i := 0; i < 200 && g.ECS.LiveEnemies() < 2; i++ {
		g.Update(0.05)
	}
	handles := g.ECS.EnemyHandles()
	if len(handles) < 2 {
		t.Fatalf("only %d enemies spawned", len(handles))
	}
	g.EnemyReachedGoal(handles[0])
	if g.Mode() != state.Wave {
		t.Fatal("one knight should not destroy the town hall")
	}
	g.EnemyReachedGoal(handles[0])
	if rec.count(event.TownHallHit) != 1 {
		t.Error("stale arrival damaged the town hall")
	}
	g.EnemyReachedGoal(handles[1])
	if g.Mode() != state.GameOver {
		t.Fatalf("mode = %s, want GameOver", g.Mode())
	}
	if g.WaveDirector.Active() {
		t.Error("game over did not cancel the wave")
	}
}

func TestPauseFreezesWave(t *testing.T) {
	g, _ := newTestGame(t, nil)
	startWave(t, g)
	g.Update(0)
	spawned := g.ECS.LiveEnemies()

	if err := g.Pause(); err != nil {
		t.Fatal(err)
	}
	if err := g.Pause(); !errors.Is(err, state.ErrAlreadyPaused) {
		t.Errorf("double pause: %v", err)
	}
	for i := 0; i < 100; i++ {
		g.Update(0.5)
	}
	if g.ECS.LiveEnemies() != spawned {
		t.Error("spawning continued while paused")
	}
	if err := g.Resume(); err != nil {
		t.Fatal(err)
	}
	if g.Mode() != state.Wave || g.WaveDirector.Round().Round != 1 {
		t.Errorf("resumed into %s round %d", g.Mode(), g.WaveDirector.Round().Round)
	}
	g.Update(1)
	if g.ECS.LiveEnemies() <= spawned {
		t.Error("emission did not continue after resume")
	}
}

func TestPauseDuringPlacementKeepsPurchase(t *testing.T) {
	g, _ := newTestGame(t, nil)
	g.BeginPlacement(defs.TowerShield)
	g.Pause()
	g.Resume()
	if id, _, ok := g.Placing(); !ok || id != defs.TowerShield {
		t.Fatal("pause dropped the pending placement")
	}
	if g.Ledger.Balance() != config.StartingGold-100 {
		t.Errorf("balance = %d", g.Ledger.Balance())
	}
}
