package main

import (
	"errors"
	"image/color"
	"log"

	"go-tower-sim/internal/app"
	"go-tower-sim/internal/component"
	"go-tower-sim/internal/config"
	"go-tower-sim/internal/defs"
	"go-tower-sim/internal/state"
	"go-tower-sim/internal/system"
	"go-tower-sim/internal/types"
	"go-tower-sim/internal/ui"
	"go-tower-sim/internal/world"
	"go-tower-sim/pkg/lattice"
	"go-tower-sim/pkg/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// GameScreen — экран игры: ввод, шаг симуляции и отрисовка.
type GameScreen struct {
	game          *app.Game
	world         *world.World
	renderer      *render.LatticeRenderer
	indicator     *ui.StateIndicator
	waveIndicator *ui.WaveIndicator
	infoPanel     *ui.InfoPanel
	fontFace      font.Face
}

func NewGameScreen(t config.Tunables) (*GameScreen, error) {
	w := world.New()
	w.KnownBuilding = func(id string) bool {
		_, ok := defs.TowerLibrary[id]
		return ok
	}
	g, err := app.NewGame(t, w)
	if err != nil {
		return nil, err
	}
	if err := g.Start(); err != nil {
		return nil, err
	}

	// Создаем и заполняем структуру с цветами для рендерера
	mapColors := render.MapColors{
		BackgroundColor: config.BackgroundColor,
		GroundColor:     config.GroundColor,
		ObstacleColor:   config.ObstacleColor,
		PathColor:       config.PathColor,
		GoalColor:       config.GoalColor,
		TextLightColor:  config.TextLightColor,
		StrokeWidth:     1,
	}
	renderer := render.NewLatticeRenderer(g.Lattice, config.CellPixels, config.ScreenWidth, config.ScreenHeight, mapColors)
	renderer.RenderMapImage()

	face := basicfont.Face7x13
	return &GameScreen{
		game:          g,
		world:         w,
		renderer:      renderer,
		indicator:     ui.NewStateIndicator(config.ScreenWidth-30, 30, 12),
		waveIndicator: ui.NewWaveIndicator(config.ScreenWidth/2, 30, face),
		infoPanel:     ui.NewInfoPanel(face),
		fontFace:      face,
	}, nil
}

func (s *GameScreen) Update(deltaTime float64) {
	s.handleKeys()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if s.indicator.IsClicked(x, y) {
			s.togglePause()
		} else {
			s.handleMapClick(x, y)
		}
	}

	s.game.Update(deltaTime)
	if s.game.Mode() == state.Wave {
		for _, h := range s.world.Update(deltaTime) {
			s.game.EnemyReachedGoal(h)
		}
	}
	s.infoPanel.Update(s.game)
}

func (s *GameScreen) handleKeys() {
	g := s.game
	pressed := inpututil.IsKeyJustPressed

	switch {
	case pressed(ebiten.KeyP):
		s.togglePause()
	case pressed(ebiten.KeySpace):
		s.report("skip", g.SkipCooldown())
	case pressed(ebiten.KeyR):
		g.RotatePlacement()
	case pressed(ebiten.KeyEscape):
		s.report("cancel", g.CancelPlacement())
	case pressed(ebiten.KeyEnter):
		s.report("close upgrades", g.CloseUpgrades())
	case pressed(ebiten.KeyT):
		s.report("town hall upgrade", g.UpgradeTownHall())
	case pressed(ebiten.KeyY):
		s.report("projectile upgrade", g.UpgradeProjectile())
	case pressed(ebiten.KeyH):
		s.report("heal", g.Heal(defs.KindTownHall))
	case pressed(ebiten.KeyJ):
		s.report("heal", g.Heal(defs.KindShield))
	}

	keys := []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3}
	for i, key := range keys {
		if i < len(defs.DefenderIDs) && pressed(key) {
			s.report("buy", g.BeginPlacement(defs.DefenderIDs[i]))
		}
	}
}

func (s *GameScreen) togglePause() {
	if s.game.Mode() == state.Pause {
		s.report("resume", s.game.Resume())
		return
	}
	s.report("pause", s.game.Pause())
}

func (s *GameScreen) handleMapClick(x, y int) {
	if _, _, placing := s.game.Placing(); !placing {
		return
	}
	cell, ok := s.placementCell(x, y)
	if !ok {
		log.Println("No valid height in that column")
		return
	}
	_, err := s.game.ConfirmPlacement(cell.Point())
	s.report("place", err)
}

// placementCell picks the lowest cell of the column under the cursor that
// accepts the pending building.
func (s *GameScreen) placementCell(x, y int) (lattice.Coord, bool) {
	cx, cz, ok := s.renderer.ToColumn(x, y)
	if !ok {
		return lattice.Coord{}, false
	}
	for h := 0; h < s.game.Lattice.Height; h++ {
		c := lattice.Coord{X: cx, Y: h, Z: cz}
		if s.game.CheckPlacement(c.Point()) == nil {
			return c, true
		}
	}
	return lattice.Coord{X: cx, Z: cz}, false
}

func (s *GameScreen) report(action string, err error) {
	switch {
	case err == nil:
	case errors.Is(err, system.ErrInsufficientGold):
		log.Printf("Not enough gold for %s", action)
	default:
		log.Printf("Cannot %s: %v", action, err)
	}
}

func (s *GameScreen) Draw(screen *ebiten.Image) {
	s.renderer.Draw(screen)

	for _, b := range s.world.Buildings() {
		fill := config.BuildingColor
		if b.Handle == s.game.TownHall {
			fill = config.GoalColor
		}
		s.renderer.DrawBuilding(screen, b.Position, b.Rotation, fill, s.healthFraction(b.Handle))
	}
	for _, u := range s.world.Units() {
		s.renderer.DrawUnit(screen, u.Position, tierColor(u.Tier), s.healthFraction(u.Handle))
	}

	if _, _, placing := s.game.Placing(); placing {
		x, y := ebiten.CursorPosition()
		if cx, cz, ok := s.renderer.ToColumn(x, y); ok {
			preview := config.PreviewBad
			if _, valid := s.placementCell(x, y); valid {
				preview = config.PreviewOK
			}
			s.renderer.DrawPreview(screen, cx, cz, preview)
		}
	}

	ui.DrawStatus(screen, s.fontFace, s.game)
	s.waveIndicator.Draw(screen, s.game.WaveDirector.Round().Round)
	s.indicator.Draw(screen, s.game.Mode())
	s.infoPanel.Draw(screen)
}

func (s *GameScreen) healthFraction(h types.Handle) float64 {
	health, ok := s.game.ECS.Healths[h]
	if !ok || health.Max <= 0 {
		return 1
	}
	return health.Current / health.Max
}

func tierColor(t component.Tier) color.RGBA {
	if int(t) >= 0 && int(t) < len(config.TierColors) {
		return config.TierColors[t]
	}
	return config.EnemyColor
}
