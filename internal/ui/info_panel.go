// internal/ui/info_panel.go
package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"go-tower-sim/internal/app"
	"go-tower-sim/internal/config"
	"go-tower-sim/internal/defs"
	"go-tower-sim/internal/state"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	panelHeight    = 150
	panelMargin    = 5
	animationSpeed = 10.0
	lineHeight     = 18
)

// StatusLines is the always-visible HUD text.
func StatusLines(g *app.Game) []string {
	round := g.WaveDirector.Round()
	lines := []string{
		fmt.Sprintf("Gold: %d", g.Ledger.Balance()),
		fmt.Sprintf("Round: %d  Mode: %s", round.Round, g.Mode()),
	}
	if hall, ok := g.ECS.Healths[g.TownHall]; ok {
		lines = append(lines, fmt.Sprintf("Town hall: %.0f / %.0f", hall.Current, hall.Max))
	}
	if g.Cooldown.Running() {
		lines = append(lines, fmt.Sprintf("Next wave in %.1fs", g.Cooldown.Remaining()))
	}
	if n := g.ECS.LiveEnemies(); n > 0 {
		lines = append(lines, fmt.Sprintf("Enemies: %d", n))
	}
	if g.CombatSystem.BurstActive() {
		lines = append(lines, "BURST")
	}
	return lines
}

// PanelLines is the context help for the current mode. Empty means the
// panel slides away.
func PanelLines(g *app.Game) []string {
	switch g.Mode() {
	case state.Tutorial:
		return []string{
			"Defend the town hall in the middle of the map.",
			"Space: start  P: pause",
		}
	case state.Cooldown:
		lines := shopLines()
		lines = append(lines,
			fmt.Sprintf("T: town hall lvl %d (%d gold)  Y: projectile lvl %d (%d gold)",
				g.Shop.TownHallLevel()+1, g.Shop.TownHallUpgradeCost(),
				g.Shop.ProjectileLevel()+1, g.Shop.ProjectileUpgradeCost()),
			"Space: skip cooldown",
		)
		return lines
	case state.Placement:
		defID, rotation, _ := g.Placing()
		return []string{
			fmt.Sprintf("Placing %s, facing %d", defs.TowerLibrary[defID].Name, rotation),
			"Click: place  R: rotate  Esc: cancel",
		}
	case state.Upgrade:
		return []string{
			fmt.Sprintf("T: town hall lvl %d (%d gold)", g.Shop.TownHallLevel()+1, g.Shop.TownHallUpgradeCost()),
			fmt.Sprintf("Y: projectile lvl %d (%d gold)", g.Shop.ProjectileLevel()+1, g.Shop.ProjectileUpgradeCost()),
			fmt.Sprintf("H: heal town hall (%d gold)  J: heal shields (%d gold)",
				g.Shop.HealCost(defs.KindTownHall), g.Shop.HealCost(defs.KindShield)),
			"Enter: done  Space: skip cooldown",
		}
	case state.Pause:
		return []string{"Paused. P: resume"}
	case state.GameOver:
		return []string{"The town hall has fallen."}
	case state.Victory:
		return []string{"Victory!"}
	}
	return nil
}

func shopLines() []string {
	lines := make([]string, 0, len(defs.DefenderIDs)+2)
	for i, id := range defs.DefenderIDs {
		def := defs.TowerLibrary[id]
		lines = append(lines, fmt.Sprintf("%d: %s (%d gold)", i+1, def.Name, def.Cost))
	}
	return lines
}

// InfoPanel slides up from the bottom of the screen with the mode help.
type InfoPanel struct {
	IsVisible bool
	fontFace  font.Face
	currentY  float64
	targetY   float64
	lines     []string
}

// NewInfoPanel creates a new information panel.
func NewInfoPanel(face font.Face) *InfoPanel {
	return &InfoPanel{
		fontFace: face,
		currentY: config.ScreenHeight,
		targetY:  config.ScreenHeight,
	}
}

func (p *InfoPanel) Update(g *app.Game) {
	p.lines = PanelLines(g)
	if len(p.lines) > 0 {
		p.IsVisible = true
		p.targetY = config.ScreenHeight - panelHeight
	} else {
		p.targetY = config.ScreenHeight
	}

	// Анимация панели
	if p.currentY != p.targetY {
		diff := p.targetY - p.currentY
		if math.Abs(diff) < animationSpeed {
			p.currentY = p.targetY
		} else if diff > 0 {
			p.currentY += animationSpeed
		} else {
			p.currentY -= animationSpeed
		}

		if p.currentY >= config.ScreenHeight {
			p.IsVisible = false
		}
	}
}

func (p *InfoPanel) Draw(screen *ebiten.Image) {
	if !p.IsVisible {
		return
	}

	panelRect := image.Rect(
		panelMargin,
		int(p.currentY)+panelMargin,
		config.ScreenWidth-panelMargin,
		int(p.currentY)+panelHeight-panelMargin,
	)

	bgColor := color.RGBA{R: 25, G: 35, B: 45, A: 230}
	vector.DrawFilledRect(screen, float32(panelRect.Min.X), float32(panelRect.Min.Y), float32(panelRect.Dx()), float32(panelRect.Dy()), bgColor, true)
	borderColor := color.RGBA{R: 70, G: 130, B: 180, A: 255}
	vector.StrokeRect(screen, float32(panelRect.Min.X), float32(panelRect.Min.Y), float32(panelRect.Dx()), float32(panelRect.Dy()), 2, borderColor, true)

	y := panelRect.Min.Y + 15 + lineHeight/2
	for _, line := range p.lines {
		text.Draw(screen, line, p.fontFace, panelRect.Min.X+15, y, config.TextLightColor)
		y += lineHeight
	}
}

// DrawStatus draws the HUD text in the top-left corner.
func DrawStatus(screen *ebiten.Image, face font.Face, g *app.Game) {
	y := config.HUDOffsetY + lineHeight/2
	for _, line := range StatusLines(g) {
		text.Draw(screen, line, face, config.HUDOffsetX, y, config.TextLightColor)
		y += lineHeight
	}
}
