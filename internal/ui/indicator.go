// internal/ui/indicator.go
package ui

import (
	"image/color"
	"math"
	"time"

	"go-tower-sim/internal/state"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var modeColors = map[state.Mode]color.RGBA{
	state.Tutorial:  {R: 200, G: 200, B: 200, A: 255},
	state.Cooldown:  {R: 70, G: 130, B: 180, A: 255},
	state.Placement: {R: 255, G: 215, B: 0, A: 255},
	state.Upgrade:   {R: 180, G: 50, B: 230, A: 255},
	state.Wave:      {R: 220, G: 60, B: 60, A: 255},
	state.Pause:     {R: 128, G: 128, B: 128, A: 255},
	state.GameOver:  {R: 40, G: 0, B: 0, A: 255},
	state.Victory:   {R: 50, G: 205, B: 50, A: 255},
}

// ModeColor is the indicator colour of a mode.
func ModeColor(m state.Mode) color.RGBA {
	if c, ok := modeColors[m]; ok {
		return c
	}
	return color.RGBA{A: 255}
}

// StateIndicator is a round light that pulses whenever the mode changes.
type StateIndicator struct {
	X, Y       float32
	Radius     float32
	lastMode   state.Mode
	lastChange time.Time
}

func NewStateIndicator(x, y, radius float32) *StateIndicator {
	return &StateIndicator{X: x, Y: y, Radius: radius}
}

// Draw отрисовывает индикатор
func (i *StateIndicator) Draw(screen *ebiten.Image, mode state.Mode) {
	if mode != i.lastMode {
		i.lastMode = mode
		i.lastChange = time.Now()
	}
	elapsed := time.Since(i.lastChange).Seconds()
	scale := 1.0 + 0.3*math.Exp(-elapsed*8)
	currentRadius := i.Radius * float32(scale)

	vector.DrawFilledCircle(screen, i.X, i.Y, currentRadius, ModeColor(mode), true)
	vector.StrokeCircle(screen, i.X, i.Y, currentRadius, 1, color.White, true)
}

// IsClicked проверяет, был ли клик внутри индикатора
func (i *StateIndicator) IsClicked(x, y int) bool {
	dx := float32(x) - i.X
	dy := float32(y) - i.Y
	return dx*dx+dy*dy <= i.Radius*i.Radius
}
