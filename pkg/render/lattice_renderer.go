package render

import (
	"fmt"
	"image/color"
	"math"

	"go-tower-sim/pkg/lattice"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// LatticeRenderer draws the lattice from above: one square per (x, z)
// column, coloured by what the column holds.
type LatticeRenderer struct {
	lattice      *lattice.Lattice
	colors       MapColors
	cellSize     float32
	originX      float32
	originY      float32
	screenWidth  int
	screenHeight int
	fontFace     font.Face
	mapImage     *ebiten.Image // Поле для предрендеренной карты
}

func NewLatticeRenderer(l *lattice.Lattice, cellSize float32, screenWidth, screenHeight int, colors MapColors) *LatticeRenderer {
	return &LatticeRenderer{
		lattice:      l,
		colors:       colors,
		cellSize:     cellSize,
		originX:      (float32(screenWidth) - float32(l.Width)*cellSize) / 2,
		originY:      (float32(screenHeight) - float32(l.Depth)*cellSize) / 2,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		fontFace:     basicfont.Face7x13,
	}
}

// ColumnColor picks the fill of a column. Path wins over everything, then
// obstacles, shaded darker the more of the column they fill.
func (r *LatticeRenderer) ColumnColor(x, z int) color.RGBA {
	if c := r.lattice.Center(); x == c.X && z == c.Z {
		return r.colors.GoalColor
	}
	obstacles := 0
	for y := 0; y < r.lattice.Height; y++ {
		cell, ok := r.lattice.Cell(lattice.Coord{X: x, Y: y, Z: z})
		if !ok {
			continue
		}
		switch cell.Occupant {
		case lattice.Path:
			return r.colors.PathColor
		case lattice.Obstacle:
			obstacles++
		}
	}
	if obstacles == 0 {
		return r.colors.GroundColor
	}
	fill := float64(obstacles) / float64(r.lattice.Height)
	return ShadeColor(r.colors.ObstacleColor, 1-0.5*fill)
}

// PathHeight returns the lowest path cell of a column, if any.
func (r *LatticeRenderer) PathHeight(x, z int) (int, bool) {
	for y := 0; y < r.lattice.Height; y++ {
		if cell, ok := r.lattice.Cell(lattice.Coord{X: x, Y: y, Z: z}); ok && cell.Occupant == lattice.Path {
			return y, true
		}
	}
	return 0, false
}

// ToScreen projects a lattice point onto the screen, dropping the height.
func (r *LatticeRenderer) ToScreen(p lattice.Point) (float32, float32) {
	return r.originX + (float32(p.X)+0.5)*r.cellSize, r.originY + (float32(p.Z)+0.5)*r.cellSize
}

// ToColumn maps a screen position back to the column under it.
func (r *LatticeRenderer) ToColumn(screenX, screenY int) (x, z int, ok bool) {
	fx := (float32(screenX) - r.originX) / r.cellSize
	fz := (float32(screenY) - r.originY) / r.cellSize
	if fx < 0 || fz < 0 {
		return 0, 0, false
	}
	x, z = int(fx), int(fz)
	return x, z, x < r.lattice.Width && z < r.lattice.Depth
}

// RenderMapImage создаёт предрендеренное изображение задника.
// Call it again after the terrain changes.
func (r *LatticeRenderer) RenderMapImage() {
	if r.mapImage == nil {
		r.mapImage = ebiten.NewImage(r.screenWidth, r.screenHeight)
	}
	r.mapImage.Fill(r.colors.BackgroundColor)

	for x := 0; x < r.lattice.Width; x++ {
		for z := 0; z < r.lattice.Depth; z++ {
			r.drawColumn(r.mapImage, x, z)
		}
	}
}

func (r *LatticeRenderer) drawColumn(target *ebiten.Image, x, z int) {
	left := r.originX + float32(x)*r.cellSize
	top := r.originY + float32(z)*r.cellSize
	fill := r.ColumnColor(x, z)

	vector.DrawFilledRect(target, left, top, r.cellSize, r.cellSize, fill, false)
	vector.StrokeRect(target, left, top, r.cellSize, r.cellSize, r.colors.StrokeWidth, LightenColor(fill, 40), false)

	if y, ok := r.PathHeight(x, z); ok {
		label := fmt.Sprintf("%d", y)
		bounds := text.BoundString(r.fontFace, label)
		text.Draw(target, label, r.fontFace, int(left)+3, int(top)+bounds.Dy()+2, DarkenColor(fill))
	}
}

// Draw blits the pre-rendered map, building it on first use.
func (r *LatticeRenderer) Draw(screen *ebiten.Image) {
	if r.mapImage == nil {
		r.RenderMapImage()
	}
	screen.DrawImage(r.mapImage, nil)
}

// DrawUnit draws an enemy as a filled circle with a health bar above it.
func (r *LatticeRenderer) DrawUnit(screen *ebiten.Image, p lattice.Point, fill color.RGBA, healthFraction float64) {
	cx, cy := r.ToScreen(p)
	radius := r.cellSize / 5
	vector.DrawFilledCircle(screen, cx, cy, radius, fill, true)
	vector.StrokeCircle(screen, cx, cy, radius, 1, color.White, true)
	r.drawBar(screen, cx-radius, cy-radius-6, 2*radius, healthFraction)
}

// DrawBuilding draws a square with a notch showing which way it faces.
func (r *LatticeRenderer) DrawBuilding(screen *ebiten.Image, p lattice.Point, rotation int, fill color.RGBA, healthFraction float64) {
	cx, cy := r.ToScreen(p)
	half := r.cellSize / 3
	vector.DrawFilledRect(screen, cx-half, cy-half, 2*half, 2*half, fill, true)
	vector.StrokeRect(screen, cx-half, cy-half, 2*half, 2*half, 2, LightenColor(fill, 60), true)

	angle := float64(rotation) * math.Pi / 180
	vector.StrokeLine(screen, cx, cy, cx+half*float32(math.Cos(angle)), cy+half*float32(math.Sin(angle)), 3, color.White, true)
	r.drawBar(screen, cx-half, cy-half-6, 2*half, healthFraction)
}

// DrawPreview outlines the column the pending building would go to.
func (r *LatticeRenderer) DrawPreview(screen *ebiten.Image, x, z int, c color.RGBA) {
	left := r.originX + float32(x)*r.cellSize
	top := r.originY + float32(z)*r.cellSize
	vector.DrawFilledRect(screen, left, top, r.cellSize, r.cellSize, c, true)
}

func (r *LatticeRenderer) drawBar(screen *ebiten.Image, x, y, width float32, fraction float64) {
	if fraction >= 1 || fraction < 0 {
		return
	}
	vector.DrawFilledRect(screen, x, y, width, 3, color.RGBA{R: 60, G: 0, B: 0, A: 255}, false)
	vector.DrawFilledRect(screen, x, y, width*float32(fraction), 3, color.RGBA{R: 0, G: 200, B: 0, A: 255}, false)
}
