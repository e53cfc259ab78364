// pkg/render/color.go
package render

import "image/color"

// MapColors holds all the color definitions needed to render the static map background.
type MapColors struct {
	BackgroundColor color.RGBA
	GroundColor     color.RGBA
	ObstacleColor   color.RGBA
	PathColor       color.RGBA
	GoalColor       color.RGBA
	TextLightColor  color.RGBA
	StrokeWidth     float32
}

// DarkenColor reduces the brightness of a color.
func DarkenColor(c color.RGBA) color.RGBA {
	return ShadeColor(c, 0.5)
}

// ShadeColor scales the RGB channels by factor, clamped to [0,1].
func ShadeColor(c color.RGBA, factor float64) color.RGBA {
	if factor < 0 {
		factor = 0
	} else if factor > 1 {
		factor = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// LightenColor brightens the RGB channels by a fixed step.
func LightenColor(c color.RGBA, step uint8) color.RGBA {
	add := func(v uint8) uint8 {
		if int(v)+int(step) > 255 {
			return 255
		}
		return v + step
	}
	return color.RGBA{R: add(c.R), G: add(c.G), B: add(c.B), A: 255}
}
