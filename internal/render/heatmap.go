// Package render turns evaluated noise fields into images: the heat map
// itself and the grid and gradient overlays drawn on top of it.
package render

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Palette maps a normalized noise value to a pixel color.
type Palette int

const (
	// PaletteBlue paints the value into the blue channel over black.
	PaletteBlue Palette = iota
	PaletteGray
)

func ParsePalette(name string) (Palette, error) {
	switch name {
	case "blue":
		return PaletteBlue, nil
	case "gray":
		return PaletteGray, nil
	default:
		return 0, fmt.Errorf("unknown palette: %s", name)
	}
}

func (p Palette) String() string {
	switch p {
	case PaletteBlue:
		return "blue"
	case PaletteGray:
		return "gray"
	default:
		return fmt.Sprintf("Palette(%d)", int(p))
	}
}

// Color converts v in [0,1] to an opaque color. Out-of-range values are
// clamped.
func (p Palette) Color(v float64) color.RGBA {
	c := uint8(min(max(v, 0), 1)*255 + 0.5)
	switch p {
	case PaletteGray:
		return color.RGBA{R: c, G: c, B: c, A: 255}
	default:
		return color.RGBA{B: c, A: 255}
	}
}

// HeatMap paints values, indexed [y][x], one pixel per value.
func HeatMap(values [][]float64, p Palette) *image.RGBA {
	height := len(values)
	width := 0
	if height > 0 {
		width = len(values[0])
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y, row := range values {
		for x, v := range row {
			img.SetRGBA(x, y, p.Color(v))
		}
	}
	return img
}

// Upscale enlarges src by an integer factor without smoothing, so every
// sample stays a crisp block of factor x factor pixels.
func Upscale(src image.Image, factor int) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
