// Package glyphs rasterizes the printable ASCII range of a monospace font
// into a single alpha image that the viewer uploads as a texture.
package glyphs

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Printable range held by an atlas.
const (
	First rune = ' '
	Last  rune = '~'
)

// Atlas lays out glyphs First..Last row by row in equally sized cells.
type Atlas struct {
	Image *image.Alpha
	Cols  int
	Rows  int
	// Cell is the size of one glyph cell, which is also the line advance.
	Cell image.Point
}

// New rasterizes ttf at size points (96 DPI) into an atlas cols cells wide.
func New(ttf []byte, size float64, cols int) (*Atlas, error) {
	if cols < 1 {
		return nil, fmt.Errorf("atlas needs at least one column, got %d", cols)
	}
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     96,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	defer face.Close()

	cell, ascent := cellSize(face)
	if cell.X <= 0 || cell.Y <= 0 {
		return nil, fmt.Errorf("font has no usable glyphs at %vpt", size)
	}
	n := int(Last - First + 1)
	rows := (n + cols - 1) / cols
	a := &Atlas{
		Image: image.NewAlpha(image.Rect(0, 0, cell.X*cols, cell.Y*rows)),
		Cols:  cols,
		Rows:  rows,
		Cell:  cell,
	}
	for r := First; r <= Last; r++ {
		tile, _ := a.Tile(r)
		dot := fixed.P(tile.Min.X, tile.Min.Y+ascent)
		dr, mask, mp, _, ok := face.Glyph(dot, r)
		if !ok {
			continue
		}
		// clip to the cell so overhanging glyphs stay out of their neighbours
		clip := dr.Intersect(tile)
		draw.Draw(a.Image, clip, mask, mp.Add(clip.Min.Sub(dr.Min)), draw.Src)
	}
	return a, nil
}

// cellSize is the widest advance over the printable range by the line height.
func cellSize(face font.Face) (image.Point, int) {
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	height := m.Height.Ceil()
	if height == 0 {
		height = ascent + m.Descent.Ceil()
	}
	width := 0
	for r := First; r <= Last; r++ {
		if adv, ok := face.GlyphAdvance(r); ok {
			width = max(width, adv.Ceil())
		}
	}
	return image.Pt(width, height), ascent
}

// Tile returns the cell holding r. Runes outside First..Last have no cell.
func (a *Atlas) Tile(r rune) (image.Rectangle, bool) {
	if r < First || r > Last {
		return image.Rectangle{}, false
	}
	i := int(r - First)
	at := image.Pt(i%a.Cols*a.Cell.X, i/a.Cols*a.Cell.Y)
	return image.Rectangle{Min: at, Max: at.Add(a.Cell)}, true
}

// TexCoords returns the normalized texture rectangle of r's cell.
func (a *Atlas) TexCoords(r rune) (s0, t0, s1, t1 float32, ok bool) {
	tile, ok := a.Tile(r)
	if !ok {
		return 0, 0, 0, 0, false
	}
	size := a.Image.Bounds().Size()
	w, h := float32(size.X), float32(size.Y)
	return float32(tile.Min.X) / w, float32(tile.Min.Y) / h,
		float32(tile.Max.X) / w, float32(tile.Max.Y) / h, true
}
