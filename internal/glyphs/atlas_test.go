package glyphs

import (
	"image"
	"testing"

	"golang.org/x/image/font/gofont/gomono"
)

func mustAtlas(t *testing.T, cols int) *Atlas {
	t.Helper()
	a, err := New(gomono.TTF, 12, cols)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func inked(img *image.Alpha, r image.Rectangle) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.AlphaAt(x, y).A != 0 {
				return true
			}
		}
	}
	return false
}

func TestNew_Layout(t *testing.T) {
	tests := []struct {
		cols, rows int
	}{
		{16, 6},
		{95, 1},
		{10, 10},
		{1, 95},
	}
	for _, tt := range tests {
		a := mustAtlas(t, tt.cols)
		if a.Cols != tt.cols || a.Rows != tt.rows {
			t.Errorf("cols=%d: got %dx%d cells, want %dx%d", tt.cols, a.Cols, a.Rows, tt.cols, tt.rows)
		}
		want := image.Pt(a.Cell.X*tt.cols, a.Cell.Y*tt.rows)
		if got := a.Image.Bounds().Size(); got != want {
			t.Errorf("cols=%d: image size %v, want %v", tt.cols, got, want)
		}
	}
}

func TestNew_InvalidInput(t *testing.T) {
	if _, err := New(gomono.TTF, 12, 0); err == nil {
		t.Error("zero columns accepted")
	}
	if _, err := New([]byte("not a font"), 12, 16); err == nil {
		t.Error("garbage font data accepted")
	}
}

func TestAtlas_Tile(t *testing.T) {
	a := mustAtlas(t, 16)
	tests := []struct {
		r        rune
		col, row int
		ok       bool
	}{
		{' ', 0, 0, true},
		{'0', 0, 1, true},
		{'A', 1, 2, true},
		{'~', 14, 5, true},
		{'\n', 0, 0, false},
		{0x7f, 0, 0, false},
		{'é', 0, 0, false},
	}
	for _, tt := range tests {
		tile, ok := a.Tile(tt.r)
		if ok != tt.ok {
			t.Errorf("Tile(%q) ok = %v, want %v", tt.r, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		want := image.Rect(tt.col*a.Cell.X, tt.row*a.Cell.Y, (tt.col+1)*a.Cell.X, (tt.row+1)*a.Cell.Y)
		if tile != want {
			t.Errorf("Tile(%q) = %v, want %v", tt.r, tile, want)
		}
	}
}

func TestAtlas_Ink(t *testing.T) {
	a := mustAtlas(t, 16)
	for _, r := range "AMgx#09~" {
		tile, _ := a.Tile(r)
		if !inked(a.Image, tile) {
			t.Errorf("glyph %q left its cell empty", r)
		}
	}
	space, _ := a.Tile(' ')
	if inked(a.Image, space) {
		t.Error("space has ink")
	}
	// the unused cells after '~' stay blank
	last, _ := a.Tile(Last)
	rest := image.Rect(last.Max.X, last.Min.Y, a.Image.Bounds().Max.X, last.Max.Y)
	if inked(a.Image, rest) {
		t.Error("cells past the printable range have ink")
	}
}

func TestAtlas_TexCoords(t *testing.T) {
	a := mustAtlas(t, 16)
	s0, t0, s1, t1, ok := a.TexCoords(' ')
	if !ok || s0 != 0 || t0 != 0 {
		t.Fatalf("TexCoords(' ') = %v %v %v %v %v", s0, t0, s1, t1, ok)
	}
	if s1 != 1.0/16 || t1 != 1.0/6 {
		t.Errorf("first cell spans (%v, %v), want (1/16, 1/6)", s1, t1)
	}
	if _, _, _, _, ok := a.TexCoords('\t'); ok {
		t.Error("TexCoords accepted a control character")
	}
}
