package render

import (
	"bytes"
	"image"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/cellux/gradnoise/noise"
)

func testField(t *testing.T) (*noise.Field, [][]float64) {
	t.Helper()
	l, err := noise.NewLattice(3, 3, 42)
	if err != nil {
		t.Fatal(err)
	}
	f, err := noise.NewField(l, 20)
	if err != nil {
		t.Fatal(err)
	}
	return f, f.EvaluateAll()
}

func rgbaOf(t *testing.T, img image.Image) *image.RGBA {
	t.Helper()
	rgba, ok := img.(*image.RGBA)
	if !ok {
		t.Fatalf("image is %T, want *image.RGBA", img)
	}
	return rgba
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func TestDraw_NoOverlays(t *testing.T) {
	f, values := testField(t)
	dc, err := Draw(f, values, Options{Palette: PaletteGray})
	if err != nil {
		t.Fatal(err)
	}
	defer dc.Close()
	img := rgbaOf(t, dc.Image())
	heat := HeatMap(values, PaletteGray)
	if img.Bounds() != heat.Bounds() {
		t.Fatalf("bounds = %v, want %v", img.Bounds(), heat.Bounds())
	}
	for _, p := range []image.Point{{0, 0}, {13, 27}, {59, 59}} {
		got, want := img.RGBAAt(p.X, p.Y), heat.RGBAAt(p.X, p.Y)
		if absDiff(got.R, want.R) > 1 || got.A != 255 {
			t.Errorf("pixel %v = %v, want %v", p, got, want)
		}
	}
}

func TestDraw_GridChangesCellBoundaries(t *testing.T) {
	f, values := testField(t)
	plain, err := Draw(f, values, Options{Palette: PaletteGray})
	if err != nil {
		t.Fatal(err)
	}
	defer plain.Close()
	grid, err := Draw(f, values, Options{Palette: PaletteGray, Grid: true})
	if err != nil {
		t.Fatal(err)
	}
	defer grid.Close()
	a := rgbaOf(t, plain.Image())
	b := rgbaOf(t, grid.Image())
	changed := 0
	for x := 19; x <= 20; x++ {
		for y := 5; y < 15; y++ {
			pa, pb := a.RGBAAt(x, y), b.RGBAAt(x, y)
			changed += absDiff(pa.R, pb.R) + absDiff(pa.G, pb.G) + absDiff(pa.B, pb.B)
		}
	}
	if changed == 0 {
		t.Error("grid overlay left the cell boundary at x=20 untouched")
	}
}

func TestDraw_MismatchedValues(t *testing.T) {
	f, _ := testField(t)
	if _, err := Draw(f, [][]float64{{0.5}}, Options{}); err == nil {
		t.Error("Draw accepted values of the wrong size")
	}
}

func TestWritePNG_Scaled(t *testing.T) {
	f, values := testField(t)
	var buf bytes.Buffer
	if err := WritePNG(&buf, f, values, Options{Grid: true, Vectors: true, Scale: 2}); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 120 {
		t.Errorf("bounds = %v, want 120x120", b)
	}
}

func TestSavePNG(t *testing.T) {
	f, values := testField(t)
	path := filepath.Join(t.TempDir(), "field.png")
	if err := SavePNG(path, f, values, Options{Vectors: true}); err != nil {
		t.Fatal(err)
	}
}
