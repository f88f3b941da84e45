package noise

import (
	"errors"
	"math"
	"testing"
)

func TestNewLattice_InvalidDimensions(t *testing.T) {
	tests := []struct {
		name       string
		cols, rows int
	}{
		{"zero cols", 0, 3},
		{"zero rows", 3, 0},
		{"negative cols", -1, 3},
		{"both zero", 0, 0},
		{"max cols", math.MaxInt, 1},
		{"corner count overflows", 1 << 40, 1 << 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLattice(tt.cols, tt.rows, 1)
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Fatalf("NewLattice(%d, %d) error = %v, want ErrInvalidDimensions", tt.cols, tt.rows, err)
			}
			if l != nil {
				t.Errorf("NewLattice(%d, %d) returned a lattice with an error", tt.cols, tt.rows)
			}
		})
	}
}

func TestLattice_Deterministic(t *testing.T) {
	for _, seed := range []uint64{0, 1, 42, 1617081672, math.MaxUint64} {
		a, err := NewLattice(5, 4, seed)
		if err != nil {
			t.Fatal(err)
		}
		b, err := NewLattice(5, 4, seed)
		if err != nil {
			t.Fatal(err)
		}
		ga, gb := a.Gradients(), b.Gradients()
		for i := range ga {
			if ga[i] != gb[i] {
				t.Fatalf("seed %d: gradient %d differs: %v vs %v", seed, i, ga[i], gb[i])
			}
		}
	}
}

func TestLattice_SeedsDiffer(t *testing.T) {
	a, _ := NewLattice(3, 3, 42)
	b, _ := NewLattice(3, 3, 43)
	ga, gb := a.Gradients(), b.Gradients()
	same := 0
	for i := range ga {
		if ga[i] == gb[i] {
			same++
		}
	}
	if same == len(ga) {
		t.Error("seeds 42 and 43 produced identical lattices")
	}
}

func TestLattice_UnitLength(t *testing.T) {
	l, err := NewLattice(16, 9, 7)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range l.Gradients() {
		if d := math.Abs(v.Len() - 1); d > 1e-5 {
			t.Errorf("gradient %d = %v has length %v", i, v, v.Len())
		}
	}
}

func TestLattice_CornerCount(t *testing.T) {
	tests := []struct{ cols, rows int }{
		{1, 1}, {3, 3}, {4, 2}, {1, 10}, {32, 17},
	}
	for _, tt := range tests {
		l, err := NewLattice(tt.cols, tt.rows, 3)
		if err != nil {
			t.Fatal(err)
		}
		want := (tt.cols + 1) * (tt.rows + 1)
		if got := l.Corners(); got != want {
			t.Errorf("%dx%d: Corners() = %d, want %d", tt.cols, tt.rows, got, want)
		}
		if got := len(l.Gradients()); got != want {
			t.Errorf("%dx%d: len(Gradients()) = %d, want %d", tt.cols, tt.rows, got, want)
		}
	}
}

func TestCornerCount(t *testing.T) {
	tests := []struct {
		cols, rows int
		want       int
		ok         bool
	}{
		{3, 3, 16, true},
		{1, 1, 4, true},
		{0, 5, 0, false},
		{5, -1, 0, false},
		{math.MaxInt, 1, 0, false},
		{1 << 31, 1 << 31, (1<<31 + 1) * (1<<31 + 1), true},
		{1 << 32, 1 << 32, 0, false},
	}
	for _, tt := range tests {
		got, ok := CornerCount(tt.cols, tt.rows)
		if got != tt.want || ok != tt.ok {
			t.Errorf("CornerCount(%d, %d) = %d, %v, want %d, %v", tt.cols, tt.rows, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLattice_GradientAt(t *testing.T) {
	l, err := NewLattice(3, 2, 11)
	if err != nil {
		t.Fatal(err)
	}
	all := l.Gradients()
	for cy := 0; cy <= 2; cy++ {
		for cx := 0; cx <= 3; cx++ {
			v, err := l.GradientAt(cx, cy)
			if err != nil {
				t.Fatalf("GradientAt(%d, %d): %v", cx, cy, err)
			}
			if v != all[cy*4+cx] {
				t.Errorf("GradientAt(%d, %d) = %v, want row-major entry %v", cx, cy, v, all[cy*4+cx])
			}
		}
	}

	bad := [][2]int{{4, 0}, {0, 3}, {-1, 0}, {0, -1}, {4, 3}}
	for _, c := range bad {
		if _, err := l.GradientAt(c[0], c[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("GradientAt(%d, %d) error = %v, want ErrOutOfBounds", c[0], c[1], err)
		}
	}
}

func TestLattice_GradientsIsCopy(t *testing.T) {
	l, _ := NewLattice(2, 2, 5)
	g := l.Gradients()
	orig := g[0]
	g[0][0] = 99
	if v, _ := l.GradientAt(0, 0); v != orig {
		t.Errorf("mutating Gradients() result changed the lattice: %v", v)
	}
}

func TestLattice_Accessors(t *testing.T) {
	l, _ := NewLattice(6, 4, 123)
	if l.Cols() != 6 || l.Rows() != 4 || l.Seed() != 123 {
		t.Errorf("got cols=%d rows=%d seed=%d", l.Cols(), l.Rows(), l.Seed())
	}
}
