// Package noise implements 2D gradient (Perlin) noise over a finite lattice
// of seeded unit gradients.
package noise

import (
	"fmt"
	"math"
	"math/bits"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// pcgStream is mixed into the second PCG word so that seed 0 still starts
// from a well-scrambled state.
const pcgStream = 0x9e3779b97f4a7c15

// Lattice holds one unit gradient per corner of a cols x rows cell grid.
// It is immutable after construction and safe for concurrent use.
type Lattice struct {
	cols, rows int
	seed       uint64
	// row-major, index cy*(cols+1)+cx
	vectors []mgl64.Vec2
}

// NewLattice generates a lattice of (rows+1)*(cols+1) gradients from seed.
//
// Corners are filled y outer, x inner, one angle draw per corner, so a given
// seed always maps the same draw to the same corner.
func NewLattice(cols, rows int, seed uint64) (*Lattice, error) {
	if cols < 1 || rows < 1 {
		return nil, fmt.Errorf("lattice %dx%d: %w", cols, rows, ErrInvalidDimensions)
	}
	n, ok := CornerCount(cols, rows)
	if !ok {
		return nil, fmt.Errorf("lattice %dx%d has too many corners: %w", cols, rows, ErrInvalidDimensions)
	}
	rng := rand.New(rand.NewPCG(seed, seed^pcgStream))
	vectors := make([]mgl64.Vec2, 0, n)
	for range rows + 1 {
		for range cols + 1 {
			a := rng.Float64() * 2 * math.Pi
			vectors = append(vectors, mgl64.Vec2{math.Cos(a), math.Sin(a)})
		}
	}
	return &Lattice{
		cols:    cols,
		rows:    rows,
		seed:    seed,
		vectors: vectors,
	}, nil
}

// CornerCount returns (cols+1)*(rows+1) for positive dimensions. ok is false
// when either dimension is below one or the product does not fit in an int.
func CornerCount(cols, rows int) (n int, ok bool) {
	if cols < 1 || rows < 1 || cols == math.MaxInt || rows == math.MaxInt {
		return 0, false
	}
	hi, lo := bits.Mul64(uint64(cols+1), uint64(rows+1))
	if hi != 0 || lo > math.MaxInt {
		return 0, false
	}
	return int(lo), true
}

func (l *Lattice) Cols() int {
	return l.cols
}

func (l *Lattice) Rows() int {
	return l.rows
}

// Seed returns the seed the lattice was generated from.
func (l *Lattice) Seed() uint64 {
	return l.seed
}

// Corners returns the number of gradient vectors, (cols+1)*(rows+1).
func (l *Lattice) Corners() int {
	return len(l.vectors)
}

// GradientAt returns the gradient at corner (cx, cy), 0 <= cx <= cols,
// 0 <= cy <= rows.
func (l *Lattice) GradientAt(cx, cy int) (mgl64.Vec2, error) {
	if cx < 0 || cx > l.cols || cy < 0 || cy > l.rows {
		return mgl64.Vec2{}, fmt.Errorf("corner (%d,%d) of %dx%d lattice: %w", cx, cy, l.cols, l.rows, ErrOutOfBounds)
	}
	return l.at(cx, cy), nil
}

// Gradients returns a copy of all gradients in row-major order.
func (l *Lattice) Gradients() []mgl64.Vec2 {
	out := make([]mgl64.Vec2, len(l.vectors))
	copy(out, l.vectors)
	return out
}

// at skips the bounds check; callers guarantee a valid corner.
func (l *Lattice) at(cx, cy int) mgl64.Vec2 {
	return l.vectors[cy*(l.cols+1)+cx]
}
