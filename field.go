package edt

import (
	"math"

	"github.com/soypat/edt/internal/d2"
	"github.com/soypat/edt/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Field2 exposes a rank 2 grid as a continuous scalar field over physical
// coordinates. Sample (i, j) sits at the cell center ((i+0.5)·pitch[0],
// (j+0.5)·pitch[1]); evaluation interpolates bilinearly between centers
// and extends edge values outside the grid. Field2 satisfies the 2D
// signed distance field interface consumed by SDF composition and
// rendering packages built on gonum's r2 types.
type Field2[T Number] struct {
	grid *Grid[T]
	cell r2.Vec
}

// NewField2 wraps g, which must have rank 2. pitch follows the transform
// entry point contract: nil for unit spacing, else one positive value
// per axis. The field references g's data; it does not copy.
func NewField2[T Number](g *Grid[T], pitch []float64) (*Field2[T], error) {
	if g.Rank() != 2 {
		return nil, errFieldRank
	}
	pitch, err := checkPitch(pitch, 2)
	if err != nil {
		return nil, err
	}
	return &Field2[T]{grid: g, cell: r2.Vec{X: pitch[0], Y: pitch[1]}}, nil
}

// Evaluate returns the interpolated field value at p.
func (f *Field2[T]) Evaluate(p r2.Vec) float64 {
	q := r2.Sub(d2.DivElem(p, f.cell), d2.Elem(0.5))
	i := int(math.Floor(q.X))
	j := int(math.Floor(q.Y))
	tx := q.X - float64(i)
	ty := q.Y - float64(j)
	v00 := f.sample(i, j)
	v10 := f.sample(i+1, j)
	v01 := f.sample(i, j+1)
	v11 := f.sample(i+1, j+1)
	return lerp(lerp(v00, v10, tx), lerp(v01, v11, tx), ty)
}

// Bounds returns the physical extent covered by the grid.
func (f *Field2[T]) Bounds() r2.Box {
	nx, ny := f.grid.Size(0), f.grid.Size(1)
	return r2.Box{Max: d2.MulElem(f.cell, r2.Vec{X: float64(nx), Y: float64(ny)})}
}

func (f *Field2[T]) sample(i, j int) float64 {
	i = clampIndex(i, f.grid.Size(0))
	j = clampIndex(j, f.grid.Size(1))
	return float64(f.grid.At(i, j))
}

// Field3 is the rank 3 analogue of Field2: trilinear interpolation over
// cell centers with edge extension, satisfying the 3D signed distance
// field interface over gonum's r3 types.
type Field3[T Number] struct {
	grid *Grid[T]
	cell r3.Vec
}

// NewField3 wraps g, which must have rank 3, with the same pitch
// contract as NewField2.
func NewField3[T Number](g *Grid[T], pitch []float64) (*Field3[T], error) {
	if g.Rank() != 3 {
		return nil, errFieldRank
	}
	pitch, err := checkPitch(pitch, 3)
	if err != nil {
		return nil, err
	}
	return &Field3[T]{grid: g, cell: r3.Vec{X: pitch[0], Y: pitch[1], Z: pitch[2]}}, nil
}

// Evaluate returns the interpolated field value at p.
func (f *Field3[T]) Evaluate(p r3.Vec) float64 {
	q := r3.Sub(d3.DivElem(p, f.cell), d3.Elem(0.5))
	i := int(math.Floor(q.X))
	j := int(math.Floor(q.Y))
	k := int(math.Floor(q.Z))
	tx := q.X - float64(i)
	ty := q.Y - float64(j)
	tz := q.Z - float64(k)
	lo := lerp(
		lerp(f.sample(i, j, k), f.sample(i+1, j, k), tx),
		lerp(f.sample(i, j+1, k), f.sample(i+1, j+1, k), tx),
		ty,
	)
	hi := lerp(
		lerp(f.sample(i, j, k+1), f.sample(i+1, j, k+1), tx),
		lerp(f.sample(i, j+1, k+1), f.sample(i+1, j+1, k+1), tx),
		ty,
	)
	return lerp(lo, hi, tz)
}

// Bounds returns the physical extent covered by the grid.
func (f *Field3[T]) Bounds() r3.Box {
	n := r3.Vec{
		X: float64(f.grid.Size(0)),
		Y: float64(f.grid.Size(1)),
		Z: float64(f.grid.Size(2)),
	}
	return r3.Box{Max: d3.MulElem(f.cell, n)}
}

func (f *Field3[T]) sample(i, j, k int) float64 {
	i = clampIndex(i, f.grid.Size(0))
	j = clampIndex(j, f.grid.Size(1))
	k = clampIndex(k, f.grid.Size(2))
	return float64(f.grid.At(i, j, k))
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

func lerp(a, b, t float64) float64 { return a + t*(b-a) }
