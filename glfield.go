package edt

import (
	"errors"

	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Batch evaluators expose fields through the vectorized single-precision
// contract of GPU-oriented SDF pipelines: distances for many positions
// are produced in one call, with results stored into a caller-owned
// slice. The userData argument of Evaluate is accepted for interface
// compatibility and ignored.

var errBatchLength = errors.New("edt: pos and dist must have equal length")

// Batch2 adapts a Field2 to batched evaluation over ms2 vectors.
type Batch2[T Number] struct {
	f *Field2[T]
}

// Batch returns the batched form of the field.
func (f *Field2[T]) Batch() *Batch2[T] { return &Batch2[T]{f: f} }

// Evaluate stores the field value at every position of pos into dist.
func (b *Batch2[T]) Evaluate(pos []ms2.Vec, dist []float32, userData any) error {
	if len(pos) != len(dist) {
		return errBatchLength
	}
	for i, p := range pos {
		dist[i] = float32(b.f.Evaluate(r2.Vec{X: float64(p.X), Y: float64(p.Y)}))
	}
	return nil
}

// Bounds returns the field bounds in single precision.
func (b *Batch2[T]) Bounds() ms2.Box {
	bb := b.f.Bounds()
	return ms2.Box{
		Min: ms2.Vec{X: float32(bb.Min.X), Y: float32(bb.Min.Y)},
		Max: ms2.Vec{X: float32(bb.Max.X), Y: float32(bb.Max.Y)},
	}
}

// Batch3 adapts a Field3 to batched evaluation over ms3 vectors.
type Batch3[T Number] struct {
	f *Field3[T]
}

// Batch returns the batched form of the field.
func (f *Field3[T]) Batch() *Batch3[T] { return &Batch3[T]{f: f} }

// Evaluate stores the field value at every position of pos into dist.
func (b *Batch3[T]) Evaluate(pos []ms3.Vec, dist []float32, userData any) error {
	if len(pos) != len(dist) {
		return errBatchLength
	}
	for i, p := range pos {
		dist[i] = float32(b.f.Evaluate(r3.Vec{X: float64(p.X), Y: float64(p.Y), Z: float64(p.Z)}))
	}
	return nil
}

// Bounds returns the field bounds in single precision.
func (b *Batch3[T]) Bounds() ms3.Box {
	bb := b.f.Bounds()
	return ms3.Box{
		Min: ms3.Vec{X: float32(bb.Min.X), Y: float32(bb.Min.Y), Z: float32(bb.Min.Z)},
		Max: ms3.Vec{X: float32(bb.Max.X), Y: float32(bb.Max.Y), Z: float32(bb.Max.Z)},
	}
}
