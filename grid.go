package edt

import "fmt"

// Grid is a dense n-dimensional array of numeric elements laid out in
// row-major order: the last axis is contiguous in memory. The zero value
// is not usable; construct grids with NewGrid or GridFrom.
//
// Grids of rank 2 and 3 used as images or volumes follow the convention
// that axis 0 is x, axis 1 is y and axis 2 is z.
type Grid[T Number] struct {
	data   []T
	shape  []int
	stride []int
}

// NewGrid returns a zero-filled grid with the given shape. A rank 0 grid
// holds a single element. NewGrid panics if any dimension is negative.
func NewGrid[T Number](shape ...int) *Grid[T] {
	n, stride := strides(shape)
	return &Grid[T]{
		data:   make([]T, n),
		shape:  append([]int{}, shape...),
		stride: stride,
	}
}

// GridFrom wraps an existing row-major slice as a grid without copying.
// The data length must match the product of the shape.
func GridFrom[T Number](data []T, shape ...int) (*Grid[T], error) {
	n, stride := strides(shape)
	if len(data) != n {
		return nil, fmt.Errorf("edt: data length %d does not match shape product %d", len(data), n)
	}
	return &Grid[T]{
		data:   data,
		shape:  append([]int{}, shape...),
		stride: stride,
	}, nil
}

func strides(shape []int) (n int, stride []int) {
	n = 1
	stride = make([]int, len(shape))
	for i := len(shape) - 1; i >= 0; i-- {
		if shape[i] < 0 {
			panic("edt: negative grid dimension")
		}
		stride[i] = n
		n *= shape[i]
	}
	return n, stride
}

// Rank returns the number of axes.
func (g *Grid[T]) Rank() int { return len(g.shape) }

// Len returns the total number of elements.
func (g *Grid[T]) Len() int { return len(g.data) }

// Size returns the extent of the grid along axis.
func (g *Grid[T]) Size(axis int) int { return g.shape[axis] }

// Shape returns a copy of the grid's per-axis extents.
func (g *Grid[T]) Shape() []int { return append([]int{}, g.shape...) }

// Data returns the grid's backing slice in row-major order.
// Mutating it mutates the grid.
func (g *Grid[T]) Data() []T { return g.data }

// At returns the element at the given coordinate. It panics if the
// number of indices does not match the rank or an index is out of range.
func (g *Grid[T]) At(ix ...int) T { return g.data[g.offset(ix)] }

// Set stores v at the given coordinate with the same panics as At.
func (g *Grid[T]) Set(v T, ix ...int) { g.data[g.offset(ix)] = v }

func (g *Grid[T]) offset(ix []int) int {
	if len(ix) != len(g.shape) {
		panic("edt: coordinate rank mismatch")
	}
	off := 0
	for i, x := range ix {
		if x < 0 || x >= g.shape[i] {
			panic("edt: index out of range")
		}
		off += x * g.stride[i]
	}
	return off
}

// Fill sets every element to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid[T]) Clone() *Grid[T] {
	c := NewGrid[T](g.shape...)
	copy(c.data, g.data)
	return c
}

// shapeEqual reports whether two shapes have identical rank and extents.
func shapeEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
