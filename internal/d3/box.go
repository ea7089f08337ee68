package d3

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

// Box is an axis aligned 3d bounding box, convertible to and from
// r3.Box. Triangle soups and field bounds are reduced to one.
type Box r3.Box

// Include grows the box to contain a point.
func (a Box) Include(v r3.Vec) Box {
	return Box{
		Min: MinElem(a.Min, v),
		Max: MaxElem(a.Max, v),
	}
}

// Size returns the box extent per axis.
func (a Box) Size() r3.Vec {
	return r3.Sub(a.Max, a.Min)
}

// Enlarge pads the box by v, split evenly between both sides of each
// axis. Voxelization margins are expressed this way.
func (a Box) Enlarge(v r3.Vec) Box {
	v = r3.Scale(0.5, v)
	return Box{
		Min: r3.Sub(a.Min, v),
		Max: r3.Add(a.Max, v),
	}
}

// Random returns a uniformly distributed point within the box, for
// sampling field evaluators over their bounds.
func (b *Box) Random() r3.Vec {
	return r3.Vec{
		X: randomRange(b.Min.X, b.Max.X),
		Y: randomRange(b.Min.Y, b.Max.Y),
		Z: randomRange(b.Min.Z, b.Max.Z),
	}
}

// RandomSet returns a set of random points from within a bounding box.
func (b *Box) RandomSet(n int) Set {
	s := make([]r3.Vec, n)
	for i := range s {
		s[i] = b.Random()
	}
	return s
}

// randomRange returns a random float64 [a,b)
func randomRange(a, b float64) float64 {
	return a + (b-a)*rand.Float64()
}
