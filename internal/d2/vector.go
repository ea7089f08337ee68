package d2

import "gonum.org/v1/gonum/spatial/r2"

// R2 elementwise vector routines shared by the field code. Calling
// conventions mirror the d3 package.

// Elem returns a vector with all components set to sides.
func Elem(sides float64) r2.Vec {
	return r2.Vec{
		X: sides,
		Y: sides,
	}
}

func MulElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{
		X: a.X * b.X,
		Y: a.Y * b.Y,
	}
}

func DivElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{
		X: a.X / b.X,
		Y: a.Y / b.Y,
	}
}
