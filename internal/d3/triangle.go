package d3

import "gonum.org/v1/gonum/spatial/r3"

// Triangle helpers for surface sampling. Triangles are vertex triples.

// TriangleEdges returns the two edge vectors leaving the first vertex.
func TriangleEdges(t [3]r3.Vec) (e1, e2 r3.Vec) {
	return r3.Sub(t[1], t[0]), r3.Sub(t[2], t[0])
}

// TriangleDegenerate reports whether the triangle has effectively zero
// area: collinear or coincident vertices within tol.
func TriangleDegenerate(t [3]r3.Vec, tol float64) bool {
	e1, e2 := TriangleEdges(t)
	return r3.Norm(r3.Cross(e1, e2)) <= tol
}

// TriangleAt returns the point at barycentric coordinates (u, v) with
// u, v ≥ 0 and u+v ≤ 1. (0,0) is the first vertex.
func TriangleAt(t [3]r3.Vec, u, v float64) r3.Vec {
	e1, e2 := TriangleEdges(t)
	return r3.Add(t[0], r3.Add(r3.Scale(u, e1), r3.Scale(v, e2)))
}
