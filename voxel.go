package edt

import (
	"fmt"
	"math"

	"github.com/soypat/edt/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle3 is a 3D triangle defined by its three vertices.
type Triangle3 [3]r3.Vec

const degenerateTol = 1e-12

// TriangleBounds returns the axis-aligned bounding box enclosing every
// vertex of the triangle soup. Empty input yields the zero box.
func TriangleBounds(tris []Triangle3) r3.Box {
	if len(tris) == 0 {
		return r3.Box{}
	}
	bb := d3.Box{Min: tris[0][0], Max: tris[0][0]}
	for _, t := range tris {
		for _, v := range t {
			bb = bb.Include(v)
		}
	}
	return r3.Box(bb)
}

// VoxelizeShell rasterizes a triangle surface into dst, setting every
// cell containing surface points to 1 and leaving the rest untouched, so
// repeated calls accumulate into the same mask. Cell (i, j, k) spans the
// physical box origin+(i,j,k)·pitch to origin+(i+1,j+1,k+1)·pitch.
// Surface points falling outside dst are ignored; degenerate triangles
// are skipped. dst must have rank 3 and pitch follows the transform
// entry point contract.
//
// The resulting shell mask is the usual input for baking narrow-band
// distance fields from mesh geometry.
func VoxelizeShell[T Number](dst *Grid[T], tris []Triangle3, origin r3.Vec, pitch []float64) error {
	if dst.Rank() != 3 {
		return fmt.Errorf("edt: shell voxelization needs a rank 3 grid, got rank %d", dst.Rank())
	}
	pitch, err := checkPitch(pitch, 3)
	if err != nil {
		return err
	}
	cell := r3.Vec{X: pitch[0], Y: pitch[1], Z: pitch[2]}
	// Sampling at twice the density of the finest cell side leaves no
	// crossed cell without a sample.
	h := d3.Min(cell) / 2
	nx, ny, nz := dst.shape[0], dst.shape[1], dst.shape[2]

	for _, t := range tris {
		if d3.TriangleDegenerate(t, degenerateTol) {
			continue
		}
		e1, e2 := d3.TriangleEdges(t)
		n1 := int(math.Ceil(r3.Norm(e1)/h)) + 1
		n2 := int(math.Ceil(r3.Norm(e2)/h)) + 1
		for ui := 0; ui <= n1; ui++ {
			u := float64(ui) / float64(n1)
			for vi := 0; vi <= n2; vi++ {
				v := float64(vi) / float64(n2)
				if u+v > 1 {
					break
				}
				q := d3.TriangleAt(t, u, v)
				c := d3.FloorElem(d3.DivElem(r3.Sub(q, origin), cell))
				i, j, k := int(c.X), int(c.Y), int(c.Z)
				if i < 0 || i >= nx || j < 0 || j >= ny || k < 0 || k >= nz {
					continue
				}
				dst.data[i*dst.stride[0]+j*dst.stride[1]+k] = 1
			}
		}
	}
	return nil
}
