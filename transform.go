// Package edt computes Euclidean distance transforms of n-dimensional
// numeric grids: for every grid position, the squared (or plain) distance
// to the nearest position of a designated seed class, optionally weighted
// by a physical per-axis pitch. The same separable parabolic-envelope
// kernel also provides grayscale morphology with parabolic structuring
// functions and signed distance fields, and computed fields adapt to the
// continuous SDF interfaces used for rendering and CSG.
package edt

import (
	"errors"
	"fmt"
	"math"

	"github.com/chewxy/math32"
)

var (
	errShapeMismatch = errors.New("edt: destination and source shapes differ")
	errFieldRank     = errors.New("edt: grid rank does not match field dimension")
)

// DistanceTransformSquared writes into dst the squared Euclidean distance
// from every position of src to the nearest seed position. If background
// is true the seeds are the zero-valued positions of src and dst holds
// squared distances to the background; otherwise the seeds are the
// nonzero positions and dst holds squared distances to the foreground.
// Seed positions themselves get 0.
//
// pitch gives the physical spacing per axis, weighting that axis's
// contribution to squared distance. nil means unit spacing; otherwise it
// must hold one positive value per axis.
//
// dst and src must have equal shapes. dst may be src itself for an
// in-place transform; distinct grids must not share backing storage.
// Integer destinations are computed through a float64 intermediate
// whenever the pitch is fractional or the distance bound exceeds the
// destination's range, and are then clamped to the representable range
// and rounded to nearest, so large distances saturate instead of
// wrapping.
func DistanceTransformSquared[D, S Number](dst *Grid[D], src *Grid[S], background bool, pitch []float64) error {
	pitch, err := transformArgs(dst.shape, src.shape, pitch)
	if err != nil {
		return err
	}
	squaredTransform(dst, src, background, pitch)
	return nil
}

// DistanceTransform is DistanceTransformSquared followed by an
// elementwise square root of dst. Float destinations keep the full
// precision root; integer destinations truncate it.
func DistanceTransform[D, S Number](dst *Grid[D], src *Grid[S], background bool, pitch []float64) error {
	err := DistanceTransformSquared(dst, src, background, pitch)
	if err != nil {
		return err
	}
	sqrtGrid(dst)
	return nil
}

// SignedDistanceField writes into dst the signed Euclidean distance to
// the boundary between the zero- and nonzero-valued regions of src:
// positive outside the nonzero region, negative inside it. Computed on
// sample centers; no sub-sample boundary offset is applied.
func SignedDistanceField[D Float, S Number](dst *Grid[D], src *Grid[S], pitch []float64) error {
	pitch, err := transformArgs(dst.shape, src.shape, pitch)
	if err != nil {
		return err
	}
	outer := NewGrid[float64](src.shape...)
	inner := NewGrid[float64](src.shape...)
	squaredTransform(outer, src, false, pitch)
	squaredTransform(inner, src, true, pitch)
	for i := range dst.data {
		dst.data[i] = D(math.Sqrt(outer.data[i]) - math.Sqrt(inner.data[i]))
	}
	return nil
}

// transformArgs validates entry point preconditions and normalizes an
// omitted pitch to unit spacing.
func transformArgs(dstShape, srcShape []int, pitch []float64) ([]float64, error) {
	if !shapeEqual(dstShape, srcShape) {
		return nil, errShapeMismatch
	}
	return checkPitch(pitch, len(srcShape))
}

func checkPitch(pitch []float64, rank int) ([]float64, error) {
	if pitch == nil {
		pitch = make([]float64, rank)
		for i := range pitch {
			pitch[i] = 1
		}
		return pitch, nil
	}
	if len(pitch) != rank {
		return nil, fmt.Errorf("edt: pitch length %d does not match grid rank %d", len(pitch), rank)
	}
	for i, p := range pitch {
		if p <= 0 || math.IsNaN(p) {
			return nil, fmt.Errorf("edt: pitch must be positive, axis %d has %v", i, p)
		}
	}
	return pitch, nil
}

// squaredTransform seeds and sweeps with the working representation that
// avoids overflow: integer destinations fall back to a promoted float64
// field when the pitch is fractional or the seed sentinel would not fit,
// and receive the result clamped and rounded. Float destinations and
// integer destinations with a safe range are seeded and swept directly.
func squaredTransform[D, S Number](dst *Grid[D], src *Grid[S], background bool, pitch []float64) {
	inf := 1.0
	pitchReal := false
	for a, p := range pitch {
		inf += sq(p * float64(src.shape[a]))
		if p != math.Trunc(p) {
			pitchReal = true
		}
	}
	lim := elemLimits[D]()
	if isIntegral[D]() && (pitchReal || inf > lim.hiF) {
		reason := "fractional pitch"
		if !pitchReal {
			reason = "distance bound exceeds destination range"
		}
		Logger().Debug("edt: promoting to float64 working field",
			"reason", reason, "inf", inf, "elements", src.Len())
		tmp := NewGrid[float64](src.shape...)
		seedGrid(tmp, src, background, inf)
		sweepGrid(tmp, pitch, false)
		for i, v := range tmp.data {
			dst.data[i] = lim.clampRound(v)
		}
		return
	}
	seedGrid(dst, src, background, inf)
	sweepGrid(dst, pitch, false)
}

// seedGrid initializes the squared distance field from the mask:
// 0 at seed positions, the finite sentinel inf everywhere else.
// inf exceeds every squared distance attainable within the grid.
func seedGrid[D, S Number](dst *Grid[D], src *Grid[S], background bool, inf float64) {
	sentinel := D(inf)
	for i, v := range src.data {
		if (v == 0) == background {
			dst.data[i] = 0
		} else {
			dst.data[i] = sentinel
		}
	}
}

func sqrtGrid[D Number](g *Grid[D]) {
	switch data := any(g.data).(type) {
	case []float64:
		for i, v := range data {
			data[i] = math.Sqrt(v)
		}
	case []float32:
		for i, v := range data {
			data[i] = math32.Sqrt(v)
		}
	default:
		for i, v := range g.data {
			g.data[i] = D(math.Sqrt(float64(v)))
		}
	}
}

func sq(x float64) float64 { return x * x }
