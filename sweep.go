package edt

// sweepGrid applies the separable envelope pass along every axis, last
// axis first. Pass d consumes pass d+1's field as its seed values, so a
// pass begins only after the previous one has completed over all lines;
// ParallelFor returning is that barrier. Within a pass, lines are
// independent and processed in place.
func sweepGrid[T Number](g *Grid[T], sigma []float64, invert bool) {
	if g.Len() == 0 {
		return
	}
	for axis := len(g.shape) - 1; axis >= 0; axis-- {
		sweepAxis(g, axis, sigma[axis], invert)
	}
}

// sweepAxis runs the envelope over every line of g along one axis.
// Lines along the last axis are contiguous subslices and are transformed
// directly. Lines along other axes are strided: each worker gathers a
// line into scratch, transforms it and scatters it back.
func sweepAxis[T Number](g *Grid[T], axis int, sigma float64, invert bool) {
	w := g.shape[axis]
	if w <= 1 {
		// A single sample per line is its own envelope.
		return
	}
	lines := g.Len() / w
	inner := g.stride[axis]
	data := g.data

	run := func(start, end int) {
		var env envelope[T]
		if inner == 1 {
			for j := start; j < end; j++ {
				line := data[j*w : (j+1)*w]
				env.transform(line, line, sigma, invert)
			}
			return
		}
		scratch := make([]T, w)
		for j := start; j < end; j++ {
			outer, in := j/inner, j%inner
			base := outer*w*inner + in
			for k := 0; k < w; k++ {
				scratch[k] = data[base+k*inner]
			}
			env.transform(scratch, scratch, sigma, invert)
			for k := 0; k < w; k++ {
				data[base+k*inner] = scratch[k]
			}
		}
	}

	if g.Len() <= serialThreshold {
		run(0, lines)
		return
	}
	workers().ParallelFor(lines, run)
}
