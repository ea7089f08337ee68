package edt

// span records one parabola's interval of dominance [left, right) on the
// line, the integer position center of its apex and the apex height.
type span[T Number] struct {
	left   float64
	right  float64
	center float64
	apex   T
}

// envelope computes the lower envelope of the family of parabolas
//
//	f_k(x) = sigma2·(x−k)² + in[k]
//
// over one line of samples, yielding at every integer position the
// squared distance to the line's nearest minimum. The spans slice is
// scratch reused across lines; an envelope must not be shared between
// goroutines.
type envelope[T Number] struct {
	spans  []span[T]
	sigma2 float64
}

// transform overwrites out with the envelope of the parabolas anchored
// at in. in and out must have equal length and may be the same slice.
// Inverting negates the curvature, producing the upper envelope used for
// dilation. A zero-length line is a no-op.
func (e *envelope[T]) transform(out, in []T, sigma float64, invert bool) {
	if len(in) == 0 {
		return
	}
	e.build(in, sigma, invert)
	e.readout(out)
}

// build runs the forward pass. Maintains a stack of candidate dominant
// parabolas whose intervals are disjoint, ordered, and together cover
// [0, current]; centers are strictly increasing integers so the
// intersection divisor 2·sigma2·diff never vanishes.
func (e *envelope[T]) build(in []T, sigma float64, invert bool) {
	w := float64(len(in))
	sigma2 := sigma * sigma
	if invert {
		sigma2 = -sigma2
	}
	sigma22 := 2 * sigma2
	e.sigma2 = sigma2
	e.spans = append(e.spans[:0], span[T]{left: 0, right: w, center: 0, apex: in[0]})

	for k := 1; k < len(in); k++ {
		current := float64(k)
		apex := float64(in[k])
		intersection := 0.0
		for {
			top := &e.spans[len(e.spans)-1]
			diff := current - top.center
			intersection = current + (apex-float64(top.apex)-sigma2*diff*diff)/(sigma22*diff)
			if intersection < top.left {
				// Dominated everywhere in its remaining interval.
				e.spans = e.spans[:len(e.spans)-1]
				if len(e.spans) > 0 {
					continue
				}
				intersection = 0
			} else if intersection < top.right {
				top.right = intersection
			}
			break
		}
		e.spans = append(e.spans, span[T]{left: intersection, right: w, center: current, apex: in[k]})
	}
}

// readout evaluates the envelope at every integer position. The cursor
// only moves forward: after build the surviving spans partition [0, w).
func (e *envelope[T]) readout(out []T) {
	it := 0
	for k := range out {
		current := float64(k)
		for current >= e.spans[it].right {
			it++
		}
		d := current - e.spans[it].center
		out[k] = T(e.sigma2*d*d + float64(e.spans[it].apex))
	}
}
