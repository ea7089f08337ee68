package edt

// Grayscale morphology with parabolic structuring functions, computed by
// the same separable envelope kernel as the distance transforms. The
// structuring function for spread s is s²·d² over squared axis offsets d,
// so larger spreads give narrower, steeper effects.

// ErodeParabolic writes into dst the grayscale erosion of src:
//
//	dst(x) = min_y [ src(y) + Σ_axis spread[axis]²·(x−y)[axis]² ]
//
// spread holds one positive value per axis; nil means 1 everywhere.
// dst and src must have equal shapes; dst may be src itself.
// Integer destinations are computed through a float64 intermediate and
// written back clamped to range and rounded to nearest.
func ErodeParabolic[D, S Number](dst *Grid[D], src *Grid[S], spread []float64) error {
	return morph(dst, src, spread, false)
}

// DilateParabolic writes into dst the grayscale dilation of src:
//
//	dst(x) = max_y [ src(y) − Σ_axis spread[axis]²·(x−y)[axis]² ]
//
// the downward-envelope dual of ErodeParabolic, with the same argument
// contract. ErodeParabolic(f) equals -DilateParabolic(-f) exactly.
func DilateParabolic[D, S Number](dst *Grid[D], src *Grid[S], spread []float64) error {
	return morph(dst, src, spread, true)
}

func morph[D, S Number](dst *Grid[D], src *Grid[S], spread []float64, invert bool) error {
	spread, err := transformArgs(dst.shape, src.shape, spread)
	if err != nil {
		return err
	}
	if isIntegral[D]() {
		// Envelope values over raw sample heights have no a-priori bound,
		// so integer destinations always take the promoted representation.
		lim := elemLimits[D]()
		tmp := NewGrid[float64](src.shape...)
		for i, v := range src.data {
			tmp.data[i] = float64(v)
		}
		sweepGrid(tmp, spread, invert)
		for i, v := range tmp.data {
			dst.data[i] = lim.clampRound(v)
		}
		return nil
	}
	for i, v := range src.data {
		dst.data[i] = D(v)
	}
	sweepGrid(dst, spread, invert)
	return nil
}
