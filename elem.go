package edt

import (
	"math"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Number is the set of element types a Grid can hold.
type Number interface {
	constraints.Integer | constraints.Float
}

// Float is the floating point subset of Number.
type Float interface {
	constraints.Float
}

// isIntegral reports whether T discards fractional values on conversion.
func isIntegral[T Number]() bool {
	return T(1)/T(2) == T(0)
}

// isSigned reports whether T can represent negative values.
func isSigned[T Number]() bool {
	var z T
	return z-T(1) < z
}

// limits describes the representable range of one Number instantiation.
type limits[T Number] struct {
	lo, hi   T
	loF, hiF float64
}

// elemLimits computes the range of T. For floating point T the range is
// ±MaxFloat of the width; for integers it is the exact min and max values.
// Shifts are unavailable on Number, so integer bounds are built by doubling.
func elemLimits[T Number]() limits[T] {
	var l limits[T]
	var z T
	bits := int(unsafe.Sizeof(z)) * 8
	if !isIntegral[T]() {
		if bits == 32 {
			l.hiF = math.MaxFloat32
		} else {
			l.hiF = math.MaxFloat64
		}
		l.loF = -l.hiF
		l.hi = T(l.hiF)
		l.lo = T(l.loF)
		return l
	}
	if isSigned[T]() {
		half := T(1)
		for i := 0; i < bits-2; i++ {
			half *= 2
		}
		l.hi = half - 1 + half
		l.lo = -l.hi - 1
	} else {
		l.hi = z - 1
		l.lo = z
	}
	l.hiF = float64(l.hi)
	l.loF = float64(l.lo)
	return l
}

// clampRound saturates x to the range of l and rounds to the nearest
// integer value, half away from zero. Used when writing a promoted
// float64 field back into an integer destination.
func (l limits[T]) clampRound(x float64) T {
	if x >= l.hiF {
		return l.hi
	}
	if x <= l.loF {
		return l.lo
	}
	return T(math.Round(x))
}
