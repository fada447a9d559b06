// Package geom provides the tolerance conventions and plane primitives
// shared by the mesh store and the CSG kernel. Vectors are
// github.com/deadsy/sdfx vec/v3 values; this package only adds the
// tolerant predicates and interpolation the kernel needs on top.
package geom

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Eps is the tolerance for vector equality and zero tests.
const Eps = 1e-7

// PlaneEps is the tolerance for point-vs-plane classification. It is
// deliberately looser than Eps: classification has to absorb drift
// accumulated by earlier splits.
const PlaneEps = 1e-5

// IsZero reports whether every component of v is within Eps of zero.
func IsZero(v v3.Vec) bool {
	return math.Abs(v.X) < Eps && math.Abs(v.Y) < Eps && math.Abs(v.Z) < Eps
}

// AlmostEqual reports whether a and b agree component-wise within a
// relative tolerance of Eps.
func AlmostEqual(a, b v3.Vec) bool {
	return closeRel(a.X, b.X) && closeRel(a.Y, b.Y) && closeRel(a.Z, b.Z)
}

// closeRel is a relative closeness test in the math.isclose style.
func closeRel(a, b float64) bool {
	return math.Abs(a-b) <= Eps*math.Max(math.Abs(a), math.Abs(b))
}

// Lerp returns the linear interpolation a + (b-a)*t.
func Lerp(a, b v3.Vec, t float64) v3.Vec {
	return a.Add(b.Sub(a).MulScalar(t))
}
