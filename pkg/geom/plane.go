package geom

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Plane is an oriented plane in implicit form: a point p lies on the
// plane when N.Dot(p) == D. N is a unit vector; D is the signed distance
// of the plane from the origin along N.
type Plane struct {
	N v3.Vec
	D float64
}

// PlaneFromPoints derives the oriented plane of the triangle (a, b, c),
// with the normal following the right-hand rule on the winding order.
// The triangle must not be degenerate; a zero-area triangle yields a
// plane with a non-finite normal.
func PlaneFromPoints(a, b, c v3.Vec) Plane {
	n := b.Sub(a).Cross(c.Sub(a)).Normalize()
	return Plane{N: n, D: n.Dot(a)}
}

// Eval returns the signed distance of p from the plane. Positive values
// are in front of the plane (the side the normal points into).
func (p Plane) Eval(v v3.Vec) float64 {
	return p.N.Dot(v) - p.D
}

// Flip returns the plane with reversed orientation.
func (p Plane) Flip() Plane {
	return Plane{N: p.N.Neg(), D: -p.D}
}
