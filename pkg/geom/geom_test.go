package geom

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsZero(t *testing.T) {
	assert.True(t, IsZero(v3.Vec{}))
	assert.True(t, IsZero(v3.Vec{X: 1e-9, Y: -1e-9, Z: 1e-8}))
	assert.False(t, IsZero(v3.Vec{X: 1e-6}))
	assert.False(t, IsZero(v3.Vec{Z: -1}))
}

func TestAlmostEqual(t *testing.T) {
	a := v3.Vec{X: 1, Y: 2, Z: 3}
	assert.True(t, AlmostEqual(a, a))
	assert.True(t, AlmostEqual(a, v3.Vec{X: 1 + 1e-9, Y: 2, Z: 3}))
	assert.False(t, AlmostEqual(a, v3.Vec{X: 1.001, Y: 2, Z: 3}))
}

func TestLerp(t *testing.T) {
	a := v3.Vec{X: 0, Y: 0, Z: -1}
	b := v3.Vec{X: 2, Y: 0, Z: 1}
	mid := Lerp(a, b, 0.5)
	assert.InDelta(t, 1, mid.X, 1e-12)
	assert.InDelta(t, 0, mid.Y, 1e-12)
	assert.InDelta(t, 0, mid.Z, 1e-12)
	assert.Equal(t, a, Lerp(a, b, 0))
	assert.Equal(t, b, Lerp(a, b, 1))
}

func TestPlaneFromPoints(t *testing.T) {
	a := v3.Vec{X: 1, Y: 0, Z: 0}
	b := v3.Vec{X: 0, Y: 1, Z: 0}
	c := v3.Vec{X: 0, Y: 0, Z: 1}
	pl := PlaneFromPoints(a, b, c)

	inv := 1 / math.Sqrt(3)
	require.InDelta(t, inv, pl.N.X, 1e-12)
	require.InDelta(t, inv, pl.N.Y, 1e-12)
	require.InDelta(t, inv, pl.N.Z, 1e-12)
	require.InDelta(t, 0.5773502691896258, pl.D, 1e-12)

	// The defining points are on the plane.
	assert.InDelta(t, 0, pl.Eval(a), 1e-12)
	assert.InDelta(t, 0, pl.Eval(b), 1e-12)
	assert.InDelta(t, 0, pl.Eval(c), 1e-12)
}

func TestPlaneEvalSides(t *testing.T) {
	// The z = 0 plane, normal up.
	pl := PlaneFromPoints(
		v3.Vec{X: -2, Y: -2, Z: 0},
		v3.Vec{X: 2, Y: -2, Z: 0},
		v3.Vec{X: 2, Y: 2, Z: 0},
	)
	assert.Greater(t, pl.Eval(v3.Vec{Z: 1}), 0.0)
	assert.Less(t, pl.Eval(v3.Vec{Z: -1}), 0.0)
	assert.InDelta(t, 0, pl.Eval(v3.Vec{X: 5, Y: -3}), 1e-12)
}

func TestPlaneFlip(t *testing.T) {
	pl := PlaneFromPoints(
		v3.Vec{X: 1, Y: 0, Z: 0},
		v3.Vec{X: 0, Y: 1, Z: 0},
		v3.Vec{X: 0, Y: 0, Z: 1},
	)
	fl := pl.Flip()
	p := v3.Vec{X: 3, Y: -1, Z: 2}
	assert.InDelta(t, -pl.Eval(p), fl.Eval(p), 1e-12)
}
