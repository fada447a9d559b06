package shapes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBox(t *testing.T) {
	m := Box(1, 2, 3)
	require.NoError(t, m.CheckSanity())
	assert.Equal(t, 8, m.NumVerts())
	assert.Equal(t, 12, m.NumFaces())
	assert.InDelta(t, 6, m.Volume(), 1e-12)

	min, max := m.BoundingBox()
	assert.InDelta(t, -0.5, min.X, 1e-12)
	assert.InDelta(t, 0.5, max.X, 1e-12)
	assert.InDelta(t, -1, min.Y, 1e-12)
	assert.InDelta(t, 1, max.Y, 1e-12)
	assert.InDelta(t, -1.5, min.Z, 1e-12)
	assert.InDelta(t, 1.5, max.Z, 1e-12)
}

func TestTetrahedron(t *testing.T) {
	m := Tetrahedron()
	require.NoError(t, m.CheckSanity())
	assert.Equal(t, 4, m.NumVerts())
	assert.Equal(t, 4, m.NumFaces())
	assert.InDelta(t, 2.0/3.0, m.Volume(), 1e-12)
}

func TestSphere(t *testing.T) {
	m, err := Sphere(1, 48)
	require.NoError(t, err)
	require.NotZero(t, m.NumFaces())

	// Marching cubes approximates the surface to within a cell or so.
	min, max := m.BoundingBox()
	assert.Greater(t, min.X, -1.2)
	assert.Less(t, max.X, 1.2)

	want := 4 * math.Pi / 3
	assert.InDelta(t, want, m.Volume(), want*0.15)
}

func TestCylinder(t *testing.T) {
	m, err := Cylinder(2, 1, 48)
	require.NoError(t, err)
	require.NotZero(t, m.NumFaces())

	want := 2 * math.Pi
	assert.InDelta(t, want, m.Volume(), want*0.15)
}
