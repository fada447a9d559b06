package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tetSoup expands the good tetrahedron into a triangle soup: every
// face gets its own three vertices, the way an STL file stores them.
func tetSoup() *Mesh {
	src := goodTet()
	soup := &Mesh{}
	for iface := 0; iface < src.NumFaces(); iface++ {
		f := src.Face(iface)
		a := soup.AppendVert(src.Vert(f[0]))
		b := soup.AppendVert(src.Vert(f[1]))
		c := soup.AppendVert(src.Vert(f[2]))
		soup.Faces = append(soup.Faces, a, b, c)
	}
	return soup
}

func TestWeldMergesCoincidentVerts(t *testing.T) {
	soup := tetSoup()
	require.Equal(t, 12, soup.NumVerts())

	welded := soup.Weld(1e-6)
	assert.Equal(t, 4, welded.NumVerts())
	assert.Equal(t, 4, welded.NumFaces())
	assert.NoError(t, welded.CheckSanity())
	assert.InDelta(t, 2.0/3.0, welded.Volume(), 1e-12)
}

func TestWeldMergesNearbyVerts(t *testing.T) {
	soup := tetSoup()
	// Nudge one duplicate by less than the tolerance.
	soup.Verts[0] += 1e-8
	welded := soup.Weld(1e-6)
	assert.Equal(t, 4, welded.NumVerts())
}

func TestWeldDropsCollapsedFaces(t *testing.T) {
	// A triangle with two corners inside the weld tolerance of each
	// other collapses and is dropped.
	m := MustNew(
		[]float64{0, 0, 0, 1e-9, 0, 0, 1, 1, 0},
		[]int{0, 1, 2},
	)
	welded := m.Weld(1e-6)
	assert.Equal(t, 0, welded.NumFaces())
	assert.Equal(t, 2, welded.NumVerts())
}

func TestWeldKeepsDistinctVerts(t *testing.T) {
	m := goodTet()
	welded := m.Weld(1e-6)
	assert.Equal(t, 4, welded.NumVerts())
	assert.Equal(t, 4, welded.NumFaces())
}
