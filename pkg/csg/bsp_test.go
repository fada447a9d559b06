package csg

import (
	"sort"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/mortise/pkg/mesh"
)

func v3vec(x, y, z float64) v3.Vec {
	return v3.Vec{X: x, Y: y, Z: z}
}

// sideTwoCube is a cube of side 2 centered at the origin, CCW outward.
func sideTwoCube() *mesh.Mesh {
	return mesh.MustNew(
		[]float64{
			-1, -1, -1, -1, -1, 1, -1, 1, 1, -1, 1, -1,
			1, 1, 1, 1, 1, -1, 1, -1, 1, 1, -1, -1,
		},
		[]int{
			0, 1, 2, 2, 3, 0, 3, 2, 4, 4, 5, 3, 5, 4, 6, 6, 7, 5,
			1, 0, 7, 7, 6, 1, 7, 0, 3, 3, 5, 7, 4, 2, 1, 1, 6, 4,
		},
	)
}

func sorted(xs []int) []int {
	out := append([]int(nil), xs...)
	sort.Ints(out)
	return out
}

func TestBuildEmpty(t *testing.T) {
	m := sideTwoCube()
	assert.Nil(t, Build(m, nil))
}

func TestBuildSingleFace(t *testing.T) {
	m := sideTwoCube()
	tr := Build(m, []int{3})
	require.NotNil(t, tr)
	assert.Equal(t, []int{3}, tr.faces)
	assert.Nil(t, tr.front)
	assert.Nil(t, tr.back)
}

func TestBuildCube(t *testing.T) {
	m := sideTwoCube()
	tr := Build(m, m.FaceIndices())
	require.NotNil(t, tr)

	// A cube's faces lie on six axis-aligned planes and never span
	// each other, so building splits nothing and every face survives.
	assert.Equal(t, 12, m.NumFaces())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, sorted(tr.AllFaces()))

	// The root's coplanar companion face goes front; outward normals
	// put everything else behind the root plane.
	require.NotNil(t, tr.front)
	assert.Equal(t, []int{1}, tr.front.faces)
	require.NotNil(t, tr.back)
}

func TestInvertFlipsWindings(t *testing.T) {
	m := sideTwoCube()
	tr := Build(m, m.FaceIndices())

	before := tr.plane()
	inv := tr.Invert()
	after := inv.plane()

	assert.InDelta(t, -before.N.X, after.N.X, 1e-12)
	assert.InDelta(t, -before.N.Y, after.N.Y, 1e-12)
	assert.InDelta(t, -before.N.Z, after.N.Z, 1e-12)
	assert.InDelta(t, -before.D, after.D, 1e-12)

	// The mesh is shared: the enclosed volume flips sign.
	assert.InDelta(t, -8, m.Volume(), 1e-12)

	// Front and back subtrees trade places: the coplanar companion
	// that was in front of the root is now behind it.
	require.NotNil(t, inv.back)
	assert.Equal(t, []int{1}, inv.back.faces)
	require.NotNil(t, inv.front)
}

func TestInvertInvolution(t *testing.T) {
	m := sideTwoCube()
	pristine := m.Clone()
	tr := Build(m, m.FaceIndices())

	twice := tr.Invert().Invert()

	// Same faces in the same positions, identical windings.
	assert.Equal(t, pristine.Faces, m.Faces)
	assertSameShape(t, tr, twice)
}

// assertSameShape checks two trees have identical face lists and
// structure.
func assertSameShape(t *testing.T, a, b *Tree) {
	t.Helper()
	if a == nil || b == nil {
		require.Equal(t, a == nil, b == nil)
		return
	}
	assert.Equal(t, a.faces, b.faces)
	assertSameShape(t, a.front, b.front)
	assertSameShape(t, a.back, b.back)
}

func TestClipCubeAgainstItself(t *testing.T) {
	ma := sideTwoCube()
	mb := sideTwoCube()
	ta := Build(ma, ma.FaceIndices())
	tb := Build(mb, mb.FaceIndices())

	// A solid's own shell is not strictly inside it: everything
	// survives a clip against an identical solid.
	ta.ClipTo(tb)
	assert.Len(t, ta.AllFaces(), 12)
}

func TestClipAgainstDisjointSolid(t *testing.T) {
	ma := sideTwoCube()
	mb := sideTwoCube()
	mb.Translate(v3vec(10, 0, 0))
	ta := Build(ma, ma.FaceIndices())
	tb := Build(mb, mb.FaceIndices())

	// Nothing of a lies inside the far-away b.
	ta.ClipTo(tb)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, sorted(ta.AllFaces()))
}

func TestClipRemovesContainedSolid(t *testing.T) {
	ma := sideTwoCube() // side 2
	mb := sideTwoCube()
	// Shrink b onto a cube of side 0.5 strictly inside a.
	for i := range mb.Verts {
		mb.Verts[i] *= 0.25
	}
	ta := Build(ma, ma.FaceIndices())
	tb := Build(mb, mb.FaceIndices())

	tb.ClipTo(ta)
	assert.Empty(t, tb.AllFaces())
}
