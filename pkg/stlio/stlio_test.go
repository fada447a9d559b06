package stlio

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/mortise/pkg/shapes"
)

func TestRoundTripBuffer(t *testing.T) {
	src := shapes.Tetrahedron()

	var buf bytes.Buffer
	require.NoError(t, Write(src, &buf))

	got, err := Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	// The soup is welded back to the indexed form.
	assert.Equal(t, 4, got.NumVerts())
	assert.Equal(t, 4, got.NumFaces())
	assert.NoError(t, got.CheckSanity())
	// float32 round trip loses a little precision, nothing more.
	assert.InDelta(t, src.Volume(), got.Volume(), 1e-5)
}

func TestRoundTripFile(t *testing.T) {
	src := shapes.Box(1, 1, 2)
	path := filepath.Join(t.TempDir(), "box.stl")

	require.NoError(t, Save(src, path))
	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8, got.NumVerts())
	assert.Equal(t, 12, got.NumFaces())
	assert.NoError(t, got.CheckSanity())
	assert.InDelta(t, 2, got.Volume(), 1e-5)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.stl"))
	assert.Error(t, err)
}

func TestToSolidNormals(t *testing.T) {
	solid := ToSolid(shapes.Box(2, 2, 2), "box")
	require.Len(t, solid.Triangles, 12)
	assert.Equal(t, "box", solid.Name)

	// The first face lies on x=-1 with the normal pointing out.
	n := solid.Triangles[0].Normal
	assert.InDelta(t, -1, n[0], 1e-6)
	assert.InDelta(t, 0, n[1], 1e-6)
	assert.InDelta(t, 0, n[2], 1e-6)
}
