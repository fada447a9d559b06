// Package stlio reads and writes meshes as STL using
// github.com/fulgurant/stl. STL is a triangle soup: the reader welds
// coincident vertices back into an indexed mesh before the kernel sees
// them, and the writer expands the index arrays and recomputes facet
// normals from the winding order.
package stlio

import (
	"fmt"
	"io"

	"github.com/fulgurant/stl"

	"github.com/chazu/mortise/pkg/mesh"
)

// WeldTol is the vertex welding tolerance applied on load. STL stores
// float32 coordinates, so coincident corners from adjacent facets are
// usually bit-identical; the tolerance only has to absorb float32
// round-trip noise.
const WeldTol = 1e-6

// Load reads an STL file (ASCII or binary) into an indexed mesh.
func Load(path string) (*mesh.Mesh, error) {
	solid, err := stl.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("stlio: read %s: %w", path, err)
	}
	return fromSolid(solid), nil
}

// Read reads STL data from r into an indexed mesh. The reader must
// support seeking so the format (ASCII or binary) can be sniffed.
func Read(r io.ReadSeeker) (*mesh.Mesh, error) {
	solid, err := stl.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("stlio: read: %w", err)
	}
	return fromSolid(solid), nil
}

// Save writes m to an STL file. The name and ASCII/binary choice follow
// ToSolid.
func Save(m *mesh.Mesh, path string) error {
	if err := ToSolid(m, "mortise").WriteFile(path); err != nil {
		return fmt.Errorf("stlio: write %s: %w", path, err)
	}
	return nil
}

// Write writes m to w as ASCII STL.
func Write(m *mesh.Mesh, w io.Writer) error {
	if err := ToSolid(m, "mortise").WriteAll(w); err != nil {
		return fmt.Errorf("stlio: write: %w", err)
	}
	return nil
}

// fromSolid converts a triangle soup into an indexed mesh, welding
// coincident vertices with a spatial hash.
func fromSolid(solid *stl.Solid) *mesh.Mesh {
	soup := &mesh.Mesh{}
	for _, tri := range solid.Triangles {
		var face [3]int
		for j, v := range tri.Vertices {
			soup.Verts = append(soup.Verts, float64(v[0]), float64(v[1]), float64(v[2]))
			face[j] = soup.NumVerts() - 1
		}
		soup.Faces = append(soup.Faces, face[0], face[1], face[2])
	}
	return soup.Weld(WeldTol)
}

// ToSolid expands m into an stl.Solid with per-facet normals computed
// from the winding order. The solid is marked ASCII; callers writing
// binary can clear IsAscii before writing.
func ToSolid(m *mesh.Mesh, name string) *stl.Solid {
	solid := &stl.Solid{Name: name, IsAscii: true}
	for iface := 0; iface < m.NumFaces(); iface++ {
		f := m.Face(iface)
		a, b, c := m.Vert(f[0]), m.Vert(f[1]), m.Vert(f[2])
		n := b.Sub(a).Cross(c.Sub(a)).Normalize()
		solid.AppendTriangle(stl.Triangle{
			Normal: stl.Vec3{float32(n.X), float32(n.Y), float32(n.Z)},
			Vertices: [3]stl.Vec3{
				{float32(a.X), float32(a.Y), float32(a.Z)},
				{float32(b.X), float32(b.Y), float32(b.Z)},
				{float32(c.X), float32(c.Y), float32(c.Z)},
			},
		})
	}
	return solid
}
