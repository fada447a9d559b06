// Package mesh provides the indexed triangle mesh store used by the CSG
// kernel, together with its sanity validator and vertex welding.
//
// All arrays are flat: Verts holds 3 float64 per vertex (x,y,z), Faces
// holds 3 vertex indices per triangle, CCW when viewed from the outward
// normal. A triangle's identity is the index at which it was appended;
// vertices and triangles are append-only while the kernel splits faces,
// so indices held by callers stay valid.
package mesh

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/mortise/pkg/geom"
)

// Mesh is an indexed triangle mesh. The zero value is an empty mesh.
type Mesh struct {
	Verts []float64
	Faces []int

	// children maps a face index to the faces created by splitting it,
	// in append order. A face with no entry is a leaf (never split).
	children map[int][]int
}

// New constructs an unvalidated mesh from flat vertex and face arrays.
// The slices are copied. Only the layout invariant is enforced here;
// call CheckSanity for the full set.
func New(verts []float64, faces []int) (*Mesh, error) {
	if len(verts)%3 != 0 {
		return nil, fmt.Errorf("%w: verts length %d", ErrBadLayout, len(verts))
	}
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("%w: faces length %d", ErrBadLayout, len(faces))
	}
	m := &Mesh{
		Verts: append([]float64(nil), verts...),
		Faces: append([]int(nil), faces...),
	}
	return m, nil
}

// MustNew is New for literals known to be well-formed; it panics on a
// layout error.
func MustNew(verts []float64, faces []int) *Mesh {
	m, err := New(verts, faces)
	if err != nil {
		panic(err)
	}
	return m
}

// Clone returns a deep copy, including the face lineage.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Verts: append([]float64(nil), m.Verts...),
		Faces: append([]int(nil), m.Faces...),
	}
	if m.children != nil {
		c.children = make(map[int][]int, len(m.children))
		for parent, kids := range m.children {
			c.children[parent] = append([]int(nil), kids...)
		}
	}
	return c
}

// NumVerts returns the number of vertices.
func (m *Mesh) NumVerts() int { return len(m.Verts) / 3 }

// NumFaces returns the number of triangles.
func (m *Mesh) NumFaces() int { return len(m.Faces) / 3 }

// Vert returns the coordinates of vertex ivert.
func (m *Mesh) Vert(ivert int) v3.Vec {
	return v3.Vec{
		X: m.Verts[3*ivert],
		Y: m.Verts[3*ivert+1],
		Z: m.Verts[3*ivert+2],
	}
}

// AppendVert appends a vertex and returns its index.
func (m *Mesh) AppendVert(v v3.Vec) int {
	m.Verts = append(m.Verts, v.X, v.Y, v.Z)
	return m.NumVerts() - 1
}

// Face returns the vertex indices of triangle iface.
func (m *Mesh) Face(iface int) [3]int {
	return [3]int{m.Faces[3*iface], m.Faces[3*iface+1], m.Faces[3*iface+2]}
}

// SetFace overwrites the vertex indices of triangle iface.
func (m *Mesh) SetFace(iface int, face [3]int) {
	m.Faces[3*iface] = face[0]
	m.Faces[3*iface+1] = face[1]
	m.Faces[3*iface+2] = face[2]
}

// AppendFace appends a triangle, records it as a child of parent, and
// returns its index. parent is the face being split; when a fragment of
// a previous split is re-split, the fragment is the parent.
func (m *Mesh) AppendFace(face [3]int, parent int) int {
	m.Faces = append(m.Faces, face[0], face[1], face[2])
	iface := m.NumFaces() - 1
	if m.children == nil {
		m.children = make(map[int][]int)
	}
	m.children[parent] = append(m.children[parent], iface)
	return iface
}

// FlipFace reverses the winding of triangle iface by swapping its first
// and third vertices, negating the face normal.
func (m *Mesh) FlipFace(iface int) {
	f := m.Face(iface)
	m.SetFace(iface, [3]int{f[2], f[1], f[0]})
}

// Children returns the direct split fragments of iface, in creation
// order, or nil for a leaf.
func (m *Mesh) Children(iface int) []int {
	return m.children[iface]
}

// Descendants returns the transitive closure of Children, in DFS order.
func (m *Mesh) Descendants(iface int) []int {
	var out []int
	stack := append([]int(nil), m.children[iface]...)
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, f)
		stack = append(stack, m.children[f]...)
	}
	return out
}

// FaceIndices returns the indices of all faces, in order.
func (m *Mesh) FaceIndices() []int {
	out := make([]int, m.NumFaces())
	for i := range out {
		out[i] = i
	}
	return out
}

// FacePlane returns the oriented plane of triangle iface.
func (m *Mesh) FacePlane(iface int) geom.Plane {
	f := m.Face(iface)
	return geom.PlaneFromPoints(m.Vert(f[0]), m.Vert(f[1]), m.Vert(f[2]))
}
