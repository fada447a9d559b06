package mesh

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Join concatenates two meshes into a new one, re-basing b's vertex
// indices past a's vertex array. Face lineage is not carried over; the
// result is a fresh unsplit mesh.
func Join(a, b *Mesh) *Mesh {
	verts := make([]float64, 0, len(a.Verts)+len(b.Verts))
	verts = append(verts, a.Verts...)
	verts = append(verts, b.Verts...)
	faces := make([]int, 0, len(a.Faces)+len(b.Faces))
	faces = append(faces, a.Faces...)
	base := a.NumVerts()
	for _, ivert := range b.Faces {
		faces = append(faces, ivert+base)
	}
	return &Mesh{Verts: verts, Faces: faces}
}

// FromFaces builds a new mesh from a subset of m's faces, keeping only
// the vertices those faces reference. Vertices are renumbered in first-
// use order.
func FromFaces(m *Mesh, ifaces []int) *Mesh {
	out := &Mesh{}
	remap := make(map[int]int)
	for _, iface := range ifaces {
		f := m.Face(iface)
		var nf [3]int
		for i, ivert := range f {
			ni, ok := remap[ivert]
			if !ok {
				ni = out.AppendVert(m.Vert(ivert))
				remap[ivert] = ni
			}
			nf[i] = ni
		}
		out.Faces = append(out.Faces, nf[0], nf[1], nf[2])
	}
	return out
}

// Translate moves every vertex by d, in place.
func (m *Mesh) Translate(d v3.Vec) {
	for i := 0; i < len(m.Verts); i += 3 {
		m.Verts[i] += d.X
		m.Verts[i+1] += d.Y
		m.Verts[i+2] += d.Z
	}
}

// BoundingBox returns the axis-aligned bounds of the mesh. An empty
// mesh returns two zero vectors.
func (m *Mesh) BoundingBox() (min, max v3.Vec) {
	if m.NumVerts() == 0 {
		return
	}
	min = m.Vert(0)
	max = min
	for i := 1; i < m.NumVerts(); i++ {
		v := m.Vert(i)
		if v.X < min.X {
			min.X = v.X
		}
		if v.Y < min.Y {
			min.Y = v.Y
		}
		if v.Z < min.Z {
			min.Z = v.Z
		}
		if v.X > max.X {
			max.X = v.X
		}
		if v.Y > max.Y {
			max.Y = v.Y
		}
		if v.Z > max.Z {
			max.Z = v.Z
		}
	}
	return min, max
}

// Volume returns the signed volume enclosed by the mesh via the
// divergence theorem. Positive for outward-facing CCW windings; only
// meaningful for closed surfaces.
func (m *Mesh) Volume() float64 {
	var vol float64
	for iface := 0; iface < m.NumFaces(); iface++ {
		f := m.Face(iface)
		a, b, c := m.Vert(f[0]), m.Vert(f[1]), m.Vert(f[2])
		vol += a.Dot(b.Cross(c))
	}
	return vol / 6
}
