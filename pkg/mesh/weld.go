package mesh

import (
	"math"
)

// cellKey is a quantized coordinate triple used to bucket vertices.
type cellKey struct {
	x, y, z int64
}

// Weld returns a copy of m with vertices closer than tol merged to a
// single index. Faces are rewritten to the surviving indices; faces
// collapsed to fewer than three distinct vertices by the merge are
// dropped. The search uses a spatial hash over cells of size tol, so a
// candidate is only compared against its own and neighboring cells.
func (m *Mesh) Weld(tol float64) *Mesh {
	out := &Mesh{}
	if tol <= 0 {
		tol = 1e-9
	}
	inv := 1 / tol
	buckets := make(map[cellKey][]int, m.NumVerts())
	remap := make([]int, m.NumVerts())

	for ivert := 0; ivert < m.NumVerts(); ivert++ {
		v := m.Vert(ivert)
		cx := int64(math.Floor(v.X * inv))
		cy := int64(math.Floor(v.Y * inv))
		cz := int64(math.Floor(v.Z * inv))
		found := -1
	search:
		for dx := int64(-1); dx <= 1; dx++ {
			for dy := int64(-1); dy <= 1; dy++ {
				for dz := int64(-1); dz <= 1; dz++ {
					for _, cand := range buckets[cellKey{cx + dx, cy + dy, cz + dz}] {
						if out.Vert(cand).Sub(v).Length() < tol {
							found = cand
							break search
						}
					}
				}
			}
		}
		if found < 0 {
			found = out.AppendVert(v)
			buckets[cellKey{cx, cy, cz}] = append(buckets[cellKey{cx, cy, cz}], found)
		}
		remap[ivert] = found
	}

	for iface := 0; iface < m.NumFaces(); iface++ {
		f := m.Face(iface)
		a, b, c := remap[f[0]], remap[f[1]], remap[f[2]]
		if a == b || b == c || c == a {
			continue
		}
		out.Faces = append(out.Faces, a, b, c)
	}
	return out
}
