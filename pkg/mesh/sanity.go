package mesh

import (
	"fmt"

	"github.com/chazu/mortise/pkg/geom"
)

// edgeKey is a directed edge between two vertex indices.
type edgeKey struct {
	a, b int
}

// edgeSides records the faces incident to a directed edge: left is the
// face that walks the edge a->b, right the face that walks b->a.
type edgeSides struct {
	left  int
	right int // -1 until the opposite walk is seen
}

// CheckSanity verifies that m is a valid input for the boolean kernel:
// well-formed arrays, no loose vertices, no degenerate faces, a closed
// consistently-oriented 2-manifold surface, and an Euler characteristic
// in the supported range. The first violated invariant is returned as a
// wrapped sentinel error from this package.
//
// Meshes mid-split do not satisfy these invariants and must not be
// re-checked until synthesis is complete.
func (m *Mesh) CheckSanity() error {
	if len(m.Verts)%3 != 0 {
		return fmt.Errorf("%w: verts length %d", ErrBadLayout, len(m.Verts))
	}
	if len(m.Faces)%3 != 0 {
		return fmt.Errorf("%w: faces length %d", ErrBadLayout, len(m.Faces))
	}
	nverts := m.NumVerts()
	nfaces := m.NumFaces()

	// Every vertex must be referenced, and no index may reach past the
	// vertex array.
	used := make(map[int]struct{}, nverts)
	maxUsed := -1
	for _, ivert := range m.Faces {
		used[ivert] = struct{}{}
		if ivert > maxUsed {
			maxUsed = ivert
		}
	}
	if len(used) != nverts || maxUsed != nverts-1 {
		return fmt.Errorf("%w: %d verts, %d referenced, max index %d",
			ErrLooseVertices, nverts, len(used), maxUsed)
	}

	// Degenerate faces, before any adjacency work.
	for iface := 0; iface < nfaces; iface++ {
		f := m.Face(iface)
		a, b, c := m.Vert(f[0]), m.Vert(f[1]), m.Vert(f[2])
		if geom.IsZero(a.Sub(b)) || geom.IsZero(b.Sub(c)) || geom.IsZero(c.Sub(a)) {
			return fmt.Errorf("%w: face %d", ErrZeroLengthEdge, iface)
		}
		if geom.IsZero(b.Sub(a).Cross(c.Sub(a))) {
			return fmt.Errorf("%w: face %d", ErrZeroAreaTriangle, iface)
		}
	}

	edges, err := m.edgeAdjacency()
	if err != nil {
		return err
	}
	for key, sides := range edges {
		if sides.right < 0 {
			return fmt.Errorf("%w: edge (%d,%d) has no opposite",
				ErrOpenSurface, key.a, key.b)
		}
	}

	// Euler characteristic chi = V - E + F. For the connected sum of g
	// tori chi = 2 - 2g, so a closed surface of supported genus gives an
	// even chi in [2, 100).
	chi := nverts - len(edges) + nfaces
	if chi%2 != 0 || chi < 2 || chi >= 100 {
		return fmt.Errorf("%w: chi = %d", ErrEulerViolation, chi)
	}
	return nil
}

// edgeAdjacency builds the directed-edge adjacency map, proving
// 2-manifoldness and consistent orientation as it goes. Each edge entry
// is keyed by the first directed walk seen; the matching opposite walk
// fills the right-hand side.
func (m *Mesh) edgeAdjacency() (map[edgeKey]*edgeSides, error) {
	nfaces := m.NumFaces()
	edges := make(map[edgeKey]*edgeSides, 3*nfaces/2)
	for iface := 0; iface < nfaces; iface++ {
		f := m.Face(iface)
		for i := 0; i < 3; i++ {
			j := (i + 1) % 3
			// A face on the other side walks this edge backwards.
			opposite := edgeKey{f[j], f[i]}
			if sides, ok := edges[opposite]; ok {
				if sides.right >= 0 {
					return nil, fmt.Errorf("%w: edge (%d,%d) with faces %d, %d and %d",
						ErrNonManifold, opposite.a, opposite.b, sides.left, sides.right, iface)
				}
				sides.right = iface
				continue
			}
			straight := edgeKey{f[i], f[j]}
			if sides, ok := edges[straight]; ok {
				return nil, fmt.Errorf("%w: edge (%d,%d) walked twice by faces %d and %d",
					ErrNonManifold, straight.a, straight.b, sides.left, iface)
			}
			edges[straight] = &edgeSides{left: iface, right: -1}
		}
	}
	return edges, nil
}
