// Package csg implements boolean operations (union, intersection,
// difference) on closed triangle meshes using BSP trees: each operand is
// partitioned by the planes of its own triangles, then the trees clip
// each other so that only the faces bounding the result survive.
package csg

import (
	"fmt"

	"github.com/chazu/mortise/pkg/geom"
	"github.com/chazu/mortise/pkg/mesh"
)

// Vertex and face classification against a splitting plane. The face
// class is the bitwise OR of its vertex classes, which is why the codes
// are what they are: a face with both FRONT and BACK vertices ORs to
// SPANNING.
const (
	classCoplanar = 0
	classFront    = 1
	classBack     = 2
	classSpanning = 3
)

// SplitResult collects the outcome of splitting one face by a plane.
// The face lists hold triangle indices into the split mesh; CutVerts
// holds the vertices created on the plane by spanning cuts.
type SplitResult struct {
	CoplanarFront []int
	CoplanarBack  []int
	Front         []int
	Back          []int
	CutVerts      []int
}

// SplitFace classifies triangle iface of m against pl and returns it in
// the appropriate list, cutting it into up to three child triangles
// when it spans the plane. New vertices and faces are appended to m;
// the input face is never removed, but when it is cut the caller must
// consume only the returned fragments (the children are also recorded
// in m's face lineage).
func SplitFace(m *mesh.Mesh, iface int, pl geom.Plane) SplitResult {
	var res SplitResult

	f := m.Face(iface)
	var types [3]int
	faceType := classCoplanar
	for i, ivert := range f {
		s := pl.Eval(m.Vert(ivert))
		t := classCoplanar
		switch {
		case s < -geom.PlaneEps:
			t = classBack
		case s > geom.PlaneEps:
			t = classFront
		}
		types[i] = t
		faceType |= t
	}

	switch faceType {
	case classCoplanar:
		// Orientation decides the side: a coplanar face whose normal
		// agrees with the plane faces front.
		if pl.N.Dot(m.FacePlane(iface).N) > 0 {
			res.CoplanarFront = append(res.CoplanarFront, iface)
		} else {
			res.CoplanarBack = append(res.CoplanarBack, iface)
		}
	case classFront:
		res.Front = append(res.Front, iface)
	case classBack:
		res.Back = append(res.Back, iface)
	case classSpanning:
		res.cut(m, iface, pl, f, types)
	}
	return res
}

// cut slices a spanning triangle along pl, walking the three directed
// edges and building an ordered vertex loop for each side. Each loop
// has 3 or 4 vertices and is fanned from its first vertex.
func (res *SplitResult) cut(m *mesh.Mesh, iface int, pl geom.Plane, f [3]int, types [3]int) {
	var frontVerts, backVerts []int
	for i := 0; i < 3; i++ {
		j := (i + 1) % 3
		ti, tj := types[i], types[j]
		vi, vj := f[i], f[j]
		if ti != classBack {
			frontVerts = append(frontVerts, vi)
		}
		if ti != classFront {
			// A coplanar vertex lands in both loops.
			backVerts = append(backVerts, vi)
		}
		if ti|tj == classSpanning {
			// One endpoint strictly front, one strictly back: the
			// denominator is bounded away from zero by the
			// classification tolerance, so no guard is needed.
			a, b := m.Vert(vi), m.Vert(vj)
			t := (pl.D - pl.N.Dot(a)) / pl.N.Dot(b.Sub(a))
			cut := m.AppendVert(geom.Lerp(a, b, t))
			frontVerts = append(frontVerts, cut)
			backVerts = append(backVerts, cut)
			res.CutVerts = append(res.CutVerts, cut)
		}
	}
	res.Front = emitFan(m, iface, frontVerts, res.Front)
	res.Back = emitFan(m, iface, backVerts, res.Back)
}

// emitFan appends the loop as one or two triangles fanned from its
// first vertex, each a child of parent, and returns the extended side
// list. Loop lengths other than 3 or 4 indicate a kernel bug.
func emitFan(m *mesh.Mesh, parent int, loop []int, side []int) []int {
	switch len(loop) {
	case 3:
		side = append(side, m.AppendFace([3]int{loop[0], loop[1], loop[2]}, parent))
	case 4:
		side = append(side, m.AppendFace([3]int{loop[0], loop[1], loop[2]}, parent))
		side = append(side, m.AppendFace([3]int{loop[0], loop[2], loop[3]}, parent))
	default:
		panic(fmt.Sprintf("csg: spanning cut of face %d produced a %d-gon", parent, len(loop)))
	}
	return side
}
