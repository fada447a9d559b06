package csg

import (
	"github.com/chazu/mortise/pkg/mesh"
)

// clipFrame is one pending clip step: a clipper node and the faces
// still to be tested against its subtree.
type clipFrame struct {
	node   *Tree
	ifaces []int
}

// clipFaces removes from ifaces (triangles of m) everything inside the
// solid region of the clipper tree. Faces are split against each
// clipper plane on the way down; at a missing front child the front
// fragments are safely outside and survive, at a missing back child the
// back fragments are inside the solid and are dropped.
//
// A clipper node whose face list was emptied by earlier clipping has no
// partition plane; it passes its input through unchanged (a fresh copy,
// since triangle indices are immutable handles either way).
func clipFaces(m *mesh.Mesh, ifaces []int, clipper *Tree) []int {
	var out []int
	stack := []clipFrame{{clipper, ifaces}}
	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(fr.node.faces) == 0 {
			out = append(out, fr.ifaces...)
			continue
		}
		front, back := partition(m, fr.ifaces, fr.node.plane())
		if fr.node.front != nil {
			stack = append(stack, clipFrame{fr.node.front, front})
		} else {
			out = append(out, front...)
		}
		if fr.node.back != nil {
			stack = append(stack, clipFrame{fr.node.back, back})
		}
		// Back fragments at a leaf are inside the solid: dropped.
	}
	return out
}

// ClipTo removes from every node of t the faces that lie inside the
// solid region of clipper. Surviving fragments are coplanar with the
// face they came from, so a non-empty node keeps its partition plane; a
// node clipped empty becomes a pass-through for later clips.
func (t *Tree) ClipTo(clipper *Tree) {
	stack := []*Tree{t}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node == nil {
			continue
		}
		node.faces = clipFaces(node.mesh, node.faces, clipper)
		stack = append(stack, node.front, node.back)
	}
}
