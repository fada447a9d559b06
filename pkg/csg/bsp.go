package csg

import (
	"github.com/chazu/mortise/pkg/geom"
	"github.com/chazu/mortise/pkg/mesh"
)

// Tree is a node of a BSP tree built over the triangles of one mesh.
// faces holds the triangle indices coplanar to this node's partition
// plane; the first entry defines the plane. Children may be nil. A
// point is inside the solid bounded by the tree's mesh exactly when a
// descent from the root (back child when behind or on the plane, front
// child when in front) ends at a missing back child.
//
// The tree holds indices into its mesh and appends to it while faces
// are split, so two trees must not be built over the same mesh
// concurrently.
type Tree struct {
	mesh  *mesh.Mesh
	faces []int
	front *Tree
	back  *Tree
}

// Mesh returns the mesh the tree partitions.
func (t *Tree) Mesh() *mesh.Mesh { return t.mesh }

// plane returns the node's partition plane. Only valid while the node
// has at least one face.
func (t *Tree) plane() geom.Plane {
	return t.mesh.FacePlane(t.faces[0])
}

// partition splits every face in ifaces against pl and distributes the
// fragments: coplanar faces join the side their normal agrees with.
func partition(m *mesh.Mesh, ifaces []int, pl geom.Plane) (front, back []int) {
	for _, iface := range ifaces {
		res := SplitFace(m, iface, pl)
		front = append(front, res.Front...)
		front = append(front, res.CoplanarFront...)
		back = append(back, res.Back...)
		back = append(back, res.CoplanarBack...)
	}
	return front, back
}

// buildFrame is one pending subtree construction: where to hang the
// node, and which faces it partitions.
type buildFrame struct {
	dst    **Tree
	ifaces []int
}

// Build constructs a BSP tree over the given faces of m, using each
// subtree's first face as its partition plane. No balancing heuristic
// is applied; the tree shape follows input order. An empty face list
// yields a nil tree. The descent runs on an explicit work stack, so
// tree depth is not limited by goroutine stack growth.
func Build(m *mesh.Mesh, ifaces []int) *Tree {
	var root *Tree
	stack := []buildFrame{{&root, ifaces}}
	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(fr.ifaces) == 0 {
			continue
		}
		node := &Tree{mesh: m, faces: []int{fr.ifaces[0]}}
		*fr.dst = node
		if len(fr.ifaces) == 1 {
			continue
		}
		front, back := partition(m, fr.ifaces[1:], node.plane())
		if len(front) > 0 {
			stack = append(stack, buildFrame{&node.front, front})
		}
		if len(back) > 0 {
			stack = append(stack, buildFrame{&node.back, back})
		}
	}
	return root
}

// invertFrame pairs a source node with the slot its inverted clone
// hangs from.
type invertFrame struct {
	src *Tree
	dst **Tree
}

// Invert returns a deep clone of the tree whose solid and empty regions
// are swapped: every face's winding is flipped (in the shared mesh) and
// front and back subtrees trade places. The original node structure is
// untouched, but because the mesh is shared, face windings seen through
// the original tree are flipped too; inverting twice restores them.
func (t *Tree) Invert() *Tree {
	if t == nil {
		return nil
	}
	var root *Tree
	stack := []invertFrame{{t, &root}}
	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &Tree{
			mesh:  fr.src.mesh,
			faces: append([]int(nil), fr.src.faces...),
		}
		for _, iface := range node.faces {
			node.mesh.FlipFace(iface)
		}
		*fr.dst = node
		// Subtrees swap sides as they are cloned.
		if fr.src.back != nil {
			stack = append(stack, invertFrame{fr.src.back, &node.front})
		}
		if fr.src.front != nil {
			stack = append(stack, invertFrame{fr.src.front, &node.back})
		}
	}
	return root
}

// AllFaces gathers every face index held by the tree, root first.
func (t *Tree) AllFaces() []int {
	var out []int
	stack := []*Tree{t}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node == nil {
			continue
		}
		out = append(out, node.faces...)
		stack = append(stack, node.front, node.back)
	}
	return out
}
