package csg

import (
	"fmt"

	"github.com/chazu/mortise/pkg/mesh"
)

// Op selects a boolean operation.
type Op int

const (
	Union Op = iota
	Intersection
	Difference
)

func (op Op) String() string {
	switch op {
	case Union:
		return "union"
	case Intersection:
		return "intersection"
	case Difference:
		return "difference"
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// Boolean computes the union, intersection, or difference of the solids
// bounded by a and b and returns a fresh mesh bounding the result.
//
// Both operands are validated first and are not modified: the splitting
// work happens on private clones. The result re-emits the surviving
// split fragments with unreferenced vertices pruned; it makes no
// attempt to merge fragments back into their unsplit parents, so cut
// seams may carry T-junction vertices.
func Boolean(op Op, a, b *mesh.Mesh) (*mesh.Mesh, error) {
	if err := a.CheckSanity(); err != nil {
		return nil, fmt.Errorf("%s: operand a: %w", op, err)
	}
	if err := b.CheckSanity(); err != nil {
		return nil, fmt.Errorf("%s: operand b: %w", op, err)
	}

	ma, mb := a.Clone(), b.Clone()
	ta := Build(ma, ma.FaceIndices())
	tb := Build(mb, mb.FaceIndices())

	switch op {
	case Union:
		// Keep the part of each shell outside the other solid. A plain
		// clip keeps b's faces that are coplanar with a's and face the
		// same way, so both shells would carry them; the invert pass
		// re-clips b's shell to discard those duplicates.
		ta.ClipTo(tb)
		tb.ClipTo(ta)
		tb = tb.Invert()
		tb.ClipTo(ta)
		tb = tb.Invert()

	case Intersection:
		// Complement a, keep each shell inside the other solid, then
		// restore both orientations.
		ta = ta.Invert()
		tb.ClipTo(ta)
		tb = tb.Invert()
		ta.ClipTo(tb)
		tb.ClipTo(ta)
		ta = ta.Invert()
		tb = tb.Invert()

	case Difference:
		// a minus b: keep a's shell outside b and b's shell inside a.
		// b's surviving faces stay inverted, turning them into the
		// cavity wall.
		ta = ta.Invert()
		ta.ClipTo(tb)
		tb.ClipTo(ta)
		tb = tb.Invert()
		tb.ClipTo(ta)
		ta = ta.Invert()

	default:
		return nil, fmt.Errorf("unknown boolean op %d", int(op))
	}

	out := mesh.Join(
		mesh.FromFaces(ma, ta.AllFaces()),
		mesh.FromFaces(mb, tb.AllFaces()),
	)
	return out, nil
}
