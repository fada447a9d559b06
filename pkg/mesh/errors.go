package mesh

import "errors"

var (
	// ErrBadLayout indicates a vertex or face array whose length is not
	// a multiple of 3.
	ErrBadLayout = errors.New("mesh: array length not a multiple of 3")
	// ErrLooseVertices indicates an unreferenced vertex, or a face index
	// beyond the vertex array.
	ErrLooseVertices = errors.New("mesh: loose vertices")
	// ErrZeroLengthEdge indicates two coincident vertices in a face.
	ErrZeroLengthEdge = errors.New("mesh: zero length edge")
	// ErrZeroAreaTriangle indicates a degenerate (collinear) face.
	ErrZeroAreaTriangle = errors.New("mesh: zero area triangle")
	// ErrNonManifold indicates a directed edge seen twice, or an edge
	// with more than two incident faces.
	ErrNonManifold = errors.New("mesh: non-manifold or misoriented surface")
	// ErrOpenSurface indicates a directed edge without its opposite.
	ErrOpenSurface = errors.New("mesh: surface not closed")
	// ErrEulerViolation indicates an Euler characteristic that is odd or
	// outside the supported genus range.
	ErrEulerViolation = errors.New("mesh: euler characteristic out of range")
)
