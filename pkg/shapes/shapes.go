// Package shapes generates triangle meshes for primitive solids. Box
// and Tetrahedron are exact constructions; Sphere and Cylinder evaluate
// an SDF from github.com/deadsy/sdfx and tessellate it with marching
// cubes, then weld the triangle soup into an indexed mesh.
package shapes

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"

	"github.com/chazu/mortise/pkg/mesh"
)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 64

// weldTol merges the duplicated vertices marching cubes emits along
// shared cell edges; those duplicates are bit-identical, so the
// tolerance only needs to be small and positive.
const weldTol = 1e-9

// boxFaces is the triangulation of a box's 8 corners, CCW outward. The
// corner order matches the verts table in Box.
var boxFaces = []int{
	0, 1, 2, 2, 3, 0,
	3, 2, 4, 4, 5, 3,
	5, 4, 6, 6, 7, 5,
	1, 0, 7, 7, 6, 1,
	7, 0, 3, 3, 5, 7,
	4, 2, 1, 1, 6, 4,
}

// Box returns a box of the given side lengths centered at the origin.
func Box(x, y, z float64) *mesh.Mesh {
	hx, hy, hz := x/2, y/2, z/2
	verts := []float64{
		-hx, -hy, -hz,
		-hx, -hy, hz,
		-hx, hy, hz,
		-hx, hy, -hz,
		hx, hy, hz,
		hx, hy, -hz,
		hx, -hy, hz,
		hx, -hy, -hz,
	}
	return mesh.MustNew(verts, boxFaces)
}

// Tetrahedron returns a tetrahedron with base corners (-1,-1,0),
// (1,-1,0), (0,1,0) and apex (0,0,1).
func Tetrahedron() *mesh.Mesh {
	return mesh.MustNew(
		[]float64{-1, -1, 0, 1, -1, 0, 0, 1, 0, 0, 0, 1},
		[]int{2, 1, 0, 0, 1, 3, 1, 2, 3, 2, 0, 3},
	)
}

// Sphere returns a sphere of the given radius centered at the origin,
// tessellated at the given marching cubes resolution (cells <= 0 uses
// the default). The sampled surface is approximate; its vertices lie
// within a cell size of the true sphere.
func Sphere(radius float64, cells int) (*mesh.Mesh, error) {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, fmt.Errorf("shapes: sphere: %w", err)
	}
	return fromSDF(s, cells), nil
}

// Cylinder returns a cylinder of the given height and radius centered
// at the origin, tessellated at the given marching cubes resolution.
func Cylinder(height, radius float64, cells int) (*mesh.Mesh, error) {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, fmt.Errorf("shapes: cylinder: %w", err)
	}
	return fromSDF(s, cells), nil
}

// fromSDF tessellates an SDF with uniform marching cubes and welds the
// resulting triangle soup into an indexed mesh.
func fromSDF(s sdf.SDF3, cells int) *mesh.Mesh {
	if cells <= 0 {
		cells = defaultMeshCells
	}
	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(s, renderer)

	soup := &mesh.Mesh{}
	for _, tri := range triangles {
		a := soup.AppendVert(tri[0])
		b := soup.AppendVert(tri[1])
		c := soup.AppendVert(tri[2])
		soup.Faces = append(soup.Faces, a, b, c)
	}
	return soup.Weld(weldTol)
}
