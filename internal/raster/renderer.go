// Package raster draws shaded triangle meshes into images on the CPU. It
// is the preview path for materials: every pixel runs brdf.Evaluate.
package raster

import (
	"errors"
	"fmt"
	"image"
	"math"

	"pbr-kernels/internal/mathutil"
	"pbr-kernels/internal/mesh"
)

var (
	// ErrNoNormals is returned when a mesh has not been rebuilt.
	ErrNoNormals = errors.New("raster: mesh has no normals")
	// ErrSingularView is returned for a view matrix that cannot be inverted.
	ErrSingularView = errors.New("raster: singular view matrix")
)

// RenderMesh draws m orthographically, looking down -Z, fitted into a
// size×size image with a small margin. m must carry normals; tangents and
// UVs are used when present.
func RenderMesh(m *mesh.Mesh, s *Surface, lc *LightConfig, size int) (*image.NRGBA, error) {
	return RenderMeshView(m, s, lc, mathutil.Mat3Identity(), size)
}

// RenderMeshView is RenderMesh with the model first transformed by view.
// view must be invertible.
func RenderMeshView(m *mesh.Mesh, s *Surface, lc *LightConfig, view mathutil.Mat3, size int) (*image.NRGBA, error) {
	if view.Det() == 0 {
		return nil, ErrSingularView
	}
	vt := newViewTransform(view)
	n := m.VertexCount()
	if len(m.Normals) != n {
		return nil, ErrNoNormals
	}
	if err := mesh.ValidateIndices(m.Indices, n); err != nil {
		return nil, fmt.Errorf("raster: %w", err)
	}
	hasUV := len(m.UVs) == n
	hasTangent := hasUV && len(m.Tangents) == n

	positions := make([]mathutil.Vec3, n)
	for i, p := range m.Positions {
		positions[i] = vt.model.MulVec3(p)
	}

	// Compute bounding box of the silhouette
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range positions {
		minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
		minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
	}
	span := math.Max(maxX-minX, maxY-minY)
	if span < 0.001 {
		span = 0.001
	}
	cx, cy := (minX+maxX)/2, (minY+maxY)/2

	margin := float64(size) / 16
	scale := (float64(size) - 2*margin) / span
	half := float64(size) / 2

	verts := make([]Vertex, n)
	for i, p := range positions {
		v := Vertex{
			X:      half + (p[0]-cx)*scale,
			Y:      half - (p[1]-cy)*scale,
			Z:      p[2],
			Normal: vt.normal.MulVec3(m.Normals[i]).Normalize(),
		}
		if hasUV {
			v.UV = m.UVs[i]
		}
		if hasTangent {
			v.Tangent = vt.model.MulVec3(m.Tangents[i].Dir).Normalize()
			v.Sign = m.Tangents[i].Sign * vt.flip
		}
		verts[i] = v
	}

	fb := NewFrameBuffer(size, size)
	shade := func(f Fragment) mathutil.Vec3 { return lc.Shade(s, f) }
	for i := 0; i+2 < len(m.Indices); i += 3 {
		tri := [3]Vertex{verts[m.Indices[i]], verts[m.Indices[i+1]], verts[m.Indices[i+2]]}
		RasterizeTriangle(fb, tri, hasTangent, shade)
	}

	return fb.Resolve(lc.Exposure, lc.InvGamma), nil
}
