// Package mesh derives per-vertex normals and tangent frames from indexed
// triangle meshes.
package mesh

import (
	"pbr-kernels/internal/logging"
	"pbr-kernels/internal/mathutil"
)

// FallbackNormal is used for degenerate vertices under PolicyFallback.
var FallbackNormal = mathutil.Vec3{0, 1, 0}

// ValidateIndices checks that indices form whole triangles and stay within
// [0, vertexCount).
func ValidateIndices(indices []int, vertexCount int) error {
	if len(indices)%3 != 0 {
		return ErrIndexCount
	}
	for pos, idx := range indices {
		if idx < 0 || idx >= vertexCount {
			return &IndexError{Position: pos, Index: idx, VertexCount: vertexCount}
		}
	}
	return nil
}

// ComputeNormals returns one unit normal per vertex: the normalized sum of
// the unnormalized face normals cross(v1-v0, v2-v0) of every triangle that
// uses the vertex. Larger faces therefore weigh more. Counter-clockwise
// winding seen from outside yields outward normals.
func ComputeNormals(positions []mathutil.Vec3, indices []int, opts ...Option) ([]mathutil.Vec3, error) {
	o := buildOptions(opts)
	if err := ValidateIndices(indices, len(positions)); err != nil {
		return nil, err
	}

	acc := make([]mathutil.Vec3, len(positions))
	mag := make([]float64, len(positions))
	for i := 0; i < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		v0 := positions[i0]
		n := positions[i1].Sub(v0).Cross(positions[i2].Sub(v0))
		acc[i0] = acc[i0].Add(n)
		acc[i1] = acc[i1].Add(n)
		acc[i2] = acc[i2].Add(n)
		l := n.Len()
		mag[i0] += l
		mag[i1] += l
		mag[i2] += l
	}

	for i, n := range acc {
		if degenerate(n, mag[i]) {
			if o.policy == PolicyReject {
				return nil, &DegenerateError{Vertex: i, Kind: "normal"}
			}
			logging.Logger().Warn("mesh: degenerate normal, using fallback", "vertex", i)
			acc[i] = FallbackNormal
			continue
		}
		acc[i] = unit(n)
	}
	return acc, nil
}
