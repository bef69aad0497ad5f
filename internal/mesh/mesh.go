package mesh

import (
	"fmt"

	"pbr-kernels/internal/mathutil"
)

// Mesh bundles a vertex buffer with its index buffer and derived data.
// Normals and Tangents are outputs of Rebuild; never edit them in place.
type Mesh struct {
	Positions []mathutil.Vec3
	UVs       []mathutil.Vec2 // optional, index-aligned with Positions
	Indices   []int

	Normals  []mathutil.Vec3
	Tangents []Tangent // nil when the mesh has no UVs
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Positions) }

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// Rebuild recomputes normals and, when UVs are present, tangents.
// On error the previous derived data is left untouched.
func (m *Mesh) Rebuild(opts ...Option) error {
	normals, err := ComputeNormals(m.Positions, m.Indices, opts...)
	if err != nil {
		return fmt.Errorf("mesh: normals: %w", err)
	}

	var tangents []Tangent
	if len(m.UVs) > 0 {
		tangents, err = ComputeTangents(m.Positions, m.UVs, m.Indices, normals, opts...)
		if err != nil {
			return fmt.Errorf("mesh: tangents: %w", err)
		}
	}

	m.Normals = normals
	m.Tangents = tangents
	return nil
}
