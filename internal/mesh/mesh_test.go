package mesh

import (
	"errors"
	"math"
	"testing"

	"pbr-kernels/internal/mathutil"
)

const tolerance = 1e-9

func near(a, b mathutil.Vec3, tol float64) bool {
	return a.Sub(b).Len() <= tol
}

// quad is the unit square in the XZ plane, split along the 0-2 diagonal.
func quad() ([]mathutil.Vec3, []mathutil.Vec2, []int) {
	positions := []mathutil.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}
	uvs := []mathutil.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	indices := []int{0, 1, 2, 0, 2, 3}
	return positions, uvs, indices
}

func TestComputeNormals_Quad(t *testing.T) {
	positions, _, indices := quad()

	// cross((1,0,0), (1,0,1)) = (0,-1,0): this winding is clockwise seen
	// from +Y, so the normals face down.
	normals, err := ComputeNormals(positions, indices)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, n := range normals {
		if !near(n, mathutil.Vec3{0, -1, 0}, tolerance) {
			t.Errorf("vertex %d: expected (0,-1,0), got %v", i, n)
		}
	}

	// Reversing the winding flips them up.
	reversed := []int{0, 2, 1, 0, 3, 2}
	normals, err = ComputeNormals(positions, reversed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, n := range normals {
		if !near(n, mathutil.Vec3{0, 1, 0}, tolerance) {
			t.Errorf("reversed vertex %d: expected (0,1,0), got %v", i, n)
		}
	}
}

func scaledQuad(s float64) []mathutil.Vec3 {
	positions, _, _ := quad()
	for i := range positions {
		positions[i] = positions[i].Scale(s)
	}
	return positions
}

func TestComputeNormals_ScaleIndependent(t *testing.T) {
	_, uvs, indices := quad()
	for _, s := range []float64{1e3, 1, 1e-3, 1e-7, 1e-12, 1e-30} {
		positions := scaledQuad(s)
		normals, err := ComputeNormals(positions, indices)
		if err != nil {
			t.Fatalf("scale %g: unexpected error: %v", s, err)
		}
		for i, n := range normals {
			if !near(n, mathutil.Vec3{0, -1, 0}, tolerance) {
				t.Errorf("scale %g vertex %d: expected (0,-1,0), got %v", s, i, n)
			}
		}

		tangents, err := ComputeTangents(positions, uvs, indices, normals)
		if err != nil {
			t.Fatalf("scale %g: tangents: unexpected error: %v", s, err)
		}
		for i, tg := range tangents {
			if !near(tg.Dir, mathutil.Vec3{1, 0, 0}, tolerance) || tg.Sign != 1 {
				t.Errorf("scale %g vertex %d: expected (1,0,0) +1, got %+v", s, i, tg)
			}
		}
	}
}

func TestComputeNormals_CancellationIsDegenerate(t *testing.T) {
	// The same triangle wound both ways sums to exactly zero at any scale.
	for _, s := range []float64{1, 1e-7} {
		positions := scaledQuad(s)[:3]
		_, err := ComputeNormals(positions, []int{0, 1, 2, 0, 2, 1})
		if !errors.Is(err, ErrDegenerateGeometry) {
			t.Errorf("scale %g: expected ErrDegenerateGeometry, got %v", s, err)
		}
	}
}

func TestComputeNormals_AreaWeighted(t *testing.T) {
	// Vertex 0 is shared by a large triangle facing +Y and a small one
	// facing +Z; the sum must lean towards +Y.
	positions := []mathutil.Vec3{
		{0, 0, 0},
		{0, 0, 4}, {4, 0, 0}, // big, in XZ
		{1, 0, 0}, {0, 1, 0}, // small, in XY
	}
	indices := []int{0, 1, 2, 0, 3, 4}

	normals, err := ComputeNormals(positions, indices, WithPolicy(PolicyFallback))
	if err != nil {
		t.Fatal(err)
	}
	want := mathutil.Vec3{0, 16, 1}.Normalize()
	if !near(normals[0], want, tolerance) {
		t.Errorf("expected %v, got %v", want, normals[0])
	}
}

func TestComputeNormals_ClosedMeshUnitLength(t *testing.T) {
	for name, m := range map[string]*Mesh{
		"octahedron": Octahedron(),
		"sphere":     UVSphere(12, 24),
	} {
		t.Run(name, func(t *testing.T) {
			normals, err := ComputeNormals(m.Positions, m.Indices)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for i, n := range normals {
				if math.Abs(n.Len()-1) > tolerance {
					t.Errorf("vertex %d: |n| = %f", i, n.Len())
				}
				// Convex shapes centred at the origin: normals point outward.
				if n.Dot(m.Positions[i]) <= 0 {
					t.Errorf("vertex %d: normal %v points inward", i, n)
				}
			}
		})
	}
}

func TestComputeNormals_OctahedronMatchesPositions(t *testing.T) {
	m := Octahedron()
	normals, err := ComputeNormals(m.Positions, m.Indices)
	if err != nil {
		t.Fatal(err)
	}
	for i, n := range normals {
		if !near(n, m.Positions[i], tolerance) {
			t.Errorf("vertex %d: expected %v, got %v", i, m.Positions[i], n)
		}
	}
}

func TestComputeNormals_Errors(t *testing.T) {
	positions, _, _ := quad()

	tests := []struct {
		name    string
		indices []int
		want    error
	}{
		{"not a multiple of three", []int{0, 1}, ErrIndexCount},
		{"index too large", []int{0, 1, 4}, ErrInvalidIndex},
		{"negative index", []int{0, -1, 2}, ErrInvalidIndex},
		{"unused vertex", []int{0, 1, 2}, ErrDegenerateGeometry},
		{"collapsed triangle", []int{0, 0, 0, 1, 2, 3}, ErrDegenerateGeometry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeNormals(positions, tt.indices)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	var ie *IndexError
	_, err := ComputeNormals(positions, []int{0, 1, 9})
	if !errors.As(err, &ie) {
		t.Fatalf("expected *IndexError, got %T", err)
	}
	if ie.Position != 2 || ie.Index != 9 || ie.VertexCount != 4 {
		t.Errorf("unexpected error details: %+v", ie)
	}

	var de *DegenerateError
	_, err = ComputeNormals(positions, []int{0, 1, 2})
	if !errors.As(err, &de) {
		t.Fatalf("expected *DegenerateError, got %T", err)
	}
	if de.Vertex != 3 || de.Kind != "normal" {
		t.Errorf("unexpected error details: %+v", de)
	}
}

func TestComputeNormals_FallbackPolicy(t *testing.T) {
	positions, _, _ := quad()
	normals, err := ComputeNormals(positions, []int{0, 1, 2}, WithPolicy(PolicyFallback))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if normals[3] != FallbackNormal {
		t.Errorf("expected fallback normal for unused vertex, got %v", normals[3])
	}
	for i, n := range normals {
		if !n.IsFinite() {
			t.Errorf("vertex %d: non-finite normal %v", i, n)
		}
	}
}

func TestComputeTangents_Quad(t *testing.T) {
	positions, uvs, indices := quad()
	normals, err := ComputeNormals(positions, indices)
	if err != nil {
		t.Fatal(err)
	}
	tangents, err := ComputeTangents(positions, uvs, indices, normals)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, tg := range tangents {
		if !near(tg.Dir, mathutil.Vec3{1, 0, 0}, 1e-6) {
			t.Errorf("vertex %d: expected tangent (1,0,0), got %v", i, tg.Dir)
		}
		if tg.Sign != 1 {
			t.Errorf("vertex %d: expected sign +1, got %v", i, tg.Sign)
		}
		// With n = -Y the bitangent follows +v, which runs along +Z.
		if b := tg.Bitangent(normals[i]); !near(b, mathutil.Vec3{0, 0, 1}, 1e-6) {
			t.Errorf("vertex %d: expected bitangent (0,0,1), got %v", i, b)
		}
	}
}

func TestComputeTangents_MirroredUVs(t *testing.T) {
	positions, uvs, indices := quad()
	// Flip u: the tangent reverses and the basis changes handedness.
	for i := range uvs {
		uvs[i][0] = 1 - uvs[i][0]
	}
	normals, err := ComputeNormals(positions, indices)
	if err != nil {
		t.Fatal(err)
	}
	tangents, err := ComputeTangents(positions, uvs, indices, normals)
	if err != nil {
		t.Fatal(err)
	}
	for i, tg := range tangents {
		if !near(tg.Dir, mathutil.Vec3{-1, 0, 0}, 1e-6) {
			t.Errorf("vertex %d: expected tangent (-1,0,0), got %v", i, tg.Dir)
		}
		if tg.Sign != -1 {
			t.Errorf("vertex %d: expected sign -1, got %v", i, tg.Sign)
		}
	}
}

func TestComputeTangents_OrthogonalToNormal(t *testing.T) {
	m := UVSphere(16, 32)
	if err := m.Rebuild(WithPolicy(PolicyFallback)); err != nil {
		t.Fatal(err)
	}
	for i, tg := range m.Tangents {
		if math.Abs(tg.Dir.Len()-1) > 1e-9 {
			t.Errorf("vertex %d: tangent not unit: %v", i, tg.Dir)
		}
		if d := math.Abs(tg.Dir.Dot(m.Normals[i])); d > 1e-9 {
			t.Errorf("vertex %d: tangent not orthogonal to normal (dot %g)", i, d)
		}
		if tg.Sign != 1 && tg.Sign != -1 {
			t.Errorf("vertex %d: sign %v", i, tg.Sign)
		}
	}

	// At the front of the sphere u runs towards +X.
	front := 0
	for i, p := range m.Positions {
		if p.Dot(mathutil.Vec3{0, 0, 1}) > m.Positions[front].Dot(mathutil.Vec3{0, 0, 1}) {
			front = i
		}
	}
	if !near(m.Tangents[front].Dir, mathutil.Vec3{1, 0, 0}, 0.05) {
		t.Errorf("front tangent: expected ≈ (1,0,0), got %v", m.Tangents[front].Dir)
	}
}

func TestComputeTangents_Errors(t *testing.T) {
	positions, uvs, indices := quad()
	normals, err := ComputeNormals(positions, indices)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ComputeTangents(positions, uvs[:3], indices, normals); !errors.Is(err, ErrUVCount) {
		t.Errorf("expected ErrUVCount, got %v", err)
	}
	if _, err := ComputeTangents(positions, uvs, indices, normals[:2]); !errors.Is(err, ErrNormalCount) {
		t.Errorf("expected ErrNormalCount, got %v", err)
	}
	if _, err := ComputeTangents(positions, uvs, []int{0, 1, 7}, normals); !errors.Is(err, ErrInvalidIndex) {
		t.Errorf("expected ErrInvalidIndex, got %v", err)
	}

	// Vertex 3 is not referenced: its tangent sum is zero.
	if _, err := ComputeTangents(positions, uvs, []int{0, 1, 2}, normals); !errors.Is(err, ErrDegenerateGeometry) {
		t.Errorf("expected ErrDegenerateGeometry, got %v", err)
	}

	tangents, err := ComputeTangents(positions, uvs, []int{0, 1, 2}, normals, WithPolicy(PolicyFallback))
	if err != nil {
		t.Fatalf("fallback policy: unexpected error: %v", err)
	}
	fb := tangents[3]
	if math.Abs(fb.Dir.Len()-1) > tolerance || math.Abs(fb.Dir.Dot(normals[3])) > tolerance || fb.Sign != 1 {
		t.Errorf("unexpected fallback tangent %+v", fb)
	}
}

func TestComputeTangents_ZeroAreaUVStaysFinite(t *testing.T) {
	positions, _, indices := quad()
	uvs := make([]mathutil.Vec2, len(positions)) // all (0,0)
	normals, err := ComputeNormals(positions, indices)
	if err != nil {
		t.Fatal(err)
	}
	tangents, err := ComputeTangents(positions, uvs, indices, normals, WithPolicy(PolicyFallback))
	if err != nil {
		t.Fatal(err)
	}
	for i, tg := range tangents {
		if !tg.Dir.IsFinite() {
			t.Errorf("vertex %d: non-finite tangent %v", i, tg.Dir)
		}
	}
}

func TestMesh_Rebuild(t *testing.T) {
	positions, uvs, indices := quad()
	m := &Mesh{Positions: positions, UVs: uvs, Indices: indices}
	if err := m.Rebuild(); err != nil {
		t.Fatal(err)
	}
	if len(m.Normals) != 4 || len(m.Tangents) != 4 {
		t.Fatalf("expected 4 normals and tangents, got %d and %d", len(m.Normals), len(m.Tangents))
	}
	if m.TriangleCount() != 2 || m.VertexCount() != 4 {
		t.Errorf("unexpected counts: %d triangles, %d vertices", m.TriangleCount(), m.VertexCount())
	}

	// Topology change: derived data is recomputed.
	m.Indices = []int{0, 2, 1, 0, 3, 2}
	if err := m.Rebuild(); err != nil {
		t.Fatal(err)
	}
	if !near(m.Normals[0], mathutil.Vec3{0, 1, 0}, tolerance) {
		t.Errorf("expected flipped normal after rebuild, got %v", m.Normals[0])
	}

	// A failed rebuild leaves the previous data in place.
	prev := m.Normals
	m.Indices = []int{0, 1, 99}
	if err := m.Rebuild(); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("expected ErrInvalidIndex, got %v", err)
	}
	if &m.Normals[0] != &prev[0] {
		t.Error("normals replaced by a failed rebuild")
	}

	noUV := Octahedron()
	if err := noUV.Rebuild(); err != nil {
		t.Fatal(err)
	}
	if noUV.Tangents != nil {
		t.Error("expected no tangents for a mesh without UVs")
	}
}

func TestUVSphere_EveryVertexReferenced(t *testing.T) {
	m := UVSphere(6, 8)
	used := make([]bool, m.VertexCount())
	for _, idx := range m.Indices {
		used[idx] = true
	}
	for i, u := range used {
		if !u {
			t.Errorf("vertex %d unreferenced", i)
		}
	}
	if err := ValidateIndices(m.Indices, m.VertexCount()); err != nil {
		t.Fatal(err)
	}
	if len(m.UVs) != m.VertexCount() {
		t.Errorf("uv count %d != vertex count %d", len(m.UVs), m.VertexCount())
	}
	for i, p := range m.Positions {
		if math.Abs(p.Len()-1) > tolerance {
			t.Errorf("vertex %d not on the unit sphere: %v", i, p)
		}
	}
}
