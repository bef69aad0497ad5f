package mesh

import (
	"math"

	"pbr-kernels/internal/mathutil"
)

// UVSphere builds a unit sphere centred at the origin with rings latitude
// bands and segments longitude bands. u grows with longitude (towards +X
// when seen from +Z) and v grows from the north pole (v=0) to the south pole,
// so image row 0 maps to the top. The seam (u=0) faces -Z and its column is
// duplicated. Each pole gets one vertex per segment, so every vertex is
// referenced. Triangles are counter-clockwise seen from outside.
func UVSphere(rings, segments int) *Mesh {
	if rings < 2 {
		rings = 2
	}
	if segments < 3 {
		segments = 3
	}

	cols := segments + 1
	top := func(s int) int { return s }
	ring := func(r, s int) int { return segments + (r-1)*cols + s }
	bottom := func(s int) int { return segments + (rings-1)*cols + s }

	n := 2*segments + (rings-1)*cols
	m := &Mesh{
		Positions: make([]mathutil.Vec3, 0, n),
		UVs:       make([]mathutil.Vec2, 0, n),
		Indices:   make([]int, 0, rings*segments*6),
	}

	point := func(u, v float64) {
		theta := v * math.Pi
		phi := (u - 0.5) * 2 * math.Pi
		sinT := math.Sin(theta)
		m.Positions = append(m.Positions, mathutil.Vec3{sinT * math.Sin(phi), math.Cos(theta), sinT * math.Cos(phi)})
		m.UVs = append(m.UVs, mathutil.Vec2{u, v})
	}

	for s := 0; s < segments; s++ {
		point((float64(s)+0.5)/float64(segments), 0)
	}
	for r := 1; r < rings; r++ {
		for s := 0; s <= segments; s++ {
			point(float64(s)/float64(segments), float64(r)/float64(rings))
		}
	}
	for s := 0; s < segments; s++ {
		point((float64(s)+0.5)/float64(segments), 1)
	}

	for s := 0; s < segments; s++ {
		m.Indices = append(m.Indices, top(s), ring(1, s), ring(1, s+1))
	}
	for r := 1; r < rings-1; r++ {
		for s := 0; s < segments; s++ {
			a, b := ring(r, s), ring(r+1, s)
			c, d := ring(r+1, s+1), ring(r, s+1)
			m.Indices = append(m.Indices, a, b, c, a, c, d)
		}
	}
	for s := 0; s < segments; s++ {
		m.Indices = append(m.Indices, ring(rings-1, s), bottom(s), ring(rings-1, s+1))
	}
	return m
}

// Octahedron returns the closed unit octahedron with vertices on the axes:
// +X, -X, +Y, -Y, +Z, -Z. It has no UVs.
func Octahedron() *Mesh {
	const (
		px = iota
		nx
		py
		ny
		pz
		nz
	)
	return &Mesh{
		Positions: []mathutil.Vec3{
			{1, 0, 0}, {-1, 0, 0},
			{0, 1, 0}, {0, -1, 0},
			{0, 0, 1}, {0, 0, -1},
		},
		Indices: []int{
			px, py, pz,
			pz, py, nx,
			nx, py, nz,
			nz, py, px,
			px, pz, ny,
			pz, nx, ny,
			nx, nz, ny,
			nz, px, ny,
		},
	}
}
