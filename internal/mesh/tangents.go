package mesh

import (
	"math"

	"pbr-kernels/internal/logging"
	"pbr-kernels/internal/mathutil"
)

// uvDetEps is added to the UV determinant so zero-area UV triangles do not
// divide by zero.
const uvDetEps = 1e-8

// Tangent is a unit tangent plus handedness. The bitangent is
// Sign * cross(normal, Dir).
type Tangent struct {
	Dir  mathutil.Vec3
	Sign float64 // +1 or -1
}

// Bitangent reconstructs the bitangent for the given vertex normal.
func (t Tangent) Bitangent(n mathutil.Vec3) mathutil.Vec3 {
	return n.Cross(t.Dir).Scale(t.Sign)
}

// ComputeTangents returns per-vertex tangents using Lengyel's method: per
// face tangent/bitangent directions are solved from position and UV edges,
// summed per vertex, then the tangent is Gram-Schmidt orthogonalized against
// the vertex normal. Sign is -1 when cross(n, t) points away from the summed
// bitangent (mirrored UVs).
func ComputeTangents(positions []mathutil.Vec3, uvs []mathutil.Vec2, indices []int, normals []mathutil.Vec3, opts ...Option) ([]Tangent, error) {
	o := buildOptions(opts)
	if len(uvs) != len(positions) {
		return nil, ErrUVCount
	}
	if len(normals) != len(positions) {
		return nil, ErrNormalCount
	}
	if err := ValidateIndices(indices, len(positions)); err != nil {
		return nil, err
	}

	tan1 := make([]mathutil.Vec3, len(positions))
	tan2 := make([]mathutil.Vec3, len(positions))
	mag := make([]float64, len(positions))

	for i := 0; i < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]

		e1 := positions[i1].Sub(positions[i0])
		e2 := positions[i2].Sub(positions[i0])
		d1 := uvs[i1].Sub(uvs[i0])
		d2 := uvs[i2].Sub(uvs[i0])
		s1, t1 := d1[0], d1[1]
		s2, t2 := d2[0], d2[1]

		r := 1 / ((s1*t2 - s2*t1) + uvDetEps)
		sdir := e1.Scale(t2).Sub(e2.Scale(t1)).Scale(r)
		tdir := e2.Scale(s1).Sub(e1.Scale(s2)).Scale(r)

		l := sdir.Len()
		for _, idx := range [3]int{i0, i1, i2} {
			tan1[idx] = tan1[idx].Add(sdir)
			tan2[idx] = tan2[idx].Add(tdir)
			mag[idx] += l
		}
	}

	out := make([]Tangent, len(positions))
	for i := range out {
		n := normals[i]
		t := tan1[i]

		ortho := t.Sub(n.Scale(n.Dot(t)))
		if degenerate(ortho, mag[i]) {
			if o.policy == PolicyReject {
				return nil, &DegenerateError{Vertex: i, Kind: "tangent"}
			}
			logging.Logger().Warn("mesh: degenerate tangent, using fallback", "vertex", i)
			out[i] = Tangent{Dir: perpendicular(n), Sign: 1}
			continue
		}

		sign := 1.0
		if n.Cross(t).Dot(tan2[i]) < 0 {
			sign = -1
		}
		out[i] = Tangent{Dir: unit(ortho), Sign: sign}
	}
	return out, nil
}

// perpendicular returns an arbitrary unit vector orthogonal to n.
func perpendicular(n mathutil.Vec3) mathutil.Vec3 {
	axis := mathutil.Vec3{1, 0, 0}
	if math.Abs(n[0]) >= 0.9 {
		axis = mathutil.Vec3{0, 1, 0}
	}
	p := axis.Sub(n.Scale(n.Dot(axis)))
	if degenerate(p, 1) {
		return axis
	}
	return unit(p)
}
