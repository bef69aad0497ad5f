package mathutil

import "math"

// Frame is an orthonormal basis around a surface normal. Local coordinates
// are Y-up: (x, y, z) maps to x*T + y*N + z*B.
type Frame struct {
	T, N, B Vec3
}

// NewFrame builds a right-handed frame (B = T × N) around the unit normal n.
// For n = (0,1,0) the frame is exactly the identity.
func NewFrame(n Vec3) Frame {
	ref := Vec3{1, 0, 0}
	if math.Abs(n[0]) > 0.9 {
		ref = Vec3{0, 0, 1}
	}
	t := ref.Sub(n.Scale(n.Dot(ref))).Normalize()
	return Frame{T: t, N: n, B: t.Cross(n)}
}

// ToWorld maps a local Y-up direction into world space.
func (f Frame) ToWorld(local Vec3) Vec3 {
	return f.T.Scale(local[0]).Add(f.N.Scale(local[1])).Add(f.B.Scale(local[2]))
}

// ToLocal is the inverse of ToWorld.
func (f Frame) ToLocal(w Vec3) Vec3 {
	return Vec3{w.Dot(f.T), w.Dot(f.N), w.Dot(f.B)}
}

// Matrix returns the frame as a Mat3 whose columns are T, N, B.
func (f Frame) Matrix() Mat3 {
	return Mat3FromColumns(f.T, f.N, f.B)
}
