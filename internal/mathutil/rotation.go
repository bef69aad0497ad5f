package mathutil

import "math"

// RotX returns a 3×3 rotation matrix around the X axis. Angle in radians.
func RotX(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}
}

// RotY returns a 3×3 rotation matrix around the Y axis.
func RotY(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	}
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// DirectionFromAngles returns the unit direction obtained by tilting +Z up
// by elevation and then turning it about Y by azimuth (both in degrees).
// Azimuth 0, elevation 0 points at the viewer (+Z).
func DirectionFromAngles(azimuthDeg, elevationDeg float64) Vec3 {
	r := Mat3Mul(RotY(Deg2Rad(azimuthDeg)), RotX(Deg2Rad(-elevationDeg)))
	return r.MulVec3(Vec3{0, 0, 1}).Normalize()
}
