package raster

import "pbr-kernels/internal/mathutil"

// ViewMatrix turns the model by yaw degrees about +Y, then tilts it by pitch
// degrees about +X. Positive pitch shows more of the top.
func ViewMatrix(yawDeg, pitchDeg float64) mathutil.Mat3 {
	ry := mathutil.RotY(mathutil.Deg2Rad(yawDeg))
	rx := mathutil.RotX(mathutil.Deg2Rad(pitchDeg))
	return mathutil.Mat3Mul(rx, ry)
}

// viewTransform maps model space into camera space for RenderMeshView.
type viewTransform struct {
	model  mathutil.Mat3
	normal mathutil.Mat3 // inverse transpose of model
	flip   float64       // -1 when model mirrors, flipping tangent handedness
}

func newViewTransform(view mathutil.Mat3) viewTransform {
	vt := viewTransform{model: view, normal: view.Inverse().Transpose(), flip: 1}
	if view.Det() < 0 {
		vt.flip = -1
	}
	return vt
}
