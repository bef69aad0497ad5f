package raster

import (
	"math"

	"pbr-kernels/internal/mathutil"
)

// Vertex is one projected triangle corner: screen position, depth (larger
// is closer) and the attributes interpolated for shading.
type Vertex struct {
	X, Y, Z float64
	Normal  mathutil.Vec3
	Tangent mathutil.Vec3
	Sign    float64
	UV      mathutil.Vec2
}

// RasterizeTriangle fills the pixels whose centres fall inside the triangle,
// depth tests them and stores shade(fragment) into fb. Winding does not
// matter; culling is left to the depth test.
//
// This is the hot path: no allocation happens per pixel.
func RasterizeTriangle(fb *FrameBuffer, tri [3]Vertex, hasTangent bool, shade func(Fragment) mathutil.Vec3) {
	x0, y0, z0 := tri[0].X, tri[0].Y, tri[0].Z
	x1, y1, z1 := tri[1].X, tri[1].Y, tri[1].Z
	x2, y2, z2 := tri[2].X, tri[2].Y, tri[2].Z

	// Bounding box
	minX := int(math.Floor(math.Min(math.Min(x0, x1), x2)))
	maxX := int(math.Ceil(math.Max(math.Max(x0, x1), x2)))
	minY := int(math.Floor(math.Min(math.Min(y0, y1), y2)))
	maxY := int(math.Ceil(math.Max(math.Max(y0, y1), y2)))

	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			idx := rowOff + sx
			if z <= fb.ZBuf[idx] {
				continue
			}

			frag := Fragment{
				Normal:     blend3(tri[0].Normal, tri[1].Normal, tri[2].Normal, w0, w1, w2),
				UV:         blend2(tri[0].UV, tri[1].UV, tri[2].UV, w0, w1, w2),
				HasTangent: hasTangent,
			}
			if hasTangent {
				frag.Tangent = blend3(tri[0].Tangent, tri[1].Tangent, tri[2].Tangent, w0, w1, w2)
				frag.Sign = w0*tri[0].Sign + w1*tri[1].Sign + w2*tri[2].Sign
			}

			c := shade(frag)
			fb.ZBuf[idx] = z
			fb.Coverage[idx] = true
			fb.Color[idx*3] = c[0]
			fb.Color[idx*3+1] = c[1]
			fb.Color[idx*3+2] = c[2]
		}
	}
}

func blend3(a, b, c mathutil.Vec3, wa, wb, wc float64) mathutil.Vec3 {
	return mathutil.Vec3{
		a[0]*wa + b[0]*wb + c[0]*wc,
		a[1]*wa + b[1]*wb + c[1]*wc,
		a[2]*wa + b[2]*wb + c[2]*wc,
	}
}

func blend2(a, b, c mathutil.Vec2, wa, wb, wc float64) mathutil.Vec2 {
	return mathutil.Vec2{
		a[0]*wa + b[0]*wb + c[0]*wc,
		a[1]*wa + b[1]*wb + c[1]*wc,
	}
}
