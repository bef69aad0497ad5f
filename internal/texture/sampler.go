package texture

import (
	"math"

	"pbr-kernels/internal/mathutil"
)

// Sample performs bilinear filtering with periodic UV wrapping.
//
// u and v are wrapped into [0,1) and mapped onto x = u*(Width-1),
// y = v*(Height-1), so the edge texels are interpolation anchors rather than
// pixel centres. The right/bottom neighbour is clamped to the last
// column/row instead of wrapping to 0; together with the outer wrap this
// means the seam between u≈1 and u=0 is not continuous.
func Sample(g *PixelGrid, u, v float64) mathutil.Vec3 {
	w, h := g.Width, g.Height

	u = wrap01(u)
	v = wrap01(v)

	fx := u * float64(w-1)
	fy := v * float64(h-1)
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	x1 := min(x0+1, w-1)
	y1 := min(y0+1, h-1)
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	c00 := g.Pix[y0*w+x0]
	c10 := g.Pix[y0*w+x1]
	c01 := g.Pix[y1*w+x0]
	c11 := g.Pix[y1*w+x1]

	var out mathutil.Vec3
	for i := 0; i < 3; i++ {
		top := c00[i]*(1-tx) + c10[i]*tx
		bot := c01[i]*(1-tx) + c11[i]*tx
		out[i] = top*(1-ty) + bot*ty
	}
	return out
}

// wrap01 is floored modulo 1: negative inputs wrap from the top. Non-finite
// coordinates map to 0.
func wrap01(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	x -= math.Floor(x)
	// x can round up to exactly 1 for tiny negative inputs.
	if x >= 1 {
		x = 0
	}
	return x
}
