package raster

import (
	"math"

	"pbr-kernels/internal/brdf"
	"pbr-kernels/internal/mathutil"
	"pbr-kernels/internal/texture"
)

// LightConfig holds one directional light, a flat ambient term and the
// display transform. The camera is orthographic and looks down -Z.
type LightConfig struct {
	LightDir  mathutil.Vec3 // unit vector towards the light
	ViewDir   mathutil.Vec3 // unit vector towards the viewer
	Intensity float64       // irradiance at normal incidence
	Ambient   float64       // constant fill, multiplied by albedo
	Exposure  float64
	InvGamma  float64
}

// NewLightConfig places the light by azimuth/elevation in degrees (see
// mathutil.DirectionFromAngles).
func NewLightConfig(azimuthDeg, elevationDeg, intensity, ambient, exposure float64) LightConfig {
	return LightConfig{
		LightDir:  mathutil.DirectionFromAngles(azimuthDeg, elevationDeg),
		ViewDir:   mathutil.Vec3{0, 0, 1},
		Intensity: intensity,
		Ambient:   ambient,
		Exposure:  exposure,
		InvGamma:  1.0 / 2.2,
	}
}

// DefaultLightConfig is a key light from the upper right.
func DefaultLightConfig() LightConfig {
	return NewLightConfig(35, 40, 3.0, 0.08, 1.0)
}

// Surface is what gets shaded: a material plus optional maps.
type Surface struct {
	Material  brdf.Material
	AlbedoMap *texture.PixelGrid // multiplies Material.Albedo
	NormalMap *texture.PixelGrid // tangent space, green along +v
}

// Fragment carries interpolated vertex attributes for one pixel.
type Fragment struct {
	Normal     mathutil.Vec3
	Tangent    mathutil.Vec3
	Sign       float64
	UV         mathutil.Vec2
	HasTangent bool
}

// Shade returns the linear radiance leaving the surface towards the viewer.
func (lc *LightConfig) Shade(s *Surface, f Fragment) mathutil.Vec3 {
	m := s.Material
	if s.AlbedoMap != nil {
		m.Albedo = m.Albedo.Mul(texture.Sample(s.AlbedoMap, f.UV[0], f.UV[1]))
	}

	n := f.Normal.Normalize()
	if s.NormalMap != nil && f.HasTangent {
		n = perturbNormal(n, f, texture.Sample(s.NormalMap, f.UV[0], f.UV[1]))
	}

	direct := brdf.Evaluate(n, lc.LightDir, lc.ViewDir, m).Scale(lc.Intensity)
	return direct.Add(m.Albedo.Scale(lc.Ambient))
}

// perturbNormal applies a tangent-space normal map texel encoded as
// rgb*2-1. The interpolated tangent is re-orthogonalized first.
func perturbNormal(n mathutil.Vec3, f Fragment, rgb mathutil.Vec3) mathutil.Vec3 {
	t := f.Tangent.Sub(n.Scale(n.Dot(f.Tangent))).Normalize()
	if t == (mathutil.Vec3{}) {
		return n
	}
	sign := 1.0
	if f.Sign < 0 {
		sign = -1
	}
	b := n.Cross(t).Scale(sign)

	ts := rgb.Scale(2).Sub(mathutil.Gray(1))
	p := t.Scale(ts[0]).Add(b.Scale(ts[1])).Add(n.Scale(ts[2])).Normalize()
	if p == (mathutil.Vec3{}) {
		return n
	}
	return p
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return math.Min(1, (x*(2.51*x+0.03))/(x*(2.43*x+0.59)+0.14))
}
