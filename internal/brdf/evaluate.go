// Package brdf evaluates a Cook-Torrance microfacet BRDF with GGX
// distribution, Schlick-GGX shadowing and Schlick Fresnel, plus optional
// clearcoat and sheen lobes.
package brdf

import (
	"math"

	"pbr-kernels/internal/mathutil"
)

// Evaluate returns the reflected RGB contribution of one light sample,
// already multiplied by max(0, N·L). n, l and v must be unit vectors; the
// dot products are clamped here. The result is exactly zero when the light
// or the viewer is below the surface.
func Evaluate(n, l, v mathutil.Vec3, m Material) mathutil.Vec3 {
	nDotL := math.Max(0, n.Dot(l))
	nDotV := math.Max(0, n.Dot(v))
	if nDotL <= 0 || nDotV <= 0 {
		return mathutil.Vec3{}
	}

	h := l.Add(v).Normalize()
	nDotH := math.Max(0, n.Dot(h))
	vDotH := math.Max(0, v.Dot(h))

	grazing := pow5(1 - vDotH)
	specDenom := 4*nDotV*nDotL + specularEps

	// Base specular lobe.
	d := DistributionGGX(nDotH, m.Roughness)
	g := GeometrySmith(nDotV, nDotL, m.Roughness)
	dg := d * g / specDenom

	var out mathutil.Vec3
	for c := 0; c < 3; c++ {
		albedo := m.Albedo[c]
		f0 := dielectricF0*(1-m.Metallic) + albedo*m.Metallic
		f := f0 + (1-f0)*grazing

		diffuse := albedo / math.Pi * (1 - m.Metallic)
		if m.Sheen > 0 {
			diffuse += albedo * m.Sheen * grazing * (1 - m.Metallic)
		}
		out[c] = diffuse + f*dg
	}

	if m.Clearcoat > 0 {
		ccr := math.Max(minCoatRoughness, m.ClearcoatRoughness*m.ClearcoatRoughness)
		dc := DistributionGGX(nDotH, ccr)
		gc := GeometrySmith(nDotV, nDotL, ccr)
		fc := FresnelSchlick(vDotH, dielectricF0)
		coat := m.Clearcoat * (fc * dc * gc / specDenom)
		out = out.Add(mathutil.Gray(coat))
	}

	return out.Scale(nDotL)
}

// EvaluateScalar evaluates a material whose albedo is the gray value albedo
// and returns the single channel.
func EvaluateScalar(n, l, v mathutil.Vec3, albedo float64, m Material) float64 {
	m.Albedo = mathutil.Gray(albedo)
	return Evaluate(n, l, v, m)[0]
}

// Luminance reduces a linear RGB value with Rec. 709 weights.
func Luminance(c mathutil.Vec3) float64 {
	return 0.2126*c[0] + 0.7152*c[1] + 0.0722*c[2]
}
