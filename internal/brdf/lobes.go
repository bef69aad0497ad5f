package brdf

import "math"

const (
	// distributionEps keeps D finite at zero roughness and grazing N·H.
	distributionEps = 1e-7
	// specularEps guards the 4·(N·V)·(N·L) denominator.
	specularEps = 1e-5
	// dielectricF0 is the normal-incidence reflectance of non-metals and of
	// the clearcoat layer.
	dielectricF0 = 0.04
	// minCoatRoughness floors the squared clearcoat roughness.
	minCoatRoughness = 0.001
)

// DistributionGGX is the Trowbridge-Reitz normal distribution.
// alpha = roughness², a2 = alpha² (roughness⁴).
func DistributionGGX(nDotH, roughness float64) float64 {
	a := roughness * roughness
	a2 := a * a
	denom := nDotH*nDotH*(a2-1) + 1
	return a2 / (math.Pi*denom*denom + distributionEps)
}

// geometrySchlickGGX is one Smith factor with the direct-lighting remap
// k = (roughness+1)²/8.
func geometrySchlickGGX(nDotX, k float64) float64 {
	return nDotX / (nDotX*(1-k) + k)
}

// GeometrySmith returns G(V)·G(L).
func GeometrySmith(nDotV, nDotL, roughness float64) float64 {
	k := (roughness + 1) * (roughness + 1) / 8
	return geometrySchlickGGX(nDotV, k) * geometrySchlickGGX(nDotL, k)
}

// FresnelSchlick returns f0 + (1-f0)(1-cosTheta)^5.
func FresnelSchlick(cosTheta, f0 float64) float64 {
	return f0 + (1-f0)*pow5(1-cosTheta)
}

func pow5(x float64) float64 {
	x2 := x * x
	return x2 * x2 * x
}
