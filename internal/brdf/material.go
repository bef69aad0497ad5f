package brdf

import (
	"errors"
	"fmt"
	"math"

	"pbr-kernels/internal/mathutil"
)

// ErrInvalidMaterial is returned by Validate for non-finite parameters.
var ErrInvalidMaterial = errors.New("brdf: invalid material")

// Material is the per-evaluation parameter bundle. It is passed by value.
type Material struct {
	Albedo             mathutil.Vec3 // linear RGB base color
	Metallic           float64       // [0,1]
	Roughness          float64       // [0,1]
	Clearcoat          float64       // [0,1], 0 disables the coat lobe
	ClearcoatRoughness float64       // [0,1]
	Sheen              float64       // >= 0, 0 disables the sheen term
}

// NewMaterial returns a clamped material with no coat or sheen.
func NewMaterial(albedo mathutil.Vec3, metallic, roughness float64) Material {
	return Material{Albedo: albedo, Metallic: metallic, Roughness: roughness}.Clamped()
}

// Clamped returns a copy with every parameter forced into its valid range.
// Albedo channels are clamped to [0,1].
func (m Material) Clamped() Material {
	for i := range m.Albedo {
		m.Albedo[i] = clamp01(m.Albedo[i])
	}
	m.Metallic = clamp01(m.Metallic)
	m.Roughness = clamp01(m.Roughness)
	m.Clearcoat = clamp01(m.Clearcoat)
	m.ClearcoatRoughness = clamp01(m.ClearcoatRoughness)
	if m.Sheen < 0 {
		m.Sheen = 0
	}
	return m
}

// Validate rejects NaN and infinite parameters. Range violations are not
// errors; use Clamped for those.
func (m Material) Validate() error {
	if !m.Albedo.IsFinite() {
		return fmt.Errorf("%w: albedo %v", ErrInvalidMaterial, m.Albedo)
	}
	fields := []struct {
		name string
		v    float64
	}{
		{"metallic", m.Metallic},
		{"roughness", m.Roughness},
		{"clearcoat", m.Clearcoat},
		{"clearcoat roughness", m.ClearcoatRoughness},
		{"sheen", m.Sheen},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s = %v", ErrInvalidMaterial, f.name, f.v)
		}
	}
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
