package config

import (
	"pbr-kernels/internal/brdf"
	"pbr-kernels/internal/mathutil"
)

// MaterialSpec is one entry of the material chart. Texture paths are
// relative to Config.TextureDir unless absolute.
type MaterialSpec struct {
	Name               string     `json:"name"`
	Albedo             [3]float64 `json:"albedo"`
	Metallic           float64    `json:"metallic"`
	Roughness          float64    `json:"roughness"`
	Clearcoat          float64    `json:"clearcoat"`
	ClearcoatRoughness float64    `json:"clearcoat_roughness"`
	Sheen              float64    `json:"sheen"`
	AlbedoTexture      string     `json:"albedo_texture,omitempty"`
	NormalTexture      string     `json:"normal_texture,omitempty"`
}

// Material converts s into clamped BRDF parameters.
func (s MaterialSpec) Material() brdf.Material {
	return brdf.Material{
		Albedo:             mathutil.Vec3(s.Albedo),
		Metallic:           s.Metallic,
		Roughness:          s.Roughness,
		Clearcoat:          s.Clearcoat,
		ClearcoatRoughness: s.ClearcoatRoughness,
		Sheen:              s.Sheen,
	}.Clamped()
}

// DefaultMaterials is the built-in chart used when a config lists none.
func DefaultMaterials() []MaterialSpec {
	return []MaterialSpec{
		{Name: "red_plastic", Albedo: [3]float64{0.8, 0.05, 0.05}, Roughness: 0.35},
		{Name: "chalk", Albedo: [3]float64{0.9, 0.9, 0.88}, Roughness: 1},
		{Name: "gold", Albedo: [3]float64{1.0, 0.77, 0.34}, Metallic: 1, Roughness: 0.25},
		{Name: "brushed_iron", Albedo: [3]float64{0.56, 0.57, 0.58}, Metallic: 1, Roughness: 0.6},
		{Name: "car_paint", Albedo: [3]float64{0.05, 0.15, 0.6}, Metallic: 0.5, Roughness: 0.5, Clearcoat: 1, ClearcoatRoughness: 0.1},
		{Name: "velvet", Albedo: [3]float64{0.45, 0.05, 0.25}, Roughness: 0.9, Sheen: 1},
		{Name: "reference", Albedo: [3]float64{1, 1, 1}, Metallic: 0.5, Roughness: 0.5, Clearcoat: 0.2, ClearcoatRoughness: 0.1, Sheen: 0.3},
	}
}
