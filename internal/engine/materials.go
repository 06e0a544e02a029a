package engine

import "github.com/DerNait/dioarama/internal/scene"

// Material holds Phong reflectance parameters. Albedo is not clamped.
type Material struct {
	Albedo    Vec3
	Ks        float32 // specular strength
	Shininess float32 // specular exponent
	Ka        float32 // ambient coefficient
}

// PointLight has no distance falloff: Intensity is applied as is.
type PointLight struct {
	Position  Vec3
	Color     Vec3
	Intensity float32
}

func convertMaterial(m scene.Material) Material {
	return Material{
		Albedo:    fromColor(m.Albedo),
		Ks:        float32(m.Ks),
		Shininess: float32(m.Shininess),
		Ka:        float32(m.Ka),
	}
}

// BuildLight converts the scene light.
func BuildLight(l scene.Light) PointLight {
	return PointLight{
		Position:  fromScene(l.Position),
		Color:     fromColor(l.Color),
		Intensity: float32(l.Intensity),
	}
}
