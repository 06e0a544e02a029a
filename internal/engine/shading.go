package engine

import "github.com/chewxy/math32"

var (
	skyZenith  = V(0.6, 0.8, 1.0)
	skyHorizon = V(0.05, 0.05, 0.08)
)

// Background is a vertical sky gradient keyed on the ray direction.
func Background(dir Vec3) Vec3 {
	t := 0.5 * (dir.Y + 1)
	return skyHorizon.Mul(1 - t).Add(skyZenith.Mul(t))
}

// shadowOffset pushes shadow ray origins off the surface to avoid acne.
const shadowOffset = 8 * Eps

// InShadow reports whether anything in the world lies between the surface
// point and the light.
func InShadow(point, normal Vec3, light PointLight, world World) bool {
	toLight := light.Position.Sub(point)
	dist := toLight.Length()
	return inShadow(point, normal, toLight.Div(dist), dist, world)
}

func inShadow(point, normal, lDir Vec3, dist float32, world World) bool {
	shadowRay := NewRay(point.Add(normal.Mul(shadowOffset)), lDir)
	return world.Occluded(shadowRay, Eps, dist-Eps)
}

// Shade evaluates ambient, Lambert diffuse and Phong specular terms at the hit
// with a hard shadow test. Occluded points only get the ambient term.
func Shade(hit HitRecord, eye Vec3, light PointLight, world World) Vec3 {
	mat := hit.Material
	ambient := mat.Albedo.Mul(mat.Ka)

	toLight := light.Position.Sub(hit.Point)
	dist := toLight.Length()
	lDir := toLight.Div(dist)

	if inShadow(hit.Point, hit.Normal, lDir, dist, world) {
		return ambient
	}

	nDotL := math32.Max(0, hit.Normal.Dot(lDir))
	diffuse := mat.Albedo.Mul(nDotL * light.Intensity)

	view := eye.Sub(hit.Point).Normalized()
	refl := Reflect(lDir.Neg(), hit.Normal).Normalized()
	spec := math32.Pow(math32.Max(0, refl.Dot(view)), mat.Shininess)
	specular := Splat(mat.Ks * spec * light.Intensity)

	return ambient.Add(diffuse).Add(specular).Hadamard(light.Color)
}
