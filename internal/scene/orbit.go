package scene

import "math"

const (
	orbitSensitivity = 0.008 // radians per pixel of drag
	orbitZoomSpeed   = 0.15
	orbitMinRadius   = 0.8
	orbitMaxRadius   = 50.0
)

var orbitPitchLimit = 89 * math.Pi / 180

// Orbit is the interactive camera pose: a point on a sphere around Center.
// Angles are in radians.
type Orbit struct {
	Center Vec3    `json:"center"`
	Radius float64 `json:"radius"`
	Yaw    float64 `json:"yaw"`
	Pitch  float64 `json:"pitch"`
}

// OrbitFromCamera returns the orbit whose eye is the camera eye.
func OrbitFromCamera(cam Camera) Orbit {
	d := cam.Eye.sub(cam.Center)
	r := d.length()
	o := Orbit{Center: cam.Center, Radius: r}
	if r > 0 {
		o.Pitch = math.Asin(d.Y / r)
		o.Yaw = math.Atan2(d.Z, d.X)
	}
	o.clamp()
	return o
}

// Drag rotates the orbit by a mouse movement in pixels.
func (o *Orbit) Drag(dx, dy float64) {
	o.Yaw -= dx * orbitSensitivity
	o.Pitch -= dy * orbitSensitivity
	o.clamp()
}

// Zoom scales the radius by a wheel movement. Positive values move closer.
func (o *Orbit) Zoom(wheel float64) {
	if wheel == 0 {
		return
	}
	o.Radius *= 1 - wheel*orbitZoomSpeed
	o.clamp()
}

func (o *Orbit) clamp() {
	o.Pitch = math.Max(-orbitPitchLimit, math.Min(orbitPitchLimit, o.Pitch))
	o.Radius = math.Max(orbitMinRadius, math.Min(orbitMaxRadius, o.Radius))
}

// Eye returns the camera position for the current pose.
func (o Orbit) Eye() Vec3 {
	cp := math.Cos(o.Pitch)
	return Vec3{
		X: o.Center.X + o.Radius*cp*math.Cos(o.Yaw),
		Y: o.Center.Y + o.Radius*math.Sin(o.Pitch),
		Z: o.Center.Z + o.Radius*cp*math.Sin(o.Yaw),
	}
}

// InitialOrbit returns the scene orbit if set, else one matching the camera.
func (sc *Scene) InitialOrbit() Orbit {
	if sc.Orbit == nil {
		return OrbitFromCamera(sc.Camera)
	}
	o := *sc.Orbit
	o.clamp()
	return o
}
