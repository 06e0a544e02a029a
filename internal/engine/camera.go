package engine

import (
	"github.com/chewxy/math32"

	"github.com/DerNait/dioarama/internal/scene"
)

// Camera is a pinhole camera with an orthonormal right-handed basis.
// It is never mutated: a new value is built for every pose.
type Camera struct {
	Eye, Center, Up        Vec3
	Right, TrueUp, Forward Vec3
	FovYDeg                float32
	Aspect                 float32
}

func NewCamera(eye, center, up Vec3, fovYDeg, aspect float32) Camera {
	forward := center.Sub(eye).Normalized()
	right := forward.Cross(up).Normalized()
	trueUp := right.Cross(forward).Normalized()
	return Camera{
		Eye:     eye,
		Center:  center,
		Up:      up,
		Right:   right,
		TrueUp:  trueUp,
		Forward: forward,
		FovYDeg: fovYDeg,
		Aspect:  aspect,
	}
}

// RayForPixelOffset returns the ray through pixel (px, py) of a w x h image,
// displaced inside the pixel by (ox, oy) in [0,1). Pixel rows grow downwards.
func (c Camera) RayForPixelOffset(px, py, w, h int, ox, oy float32) Ray {
	x := ((float32(px)+ox)/float32(w))*2 - 1
	y := 1 - ((float32(py)+oy)/float32(h))*2

	fovScale := math32.Tan(c.FovYDeg * math32.Pi / 180 * 0.5)
	sx := x * c.Aspect * fovScale
	sy := y * fovScale

	dir := c.Right.Mul(sx).Add(c.TrueUp.Mul(sy)).Add(c.Forward).Normalized()
	return NewRay(c.Eye, dir)
}

// RayForPixel returns the ray through the center of the pixel.
func (c Camera) RayForPixel(px, py, w, h int) Ray {
	return c.RayForPixelOffset(px, py, w, h, 0.5, 0.5)
}

// BuildCamera converts the scene camera. A non-zero aspect ratio in the scene
// overrides the one derived from the image size.
func BuildCamera(scCam scene.Camera, aspect float32) Camera {
	if scCam.AspectRatio != 0 {
		aspect = float32(scCam.AspectRatio)
	}
	return NewCamera(fromScene(scCam.Eye), fromScene(scCam.Center), fromScene(scCam.Up), float32(scCam.FOV), aspect)
}

// OrbitCamera builds the camera looking at the orbit center from its current pose.
func OrbitCamera(o scene.Orbit, fovYDeg, aspect float32) Camera {
	return NewCamera(fromScene(o.Eye()), fromScene(o.Center), V(0, 1, 0), fovYDeg, aspect)
}

func fromScene(p scene.Vec3) Vec3 {
	return V(float32(p.X), float32(p.Y), float32(p.Z))
}

func fromColor(c scene.Color) Vec3 {
	return V(float32(c.R), float32(c.G), float32(c.B))
}
