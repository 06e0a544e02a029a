package engine

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/DerNait/dioarama/internal/scene"
)

// HitRecord describes a ray-primitive intersection. Normal is unit length
// and points out of the surface.
type HitRecord struct {
	T        float32
	Point    Vec3
	Normal   Vec3
	Material Material
}

// Hittable is a primitive that can be intersected by a ray.
type Hittable interface {
	// Intersect returns the closest hit with T in [tMin, tMax].
	Intersect(r Ray, tMin, tMax float32) (HitRecord, bool)
}

// Cube is an axis-aligned box given by its center and half extents.
type Cube struct {
	Center   Vec3
	Half     Vec3
	Material Material
}

func NewCube(center, halfExtents Vec3, mat Material) Cube {
	return Cube{Center: center, Half: halfExtents, Material: mat}
}

// faceBias is the distance tolerance used to decide which face a hit point lies on.
const faceBias = 1e-3

func (c Cube) Intersect(r Ray, tMin, tMax float32) (HitRecord, bool) {
	minB := c.Center.Sub(c.Half)
	maxB := c.Center.Add(c.Half)

	t0 := tMin
	t1 := tMax
	for i := 0; i < 3; i++ {
		var d, orig, lo, hi float32
		switch i {
		case 0:
			d, orig, lo, hi = r.Dir.X, r.Origin.X, minB.X, maxB.X
		case 1:
			d, orig, lo, hi = r.Dir.Y, r.Origin.Y, minB.Y, maxB.Y
		default:
			d, orig, lo, hi = r.Dir.Z, r.Origin.Z, minB.Z, maxB.Z
		}

		invD := Inf
		if math32.Abs(d) >= Eps {
			invD = 1 / d
		}
		tNear := (lo - orig) * invD
		tFar := (hi - orig) * invD
		if tNear > tFar {
			tNear, tFar = tFar, tNear
		}
		t0 = math32.Max(t0, tNear)
		t1 = math32.Min(t1, tFar)
		if t1 < t0 {
			return HitRecord{}, false
		}
	}

	// Entry point when the origin is outside, exit point when inside.
	tHit := t1
	if t0 > tMin {
		tHit = t0
	}
	if tHit < tMin || tHit > tMax {
		return HitRecord{}, false
	}

	p := r.At(tHit)
	var n Vec3
	switch {
	case math32.Abs(p.X-maxB.X) < faceBias:
		n = V(1, 0, 0)
	case math32.Abs(p.X-minB.X) < faceBias:
		n = V(-1, 0, 0)
	case math32.Abs(p.Y-maxB.Y) < faceBias:
		n = V(0, 1, 0)
	case math32.Abs(p.Y-minB.Y) < faceBias:
		n = V(0, -1, 0)
	case math32.Abs(p.Z-maxB.Z) < faceBias:
		n = V(0, 0, 1)
	case math32.Abs(p.Z-minB.Z) < faceBias:
		n = V(0, 0, -1)
	}

	return HitRecord{T: tHit, Point: p, Normal: n, Material: c.Material}, true
}

// Plane is an infinite plane through Point with unit Normal.
type Plane struct {
	Point    Vec3
	Normal   Vec3
	Material Material
}

func NewPlane(point, normal Vec3, mat Material) Plane {
	return Plane{Point: point, Normal: normal.Normalized(), Material: mat}
}

// parallelEps is the minimum |n.d| for a ray to be considered non-parallel to a plane.
const parallelEps = 1e-6

// Intersect reports hits from either side; the returned normal always faces the ray.
func (p Plane) Intersect(r Ray, tMin, tMax float32) (HitRecord, bool) {
	denom := p.Normal.Dot(r.Dir)
	if math32.Abs(denom) < parallelEps {
		return HitRecord{}, false
	}

	t := p.Point.Sub(r.Origin).Dot(p.Normal) / denom
	if t < tMin || t > tMax {
		return HitRecord{}, false
	}

	n := p.Normal
	if denom > 0 {
		n = n.Neg()
	}
	return HitRecord{T: t, Point: r.At(t), Normal: n, Material: p.Material}, true
}

// World is the ordered list of scene primitives. It is read-only while tracing.
type World []Hittable

// Closest returns the nearest hit over all primitives with T in [tMin, tMax].
func (w World) Closest(r Ray, tMin, tMax float32) (HitRecord, bool) {
	var closest HitRecord
	hitAnything := false
	closestT := tMax
	for _, obj := range w {
		if rec, ok := obj.Intersect(r, tMin, closestT); ok && (!hitAnything || rec.T < closestT) {
			closest = rec
			closestT = rec.T
			hitAnything = true
		}
	}
	return closest, hitAnything
}

// Occluded reports whether any primitive is hit with T in [tMin, tMax].
func (w World) Occluded(r Ray, tMin, tMax float32) bool {
	for _, obj := range w {
		if rec, ok := obj.Intersect(r, tMin, tMax); ok && rec.T > 0 {
			return true
		}
	}
	return false
}

// BuildWorld converts the scene objects into primitives, in scene order.
func BuildWorld(sc *scene.Scene) (World, error) {
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("build world: %w", err)
	}

	materials := make(map[string]Material, len(sc.Materials))
	for _, m := range sc.Materials {
		materials[m.ID] = convertMaterial(m)
	}

	world := make(World, 0, len(sc.Objects))
	for _, o := range sc.Objects {
		mat := materials[o.MaterialID]
		switch o.Type {
		case scene.ObjectCube:
			world = append(world, NewCube(fromScene(o.Position), fromScene(o.Size), mat))
		case scene.ObjectPlane:
			world = append(world, NewPlane(fromScene(o.Position), fromScene(o.Normal), mat))
		}
	}
	return world, nil
}
