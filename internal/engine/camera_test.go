package engine

import (
	"testing"

	"github.com/DerNait/dioarama/internal/scene"
)

func TestNewCamera_Basis(t *testing.T) {
	cams := []Camera{
		NewCamera(V(0, 1, 4), V(0, 1, 0), V(0, 1, 0), 60, 1.5),
		NewCamera(V(3, 2, -1), V(0, 0.5, 0.5), V(0, 1, 0), 45, 1),
		NewCamera(V(-2, 5, 2), V(1, 0, 0), V(0.2, 1, 0), 90, 16.0/9),
	}

	for _, c := range cams {
		for _, v := range []Vec3{c.Right, c.TrueUp, c.Forward} {
			if !near(v.Length(), 1) {
				t.Errorf("Expected unit basis vector, got %v (len %f)", v, v.Length())
			}
		}
		if !near(c.Right.Dot(c.TrueUp), 0) || !near(c.Right.Dot(c.Forward), 0) || !near(c.TrueUp.Dot(c.Forward), 0) {
			t.Errorf("Basis not orthogonal: right=%v up=%v forward=%v", c.Right, c.TrueUp, c.Forward)
		}
		// Right-handed: right x up points back towards the viewer.
		if !vecNear(c.Right.Cross(c.TrueUp), c.Forward.Neg()) {
			t.Errorf("Basis not right-handed: right x up = %v, forward = %v", c.Right.Cross(c.TrueUp), c.Forward)
		}
	}

	c := cams[0]
	if !vecNear(c.Forward, V(0, 0, -1)) || !vecNear(c.Right, V(1, 0, 0)) || !vecNear(c.TrueUp, V(0, 1, 0)) {
		t.Errorf("Unexpected basis right=%v up=%v forward=%v", c.Right, c.TrueUp, c.Forward)
	}
}

func TestCamera_RayForPixelMatchesCenterOffset(t *testing.T) {
	c := NewCamera(V(0, 1, 4), V(0, 1, 0), V(0, 1, 0), 60, 240.0/160)
	const w, h = 24, 16
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			got := c.RayForPixel(x, y, w, h)
			want := c.RayForPixelOffset(x, y, w, h, 0.5, 0.5)
			if got != want {
				t.Fatalf("pixel (%d,%d): RayForPixel %v != RayForPixelOffset %v", x, y, got, want)
			}
		}
	}
}

func TestCamera_RayForPixelOffset(t *testing.T) {
	c := NewCamera(V(0, 0, 0), V(0, 0, -1), V(0, 1, 0), 90, 1)

	t.Run("center pixel looks forward", func(t *testing.T) {
		r := c.RayForPixel(1, 1, 3, 3)
		if !vecNear(r.Dir, V(0, 0, -1)) {
			t.Errorf("Expected forward, got %v", r.Dir)
		}
		if r.Origin != c.Eye {
			t.Errorf("Expected origin at eye, got %v", r.Origin)
		}
	})

	t.Run("rows grow downwards", func(t *testing.T) {
		top := c.RayForPixel(1, 0, 3, 3)
		bottom := c.RayForPixel(1, 2, 3, 3)
		if top.Dir.Y <= 0 || bottom.Dir.Y >= 0 {
			t.Errorf("Expected top ray up and bottom ray down, got %v and %v", top.Dir, bottom.Dir)
		}
	})

	t.Run("corner maps to fov edge", func(t *testing.T) {
		// tan(45 deg) = 1, so the top-left image corner is at (-1, 1, -1).
		r := c.RayForPixelOffset(0, 0, 3, 3, 0, 0)
		if !vecNear(r.Dir, V(-1, 1, -1).Normalized()) {
			t.Errorf("Expected corner direction, got %v", r.Dir)
		}
	})

	t.Run("aspect widens x", func(t *testing.T) {
		wide := NewCamera(V(0, 0, 0), V(0, 0, -1), V(0, 1, 0), 90, 2)
		r := wide.RayForPixelOffset(0, 0, 4, 2, 0, 0.5)
		want := V(-2, 0.5, -1).Normalized()
		if !vecNear(r.Dir, want) {
			t.Errorf("Expected %v, got %v", want, r.Dir)
		}
	})
}

func TestBuildCamera_AspectOverride(t *testing.T) {
	sc := scene.Default()
	if c := BuildCamera(sc.Camera, 1.5); c.Aspect != 1.5 {
		t.Errorf("Expected derived aspect 1.5, got %f", c.Aspect)
	}
	sc.Camera.AspectRatio = 2
	if c := BuildCamera(sc.Camera, 1.5); c.Aspect != 2 {
		t.Errorf("Expected scene aspect 2, got %f", c.Aspect)
	}
}

func TestOrbitCamera_LooksAtCenter(t *testing.T) {
	o := scene.Orbit{Center: scene.Vec3{X: 0, Y: 1, Z: 0}, Radius: 4, Yaw: 0.7, Pitch: 0.3}
	c := OrbitCamera(o, 60, 1.5)
	want := V(0, 1, 0).Sub(c.Eye).Normalized()
	if !vecNear(c.Forward, want) {
		t.Errorf("Expected forward %v, got %v", want, c.Forward)
	}
	if !near(c.Eye.Sub(V(0, 1, 0)).Length(), 4) {
		t.Errorf("Expected eye at radius 4, got %v", c.Eye)
	}
}
