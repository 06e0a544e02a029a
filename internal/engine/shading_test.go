package engine

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestBackground_Gradient(t *testing.T) {
	if got := Background(V(0, 1, 0)); !vecNear(got, V(0.6, 0.8, 1.0)) {
		t.Errorf("Expected zenith color, got %v", got)
	}
	if got := Background(V(0, -1, 0)); !vecNear(got, V(0.05, 0.05, 0.08)) {
		t.Errorf("Expected horizon color, got %v", got)
	}
	mid := Background(V(1, 0, 0))
	want := V(0.325, 0.425, 0.54)
	if !vecNear(mid, want) {
		t.Errorf("Expected %v at the horizon line, got %v", want, mid)
	}
	// Only the vertical component matters.
	if Background(V(0.3, 0.5, -0.8)) != Background(V(-0.9, 0.5, 0.1)) {
		t.Error("Expected equal colors for equal dir.Y")
	}
}

func shadowWorld(floor Material) World {
	return World{
		NewPlane(V(0, 0, 0), V(0, 1, 0), floor),
		NewCube(V(0, 2, 0), V(1, 0.1, 1), testMaterial),
	}
}

func TestInShadow(t *testing.T) {
	world := shadowWorld(testMaterial)
	p, n := V(0, 0, 0), V(0, 1, 0)

	tests := []struct {
		name  string
		light Vec3
		want  bool
	}{
		{name: "occluder between point and light", light: V(0, 5, 0), want: true},
		{name: "light off to the side", light: V(10, 1, 0), want: false},
		{name: "occluder behind the light", light: V(0, 1, 0), want: false},
		{name: "light under the floor", light: V(0, -3, 0), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			light := PointLight{Position: tt.light, Color: V(1, 1, 1), Intensity: 1}
			if got := InShadow(p, n, light, world); got != tt.want {
				t.Errorf("Expected InShadow=%v, got %v", tt.want, got)
			}
		})
	}
}

func TestShade_ShadowedPointGetsAmbientOnly(t *testing.T) {
	floor := Material{Albedo: V(0.75, 0.5, 0.25), Ks: 0.2, Shininess: 8, Ka: 0.06}
	world := shadowWorld(floor)
	light := PointLight{Position: V(0, 5, 0), Color: V(1, 1, 1), Intensity: 1.5}

	hit, ok := world.Closest(NewRay(V(0, 5, 0.05), V(0, -1, 0)), primaryTMin, math32.Inf(1))
	if !ok {
		t.Fatal("Expected hit, got miss")
	}
	// The ray starts above the occluder, so it lands on the cube.
	if hit.Material != testMaterial {
		t.Fatalf("Expected cube hit, got %+v", hit)
	}

	floorHit := HitRecord{T: 5, Point: V(0, 0, 0), Normal: V(0, 1, 0), Material: floor}
	got := Shade(floorHit, V(0, 3, 0), light, world)
	want := floor.Albedo.Mul(floor.Ka)
	if !vecNear(got, want) {
		t.Errorf("Expected ambient %v, got %v", want, got)
	}
}

func TestShade_LitPoint(t *testing.T) {
	mat := Material{Albedo: V(0.5, 0.4, 0.3), Ks: 0.5, Shininess: 16, Ka: 0.1}
	world := World{NewPlane(V(0, 0, 0), V(0, 1, 0), mat)}
	hit := HitRecord{T: 3, Point: V(0, 0, 0), Normal: V(0, 1, 0), Material: mat}

	t.Run("light and eye straight above", func(t *testing.T) {
		light := PointLight{Position: V(0, 5, 0), Color: V(1, 0.5, 1), Intensity: 1.5}
		got := Shade(hit, V(0, 3, 0), light, world)
		want := V(1.55, 0.695, 1.23)
		if !vecNear(got, want) {
			t.Errorf("Expected %v, got %v", want, got)
		}
	})

	t.Run("oblique light", func(t *testing.T) {
		light := PointLight{Position: V(3, 4, 0), Color: V(1, 1, 1), Intensity: 1}
		got := Shade(hit, V(3, 4, 0), light, world)
		// n.l = 0.8, r.v = 0.28
		spec := mat.Ks * math32.Pow(0.28, mat.Shininess)
		want := mat.Albedo.Mul(mat.Ka).Add(mat.Albedo.Mul(0.8)).Add(Splat(spec))
		if !vecNear(got, want) {
			t.Errorf("Expected %v, got %v", want, got)
		}
	})

	t.Run("mirror direction gets full highlight", func(t *testing.T) {
		light := PointLight{Position: V(3, 4, 0), Color: V(1, 1, 1), Intensity: 1}
		got := Shade(hit, V(-3, 4, 0), light, world)
		want := mat.Albedo.Mul(mat.Ka).Add(mat.Albedo.Mul(0.8)).Add(Splat(mat.Ks))
		if !vecNear(got, want) {
			t.Errorf("Expected %v, got %v", want, got)
		}
	})

	t.Run("light behind the surface adds nothing", func(t *testing.T) {
		light := PointLight{Position: V(0, -5, 0), Color: V(1, 1, 1), Intensity: 2}
		got := Shade(hit, V(0, 3, 0), light, World{})
		if !vecNear(got, mat.Albedo.Mul(mat.Ka)) {
			t.Errorf("Expected ambient only, got %v", got)
		}
	})
}
