package engine

import (
	"testing"

	"github.com/DerNait/dioarama/internal/scene"
)

func TestNewSession_InvalidSize(t *testing.T) {
	if _, err := NewSession(scene.Default(), testConfig(0, 10, 1)); err == nil {
		t.Error("Expected error for zero width")
	}
}

func TestSession_RenderOrbitMatchesSceneCamera(t *testing.T) {
	sc := scene.Default()
	cfg := testConfig(30, 20, 1)
	sess, err := NewSession(sc, cfg)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	img, _, err := sess.RenderOrbit(sc.InitialOrbit())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 30 || b.Dy() != 20 {
		t.Fatalf("Expected 30x20 image, got %v", b)
	}

	want, err := Render(sc, cfg)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for i, p := range sess.Frame().Pixels {
		if !vecNear(p, want.Pixels[i]) {
			t.Fatalf("pixel %d: orbit %v != scene camera %v", i, p, want.Pixels[i])
		}
	}
}

func TestSession_ShowDepth(t *testing.T) {
	sc := scene.Default()
	sess, err := NewSession(sc, testConfig(30, 20, 1))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	sess.ShowDepth = true

	o := sc.InitialOrbit()
	img, _, err := sess.RenderOrbit(o)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != img.Pix[i+1] || img.Pix[i] != img.Pix[i+2] || img.Pix[i+3] != 255 {
			t.Fatalf("pixel %d: expected opaque gray, got %v", i/4, img.Pix[i:i+4])
		}
	}
	// Sky pixels in the top-left corner are black.
	if img.Pix[0] != 0 {
		t.Errorf("Expected black sky, got %d", img.Pix[0])
	}

	o.Drag(40, 0)
	again, _, err := sess.RenderOrbit(o)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if again != img {
		t.Error("Expected the display image to be reused")
	}
}
