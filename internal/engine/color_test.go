package engine

import (
	"image/color"
	"testing"

	"github.com/chewxy/math32"
)

func TestToRGBA(t *testing.T) {
	tests := []struct {
		name  string
		in    Vec3
		gamma bool
		want  color.RGBA
	}{
		{name: "white", in: V(1, 1, 1), want: color.RGBA{255, 255, 255, 255}},
		{name: "black", in: V(0, 0, 0), gamma: true, want: color.RGBA{0, 0, 0, 255}},
		{name: "clamped", in: V(2, -1, 0.5), want: color.RGBA{255, 0, 127, 255}},
		{name: "gamma brightens midtones", in: V(0.5, 0.5, 0.5), gamma: true, want: color.RGBA{186, 186, 186, 255}},
		{name: "gamma keeps out of range clamped", in: V(4, -0.5, 1), gamma: true, want: color.RGBA{255, 0, 255, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToRGBA(tt.in, tt.gamma); got != tt.want {
				t.Errorf("ToRGBA(%v, %v) = %v, want %v", tt.in, tt.gamma, got, tt.want)
			}
		})
	}
}

func TestFrame_Image(t *testing.T) {
	f := NewFrame(2, 1)
	f.Pixels[0] = V(1, 0, 0)
	f.Pixels[1] = V(0, 0, 1)
	img := f.Image(false)
	if got := img.RGBAAt(0, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("Expected red, got %v", got)
	}
	if got := img.RGBAAt(1, 0); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("Expected blue, got %v", got)
	}
}

func TestDepthBuffer_Range(t *testing.T) {
	inf := math32.Inf(1)
	if _, _, ok := (DepthBuffer{inf, inf}).Range(); ok {
		t.Error("Expected no range for an empty depth buffer")
	}
	lo, hi, ok := DepthBuffer{inf, 3, 1.5, inf, 7}.Range()
	if !ok || lo != 1.5 || hi != 7 {
		t.Errorf("Expected (1.5, 7, true), got (%f, %f, %v)", lo, hi, ok)
	}
}

func TestFrame_DepthImage(t *testing.T) {
	f := NewFrame(3, 1)
	f.Depth[0] = 2
	f.Depth[1] = 4
	img := f.DepthImage()

	if got := img.Gray16At(0, 0).Y; got != 0xffff {
		t.Errorf("Expected nearest depth white, got %#x", got)
	}
	// The farthest hit stays visible at 10% brightness.
	if got := img.Gray16At(1, 0).Y; got < 0x1999-2 || got > 0x1999+2 {
		t.Errorf("Expected farthest depth near %#x, got %#x", 0x1999, got)
	}
	if got := img.Gray16At(2, 0).Y; got != 0 {
		t.Errorf("Expected no-hit pixel black, got %#x", got)
	}

	single := NewFrame(1, 1)
	single.Depth[0] = 5
	if got := single.DepthImage().Gray16At(0, 0).Y; got != 0xffff {
		t.Errorf("Expected a single depth white, got %#x", got)
	}
}
