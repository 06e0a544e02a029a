package engine

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
)

const invGamma = 1 / 2.2

// ToRGBA converts a linear color to 8-bit. With gamma set the color is first
// encoded with c^(1/2.2).
func ToRGBA(c Vec3, gamma bool) color.RGBA {
	conv := func(v float32) uint8 {
		if gamma && v > 0 {
			v = math32.Pow(v, invGamma)
		}
		return uint8(Clamp01(v) * 255)
	}
	return color.RGBA{R: conv(c.X), G: conv(c.Y), B: conv(c.Z), A: 255}
}

// Image converts the frame to an RGBA image, one image pixel per traced pixel.
func (f *Frame) Image(gamma bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	f.WriteImage(img, gamma)
	return img
}

// WriteImage writes the frame into img, which must be at least the frame size.
func (f *Frame) WriteImage(img *image.RGBA, gamma bool) {
	pix := img.Pix
	stride := img.Stride
	for y := 0; y < f.Height; y++ {
		yIdx := y * stride
		for x := 0; x < f.Width; x++ {
			c := ToRGBA(f.Pixels[y*f.Width+x], gamma)
			idx := yIdx + x*4
			pix[idx] = c.R
			pix[idx+1] = c.G
			pix[idx+2] = c.B
			pix[idx+3] = 255
		}
	}
}

// DepthImage maps finite depths linearly to gray, near is white and far is dark.
// Pixels without a hit are black.
func (f *Frame) DepthImage() *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, f.Width, f.Height))
	near, far, ok := f.Depth.Range()
	if !ok {
		return img
	}
	span := far - near
	for i, d := range f.Depth {
		if math32.IsInf(d, 1) {
			continue
		}
		v := float32(1)
		if span > 0 {
			v = 1 - 0.9*(d-near)/span
		}
		img.SetGray16(i%f.Width, i/f.Width, color.Gray16{Y: uint16(v * 0xffff)})
	}
	return img
}

// Range returns the smallest and largest finite depth.
func (d DepthBuffer) Range() (near, far float32, ok bool) {
	near = math32.Inf(1)
	far = math32.Inf(-1)
	for _, v := range d {
		if math32.IsInf(v, 1) {
			continue
		}
		near = math32.Min(near, v)
		far = math32.Max(far, v)
		ok = true
	}
	return near, far, ok
}
