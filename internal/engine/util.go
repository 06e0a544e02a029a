package engine

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"github.com/fogleman/gg"

	"github.com/DerNait/dioarama/internal/scene"
)

// Caption is the overlay text drawn on composed frames.
const Caption = "Cube, point light, hard shadows, Phong"

// RenderScene traces the scene once and reports how long it took.
func RenderScene(sc *scene.Scene, cfg RenderConfig) (*Frame, time.Duration, error) {
	start := time.Now()
	f, err := Render(sc, cfg)
	if err != nil {
		return nil, 0, fmt.Errorf("render scene: %w", err)
	}
	return f, time.Since(start), nil
}

// RenderSettingsForMode returns reasonable defaults for preview/final modes.
func RenderSettingsForMode(mode string) scene.RenderSettings {
	switch mode {
	case "final":
		return scene.RenderSettings{
			Width:  960,
			Height: 640,
			Scale:  1,
		}
	default:
		return scene.RenderSettings{
			Width:  240,
			Height: 160,
			Scale:  4,
		}
	}
}

// Compose draws every traced pixel as a scale x scale block and overlays the
// caption and the frame time.
func Compose(f *Frame, scale int, gamma bool, elapsed time.Duration) *gg.Context {
	if scale < 1 {
		scale = 1
	}
	dc := gg.NewContext(f.Width*scale, f.Height*scale)
	dc.SetRGB(0, 0, 0)
	dc.Clear()

	s := float64(scale)
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			dc.SetColor(ToRGBA(f.Pixels[y*f.Width+x], gamma))
			dc.DrawRectangle(float64(x)*s, float64(y)*s, s, s)
			dc.Fill()
		}
	}

	dc.SetRGB(1, 1, 1)
	dc.DrawString(Caption, 10, 20)
	if elapsed > 0 {
		dc.DrawString(fmt.Sprintf("%.1f ms (%.1f FPS)", float64(elapsed.Microseconds())/1000, 1/elapsed.Seconds()), 10, 38)
	}
	return dc
}

// SaveComposite writes the composed frame as PNG.
func SaveComposite(path string, f *Frame, scale int, gamma bool, elapsed time.Duration) error {
	if err := Compose(f, scale, gamma, elapsed).SavePNG(path); err != nil {
		return fmt.Errorf("save composite: %w", err)
	}
	return nil
}

// SavePNG writes an image to a PNG file.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
