package engine

import (
	"fmt"
	"image"
	"time"

	"github.com/DerNait/dioarama/internal/scene"
)

// Session renders successive frames of one scene for an interactive viewer.
// The world and light are built once, the camera is rebuilt for every pose.
// A Session is not safe for concurrent use.
type Session struct {
	cfg      RenderConfig
	fov      float32
	renderer *Renderer
	frame    *Frame
	img      *image.RGBA

	Gamma     bool
	ShowDepth bool
}

func NewSession(sc *scene.Scene, cfg RenderConfig) (*Session, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("new session: invalid size %dx%d", cfg.Width, cfg.Height)
	}
	r, err := NewRenderer(sc, BuildCamera(sc.Camera, aspectOf(cfg)))
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	return &Session{
		cfg:      cfg,
		fov:      float32(sc.Camera.FOV),
		renderer: r,
		frame:    NewFrame(cfg.Width, cfg.Height),
		img:      image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height)),
		Gamma:    true,
	}, nil
}

func aspectOf(cfg RenderConfig) float32 {
	return float32(cfg.Width) / float32(cfg.Height)
}

// RenderOrbit traces a frame seen from the orbit pose and returns the display
// image. The image is reused between calls.
func (s *Session) RenderOrbit(o scene.Orbit) (*image.RGBA, time.Duration, error) {
	s.renderer.Camera = OrbitCamera(o, s.fov, aspectOf(s.cfg))
	start := time.Now()
	if err := s.renderer.RenderInto(s.cfg, s.frame, nil); err != nil {
		return nil, 0, err
	}
	elapsed := time.Since(start)

	if s.ShowDepth {
		depth := s.frame.DepthImage()
		for i, g := range depth.Pix {
			// Gray16 is big endian; the high byte is enough for display.
			if i%2 == 0 {
				p := i / 2 * 4
				s.img.Pix[p], s.img.Pix[p+1], s.img.Pix[p+2], s.img.Pix[p+3] = g, g, g, 255
			}
		}
	} else {
		s.frame.WriteImage(s.img, s.Gamma)
	}
	return s.img, elapsed, nil
}

// Frame returns the last traced frame.
func (s *Session) Frame() *Frame { return s.frame }

// Config returns the render configuration of the session.
func (s *Session) Config() RenderConfig { return s.cfg }
