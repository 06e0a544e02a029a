package engine

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/chewxy/math32"

	"github.com/DerNait/dioarama/internal/scene"
)

// SamplesPerPixel is the number of camera rays traced by TracePixel.
const SamplesPerPixel = 4

// subPixelOffsets is a fixed 2x2 stratified pattern.
var subPixelOffsets = [SamplesPerPixel][2]float32{
	{0.25, 0.25},
	{0.75, 0.25},
	{0.25, 0.75},
	{0.75, 0.75},
}

// primaryTMin keeps camera rays from re-hitting the surface they start on.
const primaryTMin = 0.001

// DepthBuffer stores the nearest hit distance per pixel, +Inf where nothing was hit.
type DepthBuffer []float32

func NewDepthBuffer(n int) DepthBuffer {
	d := make(DepthBuffer, n)
	d.Reset()
	return d
}

// Reset sets every slot to +Inf.
func (d DepthBuffer) Reset() {
	inf := math32.Inf(1)
	for i := range d {
		d[i] = inf
	}
}

func traceRay(r Ray, cam Camera, world World, light PointLight) (Vec3, float32, bool) {
	hit, ok := world.Closest(r, primaryTMin, math32.Inf(1))
	if !ok {
		return Background(r.Dir), 0, false
	}
	return Shade(hit, cam.Eye, light, world), hit.T, true
}

// TracePixel traces SamplesPerPixel rays through pixel (x, y) and returns
// their mean linear color. The nearest hit distance among the sub-rays, or
// +Inf if none hit, is written to depth[idx]. A nil depth buffer is ignored.
func TracePixel(x, y, w, h int, cam Camera, world World, light PointLight, depth DepthBuffer, idx int) Vec3 {
	var sum Vec3
	nearest := math32.Inf(1)
	for _, off := range subPixelOffsets {
		r := cam.RayForPixelOffset(x, y, w, h, off[0], off[1])
		col, t, hit := traceRay(r, cam, world, light)
		if hit && t < nearest {
			nearest = t
		}
		sum = sum.Add(col)
	}
	if depth != nil {
		depth[idx] = nearest
	}
	return sum.Div(SamplesPerPixel)
}

// TracePixelSingle traces one ray through the pixel center and skips depth output.
func TracePixelSingle(x, y, w, h int, cam Camera, world World, light PointLight) Vec3 {
	col, _, _ := traceRay(cam.RayForPixel(x, y, w, h), cam, world, light)
	return col
}

// RenderConfig defines internal render parameters.
type RenderConfig struct {
	Width  int
	Height int
	// Scale is the on-screen size of a traced pixel.
	Scale int
	// Workers > 1 splits the frame into tiles traced concurrently.
	Workers      int
	SingleSample bool
}

// Frame is the linear-color output of one render together with its depth buffer.
type Frame struct {
	Width, Height int
	Pixels        []Vec3
	Depth         DepthBuffer
}

func NewFrame(w, h int) *Frame {
	return &Frame{
		Width:  w,
		Height: h,
		Pixels: make([]Vec3, w*h),
		Depth:  NewDepthBuffer(w * h),
	}
}

// Render traces the scene into a new frame.
func Render(sc *scene.Scene, cfg RenderConfig) (*Frame, error) {
	f := NewFrame(cfg.Width, cfg.Height)
	if err := RenderInto(sc, cfg, f, nil); err != nil {
		return nil, err
	}
	return f, nil
}

// Renderer holds the per-frame inputs derived from a scene.
type Renderer struct {
	Camera Camera
	World  World
	Light  PointLight
}

// NewRenderer builds the world and light from the scene and uses cam as the view.
func NewRenderer(sc *scene.Scene, cam Camera) (*Renderer, error) {
	world, err := BuildWorld(sc)
	if err != nil {
		return nil, err
	}
	return &Renderer{Camera: cam, World: world, Light: BuildLight(sc.Light)}, nil
}

// RenderInto renders the scene into the provided frame using the scene camera.
// If progress is not nil, it is called after finished tiles.
func RenderInto(sc *scene.Scene, cfg RenderConfig, f *Frame, progress func()) error {
	cam := BuildCamera(sc.Camera, float32(cfg.Width)/float32(cfg.Height))
	r, err := NewRenderer(sc, cam)
	if err != nil {
		return err
	}
	return r.RenderInto(cfg, f, progress)
}

// RenderInto traces every pixel of f. The depth buffer is reset first.
func (r *Renderer) RenderInto(cfg RenderConfig, f *Frame, progress func()) error {
	if f.Width != cfg.Width || f.Height != cfg.Height {
		return fmt.Errorf("render: frame is %dx%d, config wants %dx%d", f.Width, f.Height, cfg.Width, cfg.Height)
	}
	f.Depth.Reset()

	workerCount := resolveWorkers(cfg.Workers)
	if workerCount == 1 {
		r.renderTile(cfg, f, tile{x0: 0, y0: 0, x1: cfg.Width, y1: cfg.Height})
		if progress != nil {
			progress()
		}
		return nil
	}

	const tileSize = 32
	numTilesX := (cfg.Width + tileSize - 1) / tileSize
	numTilesY := (cfg.Height + tileSize - 1) / tileSize
	tiles := make(chan tile, numTilesX*numTilesY)
	for ty := 0; ty < cfg.Height; ty += tileSize {
		for tx := 0; tx < cfg.Width; tx += tileSize {
			tiles <- tile{
				x0: tx,
				y0: ty,
				x1: min(tx+tileSize, cfg.Width),
				y1: min(ty+tileSize, cfg.Height),
			}
		}
	}
	close(tiles)

	totalTiles := numTilesX * numTilesY
	var processedTiles int
	var progressMu sync.Mutex

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tiles {
				r.renderTile(cfg, f, t)

				if progress != nil {
					progressMu.Lock()
					processedTiles++
					updateThreshold := max(1, totalTiles/20)
					shouldUpdate := processedTiles%updateThreshold == 0 || processedTiles == totalTiles
					progressMu.Unlock()
					if shouldUpdate {
						progress()
					}
				}
			}
		}()
	}
	wg.Wait()
	return nil
}

type tile struct {
	x0, y0, x1, y1 int
}

// renderTile only writes the pixel and depth slots inside t.
func (r *Renderer) renderTile(cfg RenderConfig, f *Frame, t tile) {
	for y := t.y0; y < t.y1; y++ {
		for x := t.x0; x < t.x1; x++ {
			idx := y*cfg.Width + x
			if cfg.SingleSample {
				f.Pixels[idx] = TracePixelSingle(x, y, cfg.Width, cfg.Height, r.Camera, r.World, r.Light)
				continue
			}
			f.Pixels[idx] = TracePixel(x, y, cfg.Width, cfg.Height, r.Camera, r.World, r.Light, f.Depth, idx)
		}
	}
}

// resolveWorkers defaults to a single sequential worker.
// DIOARAMA_WORKERS overrides an unset count.
func resolveWorkers(n int) int {
	if n > 0 {
		return min(n, 128)
	}
	if envWorkers := os.Getenv("DIOARAMA_WORKERS"); envWorkers != "" {
		if customWorkers, err := strconv.Atoi(envWorkers); err == nil && customWorkers > 0 && customWorkers <= 128 {
			return customWorkers
		}
	}
	return 1
}
