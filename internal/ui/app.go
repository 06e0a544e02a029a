package ui

import (
	"fmt"
	"image"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/DerNait/dioarama/internal/engine"
	"github.com/DerNait/dioarama/internal/scene"
)

// renderRequest carries everything the render goroutine needs for one frame,
// so the session is only touched from that goroutine.
type renderRequest struct {
	orbit     scene.Orbit
	gamma     bool
	showDepth bool
}

// Run starts the interactive viewer. Dragging orbits the camera around the
// scene, the mouse wheel zooms.
func Run(sc *scene.Scene, cfg engine.RenderConfig, outPath string) error {
	sess, err := engine.NewSession(sc, cfg)
	if err != nil {
		return err
	}
	scale := max(cfg.Scale, 1)
	initial := sc.InitialOrbit()
	orbit := initial
	log.Printf("UI: starting, %dx%d traced, scale %d\n", cfg.Width, cfg.Height, scale)

	a := app.New()
	w := a.NewWindow(engine.Caption)

	imgCanvas := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height)))
	imgCanvas.FillMode = canvas.ImageFillContain
	imgCanvas.ScaleMode = canvas.ImageScalePixels
	imgCanvas.SetMinSize(fyne.NewSize(float32(cfg.Width*scale), float32(cfg.Height*scale)))

	status := widget.NewLabel("Idle")
	fpsLabel := widget.NewLabel("FPS: -")

	gamma := true
	showDepth := false

	requests := make(chan renderRequest, 1)
	// request replaces any pending frame with the current pose. Only called
	// from the UI goroutine.
	request := func() {
		select {
		case <-requests:
		default:
		}
		requests <- renderRequest{orbit: orbit, gamma: gamma, showDepth: showDepth}
	}

	go func() {
		for req := range requests {
			sess.Gamma = req.gamma
			sess.ShowDepth = req.showDepth
			img, elapsed, err := sess.RenderOrbit(req.orbit)
			if err != nil {
				log.Println("render error:", err)
				fyne.Do(func() { status.SetText("Render failed") })
				continue
			}
			frame := cloneRGBA(img)
			fyne.Do(func() {
				imgCanvas.Image = frame
				imgCanvas.Refresh()
				if elapsed > 0 {
					fpsLabel.SetText(fmt.Sprintf("FPS: %.1f (%.1f ms)", 1/elapsed.Seconds(), float64(elapsed.Microseconds())/1000))
				}
				status.SetText("Done")
			})
		}
	}()

	view := newOrbitView(imgCanvas, func(dx, dy float32) {
		orbit.Drag(float64(dx), float64(dy))
		request()
	}, func(wheel float32) {
		orbit.Zoom(float64(wheel))
		request()
	})

	gammaCheck := widget.NewCheck("Gamma 2.2", func(b bool) {
		gamma = b
		request()
	})
	gammaCheck.SetChecked(gamma)
	depthCheck := widget.NewCheck("Show depth", func(b bool) {
		showDepth = b
		request()
	})

	outputPath := widget.NewEntry()
	outputPath.SetText(outPath)
	saveBtn := widget.NewButton("Save PNG", func() {
		path := outputPath.Text
		status.SetText("Saving...")
		// Render a fresh frame here so the save does not race the render goroutine.
		go func(o scene.Orbit, g bool) {
			err := saveSnapshot(path, sc, cfg, o, g)
			fyne.Do(func() {
				if err != nil {
					log.Println("save error:", err)
					status.SetText("Save failed: " + err.Error())
					return
				}
				status.SetText("Saved " + path)
			})
		}(orbit, gamma)
	})
	resetBtn := widget.NewButton("Reset camera", func() {
		orbit = initial
		request()
	})

	controls := container.NewHBox(gammaCheck, depthCheck, resetBtn, saveBtn, status, fpsLabel)
	content := container.NewBorder(nil, container.NewBorder(nil, nil, nil, controls, outputPath), nil, nil, view)

	w.SetContent(content)
	w.Resize(fyne.NewSize(float32(cfg.Width*scale), float32(cfg.Height*scale)+48))
	request()

	w.ShowAndRun()
	close(requests)
	return nil
}

func saveSnapshot(path string, sc *scene.Scene, cfg engine.RenderConfig, o scene.Orbit, gamma bool) error {
	sess, err := engine.NewSession(sc, cfg)
	if err != nil {
		return err
	}
	if _, _, err := sess.RenderOrbit(o); err != nil {
		return err
	}
	return engine.SaveComposite(path, sess.Frame(), cfg.Scale, gamma, 0)
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
