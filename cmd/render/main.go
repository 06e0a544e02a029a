package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/DerNait/dioarama/internal/engine"
	"github.com/DerNait/dioarama/internal/engine/glview"
	"github.com/DerNait/dioarama/internal/scene"
	"github.com/DerNait/dioarama/internal/ui"
)

func main() {
	log.Println("dioarama: starting main()")

	scenePath := flag.String("scene", "", "path to scene JSON file (empty = built-in scene)")
	mode := flag.String("mode", "preview", "render mode: preview or final")
	viewer := flag.String("viewer", "gl", "interactive viewer: gl or fyne")
	headless := flag.Bool("headless", false, "render without UI and save PNG")
	output := flag.String("out", "output.png", "output PNG file")
	depthOut := flag.String("depth-out", "", "optional depth PNG written by headless renders")
	workers := flag.Int("workers", 0, "tile workers (0 = sequential unless DIOARAMA_WORKERS is set)")
	gamma := flag.Bool("gamma", true, "gamma-encode output colors (1/2.2)")
	single := flag.Bool("single", false, "trace one ray per pixel and skip depth output")
	dumpScene := flag.String("dump-scene", "", "write the loaded scene as JSON and exit")

	flag.Parse()
	log.Printf("flags: scene=%q mode=%s viewer=%s headless=%v out=%s\n", *scenePath, *mode, *viewer, *headless, *output)

	sc, err := loadScene(*scenePath)
	if err != nil {
		log.Println("scene error:", err)
		os.Exit(1)
	}

	if *dumpScene != "" {
		if err := scene.Save(*dumpScene, sc); err != nil {
			log.Println("dump scene error:", err)
			os.Exit(1)
		}
		return
	}

	settings := engine.RenderSettingsForMode(*mode)
	if sc.Settings.Width > 0 && sc.Settings.Height > 0 && *mode != "final" {
		settings.Width = sc.Settings.Width
		settings.Height = sc.Settings.Height
		if sc.Settings.Scale > 0 {
			settings.Scale = sc.Settings.Scale
		}
	}
	cfg := engine.RenderConfig{
		Width:        settings.Width,
		Height:       settings.Height,
		Scale:        settings.Scale,
		Workers:      *workers,
		SingleSample: *single,
	}

	if *headless {
		if err := renderHeadless(sc, cfg, *gamma, *output, *depthOut); err != nil {
			log.Println("headless render error:", err)
			os.Exit(1)
		}
		return
	}

	switch *viewer {
	case "fyne":
		err = ui.Run(sc, cfg, *output)
	case "gl":
		err = runGL(sc, cfg, *gamma)
	default:
		err = fmt.Errorf("unknown viewer %q", *viewer)
	}
	if err != nil {
		log.Println("ui error:", err)
		os.Exit(1)
	}
}

func loadScene(path string) (*scene.Scene, error) {
	if path == "" {
		return scene.Default(), nil
	}
	sc, err := scene.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}
	return sc, nil
}

func renderHeadless(sc *scene.Scene, cfg engine.RenderConfig, gamma bool, outPath, depthPath string) error {
	f, elapsed, err := engine.RenderScene(sc, cfg)
	if err != nil {
		return err
	}
	log.Printf("rendered %dx%d in %s\n", cfg.Width, cfg.Height, elapsed)

	if err := engine.SaveComposite(outPath, f, cfg.Scale, gamma, elapsed); err != nil {
		return err
	}
	if depthPath != "" {
		if cfg.SingleSample {
			return fmt.Errorf("depth output needs multi-sample tracing, drop -single")
		}
		if err := engine.SavePNG(depthPath, f.DepthImage()); err != nil {
			return fmt.Errorf("save depth: %w", err)
		}
	}
	return nil
}

func runGL(sc *scene.Scene, cfg engine.RenderConfig, gamma bool) error {
	sess, err := engine.NewSession(sc, cfg)
	if err != nil {
		return err
	}
	sess.Gamma = gamma
	return glview.Run(sess, sc.InitialOrbit(), cfg.Scale)
}
