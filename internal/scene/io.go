package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Load reads a Scene from a JSON file.
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes and validates a JSON scene.
func Parse(r io.Reader) (*Scene, error) {
	var sc Scene
	if err := json.NewDecoder(r).Decode(&sc); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("validate scene: %w", err)
	}
	return &sc, nil
}

// Save writes a Scene to a JSON file.
func Save(path string, sc *Scene) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create scene: %w", err)
	}
	defer f.Close()
	return Encode(f, sc)
}

// Encode writes the scene as indented JSON.
func Encode(w io.Writer, sc *Scene) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sc); err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	return nil
}
