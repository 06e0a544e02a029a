package scene

import (
	"errors"
	"fmt"
	"math"
)

// Vec3 represents a simple 3D vector or point.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (a Vec3) sub(b Vec3) Vec3 { return Vec3{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z} }

func (a Vec3) cross(b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func (a Vec3) length() float64 { return math.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z) }

// Color is an RGB color in linear space.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Camera describes the viewpoint for the renderer.
type Camera struct {
	Eye    Vec3    `json:"eye"`
	Center Vec3    `json:"center"`
	Up     Vec3    `json:"up"`
	FOV    float64 `json:"fov"` // vertical, degrees

	AspectRatio float64 `json:"aspect_ratio"` // 0 = width/height
}

// Light is the single point light of the scene.
type Light struct {
	Position  Vec3    `json:"position"`
	Color     Color   `json:"color"`
	Intensity float64 `json:"intensity"`
}

// Material describes Phong surface properties.
type Material struct {
	ID string `json:"id"`

	Albedo    Color   `json:"albedo"`
	Ks        float64 `json:"ks"`        // specular strength
	Shininess float64 `json:"shininess"` // specular exponent
	Ka        float64 `json:"ka"`        // ambient
}

// ObjectType enumerates supported geometric primitives.
type ObjectType string

const (
	ObjectCube  ObjectType = "cube"
	ObjectPlane ObjectType = "plane"
)

// Object is a single entity in the scene.
type Object struct {
	ID   string     `json:"id"`
	Type ObjectType `json:"type"`

	Position Vec3 `json:"position"` // cube center or a point on the plane
	Size     Vec3 `json:"size"`     // cube half extents
	Normal   Vec3 `json:"normal"`   // plane normal

	MaterialID string `json:"material_id"`
}

// RenderSettings defines the trace resolution and its display scale.
type RenderSettings struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	Scale  int `json:"scale"`
}

// Scene holds everything needed to render an image.
type Scene struct {
	Name      string         `json:"name"`
	Camera    Camera         `json:"camera"`
	Orbit     *Orbit         `json:"orbit,omitempty"`
	Light     Light          `json:"light"`
	Objects   []Object       `json:"objects"`
	Materials []Material     `json:"materials"`
	Settings  RenderSettings `json:"settings"`
}

var (
	ErrUnknownMaterial   = errors.New("unknown material")
	ErrUnknownObjectType = errors.New("unknown object type")
	ErrDegenerateCamera  = errors.New("degenerate camera")
	ErrDegenerateObject  = errors.New("degenerate object")
)

// Validate checks that the scene can be turned into a valid camera and
// primitive list.
func (sc *Scene) Validate() error {
	forward := sc.Camera.Center.sub(sc.Camera.Eye)
	if forward.length() < 1e-4 {
		return fmt.Errorf("%w: eye and center coincide", ErrDegenerateCamera)
	}
	if forward.cross(sc.Camera.Up).length() < 1e-4 {
		return fmt.Errorf("%w: up is parallel to the view direction", ErrDegenerateCamera)
	}
	if sc.Camera.FOV <= 0 || sc.Camera.FOV >= 180 {
		return fmt.Errorf("%w: fov %.1f out of (0, 180)", ErrDegenerateCamera, sc.Camera.FOV)
	}

	ids := make(map[string]bool, len(sc.Materials))
	for _, m := range sc.Materials {
		ids[m.ID] = true
	}
	for _, o := range sc.Objects {
		if !ids[o.MaterialID] {
			return fmt.Errorf("object %q: %w %q", o.ID, ErrUnknownMaterial, o.MaterialID)
		}
		switch o.Type {
		case ObjectCube:
			if o.Size.X < 0 || o.Size.Y < 0 || o.Size.Z < 0 {
				return fmt.Errorf("object %q: %w: negative half extents", o.ID, ErrDegenerateObject)
			}
		case ObjectPlane:
			if o.Normal.length() < 1e-4 {
				return fmt.Errorf("object %q: %w: zero normal", o.ID, ErrDegenerateObject)
			}
		default:
			return fmt.Errorf("object %q: %w %q", o.ID, ErrUnknownObjectType, o.Type)
		}
	}
	return nil
}

// Default returns the built-in scene: a red cube resting above a grey floor,
// lit by one white point light.
func Default() *Scene {
	return &Scene{
		Name: "cube",
		Camera: Camera{
			Eye:    Vec3{X: 0, Y: 1, Z: 4},
			Center: Vec3{X: 0, Y: 1, Z: 0},
			Up:     Vec3{X: 0, Y: 1, Z: 0},
			FOV:    60,
		},
		Light: Light{
			Position:  Vec3{X: 3, Y: 5, Z: 2},
			Color:     Color{R: 1, G: 1, B: 1},
			Intensity: 1.5,
		},
		Materials: []Material{
			{ID: "red", Albedo: Color{R: 0.80, G: 0.15, B: 0.15}, Ks: 0.5, Shininess: 32, Ka: 0.08},
			{ID: "floor", Albedo: Color{R: 0.75, G: 0.75, B: 0.75}, Ks: 0.2, Shininess: 8, Ka: 0.06},
		},
		Objects: []Object{
			{ID: "cube", Type: ObjectCube, Position: Vec3{X: 0, Y: 1, Z: 0}, Size: Vec3{X: 0.75, Y: 0.75, Z: 0.75}, MaterialID: "red"},
			{ID: "floor", Type: ObjectPlane, Position: Vec3{}, Normal: Vec3{X: 0, Y: 1, Z: 0}, MaterialID: "floor"},
		},
		Settings: RenderSettings{Width: 240, Height: 160, Scale: 4},
	}
}
