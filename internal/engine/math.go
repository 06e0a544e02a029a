package engine

import "github.com/chewxy/math32"

const (
	// Eps is the general geometric tolerance.
	Eps float32 = 1e-4
	// Inf is a large finite sentinel, used where true infinity would turn into NaN.
	Inf float32 = 1e30
)

// Vec3 is a 3-component vector, also used for linear RGB colors.
type Vec3 struct {
	X, Y, Z float32
}

func V(x, y, z float32) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// Splat returns a vector with all components set to s.
func Splat(s float32) Vec3 { return Vec3{X: s, Y: s, Z: s} }

func (a Vec3) Add(b Vec3) Vec3      { return Vec3{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3      { return Vec3{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z} }
func (a Vec3) Mul(t float32) Vec3   { return Vec3{X: a.X * t, Y: a.Y * t, Z: a.Z * t} }
func (a Vec3) Div(t float32) Vec3   { return Vec3{X: a.X / t, Y: a.Y / t, Z: a.Z / t} }
func (a Vec3) Neg() Vec3            { return Vec3{X: -a.X, Y: -a.Y, Z: -a.Z} }
func (a Vec3) Dot(b Vec3) float32   { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }
func (a Vec3) Hadamard(b Vec3) Vec3 { return Vec3{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z} }

func (a Vec3) Cross(b Vec3) Vec3 {
	return V(
		a.Y*b.Z-a.Z*b.Y,
		a.Z*b.X-a.X*b.Z,
		a.X*b.Y-a.Y*b.X,
	)
}

func (a Vec3) Min(b Vec3) Vec3 {
	return V(math32.Min(a.X, b.X), math32.Min(a.Y, b.Y), math32.Min(a.Z, b.Z))
}

func (a Vec3) Max(b Vec3) Vec3 {
	return V(math32.Max(a.X, b.X), math32.Max(a.Y, b.Y), math32.Max(a.Z, b.Z))
}

func (a Vec3) Abs() Vec3 { return V(math32.Abs(a.X), math32.Abs(a.Y), math32.Abs(a.Z)) }

func (a Vec3) Length() float32 { return math32.Sqrt(a.Dot(a)) }

// Normalized returns a unit vector in the direction of a.
// Vectors shorter than Eps are returned unchanged.
func (a Vec3) Normalized() Vec3 {
	l := a.Length()
	if l < Eps {
		return a
	}
	return a.Div(l)
}

// Reflect mirrors i about the unit normal n.
func Reflect(i, n Vec3) Vec3 {
	return i.Sub(n.Mul(2 * i.Dot(n)))
}

// Clamp01 clamps v to [0,1]. Only used when converting to display colors.
func Clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Ray has a unit-length direction.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

func NewRay(origin, dir Vec3) Ray {
	return Ray{Origin: origin, Dir: dir.Normalized()}
}

func (r Ray) At(t float32) Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}
