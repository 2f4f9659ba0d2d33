package common

import "math"

// vecEpsilon matches the approximate equality used for input vectors.
const vecEpsilon = 1e-5

type Vec2 struct {
	X float64 `yaml:"x" cbor:"x"`
	Y float64 `yaml:"y" cbor:"y"`
}

func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vec2) SqrLen() float64 {
	return v.X*v.X + v.Y*v.Y
}

// IsZero reports whether v is approximately the zero vector.
func (v Vec2) IsZero() bool {
	return v.SqrLen() < vecEpsilon*vecEpsilon
}

type Vec3 struct {
	X float64 `yaml:"x" cbor:"x"`
	Y float64 `yaml:"y" cbor:"y"`
	Z float64 `yaml:"z" cbor:"z"`
}

// Up is the world up axis.
var Up = Vec3{Y: 1}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

// Horizontal drops the vertical component.
func (v Vec3) Horizontal() Vec3 {
	return Vec3{X: v.X, Z: v.Z}
}

// Normalize returns v scaled to unit length, or the zero vector when v is
// too short to have a direction.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < vecEpsilon {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// LerpVec3 interpolates componentwise with t clamped to [0, 1].
func LerpVec3(a, b Vec3, t float64) Vec3 {
	return Vec3{X: Lerp(a.X, b.X, t), Y: Lerp(a.Y, b.Y, t), Z: Lerp(a.Z, b.Z, t)}
}
