package dynamo

import (
	"fmt"
	"math"
)

// Vec2 is an immutable 2D vector.
//
// Besides positions and velocities it carries the per-pixel pole votes
// (X for the first pole, Y for the second), which is why Transpose matters:
// mirroring the plane across the axis between the poles swaps the votes.
type Vec2 struct {
	X, Y float64
}

var (
	Zero  = Vec2{}
	UnitX = Vec2{1, 0}
	UnitY = Vec2{0, 1}
)

func (v Vec2) Add(o Vec2) Vec2           { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2           { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2      { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Div(f float64) Vec2        { return Vec2{v.X / f, v.Y / f} }
func (v Vec2) Dot(o Vec2) float64        { return v.X*o.X + v.Y*o.Y }
func (v Vec2) LengthSq() float64         { return v.Dot(v) }
func (v Vec2) Length() float64           { return math.Sqrt(v.LengthSq()) }
func (v Vec2) Transpose() Vec2           { return Vec2{v.Y, v.X} }
func (v Vec2) DistanceTo(o Vec2) float64 { return o.Sub(v).Length() }

// Normalize returns the unit vector in the direction of v.
// The zero vector normalizes to itself.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Zero
	}
	return v.Div(l)
}

// IsValid reports whether both components are finite.
func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}
