// Package geom provides the float64 vector and hit-shape math shared by the
// simulation core. All predicates are pure and guard degenerate inputs so no
// caller ever sees a NaN.
package geom

import "math"

// Vec is a 2-D point or direction in world units.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + other.
func (v Vec) Add(other Vec) Vec {
	return Vec{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec) Sub(other Vec) Vec {
	return Vec{X: v.X - other.X, Y: v.Y - other.Y}
}

// Scale returns v scaled by factor.
func (v Vec) Scale(factor float64) Vec {
	return Vec{X: v.X * factor, Y: v.Y * factor}
}

// Dot returns the dot product of v and other.
func (v Vec) Dot(other Vec) float64 {
	return v.X*other.X + v.Y*other.Y
}

// LengthSq returns the squared length of v.
func (v Vec) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Length returns the length of v.
func (v Vec) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns the unit vector pointing along v. The zero vector
// normalizes to the zero vector so stationary actors never produce NaN
// movement.
func (v Vec) Normalize() Vec {
	length := v.Length()
	if length == 0 {
		return Vec{}
	}
	return Vec{X: v.X / length, Y: v.Y / length}
}

// IsZero reports whether both components are exactly zero.
func (v Vec) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Dist returns the distance between two points.
func Dist(a, b Vec) float64 {
	return a.Sub(b).Length()
}

// DistSq returns the squared distance between two points.
func DistSq(a, b Vec) float64 {
	return a.Sub(b).LengthSq()
}

// FromAngle returns the unit vector for the given heading in radians.
func FromAngle(angle float64) Vec {
	return Vec{X: math.Cos(angle), Y: math.Sin(angle)}
}

// AngleOf returns the heading of v in radians. The zero vector reports 0.
func AngleOf(v Vec) float64 {
	if v.IsZero() {
		return 0
	}
	return math.Atan2(v.Y, v.X)
}

// NormalizeAngle folds an angle into (-π, π].
func NormalizeAngle(angle float64) float64 {
	folded := math.Mod(angle, 2*math.Pi)
	if folded <= -math.Pi {
		folded += 2 * math.Pi
	} else if folded > math.Pi {
		folded -= 2 * math.Pi
	}
	return folded
}

// AngleDiff returns the signed smallest rotation from b to a in (-π, π].
func AngleDiff(a, b float64) float64 {
	return NormalizeAngle(a - b)
}

// Clamp limits value to [min, max].
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// AABB is an axis-aligned rectangle anchored at its top-left corner.
type AABB struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ContainsPoint reports whether the point lies inside the box.
func (b AABB) ContainsPoint(p Vec) bool {
	return p.X >= b.X && p.X <= b.X+b.Width && p.Y >= b.Y && p.Y <= b.Y+b.Height
}

// CircleOverlapsAABB reports whether a circle intersects the box.
func CircleOverlapsAABB(center Vec, radius float64, box AABB) bool {
	closestX := Clamp(center.X, box.X, box.X+box.Width)
	closestY := Clamp(center.Y, box.Y, box.Y+box.Height)
	dx := center.X - closestX
	dy := center.Y - closestY
	return dx*dx+dy*dy <= radius*radius
}
