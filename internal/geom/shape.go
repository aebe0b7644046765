package geom

// ShapeKind enumerates the closed set of hit-shape variants.
type ShapeKind uint8

const (
	// ShapeCircle is a filled disc around Center.
	ShapeCircle ShapeKind = iota
	// ShapeCone is a filled sector opening along Facing, used by sweeping
	// attacks.
	ShapeCone
	// ShapeCapsule is a thick segment starting StartOffset units from Center
	// along Facing and running Length units, used by projectiles and thrusts.
	ShapeCapsule
	// ShapeRect is a rectangle centered on Center and rotated by Facing.
	ShapeRect
	// ShapeSector is the same geometry as ShapeCone but marks a blocking
	// region rather than a damaging one.
	ShapeSector

	shapeKindCount
)

var shapeKindNames = [shapeKindCount]string{
	ShapeCircle:  "circle",
	ShapeCone:    "cone",
	ShapeCapsule: "capsule",
	ShapeRect:    "rect",
	ShapeSector:  "sector",
}

func (k ShapeKind) String() string {
	if int(k) < len(shapeKindNames) {
		return shapeKindNames[k]
	}
	return "unknown"
}

// Shape is the parameterized hit shape attached to attacks and shields. Only
// the fields relevant to Kind are meaningful; the rest stay zero.
type Shape struct {
	Kind        ShapeKind `json:"kind"`
	Center      Vec       `json:"center"`
	Facing      float64   `json:"facing,omitempty"`
	Radius      float64   `json:"radius,omitempty"`
	HalfAngle   float64   `json:"halfAngle,omitempty"`
	HalfWidth   float64   `json:"halfWidth,omitempty"`
	HalfHeight  float64   `json:"halfHeight,omitempty"`
	Length      float64   `json:"length,omitempty"`
	StartOffset float64   `json:"startOffset,omitempty"`
}

// ContainsPoint reports whether the point lies inside the shape. This is the
// single dispatcher every hit and block test routes through; unknown kinds
// contain nothing.
func (s Shape) ContainsPoint(p Vec) bool {
	switch s.Kind {
	case ShapeCircle:
		return DistSq(s.Center, p) <= s.Radius*s.Radius
	case ShapeCone, ShapeSector:
		return sectorContains(s.Center, s.Facing, s.HalfAngle, s.Radius, p)
	case ShapeCapsule:
		return capsuleContains(s.Center, s.Facing, s.StartOffset, s.Length, s.HalfWidth, p)
	case ShapeRect:
		return rotatedRectContains(s.Center, s.Facing, s.HalfWidth, s.HalfHeight, p)
	default:
		return false
	}
}

func sectorContains(apex Vec, facing, halfAngle, radius float64, p Vec) bool {
	delta := p.Sub(apex)
	if delta.LengthSq() > radius*radius {
		return false
	}
	if delta.IsZero() {
		// The apex itself is always covered.
		return true
	}
	diff := AngleDiff(AngleOf(delta), facing)
	if diff < 0 {
		diff = -diff
	}
	return diff <= halfAngle
}

func capsuleContains(origin Vec, facing, startOffset, length, halfWidth float64, p Vec) bool {
	if length < 0 {
		return false
	}
	axis := FromAngle(facing)
	delta := p.Sub(origin)
	along := delta.Dot(axis)
	if along < startOffset || along > startOffset+length {
		return false
	}
	perp := delta.Sub(axis.Scale(along))
	return perp.LengthSq() <= halfWidth*halfWidth
}

func rotatedRectContains(center Vec, angle, halfWidth, halfHeight float64, p Vec) bool {
	delta := p.Sub(center)
	axis := FromAngle(angle)
	// Project into the rectangle's local frame.
	localX := delta.X*axis.X + delta.Y*axis.Y
	localY := -delta.X*axis.Y + delta.Y*axis.X
	if localX < -halfWidth || localX > halfWidth {
		return false
	}
	return localY >= -halfHeight && localY <= halfHeight
}
