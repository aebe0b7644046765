package geom

import "math"

// SegmentAABBEnter returns the distance along the segment from origin toward
// dir (a unit vector) at which the segment first enters the box, and whether
// it enters within maxDist. An origin already inside the box enters at 0. A
// zero direction never enters.
func SegmentAABBEnter(origin, dir Vec, maxDist float64, box AABB) (float64, bool) {
	if maxDist <= 0 || dir.IsZero() {
		return 0, false
	}
	if box.ContainsPoint(origin) {
		return 0, true
	}

	tMin := 0.0
	tMax := maxDist

	enter, exit, ok := slabRange(origin.X, dir.X, box.X, box.X+box.Width)
	if !ok {
		return 0, false
	}
	tMin = math.Max(tMin, enter)
	tMax = math.Min(tMax, exit)

	enter, exit, ok = slabRange(origin.Y, dir.Y, box.Y, box.Y+box.Height)
	if !ok {
		return 0, false
	}
	tMin = math.Max(tMin, enter)
	tMax = math.Min(tMax, exit)

	if tMin > tMax {
		return 0, false
	}
	return tMin, true
}

// slabRange returns the parametric interval over which a 1-D ray overlaps the
// slab [lo, hi]. A ray running parallel outside the slab never overlaps.
func slabRange(origin, dir, lo, hi float64) (float64, float64, bool) {
	if dir == 0 {
		if origin < lo || origin > hi {
			return 0, 0, false
		}
		return math.Inf(-1), math.Inf(1), true
	}
	t0 := (lo - origin) / dir
	t1 := (hi - origin) / dir
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	return t0, t1, true
}

// ClampRayRange returns maxDist shortened to the nearest entry into any of
// the boxes. Archer shots use this so a wall stops the arrow instead of the
// arrow passing through it.
func ClampRayRange(origin, dir Vec, maxDist float64, boxes []AABB) float64 {
	clamped := maxDist
	for _, box := range boxes {
		if enter, ok := SegmentAABBEnter(origin, dir, clamped, box); ok && enter < clamped {
			clamped = enter
		}
	}
	if clamped < 0 {
		return 0
	}
	return clamped
}
