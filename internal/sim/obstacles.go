package sim

import "rush-and-ruin/server/internal/geom"

const (
	obstacleCount   = 5
	obstacleMinSide = 60.0
	obstacleMaxSide = 160.0
)

// generateObstacles scatters a handful of axis-aligned blocks, keeping the
// center clear so the player never spawns inside one. Placement draws from
// its own labeled stream, so obstacle layout is stable for a seed no
// matter what else the world rolls.
func (w *World) generateObstacles() []geom.AABB {
	rng := w.subsystemRNG("obstacles.base")
	center := geom.Vec{X: w.width() / 2, Y: w.height() / 2}
	boxes := make([]geom.AABB, 0, obstacleCount)
	for attempts := 0; len(boxes) < obstacleCount && attempts < obstacleCount*8; attempts++ {
		wd := obstacleMinSide + rng.Float64()*(obstacleMaxSide-obstacleMinSide)
		ht := obstacleMinSide + rng.Float64()*(obstacleMaxSide-obstacleMinSide)
		x := rng.Float64() * (w.width() - wd)
		y := rng.Float64() * (w.height() - ht)
		box := geom.AABB{X: x, Y: y, Width: wd, Height: ht}
		if geom.CircleOverlapsAABB(center, spawnClearRadius, box) {
			continue
		}
		boxes = append(boxes, box)
	}
	return boxes
}
