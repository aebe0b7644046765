package server

import (
	"strings"

	"rush-and-ruin/server/internal/sim"
)

const defaultWorldSeed = "prototype"

// DefaultWorldConfig enables every world feature with the default seed.
// Arena dimensions stay zero so the simulation applies its own defaults.
func DefaultWorldConfig() sim.Config {
	return sim.Config{
		Obstacles: true,
		Waves:     true,
		Seed:      defaultWorldSeed,
	}
}

// sanitizeConfig trims the seed and falls back to the default when empty.
// Dimension normalization belongs to the simulation.
func sanitizeConfig(cfg sim.Config) sim.Config {
	cfg.Seed = strings.TrimSpace(cfg.Seed)
	if cfg.Seed == "" {
		cfg.Seed = defaultWorldSeed
	}
	return cfg
}
