package sim

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"rush-and-ruin/server/stats"
)

//go:embed configs/*.yaml
var tuningFS embed.FS

// Tuning carries the movement and timing knobs for one archetype. Fields an
// archetype does not use stay zero in its file; validation only checks the
// knobs every behavior needs.
type Tuning struct {
	MoveSpeed        float64 `yaml:"move_speed"`
	TriggerRange     float64 `yaml:"trigger_range"`
	TriggerBuffer    float64 `yaml:"trigger_buffer"`
	AttackLockMs     int     `yaml:"attack_lock_ms"`
	AttackCooldownMs int     `yaml:"attack_cooldown_ms"`
	AttackRange      float64 `yaml:"attack_range"`
	HoldMin          float64 `yaml:"hold_min"`
	HoldMax          float64 `yaml:"hold_max"`
	ShieldRange      float64 `yaml:"shield_range"`
	ShieldCooldownMs int     `yaml:"shield_cooldown_ms"`
	FuseRange        float64 `yaml:"fuse_range"`
	RushMultiplier   float64 `yaml:"rush_multiplier"`
}

func (t Tuning) lockTicks() uint64     { return msToTicks(t.AttackLockMs) }
func (t Tuning) cooldownTicks() uint64 { return msToTicks(t.AttackCooldownMs) }

type tuningSet [stats.ArchetypeCount]Tuning

func (s *tuningSet) forArchetype(a stats.Archetype) Tuning {
	return s[a]
}

func loadTunings() (*tuningSet, error) {
	entries, err := tuningFS.ReadDir("configs")
	if err != nil {
		return nil, fmt.Errorf("read embedded tuning dir: %w", err)
	}
	var set tuningSet
	seen := make(map[stats.Archetype]bool, stats.ArchetypeCount)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	for _, name := range names {
		stem := strings.TrimSuffix(name, path.Ext(name))
		arch, ok := stats.ParseArchetype(stem)
		if !ok {
			return nil, fmt.Errorf("tuning file %q does not name a known archetype", name)
		}
		raw, err := tuningFS.ReadFile(path.Join("configs", name))
		if err != nil {
			return nil, fmt.Errorf("read tuning %q: %w", name, err)
		}
		var t Tuning
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&t); err != nil {
			return nil, fmt.Errorf("parse tuning %q: %w", name, err)
		}
		if err := validateTuning(arch, t); err != nil {
			return nil, fmt.Errorf("tuning %q: %w", name, err)
		}
		set[arch] = t
		seen[arch] = true
	}
	for a := stats.Archetype(0); a < stats.ArchetypeCount; a++ {
		if !seen[a] {
			return nil, fmt.Errorf("no tuning file for archetype %q", a)
		}
	}
	return &set, nil
}

func validateTuning(arch stats.Archetype, t Tuning) error {
	if t.MoveSpeed <= 0 {
		return fmt.Errorf("move_speed must be positive, got %v", t.MoveSpeed)
	}
	if t.AttackLockMs <= 0 {
		return fmt.Errorf("attack_lock_ms must be positive, got %d", t.AttackLockMs)
	}
	if t.HoldMin > t.HoldMax {
		return fmt.Errorf("hold_min %v exceeds hold_max %v", t.HoldMin, t.HoldMax)
	}
	if arch == stats.ArchetypeSpirit && t.FuseRange <= 0 {
		return fmt.Errorf("spirit needs a positive fuse_range")
	}
	return nil
}

// mustLoadTunings backs the package-level default set; a broken embedded
// file should stop the server at startup, not at first spawn.
func mustLoadTunings() *tuningSet {
	set, err := loadTunings()
	if err != nil {
		panic(fmt.Sprintf("sim: load behavior tunings: %v", err))
	}
	return set
}

var defaultTunings = mustLoadTunings()
