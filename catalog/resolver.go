package catalog

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"sync"
)

var idPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// Resolver is the immutable lookup table built from an authored definitions
// file. Reads are safe for concurrent use.
type Resolver struct {
	mu      sync.RWMutex
	entries map[string]EntryDocument
}

// Load parses and validates an authored definitions document.
func Load(data []byte) (*Resolver, error) {
	var defs FileDefinitions
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("catalog: parse definitions: %w", err)
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("catalog: definitions file is empty")
	}

	entries := make(map[string]EntryDocument, len(defs))
	for idx, entry := range defs {
		if entry.ID == "" {
			return nil, fmt.Errorf("catalog: entry %d has no id", idx)
		}
		if !idPattern.MatchString(entry.ID) {
			return nil, fmt.Errorf("catalog: entry %q has an invalid id", entry.ID)
		}
		if _, dup := entries[entry.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate entry %q", entry.ID)
		}
		if entry.AssetKey == "" {
			return nil, fmt.Errorf("catalog: entry %q has no asset key", entry.ID)
		}
		if entry.DamageScale < 0 {
			return nil, fmt.Errorf("catalog: entry %q has a negative damage scale", entry.ID)
		}
		entries[entry.ID] = entry
	}
	return &Resolver{entries: entries}, nil
}

// MustLoad loads authored definitions and panics on any validation failure.
// Intended for embedded data at process start.
func MustLoad(data []byte) *Resolver {
	resolver, err := Load(data)
	if err != nil {
		panic(err)
	}
	return resolver
}

// Lookup returns the entry for the given attack id.
func (r *Resolver) Lookup(id string) (EntryDocument, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[id]
	return entry, ok
}

// IDs returns every authored attack id in sorted order.
func (r *Resolver) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Visual resolves the client asset for an attack id. Unknown ids and asset
// keys the client never shipped degrade to the placeholder; the second result
// reports whether degradation happened so callers can log it.
func (r *Resolver) Visual(id string) (string, bool) {
	entry, ok := r.Lookup(id)
	if !ok {
		return PlaceholderAssetKey, true
	}
	if !AssetKnown(entry.AssetKey) {
		return PlaceholderAssetKey, true
	}
	return entry.AssetKey, false
}
