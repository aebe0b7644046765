package catalog

// PlaceholderAssetKey is the visual the client falls back to when an entry
// references art that never shipped. Resolution degrades, it never fails.
const PlaceholderAssetKey = "fx-placeholder"

// knownAssets mirrors the client's shipped effect manifest. An entry whose
// AssetKey is missing here resolves to the placeholder.
var knownAssets = map[string]struct{}{
	"fx-placeholder": {},
	"fx-claw":        {},
	"fx-slam":        {},
	"fx-cleave":      {},
	"fx-shield":      {},
	"fx-arrow":       {},
	"fx-vortex":      {},
	"fx-storm":       {},
	"fx-blast":       {},
	"fx-slash":       {},
	"fx-bolt":        {},
	"fx-nova":        {},
}

// AssetKnown reports whether the client ships a visual for the given key.
func AssetKnown(key string) bool {
	_, ok := knownAssets[key]
	return ok
}
