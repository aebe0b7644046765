// Package catalog holds the designer-authored attack definitions: per-kind
// tunables and the client visual each kind renders with. The simulation
// treats these documents as the single source of balance numbers for attack
// objects.
package catalog

// EntryDocument models the JSON contract for one designer-authored attack
// entry. It is shared with the schema generator so tooling can validate the
// authored file.
type EntryDocument struct {
	ID           string  `json:"id" jsonschema:"title=Attack id,pattern=^[a-z0-9_]+$,minLength=1,required,description=Identifier the simulation resolves tunables by"`
	AssetKey     string  `json:"assetKey" jsonschema:"title=Client asset key,minLength=1,required,description=Visual the client plays for this attack"`
	DamageScale  float64 `json:"damageScale" jsonschema:"title=Damage scale,description=Multiplier applied to the owner's damage stat"`
	Radius       float64 `json:"radius,omitempty" jsonschema:"description=Circle or cone radius in world units"`
	Speed        float64 `json:"speed,omitempty" jsonschema:"description=Travel speed in world units per second"`
	Range        float64 `json:"range,omitempty" jsonschema:"description=Maximum travel distance in world units"`
	LifetimeMs   int     `json:"lifetimeMs,omitempty" jsonschema:"description=Total lifetime in milliseconds for timed attacks"`
	HalfAngleDeg float64 `json:"halfAngleDeg,omitempty" jsonschema:"description=Cone or arc half angle in degrees"`
	Width        float64 `json:"width,omitempty" jsonschema:"description=Capsule thickness in world units"`
}

// FileDefinitions represents the contents of definitions.json: the canonical
// array format authored by designers.
type FileDefinitions []EntryDocument
