package catalog

import _ "embed"

//go:embed definitions.json
var defaultDefinitions []byte

// Default returns the resolver for the definitions shipped with the server.
// It panics if the embedded file fails validation, which makes a broken
// authoring edit a startup failure instead of a silent balance bug.
func Default() *Resolver {
	return MustLoad(defaultDefinitions)
}

// DefaultDefinitionsJSON exposes the embedded authored bytes for tooling.
func DefaultDefinitionsJSON() []byte {
	return append([]byte(nil), defaultDefinitions...)
}
