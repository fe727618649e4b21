package source

import (
	gltfkit "github.com/oriongate/gltfkit"
	drvgojson "github.com/oriongate/gltfkit/source/gojson"
)

// Importing this package in a binary (built with -tags gojson) switches
// the default JSON driver to the goccy/go-json-backed one. Kept in a
// separate package from the root to avoid an import cycle: the root
// package cannot import its own drivers directly.
func init() { gltfkit.SetJSONDriver(drvgojson.Driver()) }
