//go:build !gojson

package gojson

import (
	"io"

	gltfkit "github.com/oriongate/gltfkit"
	jsonsrc "github.com/oriongate/gltfkit/source/json"
)

// Driver returns a stub driver description when gojson tag is not enabled.
// It delegates to the encoding/json-based source directly to avoid recursion.
func Driver() gltfkit.JSONDriver { return stub{} }

type stub struct{}

func (stub) NewReader(r io.Reader) gltfkit.Source {
	return gltfkit.SourceFromEngine(jsonsrc.NewReader(r))
}
func (stub) NewBytes(b []byte) gltfkit.Source {
	return gltfkit.SourceFromEngine(jsonsrc.NewBytes(b))
}
func (stub) Name() string { return "encoding/json (gojson stub)" }
