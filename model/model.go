// Package model defines the entity graph produced by a Read (spec §3): a
// rooted document holding an ordered sequence per collection, with
// cross-references expressed as plain integer indices rather than
// pointers, so the whole graph has no cycles and can be freely copied.
package model

import gltfkit "github.com/oriongate/gltfkit"

// NoIndex is the sentinel for an absent index reference (spec §3: "either
// absent (−1 sentinel) or lie in [0, size-of-target)").
const NoIndex = -1

// Base is embedded in every entity: the dynamic-value extras field, the
// typed/generic extension split, and captured unknown properties.
type Base struct {
	Extras     gltfkit.Value
	Extensions Extensions
	Unknown    map[string]gltfkit.Value
}

// Extensions is the tagged-union-per-owner representation from spec §9:
// a Registered extension's decoded result lives in Typed keyed by name;
// a JsonOnly extension's raw Value lives in Generic keyed by name. Both
// maps can be populated at once (different extension names each picking
// their own state) but never for the same name.
type Extensions struct {
	Typed   map[string]any
	Generic map[string]gltfkit.Value
}

// Get returns the typed extension result for name, if Registered and present.
func (e Extensions) Get(name string) (any, bool) {
	v, ok := e.Typed[name]
	return v, ok
}

// GetGeneric returns the raw Value for a JsonOnly extension, if present.
func (e Extensions) GetGeneric(name string) (gltfkit.Value, bool) {
	v, ok := e.Generic[name]
	return v, ok
}

// Remove deletes name from both storages — used once a pass consumes a
// typed extension (spec §4.8: "on success, the extension is removed from
// the primitive") or once RTC recentering consumes the root extension
// (§4.9).
func (e *Extensions) Remove(name string) {
	delete(e.Typed, name)
	delete(e.Generic, name)
}

func (e *Extensions) setTyped(name string, v any) {
	if e.Typed == nil {
		e.Typed = make(map[string]any)
	}
	e.Typed[name] = v
}

func (e *Extensions) setGeneric(name string, v gltfkit.Value) {
	if e.Generic == nil {
		e.Generic = make(map[string]gltfkit.Value)
	}
	e.Generic[name] = v
}

// Set records the outcome of registry resolution for a single extension
// name found on some entity: state ExtensionRegistered stores into Typed,
// ExtensionJsonOnly stores the raw Value into Generic, ExtensionDisabled
// stores nothing.
func (e *Extensions) Set(name string, state gltfkit.ExtensionState, typedResult any, raw gltfkit.Value) {
	switch state {
	case gltfkit.ExtensionRegistered:
		e.setTyped(name, typedResult)
	case gltfkit.ExtensionJsonOnly:
		e.setGeneric(name, raw)
	}
}

// Asset is the document's singleton metadata block.
type Asset struct {
	Version string
	Base
}

// BufferSource identifies where a Buffer's bytes came from, useful for
// diagnostics and for the "URI wins over embedded BIN chunk" policy
// (spec §9 Open Question).
type BufferSource int

const (
	BufferSourceUnresolved BufferSource = iota
	BufferSourceEmbeddedChunk
	BufferSourceDataURI
	BufferSourceExternalURI
	// BufferSourceSynthesized marks a Buffer appended by a post-parse
	// pass (mesh decompression) rather than sourced from the document.
	BufferSourceSynthesized
)

// Buffer is a byte payload with a declared length (spec §3).
type Buffer struct {
	ByteLength int
	URI        string
	Data       []byte
	Source     BufferSource
	Base
}

// BufferView is a byte-range view over a Buffer.
type BufferView struct {
	Buffer     int
	ByteOffset int
	ByteLength int
	ByteStride *int
	Target     *int
	Base
}

// ComponentType is an Accessor's per-component numeric kind, using the
// same wire integers as the JSON encoding so enum round-tripping (spec
// §8) is the identity function.
type ComponentType int

const (
	ComponentTypeByte          ComponentType = 5120
	ComponentTypeUnsignedByte  ComponentType = 5121
	ComponentTypeShort         ComponentType = 5122
	ComponentTypeUnsignedShort ComponentType = 5123
	ComponentTypeUnsignedInt   ComponentType = 5125
	ComponentTypeFloat         ComponentType = 5126
)

// ComponentTypeNames maps enumerator name to wire value, for §4.3's
// enum-mapped integer decoding from a JSON string.
var ComponentTypeNames = map[string]int{
	"BYTE":           int(ComponentTypeByte),
	"UNSIGNED_BYTE":  int(ComponentTypeUnsignedByte),
	"SHORT":          int(ComponentTypeShort),
	"UNSIGNED_SHORT": int(ComponentTypeUnsignedShort),
	"UNSIGNED_INT":   int(ComponentTypeUnsignedInt),
	"FLOAT":          int(ComponentTypeFloat),
}

// ComponentSize returns the byte width of one component, or 0 if unknown.
func (c ComponentType) ComponentSize() int {
	switch c {
	case ComponentTypeByte, ComponentTypeUnsignedByte:
		return 1
	case ComponentTypeShort, ComponentTypeUnsignedShort:
		return 2
	case ComponentTypeUnsignedInt, ComponentTypeFloat:
		return 4
	default:
		return 0
	}
}

// AccessorType is an Accessor's element shape.
type AccessorType string

const (
	AccessorScalar AccessorType = "SCALAR"
	AccessorVec2   AccessorType = "VEC2"
	AccessorVec3   AccessorType = "VEC3"
	AccessorVec4   AccessorType = "VEC4"
	AccessorMat2   AccessorType = "MAT2"
	AccessorMat3   AccessorType = "MAT3"
	AccessorMat4   AccessorType = "MAT4"
)

// ComponentCount returns the number of scalar components per element.
func (t AccessorType) ComponentCount() int {
	switch t {
	case AccessorScalar:
		return 1
	case AccessorVec2:
		return 2
	case AccessorVec3:
		return 3
	case AccessorVec4, AccessorMat2:
		return 4
	case AccessorMat3:
		return 9
	case AccessorMat4:
		return 16
	default:
		return 0
	}
}

// AccessorSparse describes a sparse-override for an Accessor.
type AccessorSparse struct {
	Count                int
	IndicesBufferView    int
	IndicesByteOffset    int
	IndicesComponentType ComponentType
	ValuesBufferView     int
	ValuesByteOffset     int
}

// Accessor is a typed, counted view over a BufferView.
type Accessor struct {
	BufferView    int
	ByteOffset    int
	ComponentType ComponentType
	Normalized    bool
	Count         int
	Type          AccessorType
	Min           []float64
	Max           []float64
	Sparse        *AccessorSparse
	Base
}

// MipPosition describes one level of a decoded mip chain (spec §4.7).
type MipPosition struct {
	ByteOffset int
	ByteSize   int
}

// DecodedImage is a decoder's uniform output: raster decoders leave
// MipPositions empty implicitly by never populating it (nil slice), the
// compressed-texture decoder populates it per §4.7's three cases.
type DecodedImage struct {
	Width, Height, Channels int
	Pixels                  []byte
	MipPositions            []MipPosition
}

// Image sources raster or block-compressed pixel data.
type Image struct {
	BufferView int
	URI        string
	MimeType   string
	Data       []byte
	Decoded    *DecodedImage
	Base
}

// Sampler is schema-only per spec §3: no algorithmic content in the core.
type Sampler struct {
	MagFilter *int
	MinFilter *int
	WrapS     int
	WrapT     int
	Base
}

// Texture is schema-only.
type Texture struct {
	Sampler int
	Source  int
	Base
}

// Material is schema-only.
type Material struct {
	Name string
	Base
}

// PrimitiveMode is the topology of a MeshPrimitive, using glTF's wire
// integers so the default (Triangles) matches the format's own default.
type PrimitiveMode int

const (
	PrimitivePoints PrimitiveMode = iota
	PrimitiveLines
	PrimitiveLineLoop
	PrimitiveLineStrip
	PrimitiveTriangles
	PrimitiveTriangleStrip
	PrimitiveTriangleFan
)

// MeshPrimitive maps semantic attribute names to Accessor indices, with
// an optional index-buffer accessor and ordered morph targets.
type MeshPrimitive struct {
	Attributes map[string]int
	Indices    int
	Mode       PrimitiveMode
	Targets    []map[string]int
	Base
}

// Mesh is an ordered list of MeshPrimitive.
type Mesh struct {
	Primitives []MeshPrimitive
	Base
}

// Node holds a local transform (matrix xor TRS) and a mesh/children list.
type Node struct {
	HasMatrix   bool
	Matrix      [16]float64
	Translation [3]float64
	Rotation    [4]float64
	Scale       [3]float64
	Mesh        int
	Children    []int
	Base
}

// Scene is an ordered list of root node indices.
type Scene struct {
	Nodes []int
	Base
}

// Document is the top-level entity graph returned by a successful parse.
type Document struct {
	Asset              Asset
	Buffers            []Buffer
	BufferViews        []BufferView
	Accessors          []Accessor
	Images             []Image
	Samplers           []Sampler
	Textures           []Texture
	Materials          []Material
	Meshes             []Mesh
	Nodes              []Node
	Scenes             []Scene
	Scene              int
	ExtensionsUsed     []string
	ExtensionsRequired []string
	Base
}
