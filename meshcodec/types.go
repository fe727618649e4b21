// Package meshcodec implements the two mesh-decompression post-parse
// passes (spec §4.8). Each pass is keyed by a specific extension on a
// MeshPrimitive and delegates the actual bit-level decompression to an
// externally supplied codec function — the algorithm itself is an
// external collaborator per §1's Non-goals; this package only sequences
// the primitive rewrite around it.
package meshcodec

import (
	"context"

	gltfkit "github.com/oriongate/gltfkit"
	"github.com/oriongate/gltfkit/model"
)

// DecodedAttribute is one uncompressed attribute or index buffer
// produced by an external codec: tightly packed component data ready to
// back a new Buffer/BufferView/Accessor triple.
type DecodedAttribute struct {
	ComponentType model.ComponentType
	Type          model.AccessorType
	Count         int
	Normalized    bool
	Data          []byte
}

// DecodedMesh is an external codec's full output for one primitive:
// every requested attribute plus, when the primitive declared one, the
// decoded index buffer.
type DecodedMesh struct {
	Attributes map[string]DecodedAttribute
	Indices    *DecodedAttribute
}

// DracoExtension is the generic compressed-mesh extension's decoded
// shape (Pass A, spec §4.8): a BufferView holding the compressed payload
// plus a mapping from attribute semantic to the codec's own local
// accessor id within that payload.
type DracoExtension struct {
	BufferView int
	Attributes map[string]int
}

// DecodeDracoExtension implements gltfkit.ExtensionDecodeFunc for
// KHR_draco_mesh_compression.
func DecodeDracoExtension(_ context.Context, path string, v gltfkit.Value) (any, gltfkit.Issues) {
	bv, _ := v.GetValueForKey("bufferView")
	bufferView := int(gltfkit.GetSafeNumber[int64](bv, model.NoIndex))
	return &DracoExtension{
		BufferView: bufferView,
		Attributes: intMap(v, "attributes"),
	}, nil
}

// MeshoptExtension is the transform-decoded compressed-mesh extension's
// decoded shape (Pass B, spec §4.8). QuantizedAttributes names the
// attributes whose accessor min/max must be recomputed after decoding.
type MeshoptExtension struct {
	BufferView          int
	Attributes          map[string]int
	QuantizedAttributes []string
}

// DecodeMeshoptExtension implements gltfkit.ExtensionDecodeFunc for
// EXT_meshopt_compression.
func DecodeMeshoptExtension(_ context.Context, path string, v gltfkit.Value) (any, gltfkit.Issues) {
	bv, _ := v.GetValueForKey("bufferView")
	bufferView := int(gltfkit.GetSafeNumber[int64](bv, model.NoIndex))
	var quantized []string
	if qv, ok := v.GetValueForKey("quantizedAttributes"); ok && qv.Kind() == gltfkit.KindArray {
		for _, it := range qv.Array() {
			if it.Kind() == gltfkit.KindString {
				quantized = append(quantized, it.String())
			}
		}
	}
	return &MeshoptExtension{
		BufferView:          bufferView,
		Attributes:          intMap(v, "attributes"),
		QuantizedAttributes: quantized,
	}, nil
}

func intMap(v gltfkit.Value, key string) map[string]int {
	obj, ok := v.GetValueForKey(key)
	if !ok || obj.Kind() != gltfkit.KindObject {
		return nil
	}
	out := make(map[string]int, obj.Len())
	for _, k := range obj.Keys() {
		fv, _ := obj.GetValueForKey(k)
		out[k] = int(gltfkit.GetSafeNumber[int64](fv, -1))
	}
	return out
}

// rawBufferViewBytes slices the bytes a BufferView refers to out of the
// document's already-resolved buffers.
func rawBufferViewBytes(doc *model.Document, bufferViewIdx int) ([]byte, bool) {
	if bufferViewIdx < 0 || bufferViewIdx >= len(doc.BufferViews) {
		return nil, false
	}
	bv := doc.BufferViews[bufferViewIdx]
	if bv.Buffer < 0 || bv.Buffer >= len(doc.Buffers) {
		return nil, false
	}
	buf := doc.Buffers[bv.Buffer]
	if bv.ByteOffset+bv.ByteLength > len(buf.Data) {
		return nil, false
	}
	return buf.Data[bv.ByteOffset : bv.ByteOffset+bv.ByteLength], true
}

// appendAccessorFor turns one DecodedAttribute into a new Buffer +
// BufferView + Accessor triple, appended to doc, returning the new
// Accessor's index.
func appendAccessorFor(doc *model.Document, attr DecodedAttribute) int {
	bufIdx := len(doc.Buffers)
	doc.Buffers = append(doc.Buffers, model.Buffer{
		ByteLength: len(attr.Data),
		Data:       attr.Data,
		Source:     model.BufferSourceSynthesized,
	})

	bvIdx := len(doc.BufferViews)
	doc.BufferViews = append(doc.BufferViews, model.BufferView{
		Buffer:     bufIdx,
		ByteOffset: 0,
		ByteLength: len(attr.Data),
	})

	accIdx := len(doc.Accessors)
	doc.Accessors = append(doc.Accessors, model.Accessor{
		BufferView:    bvIdx,
		ComponentType: attr.ComponentType,
		Normalized:    attr.Normalized,
		Count:         attr.Count,
		Type:          attr.Type,
	})
	return accIdx
}
