package meshcodec

import (
	"fmt"
	"math"

	gltfkit "github.com/oriongate/gltfkit"
	"github.com/oriongate/gltfkit/model"
)

// MeshoptCodec is the external decompressor Pass B delegates to. Its
// signature differs from DracoCodec's by also receiving the extension's
// quantized-attribute list, since some transform-decode schemes need to
// know up front which outputs require dequantization (spec §4.8: "a
// different codec interface").
type MeshoptCodec func(payload []byte, attributes map[string]int, quantized []string) (DecodedMesh, error)

const meshoptExtensionName = "EXT_meshopt_compression"

// RunPassB runs the transform-decoded compressed-mesh pass, identical in
// shape to RunPassA but additionally recomputing min/max for any
// attribute the extension named as quantized (spec §4.8).
func RunPassB(doc *model.Document, codec MeshoptCodec) gltfkit.Issues {
	if codec == nil {
		return nil
	}
	var issues gltfkit.Issues
	for mi := range doc.Meshes {
		for pi := range doc.Meshes[mi].Primitives {
			prim := &doc.Meshes[mi].Primitives[pi]
			ext, ok := prim.Extensions.Get(meshoptExtensionName)
			if !ok {
				continue
			}
			mo, ok := ext.(*MeshoptExtension)
			if !ok {
				continue
			}
			path := fmt.Sprintf("/meshes/%d/primitives/%d/extensions/%s", mi, pi, meshoptExtensionName)

			payload, ok := rawBufferViewBytes(doc, mo.BufferView)
			if !ok {
				issues = gltfkit.AppendIssues(issues, warnMeshDecompression(path, "compressed bufferView out of range"))
				continue
			}

			decoded, err := codec(payload, mo.Attributes, mo.QuantizedAttributes)
			if err != nil {
				issues = gltfkit.AppendIssues(issues, warnMeshDecompression(path, err.Error()))
				continue
			}

			quantizedSet := make(map[string]bool, len(mo.QuantizedAttributes))
			for _, name := range mo.QuantizedAttributes {
				quantizedSet[name] = true
			}

			for name, attr := range decoded.Attributes {
				accIdx := appendAccessorFor(doc, attr)
				prim.Attributes[name] = accIdx
				if quantizedSet[name] {
					recomputeMinMax(&doc.Accessors[accIdx], attr)
				}
			}
			if decoded.Indices != nil {
				prim.Indices = appendAccessorFor(doc, *decoded.Indices)
			}
			prim.Extensions.Remove(meshoptExtensionName)
		}
	}
	return issues
}

// recomputeMinMax derives an Accessor's min/max from its freshly decoded
// component data, used after dequantization changes the represented
// values (spec §4.8's Pass B-only step).
func recomputeMinMax(acc *model.Accessor, attr DecodedAttribute) {
	n := attr.Type.ComponentCount()
	if n == 0 || attr.ComponentType != model.ComponentTypeFloat {
		return
	}
	minV := make([]float64, n)
	maxV := make([]float64, n)
	for i := range minV {
		minV[i] = math.Inf(1)
		maxV[i] = math.Inf(-1)
	}
	stride := n * 4
	for elem := 0; elem*stride+stride <= len(attr.Data); elem++ {
		base := elem * stride
		for c := 0; c < n; c++ {
			bits := uint32(attr.Data[base+c*4]) | uint32(attr.Data[base+c*4+1])<<8 |
				uint32(attr.Data[base+c*4+2])<<16 | uint32(attr.Data[base+c*4+3])<<24
			v := float64(math.Float32frombits(bits))
			if v < minV[c] {
				minV[c] = v
			}
			if v > maxV[c] {
				maxV[c] = v
			}
		}
	}
	acc.Min = minV
	acc.Max = maxV
}
