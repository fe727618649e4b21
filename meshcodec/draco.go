package meshcodec

import (
	"fmt"

	gltfkit "github.com/oriongate/gltfkit"
	"github.com/oriongate/gltfkit/i18n"
	"github.com/oriongate/gltfkit/model"
)

// DracoCodec is the external decompressor Pass A delegates to: given the
// compressed payload and the extension's attribute-name-to-local-id
// mapping, it returns every requested attribute (and the index buffer,
// if the primitive declared one) fully decoded.
type DracoCodec func(payload []byte, attributes map[string]int) (DecodedMesh, error)

const dracoExtensionName = "KHR_draco_mesh_compression"

// RunPassA runs the generic compressed-mesh pass over every primitive of
// every mesh in doc. On codec success the primitive's compressed-mesh
// extension is removed and its attributes/indices are rewritten to point
// at newly appended uncompressed accessors; on codec failure a
// MeshDecompressionFailure warning is recorded and the primitive is left
// untouched (spec §4.8).
func RunPassA(doc *model.Document, codec DracoCodec) gltfkit.Issues {
	if codec == nil {
		return nil
	}
	var issues gltfkit.Issues
	for mi := range doc.Meshes {
		for pi := range doc.Meshes[mi].Primitives {
			prim := &doc.Meshes[mi].Primitives[pi]
			ext, ok := prim.Extensions.Get(dracoExtensionName)
			if !ok {
				continue
			}
			draco, ok := ext.(*DracoExtension)
			if !ok {
				continue
			}
			path := fmt.Sprintf("/meshes/%d/primitives/%d/extensions/%s", mi, pi, dracoExtensionName)

			payload, ok := rawBufferViewBytes(doc, draco.BufferView)
			if !ok {
				issues = gltfkit.AppendIssues(issues, warnMeshDecompression(path, "compressed bufferView out of range"))
				continue
			}

			decoded, err := codec(payload, draco.Attributes)
			if err != nil {
				issues = gltfkit.AppendIssues(issues, warnMeshDecompression(path, err.Error()))
				continue
			}

			for name, attr := range decoded.Attributes {
				prim.Attributes[name] = appendAccessorFor(doc, attr)
			}
			if decoded.Indices != nil {
				prim.Indices = appendAccessorFor(doc, *decoded.Indices)
			}
			prim.Extensions.Remove(dracoExtensionName)
		}
	}
	return issues
}

func warnMeshDecompression(path, detail string) gltfkit.Issue {
	return gltfkit.Issue{
		Path:     path,
		Code:     gltfkit.CodeMeshDecompressionFailure,
		Severity: gltfkit.SeverityWarning,
		Message:  i18n.T(gltfkit.CodeMeshDecompressionFailure, nil),
		Hint:     detail,
		Offset:   -1,
	}
}
