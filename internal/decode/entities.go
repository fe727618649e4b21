package decode

import (
	"context"

	gltfkit "github.com/oriongate/gltfkit"
	"github.com/oriongate/gltfkit/internal/schema"
	"github.com/oriongate/gltfkit/model"
)

func decodeBuffer(ctx context.Context, sc *schema.Ctx, path string, obj gltfkit.Value) model.Buffer {
	known := schema.Fields("byteLength", "uri", "name")
	b := model.Buffer{
		ByteLength: sc.Int(path, obj, "byteLength", 0),
		URI:        sc.String(obj, "uri", ""),
	}
	b.Extras = schema.Extras(obj)
	b.Extensions = decodeExtensions(ctx, sc, path, obj, nil)
	b.Unknown = sc.CaptureUnknown(path, obj, known)
	return b
}

func decodeBufferView(ctx context.Context, sc *schema.Ctx, path string, obj gltfkit.Value) model.BufferView {
	known := schema.Fields("buffer", "byteOffset", "byteLength", "byteStride", "target", "name")
	bv := model.BufferView{
		Buffer:     sc.Int(path, obj, "buffer", model.NoIndex),
		ByteOffset: sc.Int(path, obj, "byteOffset", 0),
		ByteLength: sc.Int(path, obj, "byteLength", 0),
	}
	if v, ok := schema.Field(obj, "byteStride"); ok && !v.IsNull() {
		s := sc.Int(path, obj, "byteStride", 0)
		bv.ByteStride = &s
	}
	if v, ok := schema.Field(obj, "target"); ok && !v.IsNull() {
		t := sc.Int(path, obj, "target", 0)
		bv.Target = &t
	}
	bv.Extras = schema.Extras(obj)
	bv.Extensions = decodeExtensions(ctx, sc, path, obj, nil)
	bv.Unknown = sc.CaptureUnknown(path, obj, known)
	return bv
}

func decodeAccessor(ctx context.Context, sc *schema.Ctx, path string, obj gltfkit.Value) model.Accessor {
	known := schema.Fields(
		"bufferView", "byteOffset", "componentType", "normalized", "count",
		"type", "min", "max", "sparse", "name",
	)
	a := model.Accessor{
		BufferView: sc.Int(path, obj, "bufferView", model.NoIndex),
		ByteOffset: sc.Int(path, obj, "byteOffset", 0),
		ComponentType: model.ComponentType(sc.EnumInt(path, obj, "componentType", model.ComponentTypeNames, int(model.ComponentTypeFloat))),
		Normalized: sc.Bool(obj, "normalized", false),
		Count:      sc.Int(path, obj, "count", 0),
		Type:       model.AccessorType(sc.String(obj, "type", string(model.AccessorScalar))),
		Min:        sc.FloatArray(obj, "min"),
		Max:        sc.FloatArray(obj, "max"),
	}
	if sparseObj, ok := schema.Field(obj, "sparse"); ok && sparseObj.Kind() == gltfkit.KindObject {
		a.Sparse = decodeAccessorSparse(sc, path+"/sparse", sparseObj)
	}
	a.Extras = schema.Extras(obj)
	a.Extensions = decodeExtensions(ctx, sc, path, obj, nil)
	a.Unknown = sc.CaptureUnknown(path, obj, known)
	return a
}

func decodeAccessorSparse(sc *schema.Ctx, path string, obj gltfkit.Value) *model.AccessorSparse {
	indicesObj, _ := schema.Field(obj, "indices")
	valuesObj, _ := schema.Field(obj, "values")
	return &model.AccessorSparse{
		Count:                sc.Int(path, obj, "count", 0),
		IndicesBufferView:    sc.Int(path, indicesObj, "bufferView", model.NoIndex),
		IndicesByteOffset:    sc.Int(path, indicesObj, "byteOffset", 0),
		IndicesComponentType: model.ComponentType(sc.EnumInt(path, indicesObj, "componentType", model.ComponentTypeNames, int(model.ComponentTypeUnsignedShort))),
		ValuesBufferView:     sc.Int(path, valuesObj, "bufferView", model.NoIndex),
		ValuesByteOffset:     sc.Int(path, valuesObj, "byteOffset", 0),
	}
}

func decodeImage(ctx context.Context, sc *schema.Ctx, path string, obj gltfkit.Value) model.Image {
	known := schema.Fields("uri", "mimeType", "bufferView", "name")
	img := model.Image{
		BufferView: sc.Int(path, obj, "bufferView", model.NoIndex),
		URI:        sc.String(obj, "uri", ""),
		MimeType:   sc.String(obj, "mimeType", ""),
	}
	img.Extras = schema.Extras(obj)
	img.Extensions = decodeExtensions(ctx, sc, path, obj, nil)
	img.Unknown = sc.CaptureUnknown(path, obj, known)
	return img
}

var samplerWrapNames = map[string]int{
	"CLAMP_TO_EDGE":   33071,
	"MIRRORED_REPEAT": 33648,
	"REPEAT":          10497,
}

func decodeSampler(ctx context.Context, sc *schema.Ctx, path string, obj gltfkit.Value) model.Sampler {
	known := schema.Fields("magFilter", "minFilter", "wrapS", "wrapT", "name")
	s := model.Sampler{
		WrapS: sc.EnumInt(path, obj, "wrapS", samplerWrapNames, 10497),
		WrapT: sc.EnumInt(path, obj, "wrapT", samplerWrapNames, 10497),
	}
	if v, ok := schema.Field(obj, "magFilter"); ok && !v.IsNull() {
		f := sc.Int(path, obj, "magFilter", 0)
		s.MagFilter = &f
	}
	if v, ok := schema.Field(obj, "minFilter"); ok && !v.IsNull() {
		f := sc.Int(path, obj, "minFilter", 0)
		s.MinFilter = &f
	}
	s.Extras = schema.Extras(obj)
	s.Extensions = decodeExtensions(ctx, sc, path, obj, nil)
	s.Unknown = sc.CaptureUnknown(path, obj, known)
	return s
}

func decodeTexture(ctx context.Context, sc *schema.Ctx, path string, obj gltfkit.Value) model.Texture {
	known := schema.Fields("sampler", "source", "name")
	t := model.Texture{
		Sampler: sc.Int(path, obj, "sampler", model.NoIndex),
		Source:  sc.Int(path, obj, "source", model.NoIndex),
	}
	t.Extras = schema.Extras(obj)
	t.Extensions = decodeExtensions(ctx, sc, path, obj, nil)
	t.Unknown = sc.CaptureUnknown(path, obj, known)
	return t
}

func decodeMaterial(ctx context.Context, sc *schema.Ctx, path string, obj gltfkit.Value) model.Material {
	known := schema.Fields("name")
	m := model.Material{Name: sc.String(obj, "name", "")}
	m.Extras = schema.Extras(obj)
	m.Extensions = decodeExtensions(ctx, sc, path, obj, nil)
	m.Unknown = sc.CaptureUnknown(path, obj, known)
	return m
}

func decodeMesh(ctx context.Context, sc *schema.Ctx, path string, obj gltfkit.Value) model.Mesh {
	known := schema.Fields("primitives", "weights", "name")
	var mesh model.Mesh
	forEachIndexed(obj, "primitives", func(i int, v gltfkit.Value) {
		mesh.Primitives = append(mesh.Primitives, decodePrimitive(ctx, sc, schema.IndexPath(path+"/primitives", i), v))
	})
	mesh.Extras = schema.Extras(obj)
	mesh.Extensions = decodeExtensions(ctx, sc, path, obj, nil)
	mesh.Unknown = sc.CaptureUnknown(path, obj, known)
	return mesh
}

var primitiveModeNames = map[string]int{
	"POINTS":         0,
	"LINES":          1,
	"LINE_LOOP":      2,
	"LINE_STRIP":     3,
	"TRIANGLES":      4,
	"TRIANGLE_STRIP": 5,
	"TRIANGLE_FAN":   6,
}

func decodePrimitive(ctx context.Context, sc *schema.Ctx, path string, obj gltfkit.Value) model.MeshPrimitive {
	known := schema.Fields("attributes", "indices", "mode", "material", "targets")
	prim := model.MeshPrimitive{
		Attributes: sc.IntMap(obj, "attributes"),
		Indices:    sc.Int(path, obj, "indices", model.NoIndex),
		Mode:       model.PrimitiveMode(sc.EnumInt(path, obj, "mode", primitiveModeNames, int(model.PrimitiveTriangles))),
	}
	if targetsVal, ok := schema.Field(obj, "targets"); ok && targetsVal.Kind() == gltfkit.KindArray {
		for _, t := range targetsVal.Array() {
			m := make(map[string]int, t.Len())
			if t.Kind() == gltfkit.KindObject {
				for _, k := range t.Keys() {
					fv, _ := t.GetValueForKey(k)
					m[k] = int(gltfkit.GetSafeNumber[int64](fv, -1))
				}
			}
			prim.Targets = append(prim.Targets, m)
		}
	}
	prim.Extras = schema.Extras(obj)
	prim.Extensions = decodeExtensions(ctx, sc, path, obj, nil)
	prim.Unknown = sc.CaptureUnknown(path, obj, known)
	return prim
}

func decodeNode(ctx context.Context, sc *schema.Ctx, path string, obj gltfkit.Value) model.Node {
	known := schema.Fields("matrix", "translation", "rotation", "scale", "mesh", "children", "name", "camera", "skin")
	n := model.Node{
		Translation: [3]float64{0, 0, 0},
		Rotation:    [4]float64{0, 0, 0, 1},
		Scale:       [3]float64{1, 1, 1},
		Mesh:        sc.Int(path, obj, "mesh", model.NoIndex),
	}
	if _, ok := schema.Field(obj, "matrix"); ok {
		n.HasMatrix = true
		m := sc.FloatArray(obj, "matrix")
		for i := 0; i < 16 && i < len(m); i++ {
			n.Matrix[i] = m[i]
		}
	} else {
		if t := sc.FloatArray(obj, "translation"); len(t) == 3 {
			n.Translation = [3]float64{t[0], t[1], t[2]}
		}
		if r := sc.FloatArray(obj, "rotation"); len(r) == 4 {
			n.Rotation = [4]float64{r[0], r[1], r[2], r[3]}
		}
		if s := sc.FloatArray(obj, "scale"); len(s) == 3 {
			n.Scale = [3]float64{s[0], s[1], s[2]}
		}
	}
	n.Children = sc.IntArray(path, obj, "children")
	n.Extras = schema.Extras(obj)
	n.Extensions = decodeExtensions(ctx, sc, path, obj, nil)
	n.Unknown = sc.CaptureUnknown(path, obj, known)
	return n
}

func decodeScene(sc *schema.Ctx, path string, obj gltfkit.Value) model.Scene {
	known := schema.Fields("nodes", "name")
	s := model.Scene{Nodes: sc.IntArray(path, obj, "nodes")}
	s.Extras = schema.Extras(obj)
	s.Unknown = sc.CaptureUnknown(path, obj, known)
	return s
}
