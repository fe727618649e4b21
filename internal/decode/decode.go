// Package decode walks a Value tree into the typed model.Document graph
// (spec §4.3's schema handlers). Each entity decoder is built from
// internal/schema's table-driven field readers; the only bespoke code
// per entity is the list of known field names and how each maps to a
// Go struct field — not how defaulting, coercion, or unknown-property
// capture work, which are shared policy.
package decode

import (
	"context"

	gltfkit "github.com/oriongate/gltfkit"
	"github.com/oriongate/gltfkit/internal/schema"
	"github.com/oriongate/gltfkit/model"
)

// Document decodes the document root object into a model.Document.
func Document(ctx context.Context, sc *schema.Ctx, root gltfkit.Value) *model.Document {
	doc := &model.Document{Scene: model.NoIndex}
	if root.Kind() != gltfkit.KindObject {
		sc.Issues = gltfkit.AppendIssues(sc.Issues, gltfkit.Issue{
			Path: "/", Code: gltfkit.CodeUnexpectedJsonShape, Severity: gltfkit.SeverityError, Offset: -1,
		})
		return doc
	}

	known := schema.Fields(
		"asset", "buffers", "bufferViews", "accessors", "images", "samplers",
		"textures", "materials", "meshes", "nodes", "scenes", "scene",
		"extensionsUsed", "extensionsRequired",
	)
	doc.ExtensionsUsed = sc.StringArray(root, "extensionsUsed")
	doc.ExtensionsRequired = sc.StringArray(root, "extensionsRequired")
	doc.Scene = sc.Int("/", root, "scene", model.NoIndex)

	if assetObj, ok := schema.Field(root, "asset"); ok {
		doc.Asset = decodeAsset(sc, assetObj)
	}

	forEachIndexed(root, "buffers", func(i int, v gltfkit.Value) {
		doc.Buffers = append(doc.Buffers, decodeBuffer(ctx, sc, schema.IndexPath("/buffers", i), v))
	})
	forEachIndexed(root, "bufferViews", func(i int, v gltfkit.Value) {
		doc.BufferViews = append(doc.BufferViews, decodeBufferView(ctx, sc, schema.IndexPath("/bufferViews", i), v))
	})
	forEachIndexed(root, "accessors", func(i int, v gltfkit.Value) {
		doc.Accessors = append(doc.Accessors, decodeAccessor(ctx, sc, schema.IndexPath("/accessors", i), v))
	})
	forEachIndexed(root, "images", func(i int, v gltfkit.Value) {
		doc.Images = append(doc.Images, decodeImage(ctx, sc, schema.IndexPath("/images", i), v))
	})
	forEachIndexed(root, "samplers", func(i int, v gltfkit.Value) {
		doc.Samplers = append(doc.Samplers, decodeSampler(ctx, sc, schema.IndexPath("/samplers", i), v))
	})
	forEachIndexed(root, "textures", func(i int, v gltfkit.Value) {
		doc.Textures = append(doc.Textures, decodeTexture(ctx, sc, schema.IndexPath("/textures", i), v))
	})
	forEachIndexed(root, "materials", func(i int, v gltfkit.Value) {
		doc.Materials = append(doc.Materials, decodeMaterial(ctx, sc, schema.IndexPath("/materials", i), v))
	})
	forEachIndexed(root, "meshes", func(i int, v gltfkit.Value) {
		doc.Meshes = append(doc.Meshes, decodeMesh(ctx, sc, schema.IndexPath("/meshes", i), v))
	})
	forEachIndexed(root, "nodes", func(i int, v gltfkit.Value) {
		doc.Nodes = append(doc.Nodes, decodeNode(ctx, sc, schema.IndexPath("/nodes", i), v))
	})
	forEachIndexed(root, "scenes", func(i int, v gltfkit.Value) {
		doc.Scenes = append(doc.Scenes, decodeScene(sc, schema.IndexPath("/scenes", i), v))
	})

	doc.Extras = schema.Extras(root)
	doc.Extensions = decodeExtensions(ctx, sc, "/", root, doc.ExtensionsRequired)
	doc.Unknown = sc.CaptureUnknown("/", root, known)
	return doc
}

func forEachIndexed(obj gltfkit.Value, key string, fn func(i int, v gltfkit.Value)) {
	v, ok := schema.Field(obj, key)
	if !ok || v.Kind() != gltfkit.KindArray {
		return
	}
	for i, item := range v.Array() {
		fn(i, item)
	}
}

// decodeExtensions resolves every member of obj's "extensions" object
// through the registry, splitting the result into typed/generic storage
// per spec §4.4, and warns when a Disabled extension is also named in
// extensionsRequired (spec §7's UnknownExtensionNameInCriticalList).
func decodeExtensions(ctx context.Context, sc *schema.Ctx, path string, obj gltfkit.Value, extensionsRequired []string) model.Extensions {
	var out model.Extensions
	extObj, ok := schema.Field(obj, "extensions")
	if !ok || extObj.Kind() != gltfkit.KindObject {
		return out
	}
	for _, name := range extObj.Keys() {
		raw, _ := extObj.GetValueForKey(name)
		extPath := schema.ChildPath(schema.ChildPath(path, "extensions"), name)
		if sc.Registry != nil && sc.Registry.IsCritical(name, sc.Opt, extensionsRequired) {
			sc.Issues = gltfkit.AppendIssues(sc.Issues, gltfkit.Issue{
				Path: extPath, Code: gltfkit.CodeUnknownExtensionNameInCritical,
				Severity: gltfkit.SeverityWarning, Offset: -1,
			})
			continue
		}
		if sc.Registry == nil {
			out.Set(name, gltfkit.ExtensionJsonOnly, nil, raw)
			continue
		}
		result, state, iss := sc.Registry.Decode(ctx, name, extPath, raw, sc.Opt)
		sc.Issues = gltfkit.AppendIssues(sc.Issues, iss...)
		out.Set(name, state, result, raw)
	}
	return out
}

func decodeAsset(sc *schema.Ctx, obj gltfkit.Value) model.Asset {
	known := schema.Fields("version", "minVersion", "copyright", "generator")
	a := model.Asset{Version: sc.String(obj, "version", "")}
	a.Extras = schema.Extras(obj)
	a.Unknown = sc.CaptureUnknown("/asset", obj, known)
	return a
}
