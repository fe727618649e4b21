package reader_test

import (
	"encoding/base64"
	"encoding/binary"
	"testing"

	gltfkit "github.com/oriongate/gltfkit"
	"github.com/oriongate/gltfkit/meshcodec"
	"github.com/oriongate/gltfkit/model"
	"github.com/oriongate/gltfkit/reader"
)

// Scenario 1 (spec §8): one VEC2 Accessor whose min has 2 entries and
// whose max has 3 is reproduced verbatim, alongside a
// primitive with attributes and morph targets, and a top-level unknown
// key is captured.
func TestRead_AccessorMeshAndUnknownTopLevelKey(t *testing.T) {
	doc := []byte(`{
		"asset": {"version": "2.0"},
		"accessors": [
			{"count": 4, "componentType": 5121, "type": "VEC2", "min": [0, -1.2], "max": [1, 2.2, 3.3]}
		],
		"meshes": [
			{"primitives": [
				{"attributes": {"POSITION": 0, "NORMAL": 1}, "targets": [{"POSITION": 10, "NORMAL": 11}]}
			]}
		],
		"surprise": {"foo": true}
	}`)

	r := reader.New()
	result := r.Read(doc)
	if result.Model == nil {
		t.Fatalf("expected a model, got none; issues=%v", result.Issues)
	}
	if len(result.Errors()) != 0 {
		t.Fatalf("expected no errors, got %v", result.Errors())
	}
	acc := result.Model.Accessors[0]
	if acc.Count != 4 {
		t.Fatalf("count = %d, want 4", acc.Count)
	}
	if acc.ComponentType != model.ComponentTypeUnsignedByte {
		t.Fatalf("componentType = %v, want UNSIGNED_BYTE", acc.ComponentType)
	}
	if len(acc.Min) != 2 || len(acc.Max) != 3 {
		t.Fatalf("min/max lengths = %d/%d, want 2/3", len(acc.Min), len(acc.Max))
	}
	if acc.Min[0] != 0 || acc.Min[1] != -1.2 {
		t.Fatalf("min = %v", acc.Min)
	}
	if acc.Max[0] != 1 || acc.Max[1] != 2.2 || acc.Max[2] != 3.3 {
		t.Fatalf("max = %v", acc.Max)
	}
	prim := result.Model.Meshes[0].Primitives[0]
	if prim.Attributes["POSITION"] != 0 || prim.Attributes["NORMAL"] != 1 {
		t.Fatalf("attributes = %v", prim.Attributes)
	}
	if len(prim.Targets) != 1 || prim.Targets[0]["POSITION"] != 10 || prim.Targets[0]["NORMAL"] != 11 {
		t.Fatalf("targets = %v", prim.Targets)
	}
	surprise, ok := result.Model.Unknown["surprise"]
	if !ok {
		t.Fatalf("expected top-level unknown key \"surprise\" to be captured")
	}
	foo, ok := surprise.GetValueForKey("foo")
	if !ok || !foo.Bool() {
		t.Fatalf("surprise.foo = %v, want true", foo)
	}
}

// Scenario 2 (spec §8): whole-number doubles for integer-typed fields
// coerce silently; a fractional double warns and falls back to default.
func TestRead_NumericCoercionWholeVsFractionalDouble(t *testing.T) {
	whole := []byte(`{"asset":{"version":"2.0"},"accessors":[{"count": 4.0, "componentType": 5121.0}]}`)
	r := reader.New()
	result := r.Read(whole)
	if len(result.Warnings()) != 0 {
		t.Fatalf("expected no warnings for whole-number doubles, got %v", result.Warnings())
	}
	acc := result.Model.Accessors[0]
	if acc.Count != 4 || acc.ComponentType != model.ComponentTypeUnsignedByte {
		t.Fatalf("acc = %+v", acc)
	}

	fractional := []byte(`{"asset":{"version":"2.0"},"accessors":[{"count": 4, "componentType": 5121.1}]}`)
	result2 := reader.New().Read(fractional)
	if len(result2.Warnings()) == 0 {
		t.Fatalf("expected a warning for a fractional double in an integer field")
	}
}

// Scenario 3 (spec §8): KHR_draco_mesh_compression resolves per the
// registry's three states.
func TestRead_ExtensionThreeStateResolution(t *testing.T) {
	doc := []byte(`{
		"asset": {"version": "2.0"},
		"meshes": [
			{"primitives": [
				{"attributes": {"POSITION": 0}, "extensions": {"KHR_draco_mesh_compression": {"bufferView": 1, "attributes": {"POSITION": 0}}}}
			]}
		]
	}`)

	registered := reader.New().Read(doc)
	prim := registered.Model.Meshes[0].Primitives[0]
	ext, ok := prim.Extensions.Get("KHR_draco_mesh_compression")
	if !ok {
		t.Fatalf("expected a typed extension when Registered")
	}
	draco, ok := ext.(*meshcodec.DracoExtension)
	if !ok {
		t.Fatalf("expected *meshcodec.DracoExtension, got %T", ext)
	}
	if draco.BufferView != 1 || draco.Attributes["POSITION"] != 0 {
		t.Fatalf("draco = %+v", draco)
	}
	if _, ok := prim.Extensions.GetGeneric("KHR_draco_mesh_compression"); ok {
		t.Fatalf("did not expect a generic representation when Registered")
	}

	jsonOnlyReader := reader.New()
	jsonOnlyReader.SetExtensionState("KHR_draco_mesh_compression", 2) // ExtensionJsonOnly
	jsonOnly := jsonOnlyReader.Read(doc)
	prim2 := jsonOnly.Model.Meshes[0].Primitives[0]
	if _, ok := prim2.Extensions.Get("KHR_draco_mesh_compression"); ok {
		t.Fatalf("did not expect a typed extension when JsonOnly")
	}
	generic, ok := prim2.Extensions.GetGeneric("KHR_draco_mesh_compression")
	if !ok {
		t.Fatalf("expected a generic extension when JsonOnly")
	}
	bv, _ := generic.GetValueForKey("bufferView")
	if iv, ok := bv.SafeInt64(); !ok || iv != 1 {
		t.Fatalf("generic bufferView = %v", bv)
	}

	disabledReader := reader.New()
	disabledReader.SetExtensionState("KHR_draco_mesh_compression", 3) // ExtensionDisabled
	disabled := disabledReader.Read(doc)
	prim3 := disabled.Model.Meshes[0].Primitives[0]
	if _, ok := prim3.Extensions.Get("KHR_draco_mesh_compression"); ok {
		t.Fatalf("did not expect a typed extension when Disabled")
	}
	if _, ok := prim3.Extensions.GetGeneric("KHR_draco_mesh_compression"); ok {
		t.Fatalf("did not expect a generic extension when Disabled")
	}
}

// Scenario 4 (spec §8): an image with an unsupported MIME type still
// returns the model, with errors recorded.
func TestRead_UnknownImageMimeTypeStillReturnsModel(t *testing.T) {
	doc := []byte(`{"asset":{"version":"2.0"},"images":[{"mimeType":"image/x-totally-unsupported","uri":"data:image/x-totally-unsupported;base64,AAAA"}]}`)
	result := reader.New().Read(doc)
	if result.Model == nil {
		t.Fatalf("expected model present even with an undecodable image")
	}
	if len(result.Errors()) == 0 {
		t.Fatalf("expected an error for the undecodable image")
	}
	if result.Model.Images[0].Decoded != nil {
		t.Fatalf("expected the image's decoded data to remain unset")
	}
	errs := result.Errors()
	if errs[0].Code != gltfkit.CodeUnknownImageMimeType {
		t.Fatalf("expected CodeUnknownImageMimeType for a declared-but-unrecognized MIME type, got %s", errs[0].Code)
	}
}

// A missing MIME type that also fails magic sniffing is a different
// condition from a declared-but-unrecognized one: no MIME type was ever
// named, so the generic decode-failure code applies instead.
func TestRead_MissingImageMimeTypeReportsDecodeFailure(t *testing.T) {
	doc := []byte(`{
		"asset": {"version": "2.0"},
		"buffers": [{"byteLength": 4, "uri": "data:application/octet-stream;base64,AAAAAA=="}],
		"bufferViews": [{"buffer": 0, "byteOffset": 0, "byteLength": 4}],
		"images": [{"bufferView": 0}]
	}`)
	result := reader.New().Read(doc)
	errs := result.Errors()
	if len(errs) == 0 {
		t.Fatalf("expected an error for an undecodable image with no MIME type")
	}
	if errs[0].Code != gltfkit.CodeImageDecodeFailure {
		t.Fatalf("expected CodeImageDecodeFailure when no MIME type was declared, got %s", errs[0].Code)
	}
}

// A declared MIME type that IS recognized but whose payload is corrupt
// still reports the generic decode-failure code, not
// CodeUnknownImageMimeType — the type was known, only the bytes were bad.
func TestRead_RecognizedMimeTypeWithCorruptPayloadReportsDecodeFailure(t *testing.T) {
	doc := []byte(`{"asset":{"version":"2.0"},"images":[{"mimeType":"image/png","uri":"data:image/png;base64,AAAA"}]}`)
	result := reader.New().Read(doc)
	errs := result.Errors()
	if len(errs) == 0 {
		t.Fatalf("expected an error for a corrupt PNG payload")
	}
	if errs[0].Code != gltfkit.CodeImageDecodeFailure {
		t.Fatalf("expected CodeImageDecodeFailure for a recognized but corrupt MIME type, got %s", errs[0].Code)
	}
}

// Scenario 5 (spec §8): a binary envelope's BIN chunk becomes the first
// buffer's content when that buffer declares no URI.
func TestRead_BinaryEnvelopeFirstBufferFromBINChunk(t *testing.T) {
	binPayload := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	jsonBody := []byte(`{"asset":{"version":"2.0"},"buffers":[{"byteLength":8}]}`)
	data := buildGLB(jsonBody, binPayload)

	result := reader.New().Read(data)
	if result.Model == nil {
		t.Fatalf("expected model; issues=%v", result.Issues)
	}
	if string(result.Model.Buffers[0].Data) != string(binPayload) {
		t.Fatalf("buffer[0].Data = %v, want %v", result.Model.Buffers[0].Data, binPayload)
	}
}

// §9's Open Question policy: when the BIN chunk is present but the first
// buffer declares a URI, the URI wins and the chunk is reported unused.
func TestRead_BINChunkUnusedWhenBufferDeclaresURI(t *testing.T) {
	binPayload := []byte{9, 9, 9, 9}
	embedded := base64.StdEncoding.EncodeToString([]byte{5, 5, 5, 5})
	jsonBody := []byte(`{"asset":{"version":"2.0"},"buffers":[{"byteLength":4,"uri":"data:application/octet-stream;base64,` + embedded + `"}]}`)
	data := buildGLB(jsonBody, binPayload)

	result := reader.New().Read(data)
	if result.Model == nil {
		t.Fatalf("expected model; issues=%v", result.Issues)
	}
	if string(result.Model.Buffers[0].Data) != string([]byte{5, 5, 5, 5}) {
		t.Fatalf("expected URI-sourced data to win, got %v", result.Model.Buffers[0].Data)
	}
	if len(result.Warnings()) == 0 {
		t.Fatalf("expected a warning about the unused BIN chunk")
	}
}

// Scenario 6 (spec §8): CESIUM_RTC.center translates every scene root node.
func TestRead_RTCRecenteringAppliesToRootNodes(t *testing.T) {
	doc := []byte(`{
		"asset": {"version": "2.0"},
		"nodes": [{"translation": [1, 1, 1]}, {"translation": [0, 0, 0]}],
		"scenes": [{"nodes": [0]}],
		"scene": 0,
		"extensions": {"CESIUM_RTC": {"center": [6378137.0, 0.0, 0.0]}}
	}`)
	result := reader.New().Read(doc)
	if result.Model == nil {
		t.Fatalf("expected model; issues=%v", result.Issues)
	}
	root := result.Model.Nodes[0]
	if root.Translation[0] != 6378138.0 {
		t.Fatalf("root.Translation = %v, want x=6378138.0", root.Translation)
	}
	nonRoot := result.Model.Nodes[1]
	if nonRoot.Translation != [3]float64{0, 0, 0} {
		t.Fatalf("non-root node should be untouched, got %v", nonRoot.Translation)
	}
	if _, ok := result.Model.Extensions.Get("CESIUM_RTC"); ok {
		t.Fatalf("expected CESIUM_RTC extension to be removed after recentering")
	}
}

func TestRead_CaptureUnknownPropertiesDisabled(t *testing.T) {
	doc := []byte(`{"asset":{"version":"2.0"},"surprise":{"foo":true}}`)
	r := reader.New()
	r.Opt.CaptureUnknownProperties = false
	result := r.Read(doc)
	if result.Model == nil {
		t.Fatalf("expected model")
	}
	if len(result.Model.Unknown) != 0 {
		t.Fatalf("expected no unknown properties captured, got %v", result.Model.Unknown)
	}
}

func TestReadImage_StandaloneDecode(t *testing.T) {
	r := reader.New()
	res := r.ReadImage([]byte("not a real image"), "image/png")
	if res.Image != nil {
		t.Fatalf("expected decode failure for bogus payload")
	}
	if len(res.Issues) == 0 {
		t.Fatalf("expected an issue for a failed standalone image decode")
	}
}

func buildGLB(jsonBody, binPayload []byte) []byte {
	jsonChunk := glbChunk(0x4e4f534a, jsonBody)
	binChunk := glbChunk(0x004e4942, binPayload)
	body := append(jsonChunk, binChunk...)
	total := 12 + len(body)
	header := make([]byte, 12)
	binary.LittleEndian.PutUint32(header[0:], 0x46546c67)
	binary.LittleEndian.PutUint32(header[4:], 2)
	binary.LittleEndian.PutUint32(header[8:], uint32(total))
	return append(header, body...)
}

func glbChunk(kind uint32, payload []byte) []byte {
	padded := append([]byte{}, payload...)
	for len(padded)%4 != 0 {
		padded = append(padded, 0)
	}
	hdr := make([]byte, 8)
	binary.LittleEndian.PutUint32(hdr[0:], uint32(len(payload)))
	binary.LittleEndian.PutUint32(hdr[4:], kind)
	return append(hdr, padded...)
}
