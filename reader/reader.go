// Package reader assembles the core's components — the JSON/binary
// front end, entity decoding, URI resolution, image decoding, mesh
// decompression, and RTC recentering — into the two operations spec §6
// exposes as the library surface: Read and ReadImage.
//
// It lives in its own package rather than the root gltfkit package
// because it must import meshcodec, image, and internal/passes, each of
// which imports gltfkit for Value/Issue/ExtensionDecodeFunc — the same
// cycle source/driver_default_gojson.go avoids by living outside the
// root package it configures.
package reader

import (
	"context"

	gltfkit "github.com/oriongate/gltfkit"
	"github.com/oriongate/gltfkit/container"
	"github.com/oriongate/gltfkit/datauri"
	"github.com/oriongate/gltfkit/internal/decode"
	"github.com/oriongate/gltfkit/internal/passes"
	"github.com/oriongate/gltfkit/internal/schema"
	"github.com/oriongate/gltfkit/image"
	"github.com/oriongate/gltfkit/meshcodec"
	"github.com/oriongate/gltfkit/model"
)

const (
	dracoExtensionName   = "KHR_draco_mesh_compression"
	meshoptExtensionName = "EXT_meshopt_compression"
	rtcExtensionName     = "CESIUM_RTC"
)

// Reader holds options and the extension registry for one or more Read /
// ReadImage calls (spec §5: safe for concurrent use across distinct
// invocations as long as no thread mutates Options concurrently with a
// read). The mesh/image codec fields are the external collaborators
// spec §1 deliberately keeps out of the core; a nil codec makes its pass
// a no-op.
type Reader struct {
	Opt gltfkit.Options

	DracoCodec   meshcodec.DracoCodec
	MeshoptCodec meshcodec.MeshoptCodec

	Transcoder       image.Transcoder
	TranscodeTargets []image.TranscodeTarget

	registry *gltfkit.Registry
}

// New returns a Reader with the spec's default Options and the built-in
// extension handlers (draco, meshopt, RTC) registered.
func New() *Reader {
	r := &Reader{Opt: gltfkit.DefaultOptions(), registry: gltfkit.NewRegistry()}
	r.registry.Register(dracoExtensionName, meshcodec.DecodeDracoExtension)
	r.registry.Register(meshoptExtensionName, meshcodec.DecodeMeshoptExtension)
	r.registry.Register(rtcExtensionName, passes.DecodeRTCExtension)
	return r
}

// SetExtensionState overrides a named extension's resolved state for all
// subsequent reads from this Reader (spec §6, §9: state is part of the
// reader instance, applies to subsequent reads only).
func (r *Reader) SetExtensionState(name string, state gltfkit.ExtensionState) {
	r.Opt.SetExtensionState(name, state)
}

// Result is Read's return shape: Model is present iff the envelope and
// top-level JSON parsed to a well-formed tree (spec §6), regardless of
// whether later passes produced warnings or errors.
type Result struct {
	Model  *model.Document
	Issues gltfkit.Issues
}

// Errors returns the Error/Fatal-severity subset of Issues.
func (r Result) Errors() gltfkit.Issues { return r.Issues.Errors() }

// Warnings returns the Warning-severity subset of Issues.
func (r Result) Warnings() gltfkit.Issues { return r.Issues.Warnings() }

// Read parses bytes as either a textual JSON document or a binary
// envelope (detected per §6) into a model.Document, running every
// post-parse pass in the fixed order from §5.
func (r *Reader) Read(data []byte) Result {
	var issues gltfkit.Issues

	jsonBytes := data
	var embeddedBIN []byte
	hasBIN := false

	if container.IsBinary(data) {
		env, iss := container.Parse(data)
		if len(iss) > 0 {
			return Result{Issues: iss}
		}
		jsonBytes = env.JSON
		if bin, ok := env.FirstBIN(); ok {
			embeddedBIN = bin
			hasBIN = true
		}
	}

	src := gltfkit.JSONBytes(jsonBytes)
	src = gltfkit.EnforceSource(src, r.Opt, func(i gltfkit.Issue) { issues = gltfkit.AppendIssues(issues, i) })

	root, err := gltfkit.BuildValue(src)
	if err != nil {
		if iss, ok := gltfkit.AsIssues(err); ok {
			return Result{Issues: gltfkit.AppendIssues(issues, iss...)}
		}
		return Result{Issues: gltfkit.AppendIssues(issues, gltfkit.Issue{Code: gltfkit.CodeMalformedJson, Severity: gltfkit.SeverityFatal, Cause: err})}
	}

	ctx := context.Background()
	sc := &schema.Ctx{Opt: r.Opt, Registry: r.registry}
	doc := decode.Document(ctx, sc, root)
	issues = gltfkit.AppendIssues(issues, sc.Issues...)

	r.resolveFirstBufferChunk(doc, embeddedBIN, hasBIN, &issues)
	r.resolveURIs(doc, &issues)
	r.decodeImages(doc, &issues)

	issues = gltfkit.AppendIssues(issues, meshcodec.RunPassA(doc, r.DracoCodec)...)
	issues = gltfkit.AppendIssues(issues, meshcodec.RunPassB(doc, r.MeshoptCodec)...)
	passes.RunRTCRecentering(doc)

	return Result{Model: doc, Issues: issues}
}

// resolveFirstBufferChunk implements §4.5/§9's Open Question: if the
// first Buffer has no declared URI, the embedded BIN chunk becomes its
// content; otherwise the URI wins and the BIN chunk is reported unused.
func (r *Reader) resolveFirstBufferChunk(doc *model.Document, bin []byte, hasBIN bool, issues *gltfkit.Issues) {
	if !hasBIN || len(doc.Buffers) == 0 {
		return
	}
	first := &doc.Buffers[0]
	if first.URI == "" {
		first.Data = bin
		first.Source = model.BufferSourceEmbeddedChunk
		return
	}
	*issues = gltfkit.AppendIssues(*issues, gltfkit.Issue{
		Path: "/buffers/0", Code: gltfkit.CodeUnexpectedJsonShape, Severity: gltfkit.SeverityWarning,
		Hint: "BIN chunk present but buffers[0] declares a URI; URI takes precedence and the chunk is unused", Offset: -1,
	})
}

// ImageResult is ReadImage's return shape.
type ImageResult struct {
	Image  *model.DecodedImage
	Issues gltfkit.Issues
}

// ReadImage decodes a standalone image payload with no surrounding
// document (spec §6).
func (r *Reader) ReadImage(data []byte, mimeType string) ImageResult {
	out, err := image.Decode(mimeType, data, r.TranscodeTargets, r.Transcoder)
	if err != nil {
		return ImageResult{Issues: gltfkit.Issues{{
			Code: gltfkit.CodeImageDecodeFailure, Severity: gltfkit.SeverityError, Hint: err.Error(), Offset: -1,
		}}}
	}
	return ImageResult{Image: out.Decoded}
}

func (r *Reader) resolveURIs(doc *model.Document, issues *gltfkit.Issues) {
	for i := range doc.Buffers {
		b := &doc.Buffers[i]
		if b.URI == "" || b.Data != nil {
			continue
		}
		if datauri.IsDataURI(b.URI) {
			if data, _, ok := datauri.Decode(b.URI); ok {
				b.Data = data
				b.Source = model.BufferSourceDataURI
				continue
			}
		}
		b.Source = model.BufferSourceExternalURI
	}
	for i := range doc.Images {
		img := &doc.Images[i]
		if img.URI == "" || img.Data != nil {
			continue
		}
		if datauri.IsDataURI(img.URI) {
			if data, mediaType, ok := datauri.Decode(img.URI); ok {
				img.Data = data
				if img.MimeType == "" {
					img.MimeType = mediaType
				}
			}
		}
	}
}

func (r *Reader) decodeImages(doc *model.Document, issues *gltfkit.Issues) {
	for i := range doc.Images {
		img := &doc.Images[i]
		path := schema.IndexPath("/images", i)

		payload := img.Data
		if payload == nil && img.BufferView >= 0 {
			if bytes, ok := bufferViewBytes(doc, img.BufferView); ok {
				payload = bytes
			}
		}
		if payload == nil {
			if img.URI != "" && !datauri.IsDataURI(img.URI) {
				*issues = gltfkit.AppendIssues(*issues, gltfkit.Issue{
					Path: path, Code: gltfkit.CodeExternalUriUnresolved, Severity: gltfkit.SeverityError, Offset: -1,
				})
			}
			continue
		}

		out, err := image.Decode(img.MimeType, payload, r.TranscodeTargets, r.Transcoder)
		if err != nil {
			code := gltfkit.CodeImageDecodeFailure
			if img.MimeType != "" && !image.KnownMimeType(img.MimeType) {
				code = gltfkit.CodeUnknownImageMimeType
			}
			*issues = gltfkit.AppendIssues(*issues, gltfkit.Issue{
				Path: path, Code: code, Severity: gltfkit.SeverityError, Hint: err.Error(), Offset: -1,
			})
			continue
		}
		img.Decoded = out.Decoded
	}
}

func bufferViewBytes(doc *model.Document, idx int) ([]byte, bool) {
	if idx < 0 || idx >= len(doc.BufferViews) {
		return nil, false
	}
	bv := doc.BufferViews[idx]
	if bv.Buffer < 0 || bv.Buffer >= len(doc.Buffers) {
		return nil, false
	}
	buf := doc.Buffers[bv.Buffer]
	if bv.ByteOffset+bv.ByteLength > len(buf.Data) {
		return nil, false
	}
	return buf.Data[bv.ByteOffset : bv.ByteOffset+bv.ByteLength], true
}
