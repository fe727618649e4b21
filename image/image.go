package image

import (
	"bytes"

	"github.com/oriongate/gltfkit/model"
)

const mimeCompressedTexture = "image/ktx2"

// KnownMimeType reports whether mimeType is recognized by this package's
// decoder dispatch — the compressed-texture container or a registered
// raster decoder (spec §4.7 step 1) — as opposed to a MIME type this
// package has simply never heard of.
func KnownMimeType(mimeType string) bool {
	return mimeType == mimeCompressedTexture || IsKnownRasterMimeType(mimeType)
}

// PixelResult wraps a DecodedImage with a flag noting which decode path
// produced it, useful for diagnostics.
type PixelResult struct {
	Decoded    *model.DecodedImage
	Compressed bool
}

// Decode routes to the compressed-texture container decoder or a raster
// decoder depending on declared MIME type / magic bytes (spec §4.7).
// transcode and targets are only consulted for the compressed-texture
// path; raster decoding never calls them.
func Decode(mimeType string, data []byte, targets []TranscodeTarget, transcode Transcoder) (*PixelResult, error) {
	if mimeType == mimeCompressedTexture || bytes.HasPrefix(data, []byte(containerMagic)) {
		img, err := DecodeCompressed(data, targets, transcode)
		if err != nil {
			return nil, err
		}
		return &PixelResult{Decoded: img, Compressed: true}, nil
	}
	img, err := DecodeRaster(mimeType, data)
	if err != nil {
		return nil, err
	}
	return &PixelResult{Decoded: img, Compressed: false}, nil
}
