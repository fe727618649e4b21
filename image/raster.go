// Package image decodes both ordinary raster images and the
// compressed-texture container (spec §4.7). Raster decoding is grounded
// on the stdlib image codecs registered the way toy80-gltf and
// SolarLune-tetra3d register them (blank imports for side-effect
// registration), plus golang.org/x/image's WEBP/TIFF decoders for the
// formats the stdlib doesn't cover.
package image

import (
	"bytes"
	goimage "image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"github.com/oriongate/gltfkit/model"
)

// rasterDecoder converts raw bytes into a decoded go image.Image.
type rasterDecoder func([]byte) (goimage.Image, error)

var byMimeType = map[string]rasterDecoder{
	"image/png":  decodeStdlib,
	"image/jpeg": decodeStdlib,
	"image/webp": decodeWebP,
	"image/tiff": decodeTIFF,
}

// magicSniffers runs in order when no MIME type is declared or the
// declared MIME type isn't recognized (spec §4.7 step 2: "sniff the
// first bytes against each decoder's magic").
var magicSniffers = []struct {
	magic   []byte
	decoder rasterDecoder
}{
	{[]byte{0x89, 'P', 'N', 'G'}, decodeStdlib},
	{[]byte{0xFF, 0xD8, 0xFF}, decodeStdlib},
	{[]byte("RIFF"), decodeWebPRIFF},
	{[]byte("II*\x00"), decodeTIFF},
	{[]byte("MM\x00*"), decodeTIFF},
}

func decodeStdlib(b []byte) (goimage.Image, error) {
	img, _, err := goimage.Decode(bytes.NewReader(b))
	return img, err
}

func decodeWebP(b []byte) (goimage.Image, error) { return webp.Decode(bytes.NewReader(b)) }

func decodeWebPRIFF(b []byte) (goimage.Image, error) {
	if len(b) < 12 || string(b[8:12]) != "WEBP" {
		return nil, errUnrecognized
	}
	return decodeWebP(b)
}

func decodeTIFF(b []byte) (goimage.Image, error) { return tiff.Decode(bytes.NewReader(b)) }

var errUnrecognized = errRaster("unrecognized raster image payload")

type errRaster string

func (e errRaster) Error() string { return string(e) }

// IsKnownRasterMimeType reports whether mimeType has a registered raster
// decoder in byMimeType — used to distinguish a declared-but-unrecognized
// MIME type (e.g. "image/tga") from one that was never declared at all.
func IsKnownRasterMimeType(mimeType string) bool {
	_, ok := byMimeType[mimeType]
	return ok
}

// DecodeRaster decodes a raster image by declared MIME type, falling
// back to magic sniffing, per §4.7's selection order. The returned
// DecodedImage always has 4 channels (RGBA), an 8-bit-per-channel pixel
// buffer in row-major order, and no mip levels.
func DecodeRaster(mimeType string, data []byte) (*model.DecodedImage, error) {
	if dec, ok := byMimeType[mimeType]; ok {
		if img, err := dec(data); err == nil {
			return toDecodedImage(img), nil
		}
	}
	for _, sniff := range magicSniffers {
		if bytes.HasPrefix(data, sniff.magic) {
			if img, err := sniff.decoder(data); err == nil {
				return toDecodedImage(img), nil
			}
		}
	}
	return nil, errUnrecognized
}

func toDecodedImage(img goimage.Image) *model.DecodedImage {
	b := img.Bounds()
	rgba := goimage.NewRGBA(goimage.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return &model.DecodedImage{
		Width:    b.Dx(),
		Height:   b.Dy(),
		Channels: 4,
		Pixels:   rgba.Pix,
	}
}
