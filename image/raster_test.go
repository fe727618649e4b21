package image_test

import (
	"bytes"
	goimage "image"
	"image/color"
	"image/png"
	"testing"

	"github.com/oriongate/gltfkit/image"
)

func pngFixture(t *testing.T, w, h int) []byte {
	t.Helper()
	img := goimage.NewRGBA(goimage.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: byte(x), G: byte(y), B: 1, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode PNG fixture: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeRaster_PNGByDeclaredMime(t *testing.T) {
	data := pngFixture(t, 3, 2)
	out, err := image.DecodeRaster("image/png", data)
	if err != nil {
		t.Fatalf("DecodeRaster: %v", err)
	}
	if out.Width != 3 || out.Height != 2 {
		t.Fatalf("dims = %dx%d, want 3x2", out.Width, out.Height)
	}
	if out.Channels != 4 {
		t.Fatalf("channels = %d, want 4", out.Channels)
	}
	if len(out.Pixels) != 3*2*4 {
		t.Fatalf("pixel buffer size = %d, want %d", len(out.Pixels), 3*2*4)
	}
	if len(out.MipPositions) != 0 {
		t.Fatalf("raster decode must not populate mip levels")
	}
}

func TestDecodeRaster_SniffsWhenNoMimeDeclared(t *testing.T) {
	data := pngFixture(t, 2, 2)
	out, err := image.DecodeRaster("", data)
	if err != nil {
		t.Fatalf("DecodeRaster with magic sniffing: %v", err)
	}
	if out.Width != 2 || out.Height != 2 {
		t.Fatalf("dims = %dx%d", out.Width, out.Height)
	}
}

func TestDecodeRaster_UnrecognizedPayloadFails(t *testing.T) {
	_, err := image.DecodeRaster("image/webp-but-not-really", []byte("not an image"))
	if err == nil {
		t.Fatalf("expected failure for unrecognized payload")
	}
}

func TestDecode_RoutesRasterVsCompressed(t *testing.T) {
	data := pngFixture(t, 2, 2)
	out, err := image.Decode("image/png", data, nil, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.Compressed {
		t.Fatalf("expected raster path, got Compressed=true")
	}
	if out.Decoded.Width != 2 {
		t.Fatalf("width = %d", out.Decoded.Width)
	}
}
