package image

import (
	"encoding/binary"
	"errors"

	"github.com/oriongate/gltfkit/model"
)

// TranscodeTarget names a caller-selected output pixel format for block
// decompression, mirroring §6's read-image(bytes, ktx2-transcode-targets)
// parameter. The concrete block-decompression algorithm per target is an
// external collaborator (§1 Non-goals); this package only sequences which
// target to try.
type TranscodeTarget int

const (
	TargetRGBA8 TranscodeTarget = iota
	TargetBC7
	TargetASTC4x4
	TargetETC2RGBA
)

// Transcoder decodes one mip level's compressed bytes into a pixel
// buffer of levelWidth*levelHeight*channels bytes for the given target.
// Its internals (the actual block-decompression algorithm) are external;
// this package only calls it and sequences the result into the
// container's mip-position table.
type Transcoder func(levelData []byte, levelWidth, levelHeight, channels int, target TranscodeTarget) ([]byte, error)

var errBadContainer = errors.New("image: malformed compressed-texture container")

var errNoTranscoder = errors.New("image: no transcoder for compressed-texture container")

const containerMagic = "GLTFMIP1"

// DecodeCompressed parses the compressed-texture container and invokes
// transcode once per mip level, trying targets in order until one
// succeeds, to build a single decoded pixel buffer plus a mip-position
// table following §4.7's three cases.
func DecodeCompressed(data []byte, targets []TranscodeTarget, transcode Transcoder) (*model.DecodedImage, error) {
	if len(data) < len(containerMagic)+20 || string(data[:8]) != containerMagic {
		return nil, errBadContainer
	}
	off := 8
	width := int(binary.LittleEndian.Uint32(data[off:]))
	height := int(binary.LittleEndian.Uint32(data[off+4:]))
	channels := int(binary.LittleEndian.Uint32(data[off+8:]))
	levelCount := int(binary.LittleEndian.Uint32(data[off+12:]))
	mipHint := binary.LittleEndian.Uint32(data[off+16:]) != 0
	off += 20

	if levelCount < 1 {
		return nil, errBadContainer
	}

	levelSizes := make([]int, levelCount)
	for i := 0; i < levelCount; i++ {
		if off+4 > len(data) {
			return nil, errBadContainer
		}
		levelSizes[i] = int(binary.LittleEndian.Uint32(data[off:]))
		off += 4
	}

	out := &model.DecodedImage{Width: width, Height: height, Channels: channels}
	levelW, levelH := width, height
	for i := 0; i < levelCount; i++ {
		if off+levelSizes[i] > len(data) {
			return nil, errBadContainer
		}
		payload := data[off : off+levelSizes[i]]
		off += levelSizes[i]

		decoded, err := transcodeWithFallback(payload, levelW, levelH, channels, targets, transcode)
		if err != nil {
			return nil, err
		}
		start := len(out.Pixels)
		out.Pixels = append(out.Pixels, decoded...)

		if !(levelCount == 1 && mipHint) {
			out.MipPositions = append(out.MipPositions, model.MipPosition{ByteOffset: start, ByteSize: len(decoded)})
		}

		levelW = halve(levelW)
		levelH = halve(levelH)
	}
	return out, nil
}

func transcodeWithFallback(payload []byte, w, h, channels int, targets []TranscodeTarget, transcode Transcoder) ([]byte, error) {
	if transcode == nil {
		return nil, errNoTranscoder
	}
	if len(targets) == 0 {
		targets = []TranscodeTarget{TargetRGBA8}
	}
	var lastErr error
	for _, t := range targets {
		out, err := transcode(payload, w, h, channels, t)
		if err == nil {
			return out, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func halve(n int) int {
	if n <= 1 {
		return 1
	}
	return n / 2
}
