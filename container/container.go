// Package container parses the binary envelope (spec §4.5): a 12-byte
// header followed by one or more 4-byte-aligned chunks, the first of
// which must carry the JSON document body.
package container

import (
	"encoding/binary"

	gltfkit "github.com/oriongate/gltfkit"
	"github.com/oriongate/gltfkit/i18n"
)

const (
	magic       uint32 = 0x46546c67 // "glTF", little-endian byte order matches the wire layout
	kindJSON    uint32 = 0x4e4f534a // "JSON"
	kindBIN     uint32 = 0x004e4942 // "BIN\x00"
	headerSize         = 12
	chunkHeader        = 8
)

// Envelope is the parsed binary container: the JSON chunk's bytes plus
// every other chunk found, in file order, for chunks the caller may want
// (currently only the first BIN chunk is consumed by the reader).
type Envelope struct {
	Version uint32
	JSON    []byte
	Chunks  []Chunk
}

// Chunk is one length-prefixed, kind-tagged, 4-byte-aligned block
// following the header. Kind is the raw 32-bit tag; Payload excludes the
// alignment padding.
type Chunk struct {
	Kind    uint32
	Payload []byte
}

// IsBinary reports whether the first four bytes of b equal the magic
// constant (spec §6: "the first four bytes equal the magic constant ⇒
// binary; otherwise treated as textual JSON").
func IsBinary(b []byte) bool {
	if len(b) < 4 {
		return false
	}
	return binary.LittleEndian.Uint32(b[:4]) == magic
}

// FirstBIN returns the payload of the first chunk of kind BIN, if any.
func (e Envelope) FirstBIN() ([]byte, bool) {
	for _, c := range e.Chunks {
		if c.Kind == kindBIN {
			return c.Payload, true
		}
	}
	return nil, false
}

// Parse splits a binary envelope into its JSON chunk and remaining
// chunks. Fatal per spec §4.5: CodeInvalidMagic, CodeUnsupportedVersion,
// CodeLengthMismatch (declared length != span length), CodeTruncatedChunk
// (a chunk declares a length reaching past the envelope), and
// CodeMissingRequiredChunk when the first chunk is absent or not JSON.
func Parse(b []byte) (Envelope, gltfkit.Issues) {
	if len(b) < headerSize {
		return Envelope{}, gltfkit.Issues{fatalIssue(gltfkit.CodeTruncatedChunk, "envelope shorter than the 12-byte header")}
	}
	gotMagic := binary.LittleEndian.Uint32(b[0:4])
	if gotMagic != magic {
		return Envelope{}, gltfkit.Issues{fatalIssue(gltfkit.CodeInvalidMagic, "magic constant mismatch")}
	}
	version := binary.LittleEndian.Uint32(b[4:8])
	if version != 2 {
		return Envelope{}, gltfkit.Issues{fatalIssue(gltfkit.CodeUnsupportedVersion, "unsupported binary container version")}
	}
	declaredLen := binary.LittleEndian.Uint32(b[8:12])
	if int(declaredLen) != len(b) {
		return Envelope{}, gltfkit.Issues{fatalIssue(gltfkit.CodeLengthMismatch, "declared length does not match input length")}
	}

	env := Envelope{Version: version}
	off := headerSize
	first := true
	for off+chunkHeader <= len(b) {
		chunkLen := binary.LittleEndian.Uint32(b[off : off+4])
		chunkKind := binary.LittleEndian.Uint32(b[off+4 : off+8])
		payloadStart := off + chunkHeader
		payloadEnd := payloadStart + int(chunkLen)
		if chunkLen > uint32(len(b)) || payloadEnd > len(b) {
			return Envelope{}, gltfkit.Issues{fatalIssue(gltfkit.CodeTruncatedChunk, "chunk declares length beyond the envelope")}
		}
		payload := b[payloadStart:payloadEnd]

		if first {
			if chunkKind != kindJSON {
				return Envelope{}, gltfkit.Issues{fatalIssue(gltfkit.CodeMissingRequiredChunk, "first chunk must be JSON")}
			}
			env.JSON = payload
			first = false
		} else {
			env.Chunks = append(env.Chunks, Chunk{Kind: chunkKind, Payload: payload})
		}

		// Chunks are 4-byte aligned; the padding is not reflected in
		// chunkLen so skip forward to the next 4-byte boundary.
		next := payloadEnd
		if rem := next % 4; rem != 0 {
			next += 4 - rem
		}
		off = next
	}

	if first {
		return Envelope{}, gltfkit.Issues{fatalIssue(gltfkit.CodeMissingRequiredChunk, "no JSON chunk present")}
	}
	return env, nil
}

func fatalIssue(code, hint string) gltfkit.Issue {
	return gltfkit.Issue{Path: "", Code: code, Severity: gltfkit.SeverityFatal, Message: i18n.T(code, nil), Hint: hint, Offset: -1}
}
