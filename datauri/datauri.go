// Package datauri resolves "data:" URIs embedded in Buffer and Image URI
// fields (spec §4.6).
package datauri

import (
	"encoding/base64"
	"strings"
)

const scheme = "data:"

// IsDataURI reports whether uri begins with the literal "data:".
func IsDataURI(uri string) bool {
	return strings.HasPrefix(uri, scheme)
}

// Decode parses uri as "data:[<mediatype>][;base64],<payload>" and
// returns the decoded payload bytes and declared media type. External
// URIs (http(s), relative paths) are the caller's concern — Decode
// assumes IsDataURI(uri) already holds.
func Decode(uri string) (data []byte, mediaType string, ok bool) {
	rest := strings.TrimPrefix(uri, scheme)
	comma := strings.IndexByte(rest, ',')
	if comma < 0 {
		return nil, "", false
	}
	meta := rest[:comma]
	payload := rest[comma+1:]

	isBase64 := false
	if strings.HasSuffix(meta, ";base64") {
		isBase64 = true
		meta = strings.TrimSuffix(meta, ";base64")
	}
	mediaType = meta

	if !isBase64 {
		decoded, err := unescapePercent(payload)
		if err != nil {
			return nil, mediaType, false
		}
		return decoded, mediaType, true
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// Some producers emit unpadded base64; retry with RawStdEncoding.
		decoded, err = base64.RawStdEncoding.DecodeString(payload)
		if err != nil {
			return nil, mediaType, false
		}
	}
	return decoded, mediaType, true
}

// unescapePercent percent-decodes a non-base64 data URI payload. Distinct
// from net/url's QueryUnescape, which treats "+" as a space — not wanted
// here.
func unescapePercent(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' && i+2 < len(s) {
			hi, okHi := hexVal(s[i+1])
			lo, okLo := hexVal(s[i+2])
			if okHi && okLo {
				out = append(out, hi<<4|lo)
				i += 2
				continue
			}
		}
		out = append(out, c)
	}
	return out, nil
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
