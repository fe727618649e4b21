// Package json is the default JSONDriver: a TokenSource built directly
// on encoding/json.Decoder. source.go selects it unless the gojson build
// tag swaps in source/gojson's goccy-backed driver instead.
package json

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	eng "github.com/oriongate/gltfkit/internal/engine"
)

// frameKind distinguishes the two container shapes a standardSource can
// be nested inside, so a string token can be classified as a key or a
// value without tracking the full document path.
type frameKind int

const (
	frameObject frameKind = iota
	frameArray
)

// frame is one level of open-container state. Duplicate-key detection
// is not tracked here: EnforceSource wraps the resulting Source with a
// check that warns on repeated keys, so a frame only needs to know whether the next
// string belongs in key position.
type frame struct {
	kind         frameKind
	expectingKey bool
}

// standardSource adapts encoding/json.Decoder's token stream into
// engine.TokenSource, re-deriving object/array nesting from the bare
// delimiter stream the stdlib decoder emits.
type standardSource struct {
	dec        *json.Decoder
	stack      []frame
	lastOffset int64
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON.
func NewReader(r io.Reader) eng.TokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &standardSource{dec: dec, lastOffset: -1}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *standardSource) top() *frame {
	if len(s.stack) == 0 {
		return nil
	}
	return &s.stack[len(s.stack)-1]
}

// afterValue flips the enclosing object frame, if any, back to
// expecting a key. Called once after every scalar or closing bracket,
// since each of those completes either a key's value or a nested
// container that itself stood in for one.
func (s *standardSource) afterValue() {
	if top := s.top(); top != nil && top.kind == frameObject && !top.expectingKey {
		top.expectingKey = true
	}
}

func (s *standardSource) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
}

func (s *standardSource) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		if err == io.EOF {
			return eng.Token{}, io.EOF
		}
		return eng.Token{}, err
	}
	s.lastOffset = s.dec.InputOffset()

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{kind: frameObject, expectingKey: true})
			return eng.Token{Kind: eng.KindBeginObject, Offset: s.lastOffset}, nil
		case '}':
			s.pop()
			s.afterValue()
			return eng.Token{Kind: eng.KindEndObject, Offset: s.lastOffset}, nil
		case '[':
			s.stack = append(s.stack, frame{kind: frameArray})
			return eng.Token{Kind: eng.KindBeginArray, Offset: s.lastOffset}, nil
		case ']':
			s.pop()
			s.afterValue()
			return eng.Token{Kind: eng.KindEndArray, Offset: s.lastOffset}, nil
		}
	case string:
		if top := s.top(); top != nil && top.kind == frameObject && top.expectingKey {
			top.expectingKey = false
			return eng.Token{Kind: eng.KindKey, String: v, Offset: s.lastOffset}, nil
		}
		s.afterValue()
		return eng.Token{Kind: eng.KindString, String: v, Offset: s.lastOffset}, nil
	case bool:
		s.afterValue()
		return eng.Token{Kind: eng.KindBool, Bool: v, Offset: s.lastOffset}, nil
	case json.Number:
		s.afterValue()
		return eng.Token{Kind: eng.KindNumber, Number: string(v), Offset: s.lastOffset}, nil
	case float64:
		s.afterValue()
		return eng.Token{Kind: eng.KindNumber, Number: formatFloat(v), Offset: s.lastOffset}, nil
	case nil:
		s.afterValue()
		return eng.Token{Kind: eng.KindNull, Offset: s.lastOffset}, nil
	}

	s.afterValue()
	return eng.Token{Kind: eng.KindNull, Offset: s.lastOffset}, nil
}

func (s *standardSource) Location() int64 { return s.lastOffset }

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
