package gltfkit

import (
	"io"
	"strconv"
	"strings"
	"sync"

	eng "github.com/oriongate/gltfkit/internal/engine"
	jsonsrc "github.com/oriongate/gltfkit/source/json"
)

// TokenKind enumerates JSON lexical event kinds (spec §4.1).
type TokenKind int

const (
	TokenBeginObject TokenKind = iota
	TokenEndObject
	TokenBeginArray
	TokenEndArray
	TokenKey
	TokenString
	TokenNumber
	TokenBool
	TokenNull
)

// Token describes a lexical event in the input stream. Offset records the
// byte position when known (-1 otherwise). Number is kept as decimal text
// so the Value builder can choose int64, uint64, or float64 without an
// intermediate lossy conversion.
type Token struct {
	Kind   TokenKind
	String string
	Number string
	Bool   bool
	Offset int64
}

// Source abstracts over polymorphic JSON input sources (bytes or a
// streaming reader), decoupling the rest of the reader from the
// particular JSON library in use.
type Source interface {
	NextToken() (Token, error)
	Location() int64 // byte offset; -1 if unknown
}

// JSONDriver converts JSON input into a Source via a pluggable SPI. The
// default implementation is based on encoding/json and may be swapped
// with SetJSONDriver — for example to the goccy/go-json-backed driver in
// source/gojson, built with the gojson build tag.
type JSONDriver interface {
	NewReader(r io.Reader) Source
	NewBytes(b []byte) Source
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = defaultJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the default encoding/json-backed driver.
func UseDefaultJSONDriver() {
	jsonDriverMu.Lock()
	currentJSONDriver = defaultJSONDriver{}
	jsonDriverMu.Unlock()
}

func getJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

// defaultJSONDriver wraps the encoding/json implementation.
type defaultJSONDriver struct{}

func (defaultJSONDriver) NewReader(r io.Reader) Source {
	return &engineSourceAdapter{inner: jsonsrc.NewReader(r)}
}
func (defaultJSONDriver) NewBytes(b []byte) Source {
	return &engineSourceAdapter{inner: jsonsrc.NewBytes(b)}
}
func (defaultJSONDriver) Name() string { return "encoding/json" }

// JSONReader wraps an io.Reader as a JSON Source.
func JSONReader(r io.Reader) Source { return getJSONDriver().NewReader(r) }

// JSONBytes wraps a byte slice as a JSON Source.
func JSONBytes(b []byte) Source { return getJSONDriver().NewBytes(b) }

// SourceFromEngine wraps an internal engine.TokenSource as a Source.
func SourceFromEngine(inner eng.TokenSource) Source {
	return &engineSourceAdapter{inner: inner}
}

// EnforceSource wraps a Source with runtime enforcement (duplicate keys,
// max depth, max bytes) derived from Options. It is a no-op wrapper when
// every limit is disabled.
//
// The checks run directly over this package's own Token stream rather
// than a second copy of the same state machine in internal/engine — the
// lexical layer there exists purely to get bytes into Token/Kind form
// for whichever JSONDriver is active; once a Source exists, enforcement
// is a policy concern of this package, not of the drivers underneath it.
func EnforceSource(s Source, opt Options, sink func(Issue)) Source {
	if opt.MaxDepth == 0 && opt.MaxBytes == 0 && !opt.WarnOnDuplicateKeys {
		return s
	}
	return &enforcingSource{inner: s, opt: opt, sink: sink}
}

type enforceContainerKind int

const (
	enforceObject enforceContainerKind = iota
	enforceArray
)

// enforceFrame is one level of open object/array nesting tracked while
// streaming, enough to classify the next token's path and (for objects)
// detect a repeated key.
type enforceFrame struct {
	kind         enforceContainerKind
	keys         map[string]struct{}
	expectingKey bool
	path         string
	nextIndex    int
	pendingKey   string
}

// enforcingSource wraps a Source with streaming duplicate-key detection,
// max-nesting-depth, and max-consumed-bytes limits derived from Options.
type enforcingSource struct {
	inner Source
	opt   Options
	sink  func(Issue)
	stack []enforceFrame
	depth int
}

func (e *enforcingSource) top() *enforceFrame {
	if len(e.stack) == 0 {
		return nil
	}
	return &e.stack[len(e.stack)-1]
}

func (e *enforcingSource) popFrame() {
	if n := len(e.stack); n > 0 {
		e.stack = e.stack[:n-1]
	}
	if e.depth > 0 {
		e.depth--
	}
	if top := e.top(); top != nil && top.kind == enforceObject && !top.expectingKey {
		top.expectingKey = true
		top.pendingKey = ""
	}
}

func (e *enforcingSource) currentPath(tok Token) string {
	top := e.top()
	if top == nil {
		if tok.Kind == TokenKey {
			return joinJSONPointer("", tok.String)
		}
		return ""
	}
	switch tok.Kind {
	case TokenKey:
		return joinJSONPointer(top.path, tok.String)
	case TokenBeginObject, TokenBeginArray, TokenString, TokenNumber, TokenBool, TokenNull:
		switch top.kind {
		case enforceArray:
			p := joinJSONPointer(top.path, strconv.Itoa(top.nextIndex))
			top.nextIndex++
			return p
		case enforceObject:
			if top.pendingKey != "" || !top.expectingKey {
				return joinJSONPointer(top.path, top.pendingKey)
			}
			return top.path
		}
	}
	return top.path
}

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinJSONPointer(base, token string) string {
	if base == "" {
		return "/" + jsonPointerEscaper.Replace(token)
	}
	return base + "/" + jsonPointerEscaper.Replace(token)
}

func (e *enforcingSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}

	path := e.currentPath(tok)

	switch tok.Kind {
	case TokenBeginObject:
		e.stack = append(e.stack, enforceFrame{kind: enforceObject, keys: make(map[string]struct{}), expectingKey: true, path: path})
		e.depth++
		if e.opt.MaxDepth > 0 && e.depth > e.opt.MaxDepth {
			return Token{}, Issues{{Path: path, Code: CodeMalformedJson, Severity: SeverityFatal, Hint: "max depth exceeded", Offset: tok.Offset}}
		}
	case TokenEndObject, TokenEndArray:
		e.popFrame()
	case TokenBeginArray:
		e.stack = append(e.stack, enforceFrame{kind: enforceArray, path: path})
		e.depth++
		if e.opt.MaxDepth > 0 && e.depth > e.opt.MaxDepth {
			return Token{}, Issues{{Path: path, Code: CodeMalformedJson, Severity: SeverityFatal, Hint: "max depth exceeded", Offset: tok.Offset}}
		}
	case TokenKey:
		if top := e.top(); top != nil && top.kind == enforceObject && top.expectingKey {
			if e.opt.WarnOnDuplicateKeys {
				if _, dup := top.keys[tok.String]; dup && e.sink != nil {
					e.sink(warningAt(path, CodeUnexpectedJsonShape, map[string]any{"detail": "key '" + tok.String + "' duplicated"}))
				}
			}
			top.keys[tok.String] = struct{}{}
			top.expectingKey = false
			top.pendingKey = tok.String
		}
	case TokenString, TokenNumber, TokenBool, TokenNull:
		if top := e.top(); top != nil && top.kind == enforceObject && !top.expectingKey {
			top.expectingKey = true
			top.pendingKey = ""
		}
	}

	if e.opt.MaxBytes > 0 {
		if off := e.Location(); off >= 0 && off > e.opt.MaxBytes {
			return Token{}, Issues{{Path: path, Code: CodeMalformedJson, Severity: SeverityFatal, Hint: "max bytes exceeded", Offset: off}}
		}
	}

	return tok, nil
}

func (e *enforcingSource) Location() int64 { return e.inner.Location() }

type engineSourceAdapter struct {
	inner eng.TokenSource
}

func (s *engineSourceAdapter) NextToken() (Token, error) {
	t, err := s.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: fromEngineKind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}
func (s *engineSourceAdapter) Location() int64 { return s.inner.Location() }

func fromEngineKind(k eng.Kind) TokenKind {
	switch k {
	case eng.KindBeginObject:
		return TokenBeginObject
	case eng.KindEndObject:
		return TokenEndObject
	case eng.KindBeginArray:
		return TokenBeginArray
	case eng.KindEndArray:
		return TokenEndArray
	case eng.KindKey:
		return TokenKey
	case eng.KindString:
		return TokenString
	case eng.KindNumber:
		return TokenNumber
	case eng.KindBool:
		return TokenBool
	default:
		return TokenNull
	}
}

// EngineTokenSource adapts a public Source back into an internal
// engine.TokenSource, for a custom JSONDriver that wants to reuse
// internal/engine-based tooling on top of a Source it didn't build
// from this package's own adapters.
func EngineTokenSource(s Source) eng.TokenSource { return &toEngineAdapter{s} }

type toEngineAdapter struct{ s Source }

func (a *toEngineAdapter) NextToken() (eng.Token, error) {
	t, err := a.s.NextToken()
	if err != nil {
		return eng.Token{}, err
	}
	return eng.Token{Kind: toEngineKind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}
func (a *toEngineAdapter) Location() int64 { return a.s.Location() }

func toEngineKind(k TokenKind) eng.Kind {
	switch k {
	case TokenBeginObject:
		return eng.KindBeginObject
	case TokenEndObject:
		return eng.KindEndObject
	case TokenBeginArray:
		return eng.KindBeginArray
	case TokenEndArray:
		return eng.KindEndArray
	case TokenKey:
		return eng.KindKey
	case TokenString:
		return eng.KindString
	case TokenNumber:
		return eng.KindNumber
	case TokenBool:
		return eng.KindBool
	default:
		return eng.KindNull
	}
}
