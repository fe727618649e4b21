package gltfkit

import (
	"io"
	"math"
	"strconv"
)

// BuildValue consumes s to exhaustion and materializes a single Value
// tree (spec §4.1/§4.2/SPEC_FULL §4: the JSON event source is consumed
// exactly once per Read call to build the Value tree that schema
// handlers then walk). Returns a CodeMalformedJson-tagged error,
// carrying the byte offset, on any lexical error.
func BuildValue(s Source) (Value, error) {
	b := &valueBuilder{src: s}
	return b.run()
}

type buildFrame struct {
	isArray       bool
	arr           []Value
	keys          []string
	vals          []Value
	pendingKey    string
	hasPendingKey bool
}

type valueBuilder struct {
	src   Source
	stack []buildFrame
	root  Value
	done  bool
}

func (b *valueBuilder) run() (Value, error) {
	for !b.done {
		tok, err := b.src.NextToken()
		if err != nil {
			if err == io.EOF {
				break
			}
			return Value{}, Issues{{
				Code: CodeMalformedJson, Severity: SeverityFatal, Offset: b.src.Location(), Cause: err,
			}}
		}
		if err := b.feed(tok); err != nil {
			return Value{}, err
		}
	}
	if len(b.stack) != 0 {
		return Value{}, Issues{{Code: CodeMalformedJson, Severity: SeverityFatal, Offset: b.src.Location(), Hint: "unterminated object or array"}}
	}
	return b.root, nil
}

func (b *valueBuilder) feed(tok Token) error {
	switch tok.Kind {
	case TokenBeginObject:
		b.stack = append(b.stack, buildFrame{})
	case TokenBeginArray:
		b.stack = append(b.stack, buildFrame{isArray: true})
	case TokenEndObject:
		if len(b.stack) == 0 || b.stack[len(b.stack)-1].isArray {
			return Issues{{Code: CodeMalformedJson, Severity: SeverityFatal, Offset: tok.Offset, Hint: "unmatched '}'"}}
		}
		top := b.stack[len(b.stack)-1]
		b.stack = b.stack[:len(b.stack)-1]
		b.emit(NewObjectValue(top.keys, top.vals))
	case TokenEndArray:
		if len(b.stack) == 0 || !b.stack[len(b.stack)-1].isArray {
			return Issues{{Code: CodeMalformedJson, Severity: SeverityFatal, Offset: tok.Offset, Hint: "unmatched ']'"}}
		}
		top := b.stack[len(b.stack)-1]
		b.stack = b.stack[:len(b.stack)-1]
		b.emit(ArrayValue(top.arr))
	case TokenKey:
		if len(b.stack) == 0 || b.stack[len(b.stack)-1].isArray {
			return Issues{{Code: CodeMalformedJson, Severity: SeverityFatal, Offset: tok.Offset, Hint: "key outside object"}}
		}
		top := &b.stack[len(b.stack)-1]
		top.pendingKey = tok.String
		top.hasPendingKey = true
	case TokenString:
		b.emit(StringValue(tok.String))
	case TokenBool:
		b.emit(BoolValue(tok.Bool))
	case TokenNull:
		b.emit(NullValue())
	case TokenNumber:
		b.emit(numberValue(tok.Number))
	}
	return nil
}

func (b *valueBuilder) emit(v Value) {
	if len(b.stack) == 0 {
		b.root = v
		b.done = true
		return
	}
	top := &b.stack[len(b.stack)-1]
	if top.isArray {
		top.arr = append(top.arr, v)
		return
	}
	top.keys = append(top.keys, top.pendingKey)
	top.vals = append(top.vals, v)
	top.hasPendingKey = false
}

// numberValue picks the narrowest lossless representation for a decimal
// numeral: int64 when it parses as a signed integer, uint64 when it only
// fits unsigned 64-bit range, int64 again when it is written as a double
// (e.g. "4.0" or "1e2") but has no fractional component and fits int64,
// otherwise float64 (spec §6: "numeric values that fit a signed 64-bit
// integer and have no fractional component are stored as integer,
// otherwise as double").
func numberValue(s string) Value {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntValue(i)
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return UintValue(u)
	}
	f, _ := strconv.ParseFloat(s, 64)
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return IntValue(int64(f))
	}
	return FloatValue(f)
}
