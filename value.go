package gltfkit

import "math"

// ValueKind identifies which variant a dynamic Value holds (spec §3's
// "Dynamic value" and §4.2's "Value tree").
type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindString
	KindArray
	KindObject
)

// Value is the dynamic, schema-less JSON representation used for `extras`,
// unknown properties, and extensions with no registered typed handler. It
// is a recursive sum type: null, bool, signed/unsigned 64-bit integer,
// double, string, ordered array, or ordered string-keyed map.
//
// Numeric values distinguish KindInt/KindUint/KindFloat rather than
// normalizing everything to float64, so GetSafeNumber can offer lossless
// coercion instead of laundering every number through a lossy float.
type Value struct {
	kind ValueKind
	b    bool
	i    int64
	u    uint64
	f    float64
	s    string
	arr  []Value
	obj  *orderedObject
}

// orderedObject is a string-keyed map that preserves insertion order, as
// required by spec §3 ("Arrays and objects preserve insertion order").
type orderedObject struct {
	keys  []string
	vals  []Value
	index map[string]int
}

func newOrderedObject() *orderedObject {
	return &orderedObject{index: make(map[string]int)}
}

func (o *orderedObject) set(key string, v Value) {
	if i, ok := o.index[key]; ok {
		o.vals[i] = v
		return
	}
	o.index[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.vals = append(o.vals, v)
}

func (o *orderedObject) get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	i, ok := o.index[key]
	if !ok {
		return Value{}, false
	}
	return o.vals[i], true
}

// Constructors.

func NullValue() Value              { return Value{kind: KindNull} }
func BoolValue(b bool) Value        { return Value{kind: KindBool, b: b} }
func IntValue(i int64) Value        { return Value{kind: KindInt, i: i} }
func UintValue(u uint64) Value       { return Value{kind: KindUint, u: u} }
func FloatValue(f float64) Value    { return Value{kind: KindFloat, f: f} }
func StringValue(s string) Value    { return Value{kind: KindString, s: s} }
func ArrayValue(items []Value) Value {
	return Value{kind: KindArray, arr: items}
}

// NewObjectValue builds an object Value from ordered key/value pairs.
func NewObjectValue(keys []string, vals []Value) Value {
	o := newOrderedObject()
	for i, k := range keys {
		o.set(k, vals[i])
	}
	return Value{kind: KindObject, obj: o}
}

// Kind reports the variant currently held.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether v is the null variant (also true for the zero Value).
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload; zero value if v is not KindBool.
func (v Value) Bool() bool { return v.b }

// String returns the string payload; zero value if v is not KindString.
func (v Value) String() string { return v.s }

// Array returns the ordered element slice; nil if v is not KindArray.
func (v Value) Array() []Value { return v.arr }

// Keys returns the object's keys in insertion order; nil if v is not KindObject.
func (v Value) Keys() []string {
	if v.obj == nil {
		return nil
	}
	return v.obj.keys
}

// GetValueForKey looks up a key on an object Value (spec §4.2).
func (v Value) GetValueForKey(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	return v.obj.get(key)
}

// Len reports the number of elements (array) or keys (object); zero otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj.keys)
	default:
		return 0
	}
}

// safeInt64 returns the value as int64 iff the conversion is lossless.
func (v Value) safeInt64() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.i, true
	case KindUint:
		if v.u > uint64(math.MaxInt64) {
			return 0, false
		}
		return int64(v.u), true
	case KindFloat:
		if v.f != math.Trunc(v.f) || v.f < math.MinInt64 || v.f > math.MaxInt64 {
			return 0, false
		}
		return int64(v.f), true
	default:
		return 0, false
	}
}

// safeUint64 returns the value as uint64 iff the conversion is lossless.
func (v Value) safeUint64() (uint64, bool) {
	switch v.kind {
	case KindInt:
		if v.i < 0 {
			return 0, false
		}
		return uint64(v.i), true
	case KindUint:
		return v.u, true
	case KindFloat:
		if v.f != math.Trunc(v.f) || v.f < 0 || v.f > math.MaxUint64 {
			return 0, false
		}
		return uint64(v.f), true
	default:
		return 0, false
	}
}

// safeFloat64 returns the value as float64. Per spec §3, reading as
// floating point from an integer always succeeds.
func (v Value) safeFloat64() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindUint:
		return float64(v.u), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// SafeInt64 returns v as int64 iff the conversion is lossless.
func (v Value) SafeInt64() (int64, bool) { return v.safeInt64() }

// SafeUint64 returns v as uint64 iff the conversion is lossless.
func (v Value) SafeUint64() (uint64, bool) { return v.safeUint64() }

// SafeFloat64 returns v as float64; always lossless for int/uint/float kinds.
func (v Value) SafeFloat64() (float64, bool) { return v.safeFloat64() }

// Number is the set of Go numeric types GetSafeNumber can target.
type Number interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint |
		~float32 | ~float64
}

// GetSafeNumber returns v coerced to T iff the conversion is lossless —
// the stored value fits T's range and, for integer T, has no fractional
// component — otherwise it returns def unchanged (spec §3, §8).
func GetSafeNumber[T Number](v Value, def T) T {
	switch any(def).(type) {
	case int8:
		if iv, ok := v.safeInt64(); ok && iv >= math.MinInt8 && iv <= math.MaxInt8 {
			return T(iv)
		}
	case int16:
		if iv, ok := v.safeInt64(); ok && iv >= math.MinInt16 && iv <= math.MaxInt16 {
			return T(iv)
		}
	case int32:
		if iv, ok := v.safeInt64(); ok && iv >= math.MinInt32 && iv <= math.MaxInt32 {
			return T(iv)
		}
	case int64, int:
		if iv, ok := v.safeInt64(); ok {
			return T(iv)
		}
	case uint8:
		if uv, ok := v.safeUint64(); ok && uv <= math.MaxUint8 {
			return T(uv)
		}
	case uint16:
		if uv, ok := v.safeUint64(); ok && uv <= math.MaxUint16 {
			return T(uv)
		}
	case uint32:
		if uv, ok := v.safeUint64(); ok && uv <= math.MaxUint32 {
			return T(uv)
		}
	case uint64, uint:
		if uv, ok := v.safeUint64(); ok {
			return T(uv)
		}
	case float32:
		if fv, ok := v.safeFloat64(); ok && fv >= -math.MaxFloat32 && fv <= math.MaxFloat32 {
			return T(fv)
		}
	case float64:
		if fv, ok := v.safeFloat64(); ok {
			return T(fv)
		}
	}
	return def
}
