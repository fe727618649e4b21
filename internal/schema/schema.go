// Package schema holds the shared decoding machinery every entity decoder
// in internal/decode is built from: a table of known field names per
// entity (for unknown-property capture), numeric coercion with warning
// emission, and enum-mapped integer handling. Each entity's schema is data
// — a set of known names plus per-field read calls — not bespoke code per
// entity, so the unknown-property policy is centralized here rather than
// duplicated at every call site.
package schema

import (
	"fmt"

	gltfkit "github.com/oriongate/gltfkit"
)

// Ctx carries per-Read state shared across every entity decoder: the
// active Options, the extension registry, and the accumulating issue
// list. It is the table-driven schema's equivalent of goskema's
// PresenceMap plus fail-fast context, flattened into one struct since the
// decoders here never need to suspend or branch on presence beyond
// "was this key present".
type Ctx struct {
	Opt      gltfkit.Options
	Registry *gltfkit.Registry
	Issues   gltfkit.Issues
}

func (c *Ctx) warn(path, code string, params map[string]any) {
	c.Issues = gltfkit.AppendIssues(c.Issues, warningIssue(path, code, params))
}

func warningIssue(path, code string, params map[string]any) gltfkit.Issue {
	return gltfkit.Issue{Path: path, Code: code, Severity: gltfkit.SeverityWarning, Params: params, Offset: -1}
}

// KnownFields is the set of property names an entity's schema recognizes.
// Anything outside this set at that object's position is either captured
// into Unknown or dropped, per Ctx.CaptureUnknown.
type KnownFields map[string]bool

func Fields(names ...string) KnownFields {
	kf := make(KnownFields, len(names))
	for _, n := range names {
		kf[n] = true
	}
	return kf
}

// alwaysKnown lists the property names every entity recognizes regardless
// of its own schema (extras, extensions) — never captured as unknown.
var alwaysKnown = map[string]bool{"extras": true, "extensions": true}

// CaptureUnknown records every key of obj not in known (and not "extras"/
// "extensions", which every entity handles itself) into a per-entity
// unknown-properties map, when Opt.CaptureUnknownProperties is set.
// Applies recursively only in the sense that every entity decoder calls
// this independently at its own level (spec §3's "applies recursively").
func (c *Ctx) CaptureUnknown(path string, obj gltfkit.Value, known KnownFields) map[string]gltfkit.Value {
	if !c.Opt.CaptureUnknownProperties || obj.Kind() != gltfkit.KindObject {
		return nil
	}
	var out map[string]gltfkit.Value
	for _, k := range obj.Keys() {
		if known[k] || alwaysKnown[k] {
			continue
		}
		if out == nil {
			out = make(map[string]gltfkit.Value)
		}
		v, _ := obj.GetValueForKey(k)
		out[k] = v
	}
	return out
}

// Extras reads the "extras" member, always a dynamic value when present.
func Extras(obj gltfkit.Value) gltfkit.Value {
	if v, ok := obj.GetValueForKey("extras"); ok {
		return v
	}
	return gltfkit.NullValue()
}

// Field returns the child Value for key and whether it was present.
func Field(obj gltfkit.Value, key string) (gltfkit.Value, bool) {
	if obj.Kind() != gltfkit.KindObject {
		return gltfkit.Value{}, false
	}
	return obj.GetValueForKey(key)
}

// Int reads an integer-valued field with a default, applying §4.3's
// numeric coercion policy: an integer is accepted outright; a double is
// accepted iff it has no fractional part and fits int64, otherwise a
// LossyNumericCoercion warning is emitted and def is returned.
func (c *Ctx) Int(path string, obj gltfkit.Value, key string, def int) int {
	v, ok := Field(obj, key)
	if !ok || v.IsNull() {
		return def
	}
	if v.Kind() != gltfkit.KindInt && v.Kind() != gltfkit.KindUint && v.Kind() != gltfkit.KindFloat {
		c.warn(childPath(path, key), gltfkit.CodeUnexpectedJsonShape, map[string]any{"expected": "integer"})
		return def
	}
	iv, ok := v.SafeInt64()
	if !ok {
		c.warn(childPath(path, key), gltfkit.CodeLossyNumericCoercion, map[string]any{"field": key})
		return def
	}
	return int(iv)
}

// Int64 is Int for int64-typed fields (byte lengths, offsets that may
// exceed the int32 range on 32-bit platforms are out of scope here, but
// the wider type keeps callers honest about byte counts).
func (c *Ctx) Int64(path string, obj gltfkit.Value, key string, def int64) int64 {
	return int64(c.Int(path, obj, key, int(def)))
}

// Float reads a double field with a default.
func (c *Ctx) Float(obj gltfkit.Value, key string, def float64) float64 {
	v, ok := Field(obj, key)
	if !ok || v.IsNull() {
		return def
	}
	return gltfkit.GetSafeNumber[float64](v, def)
}

// String reads a string field with a default.
func (c *Ctx) String(obj gltfkit.Value, key string, def string) string {
	v, ok := Field(obj, key)
	if !ok || v.Kind() != gltfkit.KindString {
		return def
	}
	return v.String()
}

// Bool reads a boolean field with a default.
func (c *Ctx) Bool(obj gltfkit.Value, key string, def bool) bool {
	v, ok := Field(obj, key)
	if !ok || v.Kind() != gltfkit.KindBool {
		return def
	}
	return v.Bool()
}

// IntArray reads an array of integers eagerly; the result has the same
// length as the source array (spec §4.3).
func (c *Ctx) IntArray(path string, obj gltfkit.Value, key string) []int {
	v, ok := Field(obj, key)
	if !ok || v.Kind() != gltfkit.KindArray {
		return nil
	}
	items := v.Array()
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = int(gltfkit.GetSafeNumber[int64](it, -1))
	}
	return out
}

// FloatArray reads an array of doubles eagerly, e.g. Accessor min/max.
func (c *Ctx) FloatArray(obj gltfkit.Value, key string) []float64 {
	v, ok := Field(obj, key)
	if !ok || v.Kind() != gltfkit.KindArray {
		return nil
	}
	items := v.Array()
	out := make([]float64, len(items))
	for i, it := range items {
		out[i] = gltfkit.GetSafeNumber[float64](it, 0)
	}
	return out
}

// StringArray reads an array of strings eagerly (extensionsUsed/Required).
func (c *Ctx) StringArray(obj gltfkit.Value, key string) []string {
	v, ok := Field(obj, key)
	if !ok || v.Kind() != gltfkit.KindArray {
		return nil
	}
	items := v.Array()
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it.Kind() == gltfkit.KindString {
			out = append(out, it.String())
		}
	}
	return out
}

// IntMap reads an object field whose values are all small integers, e.g.
// MeshPrimitive.attributes (semantic name -> accessor index).
func (c *Ctx) IntMap(obj gltfkit.Value, key string) map[string]int {
	v, ok := Field(obj, key)
	if !ok || v.Kind() != gltfkit.KindObject {
		return nil
	}
	out := make(map[string]int, v.Len())
	for _, k := range v.Keys() {
		fv, _ := v.GetValueForKey(k)
		out[k] = int(gltfkit.GetSafeNumber[int64](fv, -1))
	}
	return out
}

// EnumInt resolves an enum-mapped integer field accepted either as a JSON
// integer matching an enumerator value, or a JSON string matching an
// enumerator name (spec §4.3). names maps enumerator name -> value.
// Unknown integers are preserved verbatim; unknown strings warn and
// return def.
func (c *Ctx) EnumInt(path string, obj gltfkit.Value, key string, names map[string]int, def int) int {
	v, ok := Field(obj, key)
	if !ok || v.IsNull() {
		return def
	}
	switch v.Kind() {
	case gltfkit.KindString:
		if n, ok := names[v.String()]; ok {
			return n
		}
		c.warn(childPath(path, key), gltfkit.CodeUnknownEnumName, map[string]any{"name": v.String()})
		return def
	case gltfkit.KindInt, gltfkit.KindUint, gltfkit.KindFloat:
		return c.Int(path, obj, key, def)
	default:
		c.warn(childPath(path, key), gltfkit.CodeUnexpectedJsonShape, map[string]any{"expected": "enum"})
		return def
	}
}

func childPath(base, key string) string {
	return ChildPath(base, key)
}

// ChildPath appends a property name to a JSON-Pointer-style path, the
// same join rule used internally for warning paths (exported so callers
// outside this package, e.g. extension resolution, can build paths
// consistently).
func ChildPath(base, key string) string {
	if base == "" || base == "/" {
		return "/" + key
	}
	return base + "/" + key
}

// IndexPath appends a numeric array index to base, e.g. "/meshes/0".
func IndexPath(base string, i int) string {
	return fmt.Sprintf("%s/%d", base, i)
}
