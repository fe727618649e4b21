package gltfkit_test

import (
	"testing"

	gltfkit "github.com/oriongate/gltfkit"
)

func TestGetSafeNumber_IntWithinRange(t *testing.T) {
	v := gltfkit.IntValue(200)
	if got := gltfkit.GetSafeNumber[int8](v, -1); got != -1 {
		t.Fatalf("200 should not fit int8, got %d", got)
	}
	if got := gltfkit.GetSafeNumber[uint8](v, 0); got != 200 {
		t.Fatalf("200 should fit uint8, got %d", got)
	}
}

func TestGetSafeNumber_FloatWithNoFraction(t *testing.T) {
	v := gltfkit.FloatValue(5121.0)
	if got := gltfkit.GetSafeNumber[int32](v, -1); got != 5121 {
		t.Fatalf("5121.0 should coerce losslessly to int32, got %d", got)
	}
}

func TestGetSafeNumber_FloatWithFractionFails(t *testing.T) {
	v := gltfkit.FloatValue(5121.1)
	if got := gltfkit.GetSafeNumber[int32](v, -1); got != -1 {
		t.Fatalf("5121.1 has a fractional part, expected default -1, got %d", got)
	}
}

func TestGetSafeNumber_IntToFloatAlwaysSucceeds(t *testing.T) {
	v := gltfkit.IntValue(-7)
	if got := gltfkit.GetSafeNumber[float64](v, 0); got != -7 {
		t.Fatalf("int->float64 should always be lossless, got %v", got)
	}
}

func TestGetSafeNumber_NegativeIntToUnsignedFails(t *testing.T) {
	v := gltfkit.IntValue(-1)
	if got := gltfkit.GetSafeNumber[uint32](v, 9); got != 9 {
		t.Fatalf("negative int should not coerce to unsigned, got %d", got)
	}
}

func TestGetSafeNumber_AllTargetTypes(t *testing.T) {
	v := gltfkit.IntValue(42)
	if g := gltfkit.GetSafeNumber[int8](v, 0); g != 42 {
		t.Fatalf("int8: got %d", g)
	}
	if g := gltfkit.GetSafeNumber[uint8](v, 0); g != 42 {
		t.Fatalf("uint8: got %d", g)
	}
	if g := gltfkit.GetSafeNumber[int16](v, 0); g != 42 {
		t.Fatalf("int16: got %d", g)
	}
	if g := gltfkit.GetSafeNumber[uint16](v, 0); g != 42 {
		t.Fatalf("uint16: got %d", g)
	}
	if g := gltfkit.GetSafeNumber[int32](v, 0); g != 42 {
		t.Fatalf("int32: got %d", g)
	}
	if g := gltfkit.GetSafeNumber[uint32](v, 0); g != 42 {
		t.Fatalf("uint32: got %d", g)
	}
	if g := gltfkit.GetSafeNumber[int64](v, 0); g != 42 {
		t.Fatalf("int64: got %d", g)
	}
	if g := gltfkit.GetSafeNumber[uint64](v, 0); g != 42 {
		t.Fatalf("uint64: got %d", g)
	}
	if g := gltfkit.GetSafeNumber[float64](v, 0); g != 42 {
		t.Fatalf("float64: got %v", g)
	}
}

func TestValue_ObjectPreservesInsertionOrder(t *testing.T) {
	v := gltfkit.NewObjectValue(
		[]string{"c", "a", "b"},
		[]gltfkit.Value{gltfkit.IntValue(3), gltfkit.IntValue(1), gltfkit.IntValue(2)},
	)
	keys := v.Keys()
	want := []string{"c", "a", "b"}
	for i, k := range want {
		if keys[i] != k {
			t.Fatalf("keys[%d] = %q, want %q", i, keys[i], k)
		}
	}
}

func TestValue_GetValueForKey(t *testing.T) {
	v := gltfkit.NewObjectValue([]string{"name"}, []gltfkit.Value{gltfkit.StringValue("cube")})
	got, ok := v.GetValueForKey("name")
	if !ok || got.String() != "cube" {
		t.Fatalf("expected name=cube, got %v ok=%v", got, ok)
	}
	if _, ok := v.GetValueForKey("missing"); ok {
		t.Fatalf("expected missing key to report not-found")
	}
}

func TestValue_ArrayPreservesOrder(t *testing.T) {
	v := gltfkit.ArrayValue([]gltfkit.Value{gltfkit.IntValue(1), gltfkit.IntValue(2), gltfkit.IntValue(3)})
	arr := v.Array()
	if len(arr) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(arr))
	}
	for i, want := range []int64{1, 2, 3} {
		if got, ok := arr[i].SafeInt64(); !ok || got != want {
			t.Fatalf("arr[%d] = %v, want %d", i, got, want)
		}
	}
}

func TestBuildValue_Roundtrip(t *testing.T) {
	src := gltfkit.JSONBytes([]byte(`{"a":1,"b":[true,null,"s"],"c":{"d":2.5}}`))
	v, err := gltfkit.BuildValue(src)
	if err != nil {
		t.Fatalf("BuildValue: %v", err)
	}
	if v.Kind() != gltfkit.KindObject {
		t.Fatalf("expected object root, got %v", v.Kind())
	}
	a, _ := v.GetValueForKey("a")
	if iv, ok := a.SafeInt64(); !ok || iv != 1 {
		t.Fatalf("a = %v", a)
	}
	b, _ := v.GetValueForKey("b")
	if b.Kind() != gltfkit.KindArray || b.Len() != 3 {
		t.Fatalf("b = %v", b)
	}
	c, _ := v.GetValueForKey("c")
	d, ok := c.GetValueForKey("d")
	if !ok {
		t.Fatalf("expected c.d to be present")
	}
	if fv, ok := d.SafeFloat64(); !ok || fv != 2.5 {
		t.Fatalf("c.d = %v", d)
	}
}

func TestBuildValue_MalformedJSON(t *testing.T) {
	src := gltfkit.JSONBytes([]byte(`{"a":`))
	_, err := gltfkit.BuildValue(src)
	if err == nil {
		t.Fatalf("expected an error for truncated JSON")
	}
	iss, ok := gltfkit.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected Issues, got %v", err)
	}
	if iss[0].Code != gltfkit.CodeMalformedJson {
		t.Fatalf("expected CodeMalformedJson, got %s", iss[0].Code)
	}
}
