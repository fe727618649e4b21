package schema_test

import (
	"testing"

	gltfkit "github.com/oriongate/gltfkit"
	"github.com/oriongate/gltfkit/internal/schema"
)

func obj(keys []string, vals []gltfkit.Value) gltfkit.Value {
	return gltfkit.NewObjectValue(keys, vals)
}

func TestCtx_Int_AcceptsIntegerLiteral(t *testing.T) {
	sc := &schema.Ctx{Opt: gltfkit.DefaultOptions()}
	o := obj([]string{"count"}, []gltfkit.Value{gltfkit.IntValue(4)})
	if got := sc.Int("/accessors/0", o, "count", 0); got != 4 {
		t.Fatalf("got %d", got)
	}
	if len(sc.Issues) != 0 {
		t.Fatalf("expected no warnings, got %v", sc.Issues)
	}
}

func TestCtx_Int_AcceptsWholeFloat(t *testing.T) {
	sc := &schema.Ctx{Opt: gltfkit.DefaultOptions()}
	o := obj([]string{"componentType"}, []gltfkit.Value{gltfkit.FloatValue(5121.0)})
	if got := sc.Int("/accessors/0", o, "componentType", 0); got != 5121 {
		t.Fatalf("got %d", got)
	}
	if len(sc.Issues) != 0 {
		t.Fatalf("expected no warnings for a whole-number float, got %v", sc.Issues)
	}
}

func TestCtx_Int_WarnsOnFractionalFloat(t *testing.T) {
	sc := &schema.Ctx{Opt: gltfkit.DefaultOptions()}
	o := obj([]string{"componentType"}, []gltfkit.Value{gltfkit.FloatValue(5121.1)})
	if got := sc.Int("/accessors/0", o, "componentType", 42); got != 42 {
		t.Fatalf("expected default 42 for lossy coercion, got %d", got)
	}
	if len(sc.Issues) != 1 || sc.Issues[0].Code != gltfkit.CodeLossyNumericCoercion {
		t.Fatalf("expected one LossyNumericCoercion warning, got %v", sc.Issues)
	}
}

func TestCtx_EnumInt_AcceptsStringName(t *testing.T) {
	sc := &schema.Ctx{Opt: gltfkit.DefaultOptions()}
	names := map[string]int{"UNSIGNED_BYTE": 5121}
	o := obj([]string{"componentType"}, []gltfkit.Value{gltfkit.StringValue("UNSIGNED_BYTE")})
	if got := sc.EnumInt("/accessors/0", o, "componentType", names, 0); got != 5121 {
		t.Fatalf("got %d", got)
	}
}

func TestCtx_EnumInt_UnknownStringWarnsAndDefaults(t *testing.T) {
	sc := &schema.Ctx{Opt: gltfkit.DefaultOptions()}
	names := map[string]int{"UNSIGNED_BYTE": 5121}
	o := obj([]string{"componentType"}, []gltfkit.Value{gltfkit.StringValue("BOGUS")})
	if got := sc.EnumInt("/accessors/0", o, "componentType", names, 5126); got != 5126 {
		t.Fatalf("expected default, got %d", got)
	}
	if len(sc.Issues) != 1 || sc.Issues[0].Code != gltfkit.CodeUnknownEnumName {
		t.Fatalf("expected UnknownEnumName warning, got %v", sc.Issues)
	}
}

func TestCtx_EnumInt_PreservesUnknownIntegerVerbatim(t *testing.T) {
	sc := &schema.Ctx{Opt: gltfkit.DefaultOptions()}
	names := map[string]int{"UNSIGNED_BYTE": 5121}
	o := obj([]string{"componentType"}, []gltfkit.Value{gltfkit.IntValue(99999)})
	if got := sc.EnumInt("/accessors/0", o, "componentType", names, 0); got != 99999 {
		t.Fatalf("expected unknown enumerator integer preserved verbatim, got %d", got)
	}
	if len(sc.Issues) != 0 {
		t.Fatalf("expected no warnings for an unrecognized but well-typed integer, got %v", sc.Issues)
	}
}

func TestCtx_CaptureUnknown_Disabled(t *testing.T) {
	sc := &schema.Ctx{Opt: gltfkit.Options{CaptureUnknownProperties: false}}
	o := obj([]string{"surprise"}, []gltfkit.Value{gltfkit.BoolValue(true)})
	got := sc.CaptureUnknown("/", o, schema.Fields())
	if got != nil {
		t.Fatalf("expected nil unknown map when capture disabled, got %v", got)
	}
}

func TestCtx_CaptureUnknown_CapturesNonSchemaKeys(t *testing.T) {
	sc := &schema.Ctx{Opt: gltfkit.DefaultOptions()}
	o := obj([]string{"known", "surprise"}, []gltfkit.Value{gltfkit.IntValue(1), gltfkit.BoolValue(true)})
	got := sc.CaptureUnknown("/", o, schema.Fields("known"))
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 captured key, got %v", got)
	}
	if v, ok := got["surprise"]; !ok || !v.Bool() {
		t.Fatalf("expected surprise=true captured, got %v", got)
	}
}

func TestCtx_CaptureUnknown_NeverCapturesExtrasOrExtensions(t *testing.T) {
	sc := &schema.Ctx{Opt: gltfkit.DefaultOptions()}
	o := obj([]string{"extras", "extensions"}, []gltfkit.Value{gltfkit.IntValue(1), gltfkit.IntValue(2)})
	got := sc.CaptureUnknown("/", o, schema.Fields())
	if len(got) != 0 {
		t.Fatalf("extras/extensions must never be captured as unknown, got %v", got)
	}
}

func TestCtx_FloatArray_PreservesLengthAndValues(t *testing.T) {
	sc := &schema.Ctx{Opt: gltfkit.DefaultOptions()}
	o := obj([]string{"min"}, []gltfkit.Value{gltfkit.ArrayValue([]gltfkit.Value{
		gltfkit.FloatValue(0), gltfkit.IntValue(-1),
	})})
	got := sc.FloatArray(o, "min")
	if len(got) != 2 || got[0] != 0 || got[1] != -1 {
		t.Fatalf("got %v", got)
	}
}

func TestIndexPath(t *testing.T) {
	if got := schema.IndexPath("/meshes", 3); got != "/meshes/3" {
		t.Fatalf("got %q", got)
	}
}
