package gltfkit_test

import (
	"context"
	"testing"

	gltfkit "github.com/oriongate/gltfkit"
)

func echoHandler(_ context.Context, _ string, v gltfkit.Value) (any, gltfkit.Issues) {
	return "typed:" + v.String(), nil
}

func TestRegistry_DefaultsToJsonOnlyWhenUnregistered(t *testing.T) {
	r := gltfkit.NewRegistry()
	result, state, iss := r.Decode(context.Background(), "UNKNOWN_EXT", "/extensions/UNKNOWN_EXT", gltfkit.StringValue("x"), gltfkit.DefaultOptions())
	if state != gltfkit.ExtensionJsonOnly {
		t.Fatalf("expected JsonOnly for an unregistered name, got %v", state)
	}
	if len(iss) != 0 {
		t.Fatalf("expected no issues, got %v", iss)
	}
	if v, ok := result.(gltfkit.Value); !ok || v.String() != "x" {
		t.Fatalf("expected raw Value echoed back, got %#v", result)
	}
}

func TestRegistry_RegisteredUsesHandler(t *testing.T) {
	r := gltfkit.NewRegistry()
	r.Register("MY_EXT", echoHandler)
	result, state, _ := r.Decode(context.Background(), "MY_EXT", "/extensions/MY_EXT", gltfkit.StringValue("hi"), gltfkit.DefaultOptions())
	if state != gltfkit.ExtensionRegistered {
		t.Fatalf("expected Registered, got %v", state)
	}
	if result != "typed:hi" {
		t.Fatalf("expected typed handler output, got %#v", result)
	}
}

func TestRegistry_OverrideToJsonOnlySuppressesHandler(t *testing.T) {
	r := gltfkit.NewRegistry()
	r.Register("MY_EXT", echoHandler)
	opt := gltfkit.DefaultOptions()
	opt.SetExtensionState("MY_EXT", gltfkit.ExtensionJsonOnly)
	result, state, _ := r.Decode(context.Background(), "MY_EXT", "/extensions/MY_EXT", gltfkit.StringValue("hi"), opt)
	if state != gltfkit.ExtensionJsonOnly {
		t.Fatalf("expected JsonOnly override to win, got %v", state)
	}
	if v, ok := result.(gltfkit.Value); !ok || v.String() != "hi" {
		t.Fatalf("expected raw Value, got %#v", result)
	}
}

func TestRegistry_DisabledSkipsEntirely(t *testing.T) {
	r := gltfkit.NewRegistry()
	r.Register("MY_EXT", echoHandler)
	opt := gltfkit.DefaultOptions()
	opt.SetExtensionState("MY_EXT", gltfkit.ExtensionDisabled)
	result, state, iss := r.Decode(context.Background(), "MY_EXT", "/extensions/MY_EXT", gltfkit.StringValue("hi"), opt)
	if state != gltfkit.ExtensionDisabled {
		t.Fatalf("expected Disabled, got %v", state)
	}
	if result != nil || iss != nil {
		t.Fatalf("expected no result/issues for disabled extension, got %#v / %v", result, iss)
	}
}

func TestRegistry_IsCriticalOnlyWhenDisabledAndRequired(t *testing.T) {
	r := gltfkit.NewRegistry()
	opt := gltfkit.DefaultOptions()
	opt.SetExtensionState("CRIT_EXT", gltfkit.ExtensionDisabled)
	if !r.IsCritical("CRIT_EXT", opt, []string{"CRIT_EXT"}) {
		t.Fatalf("expected CRIT_EXT to be critical when disabled and required")
	}
	if r.IsCritical("CRIT_EXT", opt, []string{"OTHER_EXT"}) {
		t.Fatalf("did not expect critical when not in extensionsRequired")
	}
	optEnabled := gltfkit.DefaultOptions()
	if r.IsCritical("CRIT_EXT", optEnabled, []string{"CRIT_EXT"}) {
		t.Fatalf("did not expect critical when not disabled")
	}
}

func TestRegistry_ExtensionNameLookupIsCaseSensitive(t *testing.T) {
	r := gltfkit.NewRegistry()
	r.Register("KHR_draco_mesh_compression", echoHandler)
	_, state, _ := r.Decode(context.Background(), "khr_draco_mesh_compression", "/x", gltfkit.StringValue("a"), gltfkit.DefaultOptions())
	if state != gltfkit.ExtensionJsonOnly {
		t.Fatalf("expected case-mismatched name to miss the registered handler, got %v", state)
	}
}
