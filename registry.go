package gltfkit

import "context"

// ExtensionDecodeFunc decodes the raw Value found under an entity's
// "extensions"/<name> member into a typed result. It reports issues the
// same way entity decoders do, rooted at the extension's own path.
type ExtensionDecodeFunc func(ctx context.Context, path string, v Value) (any, Issues)

// Registry dispatches extension objects to registered decoders by name,
// the way a discriminated union dispatches a tagged variant to its
// decoder keyed by discriminator value — except the "discriminator" here
// is the member name under "extensions" rather than a field inside the
// object.
type Registry struct {
	handlers      map[string]ExtensionDecodeFunc
	defaultStates map[string]ExtensionState
}

// NewRegistry returns an empty Registry. Every extension name defaults to
// ExtensionJsonOnly until a handler or explicit default state is set.
func NewRegistry() *Registry {
	return &Registry{
		handlers:      make(map[string]ExtensionDecodeFunc),
		defaultStates: make(map[string]ExtensionState),
	}
}

// Register installs a typed decoder for a named extension and marks its
// built-in default state as Registered.
func (r *Registry) Register(name string, fn ExtensionDecodeFunc) {
	r.handlers[name] = fn
	r.defaultStates[name] = ExtensionRegistered
}

// SetDefaultState overrides the built-in default state for a named
// extension without installing (or removing) a decoder — used to mark an
// extension JsonOnly or Disabled by default even though a handler exists,
// e.g. an experimental extension shipped but off unless opted in.
func (r *Registry) SetDefaultState(name string, state ExtensionState) {
	r.defaultStates[name] = state
}

// resolveState applies Options' per-name override on top of the
// registry's built-in default (spec §5: override, then built-in, then
// JsonOnly fallback for anything never mentioned).
func (r *Registry) resolveState(name string, opt Options) ExtensionState {
	if st, ok := opt.extensionStateOverride(name); ok && st != ExtensionDefault {
		return st
	}
	if st, ok := r.defaultStates[name]; ok {
		return st
	}
	return ExtensionJsonOnly
}

// Decode resolves name's effective state and, if Registered, invokes its
// decoder. For JsonOnly it returns the raw Value with no issues. For
// Disabled it returns (nil, ExtensionDisabled, nil); callers are
// responsible for the extensionsRequired cross-check (spec §5's
// CodeUnknownExtensionNameInCritical).
func (r *Registry) Decode(ctx context.Context, name, path string, v Value, opt Options) (any, ExtensionState, Issues) {
	state := r.resolveState(name, opt)
	switch state {
	case ExtensionDisabled:
		return nil, state, nil
	case ExtensionRegistered:
		if fn, ok := r.handlers[name]; ok {
			result, iss := fn(ctx, path, v)
			return result, state, iss
		}
		return v, ExtensionJsonOnly, nil
	default:
		return v, ExtensionJsonOnly, nil
	}
}

// IsCritical reports whether name is Disabled under opt while also being
// named in extensionsRequired — the case that must surface as a Warning
// CodeUnknownExtensionNameInCritical issue rather than a silent skip.
func (r *Registry) IsCritical(name string, opt Options, extensionsRequired []string) bool {
	if r.resolveState(name, opt) != ExtensionDisabled {
		return false
	}
	for _, req := range extensionsRequired {
		if req == name {
			return true
		}
	}
	return false
}
