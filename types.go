package gltfkit

// ExtensionState controls how a named extension is handled during a read
// (spec §5): Registered extensions get their typed handler invoked,
// JsonOnly extensions are preserved as a raw Value under the entity's
// Extensions map with no typed handler, and Disabled extensions are
// skipped as if absent — except that a Disabled extension on the document
// root that is named in extensionsRequired still produces a
// CodeUnknownExtensionNameInCritical issue. A Disabled extension on any
// other entity is dropped without an issue, whether or not it is listed
// in extensionsRequired.
type ExtensionState int

const (
	// ExtensionDefault defers to the registry's built-in state for the name.
	ExtensionDefault ExtensionState = iota
	ExtensionRegistered
	ExtensionJsonOnly
	ExtensionDisabled
)

// Options configures a Reader (spec §5, §6). The zero value is usable:
// no enforcement limits are applied and every extension resolves to its
// registry default, but unknown properties are not captured.
// DefaultOptions returns the spec's defaults, with capture switched on.
type Options struct {
	// CaptureUnknownProperties controls whether object properties with no
	// matching schema field are preserved in the owning entity's Unknown
	// map rather than silently dropped. Defaults to true (spec §6); a
	// freshly zero-valued Options must call DefaultOptions to get that
	// default, since Go zero-values bool to false.
	CaptureUnknownProperties bool

	// MaxDepth caps JSON nesting depth; 0 disables the check.
	MaxDepth int
	// MaxBytes caps the number of input bytes consumed; 0 disables the check.
	MaxBytes int64
	// WarnOnDuplicateKeys reports duplicate object keys as a warning
	// instead of silently letting the last value win.
	WarnOnDuplicateKeys bool

	// extensionOverrides holds per-name ExtensionState overrides set via
	// SetExtensionState, applied on top of the registry's built-in states.
	extensionOverrides map[string]ExtensionState
}

// DefaultOptions returns the spec's default Options: unknown properties
// captured, no enforcement limits, no duplicate-key warnings.
func DefaultOptions() Options {
	return Options{CaptureUnknownProperties: true}
}

// SetExtensionState overrides the resolved state for a named extension on
// this Options value, taking precedence over the registry's built-in
// default for subsequent reads (spec §9's Open Question: a Disabled
// override applies to reads performed after the call, not retroactively).
func (o *Options) SetExtensionState(name string, state ExtensionState) {
	if o.extensionOverrides == nil {
		o.extensionOverrides = make(map[string]ExtensionState)
	}
	o.extensionOverrides[name] = state
}

// extensionStateOverride reports the override for name, if any.
func (o Options) extensionStateOverride(name string) (ExtensionState, bool) {
	if o.extensionOverrides == nil {
		return ExtensionDefault, false
	}
	st, ok := o.extensionOverrides[name]
	return st, ok
}
