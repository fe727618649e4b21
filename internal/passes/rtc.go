// Package passes implements post-parse passes other than mesh
// decompression — currently just RTC recentering (spec §4.9).
package passes

import (
	"context"

	gltfkit "github.com/oriongate/gltfkit"
	"github.com/oriongate/gltfkit/model"
)

// RTCExtension is CESIUM_RTC's decoded shape: a world-space translation
// applied to the document's root nodes to avoid precision loss far from
// the origin (GLOSSARY: "RTC center").
type RTCExtension struct {
	Center [3]float64
}

const rtcExtensionName = "CESIUM_RTC"

// DecodeRTCExtension implements gltfkit.ExtensionDecodeFunc for CESIUM_RTC.
func DecodeRTCExtension(_ context.Context, path string, v gltfkit.Value) (any, gltfkit.Issues) {
	var center [3]float64
	cv, ok := v.GetValueForKey("center")
	if ok && cv.Kind() == gltfkit.KindArray {
		items := cv.Array()
		for i := 0; i < 3 && i < len(items); i++ {
			center[i] = gltfkit.GetSafeNumber[float64](items[i], 0)
		}
	}
	return &RTCExtension{Center: center}, nil
}

// RunRTCRecentering applies the document's CESIUM_RTC center (if
// present) as a translation pre-multiplied into every scene root Node's
// transform, then removes the extension. No-op if absent (spec §4.9).
func RunRTCRecentering(doc *model.Document) {
	ext, ok := doc.Extensions.Get(rtcExtensionName)
	if !ok {
		return
	}
	rtc, ok := ext.(*RTCExtension)
	if !ok {
		return
	}

	rootSet := map[int]bool{}
	for _, scene := range doc.Scenes {
		for _, idx := range scene.Nodes {
			rootSet[idx] = true
		}
	}
	for idx := range rootSet {
		if idx < 0 || idx >= len(doc.Nodes) {
			continue
		}
		applyTranslation(&doc.Nodes[idx], rtc.Center)
	}
	doc.Extensions.Remove(rtcExtensionName)
}

// applyTranslation pre-multiplies center into n's transform. For a TRS
// node this is a straight addition to the translation component; for a
// matrix node, center is added to the translation column (elements 12-14
// of the column-major 4x4), leaving rotation/scale untouched.
func applyTranslation(n *model.Node, center [3]float64) {
	if n.HasMatrix {
		n.Matrix[12] += center[0]
		n.Matrix[13] += center[1]
		n.Matrix[14] += center[2]
		return
	}
	n.Translation[0] += center[0]
	n.Translation[1] += center[1]
	n.Translation[2] += center[2]
}
