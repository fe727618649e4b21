package gltfkit

import "github.com/oriongate/gltfkit/i18n"

// issueAt builds an Issue at the given JSON Pointer path, resolving its
// message from the i18n dictionary for code.
func issueAt(path string, severity Severity, code string, params map[string]any) Issue {
	return Issue{
		Path:     path,
		Code:     code,
		Severity: severity,
		Message:  i18n.T(code, params),
		Offset:   -1,
		Params:   params,
	}
}

func warningAt(path, code string, params map[string]any) Issue {
	return issueAt(path, SeverityWarning, code, params)
}

func errorAt(path, code string, params map[string]any) Issue {
	return issueAt(path, SeverityError, code, params)
}

func fatal(code string, params map[string]any) Issue {
	return issueAt("", SeverityFatal, code, params)
}
