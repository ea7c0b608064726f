package config

import (
	"fmt"
	"strings"

	"golang.org/x/mod/module"
)

func defaultAppName(modulePath string) string {
	base := ""
	modName, _, ok := module.SplitPathVersion(modulePath)
	if ok {
		parts := strings.Split(modName, "/")
		base = parts[len(parts)-1]
	}
	if base == "" {
		return "drift_app"
	}
	return base
}

// defaultAppID reverses the module host and appends the path segments, so
// github.com/acme/maps becomes com.github.acme.maps.
func defaultAppID(modulePath, appName string) string {
	modName, _, _ := module.SplitPathVersion(modulePath)
	parts := strings.Split(modName, "/")
	if len(parts) < 2 || !strings.Contains(parts[0], ".") {
		return fmt.Sprintf("com.example.%s", sanitizeSegment(appName))
	}

	host := strings.Split(parts[0], ".")
	for i, j := 0, len(host)-1; i < j; i, j = i+1, j-1 {
		host[i], host[j] = host[j], host[i]
	}

	segments := host
	for _, p := range parts[1:] {
		if p != "" {
			segments = append(segments, p)
		}
	}
	for i, segment := range segments {
		segments[i] = sanitizeSegment(segment)
	}
	return strings.Join(segments, ".")
}

func sanitizeSegment(segment string) string {
	var out []rune
	for _, r := range strings.TrimSpace(segment) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		default:
			// Hyphens, underscores and anything else are dropped; they break
			// bundle id generation on Apple's side.
		}
	}
	if len(out) == 0 {
		return "app"
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = append([]rune{'a'}, out...)
	}
	return string(out)
}

// validateAppID checks the id that names the settings page opened after a
// denial. It must have at least two dot-separated segments, and each segment
// starts with a lowercase letter followed by lowercase letters, digits or '_'.
func validateAppID(appID string) error {
	segments := strings.Split(appID, ".")
	if len(segments) < 2 {
		return fmt.Errorf("app.id must contain at least one '.' (got %q)", appID)
	}
	for _, segment := range segments {
		switch {
		case segment == "":
			return fmt.Errorf("app.id contains an empty segment (%q)", appID)
		case segment[0] >= '0' && segment[0] <= '9':
			return fmt.Errorf("app.id segments cannot start with a digit (%q)", appID)
		case segment[0] == '_':
			return fmt.Errorf("app.id segments cannot start with '_' (%q)", appID)
		}
		for _, r := range segment {
			if !(r == '_' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
				return fmt.Errorf("app.id contains invalid character %q in %q", r, appID)
			}
		}
	}
	return nil
}
