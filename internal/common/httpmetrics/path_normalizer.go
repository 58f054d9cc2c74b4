package httpmetrics

import (
	"regexp"
	"strings"
)

var (
	uuidRegex = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)
)

// OtherRoute labels every path the service does not serve.
const OtherRoute = "other"

var knownRoutes = map[string]struct{}{
	"/signup":  {},
	"/login":   {},
	"/profile": {},
	"/logout":  {},
	"/health":  {},
	"/metrics": {},
}

// RouteLabel keeps metric label values bounded: served routes keep their
// path, anything else collapses to OtherRoute.
func RouteLabel(path string) string {
	normalized := NormalizePath(path)
	if _, ok := knownRoutes[normalized]; ok {
		return normalized
	}
	return OtherRoute
}

func NormalizePath(path string) string {
	if path == "" {
		return "/"
	}

	normalized := uuidRegex.ReplaceAllString(path, "{id}")

	parts := strings.Split(normalized, "/")
	for i, part := range parts {
		if part != "" && (strings.HasPrefix(part, "{") || isNumeric(part)) {
			parts[i] = "{param}"
		}
	}

	result := strings.Join(parts, "/")
	if result == "" {
		return "/"
	}

	return result
}

func isNumeric(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
