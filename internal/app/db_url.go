package app

import (
	"net/url"
	"path"
	"strings"
)

// dbNameFromURL extracts the database name used as a span attribute. It
// understands postgres URLs, key=value DSNs and sqlite file: URIs.
func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	hasScheme := err == nil && parsed != nil && parsed.Scheme != ""
	if hasScheme {
		if parsed.Scheme == "file" {
			return sqliteFileName(parsed)
		}
		name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
		if name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		if !strings.HasPrefix(token, "dbname=") {
			continue
		}
		name := strings.TrimSpace(strings.TrimPrefix(token, "dbname="))
		name = strings.Trim(name, `"'`)
		if name != "" {
			return name
		}
	}

	if trimmed != "" && !hasScheme && !strings.Contains(trimmed, "=") {
		return path.Base(trimmed)
	}
	return ""
}

func sqliteFileName(u *url.URL) string {
	name := u.Opaque
	if name == "" {
		name = u.Path
	}
	if name == "" || name == ":memory:" {
		return "memory"
	}
	return path.Base(name)
}
