package admin

import (
	"net/url"
	"strings"
)

const (
	// DefaultVirtualHost is the broker's built-in virtual host.
	DefaultVirtualHost = "/"
	// DefaultVirtualHostToken is the path token the default virtual host
	// sanitizes to.
	DefaultVirtualHostToken = "%2f"
)

// SanitizeVirtualHost escapes a virtual host name for use as a single path
// segment. Slashes are emitted as the lowercase "%2f" the management API
// documents, so the default virtual host, raw or already sanitized, becomes
// DefaultVirtualHostToken. Surrounding whitespace is dropped.
func SanitizeVirtualHost(name string) string {
	if IsDefaultVirtualHost(name) {
		return DefaultVirtualHostToken
	}
	return escapeSegment(strings.TrimSpace(name))
}

// IsDefaultVirtualHost reports whether name refers to the default virtual
// host, either raw or already sanitized.
func IsDefaultVirtualHost(name string) bool {
	trimmed := strings.TrimSpace(name)
	return trimmed == DefaultVirtualHost || strings.EqualFold(trimmed, DefaultVirtualHostToken)
}

// trimIdentifiers trims every identifier in place once, when an action is
// sealed.
func trimIdentifiers(ids ...*string) {
	for _, id := range ids {
		*id = strings.TrimSpace(*id)
	}
}

func escapeSegment(segment string) string {
	return strings.ReplaceAll(url.PathEscape(segment), "%2F", "%2f")
}
