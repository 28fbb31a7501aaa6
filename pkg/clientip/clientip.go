package clientip

import (
	"net"
	"net/http"
	"strings"
)

// headers checked in priority order; the first valid IP wins.
var headers = []string{"X-Forwarded-For", "X-Real-IP"}

// GetIP extracts the real client IP address from an HTTP request.
// It checks proxy headers in priority order (X-Forwarded-For, then
// X-Real-IP) before falling back to the connection's remote address.
// If no candidate parses as a valid IP, the raw RemoteAddr is returned.
func GetIP(r *http.Request) string {
	for _, header := range headers {
		value := r.Header.Get(header)
		if value == "" {
			continue
		}

		// X-Forwarded-For may contain "client, proxy1, proxy2";
		// the leftmost entry is the original client.
		if idx := strings.IndexByte(value, ','); idx >= 0 {
			value = value[:idx]
		}

		if ip := normalize(value); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if ip := normalize(host); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

// normalize validates and canonicalizes an IP candidate.
// Returns "" for invalid addresses and for the unspecified 0.0.0.0/:: forms.
func normalize(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil || ip.IsUnspecified() {
		return ""
	}
	return ip.String()
}
